package voxel

import "fmt"

// Size holds the dimensions of a grid in voxels.
type Size struct {
	X, Y, Z int
}

// DefaultSize is the reference chunk size.
var DefaultSize = Size{X: 16, Y: 64, Z: 16}

// Volume returns the number of cells.
func (s Size) Volume() int { return s.X * s.Y * s.Z }

func (s Size) String() string { return fmt.Sprintf("%dx%dx%d", s.X, s.Y, s.Z) }

// Grid is a dense 3D array of block types for one chunk.
// Index = (x*SizeY + y)*SizeZ + z, which matches the x/y/z meshing order.
type Grid struct {
	size   Size
	blocks []Type
}

// NewGrid returns an all-air grid of the given size.
func NewGrid(size Size) (*Grid, error) {
	if size.X <= 0 || size.Y <= 0 || size.Z <= 0 {
		return nil, fmt.Errorf("invalid grid size %s", size)
	}
	return &Grid{size: size, blocks: make([]Type, size.Volume())}, nil
}

// Size returns the grid dimensions.
func (g *Grid) Size() Size { return g.size }

// InBounds reports whether (x, y, z) is a cell of the grid.
func (g *Grid) InBounds(x, y, z int) bool {
	return x >= 0 && x < g.size.X &&
		y >= 0 && y < g.size.Y &&
		z >= 0 && z < g.size.Z
}

func (g *Grid) index(x, y, z int) int {
	return (x*g.size.Y+y)*g.size.Z + z
}

// Get returns the block at (x, y, z). Cells outside the grid read as air.
func (g *Grid) Get(x, y, z int) Type {
	if !g.InBounds(x, y, z) {
		return Air
	}
	return g.blocks[g.index(x, y, z)]
}

// Set stores t at (x, y, z). It returns false and leaves the grid untouched
// if the cell is outside the grid or t is not a defined type.
func (g *Grid) Set(x, y, z int, t Type) bool {
	if !g.InBounds(x, y, z) || !t.Valid() {
		return false
	}
	g.blocks[g.index(x, y, z)] = t
	return true
}

// Fill sets every cell to t.
func (g *Grid) Fill(t Type) {
	if !t.Valid() {
		return
	}
	for i := range g.blocks {
		g.blocks[i] = t
	}
}

// Count returns how many cells hold t.
func (g *Grid) Count(t Type) int {
	n := 0
	for _, b := range g.blocks {
		if b == t {
			n++
		}
	}
	return n
}

// Solid returns the number of non-air cells.
func (g *Grid) Solid() int {
	return len(g.blocks) - g.Count(Air)
}

// Equal reports whether both grids have the same size and contents.
func (g *Grid) Equal(o *Grid) bool {
	if g.size != o.size {
		return false
	}
	for i := range g.blocks {
		if g.blocks[i] != o.blocks[i] {
			return false
		}
	}
	return true
}

// Clone returns a deep copy of the grid.
func (g *Grid) Clone() *Grid {
	c := &Grid{size: g.size, blocks: make([]Type, len(g.blocks))}
	copy(c.blocks, g.blocks)
	return c
}
