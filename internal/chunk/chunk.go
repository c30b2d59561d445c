package chunk

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"

	"github.com/OCharnyshevich/voxelmesh/internal/render"
	"github.com/OCharnyshevich/voxelmesh/pkg/atlas"
	"github.com/OCharnyshevich/voxelmesh/pkg/mesh"
	"github.com/OCharnyshevich/voxelmesh/pkg/voxel"
	"github.com/OCharnyshevich/voxelmesh/pkg/world/gen"
)

// ErrOutOfRange is returned when a world position falls outside a chunk.
var ErrOutOfRange = errors.New("position outside chunk")

// Chunk is a fixed-size block of voxels anchored at its minimum corner.
// A Chunk is not safe for concurrent use; callers serialise edits.
type Chunk struct {
	id      uuid.UUID
	origin  mgl32.Vec3
	grid    *voxel.Grid
	builder *mesh.Builder
	mesh    *mesh.Mesh
	backend render.Backend
}

// New creates an all-air chunk. The mesh is empty until Generate or
// Rebuild is called.
func New(origin mgl32.Vec3, size voxel.Size, a *atlas.Atlas, backend render.Backend) (*Chunk, error) {
	g, err := voxel.NewGrid(size)
	if err != nil {
		return nil, fmt.Errorf("create chunk at %v: %w", origin, err)
	}
	if backend == nil {
		backend = render.Discard
	}
	return &Chunk{
		id:      uuid.New(),
		origin:  origin,
		grid:    g,
		builder: mesh.NewBuilder(a),
		mesh:    &mesh.Mesh{},
		backend: backend,
	}, nil
}

// ID returns the chunk's unique identifier.
func (c *Chunk) ID() uuid.UUID { return c.id }

// Origin returns the world position of the chunk's minimum corner.
func (c *Chunk) Origin() mgl32.Vec3 { return c.origin }

// Size returns the chunk dimensions in voxels.
func (c *Chunk) Size() voxel.Size { return c.grid.Size() }

// Grid returns the chunk's voxel storage. Edits made through it are not
// visible in the mesh until Rebuild.
func (c *Chunk) Grid() *voxel.Grid { return c.grid }

// Mesh returns the most recently built mesh. Each rebuild stores a fresh
// copy, so a mesh returned earlier is never modified.
func (c *Chunk) Mesh() *mesh.Mesh { return c.mesh }

// Target returns the render target for this chunk.
func (c *Chunk) Target() render.Target {
	return render.Target{ID: c.id, Origin: c.origin}
}

// Generate fills the grid with terrain and rebuilds the mesh.
func (c *Chunk) Generate(g gen.Generator) error {
	g.Generate(c.origin, c.grid)
	return c.Rebuild()
}

// Rebuild re-meshes the whole grid and hands the result to the backend.
func (c *Chunk) Rebuild() error {
	c.mesh = c.builder.Build(c.grid).Clone()
	if err := c.backend.Apply(c.Target(), c.mesh); err != nil {
		return fmt.Errorf("apply mesh for chunk %v: %w", c.origin, err)
	}
	return nil
}

// Contains reports whether world position p lies inside the chunk:
// origin <= p < origin+size on every axis.
func (c *Chunk) Contains(p mgl32.Vec3) bool {
	s := c.grid.Size()
	dims := [3]float32{float32(s.X), float32(s.Y), float32(s.Z)}
	for i := 0; i < 3; i++ {
		if p[i] < c.origin[i] || p[i] >= c.origin[i]+dims[i] {
			return false
		}
	}
	return true
}

// Local converts world position p to grid coordinates by flooring p-origin.
// ok is false when the result lies outside the grid.
func (c *Chunk) Local(p mgl32.Vec3) (x, y, z int, ok bool) {
	// Subtract in float64; float32 rounding can push a point just inside
	// the upper edge onto it.
	x = int(math.Floor(float64(p[0]) - float64(c.origin[0])))
	y = int(math.Floor(float64(p[1]) - float64(c.origin[1])))
	z = int(math.Floor(float64(p[2]) - float64(c.origin[2])))
	return x, y, z, c.grid.InBounds(x, y, z)
}

// Block returns the block at world position p.
func (c *Chunk) Block(p mgl32.Vec3) (voxel.Type, error) {
	x, y, z, ok := c.Local(p)
	if !ok {
		return voxel.Air, fmt.Errorf("%v: %w", p, ErrOutOfRange)
	}
	return c.grid.Get(x, y, z), nil
}

// SetBlock writes t at world position p and rebuilds the mesh. Positions
// outside the chunk leave it unchanged and return ErrOutOfRange.
func (c *Chunk) SetBlock(p mgl32.Vec3, t voxel.Type) error {
	x, y, z, ok := c.Local(p)
	if !ok {
		return fmt.Errorf("%v: %w", p, ErrOutOfRange)
	}
	if !c.grid.Set(x, y, z, t) {
		return fmt.Errorf("invalid block type %v", t)
	}
	return c.Rebuild()
}
