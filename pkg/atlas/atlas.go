// Package atlas maps block faces to tiles of a square texture atlas and
// converts tiles to normalised UV rectangles.
package atlas

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/OCharnyshevich/voxelmesh/pkg/voxel"
)

// DefaultTiles is the number of tiles along each atlas edge.
const DefaultTiles = 16

// ErrUnmapped is returned for block types with no tile in the table.
var ErrUnmapped = errors.New("no atlas tile for block")

// Tile addresses one tile of the atlas. (0, 0) is the top-left tile.
type Tile struct {
	X, Y int
}

// Entry is the tile mapping for one block type. Faces overrides Tile for the
// listed directions.
type Entry struct {
	Tile  Tile
	Faces map[voxel.Direction]Tile
}

// Table maps block types to atlas tiles.
type Table map[voxel.Type]Entry

// DefaultTable is the reference tile layout. Grass shows its top tile only
// on +y; every other grass face shares the dirt tile. Air and oak saplings
// have no tile.
func DefaultTable() Table {
	return Table{
		voxel.Stone: {Tile: Tile{1, 0}},
		voxel.GrassBlock: {
			Tile:  Tile{2, 0},
			Faces: map[voxel.Direction]Tile{voxel.Top: {0, 0}},
		},
		voxel.Dirt:        {Tile: Tile{2, 0}},
		voxel.Cobblestone: {Tile: Tile{0, 1}},
		voxel.OakPlanks:   {Tile: Tile{4, 0}},
	}
}

// Atlas resolves block faces to UV coordinates.
type Atlas struct {
	tiles   int
	table   Table
	missing Tile
}

// New creates an atlas with tiles×tiles cells. The bottom-right tile is
// reserved for blocks without a mapping.
func New(tiles int, table Table) (*Atlas, error) {
	if tiles <= 0 {
		return nil, fmt.Errorf("invalid atlas size %d", tiles)
	}
	for t, e := range table {
		if err := checkTile(tiles, e.Tile); err != nil {
			return nil, fmt.Errorf("%v: %w", t, err)
		}
		for d, ft := range e.Faces {
			if err := checkTile(tiles, ft); err != nil {
				return nil, fmt.Errorf("%v %v face: %w", t, d, err)
			}
		}
	}
	return &Atlas{
		tiles:   tiles,
		table:   table,
		missing: Tile{tiles - 1, tiles - 1},
	}, nil
}

// Default returns the reference 16×16 atlas.
func Default() *Atlas {
	a, _ := New(DefaultTiles, DefaultTable())
	return a
}

func checkTile(tiles int, t Tile) error {
	if t.X < 0 || t.X >= tiles || t.Y < 0 || t.Y >= tiles {
		return fmt.Errorf("tile (%d,%d) outside %dx%d atlas", t.X, t.Y, tiles, tiles)
	}
	return nil
}

// Tiles returns the number of tiles along each atlas edge.
func (a *Atlas) Tiles() int { return a.tiles }

// Missing returns the fallback tile used for unmapped blocks.
func (a *Atlas) Missing() Tile { return a.missing }

// Tile returns the tile for face d of block b.
func (a *Atlas) Tile(b voxel.Type, d voxel.Direction) (Tile, error) {
	e, ok := a.table[b]
	if !ok {
		return a.missing, fmt.Errorf("%v: %w", b, ErrUnmapped)
	}
	if t, ok := e.Faces[d]; ok {
		return t, nil
	}
	return e.Tile, nil
}

// UV returns the four texture coordinates for face d of block b, in the
// same corner order the mesh builder emits vertices. Unmapped blocks use
// the missing tile so every face still gets four coordinates.
func (a *Atlas) UV(b voxel.Type, d voxel.Direction) [4]mgl32.Vec2 {
	t, _ := a.Tile(b, d)
	return a.TileUV(t)
}

// TileUV returns the UV rectangle for tile t. Atlas rows count down from
// the top while V counts up from the bottom, so the row index is flipped.
func (a *Atlas) TileUV(t Tile) [4]mgl32.Vec2 {
	n := float32(a.tiles)
	step := 1 / n
	u := float32(t.X) * step
	v := (n - 1 - float32(t.Y)) * step

	return [4]mgl32.Vec2{
		{u, v},
		{u, v + step},
		{u + step, v + step},
		{u + step, v},
	}
}
