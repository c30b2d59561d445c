package gen

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/OCharnyshevich/voxelmesh/pkg/voxel"
)

// Generator fills a chunk grid deterministically from its world origin.
type Generator interface {
	Generate(origin mgl32.Vec3, g *voxel.Grid)
	SurfaceHeight(x, z float64) float64
}

// Terrain is the layered height-map generator: stone deep below the
// surface, a dirt band of SoilDepth above it, grass on the surface and air
// above.
type Terrain struct {
	Heights   HeightSource
	SoilDepth float64
}

// NewTerrain creates a Terrain with the standard 4-block soil band.
func NewTerrain(h HeightSource) *Terrain {
	return &Terrain{Heights: h, SoilDepth: 4}
}

// Generate overwrites every cell of g. Column (x, z) samples the height
// source at origin.xz + (x, z).
func (t *Terrain) Generate(origin mgl32.Vec3, g *voxel.Grid) {
	size := g.Size()
	ox, oy, oz := float64(origin.X()), float64(origin.Y()), float64(origin.Z())

	for x := 0; x < size.X; x++ {
		for z := 0; z < size.Z; z++ {
			h := t.Heights.Height(ox+float64(x), oz+float64(z))
			for y := 0; y < size.Y; y++ {
				g.Set(x, y, z, t.Classify(oy+float64(y), h))
			}
		}
	}
}

// SurfaceHeight returns the height source value for world column (x, z).
func (t *Terrain) SurfaceHeight(x, z float64) float64 {
	return t.Heights.Height(x, z)
}

// Classify returns the block for height y in a column whose surface is h.
// The rules are evaluated in order and the first match wins.
func (t *Terrain) Classify(y, h float64) voxel.Type {
	switch {
	case y < h-t.SoilDepth:
		return voxel.Stone
	case y < h:
		return voxel.Dirt
	case y == h:
		return voxel.GrassBlock
	default:
		return voxel.Air
	}
}
