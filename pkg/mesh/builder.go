package mesh

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/OCharnyshevich/voxelmesh/pkg/atlas"
	"github.com/OCharnyshevich/voxelmesh/pkg/voxel"
)

// faceCorners are the unit-cube corners of each face relative to the
// voxel's minimum corner. Triangles (0,1,2) and (0,2,3) of each quad wind
// counter-clockwise seen from outside the voxel.
var faceCorners = [6][4]mgl32.Vec3{
	voxel.Right:  {{1, 0, 0}, {1, 1, 0}, {1, 1, 1}, {1, 0, 1}},
	voxel.Left:   {{0, 0, 1}, {0, 1, 1}, {0, 1, 0}, {0, 0, 0}},
	voxel.Top:    {{0, 1, 0}, {0, 1, 1}, {1, 1, 1}, {1, 1, 0}},
	voxel.Bottom: {{1, 0, 0}, {1, 0, 1}, {0, 0, 1}, {0, 0, 0}},
	voxel.Front:  {{1, 0, 1}, {1, 1, 1}, {0, 1, 1}, {0, 0, 1}},
	voxel.Back:   {{0, 0, 0}, {0, 1, 0}, {1, 1, 0}, {1, 0, 0}},
}

var quadIndices = [6]uint32{0, 1, 2, 0, 2, 3}

// FaceCorners returns the corner template for face d.
func FaceCorners(d voxel.Direction) [4]mgl32.Vec3 {
	return faceCorners[d]
}

// Builder walks a grid and emits the visible faces. A Builder reuses its
// buffers between builds and must not be shared between goroutines.
type Builder struct {
	atlas *atlas.Atlas
	mesh  Mesh
	next  uint32
}

// NewBuilder returns a Builder that takes texture coordinates from a.
func NewBuilder(a *atlas.Atlas) *Builder {
	return &Builder{atlas: a}
}

// Build rebuilds the mesh for g from scratch. The returned mesh is owned by
// the Builder and is only valid until the next call to Build.
func (b *Builder) Build(g *voxel.Grid) *Mesh {
	b.mesh.Reset()
	b.next = 0

	size := g.Size()
	for x := 0; x < size.X; x++ {
		for y := 0; y < size.Y; y++ {
			for z := 0; z < size.Z; z++ {
				t := g.Get(x, y, z)
				if t == voxel.Air {
					continue
				}
				pos := mgl32.Vec3{float32(x), float32(y), float32(z)}
				for _, d := range voxel.Directions {
					if voxel.FaceExposed(g, x, y, z, d) {
						b.addFace(t, d, pos)
					}
				}
			}
		}
	}
	return &b.mesh
}

func (b *Builder) addFace(t voxel.Type, d voxel.Direction, pos mgl32.Vec3) {
	for _, c := range faceCorners[d] {
		b.mesh.Vertices = append(b.mesh.Vertices, pos.Add(c))
	}
	for _, i := range quadIndices {
		b.mesh.Triangles = append(b.mesh.Triangles, b.next+i)
	}
	b.next += 4

	uv := b.atlas.UV(t, d)
	b.mesh.UV = append(b.mesh.UV, uv[:]...)
}

// Build is a convenience wrapper that returns a mesh owned by the caller.
func Build(g *voxel.Grid, a *atlas.Atlas) *Mesh {
	return NewBuilder(a).Build(g).Clone()
}
