// Package mesh turns a voxel grid into triangle buffers by emitting the
// faces of solid voxels that border air or the edge of the grid.
package mesh

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// ErrInvariant is returned by Validate when the buffers are inconsistent.
var ErrInvariant = errors.New("mesh invariant violated")

// Mesh holds three parallel buffers. Every face contributes four vertices,
// four UVs and six indices forming two counter-clockwise triangles.
type Mesh struct {
	Vertices  []mgl32.Vec3
	Triangles []uint32
	UV        []mgl32.Vec2
}

// Faces returns the number of quads in the mesh.
func (m *Mesh) Faces() int { return len(m.Vertices) / 4 }

// Empty reports whether the mesh has no geometry.
func (m *Mesh) Empty() bool { return len(m.Vertices) == 0 }

// Reset discards the contents but keeps the allocated buffers.
func (m *Mesh) Reset() {
	m.Vertices = m.Vertices[:0]
	m.Triangles = m.Triangles[:0]
	m.UV = m.UV[:0]
}

// Clone returns a copy that shares no memory with m.
func (m *Mesh) Clone() *Mesh {
	return &Mesh{
		Vertices:  append([]mgl32.Vec3(nil), m.Vertices...),
		Triangles: append([]uint32(nil), m.Triangles...),
		UV:        append([]mgl32.Vec2(nil), m.UV...),
	}
}

// Validate checks the face-emission invariants.
func (m *Mesh) Validate() error {
	nv := len(m.Vertices)
	if nv%4 != 0 {
		return fmt.Errorf("%w: %d vertices is not a whole number of faces", ErrInvariant, nv)
	}
	if len(m.UV) != nv {
		return fmt.Errorf("%w: %d uvs for %d vertices", ErrInvariant, len(m.UV), nv)
	}
	if want := nv / 4 * 6; len(m.Triangles) != want {
		return fmt.Errorf("%w: %d indices, want %d", ErrInvariant, len(m.Triangles), want)
	}
	for i, idx := range m.Triangles {
		if int(idx) >= nv {
			return fmt.Errorf("%w: index %d at %d out of range", ErrInvariant, idx, i)
		}
	}
	return nil
}

// Normals computes per-vertex normals by accumulating the unnormalised
// face normal of every triangle that uses the vertex.
func Normals(m *Mesh) []mgl32.Vec3 {
	normals := make([]mgl32.Vec3, len(m.Vertices))
	for i := 0; i+2 < len(m.Triangles); i += 3 {
		a, b, c := m.Triangles[i], m.Triangles[i+1], m.Triangles[i+2]
		n := TriangleNormal(m.Vertices[a], m.Vertices[b], m.Vertices[c])
		normals[a] = normals[a].Add(n)
		normals[b] = normals[b].Add(n)
		normals[c] = normals[c].Add(n)
	}
	for i, n := range normals {
		if n.Len() > 0 {
			normals[i] = n.Normalize()
		}
	}
	return normals
}

// TriangleNormal returns the unnormalised normal of triangle abc. It points
// towards the side from which a, b, c appear counter-clockwise in a
// right-handed frame.
func TriangleNormal(a, b, c mgl32.Vec3) mgl32.Vec3 {
	return b.Sub(a).Cross(c.Sub(a))
}
