package voxel

// FaceExposed reports whether the face of cell (x, y, z) in direction d is
// visible: the neighbour across it is outside the grid or is air.
// Neighbouring chunks are never consulted, so faces on the grid boundary are
// always exposed.
func FaceExposed(g *Grid, x, y, z int, d Direction) bool {
	dx, dy, dz := d.Offset()
	nx, ny, nz := x+dx, y+dy, z+dz
	if !g.InBounds(nx, ny, nz) {
		return true
	}
	return g.Get(nx, ny, nz) == Air
}

// FaceMask is a bit set of directions, bit i set for Direction(i).
type FaceMask uint8

// Has reports whether d is in the mask.
func (m FaceMask) Has(d Direction) bool { return m&(1<<d) != 0 }

// Count returns the number of directions in the mask.
func (m FaceMask) Count() int {
	n := 0
	for _, d := range Directions {
		if m.Has(d) {
			n++
		}
	}
	return n
}

// ExposedFaces returns the set of visible faces of cell (x, y, z).
func ExposedFaces(g *Grid, x, y, z int) FaceMask {
	var m FaceMask
	for _, d := range Directions {
		if FaceExposed(g, x, y, z, d) {
			m |= 1 << d
		}
	}
	return m
}
