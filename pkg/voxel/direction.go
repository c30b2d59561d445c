package voxel

// Direction is one of the six axis-aligned faces of a voxel.
type Direction uint8

// Directions are listed in the order faces are evaluated when meshing.
const (
	Right  Direction = iota // +X
	Left                    // -X
	Top                     // +Y
	Bottom                  // -Y
	Front                   // +Z
	Back                    // -Z
)

// Directions holds all faces in evaluation order.
var Directions = [6]Direction{Right, Left, Top, Bottom, Front, Back}

var offsets = [6][3]int{
	Right:  {1, 0, 0},
	Left:   {-1, 0, 0},
	Top:    {0, 1, 0},
	Bottom: {0, -1, 0},
	Front:  {0, 0, 1},
	Back:   {0, 0, -1},
}

// Offset returns the unit step towards the neighbour across this face.
func (d Direction) Offset() (dx, dy, dz int) {
	o := offsets[d]
	return o[0], o[1], o[2]
}

// Opposite returns the face pointing the other way along the same axis.
func (d Direction) Opposite() Direction {
	return d ^ 1
}

// Side reports whether the face is one of the four vertical sides.
func (d Direction) Side() bool {
	return d != Top && d != Bottom
}

func (d Direction) String() string {
	switch d {
	case Right:
		return "+x"
	case Left:
		return "-x"
	case Top:
		return "+y"
	case Bottom:
		return "-y"
	case Front:
		return "+z"
	case Back:
		return "-z"
	default:
		return "invalid"
	}
}

// ParseDirection parses the "+x"/"-y" form produced by String.
func ParseDirection(s string) (Direction, bool) {
	for _, d := range Directions {
		if d.String() == s {
			return d, true
		}
	}
	return 0, false
}
