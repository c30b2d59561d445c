package gen

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/OCharnyshevich/voxelmesh/pkg/voxel"
)

func newGrid(t *testing.T, s voxel.Size) *voxel.Grid {
	t.Helper()
	g, err := voxel.NewGrid(s)
	if err != nil {
		t.Fatalf("NewGrid(%s): %v", s, err)
	}
	return g
}

func TestClassifyLayers(t *testing.T) {
	tr := NewTerrain(FlatHeight(10))

	cases := []struct {
		y    float64
		want voxel.Type
	}{
		{0, voxel.Stone},
		{5, voxel.Stone},
		{6, voxel.Dirt},
		{9, voxel.Dirt},
		{10, voxel.GrassBlock},
		{11, voxel.Air},
		{63, voxel.Air},
	}
	for _, c := range cases {
		if got := tr.Classify(c.y, 10); got != c.want {
			t.Errorf("Classify(%v, 10) = %v, want %v", c.y, got, c.want)
		}
	}
}

func TestClassifyFractionalHeightSkipsGrass(t *testing.T) {
	tr := NewTerrain(nil)
	// No whole y equals 10.5, so the column goes straight from dirt to air.
	if got := tr.Classify(10, 10.5); got != voxel.Dirt {
		t.Errorf("Classify(10, 10.5) = %v, want dirt", got)
	}
	if got := tr.Classify(11, 10.5); got != voxel.Air {
		t.Errorf("Classify(11, 10.5) = %v, want air", got)
	}
}

func TestGenerateZeroHeightSmallGrid(t *testing.T) {
	g := newGrid(t, voxel.Size{X: 2, Y: 2, Z: 2})
	NewTerrain(FlatHeight(0)).Generate(mgl32.Vec3{}, g)

	for x := 0; x < 2; x++ {
		for z := 0; z < 2; z++ {
			if got := g.Get(x, 0, z); got != voxel.GrassBlock {
				t.Errorf("block (%d,0,%d) = %v, want grass_block", x, z, got)
			}
			if got := g.Get(x, 1, z); got != voxel.Air {
				t.Errorf("block (%d,1,%d) = %v, want air", x, z, got)
			}
		}
	}
}

func TestGenerateOverwritesGrid(t *testing.T) {
	g := newGrid(t, voxel.Size{X: 2, Y: 4, Z: 2})
	g.Fill(voxel.OakPlanks)
	NewTerrain(FlatHeight(-10)).Generate(mgl32.Vec3{}, g)

	if got := g.Count(voxel.Air); got != 16 {
		t.Errorf("Count(Air) = %d, want 16", got)
	}
}

func TestGenerateSamplesWorldColumns(t *testing.T) {
	var seen [][2]float64
	h := HeightFunc(func(x, z float64) float64 {
		seen = append(seen, [2]float64{x, z})
		return 0
	})
	g := newGrid(t, voxel.Size{X: 2, Y: 1, Z: 2})
	NewTerrain(h).Generate(mgl32.Vec3{32, 0, -16}, g)

	want := [][2]float64{{32, -16}, {32, -15}, {33, -16}, {33, -15}}
	if len(seen) != len(want) {
		t.Fatalf("sampled %d columns, want %d", len(seen), len(want))
	}
	for i := range want {
		if seen[i] != want[i] {
			t.Errorf("sample %d = %v, want %v", i, seen[i], want[i])
		}
	}
}

func TestGenerateColumnLayering(t *testing.T) {
	h := HeightFunc(func(x, z float64) float64 { return x + 5 })
	g := newGrid(t, voxel.Size{X: 3, Y: 16, Z: 1})
	NewTerrain(h).Generate(mgl32.Vec3{}, g)

	for x := 0; x < 3; x++ {
		surface := x + 5
		for y := 0; y < 16; y++ {
			var want voxel.Type
			switch {
			case y < surface-4:
				want = voxel.Stone
			case y < surface:
				want = voxel.Dirt
			case y == surface:
				want = voxel.GrassBlock
			default:
				want = voxel.Air
			}
			if got := g.Get(x, y, 0); got != want {
				t.Errorf("block (%d,%d,0) = %v, want %v", x, y, got, want)
			}
		}
	}
}

func TestGenerateDeterministic(t *testing.T) {
	origin := mgl32.Vec3{48, 0, -32}
	g1 := newGrid(t, voxel.DefaultSize)
	g2 := newGrid(t, voxel.DefaultSize)

	NewTerrain(NewNoiseHeight(42)).Generate(origin, g1)
	NewTerrain(NewNoiseHeight(42)).Generate(origin, g2)

	if !g1.Equal(g2) {
		t.Fatal("same seed and origin produced different grids")
	}
	if g1.Count(voxel.GrassBlock) != 16*16 {
		t.Errorf("grass count = %d, want one per column (%d)", g1.Count(voxel.GrassBlock), 16*16)
	}
}
