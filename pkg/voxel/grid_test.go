package voxel

import "testing"

func mustGrid(t *testing.T, s Size) *Grid {
	t.Helper()
	g, err := NewGrid(s)
	if err != nil {
		t.Fatalf("NewGrid(%s): %v", s, err)
	}
	return g
}

func TestNewGridAllAir(t *testing.T) {
	g := mustGrid(t, DefaultSize)
	if got := g.Count(Air); got != 16*64*16 {
		t.Errorf("Count(Air) = %d, want %d", got, 16*64*16)
	}
	if got := g.Solid(); got != 0 {
		t.Errorf("Solid() = %d, want 0", got)
	}
}

func TestNewGridRejectsEmptySize(t *testing.T) {
	for _, s := range []Size{{0, 1, 1}, {1, -1, 1}, {1, 1, 0}} {
		if _, err := NewGrid(s); err == nil {
			t.Errorf("NewGrid(%s) succeeded, want error", s)
		}
	}
}

func TestGridSetGet(t *testing.T) {
	g := mustGrid(t, Size{4, 8, 4})

	if !g.Set(1, 2, 3, Cobblestone) {
		t.Fatal("Set(1,2,3) returned false")
	}
	if got := g.Get(1, 2, 3); got != Cobblestone {
		t.Errorf("Get(1,2,3) = %v, want cobblestone", got)
	}
	// Neighbours must be untouched.
	if got := g.Get(1, 2, 2); got != Air {
		t.Errorf("Get(1,2,2) = %v, want air", got)
	}
	if got := g.Get(2, 2, 3); got != Air {
		t.Errorf("Get(2,2,3) = %v, want air", got)
	}
}

func TestGridOutOfBounds(t *testing.T) {
	g := mustGrid(t, Size{2, 2, 2})
	g.Fill(Stone)

	cases := [][3]int{{-1, 0, 0}, {2, 0, 0}, {0, -1, 0}, {0, 2, 0}, {0, 0, -1}, {0, 0, 2}}
	for _, c := range cases {
		if g.InBounds(c[0], c[1], c[2]) {
			t.Errorf("InBounds(%v) = true, want false", c)
		}
		if got := g.Get(c[0], c[1], c[2]); got != Air {
			t.Errorf("Get(%v) = %v, want air", c, got)
		}
		if g.Set(c[0], c[1], c[2], Dirt) {
			t.Errorf("Set(%v) = true, want false", c)
		}
	}
	if got := g.Count(Stone); got != 8 {
		t.Errorf("Count(Stone) = %d, want 8", got)
	}
}

func TestGridSetRejectsInvalidType(t *testing.T) {
	g := mustGrid(t, Size{1, 1, 1})
	if g.Set(0, 0, 0, Type(200)) {
		t.Error("Set with invalid type returned true")
	}
	if got := g.Get(0, 0, 0); got != Air {
		t.Errorf("Get = %v, want air", got)
	}
}

func TestGridCloneEqual(t *testing.T) {
	g := mustGrid(t, Size{3, 3, 3})
	g.Set(0, 0, 0, Dirt)
	c := g.Clone()
	if !g.Equal(c) {
		t.Fatal("clone differs from original")
	}
	c.Set(0, 0, 0, Stone)
	if g.Equal(c) {
		t.Error("editing clone changed equality")
	}
	if got := g.Get(0, 0, 0); got != Dirt {
		t.Errorf("original Get = %v, want dirt", got)
	}
}

func TestParseType(t *testing.T) {
	for _, typ := range Types() {
		got, err := ParseType(typ.String())
		if err != nil {
			t.Fatalf("ParseType(%q): %v", typ.String(), err)
		}
		if got != typ {
			t.Errorf("ParseType(%q) = %v, want %v", typ.String(), got, typ)
		}
	}
	if _, err := ParseType("bedrock"); err == nil {
		t.Error("ParseType(bedrock) succeeded, want error")
	}
}
