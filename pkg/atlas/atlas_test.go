package atlas

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/OCharnyshevich/voxelmesh/pkg/voxel"
)

func TestDefaultTableTiles(t *testing.T) {
	a := Default()

	cases := []struct {
		block voxel.Type
		face  voxel.Direction
		want  Tile
	}{
		{voxel.Stone, voxel.Top, Tile{1, 0}},
		{voxel.Stone, voxel.Left, Tile{1, 0}},
		{voxel.GrassBlock, voxel.Top, Tile{0, 0}},
		{voxel.GrassBlock, voxel.Bottom, Tile{2, 0}},
		{voxel.GrassBlock, voxel.Right, Tile{2, 0}},
		{voxel.GrassBlock, voxel.Back, Tile{2, 0}},
		{voxel.Dirt, voxel.Front, Tile{2, 0}},
		{voxel.Cobblestone, voxel.Top, Tile{0, 1}},
		{voxel.OakPlanks, voxel.Bottom, Tile{4, 0}},
	}
	for _, c := range cases {
		got, err := a.Tile(c.block, c.face)
		if err != nil {
			t.Fatalf("Tile(%v, %v): %v", c.block, c.face, err)
		}
		if got != c.want {
			t.Errorf("Tile(%v, %v) = %v, want %v", c.block, c.face, got, c.want)
		}
	}
}

func TestGrassSidesNeverUseTopTile(t *testing.T) {
	a := Default()
	for _, d := range voxel.Directions {
		got, _ := a.Tile(voxel.GrassBlock, d)
		if d == voxel.Top {
			continue
		}
		if got == (Tile{0, 0}) {
			t.Errorf("grass %v face uses the top tile", d)
		}
	}
}

func TestUnmappedFallsBackToMissingTile(t *testing.T) {
	a := Default()
	tile, err := a.Tile(voxel.OakSapling, voxel.Top)
	if !errors.Is(err, ErrUnmapped) {
		t.Fatalf("Tile(oak_sapling) error = %v, want ErrUnmapped", err)
	}
	if tile != a.Missing() || tile != (Tile{15, 15}) {
		t.Errorf("Tile(oak_sapling) = %v, want missing tile (15,15)", tile)
	}

	uv := a.UV(voxel.OakSapling, voxel.Top)
	if uv != a.TileUV(Tile{15, 15}) {
		t.Errorf("UV(oak_sapling) = %v, want missing-tile UVs", uv)
	}
}

func TestTileUVCorners(t *testing.T) {
	a := Default()
	const step = float32(1) / 16

	cases := []struct {
		tile Tile
		want [4]mgl32.Vec2
	}{
		{Tile{0, 0}, [4]mgl32.Vec2{{0, 15 * step}, {0, 1}, {step, 1}, {step, 15 * step}}},
		{Tile{1, 0}, [4]mgl32.Vec2{{step, 15 * step}, {step, 1}, {2 * step, 1}, {2 * step, 15 * step}}},
		{Tile{0, 1}, [4]mgl32.Vec2{{0, 14 * step}, {0, 15 * step}, {step, 15 * step}, {step, 14 * step}}},
		{Tile{15, 15}, [4]mgl32.Vec2{{15 * step, 0}, {15 * step, step}, {1, step}, {1, 0}}},
	}
	for _, c := range cases {
		if got := a.TileUV(c.tile); got != c.want {
			t.Errorf("TileUV(%v) = %v, want %v", c.tile, got, c.want)
		}
	}
}

func TestNewRejectsTilesOutsideAtlas(t *testing.T) {
	if _, err := New(0, nil); err == nil {
		t.Error("New(0) succeeded, want error")
	}
	_, err := New(4, Table{voxel.Stone: {Tile: Tile{4, 0}}})
	if err == nil {
		t.Error("New with tile (4,0) in 4x4 atlas succeeded, want error")
	}
	_, err = New(4, Table{voxel.Stone: {Tile: Tile{0, 0}, Faces: map[voxel.Direction]Tile{voxel.Top: {0, -1}}}})
	if err == nil {
		t.Error("New with face tile (0,-1) succeeded, want error")
	}
}

func TestLoadTable(t *testing.T) {
	src := `{
	  "tiles": 8,
	  "blocks": {
	    "stone": {"tile": [3, 1]},
	    "grass_block": {"tile": [5, 0], "faces": {"+y": [6, 0], "-y": [2, 0]}}
	  }
	}`
	a, err := Load(strings.NewReader(src))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if a.Tiles() != 8 {
		t.Errorf("Tiles() = %d, want 8", a.Tiles())
	}
	if a.Missing() != (Tile{7, 7}) {
		t.Errorf("Missing() = %v, want (7,7)", a.Missing())
	}
	checks := []struct {
		block voxel.Type
		face  voxel.Direction
		want  Tile
	}{
		{voxel.Stone, voxel.Front, Tile{3, 1}},
		{voxel.GrassBlock, voxel.Top, Tile{6, 0}},
		{voxel.GrassBlock, voxel.Bottom, Tile{2, 0}},
		{voxel.GrassBlock, voxel.Left, Tile{5, 0}},
	}
	for _, c := range checks {
		got, err := a.Tile(c.block, c.face)
		if err != nil {
			t.Fatalf("Tile(%v, %v): %v", c.block, c.face, err)
		}
		if got != c.want {
			t.Errorf("Tile(%v, %v) = %v, want %v", c.block, c.face, got, c.want)
		}
	}
	if _, err := a.Tile(voxel.Dirt, voxel.Top); !errors.Is(err, ErrUnmapped) {
		t.Errorf("Tile(dirt) error = %v, want ErrUnmapped", err)
	}
}

func TestLoadRejectsInvalidTables(t *testing.T) {
	cases := map[string]string{
		"not json":      `{`,
		"missing tiles": `{"blocks": {}}`,
		"short tile":    `{"tiles": 16, "blocks": {"stone": {"tile": [1]}}}`,
		"bad face":      `{"tiles": 16, "blocks": {"stone": {"tile": [1, 0], "faces": {"up": [0, 0]}}}}`,
		"unknown block": `{"tiles": 16, "blocks": {"bedrock": {"tile": [1, 0]}}}`,
		"outside atlas": `{"tiles": 2, "blocks": {"stone": {"tile": [2, 0]}}}`,
		"extra field":   `{"tiles": 16, "blocks": {}, "size": 256}`,
	}
	for name, src := range cases {
		if _, err := Load(strings.NewReader(src)); err == nil {
			t.Errorf("%s: Load succeeded, want error", name)
		}
	}
}

func TestMarshalRoundTrip(t *testing.T) {
	data, err := Default().Marshal()
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	a, err := Load(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	for _, b := range voxel.Types() {
		for _, d := range voxel.Directions {
			want, wantErr := Default().Tile(b, d)
			got, gotErr := a.Tile(b, d)
			if got != want || (wantErr == nil) != (gotErr == nil) {
				t.Errorf("Tile(%v, %v) = %v/%v, want %v/%v", b, d, got, gotErr, want, wantErr)
			}
		}
	}
}
