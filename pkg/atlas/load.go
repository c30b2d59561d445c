package atlas

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"io"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/OCharnyshevich/voxelmesh/pkg/voxel"
)

//go:embed table.schema.json
var tableSchemaJSON string

var tableSchema = jsonschema.MustCompileString("table.schema.json", tableSchemaJSON)

type fileTable struct {
	Tiles  int                  `json:"tiles"`
	Blocks map[string]fileEntry `json:"blocks"`
}

type fileEntry struct {
	Tile  [2]int            `json:"tile"`
	Faces map[string][2]int `json:"faces,omitempty"`
}

// Load reads a JSON tile table and builds an atlas from it.
//
//	{"tiles": 16, "blocks": {"grass_block": {"tile": [2, 0], "faces": {"+y": [0, 0]}}}}
func Load(r io.Reader) (*Atlas, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read tile table: %w", err)
	}

	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parse tile table: %w", err)
	}
	if err := tableSchema.Validate(doc); err != nil {
		return nil, fmt.Errorf("validate tile table: %w", err)
	}

	var ft fileTable
	if err := json.Unmarshal(raw, &ft); err != nil {
		return nil, fmt.Errorf("decode tile table: %w", err)
	}

	table := make(Table, len(ft.Blocks))
	for name, fe := range ft.Blocks {
		b, err := voxel.ParseType(name)
		if err != nil {
			return nil, err
		}
		e := Entry{Tile: Tile{fe.Tile[0], fe.Tile[1]}}
		if len(fe.Faces) > 0 {
			e.Faces = make(map[voxel.Direction]Tile, len(fe.Faces))
			for face, t := range fe.Faces {
				d, ok := voxel.ParseDirection(face)
				if !ok {
					return nil, fmt.Errorf("%s: unknown face %q", name, face)
				}
				e.Faces[d] = Tile{t[0], t[1]}
			}
		}
		table[b] = e
	}
	return New(ft.Tiles, table)
}

// Marshal encodes the atlas table in the format read by Load.
func (a *Atlas) Marshal() ([]byte, error) {
	ft := fileTable{Tiles: a.tiles, Blocks: make(map[string]fileEntry, len(a.table))}
	for b, e := range a.table {
		fe := fileEntry{Tile: [2]int{e.Tile.X, e.Tile.Y}}
		if len(e.Faces) > 0 {
			fe.Faces = make(map[string][2]int, len(e.Faces))
			for d, t := range e.Faces {
				fe.Faces[d.String()] = [2]int{t.X, t.Y}
			}
		}
		ft.Blocks[b.String()] = fe
	}
	return json.MarshalIndent(ft, "", "  ")
}
