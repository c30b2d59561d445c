package voxel

import "fmt"

// Type identifies the kind of block stored in a voxel.
type Type uint8

const (
	Air Type = iota
	Stone
	GrassBlock
	Dirt
	Cobblestone
	OakPlanks
	OakSapling

	typeCount
)

var typeNames = [typeCount]string{
	Air:         "air",
	Stone:       "stone",
	GrassBlock:  "grass_block",
	Dirt:        "dirt",
	Cobblestone: "cobblestone",
	OakPlanks:   "oak_planks",
	OakSapling:  "oak_sapling",
}

// Types returns every defined block type in declaration order.
func Types() []Type {
	out := make([]Type, 0, typeCount)
	for t := Air; t < typeCount; t++ {
		out = append(out, t)
	}
	return out
}

// Valid reports whether t is one of the defined block types.
func (t Type) Valid() bool { return t < typeCount }

// IsSolid reports whether the block occupies its cell. Only air is empty.
func (t Type) IsSolid() bool { return t != Air }

func (t Type) String() string {
	if !t.Valid() {
		return fmt.Sprintf("type(%d)", uint8(t))
	}
	return typeNames[t]
}

// ParseType returns the block type with the given name.
func ParseType(name string) (Type, error) {
	for t, n := range typeNames {
		if n == name {
			return Type(t), nil
		}
	}
	return Air, fmt.Errorf("unknown block type %q", name)
}
