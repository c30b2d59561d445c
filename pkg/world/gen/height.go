package gen

import "math"

// HeightSource is the terrain surface function sampled per world column.
// Implementations must be deterministic and free of side effects.
type HeightSource interface {
	Height(x, z float64) float64
}

// HeightFunc adapts a plain function to HeightSource.
type HeightFunc func(x, z float64) float64

func (f HeightFunc) Height(x, z float64) float64 { return f(x, z) }

// FlatHeight is a constant surface at the given height.
type FlatHeight float64

func (h FlatHeight) Height(_, _ float64) float64 { return float64(h) }

// NoiseHeight shapes octave simplex noise into a surface height.
// The result is floored so surface cells land on whole voxels.
type NoiseHeight struct {
	Noise       *NoiseGenerator
	Base        float64 // mean surface height
	Amplitude   float64 // maximum deviation from Base
	Scale       float64 // world units per noise unit
	Octaves     int
	Persistence float64
}

// NewNoiseHeight returns a NoiseHeight with the default terrain shape.
func NewNoiseHeight(seed int64) *NoiseHeight {
	return &NoiseHeight{
		Noise:       NewNoiseGenerator(seed),
		Base:        32,
		Amplitude:   12,
		Scale:       64,
		Octaves:     4,
		Persistence: 0.5,
	}
}

func (n *NoiseHeight) Height(x, z float64) float64 {
	scale := n.Scale
	if scale <= 0 {
		scale = 1
	}
	v := n.Noise.OctaveNoise2D(x/scale, z/scale, n.Octaves, n.Persistence)
	return math.Floor(n.Base + v*n.Amplitude)
}
