package gen

// Simplex noise after Ken Perlin's algorithm. Values are in [-1, 1].

var grad2 = [8][2]float64{
	{1, 1},
	{-1, 1},
	{1, -1},
	{-1, -1},
	{1, 0},
	{-1, 0},
	{0, 1},
	{0, -1},
}

// NoiseGenerator produces deterministic 2D simplex noise from a seed.
type NoiseGenerator struct {
	perm [512]int
}

// NewNoiseGenerator creates a noise generator with a seeded permutation table.
func NewNoiseGenerator(seed int64) *NoiseGenerator {
	ng := &NoiseGenerator{}

	var p [256]int
	for i := range p {
		p[i] = i
	}

	// Fisher-Yates shuffle driven by an LCG.
	s := seed
	for i := 255; i > 0; i-- {
		s = s*6364136223846793005 + 1442695040888963407
		j := int((s>>33)&0x7FFFFFFF) % (i + 1)
		p[i], p[j] = p[j], p[i]
	}

	for i := range ng.perm {
		ng.perm[i] = p[i&255]
	}
	return ng
}

// Noise2D returns simplex noise at (x, y).
func (ng *NoiseGenerator) Noise2D(x, y float64) float64 {
	const (
		f2 = 0.36602540378443864676 // (sqrt(3) - 1) / 2
		g2 = 0.21132486540518711775 // (3 - sqrt(3)) / 6
	)

	s := (x + y) * f2
	i := fastFloor(x + s)
	j := fastFloor(y + s)

	t := float64(i+j) * g2
	x0 := x - (float64(i) - t)
	y0 := y - (float64(j) - t)

	var i1, j1 int
	if x0 > y0 {
		i1 = 1
	} else {
		j1 = 1
	}

	x1 := x0 - float64(i1) + g2
	y1 := y0 - float64(j1) + g2
	x2 := x0 - 1.0 + 2.0*g2
	y2 := y0 - 1.0 + 2.0*g2

	ii := i & 255
	jj := j & 255

	n0 := corner(x0, y0, ng.perm[ii+ng.perm[jj]])
	n1 := corner(x1, y1, ng.perm[ii+i1+ng.perm[jj+j1]])
	n2 := corner(x2, y2, ng.perm[ii+1+ng.perm[jj+1]])

	return 70.0 * (n0 + n1 + n2)
}

// OctaveNoise2D sums octaves of Noise2D, each at double the frequency and
// persistence times the amplitude of the previous one, normalised to [-1, 1].
func (ng *NoiseGenerator) OctaveNoise2D(x, y float64, octaves int, persistence float64) float64 {
	if octaves < 1 {
		octaves = 1
	}
	var total, maxVal float64
	frequency := 1.0
	amplitude := 1.0

	for range octaves {
		total += ng.Noise2D(x*frequency, y*frequency) * amplitude
		maxVal += amplitude
		amplitude *= persistence
		frequency *= 2.0
	}
	return total / maxVal
}

func corner(x, y float64, hash int) float64 {
	t := 0.5 - x*x - y*y
	if t < 0 {
		return 0
	}
	g := grad2[hash&7]
	t *= t
	return t * t * (g[0]*x + g[1]*y)
}

func fastFloor(x float64) int {
	xi := int(x)
	if x < float64(xi) {
		return xi - 1
	}
	return xi
}
