package noise

import (
	"github.com/dgravesa/go-parallel/parallel"

	"terragen/internal/core"
)

// layerSpec describes one of the fixed synthesis layers. Frequency
// multipliers step from continent scale down to coastline detail; the
// weights sum to 1 so the stack stays in range before amplitude scaling.
type layerSpec struct {
	freqMult    float32
	octaves     int
	persistence float32
	lacunarity  float32
	weight      float32
	ridge       bool
}

var elevationLayers = [5]layerSpec{
	{freqMult: 0.001, octaves: 4, persistence: 0.4, lacunarity: 2.0, weight: 0.40},  // continental
	{freqMult: 0.005, octaves: 6, persistence: 0.5, lacunarity: 2.1, weight: 0.30},  // landmass
	{freqMult: 0.02, octaves: 6, persistence: 0.45, lacunarity: 2.2, weight: 0.15},  // islands
	{freqMult: 0.08, octaves: 6, persistence: 0.4, lacunarity: 2.3, weight: 0.10},   // coastal
	{freqMult: 0.025, weight: 0.05, ridge: true},                                    // ridge
}

// Elevation evaluates the layered terrain noise at one world position.
// Pure: identical (position, params) always yields identical output.
func Elevation(p core.Vec2, params Params) float32 {
	bx := (p.X*params.Scale + params.OffsetX) * params.Frequency
	by := (p.Y*params.Scale + params.OffsetY) * params.Frequency

	var sum float32
	for i, layer := range elevationLayers {
		seed := params.Seed + uint32(i)
		x := bx * layer.freqMult
		y := by * layer.freqMult

		var v float32
		if layer.ridge {
			v = Ridge(x, y, seed)
		} else {
			v = FBM(x, y, seed, layer.octaves, layer.persistence, layer.lacunarity)
		}
		sum += layer.weight * v
	}

	return core.Clamp01(sum * params.Amplitude)
}

// GenerateElevations evaluates the layered noise at every position,
// one task per position. Order-independent, so the parallel schedule
// cannot affect the output.
func GenerateElevations(positions []core.Vec2, params Params) []float32 {
	out := make([]float32, len(positions))
	parallel.For(len(positions), func(i, _ int) {
		out[i] = Elevation(positions[i], params)
	})
	return out
}
