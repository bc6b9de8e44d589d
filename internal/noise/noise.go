package noise

import (
	"math"

	"terragen/internal/core"
)

// diag is 1/sqrt(2); the diagonal gradients are unit length like the
// cardinal ones so no direction is favored.
const diag = 0.70710678

// gradients holds the 8 discrete unit directions a lattice corner can take.
// The low 3 bits of the corner hash select one.
var gradients = [8]core.Vec2{
	{X: 1, Y: 0},
	{X: -1, Y: 0},
	{X: 0, Y: 1},
	{X: 0, Y: -1},
	{X: diag, Y: diag},
	{X: -diag, Y: diag},
	{X: diag, Y: -diag},
	{X: -diag, Y: -diag},
}

func gradientAt(ix, iy int32, seed uint32) core.Vec2 {
	return gradients[Hash2D(uint32(ix), uint32(iy), seed)&7]
}

// fade is the smoothstep weight t²(3−2t).
func fade(t float32) float32 { return t * t * (3 - 2*t) }

func lerp(a, b, t float32) float32 { return a + (b-a)*t }

// Gradient2D evaluates gradient noise at (x, y). Output lies in [-1, 1].
func Gradient2D(x, y float32, seed uint32) float32 {
	fx := float32(math.Floor(float64(x)))
	fy := float32(math.Floor(float64(y)))
	ix := int32(fx)
	iy := int32(fy)

	dx := x - fx
	dy := y - fy

	d00 := gradientAt(ix, iy, seed).Dot(core.Vec2{X: dx, Y: dy})
	d10 := gradientAt(ix+1, iy, seed).Dot(core.Vec2{X: dx - 1, Y: dy})
	d01 := gradientAt(ix, iy+1, seed).Dot(core.Vec2{X: dx, Y: dy - 1})
	d11 := gradientAt(ix+1, iy+1, seed).Dot(core.Vec2{X: dx - 1, Y: dy - 1})

	u := fade(dx)
	v := fade(dy)

	return lerp(lerp(d00, d10, u), lerp(d01, d11, u), v)
}

// FBM accumulates octaves of gradient noise, remapped to [0, 1].
// Zero octaves yields the neutral midpoint.
func FBM(x, y float32, seed uint32, octaves int, persistence, lacunarity float32) float32 {
	if octaves <= 0 {
		return 0.5
	}

	var sum, norm float32
	amp := float32(1)
	freq := float32(1)
	for o := 0; o < octaves; o++ {
		sum += amp * Gradient2D(x*freq, y*freq, seed+uint32(o))
		norm += amp
		amp *= persistence
		freq *= lacunarity
	}

	n := sum / norm
	return (n + 1) * 0.5
}

// Ridge produces sharp peaks: 1-|noise|, squared. Output lies in [0, 1].
func Ridge(x, y float32, seed uint32) float32 {
	n := Gradient2D(x, y, seed)
	if n < 0 {
		n = -n
	}
	r := 1 - n
	return r * r
}
