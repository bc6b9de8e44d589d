package erosion

import (
	"slices"
	"testing"

	"terragen/internal/core"
	"terragen/internal/heightmap"
	"terragen/internal/noise"
)

func TestSmoothingFlatMapUnchanged(t *testing.T) {
	p := testParams(8)
	m := heightmap.New(8, 8, 1)
	buf := make([]float32, 64)
	for i := range buf {
		buf[i] = 0.4
	}
	m.InitFrom(buf)

	before := m.Readback()
	SmoothingPass{Params: p}.Run(m)

	if !slices.Equal(before, m.Readback()) {
		t.Fatal("flat terrain must be a fixed point of smoothing")
	}
}

func TestSmoothingFlattensSpike(t *testing.T) {
	p := testParams(7)
	m := heightmap.New(7, 7, 1)
	buf := make([]float32, 49)
	buf[3*7+3] = 0.9
	m.InitFrom(buf)

	SmoothingPass{Params: p}.Run(m)

	center := m.Load(3, 3)
	if center >= 0.9 {
		t.Fatalf("spike must drop toward the neighborhood mean, got %f", center)
	}
	// 0.9 spread over its 3x3 neighborhood is 0.1 per cell.
	if center < 0.09 || center > 0.11 {
		t.Fatalf("spike should settle near 0.1, got %f", center)
	}
	if n := m.Load(2, 3); n < 0.09 || n > 0.11 {
		t.Fatalf("neighbor should rise near 0.1, got %f", n)
	}
	if far := m.Load(0, 0); far != 0 {
		t.Fatalf("cells outside the spike neighborhood must stay flat, got %f", far)
	}
}

// TestSmoothingConverges checks that repeated passes change the terrain by
// less each time, in both max and total absolute delta.
func TestSmoothingConverges(t *testing.T) {
	const n = 32
	p := testParams(n)

	positions := make([]core.Vec2, n*n)
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			positions[y*n+x] = core.Vec2{X: float32(x) * 8, Y: float32(y) * 8}
		}
	}
	np := noise.DefaultParams()
	np.Seed = 99

	m := heightmap.New(n, n, 1)
	m.InitFrom(noise.GenerateElevations(positions, np))

	pass := SmoothingPass{Params: p}

	v0 := m.Readback()
	pass.Run(m)
	v1 := m.Readback()
	pass.Run(m)
	v2 := m.Readback()

	d1, max1 := deltas(v0, v1)
	d2, max2 := deltas(v1, v2)

	if d1 == 0 {
		t.Fatal("first pass changed nothing; test input too flat to be meaningful")
	}
	if d2 >= d1 {
		t.Fatalf("total change must shrink: first %f, second %f", d1, d2)
	}
	if max2 > max1+2e-6 {
		t.Fatalf("max change must not grow: first %f, second %f", max1, max2)
	}
}

func deltas(a, b []float32) (total, maxAbs float32) {
	for i := range a {
		d := a[i] - b[i]
		if d < 0 {
			d = -d
		}
		total += d
		if d > maxAbs {
			maxAbs = d
		}
	}
	return total, maxAbs
}
