package erosion

import (
	"math"
	"testing"

	"terragen/internal/heightmap"
)

func TestThermalMovesMaterialDownhill(t *testing.T) {
	p := testParams(5)
	p.ThermalAngleThreshold = 0.1
	p.ThermalRate = 0.1

	m := heightmap.New(5, 5, 1)
	buf := make([]float32, 25)
	for i := range buf {
		buf[i] = 0.2
	}
	buf[2*5+2] = 0.9
	m.InitFrom(buf)

	before := m.SumFixed()
	ThermalPass{Params: p}.Run(m)

	if got := m.SumFixed(); got != before {
		t.Fatalf("thermal pass must conserve mass exactly: %d -> %d", before, got)
	}

	center := m.Load(2, 2)
	if math.Abs(float64(center-0.83)) > 1e-4 {
		t.Fatalf("spike must shed a rate share of the deficit: want ~0.83, got %f", center)
	}

	var gained int
	for y := 1; y <= 3; y++ {
		for x := 1; x <= 3; x++ {
			if x == 2 && y == 2 {
				continue
			}
			if m.Load(x, y) > 0.2+1e-5 {
				gained++
			}
		}
	}
	if gained != 1 {
		t.Fatalf("exactly one neighbor should receive the slide, got %d", gained)
	}
}

func TestThermalBelowThresholdUntouched(t *testing.T) {
	p := testParams(5)
	p.ThermalAngleThreshold = 0.6

	m := heightmap.New(5, 5, 1)
	buf := make([]float32, 25)
	for i := range buf {
		buf[i] = 0.3
	}
	buf[2*5+2] = 0.5 // slope 0.2, under the threshold
	m.InitFrom(buf)

	before := m.Readback()
	ThermalPass{Params: p}.Run(m)
	after := m.Readback()

	for i := range before {
		if before[i] != after[i] {
			t.Fatalf("sub-threshold slopes must not move material, cell %d changed", i)
		}
	}
}

// TestThermalRelaxesToStableSlopes repeats the pass until the talus
// condition holds everywhere the pass is responsible for: no pair of
// adjacent interior cells may exceed the angle threshold.
func TestThermalRelaxesToStableSlopes(t *testing.T) {
	const n = 24
	p := testParams(n)
	p.ThermalAngleThreshold = 0.1
	p.ThermalRate = 0.1

	m := heightmap.New(n, n, 1)
	buf := make([]float32, n*n)
	for y := 10; y <= 13; y++ {
		for x := 10; x <= 13; x++ {
			buf[y*n+x] = 0.8
		}
	}
	m.InitFrom(buf)

	pass := ThermalPass{Params: p}
	for i := 0; i < 800; i++ {
		pass.Run(m)
	}

	interior := func(x, y int) bool { return x >= 1 && x < n-1 && y >= 1 && y < n-1 }
	for y := 1; y < n-1; y++ {
		for x := 1; x < n-1; x++ {
			center := m.Load(x, y)
			for _, o := range neighborOffsets {
				nx, ny := x+o.dx, y+o.dy
				if !interior(nx, ny) {
					continue
				}
				slope := (center - m.Load(nx, ny)) / o.dist
				if slope > p.ThermalAngleThreshold+1e-3 {
					t.Fatalf("slope %f from (%d,%d) to (%d,%d) still over threshold after relaxation",
						slope, x, y, nx, ny)
				}
			}
		}
	}
}

func TestThermalSkipsDegenerateGrids(t *testing.T) {
	p := testParams(2)
	m := heightmap.New(2, 2, 1)
	m.InitFrom([]float32{0, 1, 0, 1})

	before := m.Readback()
	ThermalPass{Params: p}.Run(m)

	for i, e := range m.Readback() {
		if e != before[i] {
			t.Fatal("grids without interior cells must pass through unchanged")
		}
	}
}
