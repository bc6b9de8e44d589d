package erosion

import (
	"math"

	"terragen/internal/heightmap"
)

const sqrt2 = float32(math.Sqrt2)

// neighborOffsets lists the 8-neighborhood with the lattice distance to
// each neighbor (diagonals are √2 cells away).
var neighborOffsets = [8]struct {
	dx, dy int
	dist   float32
}{
	{-1, -1, sqrt2}, {0, -1, 1}, {1, -1, sqrt2},
	{-1, 0, 1}, {1, 0, 1},
	{-1, 1, sqrt2}, {0, 1, 1}, {1, 1, sqrt2},
}

// ThermalPass models talus collapse: material on over-steep slopes slides
// to the steepest lower neighbor. One iteration per Run; the orchestrator
// repeats it with a barrier between iterations.
type ThermalPass struct {
	Params Params
}

// Name identifies the pass in stage logs.
func (t ThermalPass) Name() string { return "thermal" }

// Run visits every non-border cell once. For each it finds the neighbor
// with the greatest height deficit whose slope exceeds the angle threshold
// and moves a ThermalRate share of the deficit there. The transfer is a
// paired atomic subtract/add of the same quantized amount, so material is
// conserved exactly regardless of scheduling.
func (t ThermalPass) Run(m *heightmap.Map) {
	p := t.Params
	w := m.Width()
	h := m.Height()
	if w < 3 || h < 3 {
		return
	}

	interiorW := w - 2
	interiorH := h - 2
	cellSize := m.CellSize()

	pfor(p.Workers, interiorW*interiorH, func(i, _ int) {
		x := 1 + i%interiorW
		y := 1 + i/interiorW

		center := m.Load(x, y)

		var maxDiff float32
		nx, ny := x, y
		for _, n := range neighborOffsets {
			diff := center - m.Load(x+n.dx, y+n.dy)
			slope := diff / (n.dist * cellSize)
			if slope > p.ThermalAngleThreshold && diff > maxDiff {
				maxDiff = diff
				nx, ny = x+n.dx, y+n.dy
			}
		}

		if maxDiff > 0 {
			amount := maxDiff * p.ThermalRate
			m.Add(x, y, -amount)
			m.Add(nx, ny, amount)
		}
	})
}
