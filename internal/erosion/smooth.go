package erosion

import "terragen/internal/heightmap"

// SmoothingPass replaces each cell with the rounded average of its 3×3
// neighborhood, counting only in-bounds neighbors at the edges. It removes
// the single-cell spikes that atomic splat accumulation leaves behind.
type SmoothingPass struct {
	Params Params
}

// Name identifies the pass in stage logs.
func (s SmoothingPass) Name() string { return "smooth" }

// Run averages in fixed-point space. Reads come from a scratch snapshot
// taken before any write, so the result does not depend on cell visit
// order.
func (s SmoothingPass) Run(m *heightmap.Map) {
	p := s.Params
	w := m.Width()
	h := m.Height()

	snapshot := make([]int64, w*h)
	pfor(p.Workers, w*h, func(i, _ int) {
		snapshot[i] = m.LoadFixed(i%w, i/w)
	})

	pfor(p.Workers, w*h, func(i, _ int) {
		x := i % w
		y := i / w

		var sum int64
		count := 0
		for dy := -1; dy <= 1; dy++ {
			ny := y + dy
			if ny < 0 || ny >= h {
				continue
			}
			for dx := -1; dx <= 1; dx++ {
				nx := x + dx
				if nx < 0 || nx >= w {
					continue
				}
				sum += snapshot[ny*w+nx]
				count++
			}
		}

		m.StoreFixed(x, y, heightmap.RoundedAverage(sum, count))
	})
}
