// Package heightmap provides the fixed-point, atomically-mutable elevation
// grid shared by every erosion pass. Elevations are stored as integers
// (value × 1e6, truncated) so concurrent writers combine through plain
// atomic adds: exact, commutative, and independent of write order, which
// float adds are not.
package heightmap

import (
	"math"
	"sync/atomic"

	"terragen/internal/core"
)

// fixedScale converts between float elevations and integer cells. Exactly
// 1e6 for ~6 decimal digits; changing it changes every generated world.
const fixedScale = 1_000_000

// Map is a width×height grid of fixed-point elevation cells. Each cell maps
// 1:1 to world coordinates through the cell size.
type Map struct {
	width    int
	height   int
	cellSize float32
	cells    []int64
}

// New allocates a zeroed map with the given dimensions.
func New(width, height int, cellSize float32) *Map {
	if width <= 0 {
		width = 1
	}
	if height <= 0 {
		height = 1
	}
	if cellSize <= 0 {
		cellSize = 1
	}
	return &Map{
		width:    width,
		height:   height,
		cellSize: cellSize,
		cells:    make([]int64, width*height),
	}
}

// Width reports the grid width in cells.
func (m *Map) Width() int { return m.width }

// Height reports the grid height in cells.
func (m *Map) Height() int { return m.height }

// CellSize reports the world-unit extent of one cell.
func (m *Map) CellSize() float32 { return m.cellSize }

// Index returns the linear cell index for coordinates (x, y).
func (m *Map) Index(x, y int) int { return y*m.width + x }

// InitFrom quantizes the elevation buffer into the grid, clamping each
// value to [0, 1]. Values are row-major, one per cell.
func (m *Map) InitFrom(elevations []float32) {
	n := len(elevations)
	if n > len(m.cells) {
		n = len(m.cells)
	}
	for i := 0; i < n; i++ {
		atomic.StoreInt64(&m.cells[i], quantize(core.Clamp01(elevations[i])))
	}
}

// Load returns the elevation at grid coordinates. Out-of-range reads are 0.
func (m *Map) Load(x, y int) float32 {
	if x < 0 || x >= m.width || y < 0 || y >= m.height {
		return 0
	}
	return unquantize(atomic.LoadInt64(&m.cells[m.Index(x, y)]))
}

// Store overwrites the elevation at grid coordinates. Out-of-range writes
// are no-ops.
func (m *Map) Store(x, y int, v float32) {
	if x < 0 || x >= m.width || y < 0 || y >= m.height {
		return
	}
	atomic.StoreInt64(&m.cells[m.Index(x, y)], quantize(v))
}

// Add atomically accumulates delta into the cell at grid coordinates.
// Out-of-range writes are no-ops.
func (m *Map) Add(x, y int, delta float32) {
	if x < 0 || x >= m.width || y < 0 || y >= m.height {
		return
	}
	atomic.AddInt64(&m.cells[m.Index(x, y)], quantize(delta))
}

// Sample returns the bilinearly interpolated elevation at a world position.
// Positions outside the grid clamp to its edge.
func (m *Map) Sample(pos core.Vec2) float32 {
	gx := core.Clamp(pos.X/m.cellSize, 0, float32(m.width-1))
	gy := core.Clamp(pos.Y/m.cellSize, 0, float32(m.height-1))

	x0 := int(gx)
	y0 := int(gy)
	x1 := x0 + 1
	if x1 > m.width-1 {
		x1 = m.width - 1
	}
	y1 := y0 + 1
	if y1 > m.height-1 {
		y1 = m.height - 1
	}

	fx := gx - float32(x0)
	fy := gy - float32(y0)

	h00 := m.Load(x0, y0)
	h10 := m.Load(x1, y0)
	h01 := m.Load(x0, y1)
	h11 := m.Load(x1, y1)

	h0 := h00 + (h10-h00)*fx
	h1 := h01 + (h11-h01)*fx
	return h0 + (h1-h0)*fy
}

// Gradient estimates the elevation gradient at a world position using
// central differences at ±half-cell offsets.
func (m *Map) Gradient(pos core.Vec2) core.Vec2 {
	eps := m.cellSize * 0.5

	hl := m.Sample(core.Vec2{X: pos.X - eps, Y: pos.Y})
	hr := m.Sample(core.Vec2{X: pos.X + eps, Y: pos.Y})
	hd := m.Sample(core.Vec2{X: pos.X, Y: pos.Y - eps})
	hu := m.Sample(core.Vec2{X: pos.X, Y: pos.Y + eps})

	return core.Vec2{
		X: (hr - hl) / (2 * eps),
		Y: (hu - hd) / (2 * eps),
	}
}

// Splat distributes amount across the 2×2 cells surrounding a world
// position, weighted by linear falloff with distance and normalized so the
// cell deltas sum to amount within fixed-point rounding. Each cell write is
// an atomic add, so overlapping splats from concurrent droplets never lose
// mass.
func (m *Map) Splat(pos core.Vec2, amount float32) {
	gx := core.Clamp(pos.X/m.cellSize, 0, float32(m.width-1))
	gy := core.Clamp(pos.Y/m.cellSize, 0, float32(m.height-1))

	x0 := int(gx)
	y0 := int(gy)

	var xs, ys [4]int
	var ws [4]float32
	var wsum float32

	i := 0
	for dy := 0; dy <= 1; dy++ {
		for dx := 0; dx <= 1; dx++ {
			nx := x0 + dx
			if nx > m.width-1 {
				nx = m.width - 1
			}
			ny := y0 + dy
			if ny > m.height-1 {
				ny = m.height - 1
			}

			cell := core.Vec2{X: float32(nx) * m.cellSize, Y: float32(ny) * m.cellSize}
			w := 1 - pos.Distance(cell)/m.cellSize
			if w < 0 {
				w = 0
			}

			xs[i], ys[i], ws[i] = nx, ny, w
			wsum += w
			i++
		}
	}

	if wsum <= 0 {
		m.Add(x0, y0, amount)
		return
	}
	for i := 0; i < 4; i++ {
		if ws[i] > 0 {
			m.Add(xs[i], ys[i], amount*ws[i]/wsum)
		}
	}
}

// Readback copies the grid into a float buffer clamped to [0, 1],
// row-major, one value per cell.
func (m *Map) Readback() []float32 {
	out := make([]float32, len(m.cells))
	for i := range m.cells {
		out[i] = core.Clamp01(unquantize(atomic.LoadInt64(&m.cells[i])))
	}
	return out
}

// SumFixed returns the exact fixed-point total of all cells. Intended for
// conservation checks; a single atomic pass, not a consistent snapshot
// while writers are active.
func (m *Map) SumFixed() int64 {
	var total int64
	for i := range m.cells {
		total += atomic.LoadInt64(&m.cells[i])
	}
	return total
}

func quantize(v float32) int64 {
	return int64(float64(v) * fixedScale)
}

func unquantize(v int64) float32 {
	return float32(float64(v) / fixedScale)
}

// RoundedAverage computes the rounded mean of fixed-point cell values; used
// by the smoothing pass so averaging stays in integer space.
func RoundedAverage(sum int64, count int) int64 {
	if count <= 0 {
		return 0
	}
	return int64(math.Round(float64(sum) / float64(count)))
}

// LoadFixed returns the raw fixed-point cell value. Out-of-range reads are 0.
func (m *Map) LoadFixed(x, y int) int64 {
	if x < 0 || x >= m.width || y < 0 || y >= m.height {
		return 0
	}
	return atomic.LoadInt64(&m.cells[m.Index(x, y)])
}

// StoreFixed overwrites the raw fixed-point cell value. Out-of-range writes
// are no-ops.
func (m *Map) StoreFixed(x, y int, v int64) {
	if x < 0 || x >= m.width || y < 0 || y >= m.height {
		return
	}
	atomic.StoreInt64(&m.cells[m.Index(x, y)], v)
}
