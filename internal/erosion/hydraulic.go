package erosion

import (
	"github.com/sirupsen/logrus"

	"terragen/internal/core"
	"terragen/internal/heightmap"
	"terragen/internal/noise"
	"terragen/pkg/logger"
)

// droplet is the ephemeral per-task state of one simulated water particle.
// Stack-allocated, never shared.
type droplet struct {
	pos      core.Vec2
	vel      core.Vec2
	water    float32
	sediment float32
}

// StartPosition derives the initial world position of droplet index from the
// run seed alone. Pure, so droplet tasks stay independent of each other and
// of the schedule.
func StartPosition(p Params, index uint32) core.Vec2 {
	hx := noise.Hash2D(index, 0xA511E9B3, p.Seed)
	hy := noise.Hash2D(index, 0xB4B82E39, p.Seed)
	return core.Vec2{
		X: noise.UnitFloat(hx) * float32(p.Width-1) * p.CellSize,
		Y: noise.UnitFloat(hy) * float32(p.Height-1) * p.CellSize,
	}
}

// jitter offsets a start position by up to half a cell in each axis, derived
// from the start cell and the droplet's instance seed.
func jitter(p Params, start core.Vec2, instanceSeed uint32) core.Vec2 {
	ix := uint32(int32(start.X / p.CellSize))
	iy := uint32(int32(start.Y / p.CellSize))
	h := noise.Hash2D(ix, iy, instanceSeed)
	jx := (noise.UnitFloat(h) - 0.5) * p.CellSize
	jy := (noise.UnitFloat(noise.Hash(h)) - 0.5) * p.CellSize
	return core.Vec2{X: start.X + jx, Y: start.Y + jy}
}

// SimulateDroplet walks one droplet downhill over the heightmap, eroding and
// depositing as it goes. All heightmap mutation happens through the 2×2
// atomic splat, so droplets in the same batch never need ordering between
// them. A droplet terminates by lifetime cap or water exhaustion, never by
// error.
func SimulateDroplet(m *heightmap.Map, p Params, start core.Vec2, instanceSeed uint32) {
	maxX := float32(p.Width-1) * p.CellSize
	maxY := float32(p.Height-1) * p.CellSize

	d := droplet{
		pos:   jitter(p, start, instanceSeed),
		water: p.InitialWater,
	}
	d.pos.X = core.Clamp(d.pos.X, 0, maxX)
	d.pos.Y = core.Clamp(d.pos.Y, 0, maxY)

	for life := 0; life < p.MaxLifetime && d.water >= 1e-3; life++ {
		grad := m.Gradient(d.pos)
		flow := grad.Scale(-1).Normalize()

		d.vel = d.vel.Scale(p.Inertia).Add(flow.Scale(1 - p.Inertia))
		d.vel = d.vel.ClampLength(1.0)

		old := d.pos
		d.pos = d.pos.Add(d.vel.Scale(p.CellSize))
		d.pos.X = core.Clamp(d.pos.X, 0, maxX)
		d.pos.Y = core.Clamp(d.pos.Y, 0, maxY)

		heightDiff := m.Sample(d.pos) - m.Sample(old)

		slope := grad.Length()
		if slope < p.MinSlope {
			slope = p.MinSlope
		}
		capacity := slope * d.water * d.vel.Length() * p.SedimentCapacity

		if heightDiff > 0 || d.sediment > capacity {
			// Moving uphill or oversaturated: drop sediment at the old
			// position. An uphill move fills the pit it climbed out of, at
			// most with what the droplet carries.
			var amount float32
			if heightDiff > 0 {
				amount = min(heightDiff, d.sediment)
			} else {
				amount = (d.sediment - capacity) * p.DepositionRate
			}
			d.sediment -= amount
			m.Splat(old, amount)
		} else {
			// Capacity to spare: pick up material, but never dig deeper
			// than the drop just descended.
			amount := min((capacity-d.sediment)*p.ErosionRate, -heightDiff)
			d.sediment += amount
			m.Splat(old, -amount)
		}

		d.water *= 1 - p.EvaporationRate
	}
}

// HydraulicPass runs the configured number of independent droplet tasks.
type HydraulicPass struct {
	Params Params
}

// dropletBatchSize bounds one dispatch so progress gets reported between
// batches. Droplet i behaves identically whichever batch runs it; the
// boundary exists only for logging.
const dropletBatchSize = 500

// Name identifies the pass in stage logs.
func (h HydraulicPass) Name() string { return "hydraulic" }

// Run dispatches one task per droplet, in batches. Droplet i uses instance
// seed Seed+i, so the whole pass is a pure function of the run seed.
func (h HydraulicPass) Run(m *heightmap.Map) {
	p := h.Params
	count := p.DropletCount()

	for offset := 0; offset < count; offset += dropletBatchSize {
		n := min(dropletBatchSize, count-offset)
		base := offset
		pfor(p.Workers, n, func(i, _ int) {
			index := uint32(base + i)
			SimulateDroplet(m, p, StartPosition(p, index), p.Seed+index)
		})

		logger.Log.WithFields(logrus.Fields{
			"droplets_done":  offset + n,
			"droplets_total": count,
		}).Debug("hydraulic batch complete")
	}
}
