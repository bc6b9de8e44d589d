package erosion

import (
	"fmt"
	"strconv"
)

// Params holds the tunables for one erosion run: grid geometry, droplet
// physics, and the thermal/smoothing schedule. Immutable once handed to the
// pipeline.
type Params struct {
	Width    int
	Height   int
	CellSize float32

	Seed uint32

	// Droplets overrides the droplet count when positive; otherwise the
	// count is DropletsPerCell scaled by the grid area.
	Droplets        int
	DropletsPerCell float32

	InitialWater     float32
	EvaporationRate  float32
	SedimentCapacity float32
	MinSlope         float32
	ErosionRate      float32
	DepositionRate   float32
	Gravity          float32
	Inertia          float32
	MaxLifetime      int

	ThermalAngleThreshold float32
	ThermalRate           float32
	ThermalIterations     int

	SmoothingPasses int

	// Workers caps the goroutines per pass. Zero lets the dispatcher pick;
	// one makes a pass fully sequential (and therefore bit-reproducible
	// even through mid-pass reads).
	Workers int
}

// DefaultParams returns the standard erosion configuration, tuned to the
// same values the generation pipeline originally shipped with.
func DefaultParams() Params {
	return Params{
		Width:    256,
		Height:   256,
		CellSize: 1.0,

		Seed: 1337,

		DropletsPerCell: 1.0,

		InitialWater:     1.0,
		EvaporationRate:  0.01,
		SedimentCapacity: 4.0,
		MinSlope:         0.01,
		ErosionRate:      0.3,
		DepositionRate:   0.3,
		Gravity:          4.0,
		Inertia:          0.3,
		MaxLifetime:      100,

		ThermalAngleThreshold: 0.6,
		ThermalRate:           0.1,
		ThermalIterations:     10,

		SmoothingPasses: 1,
	}
}

// DropletCount resolves the effective number of droplets for the grid.
func (p Params) DropletCount() int {
	if p.Droplets > 0 {
		return p.Droplets
	}
	return int(p.DropletsPerCell * float32(p.Width*p.Height))
}

// FromMap populates the params from a string map (flag-style key/value pairs).
func FromMap(cfg map[string]string) Params {
	p := DefaultParams()
	if cfg == nil {
		return p
	}
	if v, ok := cfg["w"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			p.Width = parsed
		}
	}
	if v, ok := cfg["h"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			p.Height = parsed
		}
	}
	if v, ok := cfg["cell_size"]; ok {
		if parsed, err := strconv.ParseFloat(v, 32); err == nil && parsed > 0 {
			p.CellSize = float32(parsed)
		}
	}
	if v, ok := cfg["seed"]; ok {
		if parsed, err := strconv.ParseUint(v, 10, 32); err == nil {
			p.Seed = uint32(parsed)
		}
	}
	if v, ok := cfg["droplets"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			p.Droplets = parsed
		}
	}
	if v, ok := cfg["droplets_per_cell"]; ok {
		if parsed, err := strconv.ParseFloat(v, 32); err == nil && parsed >= 0 {
			p.DropletsPerCell = float32(parsed)
		}
	}
	if v, ok := cfg["initial_water"]; ok {
		if parsed, err := strconv.ParseFloat(v, 32); err == nil && parsed > 0 {
			p.InitialWater = float32(parsed)
		}
	}
	if v, ok := cfg["evaporation_rate"]; ok {
		if parsed, err := strconv.ParseFloat(v, 32); err == nil && parsed >= 0 {
			p.EvaporationRate = float32(parsed)
		}
	}
	if v, ok := cfg["sediment_capacity"]; ok {
		if parsed, err := strconv.ParseFloat(v, 32); err == nil && parsed >= 0 {
			p.SedimentCapacity = float32(parsed)
		}
	}
	if v, ok := cfg["min_slope"]; ok {
		if parsed, err := strconv.ParseFloat(v, 32); err == nil && parsed > 0 {
			p.MinSlope = float32(parsed)
		}
	}
	if v, ok := cfg["erosion_rate"]; ok {
		if parsed, err := strconv.ParseFloat(v, 32); err == nil && parsed >= 0 {
			p.ErosionRate = float32(parsed)
		}
	}
	if v, ok := cfg["deposition_rate"]; ok {
		if parsed, err := strconv.ParseFloat(v, 32); err == nil && parsed >= 0 {
			p.DepositionRate = float32(parsed)
		}
	}
	if v, ok := cfg["gravity"]; ok {
		if parsed, err := strconv.ParseFloat(v, 32); err == nil && parsed >= 0 {
			p.Gravity = float32(parsed)
		}
	}
	if v, ok := cfg["inertia"]; ok {
		if parsed, err := strconv.ParseFloat(v, 32); err == nil && parsed >= 0 && parsed < 1 {
			p.Inertia = float32(parsed)
		}
	}
	if v, ok := cfg["max_lifetime"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			p.MaxLifetime = parsed
		}
	}
	if v, ok := cfg["thermal_angle_threshold"]; ok {
		if parsed, err := strconv.ParseFloat(v, 32); err == nil && parsed > 0 {
			p.ThermalAngleThreshold = float32(parsed)
		}
	}
	if v, ok := cfg["thermal_rate"]; ok {
		if parsed, err := strconv.ParseFloat(v, 32); err == nil && parsed >= 0 {
			p.ThermalRate = float32(parsed)
		}
	}
	if v, ok := cfg["thermal_iterations"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			p.ThermalIterations = parsed
		}
	}
	if v, ok := cfg["smoothing_passes"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			p.SmoothingPasses = parsed
		}
	}
	if v, ok := cfg["workers"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			p.Workers = parsed
		}
	}
	return p
}

// Validate reports the first invalid field. Checked once before dispatch;
// passes assume valid params and cannot fail mid-run.
func (p Params) Validate() error {
	if p.Width <= 0 || p.Height <= 0 {
		return fmt.Errorf("grid dimensions must be positive, got %dx%d", p.Width, p.Height)
	}
	if p.CellSize <= 0 {
		return fmt.Errorf("cell_size must be positive, got %g", p.CellSize)
	}
	if p.Droplets < 0 {
		return fmt.Errorf("droplets must be non-negative, got %d", p.Droplets)
	}
	if p.DropletsPerCell < 0 {
		return fmt.Errorf("droplets_per_cell must be non-negative, got %g", p.DropletsPerCell)
	}
	if p.InitialWater <= 0 {
		return fmt.Errorf("initial_water must be positive, got %g", p.InitialWater)
	}
	if p.EvaporationRate < 0 || p.EvaporationRate >= 1 {
		return fmt.Errorf("evaporation_rate must lie in [0, 1), got %g", p.EvaporationRate)
	}
	if p.SedimentCapacity < 0 {
		return fmt.Errorf("sediment_capacity must be non-negative, got %g", p.SedimentCapacity)
	}
	if p.MinSlope <= 0 {
		return fmt.Errorf("min_slope must be positive, got %g", p.MinSlope)
	}
	if p.ErosionRate < 0 || p.ErosionRate > 1 {
		return fmt.Errorf("erosion_rate must lie in [0, 1], got %g", p.ErosionRate)
	}
	if p.DepositionRate < 0 || p.DepositionRate > 1 {
		return fmt.Errorf("deposition_rate must lie in [0, 1], got %g", p.DepositionRate)
	}
	if p.Gravity < 0 {
		return fmt.Errorf("gravity must be non-negative, got %g", p.Gravity)
	}
	if p.Inertia < 0 || p.Inertia >= 1 {
		return fmt.Errorf("inertia must lie in [0, 1), got %g", p.Inertia)
	}
	if p.MaxLifetime <= 0 {
		return fmt.Errorf("max_lifetime must be positive, got %d", p.MaxLifetime)
	}
	if p.ThermalAngleThreshold <= 0 {
		return fmt.Errorf("thermal_angle_threshold must be positive, got %g", p.ThermalAngleThreshold)
	}
	if p.ThermalRate < 0 || p.ThermalRate > 0.5 {
		return fmt.Errorf("thermal_rate must lie in [0, 0.5], got %g", p.ThermalRate)
	}
	if p.ThermalIterations < 0 {
		return fmt.Errorf("thermal_iterations must be non-negative, got %d", p.ThermalIterations)
	}
	if p.SmoothingPasses < 0 {
		return fmt.Errorf("smoothing_passes must be non-negative, got %d", p.SmoothingPasses)
	}
	if p.Workers < 0 {
		return fmt.Errorf("workers must be non-negative, got %d", p.Workers)
	}
	return nil
}
