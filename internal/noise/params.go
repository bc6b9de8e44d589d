package noise

import (
	"fmt"
	"strconv"
)

// Params configures one elevation-generation run. Values are immutable once
// handed to the pipeline.
type Params struct {
	Seed        uint32
	Octaves     int
	Frequency   float32
	Persistence float32
	Lacunarity  float32
	Amplitude   float32
	Scale       float32
	OffsetX     float32
	OffsetY     float32
}

// DefaultParams returns the standard noise configuration.
func DefaultParams() Params {
	return Params{
		Seed:        1337,
		Octaves:     6,
		Frequency:   1.0,
		Persistence: 0.5,
		Lacunarity:  2.0,
		Amplitude:   1.0,
		Scale:       1.0,
	}
}

// FromMap populates the params from a string map (flag-style key/value pairs).
func FromMap(cfg map[string]string) Params {
	p := DefaultParams()
	if cfg == nil {
		return p
	}
	if v, ok := cfg["seed"]; ok {
		if parsed, err := strconv.ParseUint(v, 10, 32); err == nil {
			p.Seed = uint32(parsed)
		}
	}
	if v, ok := cfg["octaves"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			p.Octaves = parsed
		}
	}
	if v, ok := cfg["frequency"]; ok {
		if parsed, err := strconv.ParseFloat(v, 32); err == nil && parsed > 0 {
			p.Frequency = float32(parsed)
		}
	}
	if v, ok := cfg["persistence"]; ok {
		if parsed, err := strconv.ParseFloat(v, 32); err == nil && parsed > 0 {
			p.Persistence = float32(parsed)
		}
	}
	if v, ok := cfg["lacunarity"]; ok {
		if parsed, err := strconv.ParseFloat(v, 32); err == nil && parsed > 0 {
			p.Lacunarity = float32(parsed)
		}
	}
	if v, ok := cfg["amplitude"]; ok {
		if parsed, err := strconv.ParseFloat(v, 32); err == nil && parsed > 0 {
			p.Amplitude = float32(parsed)
		}
	}
	if v, ok := cfg["scale"]; ok {
		if parsed, err := strconv.ParseFloat(v, 32); err == nil && parsed > 0 {
			p.Scale = float32(parsed)
		}
	}
	if v, ok := cfg["offset_x"]; ok {
		if parsed, err := strconv.ParseFloat(v, 32); err == nil {
			p.OffsetX = float32(parsed)
		}
	}
	if v, ok := cfg["offset_y"]; ok {
		if parsed, err := strconv.ParseFloat(v, 32); err == nil {
			p.OffsetY = float32(parsed)
		}
	}
	return p
}

// Validate reports the first invalid field. Generation must not start with
// params that fail here; nothing downstream re-checks them.
func (p Params) Validate() error {
	if p.Octaves <= 0 {
		return fmt.Errorf("octaves must be positive, got %d", p.Octaves)
	}
	if p.Frequency <= 0 {
		return fmt.Errorf("frequency must be positive, got %g", p.Frequency)
	}
	if p.Persistence <= 0 {
		return fmt.Errorf("persistence must be positive, got %g", p.Persistence)
	}
	if p.Lacunarity <= 0 {
		return fmt.Errorf("lacunarity must be positive, got %g", p.Lacunarity)
	}
	if p.Amplitude <= 0 {
		return fmt.Errorf("amplitude must be positive, got %g", p.Amplitude)
	}
	if p.Scale <= 0 {
		return fmt.Errorf("scale must be positive, got %g", p.Scale)
	}
	return nil
}
