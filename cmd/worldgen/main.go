package main

import (
	"flag"
	"fmt"
	"strings"
	"time"

	"terragen/internal/erosion"
	"terragen/internal/noise"
	"terragen/internal/pipeline"
	"terragen/pkg/logger"
)

func main() {
	width := flag.Int("w", 256, "grid width in cells")
	height := flag.Int("h", 256, "grid height in cells")
	cellSize := flag.Float64("cell-size", 1.0, "world-unit size of one cell")
	seed := flag.Uint("seed", 1337, "generation seed")
	droplets := flag.Int("droplets", 0, "droplet count override (0 = scale by grid area)")
	perCell := flag.Float64("droplets-per-cell", 1.0, "droplets per grid cell when no override is set")
	thermal := flag.Int("thermal-iterations", 10, "thermal erosion iterations")
	smoothing := flag.Int("smoothing-passes", 1, "smoothing passes")
	workers := flag.Int("workers", 0, "goroutines per pass (0 = number of CPUs)")
	seaLevel := flag.Float64("sea-level", 0.35, "elevation below which a cell counts as ocean")
	flag.Parse()

	logger.Init()

	np := noise.DefaultParams()
	np.Seed = uint32(*seed)

	ep := erosion.DefaultParams()
	ep.Width = *width
	ep.Height = *height
	ep.CellSize = float32(*cellSize)
	ep.Seed = uint32(*seed)
	ep.Droplets = *droplets
	ep.DropletsPerCell = float32(*perCell)
	ep.ThermalIterations = *thermal
	ep.SmoothingPasses = *smoothing
	ep.Workers = *workers

	positions := pipeline.GridPositions(ep.Width, ep.Height, ep.CellSize)
	res, err := pipeline.Generate(positions, np, ep)
	if err != nil {
		logger.Log.Fatalf("generation failed: %v", err)
	}

	printSummary(res, float32(*seaLevel))
}

func printSummary(res *pipeline.Result, seaLevel float32) {
	minE := res.Elevations[0]
	maxE := res.Elevations[0]
	var sum float64
	land := 0
	for _, e := range res.Elevations {
		if e < minE {
			minE = e
		}
		if e > maxE {
			maxE = e
		}
		sum += float64(e)
		if e >= seaLevel {
			land++
		}
	}
	total := len(res.Elevations)

	fmt.Printf("run %s: %d cells, %d droplets\n", res.RunID, total, res.Droplets)
	fmt.Printf("elevation min=%.4f mean=%.4f max=%.4f\n", minE, sum/float64(total), maxE)
	fmt.Printf("land fraction above %.2f: %.1f%%\n", seaLevel, 100*float64(land)/float64(total))

	const bins = 10
	var hist [bins]int
	for _, e := range res.Elevations {
		b := int(e * bins)
		if b >= bins {
			b = bins - 1
		}
		hist[b]++
	}
	fmt.Println("hypsometric distribution:")
	for b, n := range hist {
		bar := strings.Repeat("#", n*50/total)
		fmt.Printf("  [%.1f-%.1f) %6d %s\n", float64(b)/bins, float64(b+1)/bins, n, bar)
	}

	fmt.Println("stage timings:")
	for _, s := range res.Stages {
		fmt.Printf("  %-10s %s\n", s.Name, s.Duration.Round(10*time.Microsecond))
	}
}
