// Strategy comparison tool - runs each named pruning strategy headless
// under the same seed and writes the photosynthesis histories side by
// side for offline analysis.
//
// Usage: go run ./cmd/compare -steps 150 -seed 42 -strategies none,fixed,space
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/gocarina/gocsv"

	"github.com/pthm-cable/bramble/config"
	"github.com/pthm-cable/bramble/game"
	"github.com/pthm-cable/bramble/strategy"
	"github.com/pthm-cable/bramble/telemetry"
)

// historyRow is one (strategy, step) sample in long format.
type historyRow struct {
	Strategy       string  `csv:"strategy"`
	Step           int     `csv:"step"`
	Photosynthesis float64 `csv:"photosynthesis"`
}

// summaryRow is one strategy's run summary.
type summaryRow struct {
	Strategy string `csv:"strategy"`
	telemetry.Summary
	PrunedTotal int `csv:"pruned_total"`
}

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	seed := flag.Int64("seed", 42, "RNG seed shared by every run")
	steps := flag.Int("steps", 150, "Steps per run")
	outputDir := flag.String("output-dir", "compare-out", "Directory for comparison CSVs")
	strategies := flag.String("strategies", strings.Join(strategy.Names(), ","), "Comma-separated strategy names")

	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	if err := run(*seed, *steps, *outputDir, strings.Split(*strategies, ",")); err != nil {
		slog.Error("comparison failed", "error", err)
		os.Exit(1)
	}
}

func run(seed int64, steps int, outputDir string, names []string) error {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	var histories []historyRow
	var summaries []summaryRow

	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}

		g, err := game.NewGameWithOptions(game.Options{
			Seed:     seed,
			Strategy: name,
			Headless: true,
			MaxSteps: steps,
		})
		if err != nil {
			return fmt.Errorf("strategy %s: %w", name, err)
		}

		for !g.Done() {
			g.Step()
		}
		g.Unload()

		history := g.Plant().History()
		for step, v := range history {
			histories = append(histories, historyRow{Strategy: name, Step: step, Photosynthesis: v})
		}

		summary := telemetry.Summarize(history)
		summaries = append(summaries, summaryRow{
			Strategy:    name,
			Summary:     summary,
			PrunedTotal: g.Collector().TotalPruned(),
		})

		slog.Info("run complete",
			"strategy", name,
			"seed", seed,
			"steps", summary.Steps,
			"mean", summary.Mean,
			"final", summary.Final,
			"pruned_total", g.Collector().TotalPruned(),
		)
	}

	if err := writeCSV(filepath.Join(outputDir, "histories.csv"), histories); err != nil {
		return err
	}
	return writeCSV(filepath.Join(outputDir, "summaries.csv"), summaries)
}

func writeCSV[T any](path string, rows []T) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	if err := gocsv.Marshal(rows, f); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
