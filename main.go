package main

import (
	"flag"
	"log/slog"
	"os"
	"strings"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/bramble/config"
	"github.com/pthm-cable/bramble/game"
	"github.com/pthm-cable/bramble/strategy"
	"github.com/pthm-cable/bramble/telemetry"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Run without graphics")
	logStats := flag.Bool("log-stats", false, "Output stats via slog")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	strategyName := flag.String("strategy", "none", "Pruning strategy: "+strings.Join(strategy.Names(), ", "))
	maxSteps := flag.Int("max-steps", 0, "Stop after N steps (0 = unlimited)")
	stepsPerUpdate := flag.Int("steps-per-update", 1, "Simulation steps per update call (higher = faster headless runs)")

	flag.Parse()

	// Initialize config before anything else
	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	opts := game.Options{
		Seed:           rngSeed,
		Strategy:       *strategyName,
		OutputDir:      *outputDir,
		Headless:       *headless,
		MaxSteps:       *maxSteps,
		StepsPerUpdate: *stepsPerUpdate,
		LogStats:       *logStats,
	}

	if *headless {
		g, err := game.NewGameWithOptions(opts)
		if err != nil {
			slog.Error("failed to create simulation", "error", err)
			os.Exit(1)
		}
		defer g.Unload()

		slog.Info("starting headless simulation",
			"seed", rngSeed,
			"strategy", g.Strategy(),
			"max_steps", *maxSteps,
			"steps_per_update", *stepsPerUpdate,
		)

		for !g.Done() {
			g.UpdateHeadless()
		}

		summary := telemetry.Summarize(g.Plant().History())
		slog.Info("run complete",
			"steps", summary.Steps,
			"mean", summary.Mean,
			"std", summary.Std,
			"max", summary.Max,
			"final", summary.Final,
			"pruned_total", g.Collector().TotalPruned(),
		)
		return
	}

	// Graphical mode
	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), "Bramble")
	defer rl.CloseWindow()

	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	g, err := game.NewGameWithOptions(opts)
	if err != nil {
		slog.Error("failed to create simulation", "error", err)
		os.Exit(1)
	}
	defer g.Unload()

	for !rl.WindowShouldClose() {
		g.Update()
		g.Draw()
	}
}
