// Package game orchestrates the simulation: config, RNG, plant,
// pruning strategy, telemetry, and (unless headless) rendering.
package game

import (
	"fmt"
	"log/slog"
	"math/rand"

	"github.com/pthm-cable/bramble/components"
	"github.com/pthm-cable/bramble/config"
	"github.com/pthm-cable/bramble/plant"
	"github.com/pthm-cable/bramble/strategy"
	"github.com/pthm-cable/bramble/telemetry"
)

// Options configures a run.
type Options struct {
	Seed           int64
	Strategy       string
	OutputDir      string
	Headless       bool
	MaxSteps       int
	StepsPerUpdate int
	LogStats       bool
}

// Game holds the complete simulation state for one run.
type Game struct {
	cfg  *config.Config
	opts Options
	rng  *rand.Rand

	plant     *plant.Plant
	strat     strategy.Strategy
	collector *telemetry.Collector
	output    *telemetry.OutputManager

	view *views // nil when headless

	tick   int
	paused bool
	speed  int // steps per frame in graphical mode
}

// NewGameWithOptions creates a run from the global config and options.
func NewGameWithOptions(opts Options) (*Game, error) {
	cfg := config.Cfg()

	if opts.StepsPerUpdate < 1 {
		opts.StepsPerUpdate = 1
	}

	rng := rand.New(rand.NewSource(opts.Seed))
	p, err := plant.NewPlant(cfg, rng)
	if err != nil {
		return nil, err
	}

	strat, err := strategy.FromConfig(opts.Strategy, cfg)
	if err != nil {
		return nil, err
	}

	output, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, err
	}
	if err := output.WriteConfig(cfg); err != nil {
		return nil, fmt.Errorf("writing config snapshot: %w", err)
	}

	g := &Game{
		cfg:       cfg,
		opts:      opts,
		rng:       rng,
		plant:     p,
		strat:     strat,
		collector: telemetry.NewCollector(),
		output:    output,
		speed:     1,
	}
	if !opts.Headless {
		g.view = newViews(cfg)
	}
	return g, nil
}

// Plant exposes the simulated plant (read-only use expected).
func (g *Game) Plant() *plant.Plant {
	return g.plant
}

// Collector exposes the run's stats collector.
func (g *Game) Collector() *telemetry.Collector {
	return g.collector
}

// Strategy returns the active pruning strategy name.
func (g *Game) Strategy() string {
	return g.strat.Name()
}

// Tick returns the number of completed steps.
func (g *Game) Tick() int {
	return g.tick
}

// Done reports whether the configured step budget is exhausted.
func (g *Game) Done() bool {
	return g.opts.MaxSteps > 0 && g.tick >= g.opts.MaxSteps
}

// Step advances the simulation by one step: grow, maybe prune per
// strategy, then record stats.
func (g *Game) Step() {
	g.plant.Grow()

	var report plant.PruneReport
	if ratio, ok := g.strat.Ratio(g.tick, g.plant); ok {
		rep, err := g.plant.Prune(ratio)
		if err != nil {
			slog.Error("prune failed", "step", g.tick, "ratio", ratio, "error", err)
		} else {
			report = rep
		}
	}

	stats := g.snapshotStats(report)
	g.collector.Record(stats)

	if err := g.output.WriteStep(stats); err != nil {
		slog.Error("writing step stats", "step", g.tick, "error", err)
	}
	if g.opts.LogStats && g.cfg.Telemetry.LogEvery > 0 && g.tick%g.cfg.Telemetry.LogEvery == 0 {
		slog.Info("stats", "record", stats)
	}

	g.tick++
}

// pruneNow runs a manual prune outside any strategy and folds the
// result into the latest record.
func (g *Game) pruneNow(ratio float64) {
	report, err := g.plant.Prune(ratio)
	if err != nil {
		slog.Error("manual prune failed", "ratio", ratio, "error", err)
		return
	}
	slog.Info("manual prune", "ratio", ratio, "pruned", report.Pruned, "removed", report.Removed)
}

// UpdateHeadless advances the configured number of steps per call.
func (g *Game) UpdateHeadless() {
	for i := 0; i < g.opts.StepsPerUpdate && !g.Done(); i++ {
		g.Step()
	}
}

func (g *Game) snapshotStats(report plant.PruneReport) telemetry.StepStats {
	s := g.plant.Statistics()
	counts := g.plant.StatusCounts()
	history := g.plant.History()

	photosynthesis := 0.0
	if len(history) > 0 {
		photosynthesis = history[len(history)-1]
	}

	return telemetry.StepStats{
		Step:            g.tick,
		Photosynthesis:  photosynthesis,
		TotalBranches:   s.TotalBranches,
		RootBranches:    s.RootBranches,
		TotalNodes:      s.TotalNodes,
		AverageAge:      s.AverageAge,
		Growing:         counts[components.Growing],
		MaxLength:       counts[components.StoppedMaxLength],
		SpaceConstraint: counts[components.StoppedSpaceConstraint],
		MaxGeneration:   counts[components.StoppedMaxGeneration],
		Overcrowded:     counts[components.StoppedOvercrowded],
		Pruned:          report.Pruned,
		Removed:         report.Removed,
	}
}

// Unload flushes and closes run outputs.
func (g *Game) Unload() {
	if err := g.output.Close(); err != nil {
		slog.Error("closing output", "error", err)
	}
}
