package game

import (
	"testing"

	"github.com/pthm-cable/bramble/config"
)

func TestHeadlessRunCompletes(t *testing.T) {
	config.MustInit("")

	g, err := NewGameWithOptions(Options{
		Seed:     42,
		Strategy: "none",
		Headless: true,
		MaxSteps: 20,
	})
	if err != nil {
		t.Fatalf("NewGameWithOptions: %v", err)
	}
	defer g.Unload()

	for !g.Done() {
		g.UpdateHeadless()
	}

	if g.Tick() != 20 {
		t.Errorf("Tick = %d, want 20", g.Tick())
	}
	if got := len(g.Collector().Steps()); got != 20 {
		t.Errorf("recorded steps = %d, want 20", got)
	}
	if got := len(g.Plant().History()); got != 20 {
		t.Errorf("history length = %d, want 20", got)
	}
}

func TestHeadlessRunsAreReproducible(t *testing.T) {
	config.MustInit("")

	run := func() []float64 {
		g, err := NewGameWithOptions(Options{
			Seed:     7,
			Strategy: "interval",
			Headless: true,
			MaxSteps: 60,
		})
		if err != nil {
			t.Fatalf("NewGameWithOptions: %v", err)
		}
		defer g.Unload()
		for !g.Done() {
			g.UpdateHeadless()
		}
		return g.Collector().History()
	}

	a := run()
	b := run()
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("same-seed runs diverge at step %d: %v vs %v", i, a[i], b[i])
		}
	}
}

func TestUnknownStrategyRejected(t *testing.T) {
	config.MustInit("")

	if _, err := NewGameWithOptions(Options{Strategy: "bogus", Headless: true}); err == nil {
		t.Error("NewGameWithOptions accepted unknown strategy")
	}
}
