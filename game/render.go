package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/bramble/config"
	"github.com/pthm-cable/bramble/renderer"
	"github.com/pthm-cable/bramble/ui"
)

// panelWidth is the width of the right-side controls panel.
const panelWidth = 240

// views bundles the graphical-mode renderers.
type views struct {
	structure *renderer.StructureView
	chart     *renderer.HistoryChart
	panel     *ui.ControlsPanel
}

func newViews(cfg *config.Config) *views {
	w := float32(cfg.Screen.Width)
	h := float32(cfg.Screen.Height)

	structureW := w - panelWidth
	chartH := h * 0.3

	return &views{
		structure: renderer.NewStructureView(rl.Rectangle{X: 0, Y: 0, Width: structureW, Height: h - chartH}),
		chart:     renderer.NewHistoryChart(rl.Rectangle{X: 0, Y: h - chartH, Width: structureW, Height: chartH}),
		panel:     ui.NewControlsPanel(int32(structureW), 0, panelWidth, cfg.Strategy.Fixed.Ratio),
	}
}

// Update handles input and advances the simulation in graphical mode.
func (g *Game) Update() {
	if rl.IsKeyPressed(rl.KeySpace) {
		g.paused = !g.paused
	}
	if rl.IsKeyPressed(rl.KeyRight) && g.speed < 10 {
		g.speed++
	}
	if rl.IsKeyPressed(rl.KeyLeft) && g.speed > 1 {
		g.speed--
	}

	if !g.paused {
		for i := 0; i < g.speed && !g.Done(); i++ {
			g.Step()
		}
	}
}

// Draw renders the current state.
func (g *Game) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(rl.Black)

	g.view.structure.Draw(g.plant.Snapshot(), g.plant.Center(), g.plant.TotalArea())
	g.view.chart.Draw(g.plant.History())

	last, _ := g.collector.Last()
	actions := g.view.panel.Draw(last, g.paused, g.strat.Name())
	g.applyActions(actions)

	rl.EndDrawing()
}

func (g *Game) applyActions(actions ui.Actions) {
	if actions.TogglePause {
		g.paused = !g.paused
	}
	if actions.StepOnce && !g.Done() {
		g.Step()
	}
	if actions.PruneNow {
		g.pruneNow(actions.Ratio)
	}
}
