// Package ui renders the simulation control panel.
package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/bramble/telemetry"
)

// Actions reports what the user requested this frame.
type Actions struct {
	TogglePause bool
	StepOnce    bool
	PruneNow    bool
	Ratio       float64 // current slider value, used by PruneNow
}

// ControlsPanel renders the right-side control panel: run state,
// manual pruning, and the latest step statistics.
type ControlsPanel struct {
	x, y  int32
	width int32
	ratio float32
}

// NewControlsPanel creates a controls panel at the given position.
func NewControlsPanel(x, y, width int32, defaultRatio float64) *ControlsPanel {
	return &ControlsPanel{x: x, y: y, width: width, ratio: float32(defaultRatio)}
}

// Draw renders the panel and returns the actions triggered this frame.
func (c *ControlsPanel) Draw(stats telemetry.StepStats, paused bool, strategyName string) Actions {
	var actions Actions

	padding := int32(10)
	x := c.x + padding
	y := c.y + padding
	innerWidth := float32(c.width - 2*padding)

	rl.DrawRectangle(c.x, c.y, c.width, 360, rl.Color{R: 24, G: 24, B: 28, A: 255})
	rl.DrawText("bramble", x, y, 16, rl.White)
	y += 26

	pauseLabel := "Pause"
	if paused {
		pauseLabel = "Resume"
	}
	if gui.Button(rl.Rectangle{X: float32(x), Y: float32(y), Width: innerWidth/2 - 4, Height: 24}, pauseLabel) {
		actions.TogglePause = true
	}
	if gui.Button(rl.Rectangle{X: float32(x) + innerWidth/2 + 4, Y: float32(y), Width: innerWidth/2 - 4, Height: 24}, "Step") {
		actions.StepOnce = true
	}
	y += 34

	c.ratio = gui.SliderBar(
		rl.Rectangle{X: float32(x), Y: float32(y), Width: innerWidth - 40, Height: 20},
		"", fmt.Sprintf("%.2f", c.ratio), c.ratio, 0, 1,
	)
	y += 26

	if gui.Button(rl.Rectangle{X: float32(x), Y: float32(y), Width: innerWidth, Height: 24}, "Prune now") {
		actions.PruneNow = true
		actions.Ratio = float64(c.ratio)
	}
	y += 38

	rl.DrawText(fmt.Sprintf("strategy: %s", strategyName), x, y, 10, rl.Gray)
	y += 18

	lines := []string{
		fmt.Sprintf("step        %d", stats.Step),
		fmt.Sprintf("branches    %d (%d roots)", stats.TotalBranches, stats.RootBranches),
		fmt.Sprintf("nodes       %d", stats.TotalNodes),
		fmt.Sprintf("avg age     %.2f", stats.AverageAge),
		fmt.Sprintf("photosynth  %.2f", stats.Photosynthesis),
		"",
		fmt.Sprintf("growing     %d", stats.Growing),
		fmt.Sprintf("max length  %d", stats.MaxLength),
		fmt.Sprintf("max gen     %d", stats.MaxGeneration),
		fmt.Sprintf("overcrowded %d", stats.Overcrowded),
		fmt.Sprintf("space stop  %d", stats.SpaceConstraint),
	}
	for _, line := range lines {
		rl.DrawText(line, x, y, 10, rl.LightGray)
		y += 14
	}

	return actions
}
