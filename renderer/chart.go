package renderer

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// HistoryChart renders the photosynthesis-per-step time series.
type HistoryChart struct {
	bounds rl.Rectangle
}

// NewHistoryChart creates a chart for the given screen area.
func NewHistoryChart(bounds rl.Rectangle) *HistoryChart {
	return &HistoryChart{bounds: bounds}
}

// Draw renders the series as a polyline scaled to its maximum.
func (c *HistoryChart) Draw(history []float64) {
	rl.DrawRectangleRec(c.bounds, rl.Color{R: 16, G: 16, B: 20, A: 255})
	rl.DrawRectangleLinesEx(c.bounds, 1, rl.DarkGray)
	rl.DrawText("photosynthesis", int32(c.bounds.X)+8, int32(c.bounds.Y)+6, 10, rl.Gray)

	if len(history) == 0 {
		return
	}

	maxVal := history[0]
	for _, v := range history[1:] {
		if v > maxVal {
			maxVal = v
		}
	}
	if maxVal <= 0 {
		maxVal = 1
	}

	pad := float32(8)
	x0 := c.bounds.X + pad
	y0 := c.bounds.Y + c.bounds.Height - pad
	w := c.bounds.Width - 2*pad
	h := c.bounds.Height - 2*pad - 16

	denom := float32(len(history) - 1)
	if denom < 1 {
		denom = 1
	}

	prev := rl.Vector2{X: x0, Y: y0 - float32(history[0]/maxVal)*h}
	for i := 1; i < len(history); i++ {
		cur := rl.Vector2{
			X: x0 + float32(i)/denom*w,
			Y: y0 - float32(history[i]/maxVal)*h,
		}
		rl.DrawLineV(prev, cur, rl.Lime)
		prev = cur
	}

	label := fmt.Sprintf("%.1f", history[len(history)-1])
	rl.DrawText(label, int32(prev.X)-rl.MeasureText(label, 10), int32(prev.Y)-12, 10, rl.Lime)
}
