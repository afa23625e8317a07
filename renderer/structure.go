// Package renderer draws the plant structure and the photosynthesis
// time series. It consumes read-only snapshots from the engine and
// owns all drawing concerns.
package renderer

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/bramble/components"
	"github.com/pthm-cable/bramble/plant"
)

// worldExtent is the half-width of the world window shown in the
// structure view, in plant units.
const worldExtent = 2.0

// StructureView renders the branch tree inside a screen rectangle.
type StructureView struct {
	bounds rl.Rectangle
}

// NewStructureView creates a structure view for the given screen area.
func NewStructureView(bounds rl.Rectangle) *StructureView {
	return &StructureView{bounds: bounds}
}

// Draw renders the area-budget disc, every branch colored by status
// with stroke width by generation, and every leaf.
func (v *StructureView) Draw(snap []plant.BranchSnapshot, center r2.Vec, area float64) {
	rl.DrawRectangleRec(v.bounds, rl.Color{R: 18, G: 22, B: 18, A: 255})
	rl.DrawRectangleLinesEx(v.bounds, 1, rl.DarkGray)

	// Growth-area budget disc
	radius := math.Sqrt(area / math.Pi)
	c := v.toScreen(center, center)
	rl.DrawCircleLines(int32(c.X), int32(c.Y), float32(radius*v.scale()), rl.Color{R: 60, G: 140, B: 60, A: 200})

	for i := range snap {
		v.drawBranch(&snap[i], center)
	}
}

func (v *StructureView) drawBranch(b *plant.BranchSnapshot, center r2.Vec) {
	thickness := 2 - 0.5*float64(b.Generation)
	if thickness < 0.5 {
		thickness = 0.5
	}
	rl.DrawLineEx(v.toScreen(b.Start, center), v.toScreen(b.End, center), float32(thickness), statusColor(b.Status))

	for _, leaf := range b.Leaves {
		rl.DrawCircleV(v.toScreen(leaf, center), 2, rl.Green)
	}

	for i := range b.Children {
		v.drawBranch(&b.Children[i], center)
	}
}

func (v *StructureView) scale() float64 {
	w := float64(v.bounds.Width)
	h := float64(v.bounds.Height)
	return math.Min(w, h) / (2 * worldExtent)
}

// toScreen maps a plant-space position into the view rectangle, with
// the plant center at the middle and Y pointing up.
func (v *StructureView) toScreen(p, center r2.Vec) rl.Vector2 {
	s := v.scale()
	return rl.Vector2{
		X: v.bounds.X + v.bounds.Width/2 + float32((p.X-center.X)*s),
		Y: v.bounds.Y + v.bounds.Height/2 - float32((p.Y-center.Y)*s),
	}
}

// statusColor maps a branch status to its display color.
func statusColor(s components.BranchStatus) rl.Color {
	switch s {
	case components.Growing:
		return rl.Blue
	case components.StoppedMaxLength:
		return rl.Brown
	case components.StoppedSpaceConstraint:
		return rl.Red
	case components.StoppedMaxGeneration:
		return rl.Purple
	case components.StoppedOvercrowded:
		return rl.Orange
	default:
		return rl.Gray
	}
}
