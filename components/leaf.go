package components

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Leaf is a point light-capturing unit attached to a branch node.
// All fields except LightGain are fixed at creation; LightGain is a
// derived cache recomputed from ambient inputs before every read.
type Leaf struct {
	Pos        r2.Vec
	Area       float64
	LightGain  float64
	Efficiency float64 // photosynthesis efficiency coefficient
	Complexity float64 // structural-complexity factor
	Reflection float64
}

// ComputeLightGain updates and returns the leaf's light gain for the
// given incident light and Beer-Lambert attenuation input x.
// Negative incident light is not validated; the result is undefined.
func (l *Leaf) ComputeLightGain(incident, extinction, x float64) float64 {
	l.LightGain = incident *
		(1 - l.Reflection) *
		(1 - math.Exp(-extinction*x)) *
		l.Efficiency *
		l.Complexity
	return l.LightGain
}
