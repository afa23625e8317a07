// Package components defines the data records stored in the plant's
// branch arena. Logic lives in the plant package; these types carry
// state only, plus small derived-position helpers.
package components

import (
	"math"

	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r2"
)

// Branch is a single woody segment in the plant. Branches form a tree:
// the plant owns the roots, each branch owns its children, and Parent
// is a non-owning back-reference (zero entity for roots).
//
// Nodes holds leaf clusters keyed by node index; the cluster at index
// i sits at offset i * node spacing along the branch axis. Indices are
// materialized in increasing order as growth crosses them, so
// iteration over Nodes is deterministic.
type Branch struct {
	Start      r2.Vec
	Angle      float64 // growth direction, radians
	Length     float64
	MaxLength  float64
	GrowthRate float64 // length added per step

	Age        int
	Complexity float64 // structural complexity, decays with age
	Generation int     // distance from a root; roots are 0
	Status     BranchStatus

	// LastBranchLength is the length at which this branch last
	// spawned a child; branching waits for a minimum spacing of
	// fresh growth beyond it.
	LastBranchLength float64

	Nodes [][]Leaf

	Children []ecs.Entity
	Parent   ecs.Entity
	IsRoot   bool
}

// PointAt returns the position at the given offset along the branch axis.
func (b *Branch) PointAt(offset float64) r2.Vec {
	return r2.Add(b.Start, r2.Scale(offset, r2.Vec{X: math.Cos(b.Angle), Y: math.Sin(b.Angle)}))
}

// Tip returns the branch endpoint at its current length.
func (b *Branch) Tip() r2.Vec {
	return b.PointAt(b.Length)
}

// LeafCount returns the number of leaves across all node clusters.
func (b *Branch) LeafCount() int {
	n := 0
	for _, cluster := range b.Nodes {
		n += len(cluster)
	}
	return n
}

// LeafArea returns the summed projected area of all leaves.
func (b *Branch) LeafArea() float64 {
	a := 0.0
	for _, cluster := range b.Nodes {
		for i := range cluster {
			a += cluster[i].Area
		}
	}
	return a
}
