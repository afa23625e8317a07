package plant

import (
	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/bramble/components"
)

// BranchSnapshot is a read-only copy of one branch for rendering:
// endpoints for the segment, status for color mapping, generation for
// stroke weight, and leaf positions.
type BranchSnapshot struct {
	Start      r2.Vec
	End        r2.Vec
	Status     components.BranchStatus
	Generation int
	Leaves     []r2.Vec
	Children   []BranchSnapshot
}

// Snapshot copies the current tree, one entry per root branch. The
// result shares nothing with the live tree and stays valid across
// further simulation steps.
func (p *Plant) Snapshot() []BranchSnapshot {
	out := make([]BranchSnapshot, 0, len(p.roots))
	for _, root := range p.roots {
		if snap, ok := p.snapshotBranch(root); ok {
			out = append(out, snap)
		}
	}
	return out
}

func (p *Plant) snapshotBranch(e ecs.Entity) (BranchSnapshot, bool) {
	b := p.branches.Get(e)
	if b == nil {
		return BranchSnapshot{}, false
	}

	snap := BranchSnapshot{
		Start:      b.Start,
		End:        b.Tip(),
		Status:     b.Status,
		Generation: b.Generation,
	}
	for _, cluster := range b.Nodes {
		for i := range cluster {
			snap.Leaves = append(snap.Leaves, cluster[i].Pos)
		}
	}
	for _, c := range b.Children {
		if child, ok := p.snapshotBranch(c); ok {
			snap.Children = append(snap.Children, child)
		}
	}
	return snap, true
}
