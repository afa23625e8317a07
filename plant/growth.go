package plant

import (
	"math"

	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/bramble/components"
)

// growBranch advances one branch by one step and recurses into its
// children. Children grow regardless of this branch's own status; each
// is gated only by its own.
func (p *Plant) growBranch(e ecs.Entity) {
	b := p.branches.Get(e)
	if b == nil {
		return
	}

	if b.Status == components.Growing && b.Length < b.MaxLength {
		old := b.Length
		b.Length += b.GrowthRate
		if b.Length > b.MaxLength {
			b.Length = b.MaxLength
		}
		b.Age++
		b.Complexity = math.Max(p.cfg.Branch.ComplexityFloor, 1-float64(b.Age)*p.cfg.Branch.ComplexityDecay)
		p.version++

		// Materialize leaf clusters at every node offset crossed by
		// this step. Nodes revisit across steps until the per-node
		// leaf cap fills.
		spacing := p.cfg.Branch.NodeSpacing
		for idx := int(math.Floor(old / spacing)); float64(idx)*spacing <= b.Length; idx++ {
			p.addLeavesAtNode(b, idx)
		}

		if p.rng.Float64() < p.cfg.Branch.BranchChance && p.canBranch(e, b) {
			p.addSubBranch(e)
			// Spawning may move component storage; re-acquire.
			b = p.branches.Get(e)
		}

		p.updateStatus(e, b)
	}

	children := append([]ecs.Entity(nil), b.Children...)
	for _, c := range children {
		p.growBranch(c)
	}
}

// addLeavesAtNode adds one leaf to the cluster at the given node index
// unless the cluster is full. The leaf sits a small random angular
// offset away from the branch axis point; the jitter is cosmetic and
// carries no physics.
func (p *Plant) addLeavesAtNode(b *components.Branch, idx int) {
	for len(b.Nodes) <= idx {
		b.Nodes = append(b.Nodes, nil)
	}
	cluster := b.Nodes[idx]
	if len(cluster) >= p.cfg.Branch.MaxLeavesPerNode {
		return
	}

	offsetAngle := p.rng.Float64() * 2 * math.Pi
	at := b.PointAt(float64(idx) * p.cfg.Branch.NodeSpacing)
	pos := r2.Add(at, r2.Scale(p.cfg.Leaf.Offset, r2.Vec{X: math.Cos(offsetAngle), Y: math.Sin(offsetAngle)}))

	b.Nodes[idx] = append(cluster, components.Leaf{
		Pos:        pos,
		Area:       p.cfg.Leaf.Area,
		Efficiency: p.cfg.Leaf.Efficiency,
		Complexity: 1.0,
		Reflection: p.cfg.Leaf.Reflection,
	})
}

// canBranch reports whether the branch may spawn a child right now.
// If every structural condition holds but the tip itself is
// overcrowded, the branch is stopped with a space constraint; this is
// the only path that produces that status.
func (p *Plant) canBranch(e ecs.Entity, b *components.Branch) bool {
	if b.Length < p.cfg.Branch.BranchingThreshold ||
		b.Generation >= p.cfg.Branch.MaxGeneration ||
		len(b.Children) >= maxChildren ||
		b.Status != components.Growing {
		return false
	}
	if b.Length-b.LastBranchLength < p.cfg.Branch.MinBranchSpacing {
		return false
	}
	if p.isOvercrowded(b.Tip(), e) {
		b.Status = components.StoppedSpaceConstraint
		return false
	}
	return true
}

// addSubBranch spawns a child at the current tip. The first child
// forks toward upright growth relative to the parent's direction; a
// second child mirrors the first to the opposite side. Both get a
// small uniform angular perturbation.
func (p *Plant) addSubBranch(e ecs.Entity) {
	b := p.branches.Get(e)
	if !p.canBranch(e, b) {
		return
	}

	base := b.Angle
	var angle float64
	if len(b.Children) == 0 {
		if base >= -math.Pi/2 && base <= math.Pi/2 {
			angle = base + p.cfg.Branch.ForkAngle
		} else {
			angle = base - p.cfg.Branch.ForkAngle
		}
	} else {
		first := p.branches.Get(b.Children[0]).Angle
		angle = base - (first - base)
	}
	angle += (p.rng.Float64()*2 - 1) * p.cfg.Branch.AngleJitter

	start := b.Tip()
	rate := b.GrowthRate * p.cfg.Branch.GrowthDecay
	child := p.spawnBranch(start, angle, rate, b.Generation+1, e, false)

	b = p.branches.Get(e) // re-acquire after spawn
	b.Children = append(b.Children, child)
	b.LastBranchLength = b.Length
}

// updateStatus re-evaluates the branch status in fixed priority order.
// The pass only escalates; it never writes Growing and never touches
// StoppedSpaceConstraint, which only a failed branching attempt sets.
func (p *Plant) updateStatus(e ecs.Entity, b *components.Branch) {
	switch {
	case b.Length >= b.MaxLength:
		b.Status = components.StoppedMaxLength
	case b.Generation >= p.cfg.Branch.MaxGeneration:
		b.Status = components.StoppedMaxGeneration
	case p.isOvercrowded(b.Tip(), e):
		b.Status = components.StoppedOvercrowded
	}
}

// recheckStatusAfterPruning reopens this branch if it was stopped for
// a space-related reason and its tip is no longer overcrowded, then
// recurses into all remaining children. Reopening resets the
// last-branch marker so branching-spacing eligibility restarts from
// the post-prune length. This is the only mechanism by which growth
// resumes after a stop.
func (p *Plant) recheckStatusAfterPruning(e ecs.Entity) {
	b := p.branches.Get(e)
	if b == nil {
		return
	}

	if b.Status.Reopenable() && !p.isOvercrowded(b.Tip(), e) {
		b.Status = components.Growing
		if b.Length > b.MaxLength {
			b.Length = b.MaxLength
		}
		b.LastBranchLength = b.Length
	}

	for _, c := range b.Children {
		p.recheckStatusAfterPruning(c)
	}
}
