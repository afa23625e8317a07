package plant

import (
	"fmt"
	"math"
	"sort"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/bramble/components"
)

// PruneReport summarizes the effect of a Prune call.
type PruneReport struct {
	// Pruned is the number of low-efficiency branches selected for
	// removal.
	Pruned int
	// Removed is the total number of branch records removed from the
	// arena: the selected branches plus their entire subtrees.
	Removed int
}

// Prune removes the least space-efficient non-root branches.
//
// Every non-root branch is scored by leafCount/(neighborCount+1), or
// its plain leaf count when it has no neighbors; lower means the
// branch contributes little leaf area for the crowding it causes.
// Branches scoring below the efficiency threshold are sorted ascending
// and at most floor(ratio * total non-root count) of them are detached
// from their parents, each taking its whole subtree with it. Root
// branches are never candidates. Afterward the status of every
// remaining branch is rechecked so that stops relieved by the reduced
// crowding can reopen.
func (p *Plant) Prune(ratio float64) (PruneReport, error) {
	if math.IsNaN(ratio) || ratio < 0 || ratio > 1 {
		return PruneReport{}, fmt.Errorf("plant: prune ratio %v outside [0, 1]", ratio)
	}

	candidates := p.nonRootBranches()

	type scored struct {
		e     ecs.Entity
		score float64
	}
	pool := make([]scored, 0, len(candidates))
	for _, e := range candidates {
		b := p.branches.Get(e)
		neighbors := len(p.NearbyBranches(b.Tip(), p.cfg.Pruning.NeighborRadius, e))
		leaves := b.LeafCount()
		score := float64(leaves)
		if neighbors > 0 {
			score = float64(leaves) / float64(neighbors+1)
		}
		if score < p.cfg.Pruning.EfficiencyThreshold {
			pool = append(pool, scored{e: e, score: score})
		}
	}

	// Least efficient first; stable so ties keep tree walk order.
	sort.SliceStable(pool, func(i, j int) bool { return pool[i].score < pool[j].score })

	budget := int(ratio * float64(len(candidates)))
	if budget > len(pool) {
		budget = len(pool)
	}

	var report PruneReport
	for _, s := range pool[:budget] {
		report.Pruned++
		b := p.branches.Get(s.e)
		if b == nil {
			// Already gone with an ancestor selected earlier.
			continue
		}
		if parent := p.branches.Get(b.Parent); parent != nil {
			p.detachChild(parent, s.e)
		}
		report.Removed += p.removeSubtree(s.e)
	}

	for _, root := range p.roots {
		p.recheckStatusAfterPruning(root)
	}

	return report, nil
}

// nonRootBranches collects every non-root branch reachable from the
// roots, in tree walk order.
func (p *Plant) nonRootBranches() []ecs.Entity {
	var out []ecs.Entity
	var walk func(e ecs.Entity)
	walk = func(e ecs.Entity) {
		b := p.branches.Get(e)
		if b == nil {
			return
		}
		for _, c := range b.Children {
			out = append(out, c)
			walk(c)
		}
	}
	for _, root := range p.roots {
		walk(root)
	}
	return out
}

func (p *Plant) detachChild(parent *components.Branch, child ecs.Entity) {
	for i, c := range parent.Children {
		if c == child {
			parent.Children = append(parent.Children[:i], parent.Children[i+1:]...)
			p.version++
			return
		}
	}
}

// removeSubtree deletes the branch record and, recursively, its whole
// subtree from the arena. Returns the number of records removed.
func (p *Plant) removeSubtree(e ecs.Entity) int {
	b := p.branches.Get(e)
	if b == nil {
		return 0
	}
	children := append([]ecs.Entity(nil), b.Children...)
	n := 0
	for _, c := range children {
		n += p.removeSubtree(c)
	}
	p.branches.Remove(e)
	p.version++
	return n + 1
}
