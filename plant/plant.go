// Package plant implements the growth-and-pruning simulation engine.
//
// The branch tree is stored in an ark ECS world used as an arena:
// every branch is an entity carrying a single components.Branch record,
// and parent/child navigation uses stable entity handles. The plant
// owns the root entities; each branch owns its children. Whole-tree
// aggregates run as filter queries over the arena, while growth walks
// the explicit root-to-children order so that random draws happen in a
// reproducible sequence.
package plant

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/bramble/components"
	"github.com/pthm-cable/bramble/config"
)

// maxChildren bounds the number of children a branch may spawn.
const maxChildren = 2

// Plant owns the branch arena and implements per-step growth, pruning,
// and whole-tree queries. It is not safe for concurrent use; one call
// to Grow is one simulated time step.
type Plant struct {
	cfg *config.Config
	rng *rand.Rand

	world    *ecs.World
	branches *ecs.Map1[components.Branch]
	filter   *ecs.Filter1[components.Branch]

	center  r2.Vec
	roots   []ecs.Entity
	history []float64

	// version increments on every tree mutation; the tip grid is
	// rebuilt lazily when it falls behind.
	version     uint64
	grid        *TipGrid
	gridVersion uint64
}

// NewPlant creates an empty plant (zero roots) for the given
// configuration, drawing all randomness from rng. The configuration
// is validated against the conditions that would corrupt the engine:
// non-positive growth rate or node spacing and a negative generation
// bound are rejected.
func NewPlant(cfg *config.Config, rng *rand.Rand) (*Plant, error) {
	if cfg.Branch.GrowthRate <= 0 {
		return nil, fmt.Errorf("plant: growth rate %v must be positive", cfg.Branch.GrowthRate)
	}
	if cfg.Branch.NodeSpacing <= 0 {
		return nil, fmt.Errorf("plant: node spacing %v must be positive", cfg.Branch.NodeSpacing)
	}
	if cfg.Branch.MaxGeneration < 0 {
		return nil, fmt.Errorf("plant: max generation %d must be non-negative", cfg.Branch.MaxGeneration)
	}

	world := ecs.NewWorld()
	p := &Plant{
		cfg:      cfg,
		rng:      rng,
		world:    world,
		branches: ecs.NewMap1[components.Branch](world),
		filter:   ecs.NewFilter1[components.Branch](world),
	}

	// The grid covers every reachable tip: the longest possible chain
	// is one branch per generation, each capped at max length.
	extent := cfg.Branch.MaxLength*float64(cfg.Branch.MaxGeneration+1) + 1
	cell := math.Max(cfg.Crowding.Radius, cfg.Pruning.NeighborRadius)
	if cell <= 0 {
		cell = cfg.Branch.NodeSpacing
	}
	p.grid = NewTipGrid(p.center.X-extent, p.center.Y-extent, 2*extent, 2*extent, cell)

	return p, nil
}

// Center returns the plant's center position.
func (p *Plant) Center() r2.Vec {
	return p.center
}

// History returns the photosynthesis-per-step record, one scalar per
// completed Grow call. The slice is owned by the plant; callers must
// treat it as read-only.
func (p *Plant) History() []float64 {
	return p.history
}

// Roots returns the root branch entities in creation order.
func (p *Plant) Roots() []ecs.Entity {
	return p.roots
}

// Grow advances the simulation by one step: every root branch grows
// recursively, a new root may be attempted, and the total
// photosynthesis is appended to the history.
func (p *Plant) Grow() {
	for _, root := range p.roots {
		p.growBranch(root)
	}

	if p.rng.Float64() < p.cfg.Plant.RootChance {
		p.AddBranch()
	}

	total := 0.0
	for _, root := range p.roots {
		total += p.photosynthesis(root)
	}
	p.history = append(p.history, total)
}

// AddBranch attempts to add a new root branch. It is a silent no-op
// when the area budget is exhausted or no direction with enough
// angular separation from existing roots is found within the
// configured number of trials.
func (p *Plant) AddBranch() {
	if !p.canAddRoot() {
		return
	}
	for i := 0; i < p.cfg.Plant.RootTrials; i++ {
		angle := p.rng.Float64() * 2 * math.Pi
		if p.rootAngleClear(angle) {
			e := p.spawnBranch(p.center, angle, p.cfg.Branch.GrowthRate, 0, ecs.Entity{}, true)
			p.roots = append(p.roots, e)
			return
		}
	}
}

// canAddRoot checks the soft area budget: the weighted count of all
// branches, every generation included, must stay below the total area.
func (p *Plant) canAddRoot() bool {
	return float64(p.TotalBranches())*p.cfg.Plant.BranchArea < p.cfg.Plant.Area
}

func (p *Plant) rootAngleClear(angle float64) bool {
	for _, r := range p.roots {
		rb := p.branches.Get(r)
		if math.Abs(angle-rb.Angle) <= p.cfg.Plant.RootMinSeparation {
			return false
		}
	}
	return true
}

// spawnBranch adds a zero-length branch record to the arena.
// Generation bounds are an internal invariant; violating them is a
// defect, not a runtime condition.
func (p *Plant) spawnBranch(start r2.Vec, angle, growthRate float64, generation int, parent ecs.Entity, isRoot bool) ecs.Entity {
	if generation < 0 || generation > p.cfg.Branch.MaxGeneration {
		panic(fmt.Sprintf("plant: branch generation %d outside [0, %d]", generation, p.cfg.Branch.MaxGeneration))
	}
	e := p.branches.NewEntity(&components.Branch{
		Start:      start,
		Angle:      angle,
		MaxLength:  p.cfg.Branch.MaxLength,
		GrowthRate: growthRate,
		Generation: generation,
		Status:     components.Growing,
		Parent:     parent,
		IsRoot:     isRoot,
	})
	p.version++
	return e
}

// photosynthesis sums the light gain of every leaf owned by the branch
// and, recursively, by its children. The only mutation is each leaf's
// cached gain field.
func (p *Plant) photosynthesis(e ecs.Entity) float64 {
	b := p.branches.Get(e)
	if b == nil {
		return 0
	}

	total := 0.0
	branchArea := b.LeafArea()
	for i := range b.Nodes {
		cluster := b.Nodes[i]
		for j := range cluster {
			leaf := &cluster[j]
			x := 1.0
			switch p.cfg.Light.AttenuationMode {
			case config.AttenuationBranch:
				x = branchArea
			case config.AttenuationLeaf:
				x = leaf.Area
			}
			total += leaf.ComputeLightGain(p.cfg.Light.Incident, p.cfg.Light.Extinction, x)
		}
	}

	for _, c := range b.Children {
		total += p.photosynthesis(c)
	}
	return total
}
