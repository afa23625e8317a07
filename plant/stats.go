package plant

import (
	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/bramble/components"
)

// Stats aggregates whole-tree measurements. All counts cover every
// generation, roots included.
type Stats struct {
	TotalBranches int
	RootBranches  int
	TotalNodes    int // populated leaf-cluster nodes
	AverageAge    float64
}

// Statistics walks the arena and returns aggregate counts. Read-only;
// an empty plant yields zeros.
func (p *Plant) Statistics() Stats {
	s := Stats{RootBranches: len(p.roots)}
	var ages []float64

	query := p.filter.Query()
	for query.Next() {
		b := query.Get()
		s.TotalBranches++
		s.TotalNodes += len(b.Nodes)
		ages = append(ages, float64(b.Age))
	}

	if len(ages) > 0 {
		s.AverageAge = stat.Mean(ages, nil)
	}
	return s
}

// TotalBranches returns the number of branches in the tree, every
// generation included.
func (p *Plant) TotalBranches() int {
	n := 0
	query := p.filter.Query()
	for query.Next() {
		n++
	}
	return n
}

// StatusCounts returns the number of branches in each status, indexed
// by components.BranchStatus.
func (p *Plant) StatusCounts() [components.NumStatuses]int {
	var counts [components.NumStatuses]int
	query := p.filter.Query()
	for query.Next() {
		counts[query.Get().Status]++
	}
	return counts
}

// CountOvercrowdedBranches returns the number of non-root branches
// currently stopped by overcrowding.
func (p *Plant) CountOvercrowdedBranches() int {
	n := 0
	query := p.filter.Query()
	for query.Next() {
		b := query.Get()
		if !b.IsRoot && b.Status == components.StoppedOvercrowded {
			n++
		}
	}
	return n
}

// AreaUsed returns the summed area cost of all branches.
func (p *Plant) AreaUsed() float64 {
	return float64(p.TotalBranches()) * p.cfg.Plant.BranchArea
}

// TotalArea returns the plant's total available growth area.
func (p *Plant) TotalArea() float64 {
	return p.cfg.Plant.Area
}
