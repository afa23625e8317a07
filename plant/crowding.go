package plant

import (
	"math"

	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r2"
)

// numSectors is the angular resolution of the overcrowding heuristic:
// neighbors are bucketed into quadrants around the queried point.
const numSectors = 4

// NearbyBranches returns every branch whose tip lies strictly within
// radius of point, excluding the given entity. The semantics are those
// of an exhaustive scan over the whole tree; the tip grid only
// accelerates the lookup and is rebuilt whenever the tree has mutated
// since the last query.
func (p *Plant) NearbyBranches(point r2.Vec, radius float64, exclude ecs.Entity) []TipHit {
	if p.gridVersion != p.version {
		p.rebuildGrid()
	}
	return p.grid.QueryRadius(nil, point, radius, exclude)
}

func (p *Plant) rebuildGrid() {
	p.grid.Clear()
	query := p.filter.Query()
	for query.Next() {
		b := query.Get()
		p.grid.Insert(query.Entity(), b.Tip())
	}
	p.gridVersion = p.version
}

// isOvercrowded applies the directional clustering heuristic at a
// point: fewer than the minimum neighbor count is never overcrowded;
// otherwise the point is overcrowded when any single quadrant, taken
// by the direction from the point to each neighbor tip, holds at
// least the sector threshold. A point surrounded on one side but open
// on the others is therefore not blocked.
func (p *Plant) isOvercrowded(point r2.Vec, exclude ecs.Entity) bool {
	nearby := p.NearbyBranches(point, p.cfg.Crowding.Radius, exclude)
	if len(nearby) < p.cfg.Crowding.MinNeighbors {
		return false
	}

	var sectors [numSectors]int
	for _, hit := range nearby {
		d := r2.Sub(hit.Pos, point)
		angle := math.Atan2(d.Y, d.X)
		s := int((angle+math.Pi)/(math.Pi/2)) % numSectors
		sectors[s]++
	}

	for _, n := range sectors {
		if n >= p.cfg.Crowding.SectorThreshold {
			return true
		}
	}
	return false
}
