package plant

import (
	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r2"
)

// TipHit couples a branch entity with its tip position at query time.
type TipHit struct {
	Entity ecs.Entity
	Pos    r2.Vec
}

// TipGrid provides cell-bucketed lookups of branch tips. Positions
// outside the covered area clamp into the edge cells, so the grid must
// be sized to contain every reachable tip; the distance test itself is
// always exact.
type TipGrid struct {
	cellSize   float64
	cols, rows int
	minX, minY float64
	cells      [][]TipHit
}

// NewTipGrid creates a grid covering the rectangle at (minX, minY)
// with the given width and height. cellSize must be positive.
func NewTipGrid(minX, minY, width, height, cellSize float64) *TipGrid {
	cols := int(width/cellSize) + 1
	rows := int(height/cellSize) + 1

	cells := make([][]TipHit, cols*rows)
	return &TipGrid{
		cellSize: cellSize,
		cols:     cols,
		rows:     rows,
		minX:     minX,
		minY:     minY,
		cells:    cells,
	}
}

// Clear removes all tips from the grid.
func (g *TipGrid) Clear() {
	for i := range g.cells {
		g.cells[i] = g.cells[i][:0]
	}
}

// Insert adds a branch tip to the grid.
func (g *TipGrid) Insert(e ecs.Entity, pos r2.Vec) {
	idx := g.cellIndex(pos.X, pos.Y)
	g.cells[idx] = append(g.cells[idx], TipHit{Entity: e, Pos: pos})
}

// QueryRadius appends to dst every tip strictly within radius of
// point, excluding the given entity, and returns the updated slice.
func (g *TipGrid) QueryRadius(dst []TipHit, point r2.Vec, radius float64, exclude ecs.Entity) []TipHit {
	cellRadius := int(radius/g.cellSize) + 1
	centerCol := g.clampCol(int((point.X - g.minX) / g.cellSize))
	centerRow := g.clampRow(int((point.Y - g.minY) / g.cellSize))
	radiusSq := radius * radius

	minCol := g.clampCol(centerCol - cellRadius)
	maxCol := g.clampCol(centerCol + cellRadius)
	minRow := g.clampRow(centerRow - cellRadius)
	maxRow := g.clampRow(centerRow + cellRadius)

	for row := minRow; row <= maxRow; row++ {
		for col := minCol; col <= maxCol; col++ {
			for _, hit := range g.cells[row*g.cols+col] {
				if hit.Entity == exclude {
					continue
				}
				d := r2.Sub(hit.Pos, point)
				if d.X*d.X+d.Y*d.Y < radiusSq {
					dst = append(dst, hit)
				}
			}
		}
	}
	return dst
}

func (g *TipGrid) cellIndex(x, y float64) int {
	col := g.clampCol(int((x - g.minX) / g.cellSize))
	row := g.clampRow(int((y - g.minY) / g.cellSize))
	return row*g.cols + col
}

func (g *TipGrid) clampCol(col int) int {
	if col < 0 {
		return 0
	}
	if col >= g.cols {
		return g.cols - 1
	}
	return col
}

func (g *TipGrid) clampRow(row int) int {
	if row < 0 {
		return 0
	}
	if row >= g.rows {
		return g.rows - 1
	}
	return row
}
