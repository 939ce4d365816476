// Package systems provides the default collaborators of the simulation: the
// force step, position and type setters, and matrix generators.
package systems

import "github.com/Yousifus/particle-life-app-sub000/components"

// maxGridCols bounds the grid at maxGridCols x maxGridCols cells.
const maxGridCols = 512

// SpatialGrid buckets particle indices by position for neighbor lookups.
// Cells are at least cellSize wide, so every neighbor within cellSize of a
// particle lies in its own cell or one of the eight around it.
type SpatialGrid struct {
	cellSize float64
	cols     int
	cells    [][]int32 // flat grid of particle index lists
}

// NewSpatialGrid creates a grid over the world with cells of at least cellSize.
func NewSpatialGrid(cellSize float64) *SpatialGrid {
	g := &SpatialGrid{}
	g.Resize(cellSize)
	return g
}

// Resize changes the cell size, keeping the grid empty.
func (g *SpatialGrid) Resize(cellSize float64) {
	cols := int(WorldSize / cellSize)
	if cols < 1 {
		cols = 1
	}
	if cols > maxGridCols {
		cols = maxGridCols
	}
	g.cols = cols
	g.cellSize = WorldSize / float64(cols)
	g.cells = make([][]int32, cols*cols)
	for i := range g.cells {
		g.cells[i] = make([]int32, 0, 8)
	}
}

// CellSize returns the actual cell width.
func (g *SpatialGrid) CellSize() float64 {
	return g.cellSize
}

// Cols returns the number of cells per row.
func (g *SpatialGrid) Cols() int {
	return g.cols
}

// Clear removes all indices from the grid.
func (g *SpatialGrid) Clear() {
	for i := range g.cells {
		g.cells[i] = g.cells[i][:0]
	}
}

// Rebuild clears the grid and inserts every particle.
func (g *SpatialGrid) Rebuild(particles []components.Particle) {
	g.Clear()
	for i := range particles {
		g.Insert(int32(i), particles[i].Position.X, particles[i].Position.Y)
	}
}

// Insert adds particle index i at the given position.
func (g *SpatialGrid) Insert(i int32, x, y float64) {
	col, row := g.cellOf(x, y)
	idx := row*g.cols + col
	g.cells[idx] = append(g.cells[idx], i)
}

// NearCells appends to dst the indices of the cells in the 3x3 block around
// (x, y) and returns it. With wrap the block wraps around the world edges;
// without it cells outside the world are left out. A cell is never listed
// twice, even when the grid has fewer than three columns.
func (g *SpatialGrid) NearCells(x, y float64, wrap bool, dst []int) []int {
	if g.cols < 3 {
		for i := range g.cells {
			dst = append(dst, i)
		}
		return dst
	}

	col, row := g.cellOf(x, y)
	for dr := -1; dr <= 1; dr++ {
		r := row + dr
		if wrap {
			r = (r + g.cols) % g.cols
		} else if r < 0 || r >= g.cols {
			continue
		}
		for dc := -1; dc <= 1; dc++ {
			c := col + dc
			if wrap {
				c = (c + g.cols) % g.cols
			} else if c < 0 || c >= g.cols {
				continue
			}
			dst = append(dst, r*g.cols+c)
		}
	}
	return dst
}

// Cell returns the particle indices stored in cell idx.
func (g *SpatialGrid) Cell(idx int) []int32 {
	return g.cells[idx]
}

// cellOf returns the cell for a world position, clamped to the grid.
func (g *SpatialGrid) cellOf(x, y float64) (col, row int) {
	col = clampIndex(int((x-WorldMin)/g.cellSize), g.cols)
	row = clampIndex(int((y-WorldMin)/g.cellSize), g.cols)
	return col, row
}
