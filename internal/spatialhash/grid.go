// Package spatialhash implements the uniform-grid spatial index used to
// accelerate both contact generation and SPH neighbor queries. It is
// rebuilt from scratch every solver step and never observed outside it.
package spatialhash

import (
	"math"

	"github.com/golang/geo/r3"
)

// Cell is an integer 3-D cell coordinate, floor(p/h) componentwise.
type Cell struct {
	X, Y, Z int32
}

// Grid maps cell coordinates to the particle indices whose position falls
// in that cell. Single-threaded, no locking; cell side H is fixed at
// construction, as the source index is rebuilt (not resized) each step.
type Grid struct {
	H       float64
	buckets map[Cell][]int
}

// New creates a Grid with cell side h.
func New(h float64) *Grid {
	return &Grid{H: h, buckets: make(map[Cell][]int)}
}

// Clear empties the grid without releasing its bucket map, so repeated
// per-step rebuilds amortize their allocations.
func (g *Grid) Clear() {
	for k := range g.buckets {
		delete(g.buckets, k)
	}
}

// CellOf returns the cell coordinate containing position p.
func (g *Grid) CellOf(p r3.Vector) Cell {
	return Cell{
		X: int32(math.Floor(p.X / g.H)),
		Y: int32(math.Floor(p.Y / g.H)),
		Z: int32(math.Floor(p.Z / g.H)),
	}
}

// Insert appends particle index i to the bucket containing position p.
func (g *Grid) Insert(p r3.Vector, i int) {
	c := g.CellOf(p)
	g.buckets[c] = append(g.buckets[c], i)
}

// Cells returns every occupied cell, for iteration by callers that need to
// visit each bucket once (e.g. collision-pair generation).
func (g *Grid) Cells() []Cell {
	cells := make([]Cell, 0, len(g.buckets))
	for c := range g.buckets {
		cells = append(cells, c)
	}
	return cells
}

// Bucket returns the particle indices stored in cell c (nil if empty).
func (g *Grid) Bucket(c Cell) []int {
	return g.buckets[c]
}

// Neighbors invokes fn with every particle index found in the 3x3x3 cube of
// cells centered on c, including c itself. Empty neighbor cells are skipped
// without allocation.
func (g *Grid) Neighbors(c Cell, fn func(idx int)) {
	for dx := int32(-1); dx <= 1; dx++ {
		for dy := int32(-1); dy <= 1; dy++ {
			for dz := int32(-1); dz <= 1; dz++ {
				neighbor := Cell{X: c.X + dx, Y: c.Y + dy, Z: c.Z + dz}
				for _, idx := range g.buckets[neighbor] {
					fn(idx)
				}
			}
		}
	}
}
