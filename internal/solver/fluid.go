package solver

import (
	"github.com/san-kum/xpbd/internal/constraint"
	"github.com/san-kum/xpbd/internal/spatialhash"
)

// ActivateFluidsOn is the generalized form of ActivateFluids: it restricts
// SPH density constraints to the given particle subset instead of every
// particle in the scene, mirroring the original source's assumption that
// fluid particles occupy a contiguous index range while remaining correct
// for an arbitrary subset.
func (s *Solver) ActivateFluidsOn(indices []int, params constraint.FluidParams, alpha float64) {
	s.useFluids = true
	s.fluidParams = params
	s.alphaFluid = s.arena.Add(alpha)
	s.fluidGrid = spatialhash.New(params.H)
	s.fluidIndices = append([]int(nil), indices...)

	s.densityConstraints = make([]*constraint.Density, len(indices))
	for i, idx := range indices {
		d := constraint.NewDensity(idx, params, s.alphaFluid)
		s.densityConstraints[i] = d
		s.AddConstraint(d)
	}
}

// generateFluidNeighbors rebuilds the fluid spatial grid and rewrites every
// Density constraint's neighbor list to the particles sharing its 3x3x3
// neighborhood (self included, duplicates excluded).
func (s *Solver) generateFluidNeighbors() {
	if !s.useFluids {
		return
	}

	s.fluidGrid.Clear()
	for _, idx := range s.fluidIndices {
		s.fluidGrid.Insert(s.x[idx], idx)
	}

	for _, d := range s.densityConstraints {
		p0 := d.P0
		cell := s.fluidGrid.CellOf(s.x[p0])
		neighbors := []int{p0}
		s.fluidGrid.Neighbors(cell, func(p2 int) {
			if p2 == p0 {
				return
			}
			neighbors = append(neighbors, p2)
		})
		d.SetNeighbors(neighbors)
	}
}
