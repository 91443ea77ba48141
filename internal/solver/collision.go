package solver

import "github.com/san-kum/xpbd/internal/constraint"

// generateCollisionConstraints rebuilds the spatial grid from current
// positions and appends one MinDistance constraint per unordered pair of
// particles sharing a 3x3x3 neighborhood, added at most once (p1 < p2).
func (s *Solver) generateCollisionConstraints() {
	if !s.useGlobalCollision {
		return
	}

	s.grid.Clear()
	for i, p := range s.x {
		s.grid.Insert(p, i)
	}

	seen := make(map[[2]int]struct{})
	for _, cell := range s.grid.Cells() {
		particles := s.grid.Bucket(cell)
		s.grid.Neighbors(cell, func(p2 int) {
			for _, p1 := range particles {
				if p1 >= p2 {
					continue
				}
				key := [2]int{p1, p2}
				if _, ok := seen[key]; ok {
					continue
				}
				seen[key] = struct{}{}
				s.addTransient(constraint.NewMinDistance(p1, p2, s.hCollision, s.alphaCollision))
			}
		})
	}
}

// cleanCollisionConstraints truncates the transient constraint region,
// discarding the contact set generated for the step just finished. Density
// constraints are not transient (see fluid.go) and are unaffected.
func (s *Solver) cleanCollisionConstraints() {
	if !s.useGlobalCollision {
		return
	}
	s.clearTransient()
}
