package constraint

import "github.com/golang/geo/r3"

// SemiPlane is a geometric collaborator: a point P on the plane and its unit
// normal N. Read-only during a step; the scene may mutate it between steps.
type SemiPlane struct {
	P, N r3.Vector
}

// NewSemiPlaneFromTriangle builds a plane through a, b, c with normal
// derived from (b-a) x (c-a).
func NewSemiPlaneFromTriangle(a, b, c r3.Vector) SemiPlane {
	return SemiPlane{P: a, N: safeUnit(b.Sub(a).Cross(c.Sub(a)))}
}

// SemiPlaneRef is a stable handle to a SemiPlane owned by an arena (design
// note: geometric primitives become owned values/handles, not raw pointers).
type SemiPlaneRef struct {
	planes *[]SemiPlane
	index  int
}

func (r SemiPlaneRef) get() SemiPlane { return (*r.planes)[r.index] }

// PlaneArena owns SemiPlane values for a scene.
type PlaneArena struct {
	planes []SemiPlane
}

// NewPlaneArena creates an empty plane arena.
func NewPlaneArena() *PlaneArena { return &PlaneArena{} }

// Add stores a plane and returns a stable reference to it.
func (a *PlaneArena) Add(p SemiPlane) SemiPlaneRef {
	a.planes = append(a.planes, p)
	return SemiPlaneRef{planes: &a.planes, index: len(a.planes) - 1}
}

// Set replaces the geometry of a previously added plane. Must only be
// called between steps.
func (a *PlaneArena) Set(ref SemiPlaneRef, p SemiPlane) {
	a.planes[ref.index] = p
}

// SemiPlaneConstraint keeps a particle on the positive side of a plane, at
// or beyond clearance Dist. Unilateral.
type SemiPlaneConstraint struct {
	particle  [1]int
	alpha     Handle
	plane     SemiPlaneRef
	Dist      float64
	gradCache [1]r3.Vector
}

// NewSemiPlaneConstraint builds a SemiPlaneConstraint for particle i against
// plane, with clearance dist (defaults to 0.05 in the original source).
func NewSemiPlaneConstraint(i int, plane SemiPlaneRef, dist float64, alpha Handle) *SemiPlaneConstraint {
	return &SemiPlaneConstraint{particle: [1]int{i}, alpha: alpha, plane: plane, Dist: dist}
}

func (s *SemiPlaneConstraint) Particles() []int    { return s.particle[:] }
func (s *SemiPlaneConstraint) Compliance() Handle  { return s.alpha }
func (s *SemiPlaneConstraint) Satisfied(c float64) bool { return unilateralSatisfied(c) }

func (s *SemiPlaneConstraint) Eval(x []r3.Vector) float64 {
	pl := s.plane.get()
	return x[s.particle[0]].Sub(pl.P).Dot(pl.N) - s.Dist
}

func (s *SemiPlaneConstraint) Grad(x []r3.Vector) []r3.Vector {
	s.gradCache[0] = s.plane.get().N
	return s.gradCache[:]
}

func (s *SemiPlaneConstraint) NormGrad(x []r3.Vector, w []float64) float64 {
	return w[s.particle[0]]
}
