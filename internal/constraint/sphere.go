package constraint

import "github.com/golang/geo/r3"

// Sphere is a geometric collaborator: a point obstacle center. Read-only
// during a step; the scene may move it between steps.
type Sphere struct {
	Center r3.Vector
}

// SphereRef is a stable handle to a Sphere owned by an arena.
type SphereRef struct {
	spheres *[]Sphere
	index   int
}

func (r SphereRef) get() Sphere { return (*r.spheres)[r.index] }

// SphereArena owns Sphere values for a scene.
type SphereArena struct {
	spheres []Sphere
}

// NewSphereArena creates an empty sphere arena.
func NewSphereArena() *SphereArena { return &SphereArena{} }

// Add stores a sphere center and returns a stable reference to it.
func (a *SphereArena) Add(s Sphere) SphereRef {
	a.spheres = append(a.spheres, s)
	return SphereRef{spheres: &a.spheres, index: len(a.spheres) - 1}
}

// Set relocates a previously added sphere. Must only be called between steps.
func (a *SphereArena) Set(ref SphereRef, s Sphere) {
	a.spheres[ref.index] = s
}

// SphereCollision keeps a particle at least L0 away from a sphere center.
// Unilateral.
type SphereCollision struct {
	particle  [1]int
	alpha     Handle
	center    SphereRef
	L0        float64
	gradCache [1]r3.Vector
}

// NewSphereCollision builds a SphereCollision constraint for particle i
// against a static/obstacle sphere center, rest distance l0.
func NewSphereCollision(i int, center SphereRef, l0 float64, alpha Handle) *SphereCollision {
	return &SphereCollision{particle: [1]int{i}, alpha: alpha, center: center, L0: l0}
}

func (s *SphereCollision) Particles() []int    { return s.particle[:] }
func (s *SphereCollision) Compliance() Handle  { return s.alpha }
func (s *SphereCollision) Satisfied(c float64) bool { return unilateralSatisfied(c) }

func (s *SphereCollision) Eval(x []r3.Vector) float64 {
	return x[s.particle[0]].Sub(s.center.get().Center).Norm() - s.L0
}

func (s *SphereCollision) Grad(x []r3.Vector) []r3.Vector {
	s.gradCache[0] = safeUnit(x[s.particle[0]].Sub(s.center.get().Center))
	return s.gradCache[:]
}

func (s *SphereCollision) NormGrad(x []r3.Vector, w []float64) float64 {
	return w[s.particle[0]]
}

// SphereTriCollision keeps the fixed point at a sphere's center at least L0
// away from the triangle (a, b, c). Unilateral. hitPoint is a cache valid
// only between Grad and the following NormGrad on the same predicted
// positions.
type SphereTriCollision struct {
	particles [3]int
	alpha     Handle
	center    SphereRef
	L0        float64
	hitPoint  r3.Vector
	gradCache [3]r3.Vector
}

// NewSphereTriCollision builds a SphereTriCollision constraint binding
// triangle vertices (a, b, c) against a fixed sphere center.
func NewSphereTriCollision(a, b, c int, center SphereRef, l0 float64, alpha Handle) *SphereTriCollision {
	return &SphereTriCollision{particles: [3]int{a, b, c}, alpha: alpha, center: center, L0: l0}
}

func (s *SphereTriCollision) Particles() []int    { return s.particles[:] }
func (s *SphereTriCollision) Compliance() Handle  { return s.alpha }
func (s *SphereTriCollision) Satisfied(c float64) bool { return unilateralSatisfied(c) }

// closestPointOnTriangle returns the closest point on triangle (pa,pb,pc) to
// p0: the plane projection if it lies inside all three edge half-planes,
// else the nearest point on the violated edge's segment.
func closestPointOnTriangle(pa, pb, pc, p0 r3.Vector) r3.Vector {
	tri := [3]r3.Vector{pa, pb, pc}
	n := safeUnit(pb.Sub(pa).Cross(pc.Sub(pa)))
	proj := p0.Sub(n.Mul(n.Dot(p0.Sub(pa))))

	for i := 0; i < 3; i++ {
		orig := tri[i]
		dest := tri[(i+1)%3]
		inside := dest.Sub(orig).Cross(proj.Sub(orig)).Dot(n) > 0
		if !inside {
			edge := dest.Sub(orig)
			edgeLen2 := edge.Dot(edge)
			t := 0.0
			if edgeLen2 > 1e-12 {
				t = -orig.Sub(p0).Dot(edge) / edgeLen2
			}
			t = clamp(t, 0.0, 1.0)
			return orig.Add(edge.Mul(t))
		}
	}
	return proj
}

func (s *SphereTriCollision) Eval(x []r3.Vector) float64 {
	a, b, c := x[s.particles[0]], x[s.particles[1]], x[s.particles[2]]
	p0 := s.center.get().Center
	s.hitPoint = closestPointOnTriangle(a, b, c, p0)
	return p0.Sub(s.hitPoint).Norm() - s.L0
}

func (s *SphereTriCollision) Grad(x []r3.Vector) []r3.Vector {
	dir := safeUnit(s.hitPoint.Sub(s.center.get().Center))
	s.gradCache[0] = dir
	s.gradCache[1] = dir
	s.gradCache[2] = dir
	return s.gradCache[:]
}

func (s *SphereTriCollision) NormGrad(x []r3.Vector, w []float64) float64 {
	return w[s.particles[0]] + w[s.particles[1]] + w[s.particles[2]]
}
