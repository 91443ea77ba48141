package constraint

import "github.com/golang/geo/r3"

// Distance fixes the distance between two particles to L0. Bilateral.
type Distance struct {
	particles  [2]int
	alpha      Handle
	L0         float64
	gradCache  [2]r3.Vector
}

// NewDistance builds a Distance constraint between particles i and j.
func NewDistance(i, j int, l0 float64, alpha Handle) *Distance {
	return &Distance{particles: [2]int{i, j}, alpha: alpha, L0: l0}
}

func (d *Distance) Particles() []int    { return d.particles[:] }
func (d *Distance) Compliance() Handle  { return d.alpha }
func (d *Distance) Satisfied(c float64) bool { return bilateralSatisfied(c) }

func (d *Distance) Eval(x []r3.Vector) float64 {
	return x[d.particles[0]].Sub(x[d.particles[1]]).Norm() - d.L0
}

func (d *Distance) Grad(x []r3.Vector) []r3.Vector {
	diff := x[d.particles[0]].Sub(x[d.particles[1]])
	u := safeUnit(diff)
	d.gradCache[0] = u
	d.gradCache[1] = u.Mul(-1)
	return d.gradCache[:]
}

func (d *Distance) NormGrad(x []r3.Vector, w []float64) float64 {
	return w[d.particles[0]] + w[d.particles[1]]
}

// MinDistance keeps two particles at least L0 apart. Unilateral, used both
// for explicit scene constraints and for transient collision pairs generated
// by the spatial index each step.
type MinDistance struct {
	particles [2]int
	alpha     Handle
	L0        float64
	gradCache [2]r3.Vector
}

// NewMinDistance builds a MinDistance constraint between particles i and j.
func NewMinDistance(i, j int, l0 float64, alpha Handle) *MinDistance {
	return &MinDistance{particles: [2]int{i, j}, alpha: alpha, L0: l0}
}

func (m *MinDistance) Particles() []int    { return m.particles[:] }
func (m *MinDistance) Compliance() Handle  { return m.alpha }
func (m *MinDistance) Satisfied(c float64) bool { return unilateralSatisfied(c) }

func (m *MinDistance) Eval(x []r3.Vector) float64 {
	return x[m.particles[0]].Sub(x[m.particles[1]]).Norm() - m.L0
}

func (m *MinDistance) Grad(x []r3.Vector) []r3.Vector {
	diff := x[m.particles[0]].Sub(x[m.particles[1]])
	u := safeUnit(diff)
	m.gradCache[0] = u
	m.gradCache[1] = u.Mul(-1)
	return m.gradCache[:]
}

func (m *MinDistance) NormGrad(x []r3.Vector, w []float64) float64 {
	return w[m.particles[0]] + w[m.particles[1]]
}
