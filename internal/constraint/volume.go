package constraint

import "github.com/golang/geo/r3"

// Volume constrains a tetrahedron (p1,p2,p3,p4)'s signed volume to its
// initial value. Bilateral. gradCache is valid only between Grad and the
// following NormGrad call on the same predicted positions.
type Volume struct {
	particles     [4]int
	alpha         Handle
	InitialVolume float64
	gradCache     [4]r3.Vector
}

// NewVolume builds a Volume constraint over tetrahedron (p1,p2,p3,p4),
// capturing its rest volume from x.
func NewVolume(p1, p2, p3, p4 int, x []r3.Vector, alpha Handle) *Volume {
	v := &Volume{particles: [4]int{p1, p2, p3, p4}, alpha: alpha}
	v.InitialVolume = tetVolume(x[p1], x[p2], x[p3], x[p4])
	return v
}

func tetVolume(p1, p2, p3, p4 r3.Vector) float64 {
	return p2.Sub(p1).Cross(p3.Sub(p1)).Dot(p4.Sub(p1))
}

func (v *Volume) Particles() []int    { return v.particles[:] }
func (v *Volume) Compliance() Handle  { return v.alpha }
func (v *Volume) Satisfied(c float64) bool { return bilateralSatisfied(c) }

func (v *Volume) Eval(x []r3.Vector) float64 {
	p1, p2, p3, p4 := x[v.particles[0]], x[v.particles[1]], x[v.particles[2]], x[v.particles[3]]
	return tetVolume(p1, p2, p3, p4) - v.InitialVolume
}

func (v *Volume) Grad(x []r3.Vector) []r3.Vector {
	p1, p2, p3, p4 := x[v.particles[0]], x[v.particles[1]], x[v.particles[2]], x[v.particles[3]]

	e1 := p2.Sub(p1)
	e2 := p3.Sub(p1)
	e3 := p4.Sub(p1)

	v.gradCache[0] = p4.Sub(p2).Cross(p3.Sub(p2))
	v.gradCache[1] = e2.Cross(e3)
	v.gradCache[2] = e3.Cross(e1)
	v.gradCache[3] = e1.Cross(e2)

	return v.gradCache[:]
}

func (v *Volume) NormGrad(x []r3.Vector, w []float64) float64 {
	norm2 := 0.0
	for i, idx := range v.particles {
		norm2 += w[idx] * v.gradCache[i].Norm2()
	}
	return norm2
}
