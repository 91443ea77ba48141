package constraint

import "github.com/golang/geo/r3"

// Bending constrains the dihedral angle of a folding quad (p1,p2,p3,p4) to
// Angle0. Bilateral. q1..q4 are a cache of the closed-form gradient, valid
// only between a Grad call and the following NormGrad call on the same
// predicted positions.
type Bending struct {
	particles [4]int
	alpha     Handle
	Angle0    float64
	q         [4]r3.Vector
}

// NewBending builds a Bending constraint over the shared-edge quad
// (p1,p2,p3,p4) with rest dihedral angle angle0.
func NewBending(p1, p2, p3, p4 int, angle0 float64, alpha Handle) *Bending {
	return &Bending{particles: [4]int{p1, p2, p3, p4}, alpha: alpha, Angle0: angle0}
}

func (b *Bending) Particles() []int    { return b.particles[:] }
func (b *Bending) Compliance() Handle  { return b.alpha }
func (b *Bending) Satisfied(c float64) bool { return bilateralSatisfied(c) }

func (b *Bending) Eval(x []r3.Vector) float64 {
	p1 := x[b.particles[0]]
	p2 := x[b.particles[1]]
	p3 := x[b.particles[2]]
	p4 := x[b.particles[3]]

	n1 := p2.Sub(p1).Cross(p3.Sub(p1))
	n2 := p2.Sub(p1).Cross(p4.Sub(p1))

	d := n1.Dot(n2)
	norms := n1.Norm() * n2.Norm()
	if norms > 1e-8 {
		d /= norms
	}
	d = clamp(d, -1.0, 1.0)

	return acos(d) - b.Angle0
}

func (b *Bending) Grad(x []r3.Vector) []r3.Vector {
	p1 := x[b.particles[0]]
	p2 := x[b.particles[1]].Sub(p1)
	p3 := x[b.particles[2]].Sub(p1)
	p4 := x[b.particles[3]].Sub(p1)

	cross23 := p2.Cross(p3)
	cross24 := p2.Cross(p4)

	n1 := safeUnit(cross23)
	n2 := safeUnit(cross24)

	d := clamp(n1.Dot(n2), -1.0, 1.0)

	if d*d > 1-1e-8 {
		b.q[0], b.q[1], b.q[2], b.q[3] = r3.Vector{}, r3.Vector{}, r3.Vector{}, r3.Vector{}
		return b.q[:]
	}

	len23 := cross23.Norm()
	len24 := cross24.Norm()
	if len23 < 1e-12 || len24 < 1e-12 {
		b.q[0], b.q[1], b.q[2], b.q[3] = r3.Vector{}, r3.Vector{}, r3.Vector{}, r3.Vector{}
		return b.q[:]
	}

	factor := 1.0 / sqrt(1.0-d*d)

	q3 := p2.Cross(n2).Add(n1.Cross(p2).Mul(d)).Mul(factor / len23)
	q4 := p2.Cross(n1).Add(n2.Cross(p2).Mul(d)).Mul(factor / len24)
	q2a := p3.Cross(n2).Add(n1.Cross(p3).Mul(d)).Mul(factor / len23)
	q2b := p4.Cross(n1).Add(n2.Cross(p4).Mul(d)).Mul(factor / len24)
	q2 := q2a.Add(q2b).Mul(-1)
	q1 := q2.Add(q3).Add(q4).Mul(-1)

	b.q[0], b.q[1], b.q[2], b.q[3] = q1, q2, q3, q4
	return b.q[:]
}

func (b *Bending) NormGrad(x []r3.Vector, w []float64) float64 {
	norm2 := 0.0
	for i, idx := range b.particles {
		norm2 += w[idx] * b.q[i].Norm2()
	}
	return norm2
}
