package constraint

import "github.com/golang/geo/r3"

// Position pins a particle to a fixed target point X0. Bilateral.
type Position struct {
	particle  [1]int
	alpha     Handle
	X0        r3.Vector
	gradCache [1]r3.Vector
}

// NewPosition builds a Position constraint anchoring particle i at x0.
func NewPosition(i int, x0 r3.Vector, alpha Handle) *Position {
	return &Position{particle: [1]int{i}, alpha: alpha, X0: x0}
}

func (p *Position) Particles() []int    { return p.particle[:] }
func (p *Position) Compliance() Handle  { return p.alpha }
func (p *Position) Satisfied(c float64) bool { return bilateralSatisfied(c) }

func (p *Position) Eval(x []r3.Vector) float64 {
	return x[p.particle[0]].Sub(p.X0).Norm()
}

func (p *Position) Grad(x []r3.Vector) []r3.Vector {
	p.gradCache[0] = safeUnit(x[p.particle[0]].Sub(p.X0))
	return p.gradCache[:]
}

func (p *Position) NormGrad(x []r3.Vector, w []float64) float64 {
	return w[p.particle[0]]
}
