package constraint

import (
	"math"

	"github.com/golang/geo/r3"
)

// FluidParams holds the SPH kernel parameters a Density constraint needs.
// Passed explicitly at construction — the original source's static class
// members (d0, h, m) become ordinary configuration here, never hidden
// package state (design note).
type FluidParams struct {
	Rho0 float64 // rest density d0
	H    float64 // kernel support radius
	Mass float64 // per-particle mass m
}

// Density is an SPH density constraint: the smoothed density at particle P0
// (from its current neighbor set) must not exceed Rho0. Unilateral (C <= 0).
// Particles() is {P0} union neighbors and is rewritten every step by the
// solver's fluid-neighbor generation pass (see internal/solver). gradCache
// is valid only between Grad and the following NormGrad call.
type Density struct {
	alpha     Handle
	Params    FluidParams
	P0        int
	neighbors []int
	gradCache []r3.Vector
}

// NewDensity builds a Density constraint anchored at particle p0. Its
// neighbor list starts as just {p0} and is rewritten by the solver each step.
func NewDensity(p0 int, params FluidParams, alpha Handle) *Density {
	return &Density{alpha: alpha, Params: params, P0: p0, neighbors: []int{p0}}
}

// SetNeighbors replaces the neighbor list (first entry must be P0 itself).
// Called once per step by the solver's fluid-neighbor generation pass.
func (d *Density) SetNeighbors(all []int) {
	d.neighbors = all
}

func (d *Density) Particles() []int    { return d.neighbors }
func (d *Density) Compliance() Handle  { return d.alpha }
func (d *Density) Satisfied(c float64) bool { return densitySatisfied(c) }

func poly6(p1, p2 r3.Vector, h float64) float64 {
	r := p1.Sub(p2).Norm()
	if r > h {
		return 0
	}
	h2 := h * h
	r2 := r * r
	return 315.0 / (64.0 * math.Pi * math.Pow(h, 9)) * math.Pow(h2-r2, 3)
}

func spikyGrad(p1, p2 r3.Vector, h float64) r3.Vector {
	diff := p1.Sub(p2)
	r := diff.Norm()
	if r > h || r < 1e-12 {
		return r3.Vector{}
	}
	mag := -45.0 / (math.Pi * math.Pow(h, 6)) * (h - r) * (h - r)
	return diff.Mul(mag / r)
}

func (d *Density) Eval(x []r3.Vector) float64 {
	sum := 0.0
	p0 := x[d.P0]
	for _, j := range d.neighbors {
		sum += d.Params.Mass * poly6(p0, x[j], d.Params.H)
	}
	return sum - d.Params.Rho0
}

func (d *Density) Grad(x []r3.Vector) []r3.Vector {
	if len(d.gradCache) != len(d.neighbors) {
		d.gradCache = make([]r3.Vector, len(d.neighbors))
	}

	p0 := x[d.P0]
	d.gradCache[0] = r3.Vector{}
	for i := 1; i < len(d.neighbors); i++ {
		g := spikyGrad(p0, x[d.neighbors[i]], d.Params.H).Mul(-d.Params.Mass)
		d.gradCache[i] = g
		d.gradCache[0] = d.gradCache[0].Sub(g)
	}
	return d.gradCache
}

func (d *Density) NormGrad(x []r3.Vector, w []float64) float64 {
	norm2 := 0.0
	for i, idx := range d.neighbors {
		norm2 += w[idx] * d.gradCache[i].Norm2()
	}
	return norm2
}
