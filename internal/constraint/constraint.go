// Package constraint implements the XPBD constraint library: a tagged-variant
// family of bilateral/unilateral constraints over particle positions.
//
// Every kind implements Constraint. The solver drives the contract in a fixed
// order per constraint per iteration: Eval, then (if not Satisfied) Grad, then
// NormGrad. Kinds that cache intermediate values (Bending's qN vectors,
// Volume/MeshVolume's per-vertex gradients, SphereTri's hit point)
// document the cache as valid only between a Grad call and the NormGrad call
// that follows it on the same predicted-position slice — the solver's call
// order preserves this.
package constraint

import "github.com/golang/geo/r3"

// Constraint is the shared contract every concrete constraint kind satisfies.
type Constraint interface {
	// Particles returns the ordered particle indices this constraint binds.
	Particles() []int
	// Compliance is the handle to this constraint's externally owned alpha.
	Compliance() Handle
	// Eval evaluates the scalar constraint function C(x) at the given positions.
	Eval(x []r3.Vector) float64
	// Grad returns dC/dx_p for each particle in Particles(), same order.
	Grad(x []r3.Vector) []r3.Vector
	// NormGrad returns sum_p w_p * |dC/dx_p|^2, using the cache Grad populated.
	NormGrad(x []r3.Vector, w []float64) float64
	// Satisfied reports whether the constraint residual C needs no correction.
	Satisfied(c float64) bool
}

// bilateralSatisfied is the shared predicate for equality constraints.
func bilateralSatisfied(c float64) bool {
	return abs(c) < 1e-3
}

// unilateralSatisfied is the shared predicate for inequality (>= 0) constraints.
func unilateralSatisfied(c float64) bool {
	return c >= 0
}

// densitySatisfied is the shared predicate for density (<= 0) constraints.
func densitySatisfied(c float64) bool {
	return c <= 0
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// safeUnit normalizes v, returning the zero vector when v is too short to
// carry a meaningful direction instead of propagating NaN.
func safeUnit(v r3.Vector) r3.Vector {
	n := v.Norm()
	if n < 1e-12 {
		return r3.Vector{}
	}
	return v.Mul(1.0 / n)
}
