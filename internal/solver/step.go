package solver

import (
	"math"

	"github.com/golang/geo/r3"

	"github.com/san-kum/xpbd/internal/shapematch"
)

// Update advances the simulation by dt using the full accumulated-lambda
// XPBD iteration: one gravity prediction, NIteration Gauss-Seidel sweeps
// over every constraint (each sweep carrying its own running lambda
// forward), then a single velocity/position commit.
func (s *Solver) Update(dt float64) {
	n := len(s.x)
	nextX := s.nextX

	for i := 0; i < n; i++ {
		if s.w[i] != 0 {
			nextX[i] = s.x[i].Add(s.v[i].Mul(dt)).Add(gravity.Mul(dt * dt))
		} else {
			nextX[i] = s.x[i]
		}
	}

	if s.useRigid {
		s.shapeMatch(nextX)
	}

	s.generateCollisionConstraints()
	s.generateFluidNeighbors()
	lambda := make([]float64, len(s.constraints))

	for iter := 0; iter < s.NIteration; iter++ {
		for j, c := range s.constraints {
			cVal := c.Eval(nextX)
			if c.Satisfied(cVal) {
				continue
			}

			grad := c.Grad(nextX)
			normGrad := c.NormGrad(nextX, s.w)

			alpha := s.arena.Get(c.Compliance()) / (dt * dt)
			dlambda := (-cVal - alpha*lambda[j]) / (normGrad + alpha)
			lambda[j] += dlambda

			for i, idx := range c.Particles() {
				nextX[idx] = nextX[idx].Add(grad[i].Mul(dlambda * s.w[idx]))
			}

			if s.useRigid {
				s.shapeMatch(nextX)
			}
		}
	}

	for i := 0; i < n; i++ {
		s.v[i] = nextX[i].Sub(s.x[i]).Mul(1.0 / dt)
		s.x[i] = nextX[i]
	}

	s.cleanCollisionConstraints()
}

// substepDamping is the original source's fixed Rayleigh damping factor
// beta, applied per substep in UpdateSubsteps.
const substepDamping = 0.05

// UpdateSubsteps advances the simulation by dtFull using NIteration substeps
// of size dtFull/NIteration, each with its own prediction, a single damped
// Gauss-Seidel sweep, friction, and a velocity-clamped commit. Substepping
// with per-substep damping converges faster and more stably than a single
// large step with many outer iterations, at the cost of NIteration full
// constraint sweeps instead of one.
func (s *Solver) UpdateSubsteps(dtFull float64) {
	n := len(s.x)
	nextX := s.nextX
	dt := dtFull / float64(s.NIteration)

	vmax := math.MaxFloat64
	if s.useGlobalCollision {
		vmax = s.hCollision / 4.0 / dt
	}

	s.generateCollisionConstraints()
	s.generateFluidNeighbors()

	for iter := 0; iter < s.NIteration; iter++ {
		for i := 0; i < n; i++ {
			if s.w[i] != 0 {
				nextX[i] = s.x[i].Add(s.v[i].Mul(dt)).Add(gravity.Mul(dt * dt))
			} else {
				nextX[i] = s.x[i]
			}
		}

		for _, c := range s.constraints {
			cVal := c.Eval(nextX)
			if c.Satisfied(cVal) {
				continue
			}

			grad := c.Grad(nextX)
			normGrad := c.NormGrad(nextX, s.w)

			alpha := s.arena.Get(c.Compliance()) / (dt * dt)
			gamma := substepDamping * alpha / dt

			correction := 0.0
			for i, idx := range c.Particles() {
				correction += grad[i].Dot(nextX[idx].Sub(s.x[idx]))
			}

			dlambda := (-cVal - gamma*correction) / ((1.0+gamma)*normGrad + alpha)

			for i, idx := range c.Particles() {
				nextX[idx] = nextX[idx].Add(grad[i].Mul(dlambda * s.w[idx]))
			}
		}

		s.applyFriction(nextX, dt)

		if s.useRigid {
			s.shapeMatch(nextX)
		}

		for i := 0; i < n; i++ {
			v := nextX[i].Sub(s.x[i]).Mul(1.0 / dt)
			if s.useGlobalCollision {
				norm := v.Norm()
				if norm > vmax {
					v = v.Mul(vmax / norm)
					s.x[i] = s.x[i].Add(v.Mul(dt))
				} else {
					s.x[i] = nextX[i]
				}
			} else {
				s.x[i] = nextX[i]
			}
			s.v[i] = v
		}
	}

	s.cleanCollisionConstraints()
}

// shapeMatch replaces the rigid-body subset of candidate with its best
// rigid match to the reference rest pose, in place.
func (s *Solver) shapeMatch(candidate []r3.Vector) {
	pts := make([]r3.Vector, len(s.rigidIdx))
	for i, idx := range s.rigidIdx {
		pts[i] = candidate[idx]
	}
	shapematch.Match(s.rigidRef, pts)
	for i, idx := range s.rigidIdx {
		candidate[idx] = pts[i]
	}
}
