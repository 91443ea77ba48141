// Package solver implements the XPBD constraint-projection core: it owns
// particle state, predicts under gravity, drives transient collision/fluid
// constraint generation, runs the Gauss-Seidel iteration loop (with either
// full accumulated-lambda iteration or Rayleigh-damped substepping), applies
// friction, and writes velocities back.
package solver

import (
	"errors"
	"fmt"

	"github.com/golang/geo/r3"

	"github.com/san-kum/xpbd/internal/constraint"
	"github.com/san-kum/xpbd/internal/shapematch"
	"github.com/san-kum/xpbd/internal/spatialhash"
)

// ErrInvalidConfig is wrapped by solver construction errors.
var ErrInvalidConfig = errors.New("solver: invalid configuration")

// gravity is the constant acceleration applied to every unpinned particle
// during prediction.
var gravity = r3.Vector{X: 0, Y: -9.81, Z: 0}

// Solver owns the mutable particle state (x, v, w) and the full constraint
// list (permanent prefix + transient suffix). It is the sole writer of
// particle state: from the start to the end of an Update/UpdateSubsteps call
// no other logical actor may observe it mid-step.
type Solver struct {
	// NIteration is the outer Gauss-Seidel iteration count for Update, and
	// the substep count for UpdateSubsteps.
	NIteration int

	x []r3.Vector
	v []r3.Vector
	w []float64

	defaultMass float64

	constraints []constraint.Constraint
	nPermanent  int

	arena *constraint.ComplianceArena

	useGlobalCollision bool
	hCollision         float64
	alphaCollision     constraint.Handle

	useFluids          bool
	fluidParams        constraint.FluidParams
	alphaFluid         constraint.Handle
	fluidIndices       []int
	densityConstraints []*constraint.Density

	useRigid bool
	rigidRef *shapematch.Reference
	rigidIdx []int

	grid      *spatialhash.Grid
	fluidGrid *spatialhash.Grid

	// scratch buffers reused across steps to avoid per-frame allocation.
	nextX []r3.Vector
}

// New constructs a Solver over the given initial positions and permanent
// constraint list. defaultMass seeds every particle's inverse mass
// (w = 1/defaultMass); defaultMass must be positive.
func New(initial []r3.Vector, permanent []constraint.Constraint, arena *constraint.ComplianceArena, defaultMass float64) (*Solver, error) {
	if len(initial) == 0 {
		return nil, fmt.Errorf("solver: empty particle set: %w", ErrInvalidConfig)
	}
	if defaultMass <= 0 {
		return nil, fmt.Errorf("solver: non-positive default mass %g: %w", defaultMass, ErrInvalidConfig)
	}

	x := append([]r3.Vector(nil), initial...)
	v := make([]r3.Vector, len(initial))
	w := make([]float64, len(initial))
	invMass := 1.0 / defaultMass
	for i := range w {
		w[i] = invMass
	}

	cs := append([]constraint.Constraint(nil), permanent...)

	return &Solver{
		NIteration:  20,
		x:           x,
		v:           v,
		w:           w,
		defaultMass: defaultMass,
		constraints: cs,
		nPermanent:  len(cs),
		arena:       arena,
		nextX:       make([]r3.Vector, len(initial)),
	}, nil
}

// Positions returns the live particle position slice. Callers must not
// retain it across a subsequent Update/UpdateSubsteps call.
func (s *Solver) Positions() []r3.Vector { return s.x }

// Velocities returns the live particle velocity slice.
func (s *Solver) Velocities() []r3.Vector { return s.v }

// NumParticles returns the particle count.
func (s *Solver) NumParticles() int { return len(s.x) }

// InverseMass returns the current inverse mass of particle i (0 if pinned).
func (s *Solver) InverseMass(i int) float64 { return s.w[i] }

// AddConstraint appends a permanent constraint, present for the lifetime of
// the solver. Must be called before the first Update/UpdateSubsteps call on
// a given topology; permanent constraints are never truncated.
func (s *Solver) AddConstraint(c constraint.Constraint) {
	s.constraints = append(s.constraints, c)
	s.nPermanent++
}

// addTransient appends a constraint to the transient region (after
// nPermanent), valid for the current step only.
func (s *Solver) addTransient(c constraint.Constraint) {
	s.constraints = append(s.constraints, c)
}

// clearTransient truncates the constraint list back to the permanent
// prefix, reusing the underlying array (amortized, no reallocation).
func (s *Solver) clearTransient() {
	s.constraints = s.constraints[:s.nPermanent]
}

// AddFixedPoint pins particle i at its current position (w=0).
func (s *Solver) AddFixedPoint(i int) {
	s.w[i] = 0
	s.v[i] = r3.Vector{}
}

// AddFixedPointAt pins particle i and moves it to pos immediately.
func (s *Solver) AddFixedPointAt(i int, pos r3.Vector) {
	s.x[i] = pos
	s.AddFixedPoint(i)
}

// RemoveFixedPoint restores particle i's inverse mass to the solver's
// default, making it dynamic again. If the particle previously carried a
// non-default mass, that value is not recoverable: this mirrors the
// original source's own simplification (see SPEC_FULL.md §4.4).
func (s *Solver) RemoveFixedPoint(i int) {
	s.w[i] = 1.0 / s.defaultMass
}

// SetPos teleports particle i to pos without touching its velocity or pin
// state; used for grab-drag interaction.
func (s *Solver) SetPos(i int, pos r3.Vector) {
	s.x[i] = pos
}

// SetPosAndPin teleports particle i to pos and pins it in the same call.
func (s *Solver) SetPosAndPin(i int, pos r3.Vector) {
	s.AddFixedPointAt(i, pos)
}

// ActivateGlobalCollision enables broad-phase particle-particle collision
// resolution with the given interaction radius h and compliance alpha.
func (s *Solver) ActivateGlobalCollision(h float64, alpha float64) {
	s.useGlobalCollision = true
	s.hCollision = h
	s.alphaCollision = s.arena.Add(alpha)
	s.grid = spatialhash.New(h)
}

// SetGlobalCollision updates the collision radius of an already-active
// global collision pass.
func (s *Solver) SetGlobalCollision(h float64) {
	s.hCollision = h
	if s.grid != nil {
		s.grid = spatialhash.New(h)
	}
}

// DeactivateGlobalCollision turns off broad-phase collision generation.
func (s *Solver) DeactivateGlobalCollision() {
	s.useGlobalCollision = false
	s.grid = nil
}

// ActivateFluids enables SPH density-constraint generation over every
// particle in the scene, mirroring the original source's whole-scene
// assumption. Use ActivateFluidsOn to restrict it to a subset.
func (s *Solver) ActivateFluids(params constraint.FluidParams, alpha float64) {
	all := make([]int, len(s.x))
	for i := range all {
		all[i] = i
	}
	s.ActivateFluidsOn(all, params, alpha)
}

// DeactivateFluids turns off SPH density-constraint generation and removes
// its Density constraints from the permanent list. Must be called between
// steps, when the transient region is empty.
func (s *Solver) DeactivateFluids() {
	if !s.useFluids {
		return
	}
	kept := make([]constraint.Constraint, 0, s.nPermanent)
	for _, c := range s.constraints[:s.nPermanent] {
		if _, isDensity := c.(*constraint.Density); isDensity {
			continue
		}
		kept = append(kept, c)
	}
	s.constraints = kept
	s.nPermanent = len(kept)
	s.useFluids = false
	s.fluidGrid = nil
	s.fluidIndices = nil
	s.densityConstraints = nil
}

// ActivateRigid enables rigid shape-matching over the given particle
// indices, using their current positions as the rest pose.
func (s *Solver) ActivateRigid(indices []int) {
	pts := make([]r3.Vector, len(indices))
	for i, idx := range indices {
		pts[i] = s.x[idx]
	}
	s.rigidRef = shapematch.NewReference(pts)
	s.rigidIdx = append([]int(nil), indices...)
	s.useRigid = true
}

// DeactivateRigid turns off rigid shape-matching.
func (s *Solver) DeactivateRigid() {
	s.useRigid = false
	s.rigidRef = nil
	s.rigidIdx = nil
}
