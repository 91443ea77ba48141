package scene

import (
	"github.com/golang/geo/r3"

	"github.com/san-kum/xpbd/internal/constraint"
	"github.com/san-kum/xpbd/internal/solver"
)

// Cord describes a hanging chain of N particles linked by Distance
// constraints, the first pinned at the origin. Grounded on
// original_source/src/scenes/Cord.hpp.
type Cord struct {
	NParticles int
	Distance   float64
}

// CordScene is a built Cord scene.
type CordScene struct {
	grabState
	desc  Cord
	arena *constraint.ComplianceArena
}

// Build constructs the particle set and permanent constraints described by
// desc, but does not build a runnable scene; use NewCordScene.
func (desc Cord) Build() ([]r3.Vector, []constraint.Constraint, *constraint.ComplianceArena) {
	arena := constraint.NewComplianceArena()
	alpha := arena.Add(1e-8)

	n := desc.NParticles
	if n < 1 {
		n = 1
	}

	pos := make([]r3.Vector, n)
	var cs []constraint.Constraint
	for i := 0; i < n; i++ {
		pos[i] = r3.Vector{X: desc.Distance * float64(i)}
		if i != n-1 {
			cs = append(cs, constraint.NewDistance(i, i+1, desc.Distance, alpha))
		}
	}

	return pos, cs, arena
}

// NewCordScene builds a runnable Cord scene.
func NewCordScene(desc Cord) *CordScene {
	pos, cs, arena := desc.Build()
	s, err := solver.New(pos, cs, arena, 1.0)
	if err != nil {
		panic(err)
	}
	s.NIteration = 20
	s.AddFixedPointAt(0, pos[0])

	return &CordScene{grabState: grabState{solver: s}, desc: desc, arena: arena}
}

func (c *CordScene) Step(dt float64)            { step(c.solver, dt, modeFull) }
func (c *CordScene) Positions() []r3.Vector      { return c.solver.Positions() }
func (c *CordScene) Grab(o, d r3.Vector) *int    { return c.grab(o, d) }
func (c *CordScene) MoveGrabbed(o, d r3.Vector)  { c.moveGrabbed(o, d) }
func (c *CordScene) Release()                   { c.release() }
func (c *CordScene) Reset() {
	*c = *NewCordScene(c.desc)
}
