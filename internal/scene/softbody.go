package scene

import (
	"github.com/golang/geo/r3"

	"github.com/san-kum/xpbd/internal/constraint"
	"github.com/san-kum/xpbd/internal/solver"
)

// SoftBody describes a procedurally generated tetrahedral blob (replacing
// the original source's file-loaded bunny mesh, out of scope per the
// Non-goals) resting on a ground plane under Distance edge constraints and
// per-tetrahedron Volume constraints.
type SoftBody struct {
	Radius float64
}

// SoftBodyScene is a built SoftBody scene.
type SoftBodyScene struct {
	grabState
	desc  SoftBody
	arena *constraint.ComplianceArena
}

func (desc SoftBody) Build() ([]r3.Vector, []constraint.Constraint, *constraint.ComplianceArena) {
	arena := constraint.NewComplianceArena()
	alphaDistance := arena.Add(1e-8)
	alphaVolume := arena.Add(1e-8)
	alphaGround := arena.Add(1e-8)

	radius := desc.Radius
	if radius <= 0 {
		radius = 1.0
	}

	pos, edges, tets := tetraBlob(radius)
	for i := range pos {
		pos[i].Y += radius + 1.5
	}

	var cs []constraint.Constraint
	for i := 0; i+1 < len(edges); i += 2 {
		a, b := edges[i], edges[i+1]
		cs = append(cs, constraint.NewDistance(a, b, pos[a].Sub(pos[b]).Norm(), alphaDistance))
	}
	for i := 0; i+3 < len(tets); i += 4 {
		cs = append(cs, constraint.NewVolume(tets[i], tets[i+1], tets[i+2], tets[i+3], pos, alphaVolume))
	}

	planes := constraint.NewPlaneArena()
	ground := planes.Add(constraint.SemiPlane{P: r3.Vector{Y: -1.5}, N: r3.Vector{Y: 1}})
	for p := range pos {
		cs = append(cs, constraint.NewSemiPlaneConstraint(p, ground, 0, alphaGround))
	}

	return pos, cs, arena
}

// NewSoftBodyScene builds a runnable SoftBody scene.
func NewSoftBodyScene(desc SoftBody) *SoftBodyScene {
	pos, cs, arena := desc.Build()
	s, err := solver.New(pos, cs, arena, 1.0)
	if err != nil {
		panic(err)
	}
	s.NIteration = 20

	return &SoftBodyScene{grabState: grabState{solver: s}, desc: desc, arena: arena}
}

func (c *SoftBodyScene) Step(dt float64)           { step(c.solver, dt, modeFull) }
func (c *SoftBodyScene) Positions() []r3.Vector     { return c.solver.Positions() }
func (c *SoftBodyScene) Grab(o, d r3.Vector) *int   { return c.grab(o, d) }
func (c *SoftBodyScene) MoveGrabbed(o, d r3.Vector) { c.moveGrabbed(o, d) }
func (c *SoftBodyScene) Release()                  { c.release() }
func (c *SoftBodyScene) Reset()                    { *c = *NewSoftBodyScene(c.desc) }
