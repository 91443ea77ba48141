package scene

import (
	"github.com/golang/geo/r3"

	"github.com/san-kum/xpbd/internal/constraint"
	"github.com/san-kum/xpbd/internal/solver"
)

// RigidBody describes a cube of 8 corner particles held rigid by shape
// matching, dropped onto a ground plane. Resolution is the cube's half-width;
// Subdiv controls the cosmetic per-face subdivision exposed via
// SurfacePoints, not the physics particle count — see the original's
// RigidMesh::createCube.
type RigidBody struct {
	Resolution float64 // half-width of the cube
	Subdiv     int      // surface subdivision resolution, cosmetic only
}

const rigidBodyHalfWidth = 0.5

// RigidBodyScene is a built RigidBody scene.
type RigidBodyScene struct {
	grabState
	desc    RigidBody
	arena   *constraint.ComplianceArena
	corners []r3.Vector
	subdiv  int
}

func (desc RigidBody) Build() ([]r3.Vector, []constraint.Constraint, *constraint.ComplianceArena) {
	arena := constraint.NewComplianceArena()
	alphaGround := arena.Add(1e-8)

	w := desc.Resolution
	if w <= 0 {
		w = rigidBodyHalfWidth
	}

	pos := cubeGridVertices(w)
	for i := range pos {
		pos[i].Y += 3
	}

	planes := constraint.NewPlaneArena()
	ground := planes.Add(constraint.SemiPlane{P: r3.Vector{Y: -1}, N: r3.Vector{Y: 1}})

	var cs []constraint.Constraint
	for p := range pos {
		cs = append(cs, constraint.NewSemiPlaneConstraint(p, ground, 0, alphaGround))
	}

	return pos, cs, arena
}

// NewRigidBodyScene builds a runnable RigidBody scene.
func NewRigidBodyScene(desc RigidBody) *RigidBodyScene {
	pos, cs, arena := desc.Build()
	s, err := solver.New(pos, cs, arena, 1.0)
	if err != nil {
		panic(err)
	}
	s.NIteration = 10

	indices := make([]int, len(pos))
	for i := range indices {
		indices[i] = i
	}
	s.ActivateRigid(indices)

	subdiv := desc.Subdiv
	if subdiv < 1 {
		subdiv = 4
	}

	return &RigidBodyScene{grabState: grabState{solver: s}, desc: desc, arena: arena, corners: append([]r3.Vector(nil), pos...), subdiv: subdiv}
}

// SurfacePoints returns the cosmetic render-only cube surface grid,
// rigidly transformed along with the 8 physics corners. It recomputes the
// subdivision from the live corner positions each call rather than caching
// a transformed copy, since it is intended for occasional viz sampling, not
// a per-substep hot path.
func (c *RigidBodyScene) SurfacePoints() []r3.Vector {
	return surfacePoints(c.solver.Positions(), c.subdiv)
}

func (c *RigidBodyScene) Step(dt float64)           { step(c.solver, dt, modeSubsteps) }
func (c *RigidBodyScene) Positions() []r3.Vector     { return c.solver.Positions() }
func (c *RigidBodyScene) Grab(o, d r3.Vector) *int   { return c.grab(o, d) }
func (c *RigidBodyScene) MoveGrabbed(o, d r3.Vector) { c.moveGrabbed(o, d) }
func (c *RigidBodyScene) Release()                  { c.release() }
func (c *RigidBodyScene) Reset()                    { *c = *NewRigidBodyScene(c.desc) }
