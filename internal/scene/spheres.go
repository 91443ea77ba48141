package scene

import (
	"github.com/golang/geo/r3"

	"github.com/san-kum/xpbd/internal/constraint"
	"github.com/san-kum/xpbd/internal/solver"
)

// Spheres describes a cube-packed cluster of Count free particles of
// Radius, colliding with each other and a ground plane via the solver's
// global collision pass — a scene the distilled spec names but the
// surviving original_source/ headers don't cover in detail, so its layout
// follows the same cube-grid spawn pattern RigidBody uses.
type Spheres struct {
	Count  int
	Radius float64
}

// SpheresScene is a built Spheres scene.
type SpheresScene struct {
	grabState
	desc  Spheres
	arena *constraint.ComplianceArena
}

func (desc Spheres) Build() ([]r3.Vector, []constraint.Constraint, *constraint.ComplianceArena, constraint.SemiPlaneRef, *constraint.PlaneArena) {
	arena := constraint.NewComplianceArena()
	alphaGround := arena.Add(1e-8)

	n := desc.Count
	if n < 1 {
		n = 1
	}
	spacing := desc.Radius * 2.2

	perRow := 1
	for perRow*perRow*perRow < n {
		perRow++
	}

	pos := make([]r3.Vector, n)
	i := 0
	for y := 0; y < perRow && i < n; y++ {
		for z := 0; z < perRow && i < n; z++ {
			for x := 0; x < perRow && i < n; x++ {
				pos[i] = r3.Vector{
					X: spacing * (float64(x) - float64(perRow-1)/2),
					Y: spacing*float64(y) + 2,
					Z: spacing * (float64(z) - float64(perRow-1)/2),
				}
				i++
			}
		}
	}

	planes := constraint.NewPlaneArena()
	ground := planes.Add(constraint.SemiPlane{P: r3.Vector{Y: -1}, N: r3.Vector{Y: 1}})

	var cs []constraint.Constraint
	for p := 0; p < n; p++ {
		cs = append(cs, constraint.NewSemiPlaneConstraint(p, ground, desc.Radius, alphaGround))
	}

	return pos, cs, arena, ground, planes
}

// NewSpheresScene builds a runnable Spheres scene.
func NewSpheresScene(desc Spheres) *SpheresScene {
	pos, cs, arena, _, _ := desc.Build()
	s, err := solver.New(pos, cs, arena, 1.0)
	if err != nil {
		panic(err)
	}
	s.NIteration = 8
	s.ActivateGlobalCollision(desc.Radius*2, 1e-8)

	return &SpheresScene{grabState: grabState{solver: s}, desc: desc, arena: arena}
}

func (c *SpheresScene) Step(dt float64)           { step(c.solver, dt, modeSubsteps) }
func (c *SpheresScene) Positions() []r3.Vector     { return c.solver.Positions() }
func (c *SpheresScene) Grab(o, d r3.Vector) *int   { return c.grab(o, d) }
func (c *SpheresScene) MoveGrabbed(o, d r3.Vector) { c.moveGrabbed(o, d) }
func (c *SpheresScene) Release()                  { c.release() }
func (c *SpheresScene) Reset()                    { *c = *NewSpheresScene(c.desc) }
