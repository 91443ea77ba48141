package scene

import (
	"github.com/golang/geo/r3"

	"github.com/san-kum/xpbd/internal/constraint"
	"github.com/san-kum/xpbd/internal/solver"
)

// SoftBall describes a closed icosahedral shell inflated to Pressure times
// its rest volume via a single MeshVolume constraint, plus Distance edge
// constraints for surface stiffness and a ground plane. MeshIndex names
// which MeshVolume this scene's live pressure control targets (always 0:
// a single-mesh scene, the field exists so the scene's shape matches the
// original's per-mesh pressure slider addressing multiple meshes).
type SoftBall struct {
	Pressure  float64
	MeshIndex int
}

// SoftBallScene is a built SoftBall scene.
type SoftBallScene struct {
	grabState
	desc     SoftBall
	arena    *constraint.ComplianceArena
	pressure *float64
}

func (desc SoftBall) Build() ([]r3.Vector, []constraint.Constraint, *constraint.ComplianceArena, *float64) {
	arena := constraint.NewComplianceArena()
	alphaDistance := arena.Add(1e-8)
	alphaVolume := arena.Add(1e-8)
	alphaGround := arena.Add(1e-8)

	pos := icospherePoints(1.0)
	for i := range pos {
		pos[i].Y += 2.5
	}
	faces := icosahedronFaces()

	var cs []constraint.Constraint
	seen := make(map[[2]int]bool)
	addEdge := func(a, b int) {
		key := [2]int{a, b}
		if a > b {
			key = [2]int{b, a}
		}
		if seen[key] {
			return
		}
		seen[key] = true
		cs = append(cs, constraint.NewDistance(a, b, pos[a].Sub(pos[b]).Norm(), alphaDistance))
	}
	var triangles []int
	for _, f := range faces {
		addEdge(f[0], f[1])
		addEdge(f[1], f[2])
		addEdge(f[0], f[2])
		triangles = append(triangles, f[0], f[1], f[2])
	}

	pressure := new(float64)
	*pressure = desc.Pressure
	if *pressure <= 0 {
		*pressure = 1.0
	}

	cs = append(cs, constraint.NewMeshVolume(0, triangles, pos, len(pos), pressure, alphaVolume))

	planes := constraint.NewPlaneArena()
	ground := planes.Add(constraint.SemiPlane{P: r3.Vector{Y: -0.5}, N: r3.Vector{Y: 1}})
	for p := range pos {
		cs = append(cs, constraint.NewSemiPlaneConstraint(p, ground, 0, alphaGround))
	}

	return pos, cs, arena, pressure
}

// NewSoftBallScene builds a runnable SoftBall scene.
func NewSoftBallScene(desc SoftBall) *SoftBallScene {
	pos, cs, arena, pressure := desc.Build()
	s, err := solver.New(pos, cs, arena, 1.0)
	if err != nil {
		panic(err)
	}
	s.NIteration = 20

	return &SoftBallScene{grabState: grabState{solver: s}, desc: desc, arena: arena, pressure: pressure}
}

// SetPressure retunes the inflation target live, between steps — the
// original's UI slider over MeshVolumeConstraint's pressure field.
func (c *SoftBallScene) SetPressure(k float64) {
	*c.pressure = k
	c.desc.Pressure = k
}

func (c *SoftBallScene) Step(dt float64)           { step(c.solver, dt, modeFull) }
func (c *SoftBallScene) Positions() []r3.Vector     { return c.solver.Positions() }
func (c *SoftBallScene) Grab(o, d r3.Vector) *int   { return c.grab(o, d) }
func (c *SoftBallScene) MoveGrabbed(o, d r3.Vector) { c.moveGrabbed(o, d) }
func (c *SoftBallScene) Release()                  { c.release() }
func (c *SoftBallScene) Reset()                    { *c = *NewSoftBallScene(c.desc) }
