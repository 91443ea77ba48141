package scene

import (
	"github.com/golang/geo/r3"

	"github.com/san-kum/xpbd/internal/constraint"
	"github.com/san-kum/xpbd/internal/solver"
)

// Cloth describes a W*H particle grid with structural/shear/bending
// Distance constraints over a ground SemiPlane, optionally with
// self-collision. Grounded on original_source/src/scenes/Cloth.hpp.
type Cloth struct {
	W, H          int
	Distance      float64
	Bending       bool
	SelfCollision bool
	SpawnVertical bool
}

// ClothScene is a built Cloth scene.
type ClothScene struct {
	grabState
	desc  Cloth
	arena *constraint.ComplianceArena
}

func (desc Cloth) Build() ([]r3.Vector, []constraint.Constraint, *constraint.ComplianceArena, *constraint.PlaneArena, constraint.SemiPlaneRef) {
	arena := constraint.NewComplianceArena()
	alphaStruct := arena.Add(1e-8)
	alphaShear := alphaStruct
	alphaBend := arena.Add(1e-8)
	alphaPlane := arena.Add(1e-8)

	w, h := desc.W, desc.H
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}

	planes := constraint.NewPlaneArena()
	ground := planes.Add(constraint.SemiPlane{P: r3.Vector{Y: -1.5}, N: r3.Vector{Y: 1}})

	pos := make([]r3.Vector, w*h)
	var cs []constraint.Constraint

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := y*w + x
			if !desc.SpawnVertical {
				pos[i] = r3.Vector{
					X: desc.Distance*float64(x) - desc.Distance*float64(w-1)/2,
					Y: desc.Distance * float64(h) / 2,
					Z: desc.Distance * float64(y),
				}
			} else {
				jitter := float64((x*x+3*y)%10+0) / 10000.0
				pos[i] = r3.Vector{
					X: desc.Distance*float64(x) - desc.Distance*float64(w-1)/2,
					Y: desc.Distance * float64(h-y),
					Z: jitter,
				}
			}
			cs = append(cs, constraint.NewSemiPlaneConstraint(i, ground, 0.01, alphaPlane))
		}
	}

	add := func(c constraint.Constraint) { cs = append(cs, c) }
	buildDistanceGrid(w, h, desc.Distance, false, alphaStruct, alphaShear, alphaBend, desc.Bending, add)

	return pos, cs, arena, planes, ground
}

// NewClothScene builds a runnable Cloth scene.
func NewClothScene(desc Cloth) *ClothScene {
	pos, cs, arena, _, _ := desc.Build()
	s, err := solver.New(pos, cs, arena, 1.0)
	if err != nil {
		panic(err)
	}
	s.NIteration = 15

	if !desc.SpawnVertical {
		s.AddFixedPointAt(0, pos[0])
		s.AddFixedPointAt(desc.W-1, pos[desc.W-1])
	}

	if desc.SelfCollision {
		s.ActivateGlobalCollision(desc.Distance, 1e-8)
	}

	return &ClothScene{grabState: grabState{solver: s}, desc: desc, arena: arena}
}

func (c *ClothScene) Step(dt float64)           { step(c.solver, dt, modeFull) }
func (c *ClothScene) Positions() []r3.Vector     { return c.solver.Positions() }
func (c *ClothScene) Grab(o, d r3.Vector) *int   { return c.grab(o, d) }
func (c *ClothScene) MoveGrabbed(o, d r3.Vector) { c.moveGrabbed(o, d) }
func (c *ClothScene) Release()                  { c.release() }
func (c *ClothScene) Reset()                    { *c = *NewClothScene(c.desc) }
