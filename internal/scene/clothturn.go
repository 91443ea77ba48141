package scene

import (
	"math"

	"github.com/golang/geo/r3"

	"github.com/san-kum/xpbd/internal/constraint"
	"github.com/san-kum/xpbd/internal/solver"
)

// ClothTurn describes a cloth strip wrapped around two counter-rotating
// cylinders, a distinct scene from ClothDrop per the original source's
// dedicated ClothTurn.hpp.
type ClothTurn struct {
	W                int
	CylinderSpacing  float64
	CylinderAngleDeg float64
}

const clothTurnHeight = 64
const clothTurnRadius = 0.1

// ClothTurnScene is a built ClothTurn scene.
type ClothTurnScene struct {
	grabState
	desc      ClothTurn
	arena     *constraint.ComplianceArena
	cylinders *constraint.CylinderArena
	cyl1      constraint.CylinderRef
	cyl2      constraint.CylinderRef
}

func (desc ClothTurn) Build() ([]r3.Vector, []constraint.Constraint, *constraint.ComplianceArena, *constraint.CylinderArena, constraint.CylinderRef, constraint.CylinderRef) {
	arena := constraint.NewComplianceArena()
	alphaStruct := arena.Add(1e-8)
	alphaCollision := arena.Add(1e-8)

	w := desc.W
	if w < 1 {
		w = 1
	}
	h := clothTurnHeight

	cylinders := constraint.NewCylinderArena()
	theta := desc.CylinderAngleDeg * math.Pi / 180
	cyl1 := cylinders.Add(constraint.Cylinder{
		Dir: r3.Vector{X: math.Cos(theta), Z: -math.Sin(theta)},
		P:   r3.Vector{Y: desc.CylinderSpacing / 2},
		R:   clothTurnRadius + 0.02,
	})
	cyl2 := cylinders.Add(constraint.Cylinder{
		Dir: r3.Vector{X: math.Cos(theta), Z: math.Sin(theta)},
		P:   r3.Vector{Y: -desc.CylinderSpacing / 2},
		R:   clothTurnRadius + 0.02,
	})

	distance := 4.0 / float64(h-1) * (math.Pi / 2)

	pos := make([]r3.Vector, w*h)
	var cs []constraint.Constraint

	idx := func(x, y int) int { return y*w + x }
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			angle := 2 * float64(y) * math.Pi / float64(h)
			pos[idx(x, y)] = r3.Vector{
				X: distance*float64(x) - distance*float64(w-1)/2,
				Y: math.Cos(angle),
				Z: math.Sin(angle),
			}

			cs = append(cs, constraint.NewDistance(idx(x, y), idx(x, (y+1)%h), distance, alphaStruct))
			if x != w-1 {
				cs = append(cs, constraint.NewDistance(idx(x, y), idx(x+1, y), distance, alphaStruct))
				diag := distance * math.Sqrt2
				cs = append(cs, constraint.NewDistance(idx(x, y), idx(x+1, (y+1)%h), diag, alphaStruct))
				cs = append(cs, constraint.NewDistance(idx(x, (y+1)%h), idx(x+1, y), diag, alphaStruct))
			}

			cs = append(cs, constraint.NewCylinderCollision(idx(x, y), cyl1, alphaCollision))
			cs = append(cs, constraint.NewCylinderCollision(idx(x, y), cyl2, alphaCollision))
		}
	}

	return pos, cs, arena, cylinders, cyl1, cyl2
}

// NewClothTurnScene builds a runnable ClothTurn scene.
func NewClothTurnScene(desc ClothTurn) *ClothTurnScene {
	pos, cs, arena, cylinders, cyl1, cyl2 := desc.Build()
	w := desc.W
	if w < 1 {
		w = 1
	}
	mass := 0.01 / float64(w*clothTurnHeight)
	s, err := solver.New(pos, cs, arena, mass)
	if err != nil {
		panic(err)
	}
	s.NIteration = 10
	s.ActivateGlobalCollision(4.0/float64(clothTurnHeight-1)*(math.Pi/2), 1e-8)

	return &ClothTurnScene{grabState: grabState{solver: s}, desc: desc, arena: arena, cylinders: cylinders, cyl1: cyl1, cyl2: cyl2}
}

// SetCylinderAngle rotates both cylinders' axes to the given angle in
// degrees, mirroring the original's live UI slider — only valid between
// steps.
func (c *ClothTurnScene) SetCylinderAngle(deg float64) {
	theta := deg * math.Pi / 180
	c.cylinders.Set(c.cyl1, constraint.Cylinder{
		Dir: r3.Vector{X: math.Cos(theta), Z: -math.Sin(theta)},
		P:   r3.Vector{Y: c.desc.CylinderSpacing / 2},
		R:   clothTurnRadius + 0.02,
	})
	c.cylinders.Set(c.cyl2, constraint.Cylinder{
		Dir: r3.Vector{X: math.Cos(theta), Z: math.Sin(theta)},
		P:   r3.Vector{Y: -c.desc.CylinderSpacing / 2},
		R:   clothTurnRadius + 0.02,
	})
	c.desc.CylinderAngleDeg = deg
}

func (c *ClothTurnScene) Step(dt float64)           { step(c.solver, dt, modeSubsteps) }
func (c *ClothTurnScene) Positions() []r3.Vector     { return c.solver.Positions() }
func (c *ClothTurnScene) Grab(o, d r3.Vector) *int   { return c.grab(o, d) }
func (c *ClothTurnScene) MoveGrabbed(o, d r3.Vector) { c.moveGrabbed(o, d) }
func (c *ClothTurnScene) Release()                  { c.release() }
func (c *ClothTurnScene) Reset()                    { *c = *NewClothTurnScene(c.desc) }
