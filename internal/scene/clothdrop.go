package scene

import (
	"math"

	"github.com/golang/geo/r3"

	"github.com/san-kum/xpbd/internal/constraint"
	"github.com/san-kum/xpbd/internal/solver"
)

// ClothDrop describes a W*W cloth grid dropped onto a unit sphere at the
// origin, colliding via per-triangle SphereTriCollision constraints.
// Grounded on original_source/src/scenes/ClothDrop.hpp.
type ClothDrop struct {
	W int
}

// ClothDropScene is a built ClothDrop scene.
type ClothDropScene struct {
	grabState
	desc        ClothDrop
	arena       *constraint.ComplianceArena
	sphereArena *constraint.SphereArena
}

const clothDropSphereRadius = 1.0

func (desc ClothDrop) Build() ([]r3.Vector, []constraint.Constraint, *constraint.ComplianceArena, *constraint.SphereArena) {
	arena := constraint.NewComplianceArena()
	alphaStruct := arena.Add(1e-8)
	alphaBend := arena.Add(1e-8)
	alphaCollision := arena.Add(1e-8)

	w := desc.W
	if w < 2 {
		w = 2
	}

	distance := 4.0 / float64(w-1)
	rangeMax := int(math.Ceil(float64(w) / 32))
	if w > 8 && rangeMax < 2 {
		rangeMax = 2
	}

	pos := make([]r3.Vector, w*w)
	var cs []constraint.Constraint

	idx := func(x, y int) int { return y*w + x }
	for y := 0; y < w; y++ {
		for x := 0; x < w; x++ {
			pos[idx(x, y)] = r3.Vector{
				X: distance*float64(x) - distance*float64(w-1)/2,
				Y: 3,
				Z: distance*float64(y) - distance*float64(w-1)/2,
			}

			if x != w-1 {
				cs = append(cs, constraint.NewDistance(idx(x, y), idx(x+1, y), distance, alphaStruct))
			}
			if y != w-1 {
				cs = append(cs, constraint.NewDistance(idx(x, y), idx(x, y+1), distance, alphaStruct))
			}
			if x != w-1 && y != w-1 {
				diag := distance * math.Sqrt2
				cs = append(cs, constraint.NewDistance(idx(x, y), idx(x+1, y+1), diag, alphaStruct))
				cs = append(cs, constraint.NewDistance(idx(x, y+1), idx(x+1, y), diag, alphaStruct))
			}

			if y < w-rangeMax {
				cs = append(cs, constraint.NewDistance(idx(x, y), idx(x, y+rangeMax), distance*float64(rangeMax), alphaBend))
			}
			if x < w-rangeMax {
				cs = append(cs, constraint.NewDistance(idx(x, y), idx(x+rangeMax, y), distance*float64(rangeMax), alphaBend))
			}
			if y < w-rangeMax && x < w-rangeMax {
				diag := distance * float64(rangeMax) * math.Sqrt2
				cs = append(cs, constraint.NewDistance(idx(x, y), idx(x+rangeMax, y+rangeMax), diag, alphaBend))
				cs = append(cs, constraint.NewDistance(idx(x+rangeMax, y), idx(x, y+rangeMax), diag, alphaBend))
			}
		}
	}

	spheres := constraint.NewSphereArena()
	center := spheres.Add(constraint.Sphere{Center: r3.Vector{}})

	for y := 0; y < w-1; y++ {
		for x := 0; x < w-1; x++ {
			a, b, c, d := idx(x, y), idx(x+1, y), idx(x+1, y+1), idx(x, y+1)
			cs = append(cs, constraint.NewSphereTriCollision(a, b, c, center, clothDropSphereRadius+0.05, alphaCollision))
			cs = append(cs, constraint.NewSphereTriCollision(a, c, d, center, clothDropSphereRadius+0.05, alphaCollision))
		}
	}

	return pos, cs, arena, spheres
}

// NewClothDropScene builds a runnable ClothDrop scene.
func NewClothDropScene(desc ClothDrop) *ClothDropScene {
	pos, cs, arena, spheres := desc.Build()
	mass := 0.01 / float64(desc.W*desc.W)
	if desc.W < 2 {
		mass = 0.01
	}
	s, err := solver.New(pos, cs, arena, mass)
	if err != nil {
		panic(err)
	}
	s.NIteration = 10

	return &ClothDropScene{grabState: grabState{solver: s}, desc: desc, arena: arena, sphereArena: spheres}
}

func (c *ClothDropScene) Step(dt float64)           { step(c.solver, dt, modeSubsteps) }
func (c *ClothDropScene) Positions() []r3.Vector     { return c.solver.Positions() }
func (c *ClothDropScene) Grab(o, d r3.Vector) *int   { return c.grab(o, d) }
func (c *ClothDropScene) MoveGrabbed(o, d r3.Vector) { c.moveGrabbed(o, d) }
func (c *ClothDropScene) Release()                  { c.release() }
func (c *ClothDropScene) Reset()                    { *c = *NewClothDropScene(c.desc) }
