package constraint

import "github.com/golang/geo/r3"

// Cylinder is a geometric collaborator: an infinite cylinder of radius R
// around the axis through point P in direction Dir (unit). Read-only during
// a step; the scene may mutate it between steps (e.g. rotate it).
type Cylinder struct {
	Dir, P r3.Vector
	R      float64
}

// CylinderRef is a stable handle to a Cylinder owned by an arena.
type CylinderRef struct {
	cylinders *[]Cylinder
	index     int
}

func (r CylinderRef) get() Cylinder { return (*r.cylinders)[r.index] }

// CylinderArena owns Cylinder values for a scene.
type CylinderArena struct {
	cylinders []Cylinder
}

// NewCylinderArena creates an empty cylinder arena.
func NewCylinderArena() *CylinderArena { return &CylinderArena{} }

// Add stores a cylinder and returns a stable reference to it.
func (a *CylinderArena) Add(c Cylinder) CylinderRef {
	a.cylinders = append(a.cylinders, c)
	return CylinderRef{cylinders: &a.cylinders, index: len(a.cylinders) - 1}
}

// Set replaces the geometry of a previously added cylinder. Must only be
// called between steps.
func (a *CylinderArena) Set(ref CylinderRef, c Cylinder) {
	a.cylinders[ref.index] = c
}

// CylinderCollision keeps a particle outside a cylinder's radius. Unilateral.
type CylinderCollision struct {
	particle  [1]int
	alpha     Handle
	cylinder  CylinderRef
	gradCache [1]r3.Vector
}

// NewCylinderCollision builds a CylinderCollision constraint for particle i.
func NewCylinderCollision(i int, cylinder CylinderRef, alpha Handle) *CylinderCollision {
	return &CylinderCollision{particle: [1]int{i}, alpha: alpha, cylinder: cylinder}
}

func (c *CylinderCollision) Particles() []int    { return c.particle[:] }
func (c *CylinderCollision) Compliance() Handle  { return c.alpha }
func (c *CylinderCollision) Satisfied(val float64) bool { return unilateralSatisfied(val) }

// closestOnAxis returns the point on the cylinder axis closest to xi.
func closestOnAxis(cyl Cylinder, xi r3.Vector) r3.Vector {
	t := -cyl.P.Sub(xi).Dot(cyl.Dir)
	return cyl.P.Add(cyl.Dir.Mul(t))
}

func (c *CylinderCollision) Eval(x []r3.Vector) float64 {
	cyl := c.cylinder.get()
	xi := x[c.particle[0]]
	axisPt := closestOnAxis(cyl, xi)
	return axisPt.Sub(xi).Norm() - cyl.R
}

func (c *CylinderCollision) Grad(x []r3.Vector) []r3.Vector {
	cyl := c.cylinder.get()
	xi := x[c.particle[0]]
	axisPt := closestOnAxis(cyl, xi)
	c.gradCache[0] = safeUnit(xi.Sub(axisPt))
	return c.gradCache[:]
}

func (c *CylinderCollision) NormGrad(x []r3.Vector, w []float64) float64 {
	return w[c.particle[0]]
}
