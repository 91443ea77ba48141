package constraint

import (
	"math"
	"testing"

	"github.com/golang/geo/r3"
)

func approxEqual(t *testing.T, got, want, tol float64, msg string) {
	t.Helper()
	if math.Abs(got-want) > tol {
		t.Fatalf("%s: got %v, want %v (tol %v)", msg, got, want, tol)
	}
}

func TestDistanceEvalAndGrad(t *testing.T) {
	arena := NewComplianceArena()
	h := arena.Add(1e-8)
	x := []r3.Vector{{X: 0}, {X: 2}}
	d := NewDistance(0, 1, 1.0, h)

	approxEqual(t, d.Eval(x), 1.0, 1e-9, "Distance.Eval")

	grad := d.Grad(x)
	approxEqual(t, grad[0].X, -1.0, 1e-9, "grad[0].X")
	approxEqual(t, grad[1].X, 1.0, 1e-9, "grad[1].X")

	w := []float64{1.0, 1.0}
	approxEqual(t, d.NormGrad(x, w), 2.0, 1e-9, "NormGrad")

	if d.Satisfied(0.0001) != true {
		t.Fatal("small residual should be satisfied")
	}
	if d.Satisfied(1.0) != false {
		t.Fatal("large residual should not be satisfied")
	}
}

func TestMinDistanceUnilateral(t *testing.T) {
	arena := NewComplianceArena()
	h := arena.Add(1e-8)
	m := NewMinDistance(0, 1, 1.0, h)

	xFar := []r3.Vector{{X: 0}, {X: 2}}
	if !m.Satisfied(m.Eval(xFar)) {
		t.Fatal("particles farther than L0 apart should satisfy MinDistance")
	}

	xClose := []r3.Vector{{X: 0}, {X: 0.5}}
	if m.Satisfied(m.Eval(xClose)) {
		t.Fatal("particles closer than L0 should violate MinDistance")
	}
}

func TestSphereCollision(t *testing.T) {
	arena := NewComplianceArena()
	h := arena.Add(1e-8)
	spheres := NewSphereArena()
	ref := spheres.Add(Sphere{Center: r3.Vector{}})

	s := NewSphereCollision(0, ref, 1.0, h)
	x := []r3.Vector{{X: 2}}
	approxEqual(t, s.Eval(x), 1.0, 1e-9, "SphereCollision.Eval outside")

	spheres.Set(ref, Sphere{Center: r3.Vector{X: 5}})
	approxEqual(t, s.Eval(x), 2.0, 1e-9, "SphereCollision.Eval after relocation")
}

func TestSphereTriCollisionOutside(t *testing.T) {
	arena := NewComplianceArena()
	h := arena.Add(1e-8)
	spheres := NewSphereArena()
	ref := spheres.Add(Sphere{Center: r3.Vector{Y: 2}})

	x := []r3.Vector{
		{X: -1, Y: 0, Z: -1},
		{X: 1, Y: 0, Z: -1},
		{X: 0, Y: 0, Z: 1},
	}
	s := NewSphereTriCollision(0, 1, 2, ref, 0.1, h)
	c := s.Eval(x)
	if c <= 0 {
		t.Fatalf("expected positive clearance, got %v", c)
	}
}

func TestCylinderCollision(t *testing.T) {
	arena := NewComplianceArena()
	h := arena.Add(1e-8)
	cyls := NewCylinderArena()
	ref := cyls.Add(Cylinder{Dir: r3.Vector{Y: 1}, P: r3.Vector{}, R: 1.0})

	c := NewCylinderCollision(0, ref, h)
	inside := []r3.Vector{{X: 0.5, Y: 3, Z: 0}}
	val := c.Eval(inside)
	approxEqual(t, val, -0.5, 1e-9, "CylinderCollision.Eval inside radius")
	if c.Satisfied(val) {
		t.Fatal("particle inside cylinder radius should violate")
	}
}

func TestSemiPlaneConstraint(t *testing.T) {
	arena := NewComplianceArena()
	h := arena.Add(1e-8)
	planes := NewPlaneArena()
	ref := planes.Add(SemiPlane{P: r3.Vector{Y: -1}, N: r3.Vector{Y: 1}})

	s := NewSemiPlaneConstraint(0, ref, 0.05, h)
	above := []r3.Vector{{Y: 0}}
	val := s.Eval(above)
	approxEqual(t, val, 0.95, 1e-9, "SemiPlaneConstraint.Eval above")
	if !s.Satisfied(val) {
		t.Fatal("particle above plane with clearance should satisfy")
	}

	below := []r3.Vector{{Y: -2}}
	if s.Satisfied(s.Eval(below)) {
		t.Fatal("particle below plane should violate")
	}
}

func TestVolumeConstraintRestIsZero(t *testing.T) {
	arena := NewComplianceArena()
	h := arena.Add(1e-8)
	x := []r3.Vector{
		{X: 0, Y: 0, Z: 0},
		{X: 1, Y: 0, Z: 0},
		{X: 0, Y: 1, Z: 0},
		{X: 0, Y: 0, Z: 1},
	}
	v := NewVolume(0, 1, 2, 3, x, h)
	approxEqual(t, v.Eval(x), 0.0, 1e-9, "Volume.Eval at rest pose")

	stretched := append([]r3.Vector(nil), x...)
	stretched[3].Z = 2
	if v.Satisfied(v.Eval(stretched)) {
		t.Fatal("stretched tetrahedron should violate volume constraint")
	}
}

func TestMeshVolumeInflation(t *testing.T) {
	arena := NewComplianceArena()
	h := arena.Add(1e-8)
	x := []r3.Vector{
		{X: 0, Y: 0, Z: 0},
		{X: 1, Y: 0, Z: 0},
		{X: 0, Y: 1, Z: 0},
		{X: 0, Y: 0, Z: 1},
	}
	tris := []int{0, 2, 1, 0, 3, 2, 0, 1, 3, 1, 2, 3}
	pressure := new(float64)
	*pressure = 1.0
	mv := NewMeshVolume(0, tris, x, len(x), pressure, h)
	approxEqual(t, mv.Eval(x), 0.0, 1e-9, "MeshVolume.Eval at pressure=1 rest pose")

	*pressure = 2.0
	c := mv.Eval(x)
	if c >= 0 {
		t.Fatalf("doubling pressure target should make current volume deficient, got %v", c)
	}
}

func TestDensityConstraintNeighbors(t *testing.T) {
	arena := NewComplianceArena()
	h := arena.Add(1e-3)
	params := FluidParams{Rho0: 1000, H: 0.1, Mass: 1.0}
	d := NewDensity(0, params, h)
	d.SetNeighbors([]int{0, 1})

	x := []r3.Vector{{X: 0}, {X: 0.01}}
	c := d.Eval(x)
	if c == 0 {
		t.Fatal("two particles within kernel radius should contribute nonzero density")
	}

	grad := d.Grad(x)
	if len(grad) != 2 {
		t.Fatalf("expected grad length 2, got %d", len(grad))
	}
	w := []float64{1.0, 1.0}
	if d.NormGrad(x, w) < 0 {
		t.Fatal("NormGrad must be non-negative")
	}
}

func TestBendingFlatQuadSatisfied(t *testing.T) {
	arena := NewComplianceArena()
	h := arena.Add(1e-8)
	x := []r3.Vector{
		{X: 0, Y: 0, Z: 0},
		{X: 1, Y: 0, Z: 0},
		{X: 0, Y: 0, Z: 1},
		{X: 0, Y: 0, Z: -1},
	}
	b := NewBending(0, 1, 2, 3, math.Pi, h)
	c := b.Eval(x)
	approxEqual(t, c, 0.0, 1e-6, "flat quad should match rest angle pi")
}

func TestPositionConstraintPullsToTarget(t *testing.T) {
	arena := NewComplianceArena()
	h := arena.Add(1e-8)
	target := r3.Vector{X: 1, Y: 2, Z: 3}
	p := NewPosition(0, target, h)

	x := []r3.Vector{{X: 1, Y: 2, Z: 4}}
	approxEqual(t, p.Eval(x), 1.0, 1e-9, "Position.Eval offset by 1")
}

func TestComplianceArenaGetSet(t *testing.T) {
	arena := NewComplianceArena()
	h := arena.Add(1e-8)
	approxEqual(t, arena.Get(h), 1e-8, 0, "initial compliance")
	arena.Set(h, 1e-4)
	approxEqual(t, arena.Get(h), 1e-4, 0, "updated compliance")
}
