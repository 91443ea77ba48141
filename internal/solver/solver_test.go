package solver

import (
	"math"
	"testing"

	"github.com/golang/geo/r3"

	"github.com/san-kum/xpbd/internal/constraint"
)

const dt = 0.016

func TestSinglePendulum(t *testing.T) {
	arena := constraint.NewComplianceArena()
	alpha := arena.Add(0)

	pos := []r3.Vector{{X: 0}, {X: 1}}
	cs := []constraint.Constraint{constraint.NewDistance(0, 1, 1.0, alpha)}

	s, err := New(pos, cs, arena, 1.0)
	if err != nil {
		t.Fatal(err)
	}
	s.NIteration = 20
	s.AddFixedPoint(0)

	s.Update(dt)

	p := s.Positions()[1]
	if !(p.Y > -2e-3 && p.Y < 0) {
		t.Fatalf("free particle y = %v, want in (-2e-3, 0)", p.Y)
	}
	dist := p.Sub(s.Positions()[0]).Norm()
	if math.Abs(dist-1.0) > 1e-3 {
		t.Fatalf("distance to pin = %v, want within 1e-3 of 1.0", dist)
	}
}

func TestHangingCord(t *testing.T) {
	const n = 10
	arena := constraint.NewComplianceArena()
	alpha := arena.Add(1e-8)

	pos := make([]r3.Vector, n)
	for i := range pos {
		pos[i] = r3.Vector{X: float64(i) * 0.5}
	}
	var cs []constraint.Constraint
	for i := 0; i+1 < n; i++ {
		cs = append(cs, constraint.NewDistance(i, i+1, 0.5, alpha))
	}

	s, err := New(pos, cs, arena, 1.0)
	if err != nil {
		t.Fatal(err)
	}
	s.NIteration = 20
	s.AddFixedPoint(0)

	for i := 0; i < 120; i++ {
		s.Update(dt)
	}

	last := s.Positions()[n-1]
	if last.Y >= -1.0 {
		t.Fatalf("last particle y = %v, want < -1.0", last.Y)
	}
	dist := last.Sub(s.Positions()[n-2]).Norm()
	if math.Abs(dist-0.5) > 1e-2 {
		t.Fatalf("distance to particle 8 = %v, want within 1e-2 of 0.5", dist)
	}
}

func TestClothOnPlane(t *testing.T) {
	const w, h = 8, 8
	arena := constraint.NewComplianceArena()
	alphaStruct := arena.Add(1e-8)
	alphaGround := arena.Add(1e-8)

	idx := func(i, j int) int { return i*h + j }
	pos := make([]r3.Vector, w*h)
	for i := 0; i < w; i++ {
		for j := 0; j < h; j++ {
			pos[idx(i, j)] = r3.Vector{X: float64(i) * 0.1, Y: 1, Z: float64(j) * 0.1}
		}
	}

	var cs []constraint.Constraint
	addDist := func(a, b int) {
		cs = append(cs, constraint.NewDistance(a, b, pos[a].Sub(pos[b]).Norm(), alphaStruct))
	}
	for i := 0; i < w; i++ {
		for j := 0; j < h; j++ {
			if i+1 < w {
				addDist(idx(i, j), idx(i+1, j))
			}
			if j+1 < h {
				addDist(idx(i, j), idx(i, j+1))
			}
		}
	}

	planes := constraint.NewPlaneArena()
	ground := planes.Add(constraint.SemiPlane{P: r3.Vector{Y: -1.5}, N: r3.Vector{Y: 1}})
	for p := range pos {
		cs = append(cs, constraint.NewSemiPlaneConstraint(p, ground, 0, alphaGround))
	}

	s, err := New(pos, cs, arena, 1.0)
	if err != nil {
		t.Fatal(err)
	}
	s.NIteration = 20

	for i := 0; i < 300; i++ {
		s.Update(dt)
	}

	for i, p := range s.Positions() {
		if p.Y < -1.55 {
			t.Fatalf("particle %d y = %v, want >= -1.55", i, p.Y)
		}
	}
}

func TestSpherePile(t *testing.T) {
	const n = 50
	const r = 0.1
	arena := constraint.NewComplianceArena()
	alphaWall := arena.Add(1e-8)
	alphaColl := arena.Add(1e-8)

	pos := make([]r3.Vector, n)
	side := 4
	for i := 0; i < n; i++ {
		pos[i] = r3.Vector{
			X: -0.8 + float64(i%side)*0.4,
			Y: -0.2 + float64((i/side)%side)*0.4,
			Z: -0.8 + float64(i/(side*side))*0.4,
		}
	}

	planes := constraint.NewPlaneArena()
	walls := []constraint.SemiPlane{
		{P: r3.Vector{X: -1}, N: r3.Vector{X: 1}},
		{P: r3.Vector{X: 1}, N: r3.Vector{X: -1}},
		{P: r3.Vector{Y: -1}, N: r3.Vector{Y: 1}},
		{P: r3.Vector{Y: 1}, N: r3.Vector{Y: -1}},
		{P: r3.Vector{Z: -1}, N: r3.Vector{Z: 1}},
		{P: r3.Vector{Z: 1}, N: r3.Vector{Z: -1}},
	}
	var cs []constraint.Constraint
	for p := range pos {
		for _, wall := range walls {
			cs = append(cs, constraint.NewSemiPlaneConstraint(p, planes.Add(wall), 0, alphaWall))
		}
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			cs = append(cs, constraint.NewMinDistance(i, j, 2*r, alphaColl))
		}
	}

	s, err := New(pos, cs, arena, 1.0)
	if err != nil {
		t.Fatal(err)
	}
	s.NIteration = 20

	for i := 0; i < 200; i++ {
		s.Update(dt)
	}

	final := s.Positions()
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			d := final[i].Sub(final[j]).Norm()
			if d < 2*r-1e-2 {
				t.Fatalf("particles %d,%d overlap: distance %v, want >= %v", i, j, d, 2*r-1e-2)
			}
		}
	}
}

func TestInflatedBall(t *testing.T) {
	pts := icosahedronLike()
	faces := icosahedronFacesLike()

	arena := constraint.NewComplianceArena()
	alphaVol := arena.Add(1e-8)

	pressure := new(float64)
	*pressure = 2.0

	var triangles []int
	for _, f := range faces {
		triangles = append(triangles, f[0], f[1], f[2])
	}
	mv := constraint.NewMeshVolume(0, triangles, pts, len(pts), pressure, alphaVol)
	v0 := mv.InitialVolume

	s, err := New(pts, []constraint.Constraint{mv}, arena, 1.0)
	if err != nil {
		t.Fatal(err)
	}
	s.NIteration = 20

	for i := 0; i < 100; i++ {
		s.Update(dt)
	}

	finalPos := s.Positions()
	vol := 0.0
	for i := 0; i+2 < len(triangles); i += 3 {
		p1, p2, p3 := finalPos[triangles[i]], finalPos[triangles[i+1]], finalPos[triangles[i+2]]
		vol += p1.Cross(p2).Dot(p3)
	}
	vol /= 6.0

	lo, hi := 1.8*v0, 2.2*v0
	if vol < lo || vol > hi {
		t.Fatalf("final volume %v, want in (%v, %v)", vol, lo, hi)
	}
}

func TestRigidCubeDrop(t *testing.T) {
	corners := []r3.Vector{
		{X: -0.5, Y: -0.5, Z: -0.5}, {X: 0.5, Y: -0.5, Z: -0.5},
		{X: -0.5, Y: 0.5, Z: -0.5}, {X: 0.5, Y: 0.5, Z: -0.5},
		{X: -0.5, Y: -0.5, Z: 0.5}, {X: 0.5, Y: -0.5, Z: 0.5},
		{X: -0.5, Y: 0.5, Z: 0.5}, {X: 0.5, Y: 0.5, Z: 0.5},
	}
	for i := range corners {
		corners[i].Y += 3
	}

	initialDist := make(map[[2]int]float64)
	for i := 0; i < len(corners); i++ {
		for j := i + 1; j < len(corners); j++ {
			initialDist[[2]int{i, j}] = corners[i].Sub(corners[j]).Norm()
		}
	}

	arena := constraint.NewComplianceArena()
	alphaGround := arena.Add(1e-8)

	planes := constraint.NewPlaneArena()
	ground := planes.Add(constraint.SemiPlane{P: r3.Vector{Y: -1.5}, N: r3.Vector{Y: 1}})

	var cs []constraint.Constraint
	for p := range corners {
		cs = append(cs, constraint.NewSemiPlaneConstraint(p, ground, 0, alphaGround))
	}

	s, err := New(corners, cs, arena, 1.0)
	if err != nil {
		t.Fatal(err)
	}
	s.NIteration = 10

	indices := make([]int, len(corners))
	for i := range indices {
		indices[i] = i
	}
	s.ActivateRigid(indices)

	for i := 0; i < 400; i++ {
		s.UpdateSubsteps(dt)
	}

	final := s.Positions()
	for i := 0; i < len(final); i++ {
		for j := i + 1; j < len(final); j++ {
			d := final[i].Sub(final[j]).Norm()
			if math.Abs(d-initialDist[[2]int{i, j}]) > 1e-2 {
				t.Fatalf("corner pair %d,%d distance drifted: got %v, want within 1e-2 of %v", i, j, d, initialDist[[2]int{i, j}])
			}
		}
	}
	for i, p := range final {
		if p.Y < -1.55 {
			t.Fatalf("corner %d y = %v, want >= -1.55", i, p.Y)
		}
	}
}

func TestPinnedParticleDoesNotMove(t *testing.T) {
	arena := constraint.NewComplianceArena()
	alpha := arena.Add(1e-8)
	pos := []r3.Vector{{X: 0, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 0}}
	cs := []constraint.Constraint{constraint.NewDistance(0, 1, 1.0, alpha)}

	s, err := New(pos, cs, arena, 1.0)
	if err != nil {
		t.Fatal(err)
	}
	s.AddFixedPoint(0)

	before := s.Positions()[0]
	s.Update(dt)
	after := s.Positions()[0]
	if before != after {
		t.Fatalf("pinned particle moved: before %v, after %v", before, after)
	}
}

func TestNoNaNOrInf(t *testing.T) {
	arena := constraint.NewComplianceArena()
	alpha := arena.Add(1e-8)
	pos := []r3.Vector{{X: 0}, {X: 1}}
	cs := []constraint.Constraint{constraint.NewDistance(0, 1, 1.0, alpha)}

	s, err := New(pos, cs, arena, 1.0)
	if err != nil {
		t.Fatal(err)
	}
	s.AddFixedPoint(0)

	for i := 0; i < 50; i++ {
		s.Update(dt)
	}
	for _, p := range s.Positions() {
		if math.IsNaN(p.X) || math.IsInf(p.X, 0) || math.IsNaN(p.Y) || math.IsInf(p.Y, 0) {
			t.Fatalf("position contains NaN/Inf: %v", p)
		}
	}
	for _, v := range s.Velocities() {
		if math.IsNaN(v.X) || math.IsInf(v.X, 0) {
			t.Fatalf("velocity contains NaN/Inf: %v", v)
		}
	}
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	arena := constraint.NewComplianceArena()
	if _, err := New(nil, nil, arena, 1.0); err == nil {
		t.Fatal("expected error for empty particle set")
	}
	if _, err := New([]r3.Vector{{}}, nil, arena, 0); err == nil {
		t.Fatal("expected error for non-positive default mass")
	}
}

// icosahedronLike and icosahedronFacesLike reproduce the scene package's
// icosphere generator locally to avoid a solver -> scene import cycle.
func icosahedronLike() []r3.Vector {
	t := (1.0 + math.Sqrt(5.0)) / 2.0
	raw := []r3.Vector{
		{X: -1, Y: t, Z: 0}, {X: 1, Y: t, Z: 0}, {X: -1, Y: -t, Z: 0}, {X: 1, Y: -t, Z: 0},
		{X: 0, Y: -1, Z: t}, {X: 0, Y: 1, Z: t}, {X: 0, Y: -1, Z: -t}, {X: 0, Y: 1, Z: -t},
		{X: t, Y: 0, Z: -1}, {X: t, Y: 0, Z: 1}, {X: -t, Y: 0, Z: -1}, {X: -t, Y: 0, Z: 1},
	}
	out := make([]r3.Vector, len(raw))
	for i, v := range raw {
		out[i] = v.Mul(1.0 / v.Norm())
	}
	return out
}

func icosahedronFacesLike() [][3]int {
	return [][3]int{
		{0, 11, 5}, {0, 5, 1}, {0, 1, 7}, {0, 7, 10}, {0, 10, 11},
		{1, 5, 9}, {5, 11, 4}, {11, 10, 2}, {10, 7, 6}, {7, 1, 8},
		{3, 9, 4}, {3, 4, 2}, {3, 2, 6}, {3, 6, 8}, {3, 8, 9},
		{4, 9, 5}, {2, 4, 11}, {6, 2, 10}, {8, 6, 7}, {9, 8, 1},
	}
}

func TestActivateRigidMatchesShapematchReference(t *testing.T) {
	pos := []r3.Vector{{X: -1}, {X: 1}, {Y: 1}}
	arena := constraint.NewComplianceArena()
	s, err := New(pos, nil, arena, 1.0)
	if err != nil {
		t.Fatal(err)
	}
	s.ActivateRigid([]int{0, 1, 2})
	if s.rigidRef == nil {
		t.Fatal("ActivateRigid should populate rigidRef")
	}
	if len(s.rigidRef.Points()) != 3 {
		t.Fatalf("expected 3 reference points, got %d", len(s.rigidRef.Points()))
	}
	s.DeactivateRigid()
	if s.useRigid {
		t.Fatal("DeactivateRigid should clear useRigid")
	}
}
