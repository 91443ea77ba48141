package shapematch

import (
	"math"
	"testing"

	"github.com/golang/geo/r3"
)

func cubeCorners() []r3.Vector {
	return []r3.Vector{
		{X: -1, Y: -1, Z: -1}, {X: 1, Y: -1, Z: -1},
		{X: -1, Y: 1, Z: -1}, {X: 1, Y: 1, Z: -1},
		{X: -1, Y: -1, Z: 1}, {X: 1, Y: -1, Z: 1},
		{X: -1, Y: 1, Z: 1}, {X: 1, Y: 1, Z: 1},
	}
}

func approxVec(t *testing.T, got, want r3.Vector, tol float64, msg string) {
	t.Helper()
	if got.Sub(want).Norm() > tol {
		t.Fatalf("%s: got %v, want %v", msg, got, want)
	}
}

func TestMatchRestPoseIsNoop(t *testing.T) {
	pts := cubeCorners()
	ref := NewReference(pts)

	predicted := append([]r3.Vector(nil), pts...)
	Match(ref, predicted)

	for i := range predicted {
		approxVec(t, predicted[i], pts[i], 1e-9, "rest pose should match itself")
	}
}

func TestMatchPureTranslation(t *testing.T) {
	pts := cubeCorners()
	ref := NewReference(pts)

	offset := r3.Vector{X: 5, Y: -2, Z: 1}
	predicted := make([]r3.Vector, len(pts))
	for i, p := range pts {
		predicted[i] = p.Add(offset)
	}

	Match(ref, predicted)

	for i := range predicted {
		approxVec(t, predicted[i], pts[i].Add(offset), 1e-6, "pure translation should be preserved")
	}
}

func TestMatchRejectsDeformationTowardRigid(t *testing.T) {
	pts := cubeCorners()
	ref := NewReference(pts)

	deformed := append([]r3.Vector(nil), pts...)
	deformed[0] = deformed[0].Add(r3.Vector{X: 2})

	Match(ref, deformed)

	d := deformed[1].Sub(deformed[0]).Norm()
	rest := pts[1].Sub(pts[0]).Norm()
	if math.Abs(d-rest) > 0.5 {
		t.Fatalf("shape matching should pull deformed points back toward rigid spacing: got edge length %v, rest %v", d, rest)
	}
}

func TestMatchEmptyIsNoop(t *testing.T) {
	ref := NewReference(nil)
	var predicted []r3.Vector
	Match(ref, predicted)
	if len(predicted) != 0 {
		t.Fatal("empty input should remain empty")
	}
}

func TestMatchMismatchedLengthIsNoop(t *testing.T) {
	pts := cubeCorners()
	ref := NewReference(pts)

	predicted := append([]r3.Vector(nil), pts[:4]...)
	before := append([]r3.Vector(nil), predicted...)
	Match(ref, predicted)

	for i := range predicted {
		approxVec(t, predicted[i], before[i], 1e-9, "mismatched length should leave predicted untouched")
	}
}
