package scene

import (
	"math"
	"testing"

	"github.com/golang/geo/r3"
)

func hasNaNOrInf(positions []r3.Vector) bool {
	for _, p := range positions {
		if math.IsNaN(p.X) || math.IsNaN(p.Y) || math.IsNaN(p.Z) {
			return true
		}
		if math.IsInf(p.X, 0) || math.IsInf(p.Y, 0) || math.IsInf(p.Z, 0) {
			return true
		}
	}
	return false
}

func stepN(s Scene, n int, dt float64) {
	for i := 0; i < n; i++ {
		s.Step(dt)
	}
}

func TestCordSceneSteps(t *testing.T) {
	s := NewCordScene(Cord{NParticles: 10, Distance: 0.5})
	stepN(s, 60, 0.016)
	if hasNaNOrInf(s.Positions()) {
		t.Fatal("cord scene produced NaN/Inf")
	}
	s.Reset()
	if len(s.Positions()) != 10 {
		t.Fatalf("expected 10 particles after reset, got %d", len(s.Positions()))
	}
}

func TestClothSceneSteps(t *testing.T) {
	s := NewClothScene(Cloth{W: 6, H: 6, Distance: 0.1, Bending: true, SelfCollision: false})
	stepN(s, 60, 0.016)
	if hasNaNOrInf(s.Positions()) {
		t.Fatal("cloth scene produced NaN/Inf")
	}
}

func TestClothSceneSelfCollision(t *testing.T) {
	s := NewClothScene(Cloth{W: 5, H: 5, Distance: 0.1, SelfCollision: true})
	stepN(s, 30, 0.016)
	if hasNaNOrInf(s.Positions()) {
		t.Fatal("cloth scene with self-collision produced NaN/Inf")
	}
}

func TestClothDropSceneSteps(t *testing.T) {
	s := NewClothDropScene(ClothDrop{W: 6})
	stepN(s, 60, 0.016)
	if hasNaNOrInf(s.Positions()) {
		t.Fatal("cloth drop scene produced NaN/Inf")
	}
}

func TestClothTurnSceneSteps(t *testing.T) {
	desc := ClothTurn{W: 6, CylinderSpacing: 0.3, CylinderAngleDeg: 0}
	s := NewClothTurnScene(desc)
	stepN(s, 30, 0.016)
	s.SetCylinderAngle(30)
	stepN(s, 30, 0.016)
	if hasNaNOrInf(s.Positions()) {
		t.Fatal("cloth turn scene produced NaN/Inf")
	}
}

func TestSpheresSceneSteps(t *testing.T) {
	s := NewSpheresScene(Spheres{Count: 20, Radius: 0.1})
	stepN(s, 60, 0.016)
	if hasNaNOrInf(s.Positions()) {
		t.Fatal("spheres scene produced NaN/Inf")
	}
}

func TestSoftBodySceneSteps(t *testing.T) {
	s := NewSoftBodyScene(SoftBody{Radius: 0.5})
	stepN(s, 30, 0.016)
	if hasNaNOrInf(s.Positions()) {
		t.Fatal("soft body scene produced NaN/Inf")
	}
}

func TestSoftBallSceneInflation(t *testing.T) {
	s := NewSoftBallScene(SoftBall{Pressure: 1.5})
	stepN(s, 60, 0.016)
	if hasNaNOrInf(s.Positions()) {
		t.Fatal("soft ball scene produced NaN/Inf")
	}
	s.SetPressure(2.0)
	stepN(s, 30, 0.016)
	if hasNaNOrInf(s.Positions()) {
		t.Fatal("soft ball scene produced NaN/Inf after pressure change")
	}
}

func TestRigidBodySceneSteps(t *testing.T) {
	s := NewRigidBodyScene(RigidBody{Resolution: 0.5, Subdiv: 3})
	stepN(s, 60, 0.016)
	if hasNaNOrInf(s.Positions()) {
		t.Fatal("rigid body scene produced NaN/Inf")
	}
	pts := s.SurfacePoints()
	if len(pts) == 0 {
		t.Fatal("expected nonzero cosmetic surface points")
	}
}

func TestFluidSceneSteps(t *testing.T) {
	s := NewFluidScene(Fluid{Nx: 3, Ny: 3, Nz: 3})
	stepN(s, 30, 0.016)
	if hasNaNOrInf(s.Positions()) {
		t.Fatal("fluid scene produced NaN/Inf")
	}
}

func TestGrabMoveRelease(t *testing.T) {
	s := NewCordScene(Cord{NParticles: 5, Distance: 0.5})
	pos := s.Positions()[4]

	idx := s.Grab(pos, r3.Vector{X: 1, Y: 0, Z: 0})
	if idx == nil {
		t.Fatal("expected a grab hit near an existing particle")
	}

	s.MoveGrabbed(pos.Add(r3.Vector{Y: 1}), r3.Vector{X: 1, Y: 0, Z: 0})
	s.Step(0.016)
	s.Release()
	s.Step(0.016)

	if hasNaNOrInf(s.Positions()) {
		t.Fatal("grab/move/release sequence produced NaN/Inf")
	}
}

func TestGrabMissFarRay(t *testing.T) {
	s := NewCordScene(Cord{NParticles: 5, Distance: 0.5})
	idx := s.Grab(r3.Vector{X: 100, Y: 100, Z: 100}, r3.Vector{X: 1, Y: 0, Z: 0})
	if idx != nil {
		t.Fatal("expected no grab hit far from every particle")
	}
}

// every scene type must satisfy the Scene interface.
var (
	_ Scene = (*CordScene)(nil)
	_ Scene = (*ClothScene)(nil)
	_ Scene = (*ClothDropScene)(nil)
	_ Scene = (*ClothTurnScene)(nil)
	_ Scene = (*SpheresScene)(nil)
	_ Scene = (*SoftBodyScene)(nil)
	_ Scene = (*SoftBallScene)(nil)
	_ Scene = (*RigidBodyScene)(nil)
	_ Scene = (*FluidScene)(nil)
)
