// Package scene implements the nine scene descriptors: deterministic
// particle/constraint factories wired to an internal/solver.Solver, plus
// the shared grab/drag/step/reset orchestration every scene type shares.
package scene

import (
	"math"

	"github.com/golang/geo/r3"

	"github.com/san-kum/xpbd/internal/constraint"
	"github.com/san-kum/xpbd/internal/solver"
)

// Scene is the shared contract every scene descriptor's built instance
// satisfies: stepping, position observation, and mouse-ray grab/drag/reset
// interaction, mirroring the original source's Scene base class minus its
// rendering hooks (owned by the external viz layer here, not the core).
type Scene interface {
	// Step advances the scene by dt, using substeps when the scene's
	// contact load calls for it (see updateMode below).
	Step(dt float64)
	// Positions returns the live particle position slice.
	Positions() []r3.Vector
	// Grab picks, among the particles within a small cone-test threshold of
	// the ray (origin, dir), the one nearest the ray origin and pins it,
	// returning its index, or nil if none is close enough.
	Grab(origin, dir r3.Vector) *int
	// MoveGrabbed moves the currently grabbed particle to the point on the
	// new ray at the depth recorded by Grab. A no-op if nothing is grabbed.
	MoveGrabbed(origin, dir r3.Vector)
	// Release unpins the grabbed particle, restoring it to dynamic.
	Release()
	// Reset rebuilds the scene from scratch with its current tunables.
	Reset()
}

// grabRadiusSq is the cone-test radius-squared used to decide whether a
// particle falls within the pick ray, matching the original source's
// SceneManager::MouseDown (r*r = 0.1).
const grabRadiusSq = 0.1

// grabState is embedded by every scene implementation to share ray-pick
// grab/drag/release logic over a *solver.Solver.
type grabState struct {
	solver  *solver.Solver
	grabbed *int
	dist    float64
}

// grab implements the original source's cone-test pick: among particles
// satisfying (d.(x-o))^2 - (|x-o|^2 - r^2) > 0, it selects the one nearest
// the ray origin (not the one nearest the ray itself) and records that
// distance D so moveGrabbed can later sweep the particle at a fixed depth
// along the new ray rather than projecting its current position.
func (g *grabState) grab(origin, dir r3.Vector) *int {
	d := dir.Normalize()
	best := -1
	bestDist := math.MaxFloat64

	positions := g.solver.Positions()
	for i, p := range positions {
		toParticle := p.Sub(origin)
		distSq := toParticle.Dot(toParticle)
		along := toParticle.Dot(d)
		if along*along-(distSq-grabRadiusSq) <= 0 {
			continue
		}
		dist := math.Sqrt(distSq)
		if dist < bestDist {
			bestDist = dist
			best = i
		}
	}

	if best == -1 {
		return nil
	}

	g.grabbed = &best
	g.dist = bestDist
	g.solver.AddFixedPoint(best)
	return g.grabbed
}

// moveGrabbed sweeps the grabbed particle to origin + D*dir, D being the
// depth recorded at grab time, matching the original source's
// SceneManager::MouseMove rather than projecting the particle's current
// position onto the new ray.
func (g *grabState) moveGrabbed(origin, dir r3.Vector) {
	if g.grabbed == nil {
		return
	}
	d := dir.Normalize()
	target := origin.Add(d.Mul(g.dist))
	g.solver.SetPos(*g.grabbed, target)
}

func (g *grabState) release() {
	if g.grabbed == nil {
		return
	}
	g.solver.RemoveFixedPoint(*g.grabbed)
	g.grabbed = nil
}

// updateMode selects between the full accumulated-lambda iteration and
// Rayleigh-damped substepping, mirroring the design notes' per-scene table:
// substeps for collision-heavy scenes, full iteration for compliance-driven
// ones.
type updateMode int

const (
	modeFull updateMode = iota
	modeSubsteps
)

func step(s *solver.Solver, dt float64, mode updateMode) {
	if mode == modeSubsteps {
		s.UpdateSubsteps(dt)
	} else {
		s.Update(dt)
	}
}

// buildDistanceGrid is used by Cloth: it wires
// structural (horizontal/vertical), shear (diagonal) and optional bending
// (2-apart) Distance constraints over a w*h particle grid indexed
// row-major (y*w+x), exactly as the original source's nested loop does.
func buildDistanceGrid(w, h int, spacing float64, wrapY bool, alphaStruct, alphaShear, alphaBend constraint.Handle, bending bool, add func(constraint.Constraint)) {
	idx := func(x, y int) int { return y*w + x }

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if x != w-1 {
				add(constraint.NewDistance(idx(x, y), idx(x+1, y), spacing, alphaStruct))
			}

			nextY := y + 1
			if wrapY {
				nextY = (y + 1) % h
			}
			if wrapY || y != h-1 {
				add(constraint.NewDistance(idx(x, y), idx(x, nextY), spacing, alphaStruct))
			}

			if x != w-1 && (wrapY || y != h-1) {
				diag := spacing * math.Sqrt2
				add(constraint.NewDistance(idx(x, y), idx(x+1, nextY), diag, alphaShear))
				add(constraint.NewDistance(idx(x, nextY), idx(x+1, y), diag, alphaShear))
			}

			if bending {
				if y < h-2 {
					add(constraint.NewDistance(idx(x, y), idx(x, y+2), spacing*2, alphaBend))
				}
				if x < w-2 {
					add(constraint.NewDistance(idx(x, y), idx(x+2, y), spacing*2, alphaBend))
				}
			}
		}
	}
}
