package solver

import (
	"github.com/golang/geo/r3"

	"github.com/san-kum/xpbd/internal/constraint"
)

// frictionStrength scales how strongly colliding particle pairs are pulled
// toward their average velocity, in units of 1/dt.
const frictionStrength = 20.0

// applyFriction damps relative tangential motion between each contact pair
// generated this step by pulling both particles toward their average
// displacement, proportionally to dt. Runs only over the transient
// collision region; any other transient constraint kind is left alone.
func (s *Solver) applyFriction(nextX []r3.Vector, dt float64) {
	if !s.useGlobalCollision {
		return
	}

	d := frictionStrength * dt

	for _, c := range s.constraints[s.nPermanent:] {
		md, ok := c.(*constraint.MinDistance)
		if !ok {
			continue
		}
		ps := md.Particles()
		p1, p2 := ps[0], ps[1]

		v1 := nextX[p1].Sub(s.x[p1])
		v2 := nextX[p2].Sub(s.x[p2])
		avg := v1.Add(v2).Mul(0.5)

		nextX[p1] = nextX[p1].Add(avg.Sub(v1).Mul(d))
		nextX[p2] = nextX[p2].Add(avg.Sub(v2).Mul(d))
	}
}
