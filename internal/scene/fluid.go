package scene

import (
	"github.com/golang/geo/r3"

	"github.com/san-kum/xpbd/internal/constraint"
	"github.com/san-kum/xpbd/internal/solver"
)

// Fluid describes an Nx*Ny*Nz particle block inside a closed box, held
// together by SPH density constraints and bounded by six SemiPlane walls.
// Grounded on original_source/src/scenes/Fluid.hpp.
type Fluid struct {
	Nx, Ny, Nz int
}

const fluidParticleRadius = 0.01
const fluidRestDensity = 1000.0
const fluidBoxHalfWidth = 1.0

// FluidScene is a built Fluid scene.
type FluidScene struct {
	grabState
	desc  Fluid
	arena *constraint.ComplianceArena
}

func (desc Fluid) Build() ([]r3.Vector, []constraint.Constraint, *constraint.ComplianceArena, constraint.FluidParams) {
	arena := constraint.NewComplianceArena()
	alphaWall := arena.Add(1e-8)

	h := 4.0 * fluidParticleRadius
	params := constraint.FluidParams{
		Rho0: fluidRestDensity,
		H:    h,
		Mass: fluidRestDensity * h * h * h,
	}

	nx, ny, nz := desc.Nx, desc.Ny, desc.Nz
	if nx < 1 {
		nx = 1
	}
	if ny < 1 {
		ny = 1
	}
	if nz < 1 {
		nz = 1
	}

	spacing := 2.0 * fluidParticleRadius
	offX := float64(nx-1) * spacing * 0.5
	offY := float64(ny-1) * spacing * 0.5
	offZ := float64(nz-1) * spacing * 0.5

	var pos []r3.Vector
	for i := 0; i < nx; i++ {
		for j := 0; j < ny; j++ {
			for k := 0; k < nz; k++ {
				pos = append(pos, r3.Vector{
					X: float64(i)*spacing - offX,
					Y: float64(j)*spacing - offY,
					Z: float64(k)*spacing - offZ,
				})
			}
		}
	}

	w := fluidBoxHalfWidth
	planes := constraint.NewPlaneArena()
	walls := []constraint.SemiPlane{
		{P: r3.Vector{X: -w}, N: r3.Vector{X: 1}},
		{P: r3.Vector{X: w}, N: r3.Vector{X: -1}},
		{P: r3.Vector{Y: -w}, N: r3.Vector{Y: 1}},
		{P: r3.Vector{Y: w}, N: r3.Vector{Y: -1}},
		{P: r3.Vector{Z: -w}, N: r3.Vector{Z: 1}},
		{P: r3.Vector{Z: w}, N: r3.Vector{Z: -1}},
	}

	var wallRefs []constraint.SemiPlaneRef
	for _, pl := range walls {
		wallRefs = append(wallRefs, planes.Add(pl))
	}

	var cs []constraint.Constraint
	for p := range pos {
		for _, wallRef := range wallRefs {
			cs = append(cs, constraint.NewSemiPlaneConstraint(p, wallRef, fluidParticleRadius, alphaWall))
		}
	}

	return pos, cs, arena, params
}

// NewFluidScene builds a runnable Fluid scene.
func NewFluidScene(desc Fluid) *FluidScene {
	pos, cs, arena, params := desc.Build()
	s, err := solver.New(pos, cs, arena, params.Mass)
	if err != nil {
		panic(err)
	}
	s.NIteration = 4
	s.ActivateFluids(params, 1e-3)

	return &FluidScene{grabState: grabState{solver: s}, desc: desc, arena: arena}
}

func (c *FluidScene) Step(dt float64)           { step(c.solver, dt, modeFull) }
func (c *FluidScene) Positions() []r3.Vector     { return c.solver.Positions() }
func (c *FluidScene) Grab(o, d r3.Vector) *int   { return c.grab(o, d) }
func (c *FluidScene) MoveGrabbed(o, d r3.Vector) { c.moveGrabbed(o, d) }
func (c *FluidScene) Release()                  { c.release() }
func (c *FluidScene) Reset()                    { *c = *NewFluidScene(c.desc) }
