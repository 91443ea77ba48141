package constraint

import "github.com/golang/geo/r3"

// MeshVolume constrains the enclosed volume of a single closed triangle
// mesh to Pressure * InitialVolume. Bilateral. Pressure is a pointer to a
// scene-owned scalar so it can be retuned live between steps (never package
// state). gradCache is valid only between Grad and the following NormGrad
// call on the same predicted positions.
//
// Indices are global particle indices (startIndex already applied), three
// per triangle, in (p1,p2,p3) winding order.
type MeshVolume struct {
	particles     []int
	alpha         Handle
	Indices       []int
	Pressure      *float64
	InitialVolume float64
	gradCache     []r3.Vector
}

// NewMeshVolume builds a MeshVolume constraint over a closed mesh whose
// vertices are particles[startIndex:startIndex+len(vertices)] and whose
// triangles are given as local (0-based) vertex indices.
func NewMeshVolume(startIndex int, localTriangles []int, x []r3.Vector, nVertices int, pressure *float64, alpha Handle) *MeshVolume {
	m := &MeshVolume{
		alpha:     alpha,
		Pressure:  pressure,
		particles: make([]int, nVertices),
		Indices:   make([]int, len(localTriangles)),
		gradCache: make([]r3.Vector, nVertices),
	}
	for i := range m.particles {
		m.particles[i] = startIndex + i
	}
	for i, li := range localTriangles {
		m.Indices[i] = startIndex + li
	}
	m.InitialVolume = m.calculateVolume(x)
	return m
}

func (m *MeshVolume) calculateVolume(x []r3.Vector) float64 {
	v := 0.0
	for i := 0; i+2 < len(m.Indices); i += 3 {
		p1, p2, p3 := x[m.Indices[i]], x[m.Indices[i+1]], x[m.Indices[i+2]]
		v += p1.Cross(p2).Dot(p3)
	}
	return v / 6.0
}

func (m *MeshVolume) Particles() []int    { return m.particles }
func (m *MeshVolume) Compliance() Handle  { return m.alpha }
func (m *MeshVolume) Satisfied(c float64) bool { return bilateralSatisfied(c) }

func (m *MeshVolume) Eval(x []r3.Vector) float64 {
	return m.calculateVolume(x) - (*m.Pressure)*m.InitialVolume
}

func (m *MeshVolume) Grad(x []r3.Vector) []r3.Vector {
	for i := range m.gradCache {
		m.gradCache[i] = r3.Vector{}
	}

	startIndex := m.particles[0]
	for i := 0; i+2 < len(m.Indices); i += 3 {
		p1, p2, p3 := x[m.Indices[i]], x[m.Indices[i+1]], x[m.Indices[i+2]]
		m.gradCache[m.Indices[i]-startIndex] = m.gradCache[m.Indices[i]-startIndex].Add(p2.Cross(p3))
		m.gradCache[m.Indices[i+1]-startIndex] = m.gradCache[m.Indices[i+1]-startIndex].Add(p3.Cross(p1))
		m.gradCache[m.Indices[i+2]-startIndex] = m.gradCache[m.Indices[i+2]-startIndex].Add(p1.Cross(p2))
	}

	return m.gradCache
}

func (m *MeshVolume) NormGrad(x []r3.Vector, w []float64) float64 {
	norm2 := 0.0
	for i, idx := range m.particles {
		norm2 += w[idx] * m.gradCache[i].Norm2()
	}
	return norm2
}
