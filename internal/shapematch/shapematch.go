// Package shapematch implements the rigid shape-matching operator: given a
// reference point cloud and a predicted (deformed) point cloud, it replaces
// the prediction with its best rigid-body match to the reference, via polar
// decomposition of the cross-covariance matrix.
package shapematch

import (
	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/mat"
)

// Reference holds a rigid body's rest-pose point cloud and its center of
// mass, computed once at construction. It never changes: shape matching
// always projects toward this fixed rest shape.
type Reference struct {
	points []r3.Vector
	com    r3.Vector
}

// NewReference captures points as the rest pose for future Match calls.
func NewReference(points []r3.Vector) *Reference {
	r := &Reference{points: append([]r3.Vector(nil), points...)}
	r.com = centroid(points)
	return r
}

// Points returns the reference rest-pose points.
func (r *Reference) Points() []r3.Vector { return r.points }

func centroid(points []r3.Vector) r3.Vector {
	c := r3.Vector{}
	for _, p := range points {
		c = c.Add(p)
	}
	if len(points) == 0 {
		return c
	}
	return c.Mul(1.0 / float64(len(points)))
}

// Match replaces predicted in place with its best rigid match to the
// reference configuration: predicted[i] <- R*(X[i]-Xcom) + pCom, where R is
// the rotation extracted from the polar decomposition of the cross-
// covariance matrix M = sum (p[i]-pCom)(X[i]-Xcom)^T.
func Match(ref *Reference, predicted []r3.Vector) {
	if len(predicted) != len(ref.points) || len(predicted) == 0 {
		return
	}

	pCom := centroid(predicted)

	m := mat.NewDense(3, 3, nil)
	for i, p := range predicted {
		r := p.Sub(pCom)
		x := ref.points[i].Sub(ref.com)
		addOuter(m, r, x)
	}

	rot := polarRotation(m)

	for i := range predicted {
		x := ref.points[i].Sub(ref.com)
		predicted[i] = apply(rot, x).Add(pCom)
	}
}

// addOuter accumulates the outer product a*b^T into the 3x3 matrix m.
func addOuter(m *mat.Dense, a, b r3.Vector) {
	av := [3]float64{a.X, a.Y, a.Z}
	bv := [3]float64{b.X, b.Y, b.Z}
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			m.Set(i, j, m.At(i, j)+av[i]*bv[j])
		}
	}
}

// polarRotation extracts R = U*V^T from the SVD of m, flipping the sign of
// U's last column when det(U*V^T) < 0 so the result is a proper rotation
// (det +1), never a reflection.
func polarRotation(m *mat.Dense) *mat.Dense {
	var svd mat.SVD
	ok := svd.Factorize(m, mat.SVDFull)
	if !ok {
		return identity3()
	}

	var u, v mat.Dense
	svd.UTo(&u)
	svd.VTo(&v)

	var r mat.Dense
	r.Mul(&u, v.T())

	if mat.Det(&r) < 0 {
		for i := 0; i < 3; i++ {
			u.Set(i, 2, -u.At(i, 2))
		}
		r.Mul(&u, v.T())
	}

	return &r
}

func identity3() *mat.Dense {
	id := mat.NewDense(3, 3, nil)
	id.Set(0, 0, 1)
	id.Set(1, 1, 1)
	id.Set(2, 2, 1)
	return id
}

func apply(r *mat.Dense, v r3.Vector) r3.Vector {
	return r3.Vector{
		X: r.At(0, 0)*v.X + r.At(0, 1)*v.Y + r.At(0, 2)*v.Z,
		Y: r.At(1, 0)*v.X + r.At(1, 1)*v.Y + r.At(1, 2)*v.Z,
		Z: r.At(2, 0)*v.X + r.At(2, 1)*v.Y + r.At(2, 2)*v.Z,
	}
}
