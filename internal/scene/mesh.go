package scene

import (
	"math"

	"github.com/golang/geo/r3"
)

// icospherePoints returns the 12 vertices of a unit icosahedron scaled by
// radius, used as the seed point cloud for SoftBody's procedural blob —
// standing in for the original source's file-loaded bunny mesh (out of
// scope per the Non-goals: no mesh file format loader).
func icospherePoints(radius float64) []r3.Vector {
	t := (1.0 + math.Sqrt(5.0)) / 2.0
	raw := []r3.Vector{
		{X: -1, Y: t, Z: 0}, {X: 1, Y: t, Z: 0}, {X: -1, Y: -t, Z: 0}, {X: 1, Y: -t, Z: 0},
		{X: 0, Y: -1, Z: t}, {X: 0, Y: 1, Z: t}, {X: 0, Y: -1, Z: -t}, {X: 0, Y: 1, Z: -t},
		{X: t, Y: 0, Z: -1}, {X: t, Y: 0, Z: 1}, {X: -t, Y: 0, Z: -1}, {X: -t, Y: 0, Z: 1},
	}
	out := make([]r3.Vector, len(raw))
	for i, v := range raw {
		out[i] = v.Mul(radius / v.Norm())
	}
	return out
}

// tetraBlob builds a small tetrahedral point cloud: the 12 icosahedron
// vertices plus a centroid, tetrahedralized as a fan of tetrahedra from the
// centroid to each of the 20 icosahedron faces. Returns vertex positions,
// unique edge index pairs, and per-tetrahedron vertex index quads.
func tetraBlob(radius float64) (pos []r3.Vector, edges []int, tets []int) {
	verts := icospherePoints(radius)
	centroidIdx := len(verts)
	pos = append(append([]r3.Vector(nil), verts...), r3.Vector{})

	faces := icosahedronFaces()
	seen := make(map[[2]int]bool)
	addEdge := func(a, b int) {
		key := [2]int{a, b}
		if a > b {
			key = [2]int{b, a}
		}
		if seen[key] {
			return
		}
		seen[key] = true
		edges = append(edges, key[0], key[1])
	}

	for _, f := range faces {
		a, b, c := f[0], f[1], f[2]
		tets = append(tets, centroidIdx, a, b, c)
		addEdge(a, b)
		addEdge(b, c)
		addEdge(a, c)
		addEdge(centroidIdx, a)
		addEdge(centroidIdx, b)
		addEdge(centroidIdx, c)
	}

	return pos, edges, tets
}

// icosahedronFaces returns the 20 triangular faces of the standard
// 12-vertex icosahedron in icospherePoints' vertex order.
func icosahedronFaces() [][3]int {
	return [][3]int{
		{0, 11, 5}, {0, 5, 1}, {0, 1, 7}, {0, 7, 10}, {0, 10, 11},
		{1, 5, 9}, {5, 11, 4}, {11, 10, 2}, {10, 7, 6}, {7, 1, 8},
		{3, 9, 4}, {3, 4, 2}, {3, 2, 6}, {3, 6, 8}, {3, 8, 9},
		{4, 9, 5}, {2, 4, 11}, {6, 2, 10}, {8, 6, 7}, {9, 8, 1},
	}
}

// cubeGridVertices returns the 8 corners of an axis-aligned cube with half
// width w, in the original source's RigidMesh::createCube corner ordering.
func cubeGridVertices(w float64) []r3.Vector {
	return []r3.Vector{
		{X: -w, Y: -w, Z: -w}, {X: w, Y: -w, Z: -w},
		{X: -w, Y: w, Z: -w}, {X: w, Y: w, Z: -w},
		{X: -w, Y: -w, Z: w}, {X: w, Y: -w, Z: w},
		{X: -w, Y: w, Z: w}, {X: w, Y: w, Z: w},
	}
}

// cubeEdges returns the 12 unique edges of the cube corner layout produced
// by cubeGridVertices, as index pairs.
func cubeEdges() [][2]int {
	return [][2]int{
		{0, 1}, {0, 2}, {1, 3}, {2, 3}, // back face
		{4, 5}, {4, 6}, {5, 7}, {6, 7}, // front face
		{0, 4}, {1, 5}, {2, 6}, {3, 7}, // connecting edges
	}
}

// surfacePoints subdivides each of the cube's 6 faces into a
// resolution×resolution grid of cosmetic render-only points, interpolated
// from the 8 corner positions. It is not part of the physics particle set:
// the original's RigidMesh::createCube subdivides purely for shading
// fidelity while shape matching only binds the 8 corners.
func surfacePoints(corners []r3.Vector, resolution int) []r3.Vector {
	if resolution < 1 {
		resolution = 1
	}
	lerp := func(a, b r3.Vector, t float64) r3.Vector {
		return a.Add(b.Sub(a).Mul(t))
	}

	type faceCorners struct{ a, b, c, d int }
	faces := []faceCorners{
		{0, 1, 3, 2}, // back
		{4, 5, 7, 6}, // front
		{0, 2, 6, 4}, // left
		{1, 3, 7, 5}, // right
		{0, 1, 5, 4}, // bottom
		{2, 3, 7, 6}, // top
	}

	var pts []r3.Vector
	for _, f := range faces {
		a, b, c, d := corners[f.a], corners[f.b], corners[f.c], corners[f.d]
		for i := 0; i <= resolution; i++ {
			ti := float64(i) / float64(resolution)
			left := lerp(a, d, ti)
			right := lerp(b, c, ti)
			for j := 0; j <= resolution; j++ {
				tj := float64(j) / float64(resolution)
				pts = append(pts, lerp(left, right, tj))
			}
		}
	}
	return pts
}
