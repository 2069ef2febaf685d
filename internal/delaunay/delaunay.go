// Package delaunay builds Delaunay triangulations of scattered points in two
// and three dimensions and answers containment and nearest-vertex queries.
//
// Construction uses incremental Bowyer-Watson insertion inside an enclosing
// super-simplex. Queries walk from simplex to neighbouring simplex towards
// the target, so a caller that keeps the last result as a hint pays close to
// constant time for spatially coherent batches.
//
// A Triangulation is immutable once New returns and safe for concurrent use.
package delaunay

import (
	"errors"
	"fmt"
	"math"
	"slices"

	"github.com/hupe1980/quanta/errdefs"
	"gonum.org/v1/gonum/mat"
)

// Tolerance is the barycentric slack accepted when deciding containment.
const Tolerance = 1e-9

// superScale sizes the super-simplex relative to the point spread.
const superScale = 100

// Triangulation is a simplicial complex over a point set.
type Triangulation struct {
	dim    int
	points [][]float64 // point-major

	simplices [][]int // dim+1 vertex ids each
	neighbors [][]int // neighbors[s][k] is across the face opposite vertex k, or -1
	inverse   [][]float64
	adjacent  [][]int // vertex adjacency
	incident  []int   // one simplex per vertex, or -1
}

type sphere struct {
	vertices []int
	center   []float64
	r2       float64
	ok       bool
}

type faceKey [3]int

func keyOf(face []int) faceKey {
	k := faceKey{-1, -1, -1}
	copy(k[:], face)
	slices.Sort(k[:len(face)])
	return k
}

// New triangulates points, given point-major as points[i][axis]. All points
// must share a dimension of 2 or 3, be finite and be distinct.
func New(points [][]float64) (*Triangulation, error) {
	n := len(points)
	if n == 0 {
		return nil, fmt.Errorf("%w: no points to triangulate", errdefs.ErrInvalidGrid)
	}
	dim := len(points[0])
	if dim != 2 && dim != 3 {
		return nil, errdefs.NewDimensionError("delaunay", 2, dim)
	}
	if n < dim+1 {
		return nil, fmt.Errorf("%w: %d points cannot span %d dimensions", errdefs.ErrInvalidGrid, n, dim)
	}

	seen := make(map[[3]float64]int, n)
	for i, p := range points {
		if len(p) != dim {
			return nil, errdefs.NewDimensionError("delaunay point", dim, len(p))
		}
		var key [3]float64
		for j, v := range p {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, fmt.Errorf("%w: point %d is not finite", errdefs.ErrInvalidGrid, i)
			}
			key[j] = v
		}
		if first, dup := seen[key]; dup {
			return nil, fmt.Errorf("%w: points %d and %d coincide", errdefs.ErrInvalidGrid, first, i)
		}
		seen[key] = i
	}

	verts := make([][]float64, n, n+dim+1)
	for i, p := range points {
		verts[i] = slices.Clone(p)
	}
	verts = append(verts, superSimplex(verts[:n], dim)...)

	super := make([]int, dim+1)
	for k := range super {
		super[k] = n + k
	}
	live := []*sphere{circumsphere(verts, super)}

	for i := 0; i < n; i++ {
		live = insert(verts, live, i, dim)
	}

	t := &Triangulation{dim: dim, points: verts[:n]}
	t.adjacent = adjacency(live, n)
	for _, s := range live {
		if slices.ContainsFunc(s.vertices, func(v int) bool { return v >= n }) {
			continue
		}
		inv, ok := barycentricInverse(verts, s.vertices, dim)
		if !ok {
			continue
		}
		t.simplices = append(t.simplices, s.vertices)
		t.inverse = append(t.inverse, inv)
	}
	if len(t.simplices) == 0 {
		return nil, fmt.Errorf("%w: points are degenerate", errdefs.ErrInvalidGrid)
	}

	t.link(n)
	return t, nil
}

func superSimplex(points [][]float64, dim int) [][]float64 {
	lo := slices.Clone(points[0])
	hi := slices.Clone(points[0])
	for _, p := range points[1:] {
		for j, v := range p {
			lo[j] = math.Min(lo[j], v)
			hi[j] = math.Max(hi[j], v)
		}
	}
	span := 0.0
	for j := range lo {
		span = math.Max(span, hi[j]-lo[j])
	}
	if span == 0 {
		span = 1
	}

	// The simplex {x >= a, sum(x-a) <= side} contains the padded box.
	pad := superScale * span
	side := float64(dim) * (span + 2*pad) * 2
	out := make([][]float64, dim+1)
	out[0] = make([]float64, dim)
	for j := range out[0] {
		out[0][j] = lo[j] - pad
	}
	for k := 1; k <= dim; k++ {
		v := slices.Clone(out[0])
		v[k-1] += side
		out[k] = v
	}
	return out
}

// insert adds point p, replacing every simplex whose circumsphere holds it
// with the fan from p to the boundary of the cavity.
func insert(verts [][]float64, live []*sphere, p, dim int) []*sphere {
	type face struct {
		vertices []int
		count    int
	}
	faces := make(map[faceKey]*face)
	order := make([]faceKey, 0)

	kept := live[:0:0]
	for _, s := range live {
		if !s.contains(verts[p]) {
			kept = append(kept, s)
			continue
		}
		for k := 0; k <= dim; k++ {
			f := make([]int, 0, dim)
			for j, v := range s.vertices {
				if j != k {
					f = append(f, v)
				}
			}
			key := keyOf(f)
			if e, ok := faces[key]; ok {
				e.count++
				continue
			}
			faces[key] = &face{vertices: f, count: 1}
			order = append(order, key)
		}
	}

	for _, key := range order {
		f := faces[key]
		if f.count != 1 {
			continue
		}
		kept = append(kept, circumsphere(verts, append(slices.Clone(f.vertices), p)))
	}
	return kept
}

func (s *sphere) contains(p []float64) bool {
	if !s.ok {
		return false
	}
	d2 := 0.0
	for j, c := range s.center {
		d := p[j] - c
		d2 += d * d
	}
	return d2 < s.r2*(1-1e-12)
}

// circumsphere solves 2(v_i - v_0)·c = |v_i|² - |v_0|² for the centre.
func circumsphere(verts [][]float64, ids []int) *sphere {
	dim := len(ids) - 1
	v0 := verts[ids[0]]
	a := mat.NewDense(dim, dim, nil)
	b := mat.NewVecDense(dim, nil)
	for i := 1; i <= dim; i++ {
		vi := verts[ids[i]]
		rhs := 0.0
		for j := 0; j < dim; j++ {
			a.Set(i-1, j, 2*(vi[j]-v0[j]))
			rhs += vi[j]*vi[j] - v0[j]*v0[j]
		}
		b.SetVec(i-1, rhs)
	}

	s := &sphere{vertices: ids}
	var c mat.VecDense
	if err := c.SolveVec(a, b); err != nil {
		// Ill-conditioned systems still yield a usable centre.
		var cond mat.Condition
		if !errors.As(err, &cond) || math.IsInf(float64(cond), 1) || c.Len() != dim {
			return s
		}
	}
	s.center = make([]float64, dim)
	r2 := 0.0
	for j := range s.center {
		s.center[j] = c.AtVec(j)
		d := v0[j] - s.center[j]
		r2 += d * d
	}
	if math.IsNaN(r2) || math.IsInf(r2, 0) {
		return s
	}
	s.r2 = r2
	s.ok = true
	return s
}

// barycentricInverse returns the row-major inverse of the edge matrix
// T = [v_1-v_0 ... v_d-v_0], or false for a flat simplex.
func barycentricInverse(verts [][]float64, ids []int, dim int) ([]float64, bool) {
	v0 := verts[ids[0]]
	t := mat.NewDense(dim, dim, nil)
	for k := 1; k <= dim; k++ {
		vk := verts[ids[k]]
		for j := 0; j < dim; j++ {
			t.Set(j, k-1, vk[j]-v0[j])
		}
	}
	if math.Abs(mat.Det(t)) < 1e-14 {
		return nil, false
	}
	var inv mat.Dense
	if err := inv.Inverse(t); err != nil {
		return nil, false
	}
	return slices.Clone(inv.RawMatrix().Data), true
}

// adjacency collects the edges between real vertices. Simplices touching
// the super-simplex still contribute, so hull edges are never lost.
func adjacency(live []*sphere, n int) [][]int {
	sets := make([]map[int]struct{}, n)
	for _, s := range live {
		for _, v := range s.vertices {
			if v >= n {
				continue
			}
			if sets[v] == nil {
				sets[v] = make(map[int]struct{})
			}
			for _, w := range s.vertices {
				if w != v && w < n {
					sets[v][w] = struct{}{}
				}
			}
		}
	}
	out := make([][]int, n)
	for v, set := range sets {
		list := make([]int, 0, len(set))
		for w := range set {
			list = append(list, w)
		}
		slices.Sort(list)
		out[v] = list
	}
	return out
}

// link computes simplex neighbours and one incident simplex per vertex.
func (t *Triangulation) link(n int) {
	type half struct{ s, k int }
	open := make(map[faceKey]half)

	t.neighbors = make([][]int, len(t.simplices))
	t.incident = make([]int, n)
	for i := range t.incident {
		t.incident[i] = -1
	}

	for s, vs := range t.simplices {
		nb := make([]int, len(vs))
		for k := range nb {
			nb[k] = -1
		}
		t.neighbors[s] = nb

		for k := range vs {
			f := make([]int, 0, len(vs)-1)
			for j, v := range vs {
				if j != k {
					f = append(f, v)
				}
			}
			key := keyOf(f)
			if other, ok := open[key]; ok {
				t.neighbors[s][k] = other.s
				t.neighbors[other.s][other.k] = s
				delete(open, key)
			} else {
				open[key] = half{s: s, k: k}
			}
		}

		for _, v := range vs {
			if t.incident[v] < 0 {
				t.incident[v] = s
			}
		}
	}
}

// Dimension returns the spatial dimension.
func (t *Triangulation) Dimension() int { return t.dim }

// Len returns the number of simplices.
func (t *Triangulation) Len() int { return len(t.simplices) }

// Vertices returns a copy of the vertex ids of simplex s.
func (t *Triangulation) Vertices(s int) []int { return slices.Clone(t.simplices[s]) }

// Neighbors returns a copy of the neighbours of simplex s.
func (t *Triangulation) Neighbors(s int) []int { return slices.Clone(t.neighbors[s]) }

// Adjacent returns the vertices sharing an edge with v.
func (t *Triangulation) Adjacent(v int) []int { return slices.Clone(t.adjacent[v]) }

// Incident returns a simplex containing vertex v, or -1 when v is not part
// of any simplex.
func (t *Triangulation) Incident(v int) int { return t.incident[v] }

// Barycentric writes the barycentric coordinates of p with respect to
// simplex s into out, which must have dim+1 entries.
func (t *Triangulation) Barycentric(s int, p, out []float64) {
	v0 := t.points[t.simplices[s][0]]
	inv := t.inverse[s]
	d := t.dim
	sum := 0.0
	for i := 0; i < d; i++ {
		l := 0.0
		for j := 0; j < d; j++ {
			l += inv[i*d+j] * (p[j] - v0[j])
		}
		out[i+1] = l
		sum += l
	}
	out[0] = 1 - sum
}

// Locate returns the simplex containing p and the barycentric weights of
// its vertices, or -1 and nil when p lies outside the triangulation. hint
// is a simplex to start walking from; an invalid hint starts at 0.
func (t *Triangulation) Locate(p []float64, hint int) (int, []float64) {
	if len(p) != t.dim {
		return -1, nil
	}
	for _, v := range p {
		if math.IsNaN(v) {
			return -1, nil
		}
	}
	if hint < 0 || hint >= len(t.simplices) {
		hint = 0
	}

	bary := make([]float64, t.dim+1)
	s := hint
	for steps := 0; steps <= len(t.simplices); steps++ {
		t.Barycentric(s, p, bary)
		k := argmin(bary)
		if bary[k] >= -Tolerance {
			return s, normalize(bary)
		}
		next := t.neighbors[s][k]
		if next < 0 {
			break
		}
		s = next
	}

	// The walk stops at the hull or cycles on near-degenerate input; a scan
	// settles both cases.
	for s = range t.simplices {
		t.Barycentric(s, p, bary)
		if bary[argmin(bary)] >= -Tolerance {
			return s, normalize(bary)
		}
	}
	return -1, nil
}

// Nearest returns the vertex closest to p and the simplex containing p,
// both -1 when p lies outside the triangulation. It locates the containing
// simplex and then walks the vertex adjacency graph downhill.
func (t *Triangulation) Nearest(p []float64, hint int) (int, int) {
	s, _ := t.Locate(p, hint)
	if s < 0 {
		return -1, -1
	}

	best, bestD := -1, math.Inf(1)
	for _, v := range t.simplices[s] {
		if d := t.dist2(v, p); d < bestD {
			best, bestD = v, d
		}
	}
	for improved := true; improved; {
		improved = false
		for _, w := range t.adjacent[best] {
			if d := t.dist2(w, p); d < bestD {
				best, bestD = w, d
				improved = true
			}
		}
	}
	return best, s
}

func (t *Triangulation) dist2(v int, p []float64) float64 {
	d2 := 0.0
	for j, x := range t.points[v] {
		d := x - p[j]
		d2 += d * d
	}
	return d2
}

func argmin(v []float64) int {
	k := 0
	for i := 1; i < len(v); i++ {
		if v[i] < v[k] {
			k = i
		}
	}
	return k
}

// normalize clamps slightly negative weights to zero and rescales to a sum
// of one.
func normalize(w []float64) []float64 {
	out := make([]float64, len(w))
	sum := 0.0
	for i, v := range w {
		if v < 0 {
			v = 0
		}
		out[i] = v
		sum += v
	}
	for i := range out {
		out[i] /= sum
	}
	return out
}
