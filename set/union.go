package set

import (
	"fmt"
	"sort"
	"time"

	"github.com/hupe1980/quanta/errdefs"
	"github.com/hupe1980/quanta/internal/conv"
)

// Union concatenates sets of one dimension and manifold dimension. Sample
// indices run through the members in order.
type Union struct {
	base
	members []Set
	offsets []int // first flat index of each member
}

// NewUnion builds the union of sets. Nested unions are flattened. Without
// WithType the union takes the first member's type, coordinate system and
// units.
func NewUnion(sets []Set, opts ...Option) (s *Union, err error) {
	start := time.Now()
	length := 0
	defer func() { recordBuild("union", length, start, err) }()

	var members []Set
	for k, m := range sets {
		switch m := m.(type) {
		case nil:
			return nil, fmt.Errorf("%w: union member %d is nil", errdefs.ErrIllegalOperation, k)
		case *Union:
			members = append(members, m.members...)
		default:
			members = append(members, m)
		}
	}
	if len(members) == 0 {
		return nil, errdefs.NewDimensionError("union", 1, 0)
	}

	head := members[0]
	offsets := make([]int, len(members))
	for k, m := range members {
		if m.Dimension() != head.Dimension() {
			return nil, errdefs.NewDimensionError("union member", head.Dimension(), m.Dimension())
		}
		if m.ManifoldDimension() != head.ManifoldDimension() {
			return nil, errdefs.NewDimensionError("union member manifold", head.ManifoldDimension(), m.ManifoldDimension())
		}
		offsets[k] = length
		length += m.Length()
	}

	o := applyOptions(opts)
	inherit := o.typ == nil
	if inherit {
		o.typ = head.Type()
	}
	explicitUnits := o.units != nil
	b, err := newBase("union", head.Dimension(), head.ManifoldDimension(), length, o)
	if err != nil {
		return nil, err
	}
	if inherit && o.cs == nil {
		b.cs = head.CoordinateSystem()
	}
	if inherit && !explicitUnits {
		b.units = head.Units()
	}

	u := &Union{base: b, members: members, offsets: offsets}
	if err := u.scan(u.Samples()); err != nil {
		return nil, err
	}
	return u, nil
}

// distribute applies fn to every member and unions the results.
func (u *Union) distribute(fn func(Set) (Set, error)) (Set, error) {
	out := make([]Set, len(u.members))
	for k, m := range u.members {
		s, err := fn(m)
		if err != nil {
			return nil, err
		}
		out[k] = s
	}
	return NewUnion(out)
}

// Members returns the member sets.
func (u *Union) Members() []Set { return append([]Set(nil), u.members...) }

// Samples returns the members' samples one after another.
func (u *Union) Samples() [][]float64 {
	out := make([][]float64, u.dim)
	for j := range out {
		out[j] = make([]float64, 0, u.length)
	}
	for _, m := range u.members {
		for j, axis := range m.Samples() {
			out[j] = append(out[j], axis...)
		}
	}
	return out
}

func (u *Union) Sample(i int) ([]float64, error) { return sample(u, i) }

// member returns the member holding flat index i.
func (u *Union) member(i int) int {
	return sort.SearchInts(u.offsets, i+1) - 1
}

func (u *Union) IndexToValue(index []int) [][]float64 {
	out := alloc(u.dim, len(index))
	local := make([][]int, len(u.members))
	pos := make([][]int, len(u.members))
	for q, i := range index {
		if i < 0 || i >= u.length {
			nanColumn(out, q)
			continue
		}
		k := u.member(i)
		local[k] = append(local[k], i-u.offsets[k])
		pos[k] = append(pos[k], q)
	}
	for k, m := range u.members {
		if len(local[k]) == 0 {
			continue
		}
		v := m.IndexToValue(local[k])
		for r, q := range pos[k] {
			for j := range out {
				out[j][q] = v[j][r]
			}
		}
	}
	return out
}

// ValueToIndex returns the nearest of the members' answers. Ties go to the
// earlier member.
func (u *Union) ValueToIndex(values [][]float64) ([]int, error) {
	n, err := conv.CheckShape(u.kind+" query", values, u.dim)
	if err != nil {
		return nil, err
	}
	out := make([]int, n)
	best := make([]float64, n)
	for q := range out {
		out[q] = -1
	}
	for k, m := range u.members {
		local, err := m.ValueToIndex(values)
		if err != nil {
			return nil, err
		}
		found := m.IndexToValue(local)
		for q, i := range local {
			if i < 0 {
				continue
			}
			d := 0.0
			for j := range values {
				e := found[j][q] - values[j][q]
				d += e * e
			}
			if out[q] < 0 || d < best[q] {
				out[q] = i + u.offsets[k]
				best[q] = d
			}
		}
	}
	return out, nil
}

// ValueToInterp answers each query from the first member that contains it.
func (u *Union) ValueToInterp(values [][]float64) ([][]int, [][]float64, error) {
	n, err := conv.CheckShape(u.kind+" query", values, u.dim)
	if err != nil {
		return nil, nil, err
	}
	indices := make([][]int, n)
	weights := make([][]float64, n)
	for k, m := range u.members {
		li, lw, err := m.ValueToInterp(values)
		if err != nil {
			return nil, nil, err
		}
		for q, row := range li {
			if indices[q] != nil || row == nil {
				continue
			}
			for r := range row {
				row[r] += u.offsets[k]
			}
			indices[q], weights[q] = row, lw[q]
		}
	}
	return indices, weights, nil
}

// Neighbors returns the neighbours of sample i within its member.
func (u *Union) Neighbors(i int) ([]int, error) {
	if err := u.checkIndex(i); err != nil {
		return nil, err
	}
	k := u.member(i)
	nb, err := u.members[k].Neighbors(i - u.offsets[k])
	if err != nil {
		return nil, err
	}
	for r := range nb {
		nb[r] += u.offsets[k]
	}
	return nb, nil
}
