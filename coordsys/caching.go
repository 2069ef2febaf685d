package coordsys

import (
	"slices"
	"sync"

	"github.com/hupe1980/quanta/internal/conv"
	"github.com/hupe1980/quanta/realtype"
	"github.com/hupe1980/quanta/unit"
)

type memo struct {
	in  [][]float64
	out [][]float64
}

func (m *memo) lookup(values [][]float64) ([][]float64, bool) {
	if m.in == nil || len(m.in) != len(values) {
		return nil, false
	}
	for i := range values {
		if !slices.Equal(m.in[i], values[i]) {
			return nil, false
		}
	}
	return conv.Clone(m.out), true
}

// Caching remembers the most recent batch in each direction and answers a
// repeated identical batch without calling the wrapped system. Renderers
// that transform the same grid every frame are the typical caller.
type Caching struct {
	inner CoordinateSystem

	mu   sync.Mutex
	to   memo
	from memo
}

// NewCaching wraps inner.
func NewCaching(inner CoordinateSystem) *Caching {
	return &Caching{inner: inner}
}

func (c *Caching) Reference() *realtype.TupleType { return c.inner.Reference() }
func (c *Caching) Dimension() int                 { return c.inner.Dimension() }
func (c *Caching) Units() []unit.Unit             { return c.inner.Units() }

// Unwrap returns the wrapped system.
func (c *Caching) Unwrap() CoordinateSystem { return c.inner }

func (c *Caching) ToReference(values [][]float64) ([][]float64, error) {
	return c.run(&c.to, values, c.inner.ToReference)
}

func (c *Caching) FromReference(values [][]float64) ([][]float64, error) {
	return c.run(&c.from, values, c.inner.FromReference)
}

func (c *Caching) run(m *memo, values [][]float64, fn func([][]float64) ([][]float64, error)) ([][]float64, error) {
	c.mu.Lock()
	if out, ok := m.lookup(values); ok {
		c.mu.Unlock()
		return out, nil
	}
	c.mu.Unlock()

	out, err := fn(values)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	m.in = conv.Clone(values)
	m.out = conv.Clone(out)
	c.mu.Unlock()
	return out, nil
}

func (c *Caching) Equal(other CoordinateSystem) bool {
	return c.inner.Equal(unwrap(other))
}
