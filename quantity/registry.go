package quantity

import (
	"fmt"
	"sort"
	"sync"

	"github.com/hupe1980/quanta/errdefs"
	"github.com/hupe1980/quanta/internal/telemetry"
	"github.com/hupe1980/quanta/unit"
)

// Quantity is a named physical quantity with its default unit.
type Quantity struct {
	name string
	unit unit.Unit
	dim  Dimension
}

// Name returns the quantity name.
func (q *Quantity) Name() string { return q.name }

// Unit returns the default unit.
func (q *Quantity) Unit() unit.Unit { return q.unit }

// Dimension returns the dimension of the default unit.
func (q *Quantity) Dimension() Dimension { return q.dim }

// Accepts reports whether values in u can be expressed in this quantity.
func (q *Quantity) Accepts(u unit.Unit) bool {
	return unit.IsConvertible(q.unit, u)
}

func (q *Quantity) String() string {
	return q.name + " [" + q.unit.String() + "]"
}

var (
	mu         sync.RWMutex
	quantities = map[string]*Quantity{}
)

// Predefined quantities.
var (
	Length       = mustRegister("Length", "m")
	Mass         = mustRegister("Mass", "kg")
	Time         = mustRegister("Time", "s")
	Temperature  = mustRegister("Temperature", "K")
	Speed        = mustRegister("Speed", "m/s")
	Acceleration = mustRegister("Acceleration", "m/s^2")
	Force        = mustRegister("Force", "N")
	Pressure     = mustRegister("Pressure", "Pa")
	Energy       = mustRegister("Energy", "J")
	Power        = mustRegister("Power", "W")
	Frequency    = mustRegister("Frequency", "Hz")
	Angle        = mustRegister("Angle", "rad")
)

// Register adds a named quantity whose default unit is given by a unit
// specification (see unit.Parse). Registering an existing name with an
// equal unit returns the existing quantity.
func Register(name, unitSpec string) (*Quantity, error) {
	u, err := unit.Parse(unitSpec)
	if err != nil {
		return nil, fmt.Errorf("quantity %q: %w", name, err)
	}
	return RegisterUnit(name, u)
}

// RegisterUnit is Register with an already resolved unit.
func RegisterUnit(name string, u unit.Unit) (*Quantity, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: quantity requires a name", errdefs.ErrIllegalOperation)
	}
	dim, ok := DimensionOf(u)
	if !ok {
		return nil, fmt.Errorf("%w: quantity %q requires a concrete unit", errdefs.ErrIllegalOperation, name)
	}

	mu.Lock()
	defer mu.Unlock()

	if q, ok := quantities[name]; ok {
		if unit.Equal(q.unit, u) {
			return q, nil
		}
		return nil, &errdefs.UnitMismatchError{From: u.String(), To: q.unit.String()}
	}

	q := &Quantity{name: name, unit: u, dim: dim}
	quantities[name] = q
	telemetry.Logger().Debug("registered quantity", "name", name, "unit", u.String(), "dimension", dim.String())
	return q, nil
}

func mustRegister(name, spec string) *Quantity {
	q, err := Register(name, spec)
	if err != nil {
		panic(err)
	}
	return q
}

// Lookup returns the named quantity.
func Lookup(name string) (*Quantity, error) {
	mu.RLock()
	defer mu.RUnlock()
	q, ok := quantities[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", errdefs.ErrUnknownQuantity, name)
	}
	return q, nil
}

// Matching returns the registered quantities whose dimension equals d,
// sorted by name.
func Matching(d Dimension) []*Quantity {
	mu.RLock()
	defer mu.RUnlock()
	var out []*Quantity
	for _, q := range quantities {
		if Equal(q.dim, d) {
			out = append(out, q)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].name < out[j].name })
	return out
}
