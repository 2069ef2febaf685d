package unit

import (
	"fmt"
	"sync"

	"github.com/hupe1980/quanta/errdefs"
	"github.com/hupe1980/quanta/internal/telemetry"
)

// BaseUnit is the unit of a registered base quantity.
type BaseUnit struct {
	quantity      string
	name          string
	symbol        string
	index         int
	dimensionless bool
}

// Identifier returns the unit symbol.
func (b *BaseUnit) Identifier() string { return b.symbol }

// Definition returns the unit symbol.
func (b *BaseUnit) Definition() string { return b.symbol }

func (b *BaseUnit) String() string { return b.symbol }

// Name returns the long unit name, e.g. "meter".
func (b *BaseUnit) Name() string { return b.name }

// Symbol returns the unit symbol, e.g. "m".
func (b *BaseUnit) Symbol() string { return b.symbol }

// Quantity returns the name of the base quantity, e.g. "Length".
func (b *BaseUnit) Quantity() string { return b.quantity }

// Index returns the registry slot of the base quantity. Slots are assigned
// in registration order and never change.
func (b *BaseUnit) Index() int { return b.index }

// IsDimensionless reports whether the base quantity is dimensionless
// (radian, steradian). Such factors never affect convertibility.
func (b *BaseUnit) IsDimensionless() bool { return b.dimensionless }

func (b *BaseUnit) canonical() (form, bool) {
	return form{factors: []Factor{{Base: b, Power: 1}}, scale: 1}, true
}

// baseRegistry is the append-only table of base quantities.
type baseRegistry struct {
	mu         sync.RWMutex
	byQuantity map[string]*BaseUnit
	bySymbol   map[string]*BaseUnit
	units      []*BaseUnit
}

var bases = &baseRegistry{
	byQuantity: make(map[string]*BaseUnit),
	bySymbol:   make(map[string]*BaseUnit),
}

func (r *baseRegistry) add(quantity, name, symbol string, dimensionless bool) (*BaseUnit, error) {
	if quantity == "" || name == "" || symbol == "" {
		return nil, fmt.Errorf("%w: base unit requires quantity, name and symbol", errdefs.ErrIllegalOperation)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if b, ok := r.byQuantity[quantity]; ok {
		if b.name == name && b.symbol == symbol && b.dimensionless == dimensionless {
			return b, nil
		}
		return nil, fmt.Errorf("%w: quantity %q already has base unit %q", errdefs.ErrIllegalOperation, quantity, b.name)
	}
	if b, ok := r.bySymbol[symbol]; ok {
		return nil, fmt.Errorf("%w: symbol %q already denotes %q", errdefs.ErrIllegalOperation, symbol, b.quantity)
	}

	b := &BaseUnit{
		quantity:      quantity,
		name:          name,
		symbol:        symbol,
		index:         len(r.units),
		dimensionless: dimensionless,
	}
	r.units = append(r.units, b)
	r.byQuantity[quantity] = b
	r.bySymbol[symbol] = b

	telemetry.Logger().Debug("registered base unit", "quantity", quantity, "unit", name, "index", b.index)
	return b, nil
}

// AddBaseUnit registers a new base quantity with its unit. Registering the
// same quantity again with the same name and symbol returns the existing
// unit.
func AddBaseUnit(quantity, name, symbol string) (*BaseUnit, error) {
	return bases.add(quantity, name, symbol, false)
}

// AddDimensionlessBaseUnit registers a dimensionless base quantity such as
// an angle.
func AddDimensionlessBaseUnit(quantity, name, symbol string) (*BaseUnit, error) {
	return bases.add(quantity, name, symbol, true)
}

// BaseUnits returns a snapshot of all registered base units in registry
// order.
func BaseUnits() []*BaseUnit {
	bases.mu.RLock()
	defer bases.mu.RUnlock()
	return append([]*BaseUnit(nil), bases.units...)
}

// BaseUnitCount returns the number of registered base quantities.
func BaseUnitCount() int {
	bases.mu.RLock()
	defer bases.mu.RUnlock()
	return len(bases.units)
}

// BaseUnitFor returns the base unit of the named quantity.
func BaseUnitFor(quantity string) (*BaseUnit, bool) {
	bases.mu.RLock()
	defer bases.mu.RUnlock()
	b, ok := bases.byQuantity[quantity]
	return b, ok
}

func mustBase(quantity, name, symbol string, dimensionless bool) *BaseUnit {
	b, err := bases.add(quantity, name, symbol, dimensionless)
	if err != nil {
		panic(err)
	}
	return b
}
