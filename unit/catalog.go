package unit

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"sync"

	"github.com/hupe1980/quanta/errdefs"
	"github.com/hupe1980/quanta/internal/telemetry"
)

// SI base units and the dimensionless angle bases.
var (
	Meter     = mustBase("Length", "meter", "m", false)
	Kilogram  = mustBase("Mass", "kilogram", "kg", false)
	Second    = mustBase("Time", "second", "s", false)
	Ampere    = mustBase("ElectricCurrent", "ampere", "A", false)
	Kelvin    = mustBase("Temperature", "kelvin", "K", false)
	Mole      = mustBase("AmountOfSubstance", "mole", "mol", false)
	Candela   = mustBase("LuminousIntensity", "candela", "cd", false)
	Radian    = mustBase("Angle", "radian", "rad", true)
	Steradian = mustBase("SolidAngle", "steradian", "sr", true)
)

var (
	// Dimensionless is the unit of pure numbers.
	Dimensionless Unit = &DerivedUnit{}

	// Promiscuous is the wildcard unit.
	Promiscuous Unit = &PromiscuousUnit{}

	// Degree is the angular degree, pi/180 radian.
	Degree = Named(mustScale(Radian, math.Pi/180), "deg")

	// Celsius is kelvin shifted by 273.15.
	Celsius = Named(mustShift(Kelvin, 273.15), "degC")

	// Fahrenheit is 5/9 kelvin shifted so that 32 degF is 273.15 K.
	Fahrenheit = Named(mustShift(mustScale(Kelvin, 5.0/9.0), 459.67), "degF")
)

// Prefix is an SI multiplier prefix.
type Prefix struct {
	Symbol string
	Factor float64
}

// Prefixes lists the SI prefixes, longest symbols first.
var Prefixes = []Prefix{
	{"da", 1e1},
	{"Y", 1e24}, {"Z", 1e21}, {"E", 1e18}, {"P", 1e15}, {"T", 1e12},
	{"G", 1e9}, {"M", 1e6}, {"k", 1e3}, {"h", 1e2},
	{"d", 1e-1}, {"c", 1e-2}, {"m", 1e-3}, {"u", 1e-6}, {"µ", 1e-6},
	{"n", 1e-9}, {"p", 1e-12}, {"f", 1e-15}, {"a", 1e-18}, {"z", 1e-21}, {"y", 1e-24},
}

type catalog struct {
	mu    sync.RWMutex
	units map[string]Unit
}

var registry = &catalog{units: make(map[string]Unit)}

func init() {
	for _, b := range []*BaseUnit{Meter, Kilogram, Second, Ampere, Kelvin, Mole, Candela, Radian, Steradian} {
		mustRegister(b.symbol, b)
		mustRegister(b.name, b)
	}

	newton := Divide(Multiply(Kilogram, Meter), Pow(Second, 2))
	pascal := Divide(newton, Pow(Meter, 2))
	joule := Multiply(newton, Meter)
	watt := Divide(joule, Second)
	hertz := Pow(Second, -1)

	for _, e := range []struct {
		names []string
		u     Unit
	}{
		{[]string{"g", "gram"}, mustScale(Kilogram, 1e-3)},
		{[]string{"N", "newton"}, newton},
		{[]string{"Pa", "pascal"}, pascal},
		{[]string{"hPa", "hectopascal"}, mustScale(pascal, 100)},
		{[]string{"J", "joule"}, joule},
		{[]string{"W", "watt"}, watt},
		{[]string{"Hz", "hertz"}, hertz},
		{[]string{"deg", "degree", "degrees"}, Degree},
		{[]string{"degC", "celsius", "Celsius"}, Celsius},
		{[]string{"degF", "fahrenheit", "Fahrenheit"}, Fahrenheit},
		{[]string{"min", "minute"}, mustScale(Second, 60)},
		{[]string{"h", "hr", "hour"}, mustScale(Second, 3600)},
		{[]string{"d", "day"}, mustScale(Second, 86400)},
		{[]string{"kn", "knot"}, mustScale(Divide(Meter, Second), 1852.0/3600.0)},
		{[]string{"%", "percent"}, mustScale(Dimensionless, 0.01)},
		{[]string{"1"}, Dimensionless},
	} {
		named, err := Register(e.names[0], e.u)
		if err != nil {
			panic(err)
		}
		for _, alias := range e.names[1:] {
			mustRegister(alias, named)
		}
	}
}

// Register adds a named unit to the catalog. Registering a name again
// with an equal unit returns the existing entry; a different unit under an
// existing name is rejected.
func Register(name string, u Unit) (Unit, error) {
	if name == "" || u == nil {
		return nil, fmt.Errorf("%w: unit registration requires a name and a unit", errdefs.ErrIllegalOperation)
	}

	registry.mu.Lock()
	defer registry.mu.Unlock()

	if existing, ok := registry.units[name]; ok {
		if Equal(existing, u) {
			return existing, nil
		}
		return nil, fmt.Errorf("%w: unit %q already registered as %s", errdefs.ErrIllegalOperation, name, existing.Definition())
	}

	named := u
	if _, isBase := u.(*BaseUnit); !isBase && u.Identifier() == "" {
		named = Named(u, name)
	}
	registry.units[name] = named

	telemetry.Logger().Debug("registered unit", "name", name, "definition", u.Definition())
	return named, nil
}

func mustRegister(name string, u Unit) {
	if _, err := Register(name, u); err != nil {
		panic(err)
	}
}

// Lookup resolves a unit name. Exact catalog names take precedence over
// SI-prefixed names ("min" is minute, "mm" is millimeter).
func Lookup(name string) (Unit, error) {
	registry.mu.RLock()
	u, ok := registry.units[name]
	registry.mu.RUnlock()
	if ok {
		return u, nil
	}

	for _, p := range Prefixes {
		rest, found := strings.CutPrefix(name, p.Symbol)
		if !found || rest == "" {
			continue
		}
		registry.mu.RLock()
		base, ok := registry.units[rest]
		registry.mu.RUnlock()
		if !ok {
			continue
		}
		if f, known := base.canonical(); !known || len(f.factors) == 0 {
			continue
		}
		scaled, err := Scale(base, p.Factor)
		if err != nil {
			return nil, err
		}
		return Named(scaled, name), nil
	}

	return nil, fmt.Errorf("%w: %q", errdefs.ErrUnknownUnit, name)
}

// MustLookup is Lookup that panics on unknown names.
func MustLookup(name string) Unit {
	u, err := Lookup(name)
	if err != nil {
		panic(err)
	}
	return u
}

// Names returns all registered unit names in sorted order.
func Names() []string {
	registry.mu.RLock()
	defer registry.mu.RUnlock()
	names := make([]string, 0, len(registry.units))
	for name := range registry.units {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
