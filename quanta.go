package quanta

import (
	"context"
	"fmt"

	"github.com/hupe1980/quanta/quantity"
	"github.com/hupe1980/quanta/unit"
)

// Convert converts values from the unit spec from into the unit spec to.
// Both specs accept anything unit.Parse does. values is not modified.
func Convert(ctx context.Context, values []float64, from, to string) ([]float64, error) {
	out, err := convert(values, from, to)
	CurrentLogger().LogConversion(ctx, from, to, len(values), err)
	return out, err
}

func convert(values []float64, from, to string) ([]float64, error) {
	fu, err := unit.Parse(from)
	if err != nil {
		return nil, fmt.Errorf("source unit: %w", err)
	}
	tu, err := unit.Parse(to)
	if err != nil {
		return nil, fmt.Errorf("target unit: %w", err)
	}
	return unit.Convert(tu, values, fu, true)
}

// Description summarizes a unit.
type Description struct {
	Unit       unit.Unit
	Definition string
	// Dimension is nil for promiscuous units.
	Dimension quantity.Dimension
	// Quantities lists the registered quantities sharing the dimension.
	Quantities []*quantity.Quantity
}

// Describe parses spec and reports its definition, dimension and the
// registered quantities it measures.
func Describe(spec string) (*Description, error) {
	u, err := unit.Parse(spec)
	if err != nil {
		return nil, err
	}
	d := &Description{Unit: u, Definition: u.Definition()}
	if dim, ok := quantity.DimensionOf(u); ok {
		d.Dimension = dim
		d.Quantities = quantity.Matching(dim)
	}
	return d, nil
}
