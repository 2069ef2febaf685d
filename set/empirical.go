package set

import (
	"fmt"
	"slices"

	"github.com/hupe1980/quanta/coordsys"
	"github.com/hupe1980/quanta/errdefs"
	"github.com/hupe1980/quanta/internal/conv"
	"github.com/hupe1980/quanta/realtype"
)

// Empirical is a coordinate system tabulated by two gridded sets of equal
// shape, e.g. pressure levels paired with their altitudes. A world value is
// located on the world grid and read back off the reference grid at the
// same grid position.
type Empirical struct {
	coordsys.Base
	world     Gridded
	reference Gridded
}

// NewEmpirical pairs world coordinates with reference coordinates. The
// reference set's type is the system's reference; the world set's units are
// the system's units. Neither set may carry a coordinate system.
func NewEmpirical(world, reference Gridded) (*Empirical, error) {
	if world == nil || reference == nil {
		return nil, fmt.Errorf("%w: empirical coordinate system needs two sets", errdefs.ErrIllegalOperation)
	}
	if world.Dimension() != reference.Dimension() {
		return nil, errdefs.NewDimensionError("empirical coordinate system", world.Dimension(), reference.Dimension())
	}
	if !slices.Equal(world.Lengths(), reference.Lengths()) {
		return nil, fmt.Errorf("%w: empirical sets have lengths %v and %v",
			errdefs.ErrInvalidGrid, world.Lengths(), reference.Lengths())
	}
	if world.CoordinateSystem() != nil || reference.CoordinateSystem() != nil {
		return nil, fmt.Errorf("%w: empirical sets must not have coordinate systems",
			errdefs.ErrReferenceHasCoordinateSystem)
	}

	base, err := coordsys.NewBase(reference.Type(), world.Units())
	if err != nil {
		return nil, err
	}
	return &Empirical{Base: base, world: world, reference: reference}, nil
}

// World returns the set tabulating this system's own coordinates.
func (c *Empirical) World() Gridded { return c.world }

// Table returns the set tabulating the reference coordinates.
func (c *Empirical) Table() Gridded { return c.reference }

func (c *Empirical) ToReference(values [][]float64) ([][]float64, error) {
	if _, err := conv.CheckShape("empirical to reference", values, c.Dimension()); err != nil {
		return nil, err
	}
	grid, err := c.world.ValueToGrid(values)
	if err != nil {
		return nil, err
	}
	return c.reference.GridToValue(grid)
}

func (c *Empirical) FromReference(values [][]float64) ([][]float64, error) {
	if _, err := conv.CheckShape("empirical from reference", values, c.Dimension()); err != nil {
		return nil, err
	}
	grid, err := c.reference.ValueToGrid(values)
	if err != nil {
		return nil, err
	}
	return c.world.GridToValue(grid)
}

func (c *Empirical) Equal(other realtype.CoordinateSystem) bool {
	o, ok := other.(*Empirical)
	return ok && o.world == c.world && o.reference == c.reference
}
