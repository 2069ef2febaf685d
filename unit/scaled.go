package unit

// ScaledUnit is a multiple of a derived unit: a value v in the scaled unit
// is v*amount in the underlying unit.
type ScaledUnit struct {
	id     string
	amount float64
	unit   *DerivedUnit
}

// Identifier returns the unit's name, or "".
func (s *ScaledUnit) Identifier() string { return s.id }

// Definition returns "<amount> <derived>", e.g. "1000 m".
func (s *ScaledUnit) Definition() string {
	def := s.unit.Definition()
	if def == "" {
		return formatFloat(s.amount)
	}
	return formatFloat(s.amount) + " " + def
}

func (s *ScaledUnit) String() string {
	if s.id != "" {
		return s.id
	}
	return s.Definition()
}

// Amount returns the scale factor relative to the underlying unit.
func (s *ScaledUnit) Amount() float64 { return s.amount }

// Underlying returns the derived unit being scaled.
func (s *ScaledUnit) Underlying() *DerivedUnit { return s.unit }

func (s *ScaledUnit) canonical() (form, bool) {
	return form{factors: s.unit.factors, scale: s.amount}, true
}

// OffsetUnit shifts an absolute unit: a value v in the offset unit is
// v+offset in the underlying unit.
type OffsetUnit struct {
	id     string
	offset float64
	unit   Unit // *DerivedUnit or *ScaledUnit
}

// Identifier returns the unit's name, or "".
func (o *OffsetUnit) Identifier() string { return o.id }

// Definition returns "<absolute> @ <offset>", e.g. "K @ 273.15".
func (o *OffsetUnit) Definition() string {
	return o.unit.Definition() + " @ " + formatFloat(o.offset)
}

func (o *OffsetUnit) String() string {
	if o.id != "" {
		return o.id
	}
	return o.Definition()
}

// Offset returns the additive offset relative to the absolute unit.
func (o *OffsetUnit) Offset() float64 { return o.offset }

func (o *OffsetUnit) canonical() (form, bool) {
	f, _ := o.unit.canonical()
	f.offset = o.offset
	return f, true
}

// PromiscuousUnit is the wildcard unit. It is compatible with every unit
// and conversions through it are the identity.
type PromiscuousUnit struct{}

// Identifier returns "promiscuous".
func (*PromiscuousUnit) Identifier() string { return "promiscuous" }

// Definition returns "".
func (*PromiscuousUnit) Definition() string { return "" }

func (*PromiscuousUnit) String() string { return "promiscuous" }

func (*PromiscuousUnit) canonical() (form, bool) { return form{}, false }
