package unit

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/hupe1980/quanta/errdefs"
)

var termPattern = regexp.MustCompile(`^([^\d\^+\-]+)\^?([+-]?\d+)?$`)

// Parse parses a unit specification. Supported forms:
//
//	kg.m2.s-2     products with trailing integer exponents
//	kg m s-2      whitespace or '*' separated products
//	m/s, m/s^2    quotients, '^' or '**' exponents
//	0.001 m       numeric scale factors
//	km, hPa       SI-prefixed names
//	K @ 273.15    offset clauses
//
// The empty string and "1" denote the dimensionless unit.
func Parse(spec string) (Unit, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return Dimensionless, nil
	}

	if left, right, found := strings.Cut(spec, "@"); found {
		abs, err := Parse(left)
		if err != nil {
			return nil, err
		}
		offset, err := strconv.ParseFloat(strings.TrimSpace(right), 64)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid offset in %q", errdefs.ErrUnknownUnit, spec)
		}
		return Shift(abs, offset)
	}

	spec = strings.ReplaceAll(spec, "**", "^")
	parts := strings.Split(spec, "/")

	var result Unit = Dimensionless
	for i, part := range parts {
		u, err := parseProduct(part)
		if err != nil {
			return nil, err
		}
		if i == 0 {
			result = u
		} else {
			result = Divide(result, u)
		}
	}
	return result, nil
}

// MustParse is Parse that panics on error.
func MustParse(spec string) Unit {
	u, err := Parse(spec)
	if err != nil {
		panic(err)
	}
	return u
}

func parseProduct(s string) (Unit, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ' ' || r == '\t' || r == '*'
	})
	if len(fields) == 0 {
		return nil, fmt.Errorf("%w: empty term", errdefs.ErrUnknownUnit)
	}

	var result Unit = Dimensionless
	scale := 1.0
	for _, field := range fields {
		if v, err := strconv.ParseFloat(field, 64); err == nil {
			scale *= v
			continue
		}
		// Offset units are kept intact when they stand alone.
		if len(fields) == 1 && !strings.Contains(field, ".") {
			if u, err := parseTerm(field); err == nil {
				return u, nil
			}
		}
		for _, term := range strings.Split(field, ".") {
			u, err := parseTerm(term)
			if err != nil {
				return nil, err
			}
			result = Multiply(result, u)
		}
	}
	if scale != 1 {
		return Scale(result, scale)
	}
	return result, nil
}

func parseTerm(term string) (Unit, error) {
	if u, err := Lookup(term); err == nil {
		return u, nil
	}
	m := termPattern.FindStringSubmatch(term)
	if m == nil {
		return nil, fmt.Errorf("%w: %q", errdefs.ErrUnknownUnit, term)
	}
	u, err := Lookup(m[1])
	if err != nil {
		return nil, err
	}
	if m[2] == "" {
		return u, nil
	}
	power, err := strconv.Atoi(m[2])
	if err != nil {
		return nil, fmt.Errorf("%w: invalid exponent in %q", errdefs.ErrUnknownUnit, term)
	}
	return Pow(u, power), nil
}
