package styles

import (
	"strings"

	"github.com/spf13/cast"
)

// Values is the ordered tuple of property values handed to a Transform, one
// entry per requested property name and in the same order. Absent properties
// are nil. Accessors never fail: unconvertible values read as zero.
type Values []any

// Has reports whether i-th property is present.
func (v Values) Has(i int) bool {
	return i >= 0 && i < len(v) && isSet(v[i])
}

// Raw returns i-th value as is.
func (v Values) Raw(i int) any {
	if !v.Has(i) {
		return nil
	}
	return v[i]
}

// String returns i-th value converted to trimmed string.
func (v Values) String(i int) string {
	if !v.Has(i) {
		return ""
	}
	s, err := cast.ToStringE(v[i])
	if err != nil {
		return ""
	}
	return strings.TrimSpace(s)
}

// Float returns i-th value as a number, second result is false when value is
// absent or not numeric.
func (v Values) Float(i int) (float64, bool) {
	if !v.Has(i) {
		return 0, false
	}
	f, err := cast.ToFloat64E(v[i])
	if err != nil {
		// cast does not trim
		if s, ok := v[i].(string); ok {
			if f, err = cast.ToFloat64E(strings.TrimSpace(s)); err == nil {
				return f, true
			}
		}
		return 0, false
	}
	return f, true
}

// FloatOr returns i-th value as a number or def.
func (v Values) FloatOr(i int, def float64) float64 {
	if f, ok := v.Float(i); ok {
		return f
	}
	return def
}

// Bool returns i-th value as boolean, absent values are false.
func (v Values) Bool(i int) bool {
	if !v.Has(i) {
		return false
	}
	b, err := cast.ToBoolE(v[i])
	if err != nil {
		return false
	}
	return b
}
