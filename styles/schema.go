// Package styles resolves server authored style properties of a form element
// into per target attribute maps, with optional narrow screen overrides.
package styles

// Props holds style property values keyed by property name. Values come
// straight from decoded form documents: numbers, strings or booleans.
type Props map[string]any

// Schema is the style source of a single form element: desktop values plus
// optional overrides for narrow screens. A property missing from Override
// falls back to its Base value.
type Schema struct {
	Base     Props
	Override Props
}

// NewSchema is a convenience constructor, either map may be nil.
func NewSchema(base, override Props) Schema {
	return Schema{Base: base, Override: override}
}

// HasOverrides reports whether override source is present and not empty.
func (s Schema) HasOverrides() bool {
	for _, v := range s.Override {
		if isSet(v) {
			return true
		}
	}
	return false
}

// base returns base value of the property or nil.
func (s Schema) base(name string) any {
	if v, ok := s.Base[name]; ok && isSet(v) {
		return v
	}
	return nil
}

// override returns explicitly set override value of the property.
func (s Schema) override(name string) (any, bool) {
	if v, ok := s.Override[name]; ok && isSet(v) {
		return v, true
	}
	return nil, false
}

// isSet treats nil and empty strings as absent, server documents use both
// to say "not configured".
func isSet(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case string:
		return t != ""
	default:
		return true
	}
}
