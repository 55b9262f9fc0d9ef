package css

import (
	"fmt"
	"strings"
	"unicode"

	"go.uber.org/multierr"

	"fstyle/styles"
)

// KebabCase converts attribute name to CSS property name: "borderTopLeft"
// becomes "border-top-left".
func KebabCase(name string) string {
	var b strings.Builder
	b.Grow(len(name) + 4)
	for i, r := range name {
		if unicode.IsUpper(r) {
			if i > 0 {
				b.WriteByte('-')
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Declarations converts attribute map into CSS declarations. Values carrying
// important marker become important declarations. Values which would end the
// declaration or the rule they are placed into are dropped and reported.
func Declarations(attrs styles.Attrs) (map[string]Value, error) {
	var errs error
	props := make(map[string]Value, len(attrs))
	for name, raw := range attrs {
		if raw == "" {
			continue
		}
		prop := KebabCase(name)
		text := strings.TrimSpace(styles.StripImportant(raw))
		if reason := unsafeValue(text); reason != "" {
			errs = multierr.Append(errs, &ValueError{Property: prop, Value: text, Reason: reason})
			continue
		}
		val := ParseValue(raw)
		// keep value text exactly as resolver produced it
		val.Raw = text
		val.Important = val.Important || styles.IsImportant(raw)
		props[prop] = val
	}
	return props, errs
}

// unsafeValue returns why value cannot be written into declaration as is or
// empty string when it can. Quoted strings and escaped characters are
// skipped, outside of them value must not contain delimiters or open comment
// and parentheses must balance.
func unsafeValue(s string) string {
	var (
		quote   rune
		prev    rune
		depth   int
		escaped bool
	)
	for _, r := range s {
		switch {
		case escaped:
			escaped = false
			r = 0
		case r == '\\':
			escaped = true
		case quote != 0:
			switch r {
			case quote:
				quote = 0
			case '\n', '\r', '\f':
				return "line break in string"
			}
		case r == '"' || r == '\'':
			quote = r
		case r == '(':
			depth++
		case r == ')':
			if depth == 0 {
				return "unbalanced parentheses"
			}
			depth--
		case r == ';' || r == '{' || r == '}':
			return fmt.Sprintf("unexpected %q", r)
		case r == '*' && prev == '/':
			return "comment"
		}
		prev = r
	}
	switch {
	case escaped:
		return "dangling escape"
	case quote != 0:
		return "unterminated string"
	case depth != 0:
		return "unbalanced parentheses"
	}
	return ""
}

// FromResolved converts resolved attributes into base rule and, when there
// are overrides, the rule to be placed into mobile media block.
func FromResolved(selector string, r styles.Resolved) (Rule, *Rule, error) {
	sel, warn := ParseSelector(selector)
	if warn != "" {
		return Rule{}, nil, &SelectorError{Selector: selector, Reason: warn}
	}
	base, err := Declarations(r.Base)
	over, oerr := Declarations(r.Override)
	if err = multierr.Append(err, oerr); err != nil {
		return Rule{}, nil, err
	}
	if len(over) > 0 {
		return Rule{Selector: sel, Properties: base}, &Rule{Selector: sel, Properties: over}, nil
	}
	return Rule{Selector: sel, Properties: base}, nil, nil
}

// Builder assembles stylesheet out of resolved targets. Base attributes
// become top level rules in order of addition, override attributes are
// collected into single @media block placed after all of them so they win
// over base rules of the same specificity.
type Builder struct {
	query  MediaQuery
	items  []StylesheetItem
	mobile []Rule
}

// NewBuilder creates builder emitting overrides for screens not wider than
// styles.MobileBreakpoint.
func NewBuilder() *Builder {
	return &Builder{query: MobileQuery(styles.MobileBreakpoint)}
}

// Add appends rules for the selector. Empty attribute maps produce no rules.
func (b *Builder) Add(selector string, r styles.Resolved) error {
	base, mobile, err := FromResolved(selector, r)
	if err != nil {
		return err
	}
	if len(base.Properties) > 0 {
		b.items = append(b.items, StylesheetItem{Rule: &base})
	}
	if mobile != nil {
		b.mobile = append(b.mobile, *mobile)
	}
	return nil
}

// Stylesheet returns assembled stylesheet. Builder may be used further.
func (b *Builder) Stylesheet() *Stylesheet {
	sheet := &Stylesheet{Items: make([]StylesheetItem, 0, len(b.items)+1)}
	sheet.Items = append(sheet.Items, b.items...)
	if len(b.mobile) > 0 {
		rules := make([]Rule, len(b.mobile))
		copy(rules, b.mobile)
		sheet.Items = append(sheet.Items, StylesheetItem{MediaBlock: &MediaBlock{Query: b.query, Rules: rules}})
	}
	return sheet
}

// SelectorError is returned when selector cannot be used for generated rule.
type SelectorError struct {
	Selector string
	Reason   string
}

func (e *SelectorError) Error() string {
	return "bad selector '" + e.Selector + "': " + e.Reason
}

// ValueError is returned when attribute value cannot be placed into
// declaration.
type ValueError struct {
	Property string
	Value    string
	Reason   string
}

func (e *ValueError) Error() string {
	return "bad value of '" + e.Property + "': " + e.Reason
}
