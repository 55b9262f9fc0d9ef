package css

import (
	"fmt"
	"strings"
	"unicode"
)

// MediaQuery represents a parsed @media query condition.
// Supports media types and width features: "screen and (max-width: 478px)".
type MediaQuery struct {
	Raw      string         // Original media query string
	Type     string         // Media type (e.g., "screen", "all"), empty when query has features only
	Negated  bool           // true if "not" modifier was used on main type
	Features []MediaFeature // Additional conditions
}

// MediaFeature represents a single media feature condition in a media query.
type MediaFeature struct {
	Name  string  // Feature name (e.g., "max-width")
	Value float64 // Feature value in px, zero for boolean features
}

// MobileQuery returns the query narrow screen overrides are emitted under.
func MobileQuery(width int) MediaQuery {
	return MediaQuery{
		Raw:      fmt.Sprintf("(max-width: %dpx)", width),
		Features: []MediaFeature{{Name: "max-width", Value: float64(width)}},
	}
}

// Evaluate returns true if this media query matches screen of the given width.
func (mq MediaQuery) Evaluate(width float64) bool {
	var typeMatches bool
	switch strings.ToLower(mq.Type) {
	case "", "all", "screen":
		typeMatches = true
	default:
		typeMatches = false // print and unknown media types
	}

	if mq.Negated {
		typeMatches = !typeMatches
	}

	if !typeMatches {
		return false
	}

	// Evaluate all features (AND logic)
	for _, f := range mq.Features {
		switch strings.ToLower(f.Name) {
		case "max-width":
			if width > f.Value {
				return false
			}
		case "min-width":
			if width < f.Value {
				return false
			}
		default:
			return false
		}
	}

	return true
}

// Value represents a parsed CSS property value.
type Value struct {
	Raw       string  // Original CSS value string without !important (e.g., "1.2em", "bold", "#ff0000")
	Value     float64 // Numeric value if applicable
	Unit      string  // Unit if applicable: "em", "px", "%", "pt", etc.
	Keyword   string  // Keyword if applicable: "bold", "italic", "center", etc.
	Important bool    // Declaration is marked !important
}

// IsNumeric returns true if the value has a numeric component.
// This includes explicit zero values like "0" or "0px".
func (v Value) IsNumeric() bool {
	// If there's a unit, it's definitely numeric
	if v.Unit != "" {
		return true
	}
	// Non-zero value with no keyword is numeric
	if v.Value != 0 && v.Keyword == "" {
		return true
	}
	// Check if Raw looks like a numeric value (handles "0" case)
	if v.Raw != "" && v.Keyword == "" {
		firstChar := rune(v.Raw[0])
		if unicode.IsDigit(firstChar) || firstChar == '.' || firstChar == '-' || firstChar == '+' {
			return true
		}
	}
	return false
}

// IsKeyword returns true if the value is a keyword (no numeric component).
func (v Value) IsKeyword() bool {
	return v.Keyword != "" && v.Unit == ""
}

// String returns the declaration text of the value.
func (v Value) String() string {
	if v.Important {
		return v.Raw + " !important"
	}
	return v.Raw
}

// PseudoElement represents which pseudo-element a rule applies to.
type PseudoElement int

const (
	PseudoNone        PseudoElement = iota // No pseudo-element
	PseudoBefore                           // ::before
	PseudoAfter                            // ::after
	PseudoPlaceholder                      // ::placeholder
)

// String returns the CSS representation of the pseudo-element.
func (p PseudoElement) String() string {
	switch p {
	case PseudoBefore:
		return "::before"
	case PseudoAfter:
		return "::after"
	case PseudoPlaceholder:
		return "::placeholder"
	default:
		return ""
	}
}

// Selector represents a parsed CSS selector with its components.
type Selector struct {
	Raw         string        // Original selector string
	Element     string        // Element name (e.g., "input") or empty for class-only
	Class       string        // Class name without dot or empty
	PseudoClass string        // Interaction state without colon (e.g., "hover", "disabled")
	Pseudo      PseudoElement // Pseudo-element if present
	Ancestor    *Selector     // Ancestor selector for descendant selectors
}

// IsSimple returns true if this is a simple selector (element, class, or element.class).
func (s Selector) IsSimple() bool {
	return s.Element != "" || s.Class != ""
}

// IsDescendant returns true if this is a descendant selector.
func (s Selector) IsDescendant() bool {
	return s.Ancestor != nil
}

// Rule represents a single CSS rule (selector + properties).
type Rule struct {
	Selector   Selector         // Parsed selector
	Properties map[string]Value // Property name -> value
}

// GetProperty returns the value for a property, or empty Value if not found.
func (r Rule) GetProperty(name string) (Value, bool) {
	v, ok := r.Properties[name]
	return v, ok
}

// FontFace represents an @font-face declaration.
type FontFace struct {
	Family string // font-family value
	Src    string // src value (URL or local reference)
	Style  string // font-style: normal, italic
	Weight string // font-weight: normal, bold, 400, 700
}

// StylesheetItem is a single top-level item in a stylesheet.
// Exactly one of Rule, MediaBlock, FontFace or Import is non-nil.
type StylesheetItem struct {
	Rule       *Rule       // A plain rule (selector + properties)
	MediaBlock *MediaBlock // A @media block containing nested rules
	FontFace   *FontFace   // A @font-face declaration
	Import     *string     // An @import URL
}

// MediaBlock represents a @media block with its query and nested rules.
type MediaBlock struct {
	Query MediaQuery
	Rules []Rule
}

// Stylesheet represents a parsed or generated CSS stylesheet.
type Stylesheet struct {
	Items    []StylesheetItem // All top-level items in source order
	Warnings []string         // Warnings for unsupported features
}

// Imports returns all @import URLs from the stylesheet in source order.
func (s *Stylesheet) Imports() []string {
	var urls []string
	for _, item := range s.Items {
		if item.Import != nil {
			urls = append(urls, *item.Import)
		}
	}
	return urls
}

// FontFaces returns all @font-face declarations from the stylesheet in source order.
// Only font-faces with a non-empty Family are included.
func (s *Stylesheet) FontFaces() []FontFace {
	var faces []FontFace
	for _, item := range s.Items {
		if item.FontFace != nil && item.FontFace.Family != "" {
			faces = append(faces, *item.FontFace)
		}
	}
	return faces
}

// RulesBySelector returns all top-level rules matching the given selector string.
func (s *Stylesheet) RulesBySelector(selector string) []Rule {
	var matches []Rule
	for _, item := range s.Items {
		if item.Rule != nil && item.Rule.Selector.Raw == selector {
			matches = append(matches, *item.Rule)
		}
	}
	return matches
}

// MediaRulesBySelector returns rules matching selector from @media blocks
// which apply to screen of the given width.
func (s *Stylesheet) MediaRulesBySelector(selector string, width float64) []Rule {
	var matches []Rule
	for _, item := range s.Items {
		if item.MediaBlock == nil || !item.MediaBlock.Query.Evaluate(width) {
			continue
		}
		for _, rule := range item.MediaBlock.Rules {
			if rule.Selector.Raw == selector {
				matches = append(matches, rule)
			}
		}
	}
	return matches
}

// Append adds all items of other stylesheet after items of s.
func (s *Stylesheet) Append(other *Stylesheet) {
	if other == nil {
		return
	}
	s.Items = append(s.Items, other.Items...)
	s.Warnings = append(s.Warnings, other.Warnings...)
}
