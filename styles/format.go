package styles

import (
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// ImportantMarker is appended to values which have to win over competing
// rules of the same specificity (interaction state variants). Consumers must
// treat marked values as opaque.
const ImportantMarker = " !important"

// escalate appends ImportantMarker when requested.
func escalate(value string, important bool) string {
	if !important || value == "" || strings.HasSuffix(value, ImportantMarker) {
		return value
	}
	return value + ImportantMarker
}

// IsImportant reports whether value carries ImportantMarker.
func IsImportant(value string) bool {
	return strings.HasSuffix(value, ImportantMarker)
}

// StripImportant removes ImportantMarker from value if present.
func StripImportant(value string) string {
	return strings.TrimSuffix(value, ImportantMarker)
}

// color normalizes server colors. Documents usually carry bare hex digits
// ("000", "ff0000"), those get "#" prefix and lower case but keep their
// length, so output could be matched against server values. Anything else
// (named colors, rgba()) is passed through.
func color(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	digits := strings.TrimPrefix(s, "#")
	if !isHexDigits(digits) {
		return s
	}
	switch len(digits) {
	case 3, 6:
		if _, err := colorful.Hex("#" + digits); err != nil {
			return s
		}
		return "#" + strings.ToLower(digits)
	case 4, 8:
		// alpha channel, colorful does not parse it
		return "#" + strings.ToLower(digits)
	}
	return s
}

func isHexDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9', r >= 'a' && r <= 'f', r >= 'A' && r <= 'F':
		default:
			return false
		}
	}
	return true
}

var stringEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\a `, "\r", `\d `, "\f", `\c `)

// QuoteString returns s as CSS double quoted string. Backslashes and quotes
// are escaped, line breaks are written as hex escapes since they could not
// appear in CSS string literally.
func QuoteString(s string) string {
	return `"` + stringEscaper.Replace(s) + `"`
}

// fontFamily quotes family names which are not plain identifiers, keeping
// comma separated fallback lists and already quoted names intact.
func fontFamily(s string) string {
	names := strings.Split(s, ",")
	for i, name := range names {
		name = strings.TrimSpace(name)
		switch {
		case len(name) > 1 && (name[0] == '"' || name[0] == '\'') && name[len(name)-1] == name[0]:
		case strings.IndexFunc(name, notIdent) >= 0:
			name = QuoteString(name)
		}
		names[i] = name
	}
	return strings.Join(names, ", ")
}

func notIdent(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return false
	case r == '-', r == '_', r == ' ':
		return false
	}
	return true
}

// dimension formats value with unit, unit defaults to px.
func dimension(value float64, unit string) string {
	if unit == "" {
		unit = "px"
	}
	return formatNumber(value) + unit
}
