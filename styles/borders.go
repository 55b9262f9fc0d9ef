package styles

import (
	"strings"
)

const defaultPattern = "solid"

var (
	sides     = [...]string{"top", "right", "bottom", "left"}
	sideAttrs = [...]string{"borderTop", "borderRight", "borderBottom", "borderLeft"}
)

// borderProps lists 12 border properties, color, width and pattern per side
// in top, right, bottom, left order.
func borderProps(prefix string) []string {
	props := make([]string, 0, len(sides)*3)
	for _, side := range sides {
		props = append(props,
			prefix+"border_"+side+"_color",
			prefix+"border_"+side+"_width",
			prefix+"border_"+side+"_pattern",
		)
	}
	return props
}

// Borders produces per side border shorthands. Elements define either all
// sides or none, so nothing is produced when top color is not set. Prefix
// selects state variant properties ("hover_", "selected_", ...).
func (r *Resolver) Borders(target, prefix string, important bool) {
	r.Apply(target, borderProps(prefix), func(v Values) Attrs {
		if !v.Has(0) {
			return nil
		}
		out := make(Attrs, len(sides))
		for i := range sides {
			c := color(v.String(i * 3))
			if c == "" {
				continue
			}
			pattern := strings.ToLower(v.String(i*3 + 2))
			if pattern == "" {
				pattern = defaultPattern
			}
			width := v.FloatOr(i*3+1, 0)
			out[sideAttrs[i]] = escalate(px(width)+" "+pattern+" "+c, important)
		}
		return out
	})
}

// SelectorStyles applies interaction state variant of borders, background
// and font colors. Every attribute is produced only when prefixed property is
// present, absence means the base value is inherited.
func (r *Resolver) SelectorStyles(target, prefix string, important bool) {
	r.Borders(target, prefix, important)
	r.Apply(target, []string{prefix + "background_color"}, func(v Values) Attrs {
		if !v.Has(0) {
			return nil
		}
		return Attrs{"backgroundColor": escalate(color(v.String(0)), important)}
	})
	r.Apply(target, []string{prefix + "font_color"}, func(v Values) Attrs {
		if !v.Has(0) {
			return nil
		}
		return Attrs{"color": escalate(color(v.String(0)), important)}
	})
}

// BackgroundColor applies background_color.
func (r *Resolver) BackgroundColor(target string) {
	r.Apply(target, []string{"background_color"}, func(v Values) Attrs {
		if !v.Has(0) {
			return nil
		}
		return Attrs{"backgroundColor": color(v.String(0))}
	})
}

// Opacity applies opacity given in percents.
func (r *Resolver) Opacity(target string) {
	r.Apply(target, []string{"opacity"}, func(v Values) Attrs {
		o, ok := v.Float(0)
		if !ok {
			return nil
		}
		return Attrs{"opacity": formatNumber(clamp(o, 0, 100) / 100)}
	})
}

func clamp(f, lo, hi float64) float64 {
	return max(lo, min(f, hi))
}
