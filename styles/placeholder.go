package styles

import (
	"strings"

	"fstyle/common"
)

const (
	// MinFocusedFontSize is the smallest font size of shrunk placeholder.
	MinFocusedFontSize = 10

	defaultFontSize    = 16
	defaultLineHeight  = 1.25
	focusedFontScale   = 0.4
	focusedTop         = 4
	reservedFieldRatio = 0.3
)

// PlaceholderTargets names targets PlaceholderStyles writes to.
type PlaceholderTargets struct {
	Field       string // field box, gets reserved top padding in shrink mode
	Placeholder string // placeholder text
	Focused     string // placeholder when field has focus or value
}

// DefaultPlaceholderTargets returns conventional target names.
func DefaultPlaceholderTargets() PlaceholderTargets {
	return PlaceholderTargets{
		Field:       "field",
		Placeholder: "placeholder",
		Focused:     "focusedPlaceholder",
	}
}

// PlaceholderStyles produces placeholder font and position. Single line fields
// center placeholder vertically, multiline ones align it with the first line.
// When placeholder_transition is shrink_top focused variant moves placeholder
// to the top corner with smaller font and field reserves room for it,
// otherwise focused variant is hidden. It has to run after Padding of the
// field target.
func (r *Resolver) PlaceholderStyles(kind common.FieldKind, t PlaceholderTargets) {
	r.FontStyles(t.Placeholder, true)
	r.SetStyle(t.Placeholder, "position", "absolute")
	r.SetStyle(t.Placeholder, "pointerEvents", "none")

	multiline := kind.IsMultiline()
	r.Apply(t.Placeholder, []string{"font_size", "line_height", "padding_top", "padding_left"}, func(v Values) Attrs {
		size, ok := v.Float(0)
		if !ok {
			return nil
		}
		line := size * v.FloatOr(1, defaultLineHeight)
		out := Attrs{"left": px(v.FloatOr(3, 0))}
		if multiline {
			out["top"] = px(v.FloatOr(2, 0) + (line-size)/2)
		} else {
			out["top"] = "calc(50% - " + px(line/2) + ")"
		}
		return out
	})

	r.Apply(t.Focused, []string{"placeholder_transition", "font_size", "padding_left"}, func(v Values) Attrs {
		if !shrinkTop(v.String(0)) {
			return Attrs{"display": "none"}
		}
		size := max(MinFocusedFontSize, v.FloatOr(1, defaultFontSize)*focusedFontScale)
		return Attrs{
			"display":    "block",
			"position":   "absolute",
			"top":        px(focusedTop),
			"left":       px(v.FloatOr(2, 0)),
			"fontSize":   px(size),
			"lineHeight": "1",
			"transition": "all 0.2s ease",
		}
	})

	// padding sides are inputs only so that reserved room is repeated next to
	// every padding shorthand an override produces
	reserve := []string{"placeholder_transition", "height", "height_unit"}
	for _, side := range sides {
		reserve = append(reserve, "padding_"+side)
	}
	r.Apply(t.Field, reserve, func(v Values) Attrs {
		if !shrinkTop(v.String(0)) {
			return nil
		}
		h, ok := v.Float(1)
		if !ok {
			return nil
		}
		if unit := v.String(2); unit != "" && unit != "px" {
			return nil
		}
		return Attrs{"paddingTop": px(h * reservedFieldRatio)}
	})
}

func shrinkTop(mode string) bool {
	return common.PlaceholderTransition(strings.ToLower(mode)) == common.PlaceholderTransitionShrinkTop
}
