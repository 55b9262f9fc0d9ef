package styles

import "strings"

var cornerProps = []string{
	"corner_top_left_radius",
	"corner_top_right_radius",
	"corner_bottom_right_radius",
	"corner_bottom_left_radius",
}

// Corners produces borderRadius shorthand. Unset corners are square.
func (r *Resolver) Corners(target string) {
	r.Apply(target, cornerProps, func(v Values) Attrs {
		if !anySet(v) {
			return nil
		}
		return Attrs{"borderRadius": shorthand(v, px)}
	})
}

var shadowProps = []string{"shadow_x_offset", "shadow_y_offset", "shadow_blur", "shadow_color"}

// BoxShadow produces boxShadow shorthand. Shadow without color is not drawn.
func (r *Resolver) BoxShadow(target string) {
	r.Apply(target, shadowProps, func(v Values) Attrs {
		c := color(v.String(3))
		if c == "" {
			return nil
		}
		return Attrs{"boxShadow": strings.Join([]string{
			px(v.FloatOr(0, 0)),
			px(v.FloatOr(1, 0)),
			px(v.FloatOr(2, 0)),
			c,
		}, " ")}
	})
}

// Spacing produces padding (or margin when margin is true) shorthand from four
// sided properties. Unset sides are zero.
func (r *Resolver) Spacing(target string, margin bool) {
	kind := "padding"
	if margin {
		kind = "margin"
	}
	props := make([]string, 0, len(sides))
	for _, side := range sides {
		props = append(props, kind+"_"+side)
	}
	r.Apply(target, props, func(v Values) Attrs {
		if !anySet(v) {
			return nil
		}
		return Attrs{kind: shorthand(v, px)}
	})
}

// Padding is Spacing(target, false).
func (r *Resolver) Padding(target string) {
	r.Spacing(target, false)
}

// Margin is Spacing(target, true).
func (r *Resolver) Margin(target string) {
	r.Spacing(target, true)
}

// Width produces width from width and width_unit. With force min and max
// width are pinned to the same value so the box does not follow its content.
func (r *Resolver) Width(target string, force bool) {
	r.dimension(target, "width", "Width", force)
}

// Height is the same as Width for height and height_unit.
func (r *Resolver) Height(target string, force bool) {
	r.dimension(target, "height", "Height", force)
}

func (r *Resolver) dimension(target, name, suffix string, force bool) {
	r.Apply(target, []string{name, name + "_unit"}, func(v Values) Attrs {
		f, ok := v.Float(0)
		if !ok {
			return nil
		}
		d := dimension(f, v.String(1))
		out := Attrs{name: d}
		if force {
			out["min"+suffix] = d
			out["max"+suffix] = d
		}
		return out
	})
}

func anySet(v Values) bool {
	for i := range v {
		if v.Has(i) {
			return true
		}
	}
	return false
}

// shorthand joins all values formatted with fn, absent values are zero.
func shorthand(v Values, fn func(float64) string) string {
	parts := make([]string, len(v))
	for i := range v {
		parts[i] = fn(v.FloatOr(i, 0))
	}
	return strings.Join(parts, " ")
}
