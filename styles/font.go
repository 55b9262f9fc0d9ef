package styles

import "strings"

// font properties in order transform receives them
const (
	fontWeight = iota
	fontFamilyIdx
	fontSize
	fontLineHeight
	fontLetterSpacing
	fontTextTransform
	fontItalic
	fontColor
	fontStrike
	fontUnderline
)

func fontProps(placeholder bool) []string {
	italic, clr := "font_italic", "font_color"
	if placeholder {
		italic, clr = "placeholder_italic", "placeholder_color"
	}
	return []string{
		"font_weight",
		"font_family",
		"font_size",
		"line_height",
		"letter_spacing",
		"text_transform",
		italic,
		clr,
		"font_strike",
		"font_underline",
	}
}

// FontStyles produces text attributes. With placeholder set italic and color
// are taken from placeholder_italic and placeholder_color.
func (r *Resolver) FontStyles(target string, placeholder bool) {
	r.Apply(target, fontProps(placeholder), fontAttrs)
}

func fontAttrs(v Values) Attrs {
	out := make(Attrs)
	if w := v.String(fontWeight); w != "" {
		out["fontWeight"] = w
	}
	if f := v.String(fontFamilyIdx); f != "" {
		out["fontFamily"] = fontFamily(f)
	}
	if s, ok := v.Float(fontSize); ok {
		out["fontSize"] = px(s)
	}
	if lh, ok := v.Float(fontLineHeight); ok {
		out["lineHeight"] = formatNumber(lh)
	}
	if ls, ok := v.Float(fontLetterSpacing); ok {
		out["letterSpacing"] = px(ls)
	}
	if t := v.String(fontTextTransform); t != "" {
		out["textTransform"] = strings.ToLower(t)
	}
	if v.Has(fontItalic) {
		if v.Bool(fontItalic) {
			out["fontStyle"] = "italic"
		} else {
			out["fontStyle"] = "normal"
		}
	}
	if c := color(v.String(fontColor)); c != "" {
		out["color"] = c
	}
	if v.Has(fontStrike) || v.Has(fontUnderline) {
		var deco []string
		if v.Bool(fontUnderline) {
			deco = append(deco, "underline")
		}
		if v.Bool(fontStrike) {
			deco = append(deco, "line-through")
		}
		if len(deco) == 0 {
			deco = append(deco, "none")
		}
		out["textDecoration"] = strings.Join(deco, " ")
	}
	return out
}
