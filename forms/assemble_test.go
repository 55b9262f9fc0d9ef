package forms

import (
	"maps"
	"slices"
	"testing"

	"go.uber.org/zap/zaptest"

	"fstyle/common"
	"fstyle/styles"
)

func assertAttrs(t *testing.T, what string, got, want styles.Attrs) {
	t.Helper()
	if !maps.Equal(got, want) {
		t.Errorf("%s = %v, want %v", what, got, want)
	}
}

func TestAssemble_TextShrinkTop(t *testing.T) {
	el := Element{
		ID:   "email",
		Kind: common.FieldKindText,
		Styles: styles.Props{
			"font_size":              20,
			"height":                 40,
			"padding_left":           8,
			"placeholder_transition": "shrink_top",
			"hover_border_top_color": "f00",
			"hover_border_top_width": 2,
		},
	}
	r, order := Assemble(el, Options{Breakpoint: true, Log: zaptest.NewLogger(t)})

	want := []string{TargetWrapper, TargetField, TargetPlaceholder, TargetFocusedPlaceholder, TargetHover, TargetActive, TargetDisabled}
	if !slices.Equal(order, want) {
		t.Errorf("order = %v, want %v", order, want)
	}

	field := r.Target(TargetField, false).Base
	if field["paddingTop"] != "12px" {
		t.Errorf("field must reserve room for placeholder, got %v", field)
	}
	if field["padding"] != "0px 0px 0px 8px" {
		t.Errorf("padding = %q", field["padding"])
	}

	focused := r.Target(TargetFocusedPlaceholder, false).Base
	if focused["fontSize"] != "10px" || focused["display"] != "block" || focused["left"] != "8px" {
		t.Errorf("unexpected focused placeholder %v", focused)
	}

	assertAttrs(t, "hover", r.Target(TargetHover, true).Base, styles.Attrs{
		"borderTop": "2px solid #f00 !important",
	})
}

func TestAssemble_Defaults(t *testing.T) {
	opts := Options{
		Breakpoint: true,
		Transition: common.PlaceholderTransitionShrinkTop,
		Defaults:   styles.Props{"font_family": "Inter", "font_size": 14},
	}

	r, _ := Assemble(Element{ID: "a", Kind: common.FieldKindText}, opts)
	field := r.Target(TargetField, true).Base
	if field["fontFamily"] != "Inter" || field["fontSize"] != "14px" {
		t.Errorf("defaults not applied: %v", field)
	}
	if r.Target(TargetFocusedPlaceholder, true).Base["display"] != "block" {
		t.Error("default transition not applied")
	}

	// element values win over defaults
	r, _ = Assemble(Element{
		ID:     "b",
		Kind:   common.FieldKindText,
		Styles: styles.Props{"font_size": 18, "placeholder_transition": "none"},
	}, opts)
	if got := r.Target(TargetField, true).Base["fontSize"]; got != "18px" {
		t.Errorf("fontSize = %q, want 18px", got)
	}
	if got := r.Target(TargetFocusedPlaceholder, true).Base["display"]; got != "none" {
		t.Errorf("display = %q, want none", got)
	}
	if _, ok := opts.Defaults["placeholder_transition"]; ok {
		t.Error("defaults must not be modified")
	}
}

func TestAssemble_Breakpoint(t *testing.T) {
	el := Element{
		ID:           "b",
		Kind:         common.FieldKindButton,
		Styles:       styles.Props{"font_size": 14, "background_color": "00f"},
		MobileStyles: styles.Props{"font_size": 12},
	}

	r, _ := Assemble(el, Options{Breakpoint: true})
	res := r.Target(TargetField, false)
	assertAttrs(t, "override", res.Override, styles.Attrs{"fontSize": "12px"})
	if res.Base["backgroundColor"] != "#00f" || res.Base["cursor"] != "pointer" {
		t.Errorf("unexpected base %v", res.Base)
	}

	r, _ = Assemble(el, Options{})
	if res := r.Target(TargetField, false); res.Override != nil {
		t.Errorf("no overrides expected without breakpoint, got %v", res.Override)
	}
}

func TestAssemble_Kinds(t *testing.T) {
	tests := []struct {
		kind   common.FieldKind
		styles styles.Props
		target string
		want   styles.Attrs
	}{
		{
			kind:   common.FieldKindCheckbox,
			styles: styles.Props{"width": 20, "height": 20},
			target: TargetField,
			want: styles.Attrs{
				"width": "20px", "minWidth": "20px", "maxWidth": "20px",
				"height": "20px", "minHeight": "20px", "maxHeight": "20px",
			},
		},
		{
			kind:   common.FieldKindCheckbox,
			styles: styles.Props{"selected_background_color": "0a0"},
			target: TargetActive,
			want:   styles.Attrs{"backgroundColor": "#0a0 !important"},
		},
		{
			kind:   common.FieldKindImage,
			styles: styles.Props{"background_image_url": "logo.png", "background_image_display": "fit", "opacity": 50},
			target: TargetContainer,
			want: styles.Attrs{
				"backgroundImage":    `url("logo.png")`,
				"backgroundPosition": "center center",
				"backgroundSize":     "contain",
				"backgroundRepeat":   "no-repeat",
				"opacity":            "0.5",
			},
		},
		{
			kind:   common.FieldKindContainer,
			styles: styles.Props{"padding_top": 4, "corner_top_left_radius": 6},
			target: TargetContainer,
			want:   styles.Attrs{"padding": "4px 0px 0px 0px", "borderRadius": "6px 0px 0px 0px"},
		},
		{
			kind:   common.FieldKindSignature,
			styles: styles.Props{"placeholder_color": "999", "placeholder_italic": true},
			target: TargetPlaceholder,
			want: styles.Attrs{
				"color": "#999", "fontStyle": "italic",
				"position": "absolute", "pointerEvents": "none",
			},
		},
	}
	for _, tt := range tests {
		t.Run(string(tt.kind)+"/"+tt.target, func(t *testing.T) {
			r, order := Assemble(Element{ID: "x", Kind: tt.kind, Styles: tt.styles}, Options{})
			if !slices.Contains(order, tt.target) {
				t.Fatalf("target %s not produced, got %v", tt.target, order)
			}
			assertAttrs(t, tt.target, r.Target(tt.target, true).Base, tt.want)
		})
	}
}
