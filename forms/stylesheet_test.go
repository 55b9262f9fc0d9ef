package forms

import (
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap/zaptest"

	"fstyle/css"
)

func TestClassName(t *testing.T) {
	tests := []struct {
		prefix, id, target string
		want               string
	}{
		{"", "email", "field", "email-field"},
		{"", "Email Address", "field", "email-address-field"},
		{"signup", "email", "focusedPlaceholder", "signup-email-focused-placeholder"},
		{"", "6ba7b810-9dad-51d1-80b4-00c04fd430c8", "container", "e-6ba7b810-9dad-51d1-80b4-00c04fd430c8-container"},
	}
	for _, tt := range tests {
		if got := ClassName(tt.prefix, tt.id, tt.target); got != tt.want {
			t.Errorf("ClassName(%q, %q, %q) = %q, want %q", tt.prefix, tt.id, tt.target, got, tt.want)
		}
	}
}

func TestSelector(t *testing.T) {
	tests := map[string]string{
		TargetField:              ".email-field",
		TargetHover:              ".email-field:hover",
		TargetDisabled:           ".email-field:disabled",
		TargetActive:             ".email-field.selected",
		TargetFocusedPlaceholder: ".email-wrapper:focus-within .email-placeholder",
		TargetLabel:              ".email-label",
	}
	for target, want := range tests {
		if got := Selector("", "email", target); got != want {
			t.Errorf("Selector(%q) = %q, want %q", target, got, want)
		}
	}
}

func TestStylesheet(t *testing.T) {
	f, err := Parse([]byte(`
name: signup
elements:
  - id: email
    kind: text
    styles: {font_size: 14, font_color: "333"}
    mobile_styles: {font_size: 12}
`), "")
	if err != nil {
		t.Fatal(err)
	}

	sheet, err := Stylesheet(f, Options{Breakpoint: true, Log: zaptest.NewLogger(t)})
	if err != nil {
		t.Fatalf("Stylesheet() error = %v", err)
	}

	want := `.email-wrapper {
  position: relative;
}

.email-field {
  box-sizing: border-box;
  color: #333;
  font-size: 14px;
  width: 100%;
}

.email-placeholder {
  font-size: 14px;
  left: 0px;
  pointer-events: none;
  position: absolute;
  top: calc(50% - 8.75px);
}

.email-wrapper:focus-within .email-placeholder {
  display: none;
}

@media (max-width: 478px) {
  .email-field {
    font-size: 12px;
  }

  .email-placeholder {
    font-size: 12px;
    left: 0px;
    top: calc(50% - 7.5px);
  }

  .email-wrapper:focus-within .email-placeholder {
    display: none;
  }
}
`
	if got := sheet.String(); got != want {
		t.Errorf("unexpected stylesheet:\n%s\nwant:\n%s", got, want)
	}
}

func TestStylesheet_BaseOnly(t *testing.T) {
	f, err := Parse([]byte(`
name: signup
elements:
  - id: go
    kind: button
    styles: {font_size: 14}
    mobile_styles: {font_size: 12}
`), "")
	if err != nil {
		t.Fatal(err)
	}

	sheet, err := Stylesheet(f, Options{ClassPrefix: "fs"})
	if err != nil {
		t.Fatal(err)
	}
	for _, item := range sheet.Items {
		if item.MediaBlock != nil {
			t.Fatal("media block produced without breakpoint")
		}
	}
	if rules := sheet.RulesBySelector(".fs-go-field"); len(rules) != 1 {
		t.Errorf("expected prefixed field rule, got %d", len(rules))
	}
}

func TestStylesheet_ShrinkTopKeepsReservedPaddingOnMobile(t *testing.T) {
	f, err := Parse([]byte(`
name: signup
elements:
  - id: email
    kind: text
    styles: {placeholder_transition: shrink_top, height: 50, padding_top: 5}
    mobile_styles: {padding_left: 10}
`), "")
	if err != nil {
		t.Fatal(err)
	}

	sheet, err := Stylesheet(f, Options{Breakpoint: true, Log: zaptest.NewLogger(t)})
	if err != nil {
		t.Fatalf("Stylesheet() error = %v", err)
	}

	base := sheet.RulesBySelector(".email-field")
	if len(base) != 1 {
		t.Fatalf("expected one base field rule, got %d", len(base))
	}
	if v, _ := base[0].GetProperty("padding-top"); v.String() != "15px" {
		t.Errorf("base padding-top = %q, want 15px", v.String())
	}

	mobile := sheet.MediaRulesBySelector(".email-field", 400)
	if len(mobile) != 1 {
		t.Fatalf("expected one mobile field rule, got %d", len(mobile))
	}
	if v, _ := mobile[0].GetProperty("padding"); v.String() != "5px 0px 0px 10px" {
		t.Errorf("mobile padding = %q", v.String())
	}
	if v, ok := mobile[0].GetProperty("padding-top"); !ok || v.String() != "15px" {
		t.Errorf("mobile rule must repeat reserved padding-top, got %q", v.String())
	}
	// longhand must follow the shorthand it refines
	out := sheet.String()
	media := strings.Index(out, "@media")
	if media < 0 {
		t.Fatal("no media block")
	}
	tail := out[media:]
	if p, pt := strings.Index(tail, "padding:"), strings.Index(tail, "padding-top:"); p < 0 || pt < p {
		t.Errorf("padding-top must come after padding in mobile rule:\n%s", tail)
	}
}

func TestStylesheet_FreeTextStaysInsideDeclaration(t *testing.T) {
	f, err := Parse([]byte(`
name: signup
elements:
  - id: logo
    kind: image
    styles:
      background_image_url: 'a\"); } body { display: none; } .q { x: url("'
  - id: email
    kind: text
    styles: {font_family: "Evil; } body { display: none"}
`), "")
	if err != nil {
		t.Fatal(err)
	}

	sheet, err := Stylesheet(f, Options{Log: zaptest.NewLogger(t)})
	if err != nil {
		t.Fatalf("Stylesheet() error = %v", err)
	}

	back := css.NewParser(zaptest.NewLogger(t)).Parse([]byte(sheet.String()))
	for _, item := range back.Items {
		if item.Rule != nil && item.Rule.Selector.Raw == "body" {
			t.Fatalf("stray rule in output:\n%s", sheet.String())
		}
	}
	if rules := back.RulesBySelector(".logo-container"); len(rules) != 1 {
		t.Errorf("expected single logo rule, got %d:\n%s", len(rules), sheet.String())
	} else if _, ok := rules[0].GetProperty("background-image"); !ok {
		t.Errorf("background image lost:\n%s", sheet.String())
	}
}

func TestStylesheet_RejectsUnsafeValue(t *testing.T) {
	f, err := Parse([]byte(`
name: signup
elements:
  - id: email
    kind: text
    styles: {font_weight: "bold; } body { display: none", font_size: 14}
`), "")
	if err != nil {
		t.Fatal(err)
	}

	_, err = Stylesheet(f, Options{Log: zaptest.NewLogger(t)})
	var ve *css.ValueError
	if !errors.As(err, &ve) || ve.Property != "font-weight" {
		t.Fatalf("Stylesheet() error = %v, want font-weight ValueError", err)
	}
	if !strings.Contains(err.Error(), "element 'email'") {
		t.Errorf("error must name the element: %v", err)
	}
}
