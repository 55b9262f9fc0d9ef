package debug

import (
	"testing"
)

func TestTreeWriter_Line(t *testing.T) {
	tests := []struct {
		name   string
		depth  int
		format string
		args   []any
		want   string
	}{
		{name: "no depth", format: "test", want: "test\n"},
		{name: "depth 2", depth: 2, format: "double indent", want: "    double indent\n"},
		{name: "with formatting", depth: 1, format: "value: %d", args: []any{42}, want: "  value: 42\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tw := NewTreeWriter()
			tw.Line(tt.depth, tt.format, tt.args...)
			if got := tw.String(); got != tt.want {
				t.Errorf("Line() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTreeWriter_Value(t *testing.T) {
	tw := NewTreeWriter()
	tw.Value(0, "empty", "")
	tw.Value(1, "color", "#ff0000 !important")
	tw.Value(0, "quoted", `say "hi"`)

	want := "empty: \n  color: \"#ff0000 !important\"\nquoted: \"say \\\"hi\\\"\"\n"
	if got := tw.String(); got != want {
		t.Errorf("Value() = %q, want %q", got, want)
	}
}

func TestTreeWriter_Map(t *testing.T) {
	tw := NewTreeWriter()
	tw.Map(1, "base", map[string]string{"padding10": "1px", "padding2": "2px", "color": "red"})
	tw.Map(1, "override", nil)

	want := "  base (3)\n" +
		"    color: \"red\"\n" +
		"    padding2: \"2px\"\n" +
		"    padding10: \"1px\"\n" +
		"  override (0)\n"
	if got := tw.String(); got != want {
		t.Errorf("Map() = %q, want %q", got, want)
	}
}

func TestEncodeText(t *testing.T) {
	tests := map[string]string{
		"":             "",
		"hello":        `"hello"`,
		"line1\nline2": `"line1\nline2"`,
		`path\to`:      `"path\\to"`,
	}
	for in, want := range tests {
		if got := encodeText(in); got != want {
			t.Errorf("encodeText(%q) = %q, want %q", in, got, want)
		}
	}
}
