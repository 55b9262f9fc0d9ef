// Package debug has helpers producing human readable dumps for debug report.
package debug

import (
	"fmt"
	"maps"
	"slices"
	"sort"
	"strconv"
	"strings"

	"github.com/maruel/natural"
)

// TreeWriter accumulates indented lines.
type TreeWriter struct {
	w *strings.Builder
}

func NewTreeWriter() *TreeWriter {
	return &TreeWriter{w: &strings.Builder{}}
}

func (tw TreeWriter) String() string {
	return tw.w.String()
}

func (tw TreeWriter) indent(depth int) {
	for range depth {
		tw.w.WriteString("  ")
	}
}

func (tw TreeWriter) Line(depth int, format string, args ...any) {
	tw.indent(depth)
	fmt.Fprintf(tw.w, format, args...)
	tw.w.WriteByte('\n')
}

// Value writes labeled value quoted, so whitespace and markers are visible.
func (tw TreeWriter) Value(depth int, label, value string) {
	tw.indent(depth)
	tw.w.WriteString(label)
	tw.w.WriteString(": ")
	tw.w.WriteString(encodeText(value))
	tw.w.WriteByte('\n')
}

// Map writes label followed by map entries one level deeper, keys in natural
// order. Empty maps produce label only.
func (tw TreeWriter) Map(depth int, label string, m map[string]string) {
	tw.Line(depth, "%s (%d)", label, len(m))
	keys := slices.Collect(maps.Keys(m))
	sort.Sort(natural.StringSlice(keys))
	for _, k := range keys {
		tw.Value(depth+1, k, m[k])
	}
}

func encodeText(raw string) string {
	if raw == "" {
		return raw
	}
	return strconv.Quote(raw)
}
