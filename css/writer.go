package css

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"fstyle/styles"
)

const indentStep = "  "

// printer remembers first write error and total number of bytes written, so
// writing code does not have to check every call.
type printer struct {
	w   io.Writer
	n   int64
	err error
}

func (p *printer) printf(format string, args ...any) {
	if p.err != nil {
		return
	}
	n, err := fmt.Fprintf(p.w, format, args...)
	p.n += int64(n)
	p.err = err
}

// WriteTo writes the stylesheet to w in source order, implementing
// io.WriterTo. Items are separated by blank lines, declarations within a rule
// are sorted by property name.
func (s *Stylesheet) WriteTo(w io.Writer) (int64, error) {
	p := &printer{w: w}
	for i, item := range s.Items {
		if i > 0 {
			p.printf("\n")
		}
		switch {
		case item.Import != nil:
			p.printf("@import url(%s);\n", styles.QuoteString(*item.Import))
		case item.FontFace != nil:
			p.fontFace(item.FontFace)
		case item.MediaBlock != nil:
			p.mediaBlock(item.MediaBlock)
		case item.Rule != nil:
			p.rule(item.Rule, "")
		}
	}
	return p.n, p.err
}

// String returns the CSS text of the stylesheet.
func (s *Stylesheet) String() string {
	var sb strings.Builder
	_, _ = s.WriteTo(&sb)
	return sb.String()
}

func (p *printer) rule(rule *Rule, indent string) {
	p.printf("%s%s {\n", indent, rule.Selector.Raw)

	// shorthands sort before their longhands ("padding" < "padding-top"),
	// so longhands win
	names := make([]string, 0, len(rule.Properties))
	for name := range rule.Properties {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		p.printf("%s%s%s: %s;\n", indent, indentStep, name, rule.Properties[name].String())
	}

	p.printf("%s}\n", indent)
}

func (p *printer) fontFace(ff *FontFace) {
	p.printf("@font-face {\n")
	if ff.Family != "" {
		p.printf("%sfont-family: %s;\n", indentStep, styles.QuoteString(ff.Family))
	}
	for _, d := range [...][2]string{
		{"src", ff.Src},
		{"font-style", ff.Style},
		{"font-weight", ff.Weight},
	} {
		if d[1] != "" {
			p.printf("%s%s: %s;\n", indentStep, d[0], d[1])
		}
	}
	p.printf("}\n")
}

func (p *printer) mediaBlock(mb *MediaBlock) {
	p.printf("@media %s {\n", mb.Query.Raw)
	for i := range mb.Rules {
		if i > 0 {
			p.printf("\n")
		}
		p.rule(&mb.Rules[i], indentStep)
	}
	p.printf("}\n")
}
