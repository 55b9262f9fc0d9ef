package forms

import (
	"fstyle/utils/debug"
)

// Dump returns readable tree of resolved targets of every form element. It
// exists solely for debug report.
func Dump(f *Form, opts Options) string {
	if f == nil {
		return "<nil Form>"
	}

	tw := debug.NewTreeWriter()
	tw.Line(0, "Form %q: %d elements, breakpoint %t, prefix %q", f.Name, len(f.Elements), opts.Breakpoint, opts.ClassPrefix)
	for _, el := range f.Elements {
		r, _ := Assemble(el, opts)
		tw.Line(1, "Element[%q] kind[%s]", el.ID, el.Kind)
		// includes targets registered on first use
		for _, target := range r.Names() {
			res := r.Target(target, !opts.Breakpoint)
			tw.Line(2, "%s -> %s", target, Selector(opts.ClassPrefix, el.ID, target))
			tw.Map(3, "base", res.Base)
			if opts.Breakpoint {
				tw.Map(3, "override", res.Override)
			}
		}
	}
	return tw.String()
}
