package forms

import (
	"fmt"
	"unicode"

	"github.com/gosimple/slug"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"fstyle/css"
)

// ClassName returns class of the element target: "<prefix>-<id>-<target>",
// all parts slugified. Class never starts with a digit.
func ClassName(prefix, id, target string) string {
	name := slug.Make(id)
	if prefix != "" {
		name = slug.Make(prefix) + "-" + name
	}
	if name == "" || unicode.IsDigit(rune(name[0])) {
		name = "e-" + name
	}
	return name + "-" + slug.Make(css.KebabCase(target))
}

// Selector returns CSS selector for element target. Interaction state targets
// are attached to the field class as pseudo-classes (or "selected" class set
// by the widget), focused placeholder is shown while wrapper has focus inside.
func Selector(prefix, id, target string) string {
	class := func(t string) string { return "." + ClassName(prefix, id, t) }

	switch target {
	case TargetHover:
		return class(TargetField) + ":hover"
	case TargetDisabled:
		return class(TargetField) + ":disabled"
	case TargetActive:
		return class(TargetField) + ".selected"
	case TargetFocusedPlaceholder:
		return class(TargetWrapper) + ":focus-within " + class(TargetPlaceholder)
	default:
		return class(target)
	}
}

// Stylesheet resolves all form elements and produces stylesheet with base
// rules in element order followed by single narrow screen block.
func Stylesheet(f *Form, opts Options) (*css.Stylesheet, error) {
	log := opts.Log
	if log == nil {
		log = zap.NewNop()
	}
	opts.Log = log.Named("forms")

	var (
		errs error
		b    = css.NewBuilder()
	)
	for _, el := range f.Elements {
		r, targets := Assemble(el, opts)
		for _, target := range targets {
			if err := b.Add(Selector(opts.ClassPrefix, el.ID, target), r.Target(target, !opts.Breakpoint)); err != nil {
				errs = multierr.Append(errs, fmt.Errorf("element '%s' target '%s': %w", el.ID, target, err))
			}
		}
	}
	sheet := b.Stylesheet()
	opts.Log.Debug("Stylesheet prepared", zap.String("form", f.Name), zap.Int("elements", len(f.Elements)), zap.Int("items", len(sheet.Items)))
	return sheet, errs
}
