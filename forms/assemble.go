package forms

import (
	"maps"

	"go.uber.org/zap"

	"fstyle/common"
	"fstyle/styles"
)

// Target names produced by Assemble. Interaction state targets hold only
// escalated values meant to be applied on top of their base target.
const (
	TargetWrapper            = "wrapper"
	TargetField              = "field"
	TargetHover              = "hoverField"
	TargetActive             = "activeField"
	TargetDisabled           = "disabledField"
	TargetPlaceholder        = "placeholder"
	TargetFocusedPlaceholder = "focusedPlaceholder"
	TargetLabel              = "label"
	TargetContainer          = "container"
)

// Prefixes of interaction state property variants.
const (
	hoverPrefix    = "hover_"
	selectedPrefix = "selected_"
	disabledPrefix = "disabled_"
)

// Options controls how elements are assembled.
type Options struct {
	// Breakpoint enables narrow screen overrides.
	Breakpoint bool
	// Transition is placeholder behavior for elements which do not set it.
	Transition common.PlaceholderTransition
	// Defaults are properties every element starts with.
	Defaults styles.Props
	// ClassPrefix is prepended to generated class names.
	ClassPrefix string
	Log         *zap.Logger
}

// schema puts element styles on top of defaults.
func (o Options) schema(el Element) styles.Schema {
	base := make(styles.Props, len(o.Defaults)+len(el.Styles)+1)
	maps.Copy(base, o.Defaults)
	if o.Transition != "" {
		if _, ok := base["placeholder_transition"]; !ok {
			base["placeholder_transition"] = string(o.Transition)
		}
	}
	maps.Copy(base, el.Styles)
	return styles.NewSchema(base, el.MobileStyles)
}

// Assemble creates resolver for the element and populates targets element
// kind renders. Returned names are targets in the order their rules should be
// emitted. Base targets come first, interaction states last, so that states
// win.
func Assemble(el Element, opts Options) (*styles.Resolver, []string) {
	log := opts.Log
	if log == nil {
		log = zap.NewNop()
	}
	log = log.With(zap.String("element", el.ID), zap.Stringer("kind", el.Kind))

	ropts := []styles.Option{styles.WithLogger(log)}
	if !opts.Breakpoint {
		ropts = append(ropts, styles.WithoutBreakpoint())
	}
	r := styles.New(opts.schema(el), nil, ropts...)

	var order []string
	switch el.Kind {
	case common.FieldKindText, common.FieldKindTextarea, common.FieldKindDropdown:
		order = assembleInput(r, el.Kind)
	case common.FieldKindButton:
		order = assembleButton(r)
	case common.FieldKindCheckbox:
		order = assembleCheckbox(r)
	case common.FieldKindSignature:
		order = assembleSignature(r)
	case common.FieldKindImage:
		order = assembleImage(r)
	default:
		order = assembleContainer(r)
	}
	log.Debug("Element assembled", zap.Strings("targets", order))
	return r, order
}

// box applies properties shared by all bordered boxes.
func box(r *styles.Resolver, target string) {
	r.BackgroundColor(target)
	r.Borders(target, "", false)
	r.Corners(target)
	r.BoxShadow(target)
}

// states applies interaction state variants of the field.
func states(r *styles.Resolver) {
	r.SelectorStyles(TargetHover, hoverPrefix, true)
	r.SelectorStyles(TargetActive, selectedPrefix, true)
	r.SelectorStyles(TargetDisabled, disabledPrefix, true)
}

func assembleInput(r *styles.Resolver, kind common.FieldKind) []string {
	order := []string{TargetWrapper, TargetField, TargetPlaceholder, TargetFocusedPlaceholder, TargetHover, TargetActive, TargetDisabled}
	r.AddTargets(order...)

	r.SetStyle(TargetWrapper, "position", "relative")
	r.Width(TargetWrapper, false)
	r.Margin(TargetWrapper)
	r.Opacity(TargetWrapper)

	r.SetStyle(TargetField, "boxSizing", "border-box")
	r.SetStyle(TargetField, "width", "100%")
	r.FontStyles(TargetField, false)
	r.Padding(TargetField)
	r.Height(TargetField, false)
	box(r, TargetField)
	if kind.IsMultiline() {
		r.SetStyle(TargetField, "resize", "vertical")
	}

	// after Padding, reserved room for shrunk placeholder must win
	r.PlaceholderStyles(kind, styles.PlaceholderTargets{
		Field:       TargetField,
		Placeholder: TargetPlaceholder,
		Focused:     TargetFocusedPlaceholder,
	})

	states(r)
	return order
}

func assembleButton(r *styles.Resolver) []string {
	order := []string{TargetWrapper, TargetField, TargetHover, TargetActive, TargetDisabled}
	r.AddTargets(order...)

	r.Width(TargetWrapper, false)
	r.Margin(TargetWrapper)
	r.Opacity(TargetWrapper)

	r.SetStyle(TargetField, "cursor", "pointer")
	r.SetStyle(TargetField, "width", "100%")
	r.FontStyles(TargetField, false)
	r.Padding(TargetField)
	r.Height(TargetField, false)
	box(r, TargetField)

	states(r)
	return order
}

func assembleCheckbox(r *styles.Resolver) []string {
	order := []string{TargetWrapper, TargetField, TargetLabel, TargetHover, TargetActive, TargetDisabled}
	r.AddTargets(order...)

	r.SetStyle(TargetWrapper, "display", "flex")
	r.SetStyle(TargetWrapper, "alignItems", "center")
	r.Margin(TargetWrapper)
	r.Opacity(TargetWrapper)

	// box must keep its size whatever label length is
	r.Width(TargetField, true)
	r.Height(TargetField, true)
	box(r, TargetField)

	r.FontStyles(TargetLabel, false)
	r.Padding(TargetLabel)

	states(r)
	return order
}

func assembleSignature(r *styles.Resolver) []string {
	order := []string{TargetContainer, TargetField, TargetPlaceholder, TargetHover, TargetDisabled}
	r.AddTargets(order...)

	r.SetStyle(TargetContainer, "position", "relative")
	r.Width(TargetContainer, false)
	r.Height(TargetContainer, false)
	r.Margin(TargetContainer)
	box(r, TargetContainer)

	r.SetStyle(TargetField, "width", "100%")
	r.SetStyle(TargetField, "height", "100%")

	r.FontStyles(TargetPlaceholder, true)
	r.SetStyle(TargetPlaceholder, "position", "absolute")
	r.SetStyle(TargetPlaceholder, "pointerEvents", "none")

	r.SelectorStyles(TargetHover, hoverPrefix, true)
	r.SelectorStyles(TargetDisabled, disabledPrefix, true)
	return order
}

func assembleImage(r *styles.Resolver) []string {
	order := []string{TargetContainer}
	r.AddTargets(order...)

	r.Width(TargetContainer, true)
	r.Height(TargetContainer, true)
	r.Margin(TargetContainer)
	r.Opacity(TargetContainer)
	box(r, TargetContainer)
	r.BackgroundImageStyles(TargetContainer)
	return order
}

func assembleContainer(r *styles.Resolver) []string {
	order := []string{TargetContainer}
	r.AddTargets(order...)

	r.Width(TargetContainer, false)
	r.Height(TargetContainer, false)
	r.Padding(TargetContainer)
	r.Margin(TargetContainer)
	r.Opacity(TargetContainer)
	box(r, TargetContainer)
	// image goes over background color
	r.BackgroundImageStyles(TargetContainer)
	return order
}
