package styles

import (
	"maps"
	"math"
	"strconv"

	"go.uber.org/zap"
)

const (
	// MobileBreakpoint is the screen width (in px) at and below which override
	// values apply.
	MobileBreakpoint = 478

	// BreakpointKey is the selector under which Resolved.Nested puts override
	// attributes.
	BreakpointKey = "@media (max-width: 478px)"
)

// Attrs maps attribute names (camelCase, e.g. "fontSize") to values.
type Attrs map[string]string

// Transform converts values of the requested properties into partial
// attribute map. Returning nil contributes nothing.
type Transform func(v Values) Attrs

// Resolved is a merged view of one or more targets. Override is nil when
// breakpoint handling is disabled or base only view was requested, otherwise
// it is always non-nil, even if empty.
type Resolved struct {
	Base     Attrs
	Override Attrs
}

// Nested returns attributes in a single map with overrides nested under
// BreakpointKey, which is the shape rendering layers consume.
func (r Resolved) Nested() map[string]any {
	out := make(map[string]any, len(r.Base)+1)
	for k, v := range r.Base {
		out[k] = v
	}
	if r.Override != nil {
		out[BreakpointKey] = maps.Clone(r.Override)
	}
	return out
}

// Resolver accumulates attributes per target for a single element during a
// single render pass. It is a builder: populate it with Apply and helpers,
// then read results with Target and Targets. Later writes of the same
// attribute to the same target win, so callers must apply most specific
// transforms last.
//
// Resolver is not safe for concurrent use.
type Resolver struct {
	log         *zap.Logger
	schema      Schema
	breakpoint  bool
	names       []string
	targets     map[string]Attrs
	breakpoints map[string]Attrs
}

// Option configures Resolver.
type Option func(*Resolver)

// WithoutBreakpoint disables override tracking, resolver then works with
// base values only.
func WithoutBreakpoint() Option {
	return func(r *Resolver) {
		r.breakpoint = false
	}
}

// WithLogger sets logger used for debug tracing.
func WithLogger(log *zap.Logger) Option {
	return func(r *Resolver) {
		if log != nil {
			r.log = log
		}
	}
}

// New creates resolver for the schema with initial set of targets.
func New(schema Schema, targets []string, opts ...Option) *Resolver {
	r := &Resolver{
		log:         zap.NewNop(),
		schema:      schema,
		breakpoint:  true,
		targets:     make(map[string]Attrs, len(targets)),
		breakpoints: make(map[string]Attrs, len(targets)),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.AddTargets(targets...)
	return r
}

// Names returns registered targets in registration order.
func (r *Resolver) Names() []string {
	out := make([]string, len(r.names))
	copy(out, r.names)
	return out
}

// AddTargets registers targets. Already registered targets keep their
// accumulated attributes.
func (r *Resolver) AddTargets(names ...string) {
	for _, name := range names {
		if name == "" {
			continue
		}
		if _, ok := r.targets[name]; ok {
			continue
		}
		r.names = append(r.names, name)
		r.targets[name] = make(Attrs)
		if r.breakpoint {
			r.breakpoints[name] = make(Attrs)
		}
	}
}

// Apply reads base values of props in order, calls fn and merges result into
// target base attributes. When breakpoint handling is enabled and at least
// one of props has an explicit override, fn is called again with override
// values (falling back to base per property) and the result is merged into
// target override attributes.
func (r *Resolver) Apply(target string, props []string, fn Transform) {
	if _, ok := r.targets[target]; !ok {
		r.log.Debug("Registering target on first use", zap.String("target", target))
		r.AddTargets(target)
	}

	base := make(Values, len(props))
	for i, name := range props {
		base[i] = r.schema.base(name)
	}
	maps.Copy(r.targets[target], fn(base))

	if !r.breakpoint || !r.schema.HasOverrides() {
		return
	}

	var (
		over       = make(Values, len(props))
		overridden bool
	)
	for i, name := range props {
		if v, ok := r.schema.override(name); ok {
			over[i] = v
			overridden = true
			continue
		}
		over[i] = base[i]
	}
	if !overridden {
		return
	}
	maps.Copy(r.breakpoints[target], fn(over))
}

// SetStyle puts constant value directly into target base attributes.
func (r *Resolver) SetStyle(target, key, value string) {
	if _, ok := r.targets[target]; !ok {
		r.AddTargets(target)
	}
	r.targets[target][key] = value
}

// Target returns copy of accumulated target attributes. Unless baseOnly is
// requested the override map is attached when breakpoint handling is enabled.
func (r *Resolver) Target(name string, baseOnly bool) Resolved {
	res := Resolved{Base: maps.Clone(r.targets[name])}
	if res.Base == nil {
		res.Base = make(Attrs)
	}
	if r.breakpoint && !baseOnly {
		res.Override = maps.Clone(r.breakpoints[name])
		if res.Override == nil {
			res.Override = make(Attrs)
		}
	}
	return res
}

// Targets merges several targets in order, later targets win on conflicting
// attributes. Empty names are ignored.
func (r *Resolver) Targets(names ...string) Resolved {
	res := Resolved{Base: make(Attrs)}
	if r.breakpoint {
		res.Override = make(Attrs)
	}
	for _, name := range names {
		if name == "" {
			continue
		}
		maps.Copy(res.Base, r.targets[name])
		if r.breakpoint {
			maps.Copy(res.Override, r.breakpoints[name])
		}
	}
	return res
}

// formatNumber returns shortest decimal representation of f rounded to
// thousandths.
func formatNumber(f float64) string {
	return strconv.FormatFloat(math.Round(f*1000)/1000, 'f', -1, 64)
}

// px formats f as pixel length.
func px(f float64) string {
	return formatNumber(f) + "px"
}
