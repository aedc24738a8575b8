package structree

// ReprMode controls whether a generated representation is available for a
// registered type.
type ReprMode uint8

const (
	// ReprAuto generates a representation unless a rendering tool takes over.
	ReprAuto ReprMode = iota
	// ReprOn always generates a representation.
	ReprOn
	// ReprOff disables the generated representation; rendering tools fall
	// back to the display-color hook.
	ReprOff
)

// InitFunc is a custom initializer. It receives a construction Builder and
// the arguments passed to New, and must assign every declared field through
// the builder before returning.
type InitFunc func(b *Builder, args ...any) error

type config struct {
	init                   InitFunc
	repr                   ReprMode
	inheritedFields        bool
	builderInInit          bool
	overwriteInheritedInit bool
	generateInit           bool
	eq                     bool
	order                  bool
	namedOnly              bool
}

func defaultConfig() config {
	return config{
		builderInInit: true,
		generateInit:  true,
		repr:          ReprAuto,
		eq:            true,
	}
}

// Option configures a registration.
type Option func(*config)

// WithInheritedFields opts in to fields promoted from embedded structs.
// Without it, registration fails if the effective field list differs from the
// directly declared one. Registration also fails if the opt-in is given but
// nothing is actually promoted.
func WithInheritedFields() Option {
	return func(c *config) { c.inheritedFields = true }
}

// WithInit installs a custom initializer, replacing the generated positional
// constructor.
func WithInit(fn InitFunc) Option {
	return func(c *config) { c.init = fn }
}

// WithoutBuilderInInit disables the unset-field check when a custom
// initializer runs: the builder's slots are prefilled with zero values, so
// fields the initializer leaves untouched stay zero instead of failing.
func WithoutBuilderInInit() Option {
	return func(c *config) { c.builderInInit = false }
}

// WithOverwriteInheritedInit permits a generated initializer even when an
// embedded registered type carries a hand-written one.
func WithOverwriteInheritedInit() Option {
	return func(c *config) { c.overwriteInheritedInit = true }
}

// WithoutGeneratedInit suppresses the generated positional constructor. The
// initializer of an embedded registered type is inherited instead, if one
// exists; otherwise the type can only be built through FromAttributes or a
// Builder.
func WithoutGeneratedInit() Option {
	return func(c *config) { c.generateInit = false }
}

// WithRepr sets the representation mode.
func WithRepr(mode ReprMode) Option {
	return func(c *config) { c.repr = mode }
}

// WithoutEq disables field-wise equality for the type.
func WithoutEq() Option {
	return func(c *config) { c.eq = false }
}

// WithOrder enables field-wise ordering via Type.Compare. All fields must be
// of ordered kinds (integers, floats, strings, bools).
func WithOrder() Option {
	return func(c *config) { c.order = true }
}

// WithNamedFieldsOnly disables positional construction: instances must be
// built through FromAttributes, a Builder, or a custom initializer.
func WithNamedFieldsOnly() Option {
	return func(c *config) { c.namedOnly = true }
}
