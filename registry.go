package structree

import (
	"reflect"
	"sync"

	"go.uber.org/zap"

	"github.com/structree/structree/errors"
	"github.com/structree/structree/internal/fields"
)

// record is the registration metadata consulted when embedders of a
// registered type are themselves registered. Created once at registration
// time and never mutated.
type record struct {
	init          InitFunc // nil when the positional constructor was generated
	generatedInit bool
	inheritedInit bool
	builderInInit bool
}

var (
	regMu    sync.Mutex
	registry = make(map[reflect.Type]*Type)
)

var nodeIface = reflect.TypeFor[Node]()

// Register registers T as a keyed tree node type. It must be called exactly
// once per concrete type, normally during package initialization. Embedding a
// registered type does not register the embedder.
func Register[T Node](opts ...Option) (*Type, error) {
	return RegisterType(reflect.TypeFor[T](), opts...)
}

// MustRegister is Register that panics on failure, for use in package-level
// variable initialization.
func MustRegister[T Node](opts ...Option) *Type {
	t, err := Register[T](opts...)
	if err != nil {
		panic(err)
	}
	return t
}

// RegisterType is the reflection-level registration entry point. Unlike the
// generic Register, the Node contract is checked at runtime here.
func RegisterType(rt reflect.Type, opts ...Option) (*Type, error) {
	if rt == nil || rt.Kind() != reflect.Struct {
		return nil, errors.InvalidInput(errors.PhaseRegister, "only struct types can be registered")
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	regMu.Lock()
	defer regMu.Unlock()

	if _, ok := registry[rt]; ok {
		return nil, errors.AlreadyRegistered(rt.String())
	}

	// A generated initializer must not silently replace a hand-written one
	// inherited from an embedded registered type.
	if cfg.generateInit && cfg.init == nil && !cfg.overwriteInheritedInit {
		if parent, pt := embeddedParent(rt); parent != nil && parent.rec.init != nil {
			return nil, errors.UnsafeInitOverwrite(rt.String(), pt.String())
		}
	}

	tb, err := fields.Build(rt)
	if err != nil {
		return nil, err
	}

	promoted := tb.Promoted()
	if cfg.inheritedFields {
		if len(promoted) == 0 {
			return nil, errors.RedundantOption(rt.String(), "WithInheritedFields")
		}
	} else if len(promoted) > 0 || !equalStrings(tb.Declared, tb.Names()) {
		return nil, errors.FieldOrderMismatch(rt.String(), tb.Declared, tb.Names())
	}

	if !rt.Implements(nodeIface) && !reflect.PointerTo(rt).Implements(nodeIface) {
		return nil, errors.MissingCodec(rt.String())
	}

	rec := record{
		init:          cfg.init,
		generatedInit: cfg.generateInit && cfg.init == nil,
		builderInInit: cfg.builderInInit,
	}
	if !cfg.generateInit && cfg.init == nil {
		// Inherit the embedded registered type's initializer, if any.
		if parent, _ := embeddedParent(rt); parent != nil && parent.rec.init != nil {
			rec.init = parent.rec.init
			rec.inheritedInit = true
			rec.builderInInit = parent.rec.builderInInit
		}
	}

	t := &Type{
		goType:     rt,
		name:       rt.String(),
		table:      tb,
		childNames: tb.ChildNames(),
		cfg:        cfg,
		rec:        rec,
	}
	registry[rt] = t

	Logger().Debug("registered tree node type",
		zap.String("type", t.name),
		zap.Strings("children", t.childNames),
		zap.Int("fields", len(tb.Fields)))

	return t, nil
}

// Lookup returns the registered Type for a reflect type.
func Lookup(rt reflect.Type) (*Type, bool) {
	regMu.Lock()
	defer regMu.Unlock()
	t, ok := registry[rt]
	return t, ok
}

// TypeFor returns the registered Type for T.
func TypeFor[T Node]() (*Type, bool) {
	return Lookup(reflect.TypeFor[T]())
}

// IsRegistered reports whether a reflect type completed registration.
func IsRegistered(rt reflect.Type) bool {
	_, ok := Lookup(rt)
	return ok
}

// embeddedParent finds the first embedded registered type. Callers must hold
// regMu.
func embeddedParent(rt reflect.Type) (*Type, reflect.Type) {
	for i := 0; i < rt.NumField(); i++ {
		sf := rt.Field(i)
		if !sf.Anonymous || sf.Type.Kind() != reflect.Struct {
			continue
		}
		if parent, ok := registry[sf.Type]; ok {
			return parent, sf.Type
		}
	}
	return nil, nil
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
