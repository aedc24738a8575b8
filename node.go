package structree

// Node is the contract required of every registered type. It is satisfied by
// embedding Struct; there is no other way to implement it, which keeps the
// tree protocol confined to types that opted in.
type Node interface {
	treeStruct()
}

// Struct is the embeddable base for tree node types. It contributes no fields
// of its own and is skipped by the field classifier.
type Struct struct{}

func (Struct) treeStruct() {}

// Keyed customizes how traversal keys are derived from field names. The hook
// is type-level: implementations must not depend on instance state, so that
// flattening the same type always yields the same key for a given field.
type Keyed interface {
	TreeKeyForField(name string) Key
}

// Colorizer overrides the display color used by rendering tools. Both values
// are CSS-style color strings; either may be empty to fall back to defaults.
type Colorizer interface {
	TreescopeColor() (border, fill string)
}

// Callable marks node types that carry invocation behavior. Rendering tools
// highlight callable nodes by default.
type Callable interface {
	Call(args ...any) (any, error)
}
