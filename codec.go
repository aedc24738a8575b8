package structree

import (
	"reflect"

	"github.com/structree/structree/errors"
	"github.com/structree/structree/internal/fields"
)

// FlattenWithKeys decomposes a registered instance into (key, child) pairs
// and static metadata. Fields are visited in declaration order; static fields
// go into the metadata, child fields produce a pair whose key is derived from
// the field name (or from the type's Keyed hook).
func FlattenWithKeys(v any) ([]KeyChild, Metadata, error) {
	t, rv, err := instanceOf(errors.PhaseFlatten, v)
	if err != nil {
		return nil, Metadata{}, err
	}

	meta := Metadata{StaticFields: make(map[string]any)}
	var children []KeyChild
	for _, f := range t.table.Fields {
		val := rv.FieldByIndex(f.Path).Interface()
		if f.Role == fields.RoleStatic {
			meta.StaticFields[f.Name] = val
			continue
		}
		meta.ChildFieldNames = append(meta.ChildFieldNames, f.Name)
		children = append(children, KeyChild{Key: keyForField(v, f.Name), Value: val})
	}
	return children, meta, nil
}

// Flatten is FlattenWithKeys stripped of keys, for traversal tools that do
// not need addressing.
func Flatten(v any) ([]any, Metadata, error) {
	t, rv, err := instanceOf(errors.PhaseFlatten, v)
	if err != nil {
		return nil, Metadata{}, err
	}

	meta := Metadata{StaticFields: make(map[string]any)}
	var children []any
	for _, f := range t.table.Fields {
		val := rv.FieldByIndex(f.Path).Interface()
		if f.Role == fields.RoleStatic {
			meta.StaticFields[f.Name] = val
			continue
		}
		meta.ChildFieldNames = append(meta.ChildFieldNames, f.Name)
		children = append(children, val)
	}
	return children, meta, nil
}

// Unflatten reconstructs an instance from a decomposition pair. Children are
// zipped back onto the recorded field names, merged with the static fields,
// and the instance is built through the attribute-direct path so that
// reconstruction works even for types with custom initializers.
func Unflatten(t *Type, meta Metadata, children []any) (any, error) {
	if t == nil {
		return nil, errors.InvalidInput(errors.PhaseUnflatten, "nil type")
	}
	if len(children) != len(meta.ChildFieldNames) {
		return nil, errors.LengthMismatch(t.name, len(meta.ChildFieldNames), len(children))
	}

	attrs := make(map[string]any, len(t.table.Fields))
	for name, val := range meta.StaticFields {
		attrs[name] = val
	}
	for i, name := range meta.ChildFieldNames {
		attrs[name] = children[i]
	}

	v, err := t.FromAttributes(attrs)
	if err != nil {
		if e, ok := err.(*errors.Error); ok {
			e.Phase = errors.PhaseUnflatten
		}
		return nil, err
	}
	return v, nil
}

// UnflattenAs is Unflatten resolved through T's registration.
func UnflattenAs[T Node](meta Metadata, children []any) (T, error) {
	var zero T
	t, ok := TypeFor[T]()
	if !ok {
		return zero, errors.NotRegistered(errors.PhaseUnflatten, reflect.TypeFor[T]().String())
	}
	v, err := Unflatten(t, meta, children)
	if err != nil {
		return zero, err
	}
	return v.(T), nil
}

func keyForField(v any, name string) Key {
	if k, ok := v.(Keyed); ok {
		return k.TreeKeyForField(name)
	}
	return AttrKey{Name: name}
}
