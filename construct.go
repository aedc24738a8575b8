package structree

import (
	"reflect"

	"github.com/structree/structree/errors"
)

// New constructs an instance of T through its registered initializer. It is
// the guarded construction path: a type that never completed registration
// fails with an abstract-type error, even if it embeds a registered type.
func New[T Node](args ...any) (T, error) {
	var zero T
	t, ok := TypeFor[T]()
	if !ok {
		return zero, errors.AbstractType(reflect.TypeFor[T]().String())
	}
	v, err := t.New(args...)
	if err != nil {
		return zero, err
	}
	return v.(T), nil
}

// MustNew is New that panics on failure.
func MustNew[T Node](args ...any) T {
	v, err := New[T](args...)
	if err != nil {
		panic(err)
	}
	return v
}

// FromAttributes constructs an instance of T directly from a full field-value
// mapping, bypassing any custom initializer. This is the reconstruction entry
// point used by rewriting tools that must not re-run initializer logic.
func FromAttributes[T Node](attrs map[string]any) (T, error) {
	var zero T
	t, ok := TypeFor[T]()
	if !ok {
		return zero, errors.AbstractType(reflect.TypeFor[T]().String())
	}
	v, err := t.FromAttributes(attrs)
	if err != nil {
		return zero, err
	}
	return v.(T), nil
}

// AttributesDict returns every declared field of a registered instance, both
// child and static, as a name-to-value mapping. The result can be passed back
// to FromAttributes to rebuild a copy of the value.
func AttributesDict(v any) (map[string]any, error) {
	t, rv, err := instanceOf(errors.PhaseFlatten, v)
	if err != nil {
		return nil, err
	}
	attrs := make(map[string]any, len(t.table.Fields))
	for _, f := range t.table.Fields {
		attrs[f.Name] = rv.FieldByIndex(f.Path).Interface()
	}
	return attrs, nil
}

// Equal compares two registered instances field-wise. Values of different
// types are unequal.
func Equal(a, b any) (bool, error) {
	t, _, err := instanceOf(errors.PhaseFlatten, a)
	if err != nil {
		return false, err
	}
	if b == nil || baseType(b) != t.goType {
		return false, nil
	}
	return t.Equal(a, b)
}

// instanceOf resolves a value to its registered Type and dereferenced
// reflect.Value.
func instanceOf(phase errors.Phase, v any) (*Type, reflect.Value, error) {
	if v == nil {
		return nil, reflect.Value{}, errors.InvalidInput(phase, "nil value")
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Ptr {
		if rv.IsNil() {
			return nil, reflect.Value{}, errors.InvalidInput(phase, "nil pointer")
		}
		rv = rv.Elem()
	}
	t, ok := Lookup(rv.Type())
	if !ok {
		return nil, reflect.Value{}, errors.NotRegistered(phase, rv.Type().String())
	}
	return t, rv, nil
}

func baseType(v any) reflect.Type {
	rt := reflect.TypeOf(v)
	if rt != nil && rt.Kind() == reflect.Ptr {
		rt = rt.Elem()
	}
	return rt
}
