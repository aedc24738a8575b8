package structree

import (
	"reflect"

	"github.com/structree/structree/errors"
)

// Builder stages field assignments during construction. It holds one optional
// slot per declared field; Build fails unless every slot was set. Builders
// are transient construction proxies: they are not registered with the tree
// protocol and must not outlive the construction call that created them.
type Builder struct {
	t     *Type
	slots []any
	set   []bool
}

// Builder returns a fresh construction builder for the type.
func (t *Type) Builder() *Builder {
	n := len(t.table.Fields)
	return &Builder{
		t:     t,
		slots: make([]any, n),
		set:   make([]bool, n),
	}
}

// Type returns the type being built.
func (b *Builder) Type() *Type { return b.t }

// Set stages a value for a declared field.
func (b *Builder) Set(name string, value any) error {
	i, f, err := b.slot(name)
	if err != nil {
		return err
	}
	if value != nil {
		if vt := reflect.TypeOf(value); !vt.AssignableTo(f.Type) {
			return errors.TypeMismatch(errors.PhaseConstruct, b.t.name, name, vt.String(), f.Type.String())
		}
	}
	b.slots[i] = value
	b.set[i] = true
	return nil
}

// Get reads back a staged value. The second result reports whether the field
// was set.
func (b *Builder) Get(name string) (any, bool) {
	i, _, err := b.slot(name)
	if err != nil || !b.set[i] {
		return nil, false
	}
	return b.slots[i], true
}

// Build produces the frozen instance. It fails with an uninitialized-field
// error naming the first field that was never set.
func (b *Builder) Build() (any, error) {
	rv := reflect.New(b.t.goType).Elem()
	for i, f := range b.t.table.Fields {
		if !b.set[i] {
			return nil, errors.UninitializedField(errors.PhaseConstruct, b.t.name, f.Name)
		}
		if err := b.t.setField(errors.PhaseConstruct, rv, f, b.slots[i]); err != nil {
			return nil, err
		}
	}
	return rv.Interface(), nil
}

// prefillZero marks every unset slot as holding its zero value, disabling the
// uninitialized-field check for initializers registered without builder
// staging.
func (b *Builder) prefillZero() {
	for i, f := range b.t.table.Fields {
		if !b.set[i] {
			b.slots[i] = reflect.Zero(f.Type).Interface()
			b.set[i] = true
		}
	}
}

func (b *Builder) slot(name string) (int, FieldInfo, error) {
	for i, f := range b.t.table.Fields {
		if f.Name == name {
			return i, FieldInfo{Name: f.Name, Type: f.Type, Role: f.Role}, nil
		}
	}
	return 0, FieldInfo{}, errors.UnknownField(errors.PhaseConstruct, b.t.name, name)
}
