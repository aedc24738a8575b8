package structree

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/structree/structree/errors"
	"github.com/structree/structree/internal/fields"
)

// FieldRole mirrors the classifier's verdict for one field.
type FieldRole = fields.Role

const (
	RoleChild  = fields.RoleChild
	RoleStatic = fields.RoleStatic
)

// FieldInfo describes one effective field of a registered type.
type FieldInfo struct {
	Name string
	Type reflect.Type
	Role FieldRole
}

// Type is the handle produced by registration. It holds the frozen field
// table and the registration record, and provides construction, equality and
// codec operations for its Go type.
type Type struct {
	goType     reflect.Type
	name       string
	table      fields.Table
	childNames []string
	cfg        config
	rec        record
}

// Name returns the Go type name, qualified with its package.
func (t *Type) Name() string { return t.name }

// GoType returns the underlying reflect type.
func (t *Type) GoType() reflect.Type { return t.goType }

// Fields returns the effective field list in declaration order.
func (t *Type) Fields() []FieldInfo {
	infos := make([]FieldInfo, len(t.table.Fields))
	for i, f := range t.table.Fields {
		infos[i] = FieldInfo{Name: f.Name, Type: f.Type, Role: f.Role}
	}
	return infos
}

// ChildFieldNames returns the declared order of child fields.
func (t *Type) ChildFieldNames() []string {
	names := make([]string, len(t.childNames))
	copy(names, t.childNames)
	return names
}

// NumFields returns the number of effective fields.
func (t *Type) NumFields() int { return len(t.table.Fields) }

// New constructs an instance. With a generated initializer, args are field
// values in declaration order. With a custom initializer, args are passed
// through to it.
func (t *Type) New(args ...any) (any, error) {
	if t.rec.init != nil {
		b := t.Builder()
		if !t.rec.builderInInit {
			b.prefillZero()
		}
		if err := t.rec.init(b, args...); err != nil {
			return nil, err
		}
		return b.Build()
	}

	if !t.rec.generatedInit {
		return nil, errors.Unsupported(errors.PhaseConstruct,
			"no initializer available for "+t.name+"; use FromAttributes or a Builder")
	}
	if t.cfg.namedOnly {
		return nil, errors.InvalidInput(errors.PhaseConstruct,
			"positional construction is disabled for "+t.name+"; use FromAttributes or a Builder")
	}
	if len(args) != len(t.table.Fields) {
		return nil, errors.New(errors.PhaseConstruct, errors.KindInvalidInput).
			GoType(t.name).
			Detail("%d arguments for %d fields", len(args), len(t.table.Fields)).
			Build()
	}

	rv := reflect.New(t.goType).Elem()
	for i, f := range t.table.Fields {
		if err := t.setField(errors.PhaseConstruct, rv, f, args[i]); err != nil {
			return nil, err
		}
	}
	return rv.Interface(), nil
}

// FromAttributes constructs an instance directly from a full field-value
// mapping, bypassing any custom initializer. Every declared field must be
// present; no extra names are allowed.
func (t *Type) FromAttributes(attrs map[string]any) (any, error) {
	for name := range attrs {
		if _, ok := t.table.Lookup(name); !ok {
			return nil, errors.UnknownField(errors.PhaseConstruct, t.name, name)
		}
	}

	rv := reflect.New(t.goType).Elem()
	for _, f := range t.table.Fields {
		val, ok := attrs[f.Name]
		if !ok {
			return nil, errors.UninitializedField(errors.PhaseConstruct, t.name, f.Name)
		}
		if err := t.setField(errors.PhaseConstruct, rv, f, val); err != nil {
			return nil, err
		}
	}
	return rv.Interface(), nil
}

// Equal compares two instances field-wise. It fails if equality was disabled
// at registration.
func (t *Type) Equal(a, b any) (bool, error) {
	if !t.cfg.eq {
		return false, errors.Unsupported(errors.PhaseConstruct, "equality not generated for "+t.name)
	}
	va, err := t.instance(a)
	if err != nil {
		return false, err
	}
	vb, err := t.instance(b)
	if err != nil {
		return false, err
	}
	for _, f := range t.table.Fields {
		if !reflect.DeepEqual(va.FieldByIndex(f.Path).Interface(), vb.FieldByIndex(f.Path).Interface()) {
			return false, nil
		}
	}
	return true, nil
}

// Compare orders two instances field-wise in declaration order. It fails
// unless ordering was requested at registration, or when a field's kind has
// no defined order.
func (t *Type) Compare(a, b any) (int, error) {
	if !t.cfg.order {
		return 0, errors.Unsupported(errors.PhaseConstruct, "ordering not generated for "+t.name)
	}
	va, err := t.instance(a)
	if err != nil {
		return 0, err
	}
	vb, err := t.instance(b)
	if err != nil {
		return 0, err
	}
	for _, f := range t.table.Fields {
		c, err := compareValues(va.FieldByIndex(f.Path), vb.FieldByIndex(f.Path))
		if err != nil {
			return 0, errors.New(errors.PhaseConstruct, errors.KindUnsupported).
				GoType(t.name).
				Field(f.Name).
				Cause(err).
				Detail("field kind has no defined order").
				Build()
		}
		if c != 0 {
			return c, nil
		}
	}
	return 0, nil
}

// Repr renders a generated single-line representation, TypeName(F1=v1, ...).
// It fails if representation generation was disabled.
func (t *Type) Repr(v any) (string, error) {
	if t.cfg.repr == ReprOff {
		return "", errors.Unsupported(errors.PhaseConstruct, "representation not generated for "+t.name)
	}
	rv, err := t.instance(v)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	b.WriteString(t.name)
	b.WriteByte('(')
	for i, f := range t.table.Fields {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%s=%v", f.Name, rv.FieldByIndex(f.Path).Interface())
	}
	b.WriteByte(')')
	return b.String(), nil
}

// ReprMode returns the representation mode recorded at registration.
func (t *Type) ReprMode() ReprMode { return t.cfg.repr }

func (t *Type) instance(v any) (reflect.Value, error) {
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Ptr {
		rv = rv.Elem()
	}
	if !rv.IsValid() || rv.Type() != t.goType {
		got := "nil"
		if rv.IsValid() {
			got = rv.Type().String()
		}
		return reflect.Value{}, errors.New(errors.PhaseConstruct, errors.KindTypeMismatch).
			GoType(t.name).
			Detail("value of type %s is not an instance of %s", got, t.name).
			Build()
	}
	return rv, nil
}

func (t *Type) setField(phase errors.Phase, rv reflect.Value, f fields.Field, val any) error {
	fv := rv.FieldByIndex(f.Path)
	if val == nil {
		switch f.Type.Kind() {
		case reflect.Ptr, reflect.Interface, reflect.Slice, reflect.Map, reflect.Chan, reflect.Func:
			fv.Set(reflect.Zero(f.Type))
			return nil
		default:
			return errors.TypeMismatch(phase, t.name, f.Name, "nil", f.Type.String())
		}
	}
	v := reflect.ValueOf(val)
	if !v.Type().AssignableTo(f.Type) {
		return errors.TypeMismatch(phase, t.name, f.Name, v.Type().String(), f.Type.String())
	}
	fv.Set(v)
	return nil
}

func compareValues(a, b reflect.Value) (int, error) {
	switch a.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return cmpOrdered(a.Int(), b.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return cmpOrdered(a.Uint(), b.Uint()), nil
	case reflect.Float32, reflect.Float64:
		return cmpOrdered(a.Float(), b.Float()), nil
	case reflect.String:
		return cmpOrdered(a.String(), b.String()), nil
	case reflect.Bool:
		av, bv := a.Bool(), b.Bool()
		switch {
		case av == bv:
			return 0, nil
		case !av:
			return -1, nil
		default:
			return 1, nil
		}
	default:
		return 0, fmt.Errorf("cannot order values of kind %s", a.Kind())
	}
}

func cmpOrdered[T int64 | uint64 | float64 | string](a, b T) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
