package fields

import (
	"reflect"

	"github.com/structree/structree/errors"
)

// TagName is the struct tag key consulted by the classifier.
const TagName = "tree"

// Role decides whether a field participates in tree traversal.
type Role uint8

const (
	RoleChild Role = iota
	RoleStatic
)

var roleNames = [...]string{
	RoleChild:  "child",
	RoleStatic: "static",
}

func (r Role) String() string {
	if int(r) < len(roleNames) {
		return roleNames[r]
	}
	return "unknown"
}

// Classify returns the role of a struct field. Fields are children unless the
// tree tag explicitly marks them static. This is the single source of truth
// for field classification: the registrar and the codec both route through
// the Table built here.
func Classify(sf reflect.StructField) Role {
	if sf.Tag.Get(TagName) == "static" {
		return RoleStatic
	}
	return RoleChild
}

// Field describes one effective field of a registered type.
type Field struct {
	Type     reflect.Type
	Name     string
	Path     []int // reflect index path; len > 1 for promoted fields
	Role     Role
	Promoted bool
}

// Table is the ordered field set of a struct type, in declaration order, with
// promoted fields from embedded structs in the position of their embedder.
type Table struct {
	Fields   []Field
	Declared []string // directly declared exported field names, in order
	byName   map[string]int
}

// Build walks a struct type and produces its field table. Embedded struct
// fields act as containers: the container itself is skipped and its promoted
// exported fields take its place. Unexported fields and embedded pointers are
// rejected since the codec could not reconstruct values through them.
func Build(t reflect.Type) (Table, error) {
	var tb Table

	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if sf.Anonymous {
			if sf.Type.Kind() == reflect.Ptr {
				return tb, errors.New(errors.PhaseRegister, errors.KindUnsupported).
					GoType(t.String()).
					Field(sf.Name).
					Detail("embedded pointer fields are not supported").
					Build()
			}
			if sf.Type.Kind() == reflect.Struct {
				continue
			}
		}
		if !sf.IsExported() {
			return tb, errors.UnexportedField(t.String(), sf.Name)
		}
		tb.Declared = append(tb.Declared, sf.Name)
	}

	for _, sf := range reflect.VisibleFields(t) {
		if sf.Anonymous && sf.Type.Kind() == reflect.Struct {
			continue // container; its promoted fields are listed separately
		}
		if !sf.IsExported() {
			if len(sf.Index) > 1 {
				continue // unexported field of an embedded struct
			}
			return tb, errors.UnexportedField(t.String(), sf.Name)
		}

		path := make([]int, len(sf.Index))
		copy(path, sf.Index)
		tb.Fields = append(tb.Fields, Field{
			Type:     sf.Type,
			Name:     sf.Name,
			Path:     path,
			Role:     Classify(sf),
			Promoted: len(sf.Index) > 1,
		})
	}

	tb.byName = make(map[string]int, len(tb.Fields))
	for i, f := range tb.Fields {
		tb.byName[f.Name] = i
	}
	return tb, nil
}

// Lookup finds a field by name.
func (tb Table) Lookup(name string) (Field, bool) {
	i, ok := tb.byName[name]
	if !ok {
		return Field{}, false
	}
	return tb.Fields[i], true
}

// Names returns all effective field names in declaration order.
func (tb Table) Names() []string {
	names := make([]string, len(tb.Fields))
	for i, f := range tb.Fields {
		names[i] = f.Name
	}
	return names
}

// ChildNames returns effective field names restricted to children.
func (tb Table) ChildNames() []string {
	var names []string
	for _, f := range tb.Fields {
		if f.Role == RoleChild {
			names = append(names, f.Name)
		}
	}
	return names
}

// Promoted returns the names of fields inherited from embedded structs.
func (tb Table) Promoted() []string {
	var names []string
	for _, f := range tb.Fields {
		if f.Promoted {
			names = append(names, f.Name)
		}
	}
	return names
}
