package fields

import (
	stderrors "errors"
	"reflect"
	"testing"

	"github.com/structree/structree/errors"
)

func TestClassify(t *testing.T) {
	type sample struct {
		Child   int
		Static  int `tree:"static"`
		Tagged  int `tree:"something-else"`
		Ignored int `json:"static"`
	}
	rt := reflect.TypeFor[sample]()

	cases := []struct {
		field string
		want  Role
	}{
		{"Child", RoleChild},
		{"Static", RoleStatic},
		{"Tagged", RoleChild},
		{"Ignored", RoleChild},
	}
	for _, tc := range cases {
		sf, _ := rt.FieldByName(tc.field)
		if got := Classify(sf); got != tc.want {
			t.Errorf("Classify(%s) = %v, want %v", tc.field, got, tc.want)
		}
	}
}

func TestRole_String(t *testing.T) {
	if RoleChild.String() != "child" || RoleStatic.String() != "static" {
		t.Errorf("role names = %q, %q", RoleChild, RoleStatic)
	}
	if Role(9).String() != "unknown" {
		t.Errorf("out-of-range role = %q", Role(9))
	}
}

type marker struct{}

type base struct {
	marker
	A int
	B int `tree:"static"`
}

type extended struct {
	marker
	base
	C int
}

func TestBuild_Flat(t *testing.T) {
	tb, err := Build(reflect.TypeFor[base]())
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	if !reflect.DeepEqual(tb.Names(), []string{"A", "B"}) {
		t.Errorf("Names = %v, want [A B]", tb.Names())
	}
	if !reflect.DeepEqual(tb.Declared, []string{"A", "B"}) {
		t.Errorf("Declared = %v, want [A B]", tb.Declared)
	}
	if !reflect.DeepEqual(tb.ChildNames(), []string{"A"}) {
		t.Errorf("ChildNames = %v, want [A]", tb.ChildNames())
	}
	if len(tb.Promoted()) != 0 {
		t.Errorf("Promoted = %v, want empty", tb.Promoted())
	}
}

func TestBuild_Embedded(t *testing.T) {
	tb, err := Build(reflect.TypeFor[extended]())
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	// Promoted fields appear in the embedder's position, direct fields after.
	if !reflect.DeepEqual(tb.Names(), []string{"A", "B", "C"}) {
		t.Errorf("Names = %v, want [A B C]", tb.Names())
	}
	if !reflect.DeepEqual(tb.Declared, []string{"C"}) {
		t.Errorf("Declared = %v, want [C]", tb.Declared)
	}
	if !reflect.DeepEqual(tb.Promoted(), []string{"A", "B"}) {
		t.Errorf("Promoted = %v, want [A B]", tb.Promoted())
	}

	a, ok := tb.Lookup("A")
	if !ok {
		t.Fatal("Lookup(A) missed")
	}
	if len(a.Path) != 2 {
		t.Errorf("path of promoted field = %v, want depth 2", a.Path)
	}
	if a.Role != RoleChild {
		t.Errorf("promoted role = %v, want child", a.Role)
	}
	b, _ := tb.Lookup("B")
	if b.Role != RoleStatic {
		t.Errorf("promoted static role = %v, want static", b.Role)
	}
}

func TestBuild_PathsSettable(t *testing.T) {
	tb, err := Build(reflect.TypeFor[extended]())
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	rv := reflect.New(reflect.TypeFor[extended]()).Elem()
	for _, f := range tb.Fields {
		fv := rv.FieldByIndex(f.Path)
		if !fv.CanSet() {
			t.Errorf("field %s at %v is not settable", f.Name, f.Path)
		}
	}
}

func TestBuild_UnexportedField(t *testing.T) {
	type hidden struct {
		A int
		b int
	}
	_, err := Build(reflect.TypeFor[hidden]())
	if !stderrors.Is(err, errors.UnexportedField("", "")) {
		t.Errorf("Build = %v, want unexported_field", err)
	}
}

func TestBuild_EmbeddedPointer(t *testing.T) {
	type viaPtr struct {
		*base
	}
	_, err := Build(reflect.TypeFor[viaPtr]())
	if !stderrors.Is(err, errors.Unsupported(errors.PhaseRegister, "")) {
		t.Errorf("Build = %v, want unsupported", err)
	}
}

func TestBuild_ShadowedField(t *testing.T) {
	type shadower struct {
		base
		A string
	}
	tb, err := Build(reflect.TypeFor[shadower]())
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	// The shallow declaration wins; the promoted A from base is hidden.
	a, ok := tb.Lookup("A")
	if !ok {
		t.Fatal("Lookup(A) missed")
	}
	if a.Type.Kind() != reflect.String {
		t.Errorf("shadowed field type = %v, want string", a.Type)
	}
	if a.Promoted {
		t.Error("shadowing declaration reported as promoted")
	}
}
