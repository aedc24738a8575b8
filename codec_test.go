package structree

import (
	stderrors "errors"
	"reflect"
	"testing"

	"github.com/structree/structree/errors"
)

type codecPoint struct {
	Struct
	X float64
	Y float64
}

type codecTagged struct {
	Struct
	Value any
	Tag   string `tree:"static"`
}

func init() {
	MustRegister[codecPoint]()
	MustRegister[codecTagged]()
}

func TestFlattenWithKeys_Point(t *testing.T) {
	p := MustNew[codecPoint](1.0, 2.0)

	children, meta, err := FlattenWithKeys(p)
	if err != nil {
		t.Fatalf("FlattenWithKeys failed: %v", err)
	}

	if len(children) != 2 {
		t.Fatalf("children len = %d, want 2", len(children))
	}
	if children[0].Key.String() != ".X" || children[0].Value != 1.0 {
		t.Errorf("children[0] = (%v, %v), want (.X, 1)", children[0].Key, children[0].Value)
	}
	if children[1].Key.String() != ".Y" || children[1].Value != 2.0 {
		t.Errorf("children[1] = (%v, %v), want (.Y, 2)", children[1].Key, children[1].Value)
	}
	if !reflect.DeepEqual(meta.ChildFieldNames, []string{"X", "Y"}) {
		t.Errorf("ChildFieldNames = %v, want [X Y]", meta.ChildFieldNames)
	}
	if len(meta.StaticFields) != 0 {
		t.Errorf("StaticFields = %v, want empty", meta.StaticFields)
	}
	if len(children) != meta.NumChildren() {
		t.Errorf("children/metadata length divergence: %d vs %d", len(children), meta.NumChildren())
	}
}

func TestFlatten_StaticSeparation(t *testing.T) {
	v := MustNew[codecTagged](42, "label")

	children, meta, err := Flatten(v)
	if err != nil {
		t.Fatalf("Flatten failed: %v", err)
	}

	if !reflect.DeepEqual(children, []any{42}) {
		t.Errorf("children = %v, want [42]", children)
	}
	if !reflect.DeepEqual(meta.ChildFieldNames, []string{"Value"}) {
		t.Errorf("ChildFieldNames = %v, want [Value]", meta.ChildFieldNames)
	}
	if meta.StaticFields["Tag"] != "label" {
		t.Errorf("StaticFields[Tag] = %v, want label", meta.StaticFields["Tag"])
	}
}

func TestRoundTrip(t *testing.T) {
	p := MustNew[codecPoint](3.5, -1.0)

	children, meta, err := FlattenWithKeys(p)
	if err != nil {
		t.Fatalf("FlattenWithKeys failed: %v", err)
	}
	values := make([]any, len(children))
	for i, kc := range children {
		values[i] = kc.Value
	}

	back, err := UnflattenAs[codecPoint](meta, values)
	if err != nil {
		t.Fatalf("Unflatten failed: %v", err)
	}
	if back != p {
		t.Errorf("round trip produced %+v, want %+v", back, p)
	}

	v := MustNew[codecTagged]([]int{1, 2}, "label")
	children2, meta2, err := Flatten(v)
	if err != nil {
		t.Fatalf("Flatten failed: %v", err)
	}
	back2, err := UnflattenAs[codecTagged](meta2, children2)
	if err != nil {
		t.Fatalf("Unflatten failed: %v", err)
	}
	eq, err := Equal(v, back2)
	if err != nil {
		t.Fatalf("Equal failed: %v", err)
	}
	if !eq {
		t.Errorf("round trip produced %+v, want %+v", back2, v)
	}
}

func TestFlatten_Determinism(t *testing.T) {
	v := MustNew[codecTagged]("payload", "label")

	c1, m1, err := FlattenWithKeys(v)
	if err != nil {
		t.Fatalf("first flatten failed: %v", err)
	}
	c2, m2, err := FlattenWithKeys(v)
	if err != nil {
		t.Fatalf("second flatten failed: %v", err)
	}

	if !reflect.DeepEqual(c1, c2) {
		t.Errorf("children differ between flattens: %v vs %v", c1, c2)
	}
	if !reflect.DeepEqual(m1, m2) {
		t.Errorf("metadata differs between flattens: %v vs %v", m1, m2)
	}
}

func TestFieldOrderInvariant(t *testing.T) {
	typ, _ := TypeFor[codecTagged]()
	v := MustNew[codecTagged](1, "t")

	_, meta, err := Flatten(v)
	if err != nil {
		t.Fatalf("Flatten failed: %v", err)
	}
	if !reflect.DeepEqual(meta.ChildFieldNames, typ.ChildFieldNames()) {
		t.Errorf("metadata child names %v diverge from declared order %v",
			meta.ChildFieldNames, typ.ChildFieldNames())
	}
}

func TestUnflatten_LengthMismatch(t *testing.T) {
	typ, _ := TypeFor[codecPoint]()
	meta := Metadata{ChildFieldNames: []string{"X", "Y"}}

	_, err := Unflatten(typ, meta, []any{1.0})
	if !stderrors.Is(err, errors.LengthMismatch("", 0, 0)) {
		t.Errorf("Unflatten = %v, want length_mismatch", err)
	}
}

type initPicky struct {
	Struct
	N int
}

func init() {
	MustRegister[initPicky](WithInit(func(b *Builder, args ...any) error {
		if len(args) != 1 {
			return errors.InvalidInput(errors.PhaseConstruct, "initPicky takes exactly one argument")
		}
		return b.Set("N", args[0])
	}))
}

func TestUnflatten_BypassesCustomInit(t *testing.T) {
	// The initializer rejects zero-argument calls; reconstruction must not
	// invoke it at all.
	meta := Metadata{ChildFieldNames: []string{"N"}}
	v, err := UnflattenAs[initPicky](meta, []any{5})
	if err != nil {
		t.Fatalf("Unflatten failed: %v", err)
	}
	if v.N != 5 {
		t.Errorf("N = %d, want 5", v.N)
	}
}

type renamedKeys struct {
	Struct
	Weights []float64
}

func (renamedKeys) TreeKeyForField(name string) Key {
	return AttrKey{Name: "param:" + name}
}

func init() {
	MustRegister[renamedKeys]()
}

func TestKeyedHook(t *testing.T) {
	v := MustNew[renamedKeys]([]float64{1, 2})

	children, _, err := FlattenWithKeys(v)
	if err != nil {
		t.Fatalf("FlattenWithKeys failed: %v", err)
	}
	if got := children[0].Key.String(); got != ".param:Weights" {
		t.Errorf("key = %q, want .param:Weights", got)
	}
}

func TestFlatten_Unregistered(t *testing.T) {
	type loner struct {
		Struct
		N int
	}
	_, _, err := Flatten(loner{N: 1})
	if !stderrors.Is(err, errors.NotRegistered(errors.PhaseFlatten, "")) {
		t.Errorf("Flatten = %v, want not_registered", err)
	}
}
