package structree

import (
	stderrors "errors"
	"testing"

	"github.com/structree/structree/errors"
)

type scaled struct {
	Struct
	Raw    float64
	Scaled float64
}

func init() {
	MustRegister[scaled](WithInit(func(b *Builder, args ...any) error {
		if len(args) != 2 {
			return errors.InvalidInput(errors.PhaseConstruct, "scaled takes a value and a factor")
		}
		raw := args[0].(float64)
		factor := args[1].(float64)
		if err := b.Set("Raw", raw); err != nil {
			return err
		}
		return b.Set("Scaled", raw*factor)
	}))
}

func TestBuilder_CustomInit(t *testing.T) {
	v, err := New[scaled](3.0, 2.0)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if v.Raw != 3.0 || v.Scaled != 6.0 {
		t.Errorf("New produced %+v, want Raw=3 Scaled=6", v)
	}
}

type halfInit struct {
	Struct
	A int
	B int
}

func init() {
	MustRegister[halfInit](WithInit(func(b *Builder, args ...any) error {
		return b.Set("A", 1)
	}))
}

func TestBuilder_Uninitialized(t *testing.T) {
	_, err := New[halfInit]()
	if !stderrors.Is(err, errors.UninitializedField(errors.PhaseConstruct, "", "")) {
		t.Fatalf("New = %v, want uninitialized_field", err)
	}

	var e *errors.Error
	if !stderrors.As(err, &e) {
		t.Fatal("error is not a structured error")
	}
	if e.Field != "B" {
		t.Errorf("Field = %q, want B", e.Field)
	}
}

func TestBuilder_Direct(t *testing.T) {
	typ, ok := TypeFor[scaled]()
	if !ok {
		t.Fatal("type not registered")
	}

	b := typ.Builder()
	if err := b.Set("Raw", 1.5); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := b.Set("Scaled", 3.0); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	got, ok := b.Get("Raw")
	if !ok || got != 1.5 {
		t.Errorf("Get(Raw) = (%v, %v), want (1.5, true)", got, ok)
	}
	if _, ok := b.Get("Missing"); ok {
		t.Error("Get on an unknown field reported set")
	}

	v, err := b.Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if s := v.(scaled); s.Raw != 1.5 || s.Scaled != 3.0 {
		t.Errorf("Build produced %+v", s)
	}
}

func TestBuilder_Errors(t *testing.T) {
	typ, _ := TypeFor[scaled]()
	b := typ.Builder()

	if err := b.Set("Nope", 1.0); !stderrors.Is(err, errors.UnknownField(errors.PhaseConstruct, "", "")) {
		t.Errorf("Set unknown field = %v, want unknown_field", err)
	}
	if err := b.Set("Raw", "text"); !stderrors.Is(err, errors.TypeMismatch(errors.PhaseConstruct, "", "", "", "")) {
		t.Errorf("Set wrong type = %v, want type_mismatch", err)
	}
}

func TestBuilder_Isolation(t *testing.T) {
	// Two builds from the same staged slots produce independent values.
	typ, _ := TypeFor[scaled]()
	b := typ.Builder()
	if err := b.Set("Raw", 1.0); err != nil {
		t.Fatal(err)
	}
	if err := b.Set("Scaled", 2.0); err != nil {
		t.Fatal(err)
	}

	first, err := b.Build()
	if err != nil {
		t.Fatalf("first Build failed: %v", err)
	}
	if err := b.Set("Raw", 9.0); err != nil {
		t.Fatal(err)
	}
	second, err := b.Build()
	if err != nil {
		t.Fatalf("second Build failed: %v", err)
	}

	if first.(scaled).Raw != 1.0 {
		t.Errorf("first build mutated after the fact: %+v", first)
	}
	if second.(scaled).Raw != 9.0 {
		t.Errorf("second build = %+v, want Raw=9", second)
	}
}

type sparse struct {
	Struct
	Name  string
	Count int
}

func init() {
	MustRegister[sparse](
		WithInit(func(b *Builder, args ...any) error {
			return b.Set("Name", args[0])
		}),
		WithoutBuilderInInit(),
	)
}

func TestBuilder_PrefilledSlots(t *testing.T) {
	// With builder staging disabled, fields the initializer skips come out as
	// zero values rather than failing the unset check.
	v, err := New[sparse]("x")
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if v.Name != "x" || v.Count != 0 {
		t.Errorf("New produced %+v, want Name=x Count=0", v)
	}
}
