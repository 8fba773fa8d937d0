package frame

import (
	"testing"

	"github.com/aardvark179/rhino/pkg/props"
	"github.com/aardvark179/rhino/pkg/values"
)

func TestRecordParamBinding(t *testing.T) {
	shape := ShapeForParams("x", "y")
	rec := New(shape, []values.Value{values.IntegerValue(1)})

	if v, ok := rec.Get(props.StringKey("x")); !ok || v.AsInteger() != 1 {
		t.Errorf("x = %v, %v", v, ok)
	}
	if v, ok := rec.Get(props.StringKey("y")); !ok || !v.Is(values.Undefined) {
		t.Errorf("missing argument should bind undefined, got %v, %v", v, ok)
	}
	if _, ok := rec.Get(props.StringKey("z")); ok {
		t.Errorf("unbound name reported present")
	}
	if rec.Shape() != shape {
		t.Errorf("record does not share the shape instance")
	}
}

func TestRecordSurplusArgumentsDropped(t *testing.T) {
	rec := New(ShapeForParams("x"), []values.Value{
		values.IntegerValue(1), values.IntegerValue(2),
	})
	if rec.Shape().Size() != 1 {
		t.Fatalf("shape grew to %d", rec.Shape().Size())
	}
	if v := rec.GetByIndex(0); v.AsInteger() != 1 {
		t.Errorf("slot 0 holds %v", v)
	}
}

// A repeated parameter name: the name resolves to the last occurrence while
// every position keeps its own argument.
func TestRecordRepeatedParamName(t *testing.T) {
	rec := New(ShapeForParams("a", "b", "a"), []values.Value{
		values.IntegerValue(1), values.IntegerValue(2), values.IntegerValue(3),
	})

	if v, _ := rec.Get(props.StringKey("a")); v.AsInteger() != 3 {
		t.Errorf("a resolved to %v, want the last occurrence", v)
	}
	if v := rec.GetByIndex(0); v.AsInteger() != 1 {
		t.Errorf("slot 0 holds %v", v)
	}
	if v := rec.GetByIndex(2); v.AsInteger() != 3 {
		t.Errorf("slot 2 holds %v", v)
	}

	rec.Set(props.StringKey("a"), values.IntegerValue(9))
	if v := rec.GetByIndex(2); v.AsInteger() != 9 {
		t.Errorf("write missed the resolved slot: %v", v)
	}
	if v := rec.GetByIndex(0); v.AsInteger() != 1 {
		t.Errorf("write hit the shadowed slot: %v", v)
	}
}

func TestRecordSetHonorsReadOnly(t *testing.T) {
	shape := props.NewShapeBuilder().
		WithSlot(props.StringKey("lock"), props.ReadOnly).
		Build()
	rec := New(shape, []values.Value{values.IntegerValue(5)})

	if rec.Set(props.StringKey("lock"), values.IntegerValue(6)) {
		t.Errorf("write to a read-only binding succeeded")
	}
	if v := rec.GetByIndex(0); v.AsInteger() != 5 {
		t.Errorf("read-only binding changed: %v", v)
	}
	if rec.Set(props.StringKey("nope"), values.True) {
		t.Errorf("write to an absent binding succeeded")
	}
}

func TestRecordDynamicBindings(t *testing.T) {
	rec := New(ShapeForParams("x"), nil)

	rec.Define(props.StringKey("late"), props.None, values.NewString("v"))
	if !rec.Has(props.StringKey("late")) {
		t.Fatalf("dynamic binding not visible")
	}
	if v, ok := rec.Get(props.StringKey("late")); !ok || v.AsString() != "v" {
		t.Errorf("late = %v, %v", v, ok)
	}
	if !rec.Set(props.StringKey("late"), values.NewString("w")) {
		t.Errorf("write to dynamic binding failed")
	}
	if v, _ := rec.Get(props.StringKey("late")); v.AsString() != "w" {
		t.Errorf("late = %v after write", v)
	}

	// Defining a declared name writes its shaped storage instead.
	rec.Define(props.StringKey("x"), props.None, values.IntegerValue(42))
	if v := rec.GetByIndex(0); v.AsInteger() != 42 {
		t.Errorf("define missed the shaped slot: %v", v)
	}

	if !rec.Delete(props.StringKey("late")) {
		t.Errorf("dynamic binding not deleted")
	}
	if rec.Has(props.StringKey("late")) {
		t.Errorf("deleted binding still visible")
	}
	if rec.Delete(props.StringKey("late")) {
		t.Errorf("second delete reported success")
	}
	if rec.Delete(props.StringKey("x")) {
		t.Errorf("declared binding deleted")
	}
	if !rec.Has(props.StringKey("x")) {
		t.Errorf("declared binding gone")
	}
}

func TestRecordReadOnlyDynamicBinding(t *testing.T) {
	rec := New(props.EmptyShape, nil)
	rec.Define(props.StringKey("const"), props.ReadOnly, values.IntegerValue(1))
	if rec.Set(props.StringKey("const"), values.IntegerValue(2)) {
		t.Errorf("write to read-only dynamic binding succeeded")
	}
	if v, _ := rec.Get(props.StringKey("const")); v.AsInteger() != 1 {
		t.Errorf("const changed: %v", v)
	}
}
