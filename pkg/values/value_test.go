package values

import (
	"math"
	"testing"
)

func TestValueTags(t *testing.T) {
	cases := []struct {
		v        Value
		typeName string
		check    func(Value) bool
	}{
		{Undefined, "undefined", Value.IsUndefined},
		{Null, "null", Value.IsNull},
		{True, "boolean", Value.IsBoolean},
		{NumberValue(1.5), "number", Value.IsFloatNumber},
		{IntegerValue(7), "number", Value.IsIntegerNumber},
		{NewString("s"), "string", Value.IsString},
		{NewSymbol("s"), "symbol", Value.IsSymbol},
	}
	for _, c := range cases {
		if c.v.TypeName() != c.typeName {
			t.Errorf("%v: TypeName = %q", c.v, c.v.TypeName())
		}
		if !c.check(c.v) {
			t.Errorf("%v: predicate failed", c.v)
		}
	}
}

func TestValueAccessors(t *testing.T) {
	if NumberValue(2.5).AsFloat() != 2.5 {
		t.Errorf("AsFloat round trip failed")
	}
	if IntegerValue(-3).AsInteger() != -3 {
		t.Errorf("AsInteger round trip failed")
	}
	if !True.AsBoolean() || False.AsBoolean() {
		t.Errorf("AsBoolean round trip failed")
	}
	if NewString("hi").AsString() != "hi" {
		t.Errorf("AsString round trip failed")
	}
	if NewSymbol("tag").AsSymbol() != "tag" {
		t.Errorf("AsSymbol round trip failed")
	}
	if math.IsNaN(NaN.AsFloat()) == false {
		t.Errorf("NaN lost its payload")
	}
}

func TestValueAccessorPanicsOnWrongTag(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic")
		}
	}()
	True.AsString()
}

func TestValueIdentity(t *testing.T) {
	if !IntegerValue(5).Is(IntegerValue(5)) {
		t.Errorf("equal integers are not identical")
	}
	if IntegerValue(5).Is(NumberValue(5)) {
		t.Errorf("integer and float tags compare identical")
	}
	s := NewString("x")
	if !s.Is(s) {
		t.Errorf("string not identical to itself")
	}
	if s.Is(NewString("x")) {
		t.Errorf("distinct string boxes compare identical")
	}
	if !Undefined.Is(Undefined) || Undefined.Is(Null) {
		t.Errorf("singleton identity broken")
	}
}
