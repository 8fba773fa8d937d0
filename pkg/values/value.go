package values

import (
	"fmt"
	"math"
	"strconv"
	"unsafe"
)

type ValueType uint8

const (
	TypeNull ValueType = iota
	TypeUndefined

	TypeString
	TypeSymbol

	TypeFloatNumber
	TypeIntegerNumber

	TypeBoolean
)

type StringObject struct {
	value string
}

type SymbolObject struct {
	value string
}

// Value is the engine's boxed value representation: a type tag, a 64-bit
// immediate payload, and a pointer word for heap-allocated kinds.
type Value struct {
	typ     ValueType
	payload uint64
	obj     unsafe.Pointer
}

var (
	Undefined = Value{typ: TypeUndefined}
	Null      = Value{typ: TypeNull}
	True      = Value{typ: TypeBoolean, payload: 1}
	False     = Value{typ: TypeBoolean, payload: 0}
	NaN       = Value{typ: TypeFloatNumber, payload: math.Float64bits(math.NaN())}
)

func NumberValue(value float64) Value {
	return Value{typ: TypeFloatNumber, payload: math.Float64bits(value)}
}

func IntegerValue(value int32) Value {
	return Value{typ: TypeIntegerNumber, payload: uint64(int64(value))}
}

func BooleanValue(value bool) Value {
	if value {
		return True
	}
	return False
}

func NewString(value string) Value {
	return Value{typ: TypeString, obj: unsafe.Pointer(&StringObject{value: value})}
}

func NewSymbol(value string) Value {
	return Value{typ: TypeSymbol, obj: unsafe.Pointer(&SymbolObject{value: value})}
}

func (v Value) IsNumber() bool {
	return v.typ == TypeFloatNumber || v.typ == TypeIntegerNumber
}

func (v Value) IsFloatNumber() bool {
	return v.typ == TypeFloatNumber
}

func (v Value) IsIntegerNumber() bool {
	return v.typ == TypeIntegerNumber
}

func (v Value) IsString() bool {
	return v.typ == TypeString
}

func (v Value) IsSymbol() bool {
	return v.typ == TypeSymbol
}

func (v Value) IsBoolean() bool {
	return v.typ == TypeBoolean
}

func (v Value) IsUndefined() bool {
	return v.typ == TypeUndefined
}

func (v Value) IsNull() bool {
	return v.typ == TypeNull
}

func (v Value) Type() ValueType {
	return v.typ
}

func (v Value) TypeName() string {
	switch v.typ {
	case TypeUndefined:
		return "undefined"
	case TypeNull:
		return "null"
	case TypeBoolean:
		return "boolean"
	case TypeFloatNumber, TypeIntegerNumber:
		return "number"
	case TypeString:
		return "string"
	case TypeSymbol:
		return "symbol"
	default:
		return fmt.Sprintf("<unknown type: %d>", v.typ)
	}
}

func (v Value) AsFloat() float64 {
	if v.typ != TypeFloatNumber {
		panic("value is not a float")
	}
	return math.Float64frombits(v.payload)
}

func (v Value) AsInteger() int32 {
	if v.typ != TypeIntegerNumber {
		panic("value is not an integer")
	}
	return int32(v.payload)
}

func (v Value) AsBoolean() bool {
	if v.typ != TypeBoolean {
		panic("value is not a boolean")
	}
	return v.payload != 0
}

func (v Value) AsString() string {
	if v.typ != TypeString {
		panic("value is not a string")
	}
	return (*StringObject)(v.obj).value
}

func (v Value) AsSymbol() string {
	if v.typ != TypeSymbol {
		panic("value is not a symbol")
	}
	return (*SymbolObject)(v.obj).value
}

// Is reports identity equality: same tag, and same payload or same boxed
// object. Two distinct strings with equal contents are not identical.
func (v Value) Is(other Value) bool {
	if v.typ != other.typ {
		return false
	}
	switch v.typ {
	case TypeString, TypeSymbol:
		return v.obj == other.obj
	default:
		return v.payload == other.payload
	}
}

func (v Value) String() string {
	switch v.typ {
	case TypeUndefined:
		return "undefined"
	case TypeNull:
		return "null"
	case TypeBoolean:
		if v.payload != 0 {
			return "true"
		}
		return "false"
	case TypeFloatNumber:
		return strconv.FormatFloat(math.Float64frombits(v.payload), 'g', -1, 64)
	case TypeIntegerNumber:
		return strconv.FormatInt(int64(int32(v.payload)), 10)
	case TypeString:
		return (*StringObject)(v.obj).value
	case TypeSymbol:
		return fmt.Sprintf("Symbol(%s)", (*SymbolObject)(v.obj).value)
	default:
		return fmt.Sprintf("<value type %d>", v.typ)
	}
}
