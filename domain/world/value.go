// Package world provides the fact model the planner searches over: scalar
// values, comparisons, states and the mutators that transform them.
package world

import (
	"fmt"
	"math"
	"strconv"
)

// Kind identifies the variant held by a Value.
type Kind uint8

// Value kinds.
const (
	KindBool Kind = iota
	KindInt
	KindFloat
	KindEnum
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindEnum:
		return "enum"
	default:
		return "unknown"
	}
}

// Value is a tagged scalar. The zero value is Bool(false).
type Value struct {
	kind Kind
	b    bool
	i    int64
	f    float64
	s    string
}

// Bool creates a boolean value.
func Bool(b bool) Value {
	return Value{kind: KindBool, b: b}
}

// Int creates an integer value.
func Int(i int64) Value {
	return Value{kind: KindInt, i: i}
}

// Float creates a floating-point value.
func Float(f float64) Value {
	return Value{kind: KindFloat, f: f}
}

// Enum creates a tag value, e.g. Enum("kitchen").
func Enum(tag string) Value {
	return Value{kind: KindEnum, s: tag}
}

// FromAny converts a decoded scalar (YAML, JSON or Go literal) to a Value.
// Strings become enum tags.
func FromAny(v any) (Value, error) {
	switch x := v.(type) {
	case Value:
		return x, nil
	case bool:
		return Bool(x), nil
	case int:
		return Int(int64(x)), nil
	case int8:
		return Int(int64(x)), nil
	case int16:
		return Int(int64(x)), nil
	case int32:
		return Int(int64(x)), nil
	case int64:
		return Int(x), nil
	case uint:
		return FromAny(uint64(x))
	case uint8:
		return Int(int64(x)), nil
	case uint16:
		return Int(int64(x)), nil
	case uint32:
		return Int(int64(x)), nil
	case uint64:
		if x > math.MaxInt64 {
			return Value{}, fmt.Errorf("%w: %d overflows int64", ErrUnsupportedValue, x)
		}
		return Int(int64(x)), nil
	case float32:
		return Float(float64(x)), nil
	case float64:
		return Float(x), nil
	case string:
		return Enum(x), nil
	default:
		return Value{}, fmt.Errorf("%w: %T", ErrUnsupportedValue, v)
	}
}

// Kind returns the variant of the value.
func (v Value) Kind() Kind {
	return v.kind
}

// IsNumeric reports whether the value is an Int or a Float.
func (v Value) IsNumeric() bool {
	return v.kind == KindInt || v.kind == KindFloat
}

// AsBool returns the boolean payload.
func (v Value) AsBool() (bool, bool) {
	return v.b, v.kind == KindBool
}

// AsInt returns the integer payload.
func (v Value) AsInt() (int64, bool) {
	return v.i, v.kind == KindInt
}

// AsFloat returns the float payload.
func (v Value) AsFloat() (float64, bool) {
	return v.f, v.kind == KindFloat
}

// AsEnum returns the tag payload.
func (v Value) AsEnum() (string, bool) {
	return v.s, v.kind == KindEnum
}

// Equal reports structural equality. Values of different kinds are never equal.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindBool:
		return v.b == other.b
	case KindInt:
		return v.i == other.i
	case KindFloat:
		return v.f == other.f
	case KindEnum:
		return v.s == other.s
	}
	return false
}

// number returns the numeric payload as float64.
func (v Value) number() float64 {
	if v.kind == KindInt {
		return float64(v.i)
	}
	return v.f
}

// IsNaN reports whether the value is a Float NaN.
func (v Value) IsNaN() bool {
	return v.kind == KindFloat && math.IsNaN(v.f)
}

// compare orders two values of the same numeric kind. ordered is false when
// either side is NaN; no ordering operator holds then.
func (v Value) compare(other Value) (order int, ordered bool, err error) {
	if !v.IsNumeric() || v.kind != other.kind {
		return 0, false, fmt.Errorf("%w: cannot order %s against %s", ErrTypeMismatch, v.kind, other.kind)
	}
	if v.kind == KindInt {
		return cmpOrder(v.i, other.i), true, nil
	}
	if v.IsNaN() || other.IsNaN() {
		return 0, false, nil
	}
	return cmpOrder(v.f, other.f), true, nil
}

func cmpOrder[T int64 | float64](a, b T) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// Add returns v + delta. Both values must share the same numeric kind.
// Integer overflow is reported as ErrOverflow.
func (v Value) Add(delta Value) (Value, error) {
	if !v.IsNumeric() || v.kind != delta.kind {
		return Value{}, fmt.Errorf("%w: cannot add %s to %s", ErrTypeMismatch, delta.kind, v.kind)
	}
	if v.kind == KindInt {
		sum := v.i + delta.i
		if (delta.i > 0 && sum < v.i) || (delta.i < 0 && sum > v.i) {
			return Value{}, fmt.Errorf("%w: %d + %d", ErrOverflow, v.i, delta.i)
		}
		return Int(sum), nil
	}
	return Float(v.f + delta.f), nil
}

// Sub returns v - delta. Both values must share the same numeric kind.
// Integer overflow is reported as ErrOverflow.
func (v Value) Sub(delta Value) (Value, error) {
	if !v.IsNumeric() || v.kind != delta.kind {
		return Value{}, fmt.Errorf("%w: cannot subtract %s from %s", ErrTypeMismatch, delta.kind, v.kind)
	}
	if v.kind == KindInt {
		diff := v.i - delta.i
		if (delta.i > 0 && diff > v.i) || (delta.i < 0 && diff < v.i) {
			return Value{}, fmt.Errorf("%w: %d - %d", ErrOverflow, v.i, delta.i)
		}
		return Int(diff), nil
	}
	return Float(v.f - delta.f), nil
}

// Interface returns the payload as a plain Go value.
func (v Value) Interface() any {
	switch v.kind {
	case KindBool:
		return v.b
	case KindInt:
		return v.i
	case KindFloat:
		return v.f
	default:
		return v.s
	}
}

// String renders the payload.
func (v Value) String() string {
	switch v.kind {
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindInt:
		return strconv.FormatInt(v.i, 10)
	case KindFloat:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	case KindEnum:
		return v.s
	}
	return "?"
}

// GoString renders the value with its kind, used in fingerprints and traces.
func (v Value) GoString() string {
	return v.kind.String() + ":" + v.String()
}
