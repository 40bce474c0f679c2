package world

import (
	"errors"
	"math"
	"testing"
)

func TestFromAny(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		in      any
		want    Value
		wantErr error
	}{
		{"bool", true, Bool(true), nil},
		{"int", 7, Int(7), nil},
		{"uint8", uint8(3), Int(3), nil},
		{"float", 2.5, Float(2.5), nil},
		{"string", "kitchen", Enum("kitchen"), nil},
		{"value", Int(4), Int(4), nil},
		{"overflow", uint64(1 << 63), Value{}, ErrUnsupportedValue},
		{"slice", []int{1}, Value{}, ErrUnsupportedValue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := FromAny(tt.in)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("FromAny(%v) error = %v, want %v", tt.in, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("FromAny(%v) unexpected error: %v", tt.in, err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("FromAny(%v) = %#v, want %#v", tt.in, got, tt.want)
			}
		})
	}
}

func TestValue_Equal(t *testing.T) {
	t.Parallel()

	if !Int(1).Equal(Int(1)) {
		t.Error("Int(1) should equal Int(1)")
	}
	if Int(1).Equal(Float(1)) {
		t.Error("Int(1) should not equal Float(1)")
	}
	if Enum("a").Equal(Enum("b")) {
		t.Error("distinct enum tags should not be equal")
	}
	if !(Value{}).Equal(Bool(false)) {
		t.Error("zero Value should equal Bool(false)")
	}
}

func TestEvaluate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		cmp     Comparison
		actual  Value
		want    bool
		wantErr bool
	}{
		{"equals int", Equals(Int(3)), Int(3), true, false},
		{"equals across kinds", Equals(Int(3)), Float(3), false, false},
		{"not equals across kinds", NotEquals(Bool(true)), Enum("true"), true, false},
		{"gt strict", GreaterThan(Int(3)), Int(3), false, false},
		{"gte boundary", GreaterThanOrEquals(Int(3)), Int(3), true, false},
		{"lt float", LessThan(Float(1.5)), Float(1.25), true, false},
		{"lte", LessThanOrEquals(Int(0)), Int(1), false, false},
		{"int vs float ordering", GreaterThan(Float(1)), Int(2), false, true},
		{"bool ordering", LessThan(Bool(true)), Bool(false), false, true},
		{"enum ordering", GreaterThan(Enum("a")), Enum("b"), false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := Evaluate(tt.cmp, tt.actual)
			if tt.wantErr {
				if !errors.Is(err, ErrTypeMismatch) {
					t.Fatalf("Evaluate(%s, %s) error = %v, want ErrTypeMismatch", tt.cmp, tt.actual, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Evaluate(%s, %s) unexpected error: %v", tt.cmp, tt.actual, err)
			}
			if got != tt.want {
				t.Errorf("Evaluate(%s, %s) = %v, want %v", tt.cmp, tt.actual, got, tt.want)
			}
		})
	}
}

func TestEvaluate_NaN(t *testing.T) {
	t.Parallel()

	nan := Float(math.NaN())
	five := Float(5)
	tests := []struct {
		name   string
		cmp    Comparison
		actual Value
		want   bool
	}{
		{"nan equals nan", Equals(nan), nan, false},
		{"nan not equals nan", NotEquals(nan), nan, true},
		{"nan gt", GreaterThan(five), nan, false},
		{"nan gte", GreaterThanOrEquals(five), nan, false},
		{"nan lt", LessThan(five), nan, false},
		{"nan lte", LessThanOrEquals(five), nan, false},
		{"gt nan", GreaterThan(nan), five, false},
		{"gte nan", GreaterThanOrEquals(nan), five, false},
		{"lt nan", LessThan(nan), five, false},
		{"lte nan", LessThanOrEquals(nan), five, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := Evaluate(tt.cmp, tt.actual)
			if err != nil {
				t.Fatalf("Evaluate(%s, %s) unexpected error: %v", tt.cmp, tt.actual, err)
			}
			if got != tt.want {
				t.Errorf("Evaluate(%s, %s) = %v, want %v", tt.cmp, tt.actual, got, tt.want)
			}
		})
	}
}

func TestValue_AddSubOverflow(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		op      func(Value, Value) (Value, error)
		v       Value
		delta   Value
		want    Value
		wantErr bool
	}{
		{"add", Value.Add, Int(2), Int(3), Int(5), false},
		{"add max", Value.Add, Int(math.MaxInt64), Int(1), Value{}, true},
		{"add min", Value.Add, Int(math.MinInt64), Int(-1), Value{}, true},
		{"add to max", Value.Add, Int(math.MaxInt64 - 1), Int(1), Int(math.MaxInt64), false},
		{"sub", Value.Sub, Int(2), Int(3), Int(-1), false},
		{"sub min", Value.Sub, Int(math.MinInt64), Int(1), Value{}, true},
		{"sub negative", Value.Sub, Int(math.MaxInt64), Int(-1), Value{}, true},
		{"float", Value.Add, Float(math.MaxFloat64), Float(1), Float(math.MaxFloat64), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := tt.op(tt.v, tt.delta)
			if tt.wantErr {
				if !errors.Is(err, ErrOverflow) {
					t.Fatalf("error = %v, want ErrOverflow", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("got %#v, want %#v", got, tt.want)
			}
		})
	}

	s := NewState().With("gold", Int(math.MaxInt64))
	err := Increment("gold", Int(1)).Apply(&s)
	var evalErr *EvalError
	if !errors.As(err, &evalErr) || evalErr.Fact != "gold" || !errors.Is(err, ErrOverflow) {
		t.Errorf("Apply() error = %v, want overflow on gold", err)
	}
}

func TestCheck_Errors(t *testing.T) {
	t.Parallel()

	s := NewState().With("energy", Int(5))

	_, err := Check(s, "gold", Equals(Int(1)))
	var evalErr *EvalError
	if !errors.As(err, &evalErr) {
		t.Fatalf("Check() error = %v, want *EvalError", err)
	}
	if evalErr.Fact != "gold" || !errors.Is(err, ErrMissingFact) {
		t.Errorf("Check() error = %+v, want missing fact gold", evalErr)
	}

	_, err = Check(s, "energy", GreaterThan(Float(1)))
	if !errors.As(err, &evalErr) || !errors.Is(err, ErrTypeMismatch) {
		t.Errorf("Check() error = %v, want type mismatch", err)
	}
}

func TestParseOperator(t *testing.T) {
	t.Parallel()

	for _, op := range []Operator{OpEquals, OpNotEquals, OpGreaterThan, OpGreaterThanOrEquals, OpLessThan, OpLessThanOrEquals} {
		got, err := ParseOperator(op.String())
		if err != nil || got != op {
			t.Errorf("ParseOperator(%q) = %v, %v; want %v", op.String(), got, err, op)
		}
	}

	if got, err := ParseOperator("greater_than_or_equals"); err != nil || got != OpGreaterThanOrEquals {
		t.Errorf("ParseOperator(name) = %v, %v", got, err)
	}
	if _, err := ParseOperator("~="); !errors.Is(err, ErrUnknownOperator) {
		t.Errorf("ParseOperator(~=) error = %v, want ErrUnknownOperator", err)
	}
}

func TestState_CopyOnWrite(t *testing.T) {
	t.Parallel()

	base := NewState().With("a", Int(1))
	derived := base.With("a", Int(2)).With("b", Bool(true))

	if v, _ := base.Get("a"); !v.Equal(Int(1)) {
		t.Errorf("base mutated: a = %s", v)
	}
	if base.Has("b") {
		t.Error("base gained fact b")
	}
	if derived.Len() != 2 {
		t.Errorf("derived.Len() = %d, want 2", derived.Len())
	}

	clone := derived.Clone()
	if !clone.Equal(derived) {
		t.Error("clone should equal source")
	}
	clone.set("a", Int(9))
	if v, _ := derived.Get("a"); !v.Equal(Int(2)) {
		t.Errorf("clone aliases source: a = %s", v)
	}
}

func TestState_Lookup(t *testing.T) {
	t.Parallel()

	s := NewState().With("x", Int(1))
	if _, err := s.Lookup("y"); !errors.Is(err, ErrMissingFact) {
		t.Errorf("Lookup(y) error = %v, want ErrMissingFact", err)
	}
	if v, err := s.Lookup("x"); err != nil || !v.Equal(Int(1)) {
		t.Errorf("Lookup(x) = %s, %v", v, err)
	}
}

func TestState_Fingerprint(t *testing.T) {
	t.Parallel()

	a := NewState().With("x", Int(1)).With("y", Enum("home"))
	b := NewState().With("y", Enum("home")).With("x", Int(1))
	c := NewState().With("x", Float(1)).With("y", Enum("home"))

	if a.Fingerprint() != b.Fingerprint() {
		t.Error("insertion order should not affect fingerprint")
	}
	if a.Fingerprint() == c.Fingerprint() {
		t.Error("Int(1) and Float(1) must fingerprint differently")
	}

	// A separator inside a tag must not let two states collide.
	d := NewState().With("k", Enum(`v";"z`))
	e := NewState().With("k", Enum("v")).With("z", Enum(""))
	if d.Fingerprint() == e.Fingerprint() {
		t.Error("fingerprint collision through separator characters")
	}
}

func TestState_String(t *testing.T) {
	t.Parallel()

	s := NewState().With("b", Bool(true)).With("a", Int(1))
	if got, want := s.String(), "{a=1, b=true}"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
	if got := (State{}).String(); got != "{}" {
		t.Errorf("zero State String() = %q", got)
	}
}

func TestStateFrom(t *testing.T) {
	t.Parallel()

	s, err := StateFrom(map[string]any{"hunger": 50, "at": "home", "rich": false})
	if err != nil {
		t.Fatalf("StateFrom() error: %v", err)
	}
	if v, _ := s.Get("at"); !v.Equal(Enum("home")) {
		t.Errorf("at = %s", v)
	}

	if _, err := StateFrom(map[string]any{"bad": struct{}{}}); !errors.Is(err, ErrUnsupportedValue) {
		t.Errorf("StateFrom(bad) error = %v, want ErrUnsupportedValue", err)
	}
}

func TestMutator_Apply(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		start   State
		m       Mutator
		want    Value
		wantErr error
	}{
		{"set inserts", NewState(), Set("x", Bool(true)), Bool(true), nil},
		{"set overwrites kind", NewState().With("x", Int(1)), Set("x", Enum("a")), Enum("a"), nil},
		{"increment int", NewState().With("x", Int(1)), Increment("x", Int(10)), Int(11), nil},
		{"decrement float", NewState().With("x", Float(1)), Decrement("x", Float(0.5)), Float(0.5), nil},
		{"increment missing", NewState(), Increment("x", Int(1)), Value{}, ErrMissingFact},
		{"increment mixed kinds", NewState().With("x", Int(1)), Increment("x", Float(1)), Value{}, ErrTypeMismatch},
		{"decrement bool", NewState().With("x", Bool(true)), Decrement("x", Bool(true)), Value{}, ErrTypeMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			working := tt.start.Clone()
			err := tt.m.Apply(&working)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Apply() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Apply() unexpected error: %v", err)
			}
			if got, _ := working.Get("x"); !got.Equal(tt.want) {
				t.Errorf("x = %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestApplyAll(t *testing.T) {
	t.Parallel()

	start := NewState().With("energy", Int(0))
	ms := []Mutator{
		Set("energy", Int(5)),
		Increment("energy", Int(3)),
		Decrement("energy", Int(1)),
	}

	first, err := ApplyAll(start, ms)
	if err != nil {
		t.Fatalf("ApplyAll() error: %v", err)
	}
	second, _ := ApplyAll(start, ms)

	if v, _ := first.Get("energy"); !v.Equal(Int(7)) {
		t.Errorf("energy = %s, want 7", v)
	}
	if !first.Equal(second) {
		t.Error("ApplyAll should be deterministic")
	}
	if v, _ := start.Get("energy"); !v.Equal(Int(0)) {
		t.Error("ApplyAll mutated its input")
	}
}

func TestMutator_String(t *testing.T) {
	t.Parallel()

	if got := Increment("gold", Int(2)).String(); got != "gold += 2" {
		t.Errorf("String() = %q", got)
	}
	if got := Set("at", Enum("mine")).String(); got != "at = mine" {
		t.Errorf("String() = %q", got)
	}
	if k, err := ParseMutatorKind("decrement"); err != nil || k != MutateDecrement {
		t.Errorf("ParseMutatorKind(decrement) = %v, %v", k, err)
	}
}
