package value

import (
	"strconv"

	"github.com/thiremani/lang/types"
)

type Kind int

// Numeric kinds are ordered by promotion rank: Bool < Char = Int < Float.
const (
	BoolKind Kind = iota
	CharKind
	IntKind
	FloatKind
	StrKind
)

var kindNames = [...]string{
	BoolKind:  "bool",
	CharKind:  "char",
	IntKind:   "int",
	FloatKind: "float",
	StrKind:   "string",
}

func (k Kind) String() string {
	if 0 <= k && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "kind(" + strconv.Itoa(int(k)) + ")"
}

// IsNumeric reports whether values of this kind take part in arithmetic.
func (k Kind) IsNumeric() bool {
	return k != StrKind
}

// Value is a dynamically typed runtime value. Exactly one of Int, Float,
// Str, Bool or Char implements it.
type Value interface {
	Kind() Kind
	String() string
	value()
}

type (
	Int   int32
	Float float32
	Str   string
	Bool  bool
	Char  byte
)

func (Int) Kind() Kind   { return IntKind }
func (Float) Kind() Kind { return FloatKind }
func (Str) Kind() Kind   { return StrKind }
func (Bool) Kind() Kind  { return BoolKind }
func (Char) Kind() Kind  { return CharKind }

func (Int) value()   {}
func (Float) value() {}
func (Str) value()   {}
func (Bool) value()  {}
func (Char) value()  {}

func (i Int) String() string { return strconv.FormatInt(int64(i), 10) }

func (f Float) String() string { return strconv.FormatFloat(float64(f), 'g', -1, 32) }

func (s Str) String() string { return string(s) }

func (b Bool) String() string { return strconv.FormatBool(bool(b)) }

func (c Char) String() string { return string(rune(c)) }

// Promote returns the kind both operands of a numeric binary operation are
// converted to. Same kinds keep their kind, anything paired with a Float
// becomes Float and every other mix becomes Int.
func Promote(a, b Kind) Kind {
	switch {
	case a == b:
		return a
	case a == FloatKind || b == FloatKind:
		return FloatKind
	default:
		return IntKind
	}
}

// Convert casts a numeric value to kind k. ok is false for strings or a
// non-numeric target.
func Convert(v Value, k Kind) (Value, bool) {
	switch k {
	case IntKind:
		i, ok := AsInt(v)
		return Int(i), ok
	case FloatKind:
		f, ok := AsFloat(v)
		return Float(f), ok
	case CharKind:
		i, ok := AsInt(v)
		return Char(byte(i)), ok
	case BoolKind:
		b, ok := Truthy(v)
		return Bool(b), ok
	}
	return nil, false
}

func AsInt(v Value) (int32, bool) {
	switch v := v.(type) {
	case Int:
		return int32(v), true
	case Float:
		return int32(v), true
	case Char:
		return int32(v), true
	case Bool:
		if v {
			return 1, true
		}
		return 0, true
	}
	return 0, false
}

func AsFloat(v Value) (float32, bool) {
	switch v := v.(type) {
	case Float:
		return float32(v), true
	case Int:
		return float32(v), true
	case Char:
		return float32(v), true
	case Bool:
		if v {
			return 1, true
		}
		return 0, true
	}
	return 0, false
}

// Truthy reports whether a numeric value is non-zero.
func Truthy(v Value) (bool, bool) {
	switch v := v.(type) {
	case Bool:
		return bool(v), true
	case Float:
		return v != 0, true
	case Int:
		return v != 0, true
	case Char:
		return v != 0, true
	}
	return false, false
}

// Zero returns the value a declaration of type t holds before assignment.
func Zero(t types.Type) Value {
	switch t {
	case types.Float:
		return Float(0)
	case types.String:
		return Str("")
	case types.Bool:
		return Bool(false)
	case types.Char:
		return Char(0)
	default:
		return Int(0)
	}
}

// Render formats v the way print emits it. A missing value renders empty.
func Render(v Value) string {
	if v == nil {
		return ""
	}
	return v.String()
}

// Interpolated formats v for a $name substitution. Only Int and Float
// values are substituted, everything else becomes the empty string.
func Interpolated(v Value) string {
	switch v := v.(type) {
	case Int:
		return v.String()
	case Float:
		return v.String()
	}
	return ""
}
