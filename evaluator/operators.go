package evaluator

import (
	"github.com/thiremani/lang/ast"
	"github.com/thiremani/lang/value"
)

// opKey selects an operator implementation. Both operands have already
// been converted to Kind.
type opKey struct {
	Op   ast.BinOpType
	Kind value.Kind
}

type opFunc func(left, right value.Value) (value.Value, error)

type number interface {
	value.Int | value.Float | value.Char
	value.Value
}

var defaultOps = map[opKey]opFunc{
	{Op: ast.Plus, Kind: value.StrKind}: func(left, right value.Value) (value.Value, error) {
		return left.(value.Str) + right.(value.Str), nil
	},
	{Op: ast.Equals, Kind: value.StrKind}: func(left, right value.Value) (value.Value, error) {
		return value.Bool(left.(value.Str) == right.(value.Str)), nil
	},
	{Op: ast.NotEquals, Kind: value.StrKind}: func(left, right value.Value) (value.Value, error) {
		return value.Bool(left.(value.Str) != right.(value.Str)), nil
	},
	{Op: ast.Equals, Kind: value.BoolKind}: func(left, right value.Value) (value.Value, error) {
		return value.Bool(left.(value.Bool) == right.(value.Bool)), nil
	},
	{Op: ast.NotEquals, Kind: value.BoolKind}: func(left, right value.Value) (value.Value, error) {
		return value.Bool(left.(value.Bool) != right.(value.Bool)), nil
	},
}

func init() {
	registerNumeric[value.Int](value.IntKind)
	registerNumeric[value.Float](value.FloatKind)
	registerNumeric[value.Char](value.CharKind)

	for _, k := range []value.Kind{value.IntKind, value.FloatKind, value.CharKind, value.BoolKind} {
		defaultOps[opKey{ast.And, k}] = logical(func(a, b bool) bool { return a && b })
		defaultOps[opKey{ast.Or, k}] = logical(func(a, b bool) bool { return a || b })
		defaultOps[opKey{ast.Xor, k}] = logical(func(a, b bool) bool { return a != b })
		defaultOps[opKey{ast.Nand, k}] = logical(func(a, b bool) bool { return !(a && b) })
	}
}

// registerNumeric adds arithmetic and comparison for one numeric kind.
// Arithmetic wraps at the kind's width.
func registerNumeric[T number](k value.Kind) {
	defaultOps[opKey{ast.Plus, k}] = func(left, right value.Value) (value.Value, error) {
		return left.(T) + right.(T), nil
	}
	defaultOps[opKey{ast.Minus, k}] = func(left, right value.Value) (value.Value, error) {
		return left.(T) - right.(T), nil
	}
	defaultOps[opKey{ast.Mul, k}] = func(left, right value.Value) (value.Value, error) {
		return left.(T) * right.(T), nil
	}
	defaultOps[opKey{ast.Div, k}] = func(left, right value.Value) (value.Value, error) {
		r := right.(T)
		if r == 0 && k != value.FloatKind {
			return nil, errDivisionByZero
		}
		return left.(T) / r, nil
	}

	defaultOps[opKey{ast.Equals, k}] = func(left, right value.Value) (value.Value, error) {
		return value.Bool(left.(T) == right.(T)), nil
	}
	defaultOps[opKey{ast.NotEquals, k}] = func(left, right value.Value) (value.Value, error) {
		return value.Bool(left.(T) != right.(T)), nil
	}
	defaultOps[opKey{ast.LessThan, k}] = func(left, right value.Value) (value.Value, error) {
		return value.Bool(left.(T) < right.(T)), nil
	}
	defaultOps[opKey{ast.MoreThan, k}] = func(left, right value.Value) (value.Value, error) {
		return value.Bool(left.(T) > right.(T)), nil
	}
	defaultOps[opKey{ast.LessEqual, k}] = func(left, right value.Value) (value.Value, error) {
		return value.Bool(left.(T) <= right.(T)), nil
	}
	defaultOps[opKey{ast.MoreEqual, k}] = func(left, right value.Value) (value.Value, error) {
		return value.Bool(left.(T) >= right.(T)), nil
	}
}

func logical(f func(a, b bool) bool) opFunc {
	return func(left, right value.Value) (value.Value, error) {
		a, _ := value.Truthy(left)
		b, _ := value.Truthy(right)
		return value.Bool(f(a, b)), nil
	}
}

// Apply evaluates left op right under the promotion rule: operands of the
// same kind keep it, a Float operand makes both Float and any other mix
// is computed as Int. Strings only combine with strings.
func Apply(op ast.BinOpType, left, right value.Value) (value.Value, error) {
	lk, rk := left.Kind(), right.Kind()
	k := value.StrKind
	if lk.IsNumeric() && rk.IsNumeric() {
		k = value.Promote(lk, rk)
		left, _ = value.Convert(left, k)
		right, _ = value.Convert(right, k)
	}

	fn, ok := defaultOps[opKey{op, k}]
	if !ok || lk != rk && k == value.StrKind {
		return nil, &opError{op: op, left: lk, right: rk}
	}
	return fn(left, right)
}

type opError struct {
	op          ast.BinOpType
	left, right value.Kind
}

func (oe *opError) Error() string {
	return "invalid operation: " + oe.left.String() + " " + oe.op.String() + " " + oe.right.String()
}
