package types

// Type is a declared type as written in source: a variable declaration,
// a parameter or a function's return type.
type Type int

const (
	Unknown Type = iota
	Int
	Float
	String
	Bool
	Char
	Void
)

var typeNames = [...]string{
	Unknown: "unknown",
	Int:     "int",
	Float:   "float",
	String:  "string",
	Bool:    "bool",
	Char:    "char",
	Void:    "void",
}

var reservedTypeSet = func() map[string]Type {
	m := make(map[string]Type, len(typeNames)-1)
	for t, name := range typeNames {
		if Type(t) == Unknown {
			continue
		}
		m[name] = Type(t)
	}
	return m
}()

func (t Type) String() string {
	if 0 <= t && int(t) < len(typeNames) {
		return typeNames[t]
	}
	return typeNames[Unknown]
}

// Lookup returns the type named by a type keyword.
func Lookup(name string) (Type, bool) {
	t, ok := reservedTypeSet[name]
	return t, ok
}

// ReservedTypeNames returns the source-level type keywords.
func ReservedTypeNames() []string {
	names := make([]string, 0, len(typeNames)-1)
	for t, name := range typeNames {
		if Type(t) != Unknown {
			names = append(names, name)
		}
	}
	return names
}

// IsReservedTypeName reports whether name is a type keyword.
func IsReservedTypeName(name string) bool {
	_, ok := reservedTypeSet[name]
	return ok
}

// Declarable reports whether a variable may be declared with this type.
func (t Type) Declarable() bool {
	return t == Int || t == Float || t == String
}
