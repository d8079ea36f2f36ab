package symbols

type ScopeKind int

const (
	FuncScope ScopeKind = iota
	BlockScope
)

// Scope is one level of name bindings. Lookups never cross a FuncScope,
// so a function body cannot see its caller's names.
type Scope[T any] struct {
	Elems     map[string]T
	ScopeKind ScopeKind
}

func NewScope[T any](sk ScopeKind) Scope[T] {
	return Scope[T]{
		Elems:     make(map[string]T),
		ScopeKind: sk,
	}
}

func PushScope[T any](scopes *[]Scope[T], sk ScopeKind) {
	*scopes = append(*scopes, NewScope[T](sk))
}

// PopScope drops the innermost scope. The outermost scope is never popped.
func PopScope[T any](scopes *[]Scope[T]) bool {
	if len(*scopes) <= 1 {
		return false
	}
	*scopes = (*scopes)[:len(*scopes)-1]
	return true
}

// Put binds name in the innermost scope.
func Put[T any](scopes []Scope[T], name string, elem T) {
	scopes[len(scopes)-1].Elems[name] = elem
}

// Set rebinds name in the innermost visible scope that holds it, or binds
// it in the innermost scope when no visible scope does.
func Set[T any](scopes []Scope[T], name string, elem T) {
	if i := find(scopes, name); i >= 0 {
		scopes[i].Elems[name] = elem
		return
	}
	Put(scopes, name, elem)
}

func Get[T any](scopes []Scope[T], name string) (T, bool) {
	if i := find(scopes, name); i >= 0 {
		return scopes[i].Elems[name], true
	}
	var zero T
	return zero, false
}

// find searches from the innermost scope outward, stopping at the first
// function scope.
func find[T any](scopes []Scope[T], name string) int {
	for i := len(scopes) - 1; i >= 0; i-- {
		if _, ok := scopes[i].Elems[name]; ok {
			return i
		}
		if scopes[i].ScopeKind == FuncScope {
			break
		}
	}
	return -1
}
