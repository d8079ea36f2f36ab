package evaluator

import (
	"strings"

	"github.com/thiremani/lang/token"
	"github.com/thiremani/lang/value"
)

func markerEnd(ch byte) bool {
	return ch == ' ' ||
		ch == '\t' ||
		ch == '\n' ||
		ch == '\r' ||
		ch == '\\' ||
		token.StartsToken(ch)
}

// parseMarker reads the name of a $name marker starting at s[i] == '$'.
// It returns the name and the index just past it.
func parseMarker(s string, i int) (string, int) {
	j := i + 1
	for j < len(s) && !markerEnd(s[j]) {
		j++
	}
	return s[i+1 : j], j
}

// interpolate replaces every $name in s with the current value of name.
// Only Int and Float values are substituted; any other value, or a name
// that is not visible, is replaced by nothing. A lone '$' is kept.
func (e *Evaluator) interpolate(s string) string {
	if !strings.Contains(s, "$") {
		return s
	}

	var builder strings.Builder
	i := 0
	for i < len(s) {
		if s[i] != '$' {
			builder.WriteByte(s[i])
			i++
			continue
		}
		name, next := parseMarker(s, i)
		if name == "" {
			builder.WriteByte('$')
		} else if v, ok := e.resolve(name); ok {
			builder.WriteString(value.Interpolated(v))
		}
		i = next
	}
	return builder.String()
}
