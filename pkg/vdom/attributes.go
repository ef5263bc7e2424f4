package vdom

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// attributeAliases maps prop names to their host attribute names.
var attributeAliases = map[string]string{
	"className": "class",
	"htmlFor":   "for",
}

// IsEventProp reports whether a prop name follows the listener naming
// convention: "on" followed by at least one character.
func IsEventProp(name string) bool {
	return len(name) > 2 && strings.HasPrefix(name, "on")
}

// EventName derives the host event name from a listener prop name by
// dropping the "on" prefix and lowercasing the next letter:
// "onClick" becomes "click" and "onMouseDown" becomes "mouseDown".
func EventName(prop string) string {
	rest := strings.TrimPrefix(prop, "on")
	r, size := utf8.DecodeRuneInString(rest)
	if size == 0 {
		return rest
	}
	return string(unicode.ToLower(r)) + rest[size:]
}

// AttributeName maps a prop name to the host attribute it sets.
func AttributeName(prop string) string {
	if alias, ok := attributeAliases[prop]; ok {
		return alias
	}
	return prop
}

// propToString converts a prop value to its attribute string.
func propToString(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case bool:
		if val {
			return "true"
		}
		return "false"
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case fmt.Stringer:
		return val.String()
	default:
		if s, ok := formatNumber(v); ok {
			return s
		}
		return fmt.Sprintf("%v", v)
	}
}
