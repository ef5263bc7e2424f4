package vdom

import "strconv"

// MergeState returns the state that results from applying partial to
// current.
//
// When current is nil or not a map, partial replaces it. Otherwise every
// key of partial is written into current. A map value merges recursively
// into a map already held at that key. Any other value overwrites, so a
// scalar, slice or nil written over a map replaces the map. Keys are never
// removed.
//
// A non-map partial contributes the keys it enumerates. Slices and strings
// give their indexes ("0", "1", ...), the string's value at each index
// being the one-rune string there. Other scalars give no keys and leave
// current unchanged.
//
// Map and slice values taken from partial are copied, so callers keep
// ownership of what they pass in.
func MergeState(current, partial any) any {
	dst, ok := asComposite(current)
	if !ok {
		return cloneValue(partial)
	}
	mergeInto(dst, partial)
	return dst
}

func mergeInto(dst map[string]any, partial any) {
	eachKey(partial, func(key string, value any) {
		existing, ok := asComposite(dst[key])
		if _, incoming := asComposite(value); !ok || !incoming {
			dst[key] = cloneValue(value)
			return
		}
		mergeInto(existing, value)
	})
}

// eachKey enumerates the keyed entries of v.
func eachKey(v any, fn func(key string, value any)) {
	switch val := v.(type) {
	case map[string]any:
		for k, x := range val {
			fn(k, x)
		}
	case Props:
		for k, x := range val {
			fn(k, x)
		}
	case []any:
		for i, x := range val {
			fn(strconv.Itoa(i), x)
		}
	case string:
		for i, c := range []rune(val) {
			fn(strconv.Itoa(i), string(c))
		}
	}
}

// asComposite reports whether v is a mergeable map.
func asComposite(v any) (map[string]any, bool) {
	switch val := v.(type) {
	case map[string]any:
		return val, val != nil
	case Props:
		return map[string]any(val), val != nil
	default:
		return nil, false
	}
}

func cloneValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		if val == nil {
			return val
		}
		out := make(map[string]any, len(val))
		for k, x := range val {
			out[k] = cloneValue(x)
		}
		return out
	case Props:
		if val == nil {
			return val
		}
		out := make(map[string]any, len(val))
		for k, x := range val {
			out[k] = cloneValue(x)
		}
		return out
	case []any:
		if val == nil {
			return val
		}
		out := make([]any, len(val))
		for i, x := range val {
			out[i] = cloneValue(x)
		}
		return out
	default:
		return v
	}
}
