// Package merge implements the structural configuration merge used by the
// core facade to produce each unit's effective settings.
//
// Only bare map[string]any records and []any sequences are treated as
// structure; everything else (typed maps, structs, handles into the host
// environment) is an opaque scalar that is assigned by reference and never
// recursed into. Both Merge and Deep mutate the destination in place and
// return it, so callers can chain configuration building on a single map.
package merge

import "reflect"

// IsPlain reports whether v is a plain structural mapping, i.e. a bare
// map[string]any record. Deep descends only into plain mappings; an opaque
// value is copied as-is even in deep mode.
func IsPlain(v any) bool {
	_, ok := v.(map[string]any)
	return ok
}

// Merge performs a shallow merge of srcs into dst, left to right, later
// sources winning on conflicting keys. A nil dst is replaced by a fresh map.
// Nil values are treated as absent and skipped. Sources are never mutated.
func Merge(dst map[string]any, srcs ...map[string]any) map[string]any {
	if dst == nil {
		dst = make(map[string]any)
	}
	for _, src := range srcs {
		for k, v := range src {
			if v == nil {
				continue
			}
			dst[k] = v
		}
	}
	return dst
}

// Deep merges srcs into dst recursively. Plain mappings are merged into a
// same-shaped destination (an existing plain map under the key is reused,
// anything else is replaced by a fresh one); sequences replace the
// destination value with an element-wise deep copy; opaque values are
// assigned directly. Assigning a map or slice onto itself is a no-op so
// self-referential configurations terminate.
func Deep(dst map[string]any, srcs ...map[string]any) map[string]any {
	if dst == nil {
		dst = make(map[string]any)
	}
	for _, src := range srcs {
		deepInto(dst, src)
	}
	return dst
}

// Clone returns an isolated deep copy of src. Nil maps stay nil.
func Clone(src map[string]any) map[string]any {
	if src == nil {
		return nil
	}
	return Deep(make(map[string]any, len(src)), src)
}

func deepInto(dst, src map[string]any) {
	if sameMap(dst, src) {
		return
	}
	for k, v := range src {
		switch in := v.(type) {
		case map[string]any:
			// Self-assignment guard: merging the destination into one of
			// its own keys would recurse forever.
			if sameMap(in, dst) {
				continue
			}
			cur, ok := dst[k].(map[string]any)
			if !ok {
				cur = make(map[string]any, len(in))
			}
			deepInto(cur, in)
			dst[k] = cur
		case []any:
			if cur, ok := dst[k].([]any); ok && sameSlice(cur, in) {
				continue
			}
			dst[k] = cloneSlice(in)
		default:
			if v == nil {
				continue
			}
			dst[k] = v
		}
	}
}

func cloneSlice(src []any) []any {
	out := make([]any, len(src))
	for i, v := range src {
		switch in := v.(type) {
		case map[string]any:
			out[i] = Clone(in)
		case []any:
			out[i] = cloneSlice(in)
		default:
			out[i] = v
		}
	}
	return out
}

func sameMap(a, b map[string]any) bool {
	return a != nil && b != nil &&
		reflect.ValueOf(a).Pointer() == reflect.ValueOf(b).Pointer()
}

func sameSlice(a, b []any) bool {
	return len(a) > 0 && len(a) == len(b) && &a[0] == &b[0]
}
