// Package options merges, compares and trims the loosely typed option
// bags that describe a grid and its widgets.
//
// Values follow the JSON data model: nil, bool, numbers, string, []any and
// nested Options (or map[string]any). Slices are always treated as opaque
// leaves; only maps are walked structurally.
package options

import (
	"reflect"
	"sort"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

// Options is a JSON-shaped option bag.
type Options = map[string]any

// internalPrefix marks runtime-only fields that are never persisted or
// compared.
const internalPrefix = "_"

// IsInternal reports whether key names runtime-only state.
func IsInternal(key string) bool {
	return strings.HasPrefix(key, internalPrefix)
}

// MergeDefaults fills target with every field of each source that target
// does not already hold, in source order. A nil target value counts as
// absent. When both sides hold a nested map the merge recurses into it.
// Slices are copied as a whole, never merged element-wise. The (possibly
// newly allocated) target is returned.
func MergeDefaults(target Options, sources ...Options) Options {
	if target == nil {
		target = Options{}
	}
	for _, src := range sources {
		mergeInto(target, src)
	}
	return target
}

func mergeInto(target, src map[string]any) {
	for key, sv := range src {
		tv, ok := target[key]
		if !ok || tv == nil {
			target[key] = cloneValue(sv, nil)
			continue
		}
		tm, tIsMap := asMap(tv)
		sm, sIsMap := asMap(sv)
		if tIsMap && sIsMap {
			mergeInto(tm, sm)
		}
	}
}

// ShallowEqual compares two values one level deep. Maps are equal when
// they hold the same keys with equal primitive values; nested maps and
// slices compare by identity. Numbers compare by value regardless of their
// Go type, so an int decoded from YAML equals the same float64.
func ShallowEqual(a, b any) bool {
	am, aIsMap := asMap(a)
	bm, bIsMap := asMap(b)
	if !aIsMap || !bIsMap {
		if aIsMap != bIsMap {
			return false
		}
		return leafEqual(a, b)
	}
	if len(am) != len(bm) {
		return false
	}
	for key, av := range am {
		bv, ok := bm[key]
		if !ok || !leafEqual(av, bv) {
			return false
		}
	}
	return true
}

// RemoveInternalAndSame deletes from a every internal field and every field
// whose value equals the one in b, leaving only what differs. Nested maps
// are diffed recursively and dropped once empty. A field with no
// counterpart in b is kept.
func RemoveInternalAndSame(a, b Options) {
	if a == nil || b == nil {
		return
	}
	for key, av := range a {
		if IsInternal(key) {
			delete(a, key)
			continue
		}
		bv, ok := b[key]
		if !ok {
			continue
		}
		if deepEqual(av, bv) {
			delete(a, key)
			continue
		}
		am, aIsMap := asMap(av)
		bm, bIsMap := asMap(bv)
		if aIsMap && bIsMap {
			RemoveInternalAndSame(am, bm)
			if len(am) == 0 {
				delete(a, key)
			}
		}
	}
}

// RemoveInternalForSave strips a widget's option bag down to what is worth
// persisting: internal and nil fields, runtime references and flags or
// sizes left at their defaults. The element reference is dropped only when
// removeEl is set.
func RemoveInternalForSave(n Options, removeEl bool) {
	for key, v := range n {
		if IsInternal(key) || v == nil {
			delete(n, key)
		}
	}
	delete(n, "grid")
	if removeEl {
		delete(n, "el")
	}
	for _, flag := range []string{"autoPosition", "noResize", "noMove", "locked"} {
		if v, ok := n[flag]; ok && !ToBool(v) {
			delete(n, flag)
		}
	}
	dropDefaultSize(n, "w", "minW")
	dropDefaultSize(n, "h", "minH")
}

func dropDefaultSize(n Options, key, minKey string) {
	v, ok := ToNumber(n[key])
	if !ok {
		return
	}
	if v == 1 {
		delete(n, key)
		return
	}
	if m, ok := ToNumber(n[minKey]); ok && m == v {
		delete(n, key)
	}
}

// Clone returns a shallow copy of o.
func Clone(o Options) Options {
	if o == nil {
		return nil
	}
	out := make(Options, len(o))
	for k, v := range o {
		out[k] = v
	}
	return out
}

// shareFields hold live runtime objects and are copied by reference even
// in a deep clone.
var shareFields = map[string]bool{
	"parentGrid": true,
	"el":         true,
	"grid":       true,
	"subGrid":    true,
	"engine":     true,
}

// CloneDeep copies o together with every nested map and slice, except the
// fields that reference live runtime objects.
func CloneDeep(o Options) Options {
	if o == nil {
		return nil
	}
	out := make(Options, len(o))
	for k, v := range o {
		if shareFields[k] {
			out[k] = v
			continue
		}
		out[k] = cloneValue(v, shareFields)
	}
	return out
}

func cloneValue(v any, share map[string]bool) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, inner := range t {
			if share[k] {
				out[k] = inner
				continue
			}
			out[k] = cloneValue(inner, share)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, inner := range t {
			out[i] = cloneValue(inner, share)
		}
		return out
	default:
		return v
	}
}

// ToBool interprets loosely typed flags. Strings are false when empty or
// one of "no", "false" and "0" (case-insensitive); numbers are false when
// zero; nil is false; anything else is true.
func ToBool(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		switch strings.ToLower(t) {
		case "", "no", "false", "0":
			return false
		}
		return true
	}
	if f, ok := toFloat(v); ok {
		return f != 0
	}
	return true
}

// ToNumber converts a number or numeric string. Nil, empty strings and
// non-numeric values report false.
func ToNumber(v any) (float64, bool) {
	if s, ok := v.(string); ok {
		s = strings.TrimSpace(s)
		if s == "" {
			return 0, false
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		return f, true
	}
	return toFloat(v)
}

// MigrateObsolete renames deprecated keys in place. A value under the new
// name wins over the obsolete one. Each obsolete key found is logged once
// as a warning.
func MigrateObsolete(o Options, renames map[string]string, logger *zap.Logger) {
	if logger == nil {
		logger = zap.NewNop()
	}
	old := make([]string, 0, len(renames))
	for k := range renames {
		old = append(old, k)
	}
	sort.Strings(old)

	for _, key := range old {
		v, ok := o[key]
		if !ok {
			continue
		}
		replacement := renames[key]
		logger.Warn("obsolete option",
			zap.String("option", key),
			zap.String("replacement", replacement))
		if _, exists := o[replacement]; !exists && replacement != "" {
			o[replacement] = v
		}
		delete(o, key)
	}
}

func asMap(v any) (map[string]any, bool) {
	m, ok := v.(map[string]any)
	return m, ok
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}

// leafEqual compares primitives by value and structured values by
// identity.
func leafEqual(a, b any) bool {
	if af, ok := toFloat(a); ok {
		bf, ok := toFloat(b)
		return ok && af == bf
	}
	switch a.(type) {
	case nil, bool, string:
		return a == b
	case map[string]any, []any:
		return sameReference(a, b)
	}
	if reflect.TypeOf(a) != reflect.TypeOf(b) {
		return false
	}
	if reflect.TypeOf(a).Comparable() {
		return a == b
	}
	return sameReference(a, b)
}

func sameReference(a, b any) bool {
	av, bv := reflect.ValueOf(a), reflect.ValueOf(b)
	if av.Kind() != bv.Kind() {
		return false
	}
	switch av.Kind() {
	case reflect.Map, reflect.Slice, reflect.Pointer, reflect.Func, reflect.Chan:
		return av.Pointer() == bv.Pointer()
	}
	return false
}

// deepEqual compares values structurally, treating numbers by value.
func deepEqual(a, b any) bool {
	am, aIsMap := asMap(a)
	bm, bIsMap := asMap(b)
	if aIsMap || bIsMap {
		if !aIsMap || !bIsMap || len(am) != len(bm) {
			return false
		}
		for k, av := range am {
			bv, ok := bm[k]
			if !ok || !deepEqual(av, bv) {
				return false
			}
		}
		return true
	}
	as, aIsSlice := a.([]any)
	bs, bIsSlice := b.([]any)
	if aIsSlice || bIsSlice {
		if !aIsSlice || !bIsSlice || len(as) != len(bs) {
			return false
		}
		for i := range as {
			if !deepEqual(as[i], bs[i]) {
				return false
			}
		}
		return true
	}
	return leafEqual(a, b)
}
