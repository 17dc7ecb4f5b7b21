package goresolve

import (
	"bytes"

	json "github.com/goccy/go-json"
)

// deepEqualValue compares two decoded values structurally: maps by key set and
// member equality, slices element-wise, numbers numerically (1 and 1.0 are the
// same value regardless of decoder representation). uniqueItems, enum and
// const all go through here, so reference identity never matters.
func deepEqualValue(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if fa, ok := numberOf(a); ok {
		fb, ok2 := numberOf(b)
		return ok2 && fa == fb
	}
	switch av := a.(type) {
	case string:
		bv, ok := b.(string)
		return ok && av == bv
	case bool:
		bv, ok := b.(bool)
		return ok && av == bv
	case []any:
		bv, ok := b.([]any)
		if !ok || len(av) != len(bv) {
			return false
		}
		for i := range av {
			if !deepEqualValue(av[i], bv[i]) {
				return false
			}
		}
		return true
	}
	if am, ok := asObject(a); ok {
		bm, ok2 := asObject(b)
		if !ok2 || len(am) != len(bm) {
			return false
		}
		for k, ae := range am {
			be, present := bm[k]
			if !present || !deepEqualValue(ae, be) {
				return false
			}
		}
		return true
	}
	// Exotic caller-supplied types: compare canonical JSON as a last resort.
	ab, errA := json.Marshal(a)
	bb, errB := json.Marshal(b)
	return errA == nil && errB == nil && bytes.Equal(ab, bb)
}

// containsValue reports whether list has a member deep-equal to v.
func containsValue(list []any, v any) bool {
	for _, el := range list {
		if deepEqualValue(el, v) {
			return true
		}
	}
	return false
}
