package goresolve

import (
	"errors"
	"reflect"
)

// errMergeConflict is returned when conjunctive type intersection is empty and
// the numeric-tower rescue does not apply. Callers surface it as a
// merge_conflict issue attributed to the merge site.
var errMergeConflict = errors.New("goresolve: no valid type satisfies both schemas")

// mergeOptions controls how two schemas combine.
type mergeOptions struct {
	// conjunctive switches type handling from union (conditional/default
	// composition) to intersection (allOf).
	conjunctive bool
}

// mergeSchemas deep-combines a and b into one effective schema. The result is
// always an extension of a: none of a's own keywords are discarded, b supplies
// overrides and additions per keyword-specific rules. Neither input is
// mutated.
func mergeSchemas(a, b Schema, opt mergeOptions) (Schema, error) {
	if a == nil {
		return deepCopySchema(b), nil
	}
	if b == nil {
		return deepCopySchema(a), nil
	}
	out := deepCopySchema(a)

	if err := mergeType(out, a, b, opt); err != nil {
		return nil, err
	}
	mergePinnedValues(out, a, b)
	mergeRequired(out, a, b)
	mergeProperties(out, a, b, opt)
	mergeKeyedSchemas(out, a, b, "patternProperties")
	mergeKeyedSchemas(out, a, b, "dependentSchemas")
	mergeSubSchema(out, a, b, "additionalProperties")
	mergeSubSchema(out, a, b, "items")
	mergeConditional(out, b)
	if err := mergeNot(out, a, b, opt); err != nil {
		return nil, err
	}
	mergeCompositionLists(out, a, b)

	// Remaining scalar keywords: b overrides a. The merger trusts the second
	// operand as the tighter constraint and never computes min/max envelopes.
	for k, bv := range b {
		switch k {
		case "type", "const", "enum", "required", "properties",
			"patternProperties", "dependentSchemas", "additionalProperties",
			"items", "if", "then", "else", "not", "allOf", "anyOf", "oneOf":
			continue
		}
		out[k] = deepCopyValue(bv)
	}
	return out, nil
}

func mergeType(out, a, b Schema, opt mergeOptions) error {
	ta, tb := typeNames(a), typeNames(b)
	switch {
	case len(ta) == 0 && len(tb) == 0:
		return nil
	case len(ta) == 0:
		out["type"] = deepCopyValue(b["type"])
		return nil
	case len(tb) == 0:
		return nil
	}
	if !opt.conjunctive {
		setTypeNames(out, unionStrings(ta, tb))
		return nil
	}
	inter := intersectStrings(ta, tb)
	if len(inter) == 0 {
		// Numeric tower: number on one side and integer on the other still
		// share the integers.
		if hasNumericMember(ta) && hasNumericMember(tb) {
			out["type"] = "integer"
			return nil
		}
		return errMergeConflict
	}
	setTypeNames(out, inter)
	return nil
}

func setTypeNames(out Schema, names []string) {
	if len(names) == 1 {
		out["type"] = names[0]
		return
	}
	list := make([]any, len(names))
	for i, n := range names {
		list[i] = n
	}
	out["type"] = list
}

func hasNumericMember(names []string) bool {
	for _, n := range names {
		if n == "number" || n == "integer" {
			return true
		}
	}
	return false
}

func unionStrings(a, b []string) []string {
	return dedupStrings(append(append([]string{}, a...), b...))
}

func intersectStrings(a, b []string) []string {
	inB := make(map[string]bool, len(b))
	for _, n := range b {
		inB[n] = true
	}
	var out []string
	for _, n := range a {
		if inB[n] {
			out = append(out, n)
		}
	}
	return dedupStrings(out)
}

// singlePinned reports the one value a schema pins down, via const or a
// singleton enum.
func singlePinned(s Schema) (any, bool) {
	if c, ok := s["const"]; ok {
		return c, true
	}
	if en := listAt(s, "enum"); len(en) == 1 {
		return en[0], true
	}
	return nil, false
}

func mergePinnedValues(out, a, b Schema) {
	va, oka := singlePinned(a)
	vb, okb := singlePinned(b)
	if oka && okb && deepEqualValue(va, vb) {
		out["const"] = deepCopyValue(va)
		delete(out, "enum")
		return
	}
	ea, eb := listAt(a, "enum"), listAt(b, "enum")
	if len(ea) > 0 || len(eb) > 0 {
		merged := make([]any, 0, len(ea)+len(eb))
		for _, el := range ea {
			merged = append(merged, deepCopyValue(el))
		}
		for _, el := range eb {
			if !containsValue(merged, el) {
				merged = append(merged, deepCopyValue(el))
			}
		}
		out["enum"] = merged
	}
	if cb, ok := b["const"]; ok {
		out["const"] = deepCopyValue(cb)
	}
}

func mergeRequired(out, a, b Schema) {
	ra, rb := rawRequired(a), rawRequired(b)
	if len(ra) == 0 && len(rb) == 0 {
		return
	}
	union := unionStrings(ra, rb)
	list := make([]any, len(union))
	for i, n := range union {
		list[i] = n
	}
	out["required"] = list
}

func mergeProperties(out, a, b Schema, opt mergeOptions) {
	pb, okb := schemaAt(b, "properties")
	if !okb {
		return
	}
	pa, _ := schemaAt(a, "properties")
	merged := make(map[string]any, len(pa)+len(pb))
	for k, v := range pa {
		merged[k] = deepCopyValue(v)
	}
	for k, raw := range pb {
		as, inA := schemaAt(pa, k)
		bs, isSchema := schemaAt(pb, k)
		if inA && isSchema {
			m, err := mergeSchemas(as, bs, opt)
			if err != nil {
				// Property-level conflicts keep b's side; the resolver will
				// surface the mismatch when the property is resolved.
				merged[k] = deepCopyValue(raw)
				continue
			}
			merged[k] = map[string]any(m)
			continue
		}
		merged[k] = deepCopyValue(raw)
	}
	out["properties"] = merged
}

// mergeKeyedSchemas deep-merges map-of-schema keywords (patternProperties,
// dependentSchemas) by key, last write winning per leaf keyword.
func mergeKeyedSchemas(out, a, b Schema, key string) {
	mb, okb := schemaAt(b, key)
	if !okb {
		return
	}
	ma, _ := schemaAt(a, key)
	out[key] = deepMergeMap(map[string]any(ma), map[string]any(mb))
}

func deepMergeMap(a, b map[string]any) map[string]any {
	out := make(map[string]any, len(a)+len(b))
	for k, v := range a {
		out[k] = deepCopyValue(v)
	}
	for k, bv := range b {
		if am, ok := out[k].(map[string]any); ok {
			if bm, ok2 := bv.(map[string]any); ok2 {
				out[k] = deepMergeMap(am, bm)
				continue
			}
		}
		out[k] = deepCopyValue(bv)
	}
	return out
}

// mergeSubSchema combines single-schema keywords (items,
// additionalProperties): recursive merge when both sides carry schema
// objects, otherwise b wins.
func mergeSubSchema(out, a, b Schema, key string) {
	bv, present := b[key]
	if !present {
		return
	}
	as, okA := schemaAt(a, key)
	bs, okB := schemaAt(b, key)
	if okA && okB {
		if m, err := mergeSchemas(as, bs, mergeOptions{}); err == nil {
			out[key] = map[string]any(m)
			return
		}
	}
	out[key] = deepCopyValue(bv)
}

// mergeConditional replaces the conditional wholesale when b carries one;
// if/then/else triplets are never combined across operands.
func mergeConditional(out, b Schema) {
	if _, ok := b["if"]; !ok {
		return
	}
	delete(out, "if")
	delete(out, "then")
	delete(out, "else")
	for _, k := range []string{"if", "then", "else"} {
		if v, ok := b[k]; ok {
			out[k] = deepCopyValue(v)
		}
	}
}

// mergeNot combines negations recursively: both must hold.
func mergeNot(out, a, b Schema, opt mergeOptions) error {
	nb, okb := schemaAt(b, "not")
	if !okb {
		return nil
	}
	na, oka := schemaAt(a, "not")
	if !oka {
		out["not"] = deepCopyValue(b["not"])
		return nil
	}
	m, err := mergeSchemas(na, nb, opt)
	if err != nil {
		return err
	}
	out["not"] = map[string]any(m)
	return nil
}

// mergeCompositionLists concatenates allOf/anyOf/oneOf, dropping duplicate
// sub-schemas by reference identity.
func mergeCompositionLists(out, a, b Schema) {
	for _, key := range []string{"allOf", "anyOf", "oneOf"} {
		lb := listAt(b, key)
		if len(lb) == 0 {
			continue
		}
		la := listAt(a, key)
		seen := make(map[uintptr]bool, len(la)+len(lb))
		merged := make([]any, 0, len(la)+len(lb))
		appendOne := func(el any) {
			if m, ok := el.(map[string]any); ok {
				ptr := reflect.ValueOf(m).Pointer()
				if seen[ptr] {
					return
				}
				seen[ptr] = true
			}
			merged = append(merged, el)
		}
		for _, el := range la {
			appendOne(el)
		}
		for _, el := range lb {
			appendOne(el)
		}
		out[key] = merged
	}
}
