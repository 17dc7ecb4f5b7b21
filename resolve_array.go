package goresolve

// resolveArray validates bounds, uniqueness and contains before recursing
// into the elements. prefixItems covers leading indices; a single items
// schema governs the rest; a tuple items schema hands indices beyond its
// length to additionalItems.
func (r *resolver) resolveArray(s Schema, v any, present, required bool) (any, bool) {
	if !present {
		if d, ok := s["default"]; ok {
			v = deepCopyValue(d)
		} else if required {
			r.issue(CodeRequired, nil)
			return nil, false
		} else {
			v = []any{}
		}
	}
	arr, ok := v.([]any)
	if !ok {
		r.issue(CodeInvalidType, map[string]string{"expected": "an array"})
		return v, false
	}
	start := len(r.errs)

	for _, sp := range checkArrayBounds(s, arr) {
		r.issue(sp.code, sp.data)
	}
	if cs, hasContains := schemaAt(s, "contains"); hasContains {
		found := false
		for _, el := range arr {
			if len(r.probeAt(el, cs, MarkerContains)) == 0 {
				found = true
				break
			}
		}
		if !found {
			pop := r.path.push(MarkerContains)
			r.issue(CodeContains, nil)
			pop()
		}
	}

	out := make([]any, len(arr))
	copy(out, arr)

	prefix := schemaList(s, "prefixItems")
	itemsSingle, itemsIsSingle := schemaAt(s, "items")
	itemsTuple := schemaList(s, "items")
	addSchema, addIsSchema := schemaAt(s, "additionalItems")
	addForbidden := false
	if b, okb := boolAt(s, "additionalItems"); okb && !b {
		addForbidden = true
	}

	for i := range out {
		var es Schema
		switch {
		case i < len(prefix):
			es = prefix[i]
		case itemsIsSingle:
			es = itemsSingle
		case len(itemsTuple) > 0:
			if i < len(itemsTuple) {
				es = itemsTuple[i]
			} else if addIsSchema {
				es = addSchema
			} else if addForbidden {
				pop := r.path.pushIndex(i)
				r.issue(CodeAdditionalItems, nil)
				pop()
				continue
			} else {
				// absent or true: pass through unresolved
				continue
			}
		default:
			continue
		}
		pop := r.path.pushIndex(i)
		rv, _ := r.resolveAny(es, out[i], true, nil, "", false)
		pop()
		if _, om := rv.(omittedValue); !om {
			out[i] = rv
		}
	}
	return out, len(r.errs) == start
}
