package goresolve

// resolveAllOf flattens every member into the base schema under conjunction
// rules and resolves once. Members carrying their own conditional are resolved
// individually first so their if fires against the live data context, and
// their resolved properties deep-assign into the working value before the
// flattened resolve.
func (r *resolver) resolveAllOf(s Schema, v any, present bool, parent Schema, key string) (any, bool) {
	subs := schemaList(s, "allOf")
	base := schemaWithout(s, "allOf")
	start := len(r.errs)
	working := v
	members := make([]Schema, 0, len(subs))
	for _, sub := range subs {
		if _, hasIf := sub["if"]; hasIf {
			rv, okc := r.resolveConditional(sub, working, present, parent, key)
			if okc {
				working = deepAssign(working, rv)
			}
			members = append(members, schemaWithout(sub, "if", "then", "else"))
			continue
		}
		members = append(members, sub)
	}
	eff := base
	for _, m := range members {
		merged, err := mergeSchemas(eff, m, mergeOptions{conjunctive: true})
		if err != nil {
			pop := r.path.push(MarkerAllOf)
			r.issue(CodeMergeConflict, nil)
			pop()
			return v, false
		}
		eff = merged
	}
	if working != nil {
		present = true
	}
	// Members can contribute const/enum through the merge, so the flattened
	// resolve runs with full checks.
	rv, _ := r.resolveAny(eff, working, present, parent, key, false)
	return rv, len(r.errs) == start
}

// resolveAnyOf probes each branch in declaration order. The first passing
// branch wins and the value comes back untouched; branches never inject
// defaults. When none pass, the schema's own default rescues, else the
// aggregate failure surfaces along with every branch's errors. The caller
// resumes resolution against the rest of the schema on success, so base
// keywords still apply.
func (r *resolver) resolveAnyOf(s Schema, v any) (any, bool) {
	subs := schemaList(s, "anyOf")
	var collected Issues
	for _, sub := range subs {
		iss := r.probeAt(v, sub)
		if len(iss) == 0 {
			return v, true
		}
		collected = append(collected, iss...)
	}
	if d, ok := s["default"]; ok {
		return deepCopyValue(d), true
	}
	r.issue(CodeAnyOf, nil)
	r.errs = append(r.errs, collected...)
	return v, false
}

// resolveOneOf requires exactly one passing branch; zero and several are both
// failures. On failure the declared default wins when present; otherwise the
// branch whose declared properties overlap the value's own keys supplies the
// specific errors instead of the generic message. The overlap pick is a
// best-effort UX heuristic, not a correctness rule.
func (r *resolver) resolveOneOf(s Schema, v any) (any, bool) {
	subs := schemaList(s, "oneOf")
	passed := 0
	branchErrs := make([]Issues, len(subs))
	for i, sub := range subs {
		iss := r.probeAt(v, sub, MarkerOneOf)
		if len(iss) == 0 {
			passed++
		} else {
			branchErrs[i] = iss
		}
	}
	if passed == 1 {
		return v, true
	}
	if d, ok := s["default"]; ok {
		return deepCopyValue(d), true
	}
	if passed == 0 {
		if best := bestMatchingBranch(subs, v); best >= 0 && len(branchErrs[best]) > 0 {
			r.errs = append(r.errs, branchErrs[best]...)
			return v, false
		}
	}
	r.issue(CodeOneOf, nil)
	return v, false
}

// bestMatchingBranch picks the branch whose declared properties overlap the
// value's keys the most — a stand-in for "which schema did the author intend".
func bestMatchingBranch(subs []Schema, v any) int {
	obj, ok := asObject(v)
	if !ok {
		return -1
	}
	best, bestN := -1, 0
	for i, sub := range subs {
		props, ok2 := schemaAt(sub, "properties")
		if !ok2 {
			continue
		}
		n := 0
		for name := range props {
			if _, in := obj[name]; in {
				n++
			}
		}
		if n > bestN {
			best, bestN = i, n
		}
	}
	return best
}

// resolveNot probes the negated sub-schema; a clean pass means the negation
// fails. Inside the negation, a missing required property is not a hard
// failure — it is exactly what satisfies {not: {required: [...]}}.
func (r *resolver) resolveNot(ns Schema, v any) bool {
	iss := r.probeAt(v, ns, MarkerNot)
	if len(iss) == 0 {
		pop := r.path.push(MarkerNot)
		r.issue(CodeNot, nil)
		pop()
		return false
	}
	return true
}

// deepAssign folds resolved branch output into the working value: maps merge
// member-wise, anything else from src replaces dst.
func deepAssign(dst, src any) any {
	if _, om := src.(omittedValue); om || src == nil {
		return dst
	}
	dm, okd := asObject(dst)
	sm, oks := asObject(src)
	if okd && oks {
		for k, sv := range sm {
			if dv, has := dm[k]; has {
				dm[k] = deepAssign(dv, sv)
			} else {
				dm[k] = sv
			}
		}
		return dm
	}
	return src
}
