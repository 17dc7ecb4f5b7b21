package goresolve

// resolveConditional evaluates if/then/else. The condition is always probed,
// never resolved, so it cannot inject defaults; on a met condition the base
// schema (minus the conditional triplet) merges additively with then,
// otherwise with else, and resolution recurses into the merged schema.
func (r *resolver) resolveConditional(s Schema, v any, present bool, parent Schema, key string) (any, bool) {
	iff, _ := schemaAt(s, "if")
	e := &probeEnv{opt: r.opt, root: r.root}
	met := conditionMet(e, iff, v, r.depth)
	base := schemaWithout(s, "if", "then", "else")
	var branch Schema
	if met {
		branch, _ = schemaAt(s, "then")
	} else {
		branch, _ = schemaAt(s, "else")
	}
	eff := base
	if branch != nil {
		m, err := mergeSchemas(base, branch, mergeOptions{})
		if err != nil {
			r.issue(CodeMergeConflict, nil)
			return v, false
		}
		eff = m
	}
	// The branch can carry const/enum of its own, so the merged resolve runs
	// with full checks.
	return r.resolveAny(eff, v, present, parent, key, false)
}

// conditionMet evaluates an if schema against the current value. When the
// condition declares properties, each named property is tested individually
// against its sub-condition; a missing property short-circuits to "not met"
// instead of poisoning the whole probe with unrelated failures.
func conditionMet(e *probeEnv, iff Schema, v any, depth int) bool {
	if iff == nil {
		return false
	}
	props, hasProps := schemaAt(iff, "properties")
	if !hasProps {
		return len(e.probe(v, iff, nil, depth)) == 0
	}
	obj, ok := asObject(v)
	if !ok {
		return false
	}
	for name := range props {
		cond, ok2 := schemaAt(props, name)
		if !ok2 {
			continue
		}
		pv, pok := e.getValue(obj, name)
		if !pok {
			return false
		}
		if !propertyConditionMet(e, cond, pv, depth) {
			return false
		}
	}
	for _, name := range rawRequired(iff) {
		if _, pok := e.getValue(obj, name); !pok {
			return false
		}
	}
	return true
}

// propertyConditionMet supports const/minimum/maximum shortcuts without a
// full type resolve; anything richer falls back to the probe.
func propertyConditionMet(e *probeEnv, cond Schema, pv any, depth int) bool {
	if c, ok := cond["const"]; ok {
		if !deepEqualValue(pv, c) {
			return false
		}
	}
	if min, ok := numberAt(cond, "minimum"); ok {
		f, okf := numberOf(pv)
		if !okf || f < min {
			return false
		}
	}
	if max, ok := numberAt(cond, "maximum"); ok {
		f, okf := numberOf(pv)
		if !okf || f > max {
			return false
		}
	}
	for k := range cond {
		switch k {
		case "const", "minimum", "maximum":
		default:
			return len(e.probe(pv, cond, nil, depth)) == 0
		}
	}
	return true
}
