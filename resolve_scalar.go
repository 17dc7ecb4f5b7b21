package goresolve

// resolveNull succeeds with nil unless a non-null value is present.
func (r *resolver) resolveNull(v any, present bool) (any, bool) {
	if !present || v == nil {
		return nil, true
	}
	r.issue(CodeInvalidType, map[string]string{"expected": "null"})
	return v, false
}

func (r *resolver) resolveBoolean(s Schema, v any, present, required bool) (any, bool) {
	if !present {
		if d, ok := s["default"]; ok {
			return deepCopyValue(d), true
		}
		return false, true
	}
	if b, ok := v.(bool); ok {
		return b, true
	}
	if v == nil && !required {
		return false, true
	}
	r.issue(CodeInvalidType, map[string]string{"expected": "a boolean"})
	return v, false
}

// resolveNumber covers both number and integer. Violated constraints
// accumulate as separate errors on the same node — a value can be both below
// minimum and off the multipleOf grid at once.
func (r *resolver) resolveNumber(s Schema, v any, present, required, integer bool) (any, bool) {
	if !present {
		if d, ok := s["default"]; ok {
			return deepCopyValue(d), true
		}
		if required {
			r.issue(CodeRequired, nil)
			return nil, false
		}
		if integer {
			return int64(0), true
		}
		return float64(0), true
	}
	f, ok := numberOf(v)
	if !ok {
		expected := "a number"
		if integer {
			expected = "an integer"
		}
		r.issue(CodeInvalidType, map[string]string{"expected": expected})
		return v, false
	}
	specs := checkNumberConstraints(s, f, integer)
	for _, sp := range specs {
		r.issue(sp.code, sp.data)
	}
	return v, len(specs) == 0
}

func (r *resolver) resolveString(s Schema, v any, present, required bool) (any, bool) {
	if !present {
		if d, ok := s["default"]; ok {
			return deepCopyValue(d), true
		}
		if required {
			r.issue(CodeRequired, nil)
			return nil, false
		}
		return omitted, true
	}
	str, ok := v.(string)
	if !ok {
		r.issue(CodeInvalidType, map[string]string{"expected": "a string"})
		return v, false
	}
	specs := checkStringConstraints(s, str, r.opt.Graphemes)
	for _, sp := range specs {
		r.issue(sp.code, sp.data)
	}
	return str, len(specs) == 0
}
