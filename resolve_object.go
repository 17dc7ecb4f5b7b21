package goresolve

import (
	"regexp"
	"sort"
)

// resolveObject resolves an object value in stages: required-default
// injection, missing-required reporting, then properties, dependentSchemas,
// patternProperties, additionalProperties and propertyNames, threading the
// accumulating result through each stage. Only the working copy is mutated.
func (r *resolver) resolveObject(s Schema, v any, present, required bool) (any, bool) {
	if !present {
		if d, ok := s["default"]; ok {
			v = deepCopyValue(d)
		} else if required {
			r.issue(CodeRequired, nil)
			return nil, false
		} else {
			v = map[string]any{}
		}
	}
	obj, ok := asObject(v)
	if !ok {
		r.issue(CodeInvalidType, map[string]string{"expected": "an object"})
		return v, false
	}
	start := len(r.errs)
	out := make(map[string]any, len(obj))
	for k, el := range obj {
		out[k] = el
	}

	req := requiredNames(s)
	for _, name := range req {
		if _, has := r.getValue(out, name); has {
			continue
		}
		if ps, ok2 := propertySchema(s, name); ok2 {
			if d, ok3 := ps["default"]; ok3 {
				out[name] = deepCopyValue(d)
			}
		}
	}
	for _, name := range req {
		if _, has := r.getValue(out, name); !has {
			r.issue(CodeRequired, map[string]string{"property": name})
		}
	}

	if props, hasProps := schemaAt(s, "properties"); hasProps {
		for _, name := range propertyOrder(s) {
			ps, ok2 := schemaAt(props, name)
			if !ok2 {
				continue
			}
			pv, pok := r.getValue(out, name)
			pop := r.path.push(name)
			rv, _ := r.resolveAny(ps, pv, pok, s, name, false)
			pop()
			if _, om := rv.(omittedValue); om {
				continue
			}
			if rv == nil && !pok {
				continue
			}
			out[name] = rv
		}
	}

	if deps, hasDeps := schemaAt(s, "dependentSchemas"); hasDeps {
		for _, name := range sortedKeys(deps) {
			if _, has := r.getValue(out, name); !has {
				continue
			}
			ds, ok2 := schemaAt(deps, name)
			if !ok2 {
				continue
			}
			rv, ok3 := r.resolveAny(ds, out, true, nil, "", false)
			if ok3 {
				if m, ok4 := asObject(rv); ok4 {
					out = m
				}
			}
		}
	}

	if pats, hasPats := schemaAt(s, "patternProperties"); hasPats {
		declared, _ := schemaAt(s, "properties")
		for _, pattern := range sortedKeys(pats) {
			psch, ok2 := schemaAt(pats, pattern)
			if !ok2 {
				continue
			}
			re, err := regexp.Compile(pattern)
			if err != nil {
				continue
			}
			for _, name := range sortedStringKeys(out) {
				if !re.MatchString(name) {
					continue
				}
				if _, isDeclared := declared[name]; isDeclared {
					// properties already resolved this key
					continue
				}
				pop := r.path.push(name)
				rv, _ := r.resolveAny(psch, out[name], true, s, name, false)
				pop()
				if _, om := rv.(omittedValue); !om {
					out[name] = rv
				}
			}
		}
	}

	r.resolveAdditionalProperties(s, out)

	if pns, hasPns := schemaAt(s, "propertyNames"); hasPns {
		for _, name := range sortedStringKeys(out) {
			if iss := r.probeAt(name, pns, MarkerPropertyNames); len(iss) > 0 {
				pop := r.path.push(MarkerPropertyNames)
				r.issue(CodePropertyNames, map[string]string{"property": name})
				pop()
			}
		}
	}

	return out, len(r.errs) == start
}

// resolveAdditionalProperties governs keys declared by neither properties nor
// patternProperties: false rejects them, a schema resolves them ($ref to the
// schema root or another node is expanded through the Refs collaborator).
func (r *resolver) resolveAdditionalProperties(s Schema, out map[string]any) {
	ap, present := s["additionalProperties"]
	if !present {
		return
	}
	extras := extraKeys(s, out)
	switch t := ap.(type) {
	case bool:
		if t {
			return
		}
		for _, name := range extras {
			pop := r.path.push(name)
			r.issue(CodeUnknownKey, map[string]string{"property": name})
			pop()
		}
	case map[string]any, Schema:
		aps, _ := schemaAt(s, "additionalProperties")
		aps = r.expandRef(aps)
		for _, name := range extras {
			pop := r.path.push(name)
			rv, _ := r.resolveAny(aps, out[name], true, s, name, false)
			pop()
			if _, om := rv.(omittedValue); !om {
				out[name] = rv
			}
		}
	}
}

// expandRef swaps a {$ref: ...} schema for its target, layering any sibling
// keywords of the reference on top of the target.
func (r *resolver) expandRef(s Schema) Schema {
	ref, ok := stringAt(s, "$ref")
	if !ok {
		return s
	}
	target, found := r.opt.Refs.Resolve(ref, r.root)
	if !found {
		r.issue(CodeParseError, map[string]string{"detail": "unresolved $ref " + ref})
		return schemaWithout(s, "$ref")
	}
	merged, err := mergeSchemas(target, schemaWithout(s, "$ref"), mergeOptions{})
	if err != nil {
		r.issue(CodeMergeConflict, nil)
		return schemaWithout(s, "$ref")
	}
	return merged
}

// extraKeys lists value keys covered by neither properties nor a matching
// patternProperties pattern, sorted for deterministic output.
func extraKeys(s Schema, out map[string]any) []string {
	declared, _ := schemaAt(s, "properties")
	pats, _ := schemaAt(s, "patternProperties")
	var res []string
	for _, name := range sortedStringKeys(out) {
		if _, ok := declared[name]; ok {
			continue
		}
		matched := false
		for pattern := range pats {
			if re, err := regexp.Compile(pattern); err == nil && re.MatchString(name) {
				matched = true
				break
			}
		}
		if !matched {
			res = append(res, name)
		}
	}
	return res
}

func sortedKeys(s Schema) []string {
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func sortedStringKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
