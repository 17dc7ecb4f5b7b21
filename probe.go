package goresolve

import (
	"regexp"
	"strings"

	"github.com/reoring/goresolve/i18n"
)

// probeEnv is the stateless environment of the probe validator. Probing never
// applies defaults and never mutates anything — it answers "does this value
// satisfy this schema" with a flat issue list.
type probeEnv struct {
	opt  ResolveOpt
	root Schema
}

func (e *probeEnv) getValue(container any, key string) (any, bool) {
	if e.opt.GetValue != nil {
		return e.opt.GetValue(container, key)
	}
	return defaultGetValue(container, key)
}

func (e *probeEnv) graphemes() GraphemeCounter {
	if e.opt.Graphemes != nil {
		return e.opt.Graphemes
	}
	return DefaultGraphemes()
}

func (e *probeEnv) refs() RefResolver {
	if e.opt.Refs != nil {
		return e.opt.Refs
	}
	return LocalRefs()
}

// mkIssue builds one issue at an explicit path.
func mkIssue(path []string, code string, data map[string]string) Issue {
	it := Issue{Path: path, Code: code, Message: i18n.T(code, data)}
	if len(data) > 0 {
		params := make(map[string]any, len(data))
		for k, v := range data {
			params[k] = v
		}
		it.Params = params
	}
	return it
}

// childPath extends a path without aliasing the parent slice.
func childPath(path []string, seg string) []string {
	out := make([]string, len(path)+1)
	copy(out, path)
	out[len(path)] = seg
	return out
}

// probe performs the same structural checks as the resolution core — type,
// range, length, pattern, format, required, nested properties/items,
// conditional, composition — without resolving.
func (e *probeEnv) probe(v any, s Schema, path []string, depth int) Issues {
	if s == nil {
		return nil
	}
	if e.opt.MaxDepth > 0 && depth >= e.opt.MaxDepth {
		return Issues{mkIssue(path, CodeParseError, map[string]string{"detail": "schema nesting too deep"})}
	}
	depth++

	var iss Issues
	if c, ok := s["const"]; ok && !deepEqualValue(v, c) {
		return Issues{mkIssue(path, CodeInvalidConst, nil)}
	}
	if en := listAt(s, "enum"); len(en) > 0 && !containsValue(en, v) {
		iss = append(iss, mkIssue(path, CodeInvalidEnum, map[string]string{"allowed": renderEnum(en)}))
	}

	if _, ok := s["if"]; ok {
		iff, _ := schemaAt(s, "if")
		met := conditionMet(e, iff, v, depth)
		base := schemaWithout(s, "if", "then", "else")
		branchKey := "else"
		if met {
			branchKey = "then"
		}
		if br, ok2 := schemaAt(s, branchKey); ok2 {
			merged, err := mergeSchemas(base, br, mergeOptions{})
			if err != nil {
				return append(iss, mkIssue(path, CodeMergeConflict, nil))
			}
			return append(iss, e.probe(v, merged, path, depth)...)
		}
		return append(iss, e.probe(v, base, path, depth)...)
	}

	if subs := schemaList(s, "allOf"); len(subs) > 0 {
		eff := schemaWithout(s, "allOf")
		for _, sub := range subs {
			merged, err := mergeSchemas(eff, sub, mergeOptions{conjunctive: true})
			if err != nil {
				return append(iss, mkIssue(childPath(path, MarkerAllOf), CodeMergeConflict, nil))
			}
			eff = merged
		}
		return append(iss, e.probe(v, eff, path, depth)...)
	}
	if subs := schemaList(s, "anyOf"); len(subs) > 0 {
		passed := false
		var collected Issues
		for _, sub := range subs {
			bi := e.probe(v, sub, path, depth)
			if len(bi) == 0 {
				passed = true
				break
			}
			collected = append(collected, bi...)
		}
		if !passed {
			iss = append(iss, mkIssue(path, CodeAnyOf, nil))
			iss = append(iss, collected...)
		}
		s = schemaWithout(s, "anyOf")
	}
	if subs := schemaList(s, "oneOf"); len(subs) > 0 {
		passed := 0
		for _, sub := range subs {
			if len(e.probe(v, sub, childPath(path, MarkerOneOf), depth)) == 0 {
				passed++
			}
		}
		if passed != 1 {
			iss = append(iss, mkIssue(path, CodeOneOf, nil))
		}
		s = schemaWithout(s, "oneOf")
	}
	if ns, ok := schemaAt(s, "not"); ok {
		if len(e.probe(v, ns, childPath(path, MarkerNot), depth)) == 0 {
			iss = append(iss, mkIssue(childPath(path, MarkerNot), CodeNot, nil))
		}
		s = schemaWithout(s, "not")
	}

	concrete := TypeInvalid
	names := typeNames(s)
	if len(names) > 0 {
		listed := make(map[Type]bool, len(names))
		anyKnown := false
		for _, name := range names {
			if t, ok := ParseType(name); ok {
				listed[t] = true
				anyKnown = true
			}
		}
		if !anyKnown {
			return append(iss, mkIssue(path, CodeUnsupportedType, map[string]string{"type": strings.Join(names, ", ")}))
		}
		for _, t := range typePriority {
			if listed[t] && valueFits(t, v) {
				concrete = t
				break
			}
		}
		if concrete == TypeInvalid {
			expected := "one of type: " + strings.Join(names, ", ")
			if len(names) == 1 {
				if t, ok := ParseType(names[0]); ok {
					expected = t.article()
				}
			}
			return append(iss, mkIssue(path, CodeInvalidType, map[string]string{"expected": expected}))
		}
		if len(names) > 1 {
			s = filterKeywords(s, concrete)
		}
	} else {
		for _, t := range typePriority {
			if valueFits(t, v) {
				concrete = t
				break
			}
		}
	}

	switch concrete {
	case TypeString:
		str, _ := v.(string)
		for _, sp := range checkStringConstraints(s, str, e.graphemes()) {
			iss = append(iss, mkIssue(path, sp.code, sp.data))
		}
	case TypeNumber, TypeInteger:
		f, _ := numberOf(v)
		for _, sp := range checkNumberConstraints(s, f, concrete == TypeInteger) {
			iss = append(iss, mkIssue(path, sp.code, sp.data))
		}
	case TypeArray:
		arr, _ := v.([]any)
		iss = append(iss, e.probeArray(arr, s, path, depth)...)
	case TypeObject:
		obj, _ := asObject(v)
		iss = append(iss, e.probeObject(v, obj, s, path, depth)...)
	}
	return iss
}

func (e *probeEnv) probeObject(v any, obj map[string]any, s Schema, path []string, depth int) Issues {
	var iss Issues
	for _, name := range requiredNames(s) {
		if _, ok := e.getValue(obj, name); !ok {
			iss = append(iss, mkIssue(path, CodeRequired, map[string]string{"property": name}))
		}
	}
	if props, ok := schemaAt(s, "properties"); ok {
		for _, name := range propertyOrder(s) {
			ps, ok2 := schemaAt(props, name)
			if !ok2 {
				continue
			}
			pv, pok := e.getValue(obj, name)
			if !pok {
				continue
			}
			iss = append(iss, e.probe(pv, ps, childPath(path, name), depth)...)
		}
	}
	if deps, ok := schemaAt(s, "dependentSchemas"); ok {
		for _, name := range sortedKeys(deps) {
			if _, pok := e.getValue(obj, name); !pok {
				continue
			}
			ds, ok2 := schemaAt(deps, name)
			if !ok2 {
				continue
			}
			iss = append(iss, e.probe(v, ds, path, depth)...)
		}
	}
	if pats, ok := schemaAt(s, "patternProperties"); ok {
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
			for _, name := range sortedStringKeys(obj) {
				if _, isDeclared := declared[name]; isDeclared {
					continue
				}
				if re.MatchString(name) {
					iss = append(iss, e.probe(obj[name], psch, childPath(path, name), depth)...)
				}
			}
		}
	}
	if ap, present := s["additionalProperties"]; present {
		extras := extraKeys(s, obj)
		switch t := ap.(type) {
		case bool:
			if !t {
				for _, name := range extras {
					iss = append(iss, mkIssue(childPath(path, name), CodeUnknownKey, map[string]string{"property": name}))
				}
			}
		case map[string]any, Schema:
			aps, _ := schemaAt(s, "additionalProperties")
			if ref, okRef := stringAt(aps, "$ref"); okRef {
				if target, found := e.refs().Resolve(ref, e.root); found {
					if merged, err := mergeSchemas(target, schemaWithout(aps, "$ref"), mergeOptions{}); err == nil {
						aps = merged
					}
				} else {
					aps = schemaWithout(aps, "$ref")
				}
			}
			for _, name := range extras {
				iss = append(iss, e.probe(obj[name], aps, childPath(path, name), depth)...)
			}
		}
	}
	if pns, ok := schemaAt(s, "propertyNames"); ok {
		for _, name := range sortedStringKeys(obj) {
			if len(e.probe(name, pns, childPath(path, MarkerPropertyNames), depth)) > 0 {
				iss = append(iss, mkIssue(childPath(path, MarkerPropertyNames), CodePropertyNames, map[string]string{"property": name}))
			}
		}
	}
	return iss
}

func (e *probeEnv) probeArray(arr []any, s Schema, path []string, depth int) Issues {
	var iss Issues
	for _, sp := range checkArrayBounds(s, arr) {
		iss = append(iss, mkIssue(path, sp.code, sp.data))
	}
	if cs, ok := schemaAt(s, "contains"); ok {
		found := false
		for _, el := range arr {
			if len(e.probe(el, cs, childPath(path, MarkerContains), depth)) == 0 {
				found = true
				break
			}
		}
		if !found {
			iss = append(iss, mkIssue(childPath(path, MarkerContains), CodeContains, nil))
		}
	}

	prefix := schemaList(s, "prefixItems")
	itemsSingle, itemsIsSingle := schemaAt(s, "items")
	itemsTuple := schemaList(s, "items")
	addSchema, addIsSchema := schemaAt(s, "additionalItems")
	addForbidden := false
	if b, okb := boolAt(s, "additionalItems"); okb && !b {
		addForbidden = true
	}

	for i, el := range arr {
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
				iss = append(iss, mkIssue(childPath(path, itoaIndex(i)), CodeAdditionalItems, nil))
				continue
			} else {
				continue
			}
		default:
			continue
		}
		iss = append(iss, e.probe(el, es, childPath(path, itoaIndex(i)), depth)...)
	}
	return iss
}
