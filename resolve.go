package goresolve

import (
	"context"
	"strings"
)

// omittedValue marks an absent optional property that stays absent after
// resolution (strings and untyped schemas without defaults). Object and array
// resolvers skip it instead of writing a key.
type omittedValue struct{}

var omitted = omittedValue{}

// resolver is the per-call state of the resolution core. A fresh resolver is
// created for every top-level invocation; nothing is shared across calls.
type resolver struct {
	ctx  context.Context
	opt  ResolveOpt
	root Schema

	path  pathStack
	errs  Issues
	depth int
}

// issue records one error at the current path.
func (r *resolver) issue(code string, data map[string]string) {
	r.errs = append(r.errs, mkIssue(r.path.snapshot(), code, data))
}

func (r *resolver) getValue(container any, key string) (any, bool) {
	if r.opt.GetValue != nil {
		return r.opt.GetValue(container, key)
	}
	return defaultGetValue(container, key)
}

// probeAt runs the pure validator against a sub-schema, seeding its path with
// the resolver's current position plus optional extra markers. The probe can
// never influence the resolver's working value.
func (r *resolver) probeAt(v any, s Schema, extra ...string) Issues {
	e := &probeEnv{opt: r.opt, root: r.root}
	path := r.path.snapshot()
	path = append(path, extra...)
	return e.probe(v, s, path, r.depth)
}

// resolveAny is the recursive heart of the engine: basic keywords first, then
// conditionals, then composition, then type dispatch. present reports whether
// the value existed in its container; parent/key identify the immediate
// container so the per-type resolvers can consult its required list.
func (r *resolver) resolveAny(s Schema, v any, present bool, parent Schema, key string, skip bool) (any, bool) {
	if s == nil {
		return v, true
	}
	if r.opt.MaxDepth > 0 && r.depth >= r.opt.MaxDepth {
		r.issue(CodeParseError, map[string]string{"detail": "schema nesting too deep"})
		return v, false
	}
	r.depth++
	defer func() { r.depth-- }()

	if !skip {
		if c, ok := s["const"]; ok {
			if !present {
				return deepCopyValue(c), true
			}
			if !deepEqualValue(v, c) {
				r.issue(CodeInvalidConst, nil)
				return v, false
			}
			return v, true
		}
		if en := listAt(s, "enum"); len(en) > 0 && present {
			if !containsValue(en, v) {
				r.issue(CodeInvalidEnum, map[string]string{"allowed": renderEnum(en)})
				return v, false
			}
		}
	}

	if _, ok := s["if"]; ok {
		return r.resolveConditional(s, v, present, parent, key)
	}
	if len(schemaList(s, "allOf")) > 0 {
		return r.resolveAllOf(s, v, present, parent, key)
	}
	if len(schemaList(s, "anyOf")) > 0 {
		nv, ok := r.resolveAnyOf(s, v)
		if !ok {
			return nv, false
		}
		if !present && nv != nil {
			present = true
		}
		return r.resolveAny(schemaWithout(s, "anyOf"), nv, present, parent, key, true)
	}
	if len(schemaList(s, "oneOf")) > 0 {
		nv, ok := r.resolveOneOf(s, v)
		if !ok {
			return nv, false
		}
		if !present && nv != nil {
			present = true
		}
		return r.resolveAny(schemaWithout(s, "oneOf"), nv, present, parent, key, true)
	}
	if ns, ok := schemaAt(s, "not"); ok {
		if !r.resolveNot(ns, v) {
			return v, false
		}
		s = schemaWithout(s, "not")
	}
	return r.resolveByType(s, v, present, parent, key)
}

func (r *resolver) resolveByType(s Schema, v any, present bool, parent Schema, key string) (any, bool) {
	names := typeNames(s)
	required := parentRequires(parent, key)
	switch len(names) {
	case 0:
		return r.resolveUntyped(s, v, present, required)
	case 1:
		t, ok := ParseType(names[0])
		if !ok {
			r.issue(CodeUnsupportedType, map[string]string{"type": names[0]})
			return v, false
		}
		return r.resolveAs(t, s, v, present, required)
	default:
		return r.resolveMultiType(s, names, v, present, required)
	}
}

// resolveAs dispatches to the per-type resolver for a concrete type.
func (r *resolver) resolveAs(t Type, s Schema, v any, present, required bool) (any, bool) {
	switch t {
	case TypeNull:
		return r.resolveNull(v, present)
	case TypeBoolean:
		return r.resolveBoolean(s, v, present, required)
	case TypeInteger:
		return r.resolveNumber(s, v, present, required, true)
	case TypeNumber:
		return r.resolveNumber(s, v, present, required, false)
	case TypeString:
		return r.resolveString(s, v, present, required)
	case TypeArray:
		return r.resolveArray(s, v, present, required)
	case TypeObject:
		return r.resolveObject(s, v, present, required)
	default:
		r.issue(CodeUnsupportedType, map[string]string{"type": t.String()})
		return v, false
	}
}

// resolveMultiType narrows a type union down to the single concrete type the
// value matches, in fixed priority order, then keyword-filters the schema so
// constraints from sibling types never leak into the narrowed resolve.
func (r *resolver) resolveMultiType(s Schema, names []string, v any, present, required bool) (any, bool) {
	listed := make(map[Type]bool, len(names))
	anyKnown := false
	for _, name := range names {
		if t, ok := ParseType(name); ok {
			listed[t] = true
			anyKnown = true
		}
	}
	if !anyKnown {
		r.issue(CodeUnsupportedType, map[string]string{"type": strings.Join(names, ", ")})
		return v, false
	}
	if !present {
		// Nothing to classify; the first declared type drives defaulting.
		for _, name := range names {
			if t, ok := ParseType(name); ok {
				return r.resolveAs(t, filterKeywords(s, t), v, present, required)
			}
		}
	}
	for _, t := range typePriority {
		if listed[t] && valueFits(t, v) {
			return r.resolveAs(t, filterKeywords(s, t), v, present, required)
		}
	}
	r.issue(CodeInvalidType, map[string]string{"expected": "one of type: " + strings.Join(names, ", ")})
	return v, false
}

// resolveUntyped handles schemas with no declared type: structural keywords
// pick the container resolver, otherwise the value classifies itself.
func (r *resolver) resolveUntyped(s Schema, v any, present, required bool) (any, bool) {
	hasObjectKeywords := false
	for _, k := range []string{"properties", "patternProperties", "required", "dependentSchemas", "propertyNames"} {
		if _, ok := s[k]; ok {
			hasObjectKeywords = true
			break
		}
	}
	hasArrayKeywords := false
	for _, k := range []string{"items", "prefixItems", "contains"} {
		if _, ok := s[k]; ok {
			hasArrayKeywords = true
			break
		}
	}
	switch {
	case hasObjectKeywords:
		return r.resolveObject(s, v, present, required)
	case hasArrayKeywords:
		return r.resolveArray(s, v, present, required)
	}
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
	for _, t := range typePriority {
		if valueFits(t, v) {
			return r.resolveAs(t, s, v, present, required)
		}
	}
	return v, true
}

// parentRequires consults the parent container's required list for key.
func parentRequires(parent Schema, key string) bool {
	if parent == nil || key == "" {
		return false
	}
	for _, name := range requiredNames(parent) {
		if name == key {
			return true
		}
	}
	return false
}
