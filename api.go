package goresolve

import (
	"context"
)

// defaultMaxDepth bounds schema nesting; cyclic compositions otherwise never
// terminate.
const defaultMaxDepth = 64

// ResolveOpt bundles resolution options. Variadic call sites take the last
// option as the effective one.
type ResolveOpt struct {
	// GetValue overrides how a property or index is read from a container
	// (custom accessors, e.g. dotted-path lookups). The default reads
	// map[string]any keys and []any indices.
	GetValue func(container any, key string) (any, bool)
	// SkipValidation bypasses redundant const/enum checks when re-entering
	// from a composition branch that already validated them.
	SkipValidation bool
	// CurrentPath seeds the path stack for nested standalone validator calls.
	CurrentPath []string
	// Graphemes counts user-perceived characters for minLength/maxLength.
	// Defaults to the built-in uniseg-backed counter.
	Graphemes GraphemeCounter
	// Refs resolves $ref pointers encountered under additionalProperties.
	// Defaults to a local JSON-Pointer walker over the root schema.
	Refs RefResolver
	// MaxDepth guards against cyclic/malformed schemas. 0 applies the default
	// (64); negative disables the guard.
	MaxDepth int
}

func normalizeOpt(opts []ResolveOpt) ResolveOpt {
	var opt ResolveOpt
	if len(opts) > 0 {
		opt = opts[len(opts)-1]
	}
	if opt.Graphemes == nil {
		opt.Graphemes = DefaultGraphemes()
	}
	if opt.Refs == nil {
		opt.Refs = LocalRefs()
	}
	if opt.MaxDepth == 0 {
		opt.MaxDepth = defaultMaxDepth
	} else if opt.MaxDepth < 0 {
		opt.MaxDepth = 0
	}
	return opt
}

// ResolveValues resolves v against schema s: fills defaults, evaluates
// conditional branches, flattens composition, and validates the result. On
// success it returns the resolved value (which may differ from the input via
// injected defaults); on failure it returns Issues. The caller's value is
// never mutated — the engine works on a copy.
//
// Independent calls share no state and are safe to run concurrently.
func ResolveValues(ctx context.Context, s Schema, v any, opts ...ResolveOpt) (any, error) {
	opt := normalizeOpt(opts)
	r := &resolver{ctx: ctx, opt: opt, root: s}
	if len(opt.CurrentPath) > 0 {
		r.path.segs = append(r.path.segs, opt.CurrentPath...)
	}
	out, _ := r.resolveAny(s, safeCopy(v), v != nil, nil, "", opt.SkipValidation)
	if errs := finalizeIssues(r.errs); len(errs) > 0 {
		return nil, errs
	}
	if _, ok := out.(omittedValue); ok {
		out = nil
	}
	return out, nil
}

// ValidateValue runs the pure probe validator standalone: the same structural
// checks as ResolveValues, but no defaults are ever applied and the value is
// never touched. An empty result means v satisfies s.
func ValidateValue(ctx context.Context, v any, s Schema, opts ...ResolveOpt) Issues {
	opt := normalizeOpt(opts)
	e := &probeEnv{opt: opt, root: s}
	return e.probe(v, s, opt.CurrentPath, 0)
}

// SafeResolve resolves v against s, returning (nil, false) on failure.
func SafeResolve(ctx context.Context, s Schema, v any, opts ...ResolveOpt) (any, bool) {
	out, err := ResolveValues(ctx, s, v, opts...)
	if err != nil {
		return nil, false
	}
	return out, true
}

// IsValid reports whether v probe-satisfies s.
func IsValid(ctx context.Context, v any, s Schema, opts ...ResolveOpt) bool {
	return len(ValidateValue(ctx, v, s, opts...)) == 0
}

// safeCopy shields the caller's containers from in-place mutation on the
// working value.
func safeCopy(v any) any {
	switch v.(type) {
	case map[string]any, Schema, []any:
		return deepCopyValue(v)
	default:
		return v
	}
}

func defaultGetValue(container any, key string) (any, bool) {
	switch c := container.(type) {
	case map[string]any:
		v, ok := c[key]
		return v, ok
	case Schema:
		v, ok := c[key]
		return v, ok
	case []any:
		idx := 0
		for _, ch := range key {
			if ch < '0' || ch > '9' {
				return nil, false
			}
			idx = idx*10 + int(ch-'0')
		}
		if key == "" || idx >= len(c) {
			return nil, false
		}
		return c[idx], true
	default:
		return nil, false
	}
}
