package goresolve

import (
	"sort"
)

// Schema is one node of the JSON-Schema-like grammar, kept as decoded data.
// Nodes are read-only for the duration of a resolution call; the engine copies
// on merge and never mutates a caller's schema.
type Schema map[string]any

// typeNames returns the declared type names of s. A single string and a list
// of strings are both accepted; an empty result means the schema is typeless.
func typeNames(s Schema) []string {
	switch t := s["type"].(type) {
	case string:
		if t == "" {
			return nil
		}
		return []string{t}
	case []any:
		names := make([]string, 0, len(t))
		for _, raw := range t {
			if name, ok := raw.(string); ok {
				names = append(names, name)
			}
		}
		return names
	case []string:
		return t
	default:
		return nil
	}
}

// schemaAt reads a sub-schema stored under key. ok is false when the key is
// absent or does not hold a schema object.
func schemaAt(s Schema, key string) (Schema, bool) {
	if s == nil {
		return nil, false
	}
	switch m := s[key].(type) {
	case map[string]any:
		return Schema(m), true
	case Schema:
		return m, true
	default:
		return nil, false
	}
}

// schemaList reads a list of sub-schemas stored under key (allOf and friends).
func schemaList(s Schema, key string) []Schema {
	raw, ok := s[key].([]any)
	if !ok {
		return nil
	}
	out := make([]Schema, 0, len(raw))
	for _, el := range raw {
		switch m := el.(type) {
		case map[string]any:
			out = append(out, Schema(m))
		case Schema:
			out = append(out, m)
		}
	}
	return out
}

func stringAt(s Schema, key string) (string, bool) {
	v, ok := s[key].(string)
	return v, ok
}

func boolAt(s Schema, key string) (bool, bool) {
	v, ok := s[key].(bool)
	return v, ok
}

func numberAt(s Schema, key string) (float64, bool) {
	v, ok := s[key]
	if !ok {
		return 0, false
	}
	return numberOf(v)
}

func listAt(s Schema, key string) []any {
	v, _ := s[key].([]any)
	return v
}

// rawRequired returns the required list as declared, deduplicated but not
// filtered. The not-required rule consults this form, since a bare
// {required: [...]} inside a negation carries no properties to filter against.
func rawRequired(s Schema) []string {
	raw, ok := s["required"].([]any)
	if !ok {
		if ss, ok2 := s["required"].([]string); ok2 {
			return dedupStrings(ss)
		}
		return nil
	}
	names := make([]string, 0, len(raw))
	for _, el := range raw {
		if name, ok := el.(string); ok {
			names = append(names, name)
		}
	}
	return dedupStrings(names)
}

// requiredNames returns the required list deduplicated and, when a properties
// map is declared, filtered down to the properties it actually declares.
// Stale names pointing at nothing are dropped before anyone consults the list.
func requiredNames(s Schema) []string {
	names := rawRequired(s)
	if len(names) == 0 {
		return nil
	}
	props, ok := schemaAt(s, "properties")
	if !ok {
		return names
	}
	out := names[:0]
	for _, name := range names {
		if _, declared := props[name]; declared {
			out = append(out, name)
		}
	}
	return out
}

func dedupStrings(in []string) []string {
	if len(in) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}

// propertySchema reads the sub-schema for one declared property.
func propertySchema(s Schema, name string) (Schema, bool) {
	props, ok := schemaAt(s, "properties")
	if !ok {
		return nil, false
	}
	return schemaAt(props, name)
}

// propertyOrder yields a deterministic walk order over declared properties:
// required names first (in declaration order), then the remaining property
// keys sorted. Go maps do not preserve JSON key order, so the required list is
// the only declaration-order signal available.
func propertyOrder(s Schema) []string {
	props, ok := schemaAt(s, "properties")
	if !ok {
		return nil
	}
	req := requiredNames(s)
	inReq := make(map[string]bool, len(req))
	order := make([]string, 0, len(props))
	for _, name := range req {
		inReq[name] = true
		order = append(order, name)
	}
	rest := make([]string, 0, len(props))
	for name := range props {
		if !inReq[name] {
			rest = append(rest, name)
		}
	}
	sort.Strings(rest)
	return append(order, rest...)
}

// schemaWithout returns a shallow copy of s with the given keys removed.
func schemaWithout(s Schema, keys ...string) Schema {
	out := make(Schema, len(s))
	for k, v := range s {
		out[k] = v
	}
	for _, k := range keys {
		delete(out, k)
	}
	return out
}

// deepCopySchema clones a schema node including nested maps and lists.
func deepCopySchema(s Schema) Schema {
	if s == nil {
		return nil
	}
	out := make(Schema, len(s))
	for k, v := range s {
		out[k] = deepCopyValue(v)
	}
	return out
}

// deepCopyValue clones decoded data (maps, slices, scalars).
func deepCopyValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, el := range t {
			out[k] = deepCopyValue(el)
		}
		return out
	case Schema:
		return map[string]any(deepCopySchema(t))
	case []any:
		out := make([]any, len(t))
		for i, el := range t {
			out[i] = deepCopyValue(el)
		}
		return out
	default:
		return v
	}
}
