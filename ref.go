package goresolve

import "strings"

// RefResolver expands a $ref pointer against the root schema. The engine
// consults it when additionalProperties carries a $ref pointing at the schema
// root or another node; fetching remote schemas is out of scope, so the
// contract is local: resolve(pointer, rootSchema) -> schema | not found.
type RefResolver interface {
	Resolve(pointer string, root Schema) (Schema, bool)
}

// localRefs walks local JSON Pointers ("#", "#/$defs/item",
// "#/properties/x") over the root document.
type localRefs struct{}

// LocalRefs returns the built-in local JSON-Pointer resolver.
func LocalRefs() RefResolver { return localRefs{} }

func (localRefs) Resolve(pointer string, root Schema) (Schema, bool) {
	if root == nil {
		return nil, false
	}
	if pointer == "" || pointer == "#" || pointer == "#/" {
		return root, true
	}
	if !strings.HasPrefix(pointer, "#/") {
		return nil, false
	}
	cur := any(map[string]any(root))
	for _, seg := range strings.Split(strings.TrimPrefix(pointer, "#/"), "/") {
		seg = strings.ReplaceAll(strings.ReplaceAll(seg, "~1", "/"), "~0", "~")
		m, ok := asObject(cur)
		if !ok {
			return nil, false
		}
		next, ok := m[seg]
		if !ok {
			return nil, false
		}
		cur = next
	}
	m, ok := asObject(cur)
	if !ok {
		return nil, false
	}
	return Schema(m), true
}
