package goresolve

import (
	"encoding/json"
	"math"
	"strconv"
)

// Type is the closed set of concrete schema types. Multi-type schemas narrow
// to exactly one Type before dispatch, so every switch over Type is total.
type Type int8

const (
	TypeInvalid Type = iota
	TypeNull
	TypeArray
	TypeObject
	TypeBoolean
	TypeString
	TypeNumber
	TypeInteger
)

// typePriority is the fixed classification order for multi-type schemas:
// a value is matched against the declared types in this order, so a number is
// only classified as integer when "integer" is explicitly listed.
var typePriority = [...]Type{TypeNull, TypeArray, TypeObject, TypeBoolean, TypeString, TypeNumber, TypeInteger}

func (t Type) String() string {
	switch t {
	case TypeNull:
		return "null"
	case TypeArray:
		return "array"
	case TypeObject:
		return "object"
	case TypeBoolean:
		return "boolean"
	case TypeString:
		return "string"
	case TypeNumber:
		return "number"
	case TypeInteger:
		return "integer"
	default:
		return "invalid"
	}
}

// ParseType maps a schema type name to its Type. ok is false for names the
// engine does not recognize.
func ParseType(name string) (Type, bool) {
	switch name {
	case "null":
		return TypeNull, true
	case "array":
		return TypeArray, true
	case "object":
		return TypeObject, true
	case "boolean":
		return TypeBoolean, true
	case "string":
		return TypeString, true
	case "number":
		return TypeNumber, true
	case "integer":
		return TypeInteger, true
	default:
		return TypeInvalid, false
	}
}

// article returns the "must be ..." phrase for a concrete type.
func (t Type) article() string {
	switch t {
	case TypeNull:
		return "null"
	case TypeArray:
		return "an array"
	case TypeObject:
		return "an object"
	case TypeBoolean:
		return "a boolean"
	case TypeString:
		return "a string"
	case TypeInteger:
		return "an integer"
	default:
		return "a number"
	}
}

// valueFits reports whether v structurally matches t. TypeNumber accepts any
// numeric value; TypeInteger additionally requires an integral one.
func valueFits(t Type, v any) bool {
	switch t {
	case TypeNull:
		return v == nil
	case TypeArray:
		_, ok := v.([]any)
		return ok
	case TypeObject:
		_, ok := asObject(v)
		return ok
	case TypeBoolean:
		_, ok := v.(bool)
		return ok
	case TypeString:
		_, ok := v.(string)
		return ok
	case TypeNumber:
		_, ok := numberOf(v)
		return ok
	case TypeInteger:
		f, ok := numberOf(v)
		return ok && isIntegral(f)
	default:
		return false
	}
}

// asObject normalizes the two map representations callers hand us.
func asObject(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case Schema:
		return map[string]any(m), true
	default:
		return nil, false
	}
}

// numberOf extracts a numeric value from the decoded representations the
// engine accepts (float64 from JSON, the int family from YAML and Go
// literals, json.Number from number-preserving decoders).
func numberOf(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

func isIntegral(f float64) bool {
	return !math.IsInf(f, 0) && !math.IsNaN(f) && math.Trunc(f) == f
}

// numString renders a numeric parameter the way it appears in JSON: integral
// values without a trailing fraction.
func numString(f float64) string {
	if isIntegral(f) && math.Abs(f) < 1e15 {
		return strconv.FormatInt(int64(f), 10)
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// baseKeywords survive type narrowing regardless of the concrete type.
var baseKeywords = []string{
	"type", "title", "description", "default", "const", "enum",
	"if", "then", "else", "allOf", "anyOf", "oneOf", "not", "$ref",
}

// typeKeywords lists the constraint keywords meaningful per concrete type.
// Narrowing a multi-type schema keeps only base keywords plus this set, so a
// value resolved as number never sees minLength and friends.
var typeKeywords = map[Type][]string{
	TypeString:  {"minLength", "maxLength", "pattern", "format"},
	TypeNumber:  {"minimum", "maximum", "exclusiveMinimum", "exclusiveMaximum", "multipleOf"},
	TypeInteger: {"minimum", "maximum", "exclusiveMinimum", "exclusiveMaximum", "multipleOf"},
	TypeArray:   {"items", "prefixItems", "additionalItems", "minItems", "maxItems", "uniqueItems", "contains"},
	TypeObject:  {"properties", "patternProperties", "additionalProperties", "required", "propertyNames", "dependentSchemas"},
}

// filterKeywords returns a copy of s narrowed to the given concrete type.
func filterKeywords(s Schema, t Type) Schema {
	keep := make(map[string]bool, len(baseKeywords)+8)
	for _, k := range baseKeywords {
		keep[k] = true
	}
	for _, k := range typeKeywords[t] {
		keep[k] = true
	}
	out := make(Schema, len(s))
	for k, v := range s {
		if keep[k] {
			out[k] = v
		}
	}
	out["type"] = t.String()
	return out
}
