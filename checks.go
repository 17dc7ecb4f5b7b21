package goresolve

import (
	"math"
	"regexp"
	"strings"
)

// issueSpec is a location-independent constraint violation. The resolver and
// the probe validator share these predicates and attach their own paths.
type issueSpec struct {
	code string
	data map[string]string
}

// checkNumberConstraints accumulates every violated numeric keyword; callers
// report them all on the same node instead of stopping at the first.
func checkNumberConstraints(s Schema, f float64, integer bool) []issueSpec {
	var out []issueSpec
	if integer && !isIntegral(f) {
		out = append(out, issueSpec{CodeInvalidType, map[string]string{"expected": "an integer"}})
	}
	exclMinBool, _ := boolAt(s, "exclusiveMinimum")
	exclMaxBool, _ := boolAt(s, "exclusiveMaximum")
	if min, ok := numberAt(s, "minimum"); ok {
		if exclMinBool {
			if f <= min {
				out = append(out, issueSpec{CodeTooSmall, map[string]string{"min": numString(min), "exclusive": "true"}})
			}
		} else if f < min {
			out = append(out, issueSpec{CodeTooSmall, map[string]string{"min": numString(min)}})
		}
	}
	if em, ok := numberAt(s, "exclusiveMinimum"); ok && !exclMinBool {
		if _, isBool := s["exclusiveMinimum"].(bool); !isBool && f <= em {
			out = append(out, issueSpec{CodeTooSmall, map[string]string{"min": numString(em), "exclusive": "true"}})
		}
	}
	if max, ok := numberAt(s, "maximum"); ok {
		if exclMaxBool {
			if f >= max {
				out = append(out, issueSpec{CodeTooBig, map[string]string{"max": numString(max), "exclusive": "true"}})
			}
		} else if f > max {
			out = append(out, issueSpec{CodeTooBig, map[string]string{"max": numString(max)}})
		}
	}
	if em, ok := numberAt(s, "exclusiveMaximum"); ok && !exclMaxBool {
		if _, isBool := s["exclusiveMaximum"].(bool); !isBool && f >= em {
			out = append(out, issueSpec{CodeTooBig, map[string]string{"max": numString(em), "exclusive": "true"}})
		}
	}
	if m, ok := numberAt(s, "multipleOf"); ok && m != 0 {
		if !isMultipleOf(f, m) {
			out = append(out, issueSpec{CodeNotMultipleOf, map[string]string{"factor": numString(m)}})
		}
	}
	return out
}

func isMultipleOf(f, m float64) bool {
	q := f / m
	if math.IsInf(q, 0) || math.IsNaN(q) {
		return false
	}
	return math.Abs(q-math.Round(q)) < 1e-9
}

// checkStringConstraints validates grapheme length, pattern and format.
// Length counts user-perceived characters, never code units.
func checkStringConstraints(s Schema, str string, g GraphemeCounter) []issueSpec {
	var out []issueSpec
	length := -1
	count := func() int {
		if length < 0 {
			length = g.Count(str)
		}
		return length
	}
	if min, ok := numberAt(s, "minLength"); ok && count() < int(min) {
		out = append(out, issueSpec{CodeTooShort, map[string]string{"min": numString(min)}})
	}
	if max, ok := numberAt(s, "maxLength"); ok && count() > int(max) {
		out = append(out, issueSpec{CodeTooLong, map[string]string{"max": numString(max)}})
	}
	if pat, ok := stringAt(s, "pattern"); ok {
		// RE2 patterns evaluate over UTF-8 text natively (Unicode mode).
		if re, err := regexp.Compile(pat); err == nil && !re.MatchString(str) {
			out = append(out, issueSpec{CodePattern, map[string]string{"pattern": pat}})
		}
	}
	if format, ok := stringAt(s, "format"); ok {
		if ok2, known := checkFormat(format, str); known && !ok2 {
			out = append(out, issueSpec{CodeInvalidFormat, map[string]string{"format": format}})
		}
	}
	return out
}

// checkArrayBounds validates length and uniqueness. Uniqueness compares by
// structural equality and reports a single violation for the whole array.
func checkArrayBounds(s Schema, arr []any) []issueSpec {
	var out []issueSpec
	if min, ok := numberAt(s, "minItems"); ok && len(arr) < int(min) {
		out = append(out, issueSpec{CodeTooShort, map[string]string{"min": numString(min), "kind": "items"}})
	}
	if max, ok := numberAt(s, "maxItems"); ok && len(arr) > int(max) {
		out = append(out, issueSpec{CodeTooLong, map[string]string{"max": numString(max), "kind": "items"}})
	}
	if unique, _ := boolAt(s, "uniqueItems"); unique {
	outer:
		for i := 0; i < len(arr); i++ {
			for j := i + 1; j < len(arr); j++ {
				if deepEqualValue(arr[i], arr[j]) {
					out = append(out, issueSpec{CodeUniqueness, nil})
					break outer
				}
			}
		}
	}
	return out
}

// renderEnum joins enum members for the invalid_enum message.
func renderEnum(list []any) string {
	parts := make([]string, 0, len(list))
	for _, el := range list {
		switch t := el.(type) {
		case string:
			parts = append(parts, t)
		case bool:
			if t {
				parts = append(parts, "true")
			} else {
				parts = append(parts, "false")
			}
		case nil:
			parts = append(parts, "null")
		default:
			if f, ok := numberOf(el); ok {
				parts = append(parts, numString(f))
			}
		}
	}
	return strings.Join(parts, ", ")
}
