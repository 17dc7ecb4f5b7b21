package goresolve

import (
	"errors"
	"fmt"
	"strings"
)

// Issue codes (exported consts for IDE completion and type safety by convention)
const (
	CodeInvalidType     = "invalid_type"
	CodeRequired        = "required"
	CodeUnknownKey      = "unknown_key"
	CodeTooSmall        = "too_small"
	CodeTooBig          = "too_big"
	CodeTooShort        = "too_short"
	CodeTooLong         = "too_long"
	CodePattern         = "pattern"
	CodeInvalidEnum     = "invalid_enum"
	CodeInvalidConst    = "invalid_const"
	CodeInvalidFormat   = "invalid_format"
	CodeNotMultipleOf   = "not_multiple_of"
	CodeUniqueness      = "uniqueness"
	CodeContains        = "contains"
	CodePropertyNames   = "property_names"
	CodeAdditionalItems = "additional_items"
	// Composition passes
	CodeAnyOf = "any_of"
	CodeOneOf = "one_of"
	CodeNot   = "not"
	// Schema-level failures
	CodeUnsupportedType = "unsupported_type"
	CodeMergeConflict   = "merge_conflict"
	CodeParseError      = "parse_error"
)

// Fixed path markers used for errors attributed to a composition or keyword
// site rather than a concrete property/index.
const (
	MarkerAllOf         = "allOf"
	MarkerOneOf         = "oneOf"
	MarkerNot           = "not"
	MarkerItems         = "items"
	MarkerPropertyNames = "propertyNames"
	MarkerContains      = "contains"
)

// Issue represents a single resolution/validation entry.
type Issue struct {
	// Path locates the failure in the schema/value tree. Elements are object
	// property names, stringified array indices, or one of the fixed markers
	// above. An empty path means the root value.
	Path    []string
	Code    string // One of the codes listed above.
	Message string
	Hint    string // Optional: remediation hints, format names, etc.
	Cause   error  // Optional: underlying error.
	// Params carries structured parameters (e.g., {"min":"1", "max":"10"})
	// for i18n and observability.
	Params map[string]any
}

// PathString renders the issue path as a JSON-Pointer-like string ("/" for root).
func (it Issue) PathString() string {
	if len(it.Path) == 0 {
		return "/"
	}
	return "/" + strings.Join(it.Path, "/")
}

// Issues is a collection of resolution errors that implements error.
type Issues []Issue

// Error summarizes the first few issues.
func (iss Issues) Error() string {
	if len(iss) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	n := len(iss)
	lim := n
	if lim > maxShown {
		lim = maxShown
	}
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		it := iss[i]
		// e.g. invalid_type at /items/2
		fmt.Fprintf(b, "%s at %s", it.Code, it.PathString())
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// AppendIssues appends issues to the destination, initializing the slice when
// needed.
func AppendIssues(dst Issues, more ...Issue) Issues {
	if dst == nil {
		dst = Issues{}
	}
	dst = append(dst, more...)
	return dst
}

// AsIssues extracts Issues from an error using errors.As internally.
func AsIssues(err error) (Issues, bool) {
	if err == nil {
		return nil, false
	}
	var iss Issues
	if errors.As(err, &iss) {
		return iss, true
	}
	return nil, false
}

// finalizeIssues applies the top-level aggregation rules: deduplicate by
// message text (first occurrence wins, order preserved), then drop disposable
// entries (a generic oneOf error, or a bare "missing required" produced by a
// leaf resolver consulting its parent) when a more specific error coexists.
func finalizeIssues(iss Issues) Issues {
	if len(iss) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(iss))
	deduped := make(Issues, 0, len(iss))
	for _, it := range iss {
		if seen[it.Message] {
			continue
		}
		seen[it.Message] = true
		deduped = append(deduped, it)
	}

	disposable := func(it Issue) bool {
		if it.Code == CodeOneOf {
			return true
		}
		if it.Code == CodeRequired {
			// Bare form: no property parameter; the object-level report that
			// names the property is the one worth keeping.
			_, named := it.Params["property"]
			return !named
		}
		return false
	}
	insideOneOf := func(it Issue) bool {
		for _, seg := range it.Path {
			if seg == MarkerOneOf {
				return true
			}
		}
		return false
	}

	// An entry is worth keeping when it is deeper-pathed and outside any oneOf
	// branch, or simply not disposable at all.
	keepworthy := func(it Issue) bool {
		return (len(it.Path) > 1 && !insideOneOf(it)) || !disposable(it)
	}
	hasDisposable := false
	hasKeepworthy := false
	for _, it := range deduped {
		if disposable(it) {
			hasDisposable = true
		}
		if keepworthy(it) {
			hasKeepworthy = true
		}
	}
	if !hasDisposable || !hasKeepworthy {
		return deduped
	}
	out := make(Issues, 0, len(deduped))
	for _, it := range deduped {
		if !keepworthy(it) {
			continue
		}
		out = append(out, it)
	}
	if len(out) == 0 {
		return deduped
	}
	return out
}
