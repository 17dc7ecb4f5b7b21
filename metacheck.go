package goresolve

import (
	"bytes"

	json "github.com/goccy/go-json"
	"github.com/santhosh-tekuri/jsonschema/v6"
)

// CheckSchema meta-validates a schema document by compiling it against the
// JSON Schema draft meta-schema. Resolution never requires this step, but
// callers accepting schema documents from outside can reject malformed ones
// up front instead of getting surprising resolution output.
func CheckSchema(s Schema) error {
	raw, err := json.Marshal(map[string]any(s))
	if err != nil {
		return Issues{mkIssue(nil, CodeParseError, map[string]string{"detail": err.Error()})}
	}
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return Issues{mkIssue(nil, CodeParseError, map[string]string{"detail": err.Error()})}
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("schema.json", doc); err != nil {
		return Issues{mkIssue(nil, CodeParseError, map[string]string{"detail": err.Error()})}
	}
	if _, err := compiler.Compile("schema.json"); err != nil {
		return Issues{mkIssue(nil, CodeParseError, map[string]string{"detail": err.Error()})}
	}
	return nil
}
