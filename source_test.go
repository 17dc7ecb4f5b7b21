package goresolve_test

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	goresolve "github.com/reoring/goresolve"
)

func TestSchemaFromJSON(t *testing.T) {
	s, err := goresolve.SchemaFromJSON([]byte(`{"type":"object","properties":{"n":{"type":"integer","default":1}},"required":["n"]}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out, err := goresolve.ResolveValues(context.Background(), s, map[string]any{})
	if err != nil {
		t.Fatalf("resolve decoded schema: %v", err)
	}
	want := map[string]any{"n": float64(1)}
	if diff := cmp.Diff(want, out); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}

	if _, err := goresolve.SchemaFromJSON([]byte(`{broken`)); err == nil {
		t.Fatalf("invalid JSON must fail")
	}
}

func TestValueFromJSON(t *testing.T) {
	v, err := goresolve.ValueFromJSON([]byte(`{"a":[1,"x",null]}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := map[string]any{"a": []any{float64(1), "x", nil}}
	if diff := cmp.Diff(want, v); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
}

func TestSchemaFromYAML(t *testing.T) {
	doc := []byte(`
type: object
properties:
  host:
    type: string
    default: localhost
required:
  - host
`)
	s, err := goresolve.SchemaFromYAML(doc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out, err := goresolve.ResolveValues(context.Background(), s, map[string]any{})
	if err != nil {
		t.Fatalf("resolve decoded schema: %v", err)
	}
	want := map[string]any{"host": "localhost"}
	if diff := cmp.Diff(want, out); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}

	if _, err := goresolve.SchemaFromYAML([]byte(`- just\n- a list`)); err == nil {
		t.Fatalf("non-mapping root must fail")
	}
}

func TestValueFromYAML(t *testing.T) {
	v, err := goresolve.ValueFromYAML([]byte("a: 1\nb:\n  - x\n  - true\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := map[string]any{"a": 1, "b": []any{"x", true}}
	if diff := cmp.Diff(want, v); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
}
