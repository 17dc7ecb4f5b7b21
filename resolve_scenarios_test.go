package goresolve_test

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	goresolve "github.com/reoring/goresolve"
)

func profileSchema() goresolve.Schema {
	return goresolve.Schema{
		"type": "object",
		"properties": map[string]any{
			"username": map[string]any{"type": "string", "minLength": 3, "maxLength": 20},
			"email":    map[string]any{"type": "string", "format": "email"},
			"age":      map[string]any{"type": "integer", "minimum": 18},
		},
		"required": []any{"username", "email", "age"},
	}
}

func TestResolve_ConstraintErrorsInDeclarationOrder(t *testing.T) {
	ctx := context.Background()
	v := map[string]any{"username": "j", "email": "not-an-email", "age": 16}
	_, err := goresolve.ResolveValues(ctx, profileSchema(), v)
	iss, ok := goresolve.AsIssues(err)
	if !ok {
		t.Fatalf("expected Issues, got: %v", err)
	}
	if len(iss) != 3 {
		t.Fatalf("want 3 issues, got %d: %v", len(iss), iss)
	}
	wantCodes := []string{goresolve.CodeTooShort, goresolve.CodeInvalidFormat, goresolve.CodeTooSmall}
	wantPaths := []string{"/username", "/email", "/age"}
	for i, it := range iss {
		if it.Code != wantCodes[i] {
			t.Errorf("issue %d: want code %s, got %s", i, wantCodes[i], it.Code)
		}
		if it.PathString() != wantPaths[i] {
			t.Errorf("issue %d: want path %s, got %s", i, wantPaths[i], it.PathString())
		}
	}
}

func TestResolve_ConditionalInjectsBranchDefault(t *testing.T) {
	ctx := context.Background()
	s := goresolve.Schema{
		"type": "object",
		"properties": map[string]any{
			"userType": map[string]any{"type": "string"},
		},
		"if": map[string]any{
			"properties": map[string]any{
				"userType": map[string]any{"const": "business"},
			},
		},
		"then": map[string]any{
			"properties": map[string]any{
				"taxId": map[string]any{"type": "string", "default": "REQUIRED"},
			},
		},
	}
	out, err := goresolve.ResolveValues(ctx, s, map[string]any{"userType": "business"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := map[string]any{"userType": "business", "taxId": "REQUIRED"}
	if diff := cmp.Diff(want, out); diff != "" {
		t.Fatalf("resolved value mismatch (-want +got):\n%s", diff)
	}
}

func TestResolve_ArrayUniquenessSingleError(t *testing.T) {
	ctx := context.Background()
	s := goresolve.Schema{
		"type":        "array",
		"items":       map[string]any{"type": "string"},
		"minItems":    1,
		"maxItems":    3,
		"uniqueItems": true,
	}
	_, err := goresolve.ResolveValues(ctx, s, []any{"a", "a"})
	iss, ok := goresolve.AsIssues(err)
	if !ok {
		t.Fatalf("expected Issues, got: %v", err)
	}
	if len(iss) != 1 {
		t.Fatalf("want exactly 1 issue, got %d: %v", len(iss), iss)
	}
	if iss[0].Code != goresolve.CodeUniqueness {
		t.Fatalf("want %s, got %s", goresolve.CodeUniqueness, iss[0].Code)
	}
	if iss[0].Message != "items must be unique" {
		t.Fatalf("unexpected message: %q", iss[0].Message)
	}
}

func TestResolve_Deterministic(t *testing.T) {
	ctx := context.Background()
	v := map[string]any{"username": "j", "email": "not-an-email", "age": 16}
	_, err := goresolve.ResolveValues(ctx, profileSchema(), v)
	first, _ := goresolve.AsIssues(err)
	for i := 0; i < 20; i++ {
		_, err := goresolve.ResolveValues(ctx, profileSchema(), v)
		iss, _ := goresolve.AsIssues(err)
		if diff := cmp.Diff(first, iss); diff != "" {
			t.Fatalf("run %d produced a different issue sequence (-first +got):\n%s", i, diff)
		}
	}
}

func TestResolve_Idempotent(t *testing.T) {
	ctx := context.Background()
	s := goresolve.Schema{
		"type": "object",
		"properties": map[string]any{
			"name":    map[string]any{"type": "string", "default": "anon"},
			"retries": map[string]any{"type": "integer", "default": 3},
		},
		"required": []any{"name", "retries"},
	}
	once, err := goresolve.ResolveValues(ctx, s, map[string]any{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	twice, err := goresolve.ResolveValues(ctx, s, once)
	if err != nil {
		t.Fatalf("unexpected error on second pass: %v", err)
	}
	if diff := cmp.Diff(once, twice); diff != "" {
		t.Fatalf("resolution is not idempotent (-once +twice):\n%s", diff)
	}
}

func TestResolve_InputNotMutated(t *testing.T) {
	ctx := context.Background()
	s := goresolve.Schema{
		"type": "object",
		"properties": map[string]any{
			"name": map[string]any{"type": "string", "default": "anon"},
		},
		"required": []any{"name"},
	}
	in := map[string]any{}
	out, err := goresolve.ResolveValues(ctx, s, in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, leaked := in["name"]; leaked {
		t.Fatalf("caller's value was mutated: %v", in)
	}
	if got := out.(map[string]any)["name"]; got != "anon" {
		t.Fatalf("want default injected into output, got %v", got)
	}
}
