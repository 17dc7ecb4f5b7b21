package goresolve_test

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	goresolve "github.com/reoring/goresolve"
)

func TestValidateValue_NeverInjectsDefaults(t *testing.T) {
	ctx := context.Background()
	s := goresolve.Schema{
		"type": "object",
		"properties": map[string]any{
			"name": map[string]any{"type": "string", "default": "anon"},
		},
	}
	v := map[string]any{}
	iss := goresolve.ValidateValue(ctx, v, s)
	if len(iss) != 0 {
		t.Fatalf("optional missing property is valid: %v", iss)
	}
	if diff := cmp.Diff(map[string]any{}, v); diff != "" {
		t.Fatalf("probing mutated the value:\n%s", diff)
	}
}

func TestValidateValue_ReportsRequired(t *testing.T) {
	ctx := context.Background()
	s := goresolve.Schema{
		"type": "object",
		"properties": map[string]any{
			"name": map[string]any{"type": "string"},
		},
		"required": []any{"name"},
	}
	iss := goresolve.ValidateValue(ctx, map[string]any{}, s)
	if len(iss) != 1 || iss[0].Code != goresolve.CodeRequired {
		t.Fatalf("want required, got %v", iss)
	}
	if iss[0].Params["property"] != "name" {
		t.Fatalf("want property param, got %v", iss[0].Params)
	}
}

func TestValidateValue_CurrentPathSeedsReports(t *testing.T) {
	ctx := context.Background()
	s := goresolve.Schema{
		"type": "object",
		"properties": map[string]any{
			"name": map[string]any{"type": "string", "minLength": 3},
		},
	}
	iss := goresolve.ValidateValue(ctx, map[string]any{"name": "a"}, s,
		goresolve.ResolveOpt{CurrentPath: []string{"cfg", "auth"}})
	if len(iss) != 1 {
		t.Fatalf("want one issue, got %v", iss)
	}
	if iss[0].PathString() != "/cfg/auth/name" {
		t.Fatalf("want seeded path, got %s", iss[0].PathString())
	}
}

func TestResolve_CurrentPathSeedsReports(t *testing.T) {
	ctx := context.Background()
	s := goresolve.Schema{
		"type": "object",
		"properties": map[string]any{
			"name": map[string]any{"type": "string", "minLength": 3},
		},
	}
	_, err := goresolve.ResolveValues(ctx, s, map[string]any{"name": "a"},
		goresolve.ResolveOpt{CurrentPath: []string{"cfg"}})
	iss, _ := goresolve.AsIssues(err)
	if len(iss) != 1 || iss[0].PathString() != "/cfg/name" {
		t.Fatalf("want seeded path /cfg/name, got %v", err)
	}
}

func TestIsValid(t *testing.T) {
	ctx := context.Background()
	s := goresolve.Schema{"type": "string", "minLength": 2}
	if !goresolve.IsValid(ctx, "ok", s) {
		t.Fatalf("conforming value reported invalid")
	}
	if goresolve.IsValid(ctx, "x", s) {
		t.Fatalf("violating value reported valid")
	}
}

func TestSafeResolve(t *testing.T) {
	ctx := context.Background()
	s := goresolve.Schema{"type": "string", "default": "d"}
	out, ok := goresolve.SafeResolve(ctx, s, nil)
	if !ok || out != "d" {
		t.Fatalf("want (d, true), got (%v, %v)", out, ok)
	}
	out, ok = goresolve.SafeResolve(ctx, s, 5)
	if ok || out != nil {
		t.Fatalf("want (nil, false), got (%v, %v)", out, ok)
	}
}

func TestResolve_MaxDepthGuardsCyclicSchemas(t *testing.T) {
	ctx := context.Background()
	node := map[string]any{"type": "object"}
	node["properties"] = map[string]any{"child": node}
	_, err := goresolve.ResolveValues(ctx, goresolve.Schema(node), map[string]any{})
	iss, ok := goresolve.AsIssues(err)
	if !ok {
		t.Fatalf("cyclic schema must fail, got: %v", err)
	}
	if iss[0].Code != goresolve.CodeParseError {
		t.Fatalf("want parse_error, got %v", iss[0])
	}
}

func TestValidateValue_CompositionProbes(t *testing.T) {
	ctx := context.Background()
	s := goresolve.Schema{
		"oneOf": []any{
			map[string]any{"type": "string"},
			map[string]any{"type": "integer"},
		},
	}
	if iss := goresolve.ValidateValue(ctx, "x", s); len(iss) != 0 {
		t.Fatalf("single branch match: %v", iss)
	}
	iss := goresolve.ValidateValue(ctx, true, s)
	if len(iss) == 0 || iss[0].Code != goresolve.CodeOneOf {
		t.Fatalf("no branch match: %v", iss)
	}
}
