package goresolve_test

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	goresolve "github.com/reoring/goresolve"
)

func modeSchema() goresolve.Schema {
	return goresolve.Schema{
		"type": "object",
		"properties": map[string]any{
			"mode": map[string]any{"type": "string"},
		},
		"if": map[string]any{
			"properties": map[string]any{
				"mode": map[string]any{"const": "verbose"},
			},
		},
		"then": map[string]any{
			"properties": map[string]any{
				"level": map[string]any{"type": "integer", "default": 3},
			},
		},
		"else": map[string]any{
			"properties": map[string]any{
				"level": map[string]any{"type": "integer", "default": 0},
			},
		},
	}
}

func TestResolveConditional_ThenBranch(t *testing.T) {
	ctx := context.Background()
	out, err := goresolve.ResolveValues(ctx, modeSchema(), map[string]any{"mode": "verbose"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := map[string]any{"mode": "verbose", "level": 3}
	if diff := cmp.Diff(want, out); diff != "" {
		t.Fatalf("then branch (-want +got):\n%s", diff)
	}
}

func TestResolveConditional_ElseBranch(t *testing.T) {
	ctx := context.Background()
	out, err := goresolve.ResolveValues(ctx, modeSchema(), map[string]any{"mode": "quiet"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := map[string]any{"mode": "quiet", "level": 0}
	if diff := cmp.Diff(want, out); diff != "" {
		t.Fatalf("else branch (-want +got):\n%s", diff)
	}
}

func TestResolveConditional_MissingConditionPropertyIsNotMet(t *testing.T) {
	ctx := context.Background()
	out, err := goresolve.ResolveValues(ctx, modeSchema(), map[string]any{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Absent mode short-circuits to "not met" -> else.
	if got := out.(map[string]any)["level"]; got != 0 {
		t.Fatalf("want else default 0, got %v", got)
	}
}

func TestResolveConditional_ConditionNeverInjects(t *testing.T) {
	ctx := context.Background()
	s := goresolve.Schema{
		"type": "object",
		"properties": map[string]any{
			"flag": map[string]any{"type": "boolean"},
		},
		"if": map[string]any{
			"properties": map[string]any{
				"probe": map[string]any{"type": "string", "default": "never"},
			},
		},
		"then": map[string]any{
			"properties": map[string]any{
				"extra": map[string]any{"type": "string", "default": "E"},
			},
		},
	}
	out, err := goresolve.ResolveValues(ctx, s, map[string]any{"flag": true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	m := out.(map[string]any)
	if _, leaked := m["probe"]; leaked {
		t.Fatalf("condition sub-schema must never inject: %v", m)
	}
	if _, fired := m["extra"]; fired {
		t.Fatalf("unmet condition must not apply then: %v", m)
	}
}

func TestResolveConditional_RequiredInCondition(t *testing.T) {
	ctx := context.Background()
	s := goresolve.Schema{
		"type": "object",
		"properties": map[string]any{
			"token": map[string]any{"type": "string"},
		},
		"if": map[string]any{"required": []any{"token"}},
		"then": map[string]any{
			"properties": map[string]any{
				"auth": map[string]any{"type": "string", "default": "bearer"},
			},
		},
	}
	out, err := goresolve.ResolveValues(ctx, s, map[string]any{"token": "t"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := out.(map[string]any)["auth"]; got != "bearer" {
		t.Fatalf("presence condition met, want auth injected, got %v", got)
	}

	out, err = goresolve.ResolveValues(ctx, s, map[string]any{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, fired := out.(map[string]any)["auth"]; fired {
		t.Fatalf("presence condition unmet, then must not fire: %v", out)
	}
}

func TestResolveConditional_NumericRangeCondition(t *testing.T) {
	ctx := context.Background()
	s := goresolve.Schema{
		"type": "object",
		"properties": map[string]any{
			"age": map[string]any{"type": "integer"},
		},
		"if": map[string]any{
			"properties": map[string]any{
				"age": map[string]any{"minimum": 18},
			},
		},
		"then": map[string]any{
			"properties": map[string]any{
				"tier": map[string]any{"type": "string", "default": "adult"},
			},
		},
		"else": map[string]any{
			"properties": map[string]any{
				"tier": map[string]any{"type": "string", "default": "minor"},
			},
		},
	}
	out, err := goresolve.ResolveValues(ctx, s, map[string]any{"age": 21})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := out.(map[string]any)["tier"]; got != "adult" {
		t.Fatalf("want adult, got %v", got)
	}
	out, err = goresolve.ResolveValues(ctx, s, map[string]any{"age": 12})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := out.(map[string]any)["tier"]; got != "minor" {
		t.Fatalf("want minor, got %v", got)
	}
}

func TestResolveConditional_BranchEnumEnforced(t *testing.T) {
	ctx := context.Background()
	s := goresolve.Schema{
		"type": "string",
		"if":   map[string]any{"pattern": "^a"},
		"then": map[string]any{"enum": []any{"ab", "ac"}},
	}
	if _, err := goresolve.ResolveValues(ctx, s, "ab"); err != nil {
		t.Fatalf("enum member from the then branch: %v", err)
	}
	_, err := goresolve.ResolveValues(ctx, s, "az")
	iss, _ := goresolve.AsIssues(err)
	if len(iss) != 1 || iss[0].Code != goresolve.CodeInvalidEnum {
		t.Fatalf("then-branch enum must be enforced, got %v", err)
	}
	// Condition unmet, no else: the branch enum does not apply.
	if _, err := goresolve.ResolveValues(ctx, s, "zz"); err != nil {
		t.Fatalf("unmet condition leaves the base schema: %v", err)
	}
}

func TestResolveConditional_BranchConstEnforced(t *testing.T) {
	ctx := context.Background()
	s := goresolve.Schema{
		"type": "string",
		"if":   map[string]any{"const": "x"},
		"else": map[string]any{"const": "n"},
	}
	if _, err := goresolve.ResolveValues(ctx, s, "n"); err != nil {
		t.Fatalf("else const satisfied: %v", err)
	}
	_, err := goresolve.ResolveValues(ctx, s, "y")
	iss, _ := goresolve.AsIssues(err)
	if len(iss) != 1 || iss[0].Code != goresolve.CodeInvalidConst {
		t.Fatalf("else-branch const must be enforced, got %v", err)
	}
	// Condition met, no then: nothing extra to satisfy.
	if _, err := goresolve.ResolveValues(ctx, s, "x"); err != nil {
		t.Fatalf("met condition leaves the base schema: %v", err)
	}
}
