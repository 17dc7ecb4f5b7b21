package goresolve

import "testing"

func TestDeepEqualValue_NumericFolding(t *testing.T) {
	if !deepEqualValue(1, float64(1)) {
		t.Fatalf("1 and 1.0 are the same value")
	}
	if !deepEqualValue(int64(7), 7) {
		t.Fatalf("int64 and int fold together")
	}
	if deepEqualValue(1, float64(1.5)) {
		t.Fatalf("distinct numbers must differ")
	}
}

func TestDeepEqualValue_Structural(t *testing.T) {
	a := map[string]any{"k": []any{1, "x", map[string]any{"n": 2}}}
	b := map[string]any{"k": []any{float64(1), "x", map[string]any{"n": float64(2)}}}
	if !deepEqualValue(a, b) {
		t.Fatalf("structurally equal maps must match")
	}
	c := map[string]any{"k": []any{1, "x", map[string]any{"n": 3}}}
	if deepEqualValue(a, c) {
		t.Fatalf("nested difference must be detected")
	}
	if deepEqualValue([]any{1, 2}, []any{2, 1}) {
		t.Fatalf("slice order matters")
	}
}

func TestDeepEqualValue_Nil(t *testing.T) {
	if !deepEqualValue(nil, nil) {
		t.Fatalf("nil equals nil")
	}
	if deepEqualValue(nil, 0) || deepEqualValue("", nil) {
		t.Fatalf("nil only equals nil")
	}
}

func TestContainsValue(t *testing.T) {
	list := []any{"a", float64(2), map[string]any{"k": 1}}
	if !containsValue(list, 2) {
		t.Fatalf("numeric member should match across representations")
	}
	if !containsValue(list, map[string]any{"k": float64(1)}) {
		t.Fatalf("structural member should match")
	}
	if containsValue(list, "b") {
		t.Fatalf("absent member must not match")
	}
}
