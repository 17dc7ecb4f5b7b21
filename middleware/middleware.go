package middleware

import (
	"context"

	goresolve "github.com/reoring/goresolve"
)

// ctxKeyResolved is a typed context key for storing a resolved payload.
type ctxKeyResolved struct{}

// ContextWithResolved attaches a resolved value to the context.
func ContextWithResolved(ctx context.Context, v any) context.Context {
	return context.WithValue(ctx, ctxKeyResolved{}, v)
}

// ResolvedFromContext retrieves the resolved value from context.
func ResolvedFromContext(ctx context.Context) (any, bool) {
	v := ctx.Value(ctxKeyResolved{})
	if v == nil {
		return nil, false
	}
	return v, true
}

// ErrorPayload renders Issues as the wire-stable error body:
// {"errors": [{"message": ..., "path": [...]}]}.
func ErrorPayload(iss goresolve.Issues) map[string]any {
	entries := make([]map[string]any, 0, len(iss))
	for _, it := range iss {
		path := it.Path
		if path == nil {
			path = []string{}
		}
		entries = append(entries, map[string]any{
			"message": it.Message,
			"path":    path,
		})
	}
	return map[string]any{"errors": entries}
}
