package echomw

import (
	"io"
	"net/http"

	"github.com/labstack/echo/v4"
	goresolve "github.com/reoring/goresolve"
	"github.com/reoring/goresolve/middleware"
)

// ResolveJSON resolves the incoming JSON body against the schema, stores the
// resolved (default-filled) value in the request context, and on validation
// failure returns 400 with the Issues payload.
func ResolveJSON(schema goresolve.Schema, opts ...goresolve.ResolveOpt) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			body, err := io.ReadAll(c.Request().Body)
			if err != nil {
				return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
			}
			v, err := goresolve.ValueFromJSON(body)
			if err != nil {
				return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
			}
			out, err := goresolve.ResolveValues(c.Request().Context(), schema, v, opts...)
			if err != nil {
				if iss, ok := goresolve.AsIssues(err); ok {
					return c.JSON(http.StatusBadRequest, middleware.ErrorPayload(iss))
				}
				return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
			}
			req := c.Request().WithContext(middleware.ContextWithResolved(c.Request().Context(), out))
			c.SetRequest(req)
			return next(c)
		}
	}
}

// GetResolved fetches the resolved payload from echo.Context.
func GetResolved(c echo.Context) (any, bool) {
	return middleware.ResolvedFromContext(c.Request().Context())
}
