package ginmw

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	goresolve "github.com/reoring/goresolve"
	"github.com/reoring/goresolve/middleware"
)

// ResolveJSON resolves the incoming JSON body against the schema, stores the
// resolved (default-filled) value in the request context, and on validation
// failure returns 400 with the Issues payload.
func ResolveJSON(schema goresolve.Schema, opts ...goresolve.ResolveOpt) gin.HandlerFunc {
	return func(c *gin.Context) {
		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			c.Abort()
			return
		}
		v, err := goresolve.ValueFromJSON(body)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			c.Abort()
			return
		}
		out, err := goresolve.ResolveValues(c.Request.Context(), schema, v, opts...)
		if err != nil {
			if iss, ok := goresolve.AsIssues(err); ok {
				c.JSON(http.StatusBadRequest, middleware.ErrorPayload(iss))
				c.Abort()
				return
			}
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			c.Abort()
			return
		}
		c.Request = c.Request.WithContext(middleware.ContextWithResolved(c.Request.Context(), out))
		c.Next()
	}
}

// GetResolved fetches the resolved payload from gin.Context.
func GetResolved(c *gin.Context) (any, bool) {
	return middleware.ResolvedFromContext(c.Request.Context())
}
