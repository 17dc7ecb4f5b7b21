package echomw_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	goresolve "github.com/reoring/goresolve"
	echomw "github.com/reoring/goresolve/middleware/echo"
)

func configSchema() goresolve.Schema {
	return goresolve.Schema{
		"type": "object",
		"properties": map[string]any{
			"host": map[string]any{"type": "string", "default": "localhost"},
			"port": map[string]any{"type": "integer", "minimum": 1},
		},
		"required": []any{"host", "port"},
	}
}

func newServer() *echo.Echo {
	e := echo.New()
	e.POST("/cfg", func(c echo.Context) error {
		v, ok := echomw.GetResolved(c)
		if !ok {
			return c.NoContent(http.StatusInternalServerError)
		}
		return c.JSON(http.StatusOK, v)
	}, echomw.ResolveJSON(configSchema()))
	return e
}

func TestResolveJSON_InjectsDefaults(t *testing.T) {
	e := newServer()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/cfg", strings.NewReader(`{"port":8080}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	e.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("want 200, got %d: %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "localhost") {
		t.Fatalf("resolved default missing from response: %s", w.Body.String())
	}
}

func TestResolveJSON_RejectsInvalidPayload(t *testing.T) {
	e := newServer()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/cfg", strings.NewReader(`{"port":0}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	e.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("want 400, got %d: %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "errors") {
		t.Fatalf("want issues payload, got: %s", w.Body.String())
	}
}
