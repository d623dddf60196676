package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func TestIdentity(t *testing.T) {
	e := echo.New()
	e.Use(Identity())
	e.GET("/whoami", func(c echo.Context) error {
		return c.String(http.StatusOK, UserID(c))
	})

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set(HeaderUserID, "retailer-7")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Body.String() != "retailer-7" {
		t.Errorf("user id = %q, want retailer-7", rec.Body.String())
	}

	req = httptest.NewRequest(http.MethodGet, "/whoami", nil)
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Body.String() != "" {
		t.Errorf("anonymous user id = %q, want empty", rec.Body.String())
	}
}
