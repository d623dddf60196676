package middleware

import (
	"github.com/labstack/echo/v4"
)

// HeaderUserID is set by the identity provider fronting this service.
const HeaderUserID = "X-User-ID"

const userIDKey = "mandikart.user_id"

// Identity copies the authenticated user id from the request header into the
// echo context. Token validation happens upstream; an absent header simply
// leaves the request anonymous and endpoints decide whether that is allowed.
func Identity() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if id := c.Request().Header.Get(HeaderUserID); id != "" {
				c.Set(userIDKey, id)
			}
			return next(c)
		}
	}
}

// UserID returns the authenticated user id, or "" for anonymous requests.
func UserID(c echo.Context) string {
	id, _ := c.Get(userIDKey).(string)
	return id
}
