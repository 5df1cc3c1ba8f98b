// Package middleware carries the request-side half of authentication and
// authorization: bearer-token extraction and the access-guard checks
// evaluated before a handler runs.
package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/user-directory/internal/model"
	"github.com/iliyamo/user-directory/internal/utils"
)

// callerKey is the echo context key under which the verified caller
// identity is stored for downstream guards and handlers.
const callerKey = "caller"

// Identity returns middleware that verifies an Authorization bearer
// token when one is present and stores the decoded caller identity in
// the context. Requests without the header pass through anonymously;
// whether anonymity is acceptable is decided per route by the guards.
// A header that is present but does not verify is rejected outright
// with 401.
func Identity(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			auth := c.Request().Header.Get("Authorization")
			if auth == "" {
				return next(c)
			}
			raw := strings.TrimSpace(strings.TrimPrefix(auth, "Bearer"))
			caller, err := utils.VerifyToken(secret, raw)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
			}
			c.Set(callerKey, caller)
			return next(c)
		}
	}
}

// Caller returns the verified identity stored by Identity, if any.
func Caller(c echo.Context) (model.User, bool) {
	caller, ok := c.Get(callerKey).(model.User)
	return caller, ok
}
