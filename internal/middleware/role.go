package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/user-directory/internal/model"
	"github.com/iliyamo/user-directory/internal/repository"
)

// RequireAdmin returns middleware that only lets authenticated callers
// holding the Administrator role through. Everything else is 401; the
// service never distinguishes missing from insufficient credentials.
func RequireAdmin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			caller, ok := Caller(c)
			if !ok || !caller.HasRole(model.RoleAdministrator) {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
			}
			return next(c)
		}
	}
}

// RequireAdminOrSelf returns middleware for routes addressing a single
// account by its email path parameter. The caller must be authenticated
// and either hold Administrator or be the subject of the record; either
// branch alone is sufficient.
func RequireAdminOrSelf(param string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			caller, ok := Caller(c)
			if !ok {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
			}
			subject := repository.NormalizeEmail(c.Param(param))
			if caller.HasRole(model.RoleAdministrator) || repository.NormalizeEmail(caller.Email) == subject {
				return next(c)
			}
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
		}
	}
}
