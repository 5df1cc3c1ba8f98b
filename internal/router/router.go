// Package router wires the HTTP surface of the directory service onto an
// Echo instance. Authorization is decided here, per route, before any
// handler runs: login and plain self-registration are public, record
// access requires admin-or-self, listings require admin.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/user-directory/internal/handler"
	"github.com/iliyamo/user-directory/internal/middleware"
)

// RegisterRoutes registers routes that carry no authentication at all.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterUsers registers the /users API. The Identity middleware runs
// on the whole group: it verifies a bearer token when one is present and
// otherwise lets the request through anonymously, leaving the per-route
// guards to decide whether anonymity is acceptable.
func RegisterUsers(e *echo.Echo, h *handler.UserHandler, jwtSecret string) {
	g := e.Group("/users", middleware.Identity(jwtSecret))

	// Public: anyone may log in or self-register. Create still applies
	// the escalation rule inside the handler when Administrator is
	// among the requested roles.
	g.POST("/login", h.Login)
	g.POST("", h.Create)

	// Admin only.
	g.GET("", h.GetAll, middleware.RequireAdmin())
	g.GET("/roles", h.GetRoles, middleware.RequireAdmin())

	// Admin or the record's own subject.
	g.GET("/:id", h.GetByID, middleware.RequireAdminOrSelf("id"))
	g.PUT("/:id", h.Update, middleware.RequireAdminOrSelf("id"))
	g.DELETE("/:id", h.Delete, middleware.RequireAdminOrSelf("id"))
}
