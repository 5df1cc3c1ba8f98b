package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Health is the liveness endpoint used by load balancers and monitoring.
// It answers before any store access, so it stays green while seeding is
// still in flight.
func Health(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}
