package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/user-directory/internal/middleware"
	"github.com/iliyamo/user-directory/internal/model"
	"github.com/iliyamo/user-directory/internal/service"
)

// UserHandler bundles the services behind the /users endpoints.
type UserHandler struct {
	Users *service.UserService
	Roles *service.RoleService
}

func NewUserHandler(users *service.UserService, roles *service.RoleService) *UserHandler {
	return &UserHandler{Users: users, Roles: roles}
}

// Login exchanges a credential pair for a signed token. Any credential
// failure is a bare 401.
func (h *UserHandler) Login(c echo.Context) error {
	var req model.Login
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "email/password required"})
	}
	auth, err := h.Users.Login(c.Request().Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "login failed"})
	}
	return c.JSON(http.StatusOK, auth)
}

// Create registers a new account. Self-registration is public, but a
// request that names the Administrator role only proceeds when the
// caller itself is an authenticated Administrator.
func (h *UserHandler) Create(c echo.Context) error {
	var req model.User
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "email/password required"})
	}
	if err := h.guardEscalation(c, req); err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": err.Error()})
	}
	user, err := h.Users.Create(c.Request().Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrEmailNotAvailable) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "email not available"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create user failed"})
	}
	return c.JSON(http.StatusOK, user)
}

// GetAll lists every account with passwords redacted. Admin only,
// enforced by the route guard.
func (h *UserHandler) GetAll(c echo.Context) error {
	users, err := h.Users.GetAll(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list users failed"})
	}
	return c.JSON(http.StatusOK, users)
}

// GetRoles lists the persisted roles. Admin only.
func (h *UserHandler) GetRoles(c echo.Context) error {
	roles, err := h.Roles.GetAll(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list roles failed"})
	}
	return c.JSON(http.StatusOK, roles)
}

// GetByID returns a single account with the password redacted.
func (h *UserHandler) GetByID(c echo.Context) error {
	user, err := h.Users.GetByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load user failed"})
	}
	return c.JSON(http.StatusOK, user)
}

// Update replaces the account at :id, possibly moving it to a new email.
// Granting Administrator through an update follows the same escalation
// rule as create.
func (h *UserHandler) Update(c echo.Context) error {
	var req model.User
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "email/password required"})
	}
	if err := h.guardEscalation(c, req); err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": err.Error()})
	}
	user, err := h.Users.Update(c.Request().Context(), c.Param("id"), req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmailNotFound), errors.Is(err, service.ErrNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
		case errors.Is(err, service.ErrEmailNotAvailable):
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "email not available"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update user failed"})
	}
	return c.JSON(http.StatusOK, user)
}

// Delete removes the account at :id.
func (h *UserHandler) Delete(c echo.Context) error {
	if err := h.Users.Delete(c.Request().Context(), c.Param("id")); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete user failed"})
	}
	return c.NoContent(http.StatusOK)
}

// guardEscalation applies the role-escalation rule: whenever the request
// names the Administrator role, the acting identity must itself be an
// authenticated Administrator. The check looks at the acting caller's
// privilege, not at the difference to the subject's current roles.
func (h *UserHandler) guardEscalation(c echo.Context, requested model.User) error {
	if !h.Users.HasAdminRole(requested) {
		return nil
	}
	caller, ok := middleware.Caller(c)
	if !ok || !h.Users.HasAdminRole(caller) {
		return service.ErrCredentialsNotProvided
	}
	return nil
}
