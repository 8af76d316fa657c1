package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/cosmicchronic/marketplace/internal/core/domain"
	"github.com/cosmicchronic/marketplace/internal/core/ports"
)

// AdminHandler serves the user roster. Routes are gated to admins by RBAC.
type AdminHandler struct {
	service ports.UserService
}

func NewAdminHandler(service ports.UserService) *AdminHandler {
	return &AdminHandler{service: service}
}

// ListUsers handles GET /v1/admin/users.
//
// @Summary      List users
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   userResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /v1/admin/users [get]
func (h *AdminHandler) ListUsers(c echo.Context) error {
	users, err := h.service.Users(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserResponses(users))
}

// CreateUser handles POST /v1/admin/users. The user gets the default
// password and an unknown location.
//
// @Summary      Add a user
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createUserRequest  true  "Username and role"
// @Success      201   {object}  userResponse
// @Failure      403   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/admin/users [post]
func (h *AdminHandler) CreateUser(c echo.Context) error {
	var req createUserRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	user, err := h.service.AddUser(c.Request().Context(), req.Username, domain.Role(req.Role))
	if err != nil {
		return rejected("add_user", err)
	}
	return c.JSON(http.StatusCreated, toUserResponse(*user))
}

// UpdateRole handles PATCH /v1/admin/users/:id/role.
//
// @Summary      Change a user's role
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "User id"
// @Param        body  body      updateRoleRequest  true  "New role"
// @Success      200   {object}  userResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/admin/users/{id}/role [patch]
func (h *AdminHandler) UpdateRole(c echo.Context) error {
	var req updateRoleRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	user, err := h.service.UpdateUserRole(c.Request().Context(), c.Param("id"), domain.Role(req.Role))
	if err != nil {
		return rejected("update_role", err)
	}
	return c.JSON(http.StatusOK, toUserResponse(*user))
}
