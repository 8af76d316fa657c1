package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/cosmicchronic/marketplace/internal/core/domain"
	"github.com/cosmicchronic/marketplace/internal/core/ports"
)

// ProfileHandler serves the caller's own profile.
type ProfileHandler struct {
	service ports.UserService
}

func NewProfileHandler(service ports.UserService) *ProfileHandler {
	return &ProfileHandler{service: service}
}

// Get handles GET /v1/profile.
//
// @Summary      My profile
// @Tags         profile
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  userResponse
// @Failure      401  {object}  errorResponse
// @Router       /v1/profile [get]
func (h *ProfileHandler) Get(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}
	user, err := h.service.FindUserByID(c.Request().Context(), sess.User.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserResponse(*user))
}

// Update handles PUT /v1/profile. Avatar, location and rate are merged when
// present. A seller's unparseable rate is stored as 0. Other roles' rate
// input is ignored.
//
// @Summary      Update my profile
// @Tags         profile
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      updateProfileRequest  true  "Profile fields"
// @Success      200   {object}  userResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /v1/profile [put]
func (h *ProfileHandler) Update(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}
	var req updateProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	update := domain.ProfileUpdate{AvatarURL: req.AvatarURL, Location: req.Location}
	if sess.User.Role == domain.RoleSeller && hasRate(req.Rate) {
		rate := parseRate(req.Rate)
		update.Rate = &rate
	}

	user, err := h.service.UpdateUserProfile(c.Request().Context(), sess.User.ID, update)
	if err != nil {
		return rejected("update_profile", err)
	}
	return c.JSON(http.StatusOK, toUserResponse(*user))
}

// hasRate reports whether the request carried a rate field at all.
func hasRate(raw json.RawMessage) bool {
	return len(bytes.TrimSpace(raw)) > 0
}

// parseRate reads a JSON number or numeric string. Anything else is 0.
func parseRate(raw json.RawMessage) float64 {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return 0
	}

	var n float64
	if err := json.Unmarshal(raw, &n); err == nil {
		return n
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if v, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
			return v
		}
	}
	return 0
}
