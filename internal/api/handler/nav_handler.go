package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/cosmicchronic/marketplace/internal/core/domain"
	"github.com/cosmicchronic/marketplace/internal/core/ports"
)

// View ids returned by the navigation endpoints.
const (
	ViewAdmin          = "admin"
	ViewMarketplace    = "marketplace"
	ViewGlobalChat     = "global_chat"
	ViewDirectMessages = "direct_messages"
	ViewProfile        = "profile"
)

// visibleViews lists the views role may open, in sidebar order.
func visibleViews(role domain.Role) []string {
	views := make([]string, 0, 5)
	if role == domain.RoleAdmin {
		views = append(views, ViewAdmin)
	}
	return append(views, ViewMarketplace, ViewGlobalChat, ViewDirectMessages, ViewProfile)
}

func landingView(role domain.Role) string {
	if role == domain.RoleAdmin {
		return ViewAdmin
	}
	return ViewMarketplace
}

// NavHandler serves the shell: visible views and unread badges.
type NavHandler struct {
	service ports.UnreadService
}

func NewNavHandler(service ports.UnreadService) *NavHandler {
	return &NavHandler{service: service}
}

// Get handles GET /v1/nav. A pending direct-message target switches the
// active view to direct messages; it stays pending until the conversation
// is opened.
//
// @Summary      Navigation state
// @Tags         shell
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  navResponse
// @Failure      401  {object}  errorResponse
// @Router       /v1/nav [get]
func (h *NavHandler) Get(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}
	ctx := c.Request().Context()

	global, err := h.service.UnreadGlobalCount(ctx, sess.ID)
	if err != nil {
		return err
	}
	direct, err := h.service.TotalUnreadDirectMessageCount(ctx, sess.ID)
	if err != nil {
		return err
	}

	landing := landingView(sess.User.Role)
	active := landing
	if sess.DMTarget != nil {
		active = ViewDirectMessages
	}

	return c.JSON(http.StatusOK, navResponse{
		User:        toUserResponse(sess.User),
		Views:       visibleViews(sess.User.Role),
		LandingView: landing,
		ActiveView:  active,
		Badges:      badgesResponse{GlobalChat: global, DirectMessages: direct},
	})
}
