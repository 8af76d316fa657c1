package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/cosmicchronic/marketplace/internal/api/metrics"
	"github.com/cosmicchronic/marketplace/internal/core/domain"
	"github.com/cosmicchronic/marketplace/internal/core/ports"
)

// ChatHandler serves the global room.
type ChatHandler struct {
	service ports.MarketplaceService
}

func NewChatHandler(service ports.MarketplaceService) *ChatHandler {
	return &ChatHandler{service: service}
}

// List handles GET /v1/chat/messages. Viewing the room marks it read.
//
// @Summary      Global chat messages
// @Tags         chat
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   chatMessageResponse
// @Failure      401  {object}  errorResponse
// @Router       /v1/chat/messages [get]
func (h *ChatHandler) List(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}
	ctx := c.Request().Context()

	msgs, err := h.service.ReadChatMessages(ctx, sess.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toChatMessageResponses(msgs, sess.User.ID))
}

// Send handles POST /v1/chat/messages.
//
// @Summary      Post to the global room
// @Tags         chat
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      sendMessageRequest  true  "Message"
// @Success      201   {object}  chatMessageResponse
// @Failure      401   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/chat/messages [post]
func (h *ChatHandler) Send(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}
	var req sendMessageRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	msg, err := h.service.AddChatMessage(c.Request().Context(), sess.ID, req.Text)
	if err != nil {
		return rejected("add_chat_message", err)
	}
	metrics.MessagesSentTotal.WithLabelValues("global").Inc()

	return c.JSON(http.StatusCreated, toChatMessageResponses([]domain.ChatMessage{*msg}, sess.User.ID)[0])
}
