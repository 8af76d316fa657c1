package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/cosmicchronic/marketplace/internal/api/metrics"
	"github.com/cosmicchronic/marketplace/internal/core/domain"
	"github.com/cosmicchronic/marketplace/internal/core/ports"
)

// DirectMessageHandler serves one-to-one conversations.
type DirectMessageHandler struct {
	service ports.MarketplaceService
}

func NewDirectMessageHandler(service ports.MarketplaceService) *DirectMessageHandler {
	return &DirectMessageHandler{service: service}
}

// Peers handles GET /v1/dm/peers: every other user with the number of
// messages they sent the caller since the conversation was last read.
//
// @Summary      Conversation partners
// @Tags         direct-messages
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   peerResponse
// @Failure      401  {object}  errorResponse
// @Router       /v1/dm/peers [get]
func (h *DirectMessageHandler) Peers(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}
	ctx := c.Request().Context()

	users, err := h.service.Users(ctx)
	if err != nil {
		return err
	}

	out := make([]peerResponse, 0, len(users))
	for _, u := range users {
		if u.ID == sess.User.ID {
			continue
		}
		n, err := h.service.UnreadDirectMessageCount(ctx, sess.ID, u.ID)
		if err != nil {
			return err
		}
		out = append(out, peerResponse{User: toUserResponse(u), Unread: n})
	}
	return c.JSON(http.StatusOK, out)
}

// Open handles GET /v1/dm/open. A pending target is consumed and selects
// the peer and draft; otherwise the first other user is selected. The
// selected conversation is marked read.
//
// @Summary      Open direct messages
// @Tags         direct-messages
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  conversationResponse
// @Failure      401  {object}  errorResponse
// @Router       /v1/dm/open [get]
func (h *DirectMessageHandler) Open(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}
	ctx := c.Request().Context()

	target, err := h.service.TakeDirectMessageTarget(ctx, sess.ID)
	if err != nil {
		return err
	}

	var (
		peer  *domain.User
		draft string
	)
	if target != nil {
		peer, err = h.service.FindUserByID(ctx, target.UserID)
		switch {
		case err == nil:
			draft = target.InitialMessage
		case errors.Is(err, domain.ErrUserNotFound):
			peer = nil
		default:
			return err
		}
	}
	if peer == nil {
		if peer, err = h.firstPeer(ctx, sess.User.ID); err != nil {
			return err
		}
	}
	if peer == nil {
		return c.JSON(http.StatusOK, conversationResponse{Messages: []privateMessageResponse{}})
	}

	resp, err := h.conversation(ctx, sess, *peer)
	if err != nil {
		return err
	}
	resp.Draft = draft
	return c.JSON(http.StatusOK, resp)
}

// Conversation handles GET /v1/dm/:peer_id and marks it read.
//
// @Summary      Conversation with a peer
// @Tags         direct-messages
// @Produce      json
// @Security     BearerAuth
// @Param        peer_id  path      string  true  "Peer user id"
// @Success      200      {object}  conversationResponse
// @Failure      404      {object}  errorResponse
// @Failure      422      {object}  errorResponse
// @Router       /v1/dm/{peer_id} [get]
func (h *DirectMessageHandler) Conversation(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}
	ctx := c.Request().Context()

	peerID := c.Param("peer_id")
	if peerID == sess.User.ID {
		return fmt.Errorf("%w: cannot open a conversation with yourself", domain.ErrInvalidInput)
	}
	peer, err := h.service.FindUserByID(ctx, peerID)
	if err != nil {
		return err
	}

	resp, err := h.conversation(ctx, sess, *peer)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, resp)
}

// Send handles POST /v1/dm/:peer_id.
//
// @Summary      Send a direct message
// @Tags         direct-messages
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        peer_id  path      string              true  "Receiver user id"
// @Param        body     body      sendMessageRequest  true  "Message"
// @Success      201      {object}  privateMessageResponse
// @Failure      404      {object}  errorResponse
// @Failure      422      {object}  errorResponse
// @Router       /v1/dm/{peer_id} [post]
func (h *DirectMessageHandler) Send(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}
	var req sendMessageRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	msg, err := h.service.AddPrivateChatMessage(c.Request().Context(), sess.ID, c.Param("peer_id"), req.Text)
	if err != nil {
		return rejected("add_private_message", err)
	}
	metrics.MessagesSentTotal.WithLabelValues("direct").Inc()

	return c.JSON(http.StatusCreated, toPrivateMessageResponse(*msg, sess.User.ID))
}

func (h *DirectMessageHandler) conversation(ctx context.Context, sess *domain.Session, peer domain.User) (conversationResponse, error) {
	msgs, err := h.service.ReadConversation(ctx, sess.ID, peer.ID)
	if err != nil {
		return conversationResponse{}, err
	}

	p := toUserResponse(peer)
	return conversationResponse{
		Peer:     &p,
		Messages: toPrivateMessageResponses(msgs, sess.User.ID),
	}, nil
}

func (h *DirectMessageHandler) firstPeer(ctx context.Context, selfID string) (*domain.User, error) {
	users, err := h.service.Users(ctx)
	if err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].ID != selfID {
			return &users[i], nil
		}
	}
	return nil, nil
}
