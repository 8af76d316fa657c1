package handler

import (
	"encoding/json"
	"time"

	"github.com/cosmicchronic/marketplace/internal/core/domain"
)

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Request types ---

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type createUserRequest struct {
	Username string `json:"username" validate:"required,notblank"`
	Role     string `json:"role"     validate:"required,oneof=Admin Seller Buyer"`
}

type updateRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=Admin Seller Buyer"`
}

type createProductRequest struct {
	Name        string  `json:"name"        validate:"required,notblank"`
	Strain      string  `json:"strain"      validate:"required,oneof=Sativa Indica Hybrid"`
	Price       float64 `json:"price"       validate:"required,gt=0"`
	Description string  `json:"description" validate:"required,notblank"`
}

type sendMessageRequest struct {
	Text string `json:"text" validate:"required,notblank"`
}

// updateProfileRequest leaves absent fields untouched. Rate accepts a number
// or a numeric string and is only applied for sellers.
type updateProfileRequest struct {
	AvatarURL *string         `json:"avatar_url"`
	Location  *string         `json:"location"`
	Rate      json.RawMessage `json:"rate" swaggertype:"number"`
}

// --- Response types ---

// Response-only types owned by the transport layer, so the JSON contract is
// not coupled to domain changes.

type userResponse struct {
	ID        string   `json:"id"`
	Username  string   `json:"username"`
	Role      string   `json:"role"`
	AvatarURL string   `json:"avatar_url"`
	Location  string   `json:"location"`
	Rate      *float64 `json:"rate,omitempty"`
}

type authResponse struct {
	Token       string       `json:"token"`
	User        userResponse `json:"user"`
	LandingView string       `json:"landing_view"`
}

type sellerSummary struct {
	ID        string   `json:"id"`
	Username  string   `json:"username"`
	AvatarURL string   `json:"avatar_url"`
	Location  string   `json:"location"`
	Rate      *float64 `json:"rate,omitempty"`
}

type productResponse struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Strain      string         `json:"strain"`
	Price       float64        `json:"price"`
	Description string         `json:"description"`
	ImageURL    string         `json:"image_url"`
	SellerID    string         `json:"seller_id"`
	Seller      *sellerSummary `json:"seller,omitempty"`
	Contactable bool           `json:"contactable"` // false on the caller's own listings
}

type chatMessageResponse struct {
	ID             string    `json:"id"`
	SenderID       string    `json:"sender_id"`
	SenderUsername string    `json:"sender_username"`
	Text           string    `json:"text"`
	Timestamp      time.Time `json:"timestamp"`
	Mine           bool      `json:"mine"`
}

type privateMessageResponse struct {
	ID         string    `json:"id"`
	SenderID   string    `json:"sender_id"`
	ReceiverID string    `json:"receiver_id"`
	Text       string    `json:"text"`
	Timestamp  time.Time `json:"timestamp"`
	Mine       bool      `json:"mine"`
}

type peerResponse struct {
	User   userResponse `json:"user"`
	Unread int          `json:"unread"`
}

type conversationResponse struct {
	Peer     *userResponse            `json:"peer"`
	Draft    string                   `json:"draft,omitempty"`
	Messages []privateMessageResponse `json:"messages"`
}

type inquiryResponse struct {
	Target domain.DirectMessageTarget `json:"target"`
	View   string                     `json:"view"`
}

type badgesResponse struct {
	GlobalChat     int `json:"global_chat"`
	DirectMessages int `json:"direct_messages"`
}

type navResponse struct {
	User        userResponse   `json:"user"`
	Views       []string       `json:"views"`
	LandingView string         `json:"landing_view"`
	ActiveView  string         `json:"active_view"`
	Badges      badgesResponse `json:"badges"`
}
