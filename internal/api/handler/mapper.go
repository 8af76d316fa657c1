package handler

import (
	"github.com/cosmicchronic/marketplace/internal/core/domain"
)

// --- Domain → Response ---

func toUserResponse(u domain.User) userResponse {
	return userResponse{
		ID:        u.ID,
		Username:  u.Username,
		Role:      string(u.Role),
		AvatarURL: u.AvatarURL,
		Location:  u.Location,
		Rate:      u.Rate,
	}
}

func toUserResponses(users []domain.User) []userResponse {
	out := make([]userResponse, 0, len(users))
	for _, u := range users {
		out = append(out, toUserResponse(u))
	}
	return out
}

// toProductResponse joins the seller snapshot when the seller is in sellers.
func toProductResponse(p domain.Product, sellers map[string]domain.User, viewerID string) productResponse {
	resp := productResponse{
		ID:          p.ID,
		Name:        p.Name,
		Strain:      string(p.Strain),
		Price:       p.Price,
		Description: p.Description,
		ImageURL:    p.ImageURL,
		SellerID:    p.SellerID,
		Contactable: p.SellerID != viewerID,
	}
	if s, ok := sellers[p.SellerID]; ok {
		resp.Seller = &sellerSummary{
			ID:        s.ID,
			Username:  s.Username,
			AvatarURL: s.AvatarURL,
			Location:  s.Location,
			Rate:      s.Rate,
		}
	}
	return resp
}

func toChatMessageResponses(msgs []domain.ChatMessage, viewerID string) []chatMessageResponse {
	out := make([]chatMessageResponse, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, chatMessageResponse{
			ID:             m.ID,
			SenderID:       m.SenderID,
			SenderUsername: m.SenderUsername,
			Text:           m.Text,
			Timestamp:      m.Timestamp,
			Mine:           m.SenderID == viewerID,
		})
	}
	return out
}

func toPrivateMessageResponse(m domain.PrivateChatMessage, viewerID string) privateMessageResponse {
	return privateMessageResponse{
		ID:         m.ID,
		SenderID:   m.SenderID,
		ReceiverID: m.ReceiverID,
		Text:       m.Text,
		Timestamp:  m.Timestamp,
		Mine:       m.SenderID == viewerID,
	}
}

func toPrivateMessageResponses(msgs []domain.PrivateChatMessage, viewerID string) []privateMessageResponse {
	out := make([]privateMessageResponse, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, toPrivateMessageResponse(m, viewerID))
	}
	return out
}

func indexUsers(users []domain.User) map[string]domain.User {
	idx := make(map[string]domain.User, len(users))
	for _, u := range users {
		idx[u.ID] = u
	}
	return idx
}
