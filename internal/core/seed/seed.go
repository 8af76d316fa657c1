// Package seed holds the fixed dataset the marketplace starts from. Every
// restart resets state to this data.
package seed

import (
	"time"

	"github.com/cosmicchronic/marketplace/internal/core/domain"
)

// DefaultPassword is the password of every seeded and newly added user.
const DefaultPassword = "password"

// Data is one complete snapshot of marketplace collections.
type Data struct {
	Users           []domain.User
	Products        []domain.Product
	ChatMessages    []domain.ChatMessage
	PrivateMessages []domain.PrivateChatMessage
}

func rate(v float64) *float64 { return &v }

// Build returns the seed dataset. Message timestamps are placed a few
// minutes before now.
func Build(now time.Time) Data {
	return Data{
		Users: []domain.User{
			{
				ID:        "admin-001",
				Username:  "admin",
				Password:  DefaultPassword,
				Role:      domain.RoleAdmin,
				AvatarURL: "https://i.pravatar.cc/150?u=admin-001",
				Location:  "Control Room",
			},
			{
				ID:        "seller-001",
				Username:  "seller",
				Password:  DefaultPassword,
				Role:      domain.RoleSeller,
				AvatarURL: "https://i.pravatar.cc/150?u=seller-001",
				Location:  "California",
				Rate:      rate(60),
			},
			{
				ID:        "seller-002",
				Username:  "greenthumb",
				Password:  DefaultPassword,
				Role:      domain.RoleSeller,
				AvatarURL: "https://i.pravatar.cc/150?u=seller-002",
				Location:  "Colorado",
				Rate:      rate(65),
			},
			{
				ID:        "buyer-001",
				Username:  "buyer",
				Password:  DefaultPassword,
				Role:      domain.RoleBuyer,
				AvatarURL: "https://i.pravatar.cc/150?u=buyer-001",
				Location:  "New York",
			},
			{
				ID:        "buyer-002",
				Username:  "janedoe",
				Password:  DefaultPassword,
				Role:      domain.RoleBuyer,
				AvatarURL: "https://i.pravatar.cc/150?u=buyer-002",
				Location:  "Florida",
			},
		},
		Products: []domain.Product{
			{
				ID:          "prod-001",
				Name:        "Cosmic Kush",
				Strain:      domain.StrainIndica,
				Price:       45.00,
				SellerID:    "seller-001",
				Description: "A relaxing strain perfect for starry nights and deep thoughts.",
				ImageURL:    "https://images.unsplash.com/photo-1556928045-16f7f50be0f3?q=80&w=800",
			},
			{
				ID:          "prod-002",
				Name:        "Solar Flare",
				Strain:      domain.StrainSativa,
				Price:       55.00,
				SellerID:    "seller-001",
				Description: "An energetic boost for creative tasks and daytime adventures.",
				ImageURL:    "https://images.unsplash.com/photo-1621293322431-f8a709044317?q=80&w=800",
			},
			{
				ID:          "prod-003",
				Name:        "Galaxy Glue",
				Strain:      domain.StrainHybrid,
				Price:       50.00,
				SellerID:    "seller-002",
				Description: "A balanced hybrid that offers the best of both worlds.",
				ImageURL:    "https://images.unsplash.com/photo-1560946164-9a741eb55662?q=80&w=800",
			},
			{
				ID:          "prod-004",
				Name:        "Morning Dew",
				Strain:      domain.StrainSativa,
				Price:       52.00,
				SellerID:    "seller-002",
				Description: "A crisp and refreshing strain to start your day with focus.",
				ImageURL:    "https://images.unsplash.com/photo-1599282382410-8335fac13733?q=80&w=800",
			},
		},
		ChatMessages: []domain.ChatMessage{
			{
				ID:             "msg-001",
				SenderID:       "buyer-001",
				SenderUsername: "buyer",
				Text:           "Has anyone tried the Solar Flare?",
				Timestamp:      now.Add(-5 * time.Minute),
			},
			{
				ID:             "msg-002",
				SenderID:       "seller-001",
				SenderUsername: "seller",
				Text:           "I highly recommend it! It's one of our most popular products for creativity.",
				Timestamp:      now.Add(-4 * time.Minute),
			},
		},
		PrivateMessages: []domain.PrivateChatMessage{
			{
				ID:         "pmsg-001",
				SenderID:   "buyer-001",
				ReceiverID: "seller-001",
				Text:       "Hey, I had a question about the Cosmic Kush.",
				Timestamp:  now.Add(-10 * time.Minute),
			},
			{
				ID:         "pmsg-002",
				SenderID:   "seller-001",
				ReceiverID: "buyer-001",
				Text:       "Sure, what would you like to know?",
				Timestamp:  now.Add(-9 * time.Minute),
			},
		},
	}
}
