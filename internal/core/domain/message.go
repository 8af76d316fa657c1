package domain

import "time"

// GlobalScope is the read-marker scope id of the global chat room. Every
// direct-message peer id is a scope of its own.
const GlobalScope = "global"

// ChatMessage is a message posted to the global room.
// SenderUsername is a snapshot taken when the message was sent.
type ChatMessage struct {
	ID             string    `json:"id" bson:"_id"`
	SenderID       string    `json:"sender_id" bson:"sender_id"`
	SenderUsername string    `json:"sender_username" bson:"sender_username"`
	Text           string    `json:"text" bson:"text"`
	Timestamp      time.Time `json:"timestamp" bson:"timestamp"`
}

// PrivateChatMessage belongs to the unordered pair {SenderID, ReceiverID}.
type PrivateChatMessage struct {
	ID         string    `json:"id" bson:"_id"`
	SenderID   string    `json:"sender_id" bson:"sender_id"`
	ReceiverID string    `json:"receiver_id" bson:"receiver_id"`
	Text       string    `json:"text" bson:"text"`
	Timestamp  time.Time `json:"timestamp" bson:"timestamp"`
}

// Between reports whether m belongs to the conversation of a and b, in
// either direction.
func (m PrivateChatMessage) Between(a, b string) bool {
	return (m.SenderID == a && m.ReceiverID == b) || (m.SenderID == b && m.ReceiverID == a)
}
