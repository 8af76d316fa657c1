package mongo

import (
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/cosmicchronic/marketplace/internal/core/domain"
)

func TestSequencer_StrictlyIncreasing(t *testing.T) {
	var s sequencer
	prev := s.next()
	for i := 0; i < 1000; i++ {
		n := s.next()
		if n <= prev {
			t.Fatalf("sequence went backwards: %d after %d", n, prev)
		}
		prev = n
	}
}

func TestUserDoc_InlinesFields(t *testing.T) {
	rate := 60.0
	raw, err := bson.Marshal(userDoc{
		User: domain.User{ID: "seller-001", Username: "seller", Role: domain.RoleSeller, Password: "password", Rate: &rate},
		Seq:  3,
	})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var flat bson.M
	if err := bson.Unmarshal(raw, &flat); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if flat["_id"] != "seller-001" || flat["username"] != "seller" || flat["password"] != "password" {
		t.Fatalf("user fields not inlined: %v", flat)
	}
	if flat["seq"] != int64(3) {
		t.Fatalf("unexpected seq: %v", flat["seq"])
	}

	var back userDoc
	if err := bson.Unmarshal(raw, &back); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if back.Rate == nil || *back.Rate != 60 {
		t.Fatalf("rate lost: %+v", back.User)
	}
}

func TestDirectDoc_KeepsTimestamp(t *testing.T) {
	ts := time.Date(2026, 3, 14, 11, 50, 0, 123000000, time.UTC)
	raw, err := bson.Marshal(directDoc{
		PrivateChatMessage: domain.PrivateChatMessage{ID: "pmsg-001", SenderID: "a", ReceiverID: "b", Text: "hi", Timestamp: ts},
	})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var back directDoc
	if err := bson.Unmarshal(raw, &back); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !back.Timestamp.Equal(ts) {
		t.Fatalf("timestamp changed: %v vs %v", back.Timestamp, ts)
	}
}
