package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/cosmicchronic/marketplace/internal/core/domain"
)

const (
	collectionChat           = "chat_messages"
	collectionDirectMessages = "private_messages"
)

type chatDoc struct {
	domain.ChatMessage `bson:",inline"`
	Seq                int64 `bson:"seq"`
}

// ChatRepository stores the global room stream.
type ChatRepository struct {
	col *mongo.Collection
	seq sequencer
}

func NewChatRepository(db *mongo.Database) *ChatRepository {
	return &ChatRepository{col: db.Collection(collectionChat)}
}

func (r *ChatRepository) List(ctx context.Context) ([]domain.ChatMessage, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "seq", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list chat: %w", err)
	}
	var docs []chatDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode chat: %w", err)
	}

	out := make([]domain.ChatMessage, len(docs))
	for i, d := range docs {
		out[i] = d.ChatMessage
		out[i].Timestamp = d.Timestamp.UTC()
	}
	return out, nil
}

func (r *ChatRepository) Append(ctx context.Context, msg *domain.ChatMessage) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.InsertOne(ctx, chatDoc{ChatMessage: *msg, Seq: r.seq.next()}); err != nil {
		return fmt.Errorf("insert chat message: %w", err)
	}
	return nil
}

func (r *ChatRepository) Reset(ctx context.Context, seed []domain.ChatMessage) error {
	docs := make([]interface{}, len(seed))
	for i, m := range seed {
		docs[i] = chatDoc{ChatMessage: m, Seq: int64(i)}
	}
	return reset(ctx, r.col, docs)
}

func (r *ChatRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{Keys: bson.D{{Key: "seq", Value: 1}}})
	return err
}

type directDoc struct {
	domain.PrivateChatMessage `bson:",inline"`
	Seq                       int64 `bson:"seq"`
}

// DirectMessageRepository stores the direct-message stream.
type DirectMessageRepository struct {
	col *mongo.Collection
	seq sequencer
}

func NewDirectMessageRepository(db *mongo.Database) *DirectMessageRepository {
	return &DirectMessageRepository{col: db.Collection(collectionDirectMessages)}
}

func (r *DirectMessageRepository) ListForUser(ctx context.Context, userID string) ([]domain.PrivateChatMessage, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"$or": bson.A{
		bson.M{"sender_id": userID},
		bson.M{"receiver_id": userID},
	}}
	sort := bson.D{{Key: "timestamp", Value: 1}, {Key: "seq", Value: 1}}

	cur, err := r.col.Find(ctx, filter, options.Find().SetSort(sort))
	if err != nil {
		return nil, fmt.Errorf("list direct messages: %w", err)
	}
	var docs []directDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode direct messages: %w", err)
	}

	out := make([]domain.PrivateChatMessage, len(docs))
	for i, d := range docs {
		out[i] = d.PrivateChatMessage
		out[i].Timestamp = d.Timestamp.UTC()
	}
	return out, nil
}

func (r *DirectMessageRepository) Append(ctx context.Context, msg *domain.PrivateChatMessage) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.InsertOne(ctx, directDoc{PrivateChatMessage: *msg, Seq: r.seq.next()}); err != nil {
		return fmt.Errorf("insert direct message: %w", err)
	}
	return nil
}

func (r *DirectMessageRepository) Reset(ctx context.Context, seed []domain.PrivateChatMessage) error {
	docs := make([]interface{}, len(seed))
	for i, m := range seed {
		docs[i] = directDoc{PrivateChatMessage: m, Seq: int64(i)}
	}
	return reset(ctx, r.col, docs)
}

// EnsureIndexes creates the participant lookup indexes.
func (r *DirectMessageRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "sender_id", Value: 1}, {Key: "timestamp", Value: 1}}},
		{Keys: bson.D{{Key: "receiver_id", Value: 1}, {Key: "timestamp", Value: 1}}},
	}
	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
