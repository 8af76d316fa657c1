package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/cosmicchronic/marketplace/internal/core/domain"
)

const collectionUsers = "users"

type userDoc struct {
	domain.User `bson:",inline"`
	Seq         int64 `bson:"seq"`
}

type UserRepository struct {
	col *mongo.Collection
	seq sequencer
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{col: db.Collection(collectionUsers)}
}

func (r *UserRepository) List(ctx context.Context) ([]domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "seq", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	var docs []userDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode users: %w", err)
	}

	out := make([]domain.User, len(docs))
	for i, d := range docs {
		out[i] = d.User
	}
	return out, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"_id": id}, nil)
}

// FindByCredentials matches username and password exactly. Ties go to the
// earliest inserted user.
func (r *UserRepository) FindByCredentials(ctx context.Context, username, password string) (*domain.User, error) {
	filter := bson.M{"username": username, "password": password}
	return r.findOne(ctx, filter, options.FindOne().SetSort(bson.D{{Key: "seq", Value: 1}}))
}

func (r *UserRepository) findOne(ctx context.Context, filter bson.M, opts *options.FindOneOptions) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var d userDoc
	var err error
	if opts != nil {
		err = r.col.FindOne(ctx, filter, opts).Decode(&d)
	} else {
		err = r.col.FindOne(ctx, filter).Decode(&d)
	}
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return &d.User, nil
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.InsertOne(ctx, userDoc{User: *user, Seq: r.seq.next()}); err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (r *UserRepository) Update(ctx context.Context, user *domain.User) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	set := bson.M{
		"username":   user.Username,
		"role":       user.Role,
		"password":   user.Password,
		"avatar_url": user.AvatarURL,
		"location":   user.Location,
	}
	update := bson.M{"$set": set}
	if user.Rate != nil {
		set["rate"] = *user.Rate
	} else {
		update["$unset"] = bson.M{"rate": ""}
	}

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": user.ID}, update)
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) Reset(ctx context.Context, seed []domain.User) error {
	docs := make([]interface{}, len(seed))
	for i, u := range seed {
		docs[i] = userDoc{User: u, Seq: int64(i)}
	}
	return reset(ctx, r.col, docs)
}

// EnsureIndexes creates the credential lookup index.
func (r *UserRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "username", Value: 1}, {Key: "seq", Value: 1}}},
		{Keys: bson.D{{Key: "seq", Value: 1}}},
	}
	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
