package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/rl1809/order-fulfillment/internal/core/domain"
)

const usersCollection = "users"

type userDocument struct {
	UserID    string    `bson:"_id"`
	Email     string    `bson:"email"`
	Name      string    `bson:"name"`
	CreatedAt time.Time `bson:"created_at"`
	TypeName  string    `bson:"__typename"`
}

type MongoAdapter struct {
	Collection *mongo.Collection
}

func NewMongoAdapter(db *mongo.Database) *MongoAdapter {
	return &MongoAdapter{
		Collection: db.Collection(usersCollection),
	}
}

// EnsureIndexes creates the secondary indexes used for lookups by email.
func (m *MongoAdapter) EnsureIndexes(ctx context.Context) error {
	_, err := m.Collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "email", Value: 1}},
	})
	if err != nil {
		return fmt.Errorf("create users index: %w", err)
	}
	return nil
}

// PutUser upserts by user id, the same overwrite semantics as a key-value put.
func (m *MongoAdapter) PutUser(ctx context.Context, user domain.User) error {
	doc := userDocument{
		UserID:    user.ID,
		Email:     user.Email,
		Name:      user.Name,
		CreatedAt: user.CreatedAt,
		TypeName:  "User",
	}

	_, err := m.Collection.ReplaceOne(ctx,
		bson.M{"_id": user.ID},
		doc,
		options.Replace().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("%w: put user %s: %v", domain.ErrStoreUnavailable, user.ID, err)
	}
	return nil
}

func (m *MongoAdapter) GetUser(ctx context.Context, userID string) (*domain.User, error) {
	var doc userDocument

	err := m.Collection.FindOne(ctx, bson.M{"_id": userID}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: get user %s: %v", domain.ErrStoreUnavailable, userID, err)
	}

	return &domain.User{
		ID:        doc.UserID,
		Email:     doc.Email,
		Name:      doc.Name,
		CreatedAt: doc.CreatedAt,
	}, nil
}
