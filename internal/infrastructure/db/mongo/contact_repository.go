package mongo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/ignitecapital/funding-platform/internal/core/domain"
)

const contactCollection = "contact_messages"

// ContactRepository implements ports.ContactRepository using MongoDB.
type ContactRepository struct {
	coll *mongo.Collection
}

func NewContactRepository(db *mongo.Database) *ContactRepository {
	return &ContactRepository{coll: db.Collection(contactCollection)}
}

func (r *ContactRepository) Create(ctx context.Context, msg *domain.ContactMessage) (*domain.ContactMessage, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	msg.ID = uuid.NewString()
	if _, err := r.coll.InsertOne(ctx, msg); err != nil {
		return nil, fmt.Errorf("insert contact message: %w", err)
	}
	return msg, nil
}

func (r *ContactRepository) FindByID(ctx context.Context, id string) (*domain.ContactMessage, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var msg domain.ContactMessage
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&msg); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrContactNotFound
		}
		return nil, fmt.Errorf("find contact message: %w", err)
	}
	return &msg, nil
}

// List returns all messages, newest first.
func (r *ContactRepository) List(ctx context.Context) ([]*domain.ContactMessage, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list contact messages: %w", err)
	}
	defer cur.Close(ctx)

	var msgs []*domain.ContactMessage
	for cur.Next(ctx) {
		var msg domain.ContactMessage
		if err := cur.Decode(&msg); err != nil {
			return nil, fmt.Errorf("decode contact message: %w", err)
		}
		msgs = append(msgs, &msg)
	}
	return msgs, cur.Err()
}

func (r *ContactRepository) SetResponded(ctx context.Context, id string, responded bool) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"responded": responded}})
	if err != nil {
		return fmt.Errorf("update contact message: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrContactNotFound
	}
	return nil
}
