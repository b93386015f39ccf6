package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/camaleon/crm-api/internal/core/domain"
)

const collectionActivity = "client_activity"

// ActivityRepository implements ports.ActivityRepository using MongoDB.
type ActivityRepository struct {
	col *mongo.Collection
}

func NewActivityRepository(db *mongo.Database) *ActivityRepository {
	return &ActivityRepository{col: db.Collection(collectionActivity)}
}

func (r *ActivityRepository) Insert(ctx context.Context, entry *domain.ActivityEntry) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := bson.M{
		"client_id": entry.ClientID,
		"action":    entry.Action,
		"at":        entry.At.UTC(),
	}
	if entry.ContactID != "" {
		doc["contact_id"] = entry.ContactID
	}
	if entry.Actor != "" {
		doc["actor"] = entry.Actor
	}
	if entry.Detail != "" {
		doc["detail"] = entry.Detail
	}

	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert activity: %w", err)
	}
	return nil
}

func (r *ActivityRepository) ListByClient(ctx context.Context, clientID string, limit int) ([]*domain.ActivityEntry, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(
		ctx,
		bson.M{"client_id": clientID},
		options.Find().SetSort(bson.D{{Key: "at", Value: -1}}).SetLimit(int64(limit)),
	)
	if err != nil {
		return nil, fmt.Errorf("list activity: %w", err)
	}
	defer cur.Close(ctx)

	var entries []*domain.ActivityEntry
	for cur.Next(ctx) {
		var doc struct {
			ClientID  string    `bson:"client_id"`
			ContactID string    `bson:"contact_id,omitempty"`
			Action    string    `bson:"action"`
			Actor     string    `bson:"actor,omitempty"`
			Detail    string    `bson:"detail,omitempty"`
			At        time.Time `bson:"at"`
		}
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode activity: %w", err)
		}
		entries = append(entries, &domain.ActivityEntry{
			ClientID:  doc.ClientID,
			ContactID: doc.ContactID,
			Action:    doc.Action,
			Actor:     doc.Actor,
			Detail:    doc.Detail,
			At:        doc.At.UTC(),
		})
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("list activity: %w", err)
	}
	return entries, nil
}
