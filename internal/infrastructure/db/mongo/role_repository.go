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

const collectionRoles = "client_user_roles"

// RoleRepository implements ports.RoleRepository using MongoDB.
type RoleRepository struct {
	col *mongo.Collection
}

func NewRoleRepository(db *mongo.Database) *RoleRepository {
	return &RoleRepository{col: db.Collection(collectionRoles)}
}

// Upsert writes the access-role entry keyed on user_id. Repeated calls leave
// exactly one document per user; email, role, and client_id take the last
// written values.
func (r *RoleRepository) Upsert(ctx context.Context, entry *domain.AccessRoleEntry) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	now := time.Now().UTC()
	update := bson.M{
		"$set": bson.M{
			"email":      entry.Email,
			"role":       entry.Role,
			"client_id":  entry.ClientID,
			"updated_at": now,
		},
		"$setOnInsert": bson.M{
			"user_id":    entry.UserID,
			"created_at": now,
		},
	}

	_, err := r.col.UpdateOne(
		ctx,
		bson.M{"user_id": entry.UserID},
		update,
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("upsert access role: %w", err)
	}
	return nil
}

// EnsureIndexes creates the unique index backing the upsert conflict key.
func (r *RoleRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "user_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}
