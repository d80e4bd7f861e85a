// internal/repository/mongodb/admin_repo.go
package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"crm-service/internal/domain/admin"
	xerrors "crm-service/internal/pkg/errors"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

type AdminRepository struct {
	coll *mongo.Collection
}

func NewAdminRepository(db *mongo.Database) *AdminRepository {
	return &AdminRepository{coll: db.Collection(CollectionAdmins)}
}

func (r *AdminRepository) Create(ctx context.Context, a *admin.Admin) error {
	now := time.Now()
	a.CreatedAt = now
	a.UpdatedAt = now

	res, err := r.coll.InsertOne(ctx, a)
	if err != nil {
		return fmt.Errorf("failed to insert admin: %w", err)
	}
	if oid, ok := res.InsertedID.(bson.ObjectID); ok {
		a.ID = oid
	}
	return nil
}

func (r *AdminRepository) Update(ctx context.Context, a *admin.Admin) error {
	a.UpdatedAt = time.Now()

	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": a.ID}, a)
	if err != nil {
		return fmt.Errorf("failed to update admin: %w", err)
	}
	if res.MatchedCount == 0 {
		return xerrors.ErrNotFound
	}
	return nil
}

func (r *AdminRepository) FindByEmail(ctx context.Context, email string) (*admin.Admin, error) {
	var a admin.Admin
	if err := r.coll.FindOne(ctx, bson.M{"email": email}).Decode(&a); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, xerrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find admin: %w", err)
	}
	return &a, nil
}

func (r *AdminRepository) FindFirst(ctx context.Context) (*admin.Admin, error) {
	var a admin.Admin
	if err := r.coll.FindOne(ctx, bson.M{}).Decode(&a); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, xerrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find admin: %w", err)
	}
	return &a, nil
}
