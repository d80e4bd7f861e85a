// internal/repository/mongodb/employee_repo.go
package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"crm-service/internal/domain/employee"
	xerrors "crm-service/internal/pkg/errors"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

type EmployeeRepository struct {
	coll *mongo.Collection
}

func NewEmployeeRepository(db *mongo.Database) *EmployeeRepository {
	return &EmployeeRepository{coll: db.Collection(CollectionEmployees)}
}

func (r *EmployeeRepository) Create(ctx context.Context, e *employee.Employee) error {
	now := time.Now()
	e.CreatedAt = now
	e.UpdatedAt = now

	res, err := r.coll.InsertOne(ctx, e)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return xerrors.ErrConflict
		}
		return fmt.Errorf("failed to insert employee: %w", err)
	}
	if oid, ok := res.InsertedID.(bson.ObjectID); ok {
		e.ID = oid
	}
	return nil
}

func (r *EmployeeRepository) FindByID(ctx context.Context, id string) (*employee.Employee, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, xerrors.ErrNotFound
	}

	var e employee.Employee
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&e); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, xerrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find employee: %w", err)
	}
	return &e, nil
}

func (r *EmployeeRepository) FindByEmail(ctx context.Context, email string) (*employee.Employee, error) {
	var e employee.Employee
	if err := r.coll.FindOne(ctx, bson.M{"email": email}).Decode(&e); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, xerrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find employee by email: %w", err)
	}
	return &e, nil
}

func (r *EmployeeRepository) FindAll(ctx context.Context) ([]employee.Employee, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	return r.find(ctx, bson.M{}, opts)
}

func (r *EmployeeRepository) FindActive(ctx context.Context) ([]employee.Employee, error) {
	opts := options.Find().SetSort(bson.D{{Key: "assigned", Value: -1}})
	return r.find(ctx, bson.M{"status": employee.StatusActive}, opts)
}

func (r *EmployeeRepository) FindCreatedSince(ctx context.Context, since time.Time) ([]employee.Employee, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	return r.find(ctx, bson.M{"created_at": bson.M{"$gte": since}}, opts)
}

func (r *EmployeeRepository) find(ctx context.Context, filter bson.M, opts *options.FindOptionsBuilder) ([]employee.Employee, error) {
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query employees: %w", err)
	}
	defer cursor.Close(ctx)

	var out []employee.Employee
	if err := cursor.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("failed to decode employees: %w", err)
	}
	return out, nil
}

func (r *EmployeeRepository) Update(ctx context.Context, e *employee.Employee) error {
	e.UpdatedAt = time.Now()

	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": e.ID}, e)
	if err != nil {
		return fmt.Errorf("failed to update employee: %w", err)
	}
	if res.MatchedCount == 0 {
		return xerrors.ErrNotFound
	}
	return nil
}

func (r *EmployeeRepository) Delete(ctx context.Context, id string) error {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return xerrors.ErrNotFound
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("failed to delete employee: %w", err)
	}
	if res.DeletedCount == 0 {
		return xerrors.ErrNotFound
	}
	return nil
}

func (r *EmployeeRepository) DeleteMany(ctx context.Context, ids []string) (int64, error) {
	oids := make([]bson.ObjectID, 0, len(ids))
	for _, id := range ids {
		oid, err := bson.ObjectIDFromHex(id)
		if err != nil {
			continue
		}
		oids = append(oids, oid)
	}
	if len(oids) == 0 {
		return 0, nil
	}

	res, err := r.coll.DeleteMany(ctx, bson.M{"_id": bson.M{"$in": oids}})
	if err != nil {
		return 0, fmt.Errorf("failed to bulk delete employees: %w", err)
	}
	return res.DeletedCount, nil
}

func (r *EmployeeRepository) CountActive(ctx context.Context) (int64, error) {
	return r.coll.CountDocuments(ctx, bson.M{"status": employee.StatusActive})
}

// ClaimNextAssignable claims the first Active employee matching the language
// with spare capacity. The filter and increment run as one findAndModify, so
// two concurrent assignments cannot push anyone past the cap.
func (r *EmployeeRepository) ClaimNextAssignable(ctx context.Context, language string, maxOpen int) (*employee.Employee, error) {
	filter := bson.M{
		"status":   employee.StatusActive,
		"language": language,
		"assigned": bson.M{"$lt": maxOpen},
	}
	update := bson.M{
		"$inc": bson.M{"assigned": 1},
		"$set": bson.M{"updated_at": time.Now()},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var e employee.Employee
	if err := r.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&e); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to claim employee for assignment: %w", err)
	}
	return &e, nil
}

// ReleaseAssignment settles counters when a lead closes: assigned is only
// decremented while positive, closed always goes up by one.
func (r *EmployeeRepository) ReleaseAssignment(ctx context.Context, id string) error {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return xerrors.ErrNotFound
	}
	now := time.Now()

	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": oid, "assigned": bson.M{"$gt": 0}},
		bson.M{"$inc": bson.M{"assigned": -1, "closed": 1}, "$set": bson.M{"updated_at": now}},
	)
	if err != nil {
		return fmt.Errorf("failed to release assignment: %w", err)
	}
	if res.MatchedCount > 0 {
		return nil
	}

	// Counter already at zero: still record the close.
	res, err = r.coll.UpdateOne(ctx,
		bson.M{"_id": oid},
		bson.M{"$inc": bson.M{"closed": 1}, "$set": bson.M{"updated_at": now}},
	)
	if err != nil {
		return fmt.Errorf("failed to record closed lead: %w", err)
	}
	if res.MatchedCount == 0 {
		return xerrors.ErrNotFound
	}
	return nil
}

func (r *EmployeeRepository) SetAllInactive(ctx context.Context) (int64, error) {
	res, err := r.coll.UpdateMany(ctx,
		bson.M{"status": employee.StatusActive},
		bson.M{"$set": bson.M{"status": employee.StatusInactive, "updated_at": time.Now()}},
	)
	if err != nil {
		return 0, fmt.Errorf("failed to reset employee statuses: %w", err)
	}
	return res.ModifiedCount, nil
}
