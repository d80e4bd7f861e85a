// internal/repository/mongodb/lead_repo.go
package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"crm-service/internal/domain/lead"
	xerrors "crm-service/internal/pkg/errors"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

type LeadRepository struct {
	coll *mongo.Collection
}

func NewLeadRepository(db *mongo.Database) *LeadRepository {
	return &LeadRepository{coll: db.Collection(CollectionLeads)}
}

func (r *LeadRepository) Create(ctx context.Context, l *lead.Lead) error {
	now := time.Now()
	l.CreatedAt = now
	l.UpdatedAt = now

	res, err := r.coll.InsertOne(ctx, l)
	if err != nil {
		return fmt.Errorf("failed to insert lead: %w", err)
	}
	if oid, ok := res.InsertedID.(bson.ObjectID); ok {
		l.ID = oid
	}
	return nil
}

func (r *LeadRepository) FindByID(ctx context.Context, id string) (*lead.Lead, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, xerrors.ErrNotFound
	}

	var l lead.Lead
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&l); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, xerrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find lead: %w", err)
	}
	return &l, nil
}

func (r *LeadRepository) Update(ctx context.Context, l *lead.Lead) error {
	l.UpdatedAt = time.Now()

	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": l.ID}, l)
	if err != nil {
		return fmt.Errorf("failed to update lead: %w", err)
	}
	if res.MatchedCount == 0 {
		return xerrors.ErrNotFound
	}
	return nil
}

// FindAllWithAssignee joins each lead with its assignee's display name and
// employee reference, newest lead first.
func (r *LeadRepository) FindAllWithAssignee(ctx context.Context) ([]lead.WithAssignee, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$sort", Value: bson.D{{Key: "created_at", Value: -1}}}},
		bson.D{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: CollectionEmployees},
			{Key: "localField", Value: "assigned_to"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "assignee"},
		}}},
		bson.D{{Key: "$unwind", Value: bson.D{
			{Key: "path", Value: "$assignee"},
			{Key: "preserveNullAndEmptyArrays", Value: true},
		}}},
		bson.D{{Key: "$addFields", Value: bson.D{
			{Key: "assignee_name", Value: bson.D{{Key: "$concat", Value: bson.A{
				"$assignee.first_name", " ", "$assignee.last_name",
			}}}},
			{Key: "assignee_employee_id", Value: "$assignee.employee_id"},
		}}},
		bson.D{{Key: "$project", Value: bson.D{{Key: "assignee", Value: 0}}}},
	}

	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate leads: %w", err)
	}
	defer cursor.Close(ctx)

	var out []lead.WithAssignee
	if err := cursor.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("failed to decode leads: %w", err)
	}
	return out, nil
}

func (r *LeadRepository) FindByAssignee(ctx context.Context, employeeID string) ([]lead.Lead, error) {
	oid, err := bson.ObjectIDFromHex(employeeID)
	if err != nil {
		return nil, xerrors.ErrNotFound
	}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	return r.find(ctx, bson.M{"assigned_to": oid}, opts)
}

func (r *LeadRepository) FindScheduledByAssignee(ctx context.Context, employeeID string) ([]lead.Lead, error) {
	oid, err := bson.ObjectIDFromHex(employeeID)
	if err != nil {
		return nil, xerrors.ErrNotFound
	}
	filter := bson.M{
		"assigned_to":   oid,
		"schedule_date": bson.M{"$ne": nil},
	}
	opts := options.Find().SetSort(bson.D{{Key: "schedule_date", Value: 1}})
	return r.find(ctx, filter, opts)
}

func (r *LeadRepository) CountUnassigned(ctx context.Context) (int64, error) {
	return r.coll.CountDocuments(ctx, bson.M{"assigned_to": nil})
}

func (r *LeadRepository) CountAssigned(ctx context.Context) (int64, error) {
	return r.coll.CountDocuments(ctx, bson.M{"assigned_to": bson.M{"$ne": nil}})
}

func (r *LeadRepository) CountAssignedSince(ctx context.Context, since time.Time) (int64, error) {
	return r.coll.CountDocuments(ctx, bson.M{
		"assigned_to": bson.M{"$ne": nil},
		"created_at":  bson.M{"$gte": since},
	})
}

func (r *LeadRepository) CountClosed(ctx context.Context) (int64, error) {
	return r.coll.CountDocuments(ctx, bson.M{"status": lead.StatusClosed})
}

func (r *LeadRepository) FindRecent(ctx context.Context, limit int) ([]lead.Lead, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "updated_at", Value: -1}}).
		SetLimit(int64(limit))
	return r.find(ctx, bson.M{}, opts)
}

func (r *LeadRepository) FindSince(ctx context.Context, since time.Time) ([]lead.Lead, error) {
	filter := bson.M{"$or": bson.A{
		bson.M{"created_at": bson.M{"$gte": since}},
		bson.M{"updated_at": bson.M{"$gte": since}},
	}}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	return r.find(ctx, filter, opts)
}

func (r *LeadRepository) find(ctx context.Context, filter bson.M, opts *options.FindOptionsBuilder) ([]lead.Lead, error) {
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query leads: %w", err)
	}
	defer cursor.Close(ctx)

	var out []lead.Lead
	if err := cursor.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("failed to decode leads: %w", err)
	}
	return out, nil
}
