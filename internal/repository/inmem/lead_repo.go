// internal/repository/inmem/lead_repo.go
package inmem

import (
	"context"
	"sort"
	"sync"
	"time"

	"crm-service/internal/domain/lead"
	xerrors "crm-service/internal/pkg/errors"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type LeadRepository struct {
	mu    sync.Mutex
	byID  map[string]*lead.Lead
	order []string
}

func NewLeadRepository() *LeadRepository {
	return &LeadRepository{byID: map[string]*lead.Lead{}}
}

func (r *LeadRepository) Create(_ context.Context, l *lead.Lead) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if l.ID.IsZero() {
		l.ID = bson.NewObjectID()
	}
	now := time.Now()
	if l.CreatedAt.IsZero() {
		l.CreatedAt = now
	}
	if l.UpdatedAt.IsZero() {
		l.UpdatedAt = l.CreatedAt
	}

	cp := *l
	r.byID[l.ID.Hex()] = &cp
	r.order = append(r.order, l.ID.Hex())
	return nil
}

// Seed stores a lead exactly as given, timestamps included.
func (r *LeadRepository) Seed(l lead.Lead) lead.Lead {
	r.mu.Lock()
	defer r.mu.Unlock()

	if l.ID.IsZero() {
		l.ID = bson.NewObjectID()
	}
	cp := l
	r.byID[l.ID.Hex()] = &cp
	r.order = append(r.order, l.ID.Hex())
	return l
}

func (r *LeadRepository) FindByID(_ context.Context, id string) (*lead.Lead, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	l, ok := r.byID[id]
	if !ok {
		return nil, xerrors.ErrNotFound
	}
	cp := *l
	return &cp, nil
}

func (r *LeadRepository) Update(_ context.Context, l *lead.Lead) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[l.ID.Hex()]; !ok {
		return xerrors.ErrNotFound
	}
	l.UpdatedAt = time.Now()
	cp := *l
	r.byID[l.ID.Hex()] = &cp
	return nil
}

func (r *LeadRepository) FindAllWithAssignee(_ context.Context) ([]lead.WithAssignee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	leads := r.snapshot()
	sort.SliceStable(leads, func(i, j int) bool { return leads[i].CreatedAt.After(leads[j].CreatedAt) })

	out := make([]lead.WithAssignee, 0, len(leads))
	for _, l := range leads {
		out = append(out, lead.WithAssignee{Lead: l})
	}
	return out, nil
}

func (r *LeadRepository) FindByAssignee(_ context.Context, employeeID string) ([]lead.Lead, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []lead.Lead
	for _, l := range r.snapshot() {
		if l.AssignedTo != nil && l.AssignedTo.Hex() == employeeID {
			out = append(out, l)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *LeadRepository) FindScheduledByAssignee(_ context.Context, employeeID string) ([]lead.Lead, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []lead.Lead
	for _, l := range r.snapshot() {
		if l.AssignedTo != nil && l.AssignedTo.Hex() == employeeID && l.ScheduleDate != nil {
			out = append(out, l)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].ScheduleDate.Before(*out[j].ScheduleDate) })
	return out, nil
}

func (r *LeadRepository) CountUnassigned(_ context.Context) (int64, error) {
	return r.count(func(l *lead.Lead) bool { return l.AssignedTo == nil })
}

func (r *LeadRepository) CountAssigned(_ context.Context) (int64, error) {
	return r.count(func(l *lead.Lead) bool { return l.AssignedTo != nil })
}

func (r *LeadRepository) CountAssignedSince(_ context.Context, since time.Time) (int64, error) {
	return r.count(func(l *lead.Lead) bool {
		return l.AssignedTo != nil && !l.CreatedAt.Before(since)
	})
}

func (r *LeadRepository) CountClosed(_ context.Context) (int64, error) {
	return r.count(func(l *lead.Lead) bool { return l.IsClosed() })
}

func (r *LeadRepository) FindRecent(_ context.Context, limit int) ([]lead.Lead, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := r.snapshot()
	sort.SliceStable(out, func(i, j int) bool { return out[i].UpdatedAt.After(out[j].UpdatedAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *LeadRepository) FindSince(_ context.Context, since time.Time) ([]lead.Lead, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []lead.Lead
	for _, l := range r.snapshot() {
		if !l.CreatedAt.Before(since) || !l.UpdatedAt.Before(since) {
			out = append(out, l)
		}
	}
	return out, nil
}

func (r *LeadRepository) count(match func(*lead.Lead) bool) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var n int64
	for _, l := range r.byID {
		if match(l) {
			n++
		}
	}
	return n, nil
}

func (r *LeadRepository) snapshot() []lead.Lead {
	out := make([]lead.Lead, 0, len(r.order))
	for _, id := range r.order {
		if l, ok := r.byID[id]; ok {
			out = append(out, *l)
		}
	}
	return out
}
