// Package inmem provides map-backed repositories for the service tests.
// They mirror the mongodb package's observable behavior, including the
// atomic claim and release semantics of the employee counters.
package inmem

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"crm-service/internal/domain/employee"
	xerrors "crm-service/internal/pkg/errors"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type EmployeeRepository struct {
	mu    sync.Mutex
	byID  map[string]*employee.Employee
	order []string
}

func NewEmployeeRepository() *EmployeeRepository {
	return &EmployeeRepository{byID: map[string]*employee.Employee{}}
}

func (r *EmployeeRepository) Create(_ context.Context, e *employee.Employee) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if e.ID.IsZero() {
		e.ID = bson.NewObjectID()
	}
	now := time.Now()
	if e.CreatedAt.IsZero() {
		e.CreatedAt = now
	}
	e.UpdatedAt = now

	cp := *e
	r.byID[e.ID.Hex()] = &cp
	r.order = append(r.order, e.ID.Hex())
	return nil
}

func (r *EmployeeRepository) FindByID(_ context.Context, id string) (*employee.Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.byID[id]
	if !ok {
		return nil, xerrors.ErrNotFound
	}
	cp := *e
	return &cp, nil
}

func (r *EmployeeRepository) FindByEmail(_ context.Context, email string) (*employee.Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, id := range r.order {
		if e, ok := r.byID[id]; ok && e.Email == email {
			cp := *e
			return &cp, nil
		}
	}
	return nil, xerrors.ErrNotFound
}

func (r *EmployeeRepository) FindAll(_ context.Context) ([]employee.Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := r.snapshot()
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *EmployeeRepository) FindActive(_ context.Context) ([]employee.Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []employee.Employee
	for _, e := range r.snapshot() {
		if e.Status == employee.StatusActive {
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Assigned > out[j].Assigned })
	return out, nil
}

func (r *EmployeeRepository) FindCreatedSince(_ context.Context, since time.Time) ([]employee.Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []employee.Employee
	for _, e := range r.snapshot() {
		if !e.CreatedAt.Before(since) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *EmployeeRepository) Update(_ context.Context, e *employee.Employee) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[e.ID.Hex()]; !ok {
		return xerrors.ErrNotFound
	}
	e.UpdatedAt = time.Now()
	cp := *e
	r.byID[e.ID.Hex()] = &cp
	return nil
}

func (r *EmployeeRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[id]; !ok {
		return xerrors.ErrNotFound
	}
	delete(r.byID, id)
	r.removeFromOrder(id)
	return nil
}

func (r *EmployeeRepository) DeleteMany(_ context.Context, ids []string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var n int64
	for _, id := range ids {
		if _, ok := r.byID[id]; ok {
			delete(r.byID, id)
			r.removeFromOrder(id)
			n++
		}
	}
	return n, nil
}

func (r *EmployeeRepository) CountActive(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var n int64
	for _, e := range r.byID {
		if e.Status == employee.StatusActive {
			n++
		}
	}
	return n, nil
}

func (r *EmployeeRepository) ClaimNextAssignable(_ context.Context, language string, maxOpen int) (*employee.Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, id := range r.order {
		e, ok := r.byID[id]
		if !ok {
			continue
		}
		if e.Status != employee.StatusActive {
			continue
		}
		if strings.ToLower(e.Language) != language {
			continue
		}
		if e.Assigned >= maxOpen {
			continue
		}
		e.Assigned++
		e.UpdatedAt = time.Now()
		cp := *e
		return &cp, nil
	}
	return nil, nil
}

func (r *EmployeeRepository) ReleaseAssignment(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.byID[id]
	if !ok {
		return xerrors.ErrNotFound
	}
	if e.Assigned > 0 {
		e.Assigned--
	}
	e.Closed++
	e.UpdatedAt = time.Now()
	return nil
}

func (r *EmployeeRepository) SetAllInactive(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var n int64
	for _, e := range r.byID {
		if e.Status == employee.StatusActive {
			e.Status = employee.StatusInactive
			e.UpdatedAt = time.Now()
			n++
		}
	}
	return n, nil
}

func (r *EmployeeRepository) snapshot() []employee.Employee {
	out := make([]employee.Employee, 0, len(r.order))
	for _, id := range r.order {
		if e, ok := r.byID[id]; ok {
			out = append(out, *e)
		}
	}
	return out
}

func (r *EmployeeRepository) removeFromOrder(id string) {
	for i, v := range r.order {
		if v == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			return
		}
	}
}
