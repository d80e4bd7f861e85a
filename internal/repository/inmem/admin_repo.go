// internal/repository/inmem/admin_repo.go
package inmem

import (
	"context"
	"sync"
	"time"

	"crm-service/internal/domain/admin"
	xerrors "crm-service/internal/pkg/errors"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type AdminRepository struct {
	mu     sync.Mutex
	admins []*admin.Admin
}

func NewAdminRepository() *AdminRepository {
	return &AdminRepository{}
}

func (r *AdminRepository) Create(_ context.Context, a *admin.Admin) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if a.ID.IsZero() {
		a.ID = bson.NewObjectID()
	}
	now := time.Now()
	if a.CreatedAt.IsZero() {
		a.CreatedAt = now
	}
	a.UpdatedAt = now

	cp := *a
	r.admins = append(r.admins, &cp)
	return nil
}

func (r *AdminRepository) Update(_ context.Context, a *admin.Admin) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, existing := range r.admins {
		if existing.ID == a.ID {
			a.UpdatedAt = time.Now()
			cp := *a
			r.admins[i] = &cp
			return nil
		}
	}
	return xerrors.ErrNotFound
}

func (r *AdminRepository) FindByEmail(_ context.Context, email string) (*admin.Admin, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, a := range r.admins {
		if a.Email == email {
			cp := *a
			return &cp, nil
		}
	}
	return nil, xerrors.ErrNotFound
}

func (r *AdminRepository) FindFirst(_ context.Context) (*admin.Admin, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.admins) == 0 {
		return nil, xerrors.ErrNotFound
	}
	cp := *r.admins[0]
	return &cp, nil
}
