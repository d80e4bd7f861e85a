// internal/domain/employee/repository.go
package employee

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, e *Employee) error
	FindByID(ctx context.Context, id string) (*Employee, error)
	FindByEmail(ctx context.Context, email string) (*Employee, error)
	FindAll(ctx context.Context) ([]Employee, error)
	// FindActive returns Active employees sorted busiest first.
	FindActive(ctx context.Context) ([]Employee, error)
	FindCreatedSince(ctx context.Context, since time.Time) ([]Employee, error)
	Update(ctx context.Context, e *Employee) error
	Delete(ctx context.Context, id string) error
	DeleteMany(ctx context.Context, ids []string) (int64, error)
	CountActive(ctx context.Context) (int64, error)

	// ClaimNextAssignable atomically picks the first Active employee whose
	// language matches and whose open-lead counter is below cap, and
	// increments that counter. Returns (nil, nil) when nobody is eligible.
	ClaimNextAssignable(ctx context.Context, language string, maxOpen int) (*Employee, error)

	// ReleaseAssignment decrements the open-lead counter (never below zero)
	// and increments the closed counter, both atomically.
	ReleaseAssignment(ctx context.Context, id string) error

	// SetAllInactive flips every employee to Inactive (midnight reset).
	SetAllInactive(ctx context.Context) (int64, error)
}
