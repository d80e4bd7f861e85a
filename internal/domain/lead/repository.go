// internal/domain/lead/repository.go
package lead

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, l *Lead) error
	FindByID(ctx context.Context, id string) (*Lead, error)
	Update(ctx context.Context, l *Lead) error

	// FindAllWithAssignee resolves assignee name and employee reference for
	// the admin table, newest first.
	FindAllWithAssignee(ctx context.Context) ([]WithAssignee, error)
	FindByAssignee(ctx context.Context, employeeID string) ([]Lead, error)
	// FindScheduledByAssignee returns the assignee's leads carrying a
	// schedule date, soonest first.
	FindScheduledByAssignee(ctx context.Context, employeeID string) ([]Lead, error)

	// Dashboard counters.
	CountUnassigned(ctx context.Context) (int64, error)
	CountAssigned(ctx context.Context) (int64, error)
	CountAssignedSince(ctx context.Context, since time.Time) (int64, error)
	CountClosed(ctx context.Context) (int64, error)

	// FindRecent returns leads ordered by last update, newest first.
	FindRecent(ctx context.Context, limit int) ([]Lead, error)
	// FindSince returns leads created or updated at/after since.
	FindSince(ctx context.Context, since time.Time) ([]Lead, error)
}
