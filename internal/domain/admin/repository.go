// internal/domain/admin/repository.go
package admin

import "context"

type Repository interface {
	Create(ctx context.Context, a *Admin) error
	Update(ctx context.Context, a *Admin) error
	FindByEmail(ctx context.Context, email string) (*Admin, error)
	// FindFirst returns the console admin account (single-admin system).
	FindFirst(ctx context.Context) (*Admin, error)
}
