// internal/service/employee/employee.go
package employee

import (
	"context"
	"errors"
	"fmt"
	"strings"

	domain "crm-service/internal/domain/employee"
	xerrors "crm-service/internal/pkg/errors"

	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"
)

const (
	defaultRole     = "Sales"
	defaultLocation = "New York"
	defaultLanguage = "english"
)

// Service is the admin-facing employee directory.
type Service struct {
	employees domain.Repository
	logger    *zap.Logger
}

func NewService(employees domain.Repository, logger *zap.Logger) *Service {
	return &Service{employees: employees, logger: logger}
}

// Create registers a new employee. Email and language are stored lowercased
// so logins and lead routing can match exactly.
func (s *Service) Create(ctx context.Context, req *domain.CreateEmployeeRequest) (*domain.Employee, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	if _, err := s.employees.FindByEmail(ctx, email); err == nil {
		return nil, fmt.Errorf("%w: employee with this email already exists", xerrors.ErrConflict)
	} else if !errors.Is(err, xerrors.ErrNotFound) {
		return nil, err
	}

	e := &domain.Employee{
		FirstName:  strings.TrimSpace(req.FirstName),
		LastName:   strings.TrimSpace(req.LastName),
		EmployeeID: "EMP-" + ulid.Make().String(),
		Email:      email,
		Role:       defaultRole,
		Status:     domain.StatusActive,
		Location:   valueOr(req.Location, defaultLocation),
		Language:   strings.ToLower(valueOr(req.Language, defaultLanguage)),
	}

	if err := s.employees.Create(ctx, e); err != nil {
		return nil, err
	}

	s.logger.Info("employee added",
		zap.String("employee_id", e.EmployeeID),
		zap.String("language", e.Language),
	)
	return e, nil
}

func (s *Service) List(ctx context.Context) ([]domain.Employee, error) {
	return s.employees.FindAll(ctx)
}

// Edit updates the fields the admin console may change.
func (s *Service) Edit(ctx context.Context, req *domain.EditEmployeeRequest) (*domain.Employee, error) {
	e, err := s.employees.FindByID(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	e.FirstName = strings.TrimSpace(req.FirstName)
	e.LastName = strings.TrimSpace(req.LastName)
	if req.Location != "" {
		e.Location = req.Location
	}

	if err := s.employees.Update(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

// Delete removes one employee or, when IDs is set, a whole batch. Returns
// how many records went away.
func (s *Service) Delete(ctx context.Context, req *domain.DeleteEmployeeRequest) (int64, error) {
	if len(req.IDs) > 0 {
		n, err := s.employees.DeleteMany(ctx, req.IDs)
		if err != nil {
			return 0, err
		}
		s.logger.Info("employees bulk deleted", zap.Int64("count", n))
		return n, nil
	}
	if req.ID == "" {
		return 0, fmt.Errorf("%w: no ids provided", xerrors.ErrInvalidInput)
	}
	if err := s.employees.Delete(ctx, req.ID); err != nil {
		return 0, err
	}
	return 1, nil
}

// SetStatus flips an employee between Active and Inactive from the admin
// console. Inactive employees are skipped by lead routing.
func (s *Service) SetStatus(ctx context.Context, id, status string) (*domain.Employee, error) {
	if status != domain.StatusActive && status != domain.StatusInactive {
		return nil, fmt.Errorf("%w: unknown status %q", xerrors.ErrInvalidInput, status)
	}

	e, err := s.employees.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	e.Status = status
	if err := s.employees.Update(ctx, e); err != nil {
		return nil, err
	}

	s.logger.Info("employee status changed",
		zap.String("employee_id", e.EmployeeID),
		zap.String("status", status),
	)
	return e, nil
}

// UpdateProfile lets an employee change their own display name.
func (s *Service) UpdateProfile(ctx context.Context, id string, req *domain.UpdateProfileRequest) (*domain.Employee, error) {
	e, err := s.employees.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	e.FirstName = strings.TrimSpace(req.FirstName)
	e.LastName = strings.TrimSpace(req.LastName)

	if err := s.employees.Update(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

func valueOr(v, fallback string) string {
	if strings.TrimSpace(v) == "" {
		return fallback
	}
	return strings.TrimSpace(v)
}
