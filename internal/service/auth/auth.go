// internal/service/auth/auth.go
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"crm-service/internal/domain/admin"
	"crm-service/internal/domain/employee"
	xerrors "crm-service/internal/pkg/errors"
	"crm-service/internal/pkg/jwt"
	"crm-service/internal/pkg/session"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const (
	RoleAdmin    = "admin"
	RoleEmployee = "employee"
)

type AuthService struct {
	admins    admin.Repository
	employees employee.Repository
	tokens    *jwt.Manager
	sessions  *session.Manager
	logger    *zap.Logger
}

func NewAuthService(
	admins admin.Repository,
	employees employee.Repository,
	tokens *jwt.Manager,
	sessions *session.Manager,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		admins:    admins,
		employees: employees,
		tokens:    tokens,
		sessions:  sessions,
		logger:    logger,
	}
}

// EmployeeLogin validates the mobile app's login rule (the password must
// equal the email) and issues a session token.
func (s *AuthService) EmployeeLogin(ctx context.Context, email, password string) (string, *employee.Employee, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	emp, err := s.employees.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, xerrors.ErrNotFound) {
			return "", nil, fmt.Errorf("%w: user not found", xerrors.ErrNotFound)
		}
		return "", nil, err
	}

	if password != emp.Email {
		return "", nil, fmt.Errorf("%w: invalid password", xerrors.ErrUnauthorized)
	}

	token, err := s.issueToken(ctx, emp.ID.Hex(), emp.Email, RoleEmployee)
	if err != nil {
		return "", nil, err
	}

	s.logger.Info("employee logged in", zap.String("employee_id", emp.EmployeeID))
	return token, emp, nil
}

// AdminLogin checks the console password against the stored bcrypt hash.
func (s *AuthService) AdminLogin(ctx context.Context, email, password string) (string, *admin.Admin, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	a, err := s.admins.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, xerrors.ErrNotFound) {
			return "", nil, fmt.Errorf("%w: admin not found", xerrors.ErrNotFound)
		}
		return "", nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(password)); err != nil {
		return "", nil, fmt.Errorf("%w: invalid password", xerrors.ErrUnauthorized)
	}

	token, err := s.issueToken(ctx, a.ID.Hex(), a.Email, RoleAdmin)
	if err != nil {
		return "", nil, err
	}

	s.logger.Info("admin logged in", zap.String("email", a.Email))
	return token, a, nil
}

// ValidateToken verifies the JWT and requires a live session behind it.
func (s *AuthService) ValidateToken(ctx context.Context, token string) (*jwt.Claims, error) {
	claims, err := s.tokens.Verify(token)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", xerrors.ErrUnauthorized, err)
	}
	if _, err := s.sessions.GetSession(ctx, claims.IdentityID, claims.ID); err != nil {
		return nil, fmt.Errorf("%w: session expired", xerrors.ErrUnauthorized)
	}
	return claims, nil
}

// EnsureAdminExists seeds the console admin account on startup.
func (s *AuthService) EnsureAdminExists(ctx context.Context, email, password, firstName, lastName string) error {
	email = strings.ToLower(strings.TrimSpace(email))

	if _, err := s.admins.FindByEmail(ctx, email); err == nil {
		return nil
	} else if !errors.Is(err, xerrors.ErrNotFound) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	a := &admin.Admin{
		FirstName:    firstName,
		LastName:     lastName,
		Email:        email,
		PasswordHash: string(hash),
	}
	if err := s.admins.Create(ctx, a); err != nil {
		return err
	}

	s.logger.Info("admin account seeded", zap.String("email", email))
	return nil
}

// Settings returns the console admin's profile.
func (s *AuthService) Settings(ctx context.Context) (*admin.SettingsResponse, error) {
	a, err := s.admins.FindFirst(ctx)
	if err != nil {
		return nil, err
	}
	return &admin.SettingsResponse{
		FirstName: a.FirstName,
		LastName:  a.LastName,
		Email:     a.Email,
	}, nil
}

// UpdateSettings edits the admin profile; a blank password keeps the
// current one.
func (s *AuthService) UpdateSettings(ctx context.Context, req *admin.UpdateSettingsRequest) error {
	a, err := s.admins.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		return err
	}

	a.FirstName = strings.TrimSpace(req.FirstName)
	a.LastName = strings.TrimSpace(req.LastName)

	if strings.TrimSpace(req.Password) != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("failed to hash admin password: %w", err)
		}
		a.PasswordHash = string(hash)
	}

	return s.admins.Update(ctx, a)
}

func (s *AuthService) issueToken(ctx context.Context, identityID, email, role string) (string, error) {
	token, jti, err := s.tokens.Generate(identityID, email, role)
	if err != nil {
		return "", fmt.Errorf("failed to issue token: %w", err)
	}

	now := time.Now()
	err = s.sessions.CreateSession(ctx, &session.SessionData{
		JTI:        jti,
		IdentityID: identityID,
		Email:      email,
		Role:       role,
		LoginAt:    now,
		ExpiresAt:  now.Add(s.tokens.TTL()),
	})
	if err != nil {
		return "", fmt.Errorf("failed to store session: %w", err)
	}
	return token, nil
}
