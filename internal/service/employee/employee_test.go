// internal/service/employee/employee_test.go
package employee

import (
	"context"
	"strings"
	"testing"

	domain "crm-service/internal/domain/employee"
	xerrors "crm-service/internal/pkg/errors"
	"crm-service/internal/repository/inmem"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestService(t *testing.T) (*Service, *inmem.EmployeeRepository) {
	t.Helper()
	repo := inmem.NewEmployeeRepository()
	return NewService(repo, zap.NewNop()), repo
}

func TestCreateAppliesDefaults(t *testing.T) {
	svc, _ := newTestService(t)

	e, err := svc.Create(context.Background(), &domain.CreateEmployeeRequest{
		FirstName: "Alice",
		LastName:  "Tester",
		Email:     "Alice@Example.COM",
	})
	require.NoError(t, err)

	assert.Equal(t, "alice@example.com", e.Email)
	assert.Equal(t, "Sales", e.Role)
	assert.Equal(t, "New York", e.Location)
	assert.Equal(t, "english", e.Language)
	assert.Equal(t, domain.StatusActive, e.Status)
	assert.True(t, strings.HasPrefix(e.EmployeeID, "EMP-"))
	assert.Zero(t, e.Assigned)
}

func TestCreateLowercasesLanguage(t *testing.T) {
	svc, _ := newTestService(t)

	e, err := svc.Create(context.Background(), &domain.CreateEmployeeRequest{
		FirstName: "Helga",
		LastName:  "Tester",
		Email:     "helga@example.com",
		Language:  "German",
	})
	require.NoError(t, err)
	assert.Equal(t, "german", e.Language)
}

func TestCreateRejectsDuplicateEmail(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, &domain.CreateEmployeeRequest{FirstName: "Alice", LastName: "Tester", Email: "alice@example.com"})
	require.NoError(t, err)

	_, err = svc.Create(ctx, &domain.CreateEmployeeRequest{FirstName: "Alicia", LastName: "Other", Email: "ALICE@example.com"})
	require.ErrorIs(t, err, xerrors.ErrConflict)
}

func TestDeleteSingle(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()

	e, err := svc.Create(ctx, &domain.CreateEmployeeRequest{FirstName: "Alice", LastName: "Tester", Email: "alice@example.com"})
	require.NoError(t, err)

	n, err := svc.Delete(ctx, &domain.DeleteEmployeeRequest{ID: e.ID.Hex()})
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	_, err = repo.FindByID(ctx, e.ID.Hex())
	require.ErrorIs(t, err, xerrors.ErrNotFound)
}

func TestDeleteBulkCountsOnlyExisting(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	a, err := svc.Create(ctx, &domain.CreateEmployeeRequest{FirstName: "Alice", LastName: "Tester", Email: "alice@example.com"})
	require.NoError(t, err)
	b, err := svc.Create(ctx, &domain.CreateEmployeeRequest{FirstName: "Bob", LastName: "Tester", Email: "bob@example.com"})
	require.NoError(t, err)

	n, err := svc.Delete(ctx, &domain.DeleteEmployeeRequest{IDs: []string{a.ID.Hex(), b.ID.Hex(), "64f000000000000000000000"}})
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
}

func TestDeleteWithoutIDs(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Delete(context.Background(), &domain.DeleteEmployeeRequest{})
	require.ErrorIs(t, err, xerrors.ErrInvalidInput)
}

func TestSetStatusFlipsEligibility(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()

	e, err := svc.Create(ctx, &domain.CreateEmployeeRequest{FirstName: "Alice", LastName: "Tester", Email: "alice@example.com"})
	require.NoError(t, err)

	updated, err := svc.SetStatus(ctx, e.ID.Hex(), domain.StatusInactive)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusInactive, updated.Status)

	got, err := repo.FindByID(ctx, e.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, domain.StatusInactive, got.Status)

	_, err = svc.SetStatus(ctx, e.ID.Hex(), "Vacation")
	require.ErrorIs(t, err, xerrors.ErrInvalidInput)
}

func TestEditKeepsLocationWhenBlank(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	e, err := svc.Create(ctx, &domain.CreateEmployeeRequest{FirstName: "Alice", LastName: "Tester", Email: "alice@example.com", Location: "Mumbai"})
	require.NoError(t, err)

	updated, err := svc.Edit(ctx, &domain.EditEmployeeRequest{ID: e.ID.Hex(), FirstName: "Alicia", LastName: "Tester"})
	require.NoError(t, err)

	assert.Equal(t, "Alicia", updated.FirstName)
	assert.Equal(t, "Mumbai", updated.Location)
}

func TestUpdateProfileChangesNameOnly(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	e, err := svc.Create(ctx, &domain.CreateEmployeeRequest{FirstName: "Alice", LastName: "Tester", Email: "alice@example.com"})
	require.NoError(t, err)

	updated, err := svc.UpdateProfile(ctx, e.ID.Hex(), &domain.UpdateProfileRequest{FirstName: "Alicia", LastName: "Renamed"})
	require.NoError(t, err)

	assert.Equal(t, "Alicia", updated.FirstName)
	assert.Equal(t, "Renamed", updated.LastName)
	assert.Equal(t, "alice@example.com", updated.Email)
}
