// internal/scheduler/scheduler_test.go
package scheduler

import (
	"context"
	"testing"
	"time"

	"crm-service/internal/domain/employee"
	"crm-service/internal/repository/inmem"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNextMidnight(t *testing.T) {
	s := New(inmem.NewEmployeeRepository(), zap.NewNop(), time.UTC)

	now := time.Date(2026, 8, 28, 23, 59, 30, 0, time.UTC)
	next := s.nextMidnight(now)
	assert.Equal(t, time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC), next)

	// Just after midnight the next reset is a full day away.
	now = time.Date(2026, 8, 29, 0, 0, 1, 0, time.UTC)
	assert.Equal(t, time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC), s.nextMidnight(now))
}

func TestResetFlipsActiveEmployees(t *testing.T) {
	repo := inmem.NewEmployeeRepository()
	ctx := context.Background()

	active := &employee.Employee{FirstName: "Alice", Email: "alice@example.com", Status: employee.StatusActive, Language: "english"}
	require.NoError(t, repo.Create(ctx, active))
	idle := &employee.Employee{FirstName: "Bob", Email: "bob@example.com", Status: employee.StatusInactive, Language: "english"}
	require.NoError(t, repo.Create(ctx, idle))

	s := New(repo, zap.NewNop(), time.UTC)
	s.reset()

	got, err := repo.FindByID(ctx, active.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, employee.StatusInactive, got.Status)

	n, err := repo.CountActive(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestStopTerminatesLoop(t *testing.T) {
	s := New(inmem.NewEmployeeRepository(), zap.NewNop(), time.UTC)
	s.Start()

	done := make(chan struct{})
	go func() {
		s.Stop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("scheduler did not stop")
	}
}
