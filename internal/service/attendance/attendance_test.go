// internal/service/attendance/attendance_test.go
package attendance

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

func newTestService(t *testing.T, now time.Time) (*Service, *inmem.EmployeeRepository) {
	t.Helper()
	repo := inmem.NewEmployeeRepository()
	svc := NewService(repo, zap.NewNop(), time.UTC)
	svc.now = func() time.Time { return now }
	return svc, repo
}

func seedEmployee(t *testing.T, repo *inmem.EmployeeRepository, mutate func(*employee.Employee)) *employee.Employee {
	t.Helper()
	e := &employee.Employee{
		FirstName: "Alice",
		LastName:  "Tester",
		Email:     "alice@example.com",
		Status:    employee.StatusActive,
		Language:  "english",
	}
	if mutate != nil {
		mutate(e)
	}
	require.NoError(t, repo.Create(context.Background(), e))
	return e
}

var testNow = time.Date(2026, 8, 28, 9, 30, 0, 0, time.UTC)

func TestToggleCheckInFromUnset(t *testing.T) {
	svc, repo := newTestService(t, testNow)
	e := seedEmployee(t, repo, nil)

	resp, err := svc.Toggle(context.Background(), e.ID.Hex(), "Active")
	require.NoError(t, err)

	require.NotNil(t, resp.CheckInStatus)
	assert.True(t, *resp.CheckInStatus)
	assert.Equal(t, "09:30 AM", resp.Time)

	got, err := repo.FindByID(context.Background(), e.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, employee.CheckedIn, got.CheckState)
	assert.Equal(t, employee.StatusActive, got.Status)
	assert.Equal(t, "2026-08-28", got.AttendanceDate)
}

func TestToggleDoubleCheckInIsNoOp(t *testing.T) {
	svc, repo := newTestService(t, testNow)
	e := seedEmployee(t, repo, func(e *employee.Employee) {
		e.CheckState = employee.CheckedIn
		e.LastCheckInTime = "08:00 AM"
	})

	resp, err := svc.Toggle(context.Background(), e.ID.Hex(), "Active")
	require.NoError(t, err)

	require.NotNil(t, resp.CheckInStatus)
	assert.True(t, *resp.CheckInStatus)
	assert.Equal(t, "08:00 AM", resp.Time)
}

func TestToggleCheckOutRequiresCheckIn(t *testing.T) {
	svc, repo := newTestService(t, testNow)
	e := seedEmployee(t, repo, nil)

	resp, err := svc.Toggle(context.Background(), e.ID.Hex(), "Inactive")
	require.NoError(t, err)
	assert.Nil(t, resp.CheckInStatus)

	got, err := repo.FindByID(context.Background(), e.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, employee.CheckUnset, got.CheckState)
}

func TestToggleCheckOutRefusedWhileOnBreak(t *testing.T) {
	svc, repo := newTestService(t, testNow)
	e := seedEmployee(t, repo, func(e *employee.Employee) {
		e.CheckState = employee.CheckedIn
		e.OnBreak = true
	})

	_, err := svc.Toggle(context.Background(), e.ID.Hex(), "Inactive")
	require.NoError(t, err)

	got, err := repo.FindByID(context.Background(), e.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, employee.CheckedIn, got.CheckState)
	assert.True(t, got.OnBreak)
}

func TestToggleCheckOutFlipsEmployeeInactive(t *testing.T) {
	svc, repo := newTestService(t, testNow)
	e := seedEmployee(t, repo, func(e *employee.Employee) {
		e.CheckState = employee.CheckedIn
	})

	resp, err := svc.Toggle(context.Background(), e.ID.Hex(), "Inactive")
	require.NoError(t, err)

	require.NotNil(t, resp.CheckInStatus)
	assert.False(t, *resp.CheckInStatus)

	got, err := repo.FindByID(context.Background(), e.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, employee.CheckedOut, got.CheckState)
	assert.Equal(t, employee.StatusInactive, got.Status)
	assert.Equal(t, "09:30 AM", got.LastCheckOutTime)
}

func TestToggleBreakPushesRunningEntry(t *testing.T) {
	svc, repo := newTestService(t, testNow)
	e := seedEmployee(t, repo, func(e *employee.Employee) {
		e.CheckState = employee.CheckedIn
	})

	resp, err := svc.ToggleBreak(context.Background(), e.ID.Hex())
	require.NoError(t, err)

	require.NotNil(t, resp.BreakStatus)
	assert.True(t, *resp.BreakStatus)
	require.Len(t, resp.History, 1)
	assert.Equal(t, "09:30 AM", resp.History[0].Break)
	assert.Equal(t, employee.BreakInProgress, resp.History[0].Ended)
	assert.Equal(t, "08/28/2026", resp.History[0].Date)
}

func TestToggleBreakEndFillsHeadEntry(t *testing.T) {
	svc, repo := newTestService(t, testNow)
	e := seedEmployee(t, repo, func(e *employee.Employee) {
		e.CheckState = employee.CheckedIn
		e.OnBreak = true
		e.BreakHistory = []employee.BreakEntry{
			{Break: "09:00 AM", Ended: employee.BreakInProgress, Date: "08/28/2026"},
			{Break: "04:00 PM", Ended: "04:15 PM", Date: "08/27/2026"},
		}
	})

	resp, err := svc.ToggleBreak(context.Background(), e.ID.Hex())
	require.NoError(t, err)

	require.NotNil(t, resp.BreakStatus)
	assert.False(t, *resp.BreakStatus)
	require.Len(t, resp.History, 2)
	assert.Equal(t, "09:30 AM", resp.History[0].Ended)
	assert.Equal(t, "04:15 PM", resp.History[1].Ended)
}

func TestToggleBreakBeforeCheckInIsNoOp(t *testing.T) {
	svc, repo := newTestService(t, testNow)
	e := seedEmployee(t, repo, nil)

	resp, err := svc.ToggleBreak(context.Background(), e.ID.Hex())
	require.NoError(t, err)

	assert.Nil(t, resp.BreakStatus)
	assert.Empty(t, resp.History)
}

func TestStatusResetsStaleDayLazily(t *testing.T) {
	svc, repo := newTestService(t, testNow)
	e := seedEmployee(t, repo, func(e *employee.Employee) {
		e.CheckState = employee.CheckedOut
		e.LastCheckInTime = "09:00 AM"
		e.LastCheckOutTime = "05:00 PM"
		e.AttendanceDate = "2026-08-27"
		e.BreakHistory = []employee.BreakEntry{
			{Break: "01:00 PM", Ended: "01:30 PM", Date: "08/27/2026"},
		}
	})

	resp, err := svc.Status(context.Background(), e.ID.Hex())
	require.NoError(t, err)

	assert.Nil(t, resp.CheckInStatus)
	assert.Nil(t, resp.BreakStatus)
	assert.Empty(t, resp.CheckInTime)
	assert.Empty(t, resp.CheckOutTime)
	require.Len(t, resp.BreakHistory, 1)

	got, err := repo.FindByID(context.Background(), e.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, "2026-08-28", got.AttendanceDate)
	assert.Equal(t, employee.CheckUnset, got.CheckState)
}

func TestStatusSameDayIsStable(t *testing.T) {
	svc, repo := newTestService(t, testNow)
	e := seedEmployee(t, repo, func(e *employee.Employee) {
		e.CheckState = employee.CheckedIn
		e.LastCheckInTime = "09:00 AM"
		e.AttendanceDate = "2026-08-28"
	})

	resp, err := svc.Status(context.Background(), e.ID.Hex())
	require.NoError(t, err)

	require.NotNil(t, resp.CheckInStatus)
	assert.True(t, *resp.CheckInStatus)
	assert.Equal(t, "09:00 AM", resp.CheckInTime)
}
