// internal/service/dashboard/dashboard_test.go
package dashboard

import (
	"context"
	"fmt"
	"testing"
	"time"

	employeeDomain "crm-service/internal/domain/employee"
	leadDomain "crm-service/internal/domain/lead"
	"crm-service/internal/repository/inmem"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.mongodb.org/mongo-driver/v2/bson"
)

var testNow = time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)

func newTestService(t *testing.T) (*Service, *inmem.LeadRepository, *inmem.EmployeeRepository) {
	t.Helper()
	leads := inmem.NewLeadRepository()
	employees := inmem.NewEmployeeRepository()
	svc := NewService(leads, employees, zap.NewNop())
	svc.now = func() time.Time { return testNow }
	return svc, leads, employees
}

func seedEmployee(t *testing.T, employees *inmem.EmployeeRepository, first, status string, assigned int) *employeeDomain.Employee {
	t.Helper()
	e := &employeeDomain.Employee{
		FirstName: first,
		LastName:  "Tester",
		Email:     first + "@example.com",
		Status:    status,
		Language:  "english",
		Assigned:  assigned,
	}
	require.NoError(t, employees.Create(context.Background(), e))
	return e
}

func assignedLead(name string, to bson.ObjectID, created, updated time.Time, status string) leadDomain.Lead {
	return leadDomain.Lead{
		Name:       name,
		Email:      name + "@example.com",
		Status:     status,
		Type:       leadDomain.TypeNone,
		AssignedTo: &to,
		CreatedAt:  created,
		UpdatedAt:  updated,
	}
}

func TestStatsConversionZeroWithoutAssignments(t *testing.T) {
	svc, leads, _ := newTestService(t)

	leads.Seed(leadDomain.Lead{
		Name:      "Orphan",
		Status:    leadDomain.StatusOngoing,
		Type:      leadDomain.TypeNone,
		CreatedAt: testNow.Add(-time.Hour),
		UpdatedAt: testNow.Add(-time.Hour),
	})

	resp, err := svc.Stats(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 0.0, resp.Stats.ConversionRate)
	assert.Equal(t, int64(1), resp.Stats.Unassigned)
	assert.Equal(t, int64(1), resp.Stats.TotalLeads)
}

func TestStatsKPIMath(t *testing.T) {
	svc, leads, employees := newTestService(t)
	alice := seedEmployee(t, employees, "Alice", employeeDomain.StatusActive, 2)
	seedEmployee(t, employees, "Bob", employeeDomain.StatusActive, 0)
	seedEmployee(t, employees, "Ivan", employeeDomain.StatusInactive, 0)

	twoDaysAgo := testNow.AddDate(0, 0, -2)
	for i := 0; i < 3; i++ {
		leads.Seed(assignedLead(fmt.Sprintf("Open%d", i), alice.ID, twoDaysAgo, twoDaysAgo, leadDomain.StatusOngoing))
	}
	leads.Seed(assignedLead("Won", alice.ID, twoDaysAgo, twoDaysAgo.Add(time.Hour), leadDomain.StatusClosed))
	leads.Seed(leadDomain.Lead{Name: "OrphanA", Status: leadDomain.StatusOngoing, Type: leadDomain.TypeNone, CreatedAt: twoDaysAgo, UpdatedAt: twoDaysAgo})
	leads.Seed(leadDomain.Lead{Name: "OrphanB", Status: leadDomain.StatusOngoing, Type: leadDomain.TypeNone, CreatedAt: twoDaysAgo, UpdatedAt: twoDaysAgo})

	resp, err := svc.Stats(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(2), resp.Stats.Unassigned)
	assert.Equal(t, int64(4), resp.Stats.AssignedThisWeek)
	assert.Equal(t, int64(2), resp.Stats.ActiveCount)
	assert.Equal(t, 25.0, resp.Stats.ConversionRate)
	assert.Equal(t, int64(6), resp.Stats.TotalLeads)

	// Busiest active employee first, inactive excluded.
	require.Len(t, resp.Employees, 2)
	assert.Equal(t, "Alice", resp.Employees[0].FirstName)
}

func TestStatsConversionRoundedToOneDecimal(t *testing.T) {
	svc, leads, employees := newTestService(t)
	alice := seedEmployee(t, employees, "Alice", employeeDomain.StatusActive, 2)

	twoDaysAgo := testNow.AddDate(0, 0, -2)
	leads.Seed(assignedLead("OpenA", alice.ID, twoDaysAgo, twoDaysAgo, leadDomain.StatusOngoing))
	leads.Seed(assignedLead("OpenB", alice.ID, twoDaysAgo, twoDaysAgo, leadDomain.StatusOngoing))
	leads.Seed(assignedLead("Won", alice.ID, twoDaysAgo, twoDaysAgo.Add(time.Hour), leadDomain.StatusClosed))

	resp, err := svc.Stats(context.Background())
	require.NoError(t, err)

	// 1 of 3 assigned closed: 33.333...% rounds to one decimal.
	assert.Equal(t, 33.3, resp.Stats.ConversionRate)
}

func TestActivitiesClassifiesEvents(t *testing.T) {
	svc, leads, employees := newTestService(t)
	alice := seedEmployee(t, employees, "Alice", employeeDomain.StatusActive, 1)

	batchAt := testNow.Add(-30 * time.Minute).Truncate(time.Minute)
	leads.Seed(assignedLead("BatchA", alice.ID, batchAt, batchAt, leadDomain.StatusOngoing))
	leads.Seed(assignedLead("BatchB", alice.ID, batchAt.Add(5*time.Second), batchAt.Add(5*time.Second), leadDomain.StatusOngoing))
	leads.Seed(assignedLead("Won", alice.ID, testNow.Add(-2*time.Hour), testNow.Add(-10*time.Minute), leadDomain.StatusClosed))
	leads.Seed(leadDomain.Lead{Name: "Orphan", Status: leadDomain.StatusOngoing, Type: leadDomain.TypeNone, CreatedAt: testNow.Add(-20 * time.Minute), UpdatedAt: testNow.Add(-20 * time.Minute)})

	resp, err := svc.Stats(context.Background())
	require.NoError(t, err)

	messages := make([]string, 0, len(resp.Activities))
	for _, a := range resp.Activities {
		messages = append(messages, a.Message)
	}

	assert.Contains(t, messages, "Lead Won closed")
	assert.Contains(t, messages, "2 leads assigned together")
	assert.Contains(t, messages, "Lead Orphan added unassigned")
	assert.Contains(t, messages, "Employee Alice Tester joined the team")

	// Newest first.
	for i := 1; i < len(resp.Activities); i++ {
		assert.False(t, resp.Activities[i-1].At.Before(resp.Activities[i].At))
	}
}

func TestActivitiesCappedAtTen(t *testing.T) {
	svc, leads, employees := newTestService(t)
	alice := seedEmployee(t, employees, "Alice", employeeDomain.StatusActive, 0)

	for i := 0; i < 15; i++ {
		at := testNow.Add(-time.Duration(i+1) * time.Hour)
		leads.Seed(assignedLead(fmt.Sprintf("Won%d", i), alice.ID, at.Add(-time.Hour), at, leadDomain.StatusClosed))
	}

	resp, err := svc.Stats(context.Background())
	require.NoError(t, err)
	assert.Len(t, resp.Activities, 10)
}

func TestChartBucketsConversionPerDay(t *testing.T) {
	svc, leads, employees := newTestService(t)
	alice := seedEmployee(t, employees, "Alice", employeeDomain.StatusActive, 1)

	day := testNow.AddDate(0, 0, -1)
	leads.Seed(assignedLead("A", alice.ID, day, day, leadDomain.StatusOngoing))
	leads.Seed(assignedLead("B", alice.ID, day, day.Add(time.Hour), leadDomain.StatusClosed))

	resp, err := svc.Stats(context.Background())
	require.NoError(t, err)

	require.Len(t, resp.ChartData, 14)

	// Yesterday sits in the next-to-last bucket: 2 assigned, 1 closed.
	point := resp.ChartData[12]
	assert.Equal(t, day.Format("Mon"), point.Day)
	assert.Equal(t, 50.0, point.Value)

	// Untouched days stay at zero.
	assert.Equal(t, 0.0, resp.ChartData[0].Value)
}

func TestChartIgnoresLeadsOutsideWindow(t *testing.T) {
	svc, leads, employees := newTestService(t)
	alice := seedEmployee(t, employees, "Alice", employeeDomain.StatusActive, 0)

	old := testNow.AddDate(0, 0, -30)
	leads.Seed(assignedLead("Ancient", alice.ID, old, old, leadDomain.StatusOngoing))

	resp, err := svc.Stats(context.Background())
	require.NoError(t, err)

	for _, p := range resp.ChartData {
		assert.Equal(t, 0.0, p.Value)
	}
}
