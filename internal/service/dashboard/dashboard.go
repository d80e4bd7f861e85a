// internal/service/dashboard/dashboard.go
package dashboard

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"crm-service/internal/domain/dashboard"
	"crm-service/internal/domain/employee"
	"crm-service/internal/domain/lead"

	"go.uber.org/zap"
)

const (
	activityFeedSize   = 10
	recentLeadsWindow  = 50
	chartDays          = 14
	employeeFeedWindow = 14 * 24 * time.Hour
)

// Service computes the admin dashboard: KPI counters, the recent-activity
// feed and the 14-day conversion series. Read-only, always as of now.
type Service struct {
	leads     lead.Repository
	employees employee.Repository
	logger    *zap.Logger
	now       func() time.Time
}

func NewService(leads lead.Repository, employees employee.Repository, logger *zap.Logger) *Service {
	return &Service{
		leads:     leads,
		employees: employees,
		logger:    logger,
		now:       time.Now,
	}
}

func (s *Service) Stats(ctx context.Context) (*dashboard.StatsResponse, error) {
	now := s.now()
	weekAgo := now.AddDate(0, 0, -7)

	unassigned, err := s.leads.CountUnassigned(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count unassigned leads: %w", err)
	}
	assignedThisWeek, err := s.leads.CountAssignedSince(ctx, weekAgo)
	if err != nil {
		return nil, fmt.Errorf("failed to count recent assignments: %w", err)
	}
	activeCount, err := s.employees.CountActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count active employees: %w", err)
	}
	totalAssigned, err := s.leads.CountAssigned(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count assigned leads: %w", err)
	}
	closed, err := s.leads.CountClosed(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count closed leads: %w", err)
	}

	conversion := 0.0
	if totalAssigned > 0 {
		conversion = round1(float64(closed) / float64(totalAssigned) * 100)
	}

	active, err := s.employees.FindActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list active employees: %w", err)
	}

	activities, err := s.activities(ctx, now)
	if err != nil {
		return nil, err
	}

	chart, err := s.chartData(ctx, now)
	if err != nil {
		return nil, err
	}

	return &dashboard.StatsResponse{
		Stats: dashboard.Stats{
			Unassigned:       unassigned,
			AssignedThisWeek: assignedThisWeek,
			ActiveCount:      activeCount,
			ConversionRate:   conversion,
			TotalLeads:       totalAssigned + unassigned,
		},
		Employees:  active,
		Activities: activities,
		ChartData:  chart,
	}, nil
}

// activities merges lead events with employee-join events, newest first,
// capped at activityFeedSize. Leads assigned in the same minute collapse
// into a single "N leads assigned" line.
func (s *Service) activities(ctx context.Context, now time.Time) ([]dashboard.Activity, error) {
	recent, err := s.leads.FindRecent(ctx, recentLeadsWindow)
	if err != nil {
		return nil, fmt.Errorf("failed to load recent leads: %w", err)
	}

	type bucket struct {
		at    time.Time
		names []string
	}
	assignedBatches := map[time.Time]*bucket{}
	var feed []dashboard.Activity

	for i := range recent {
		l := &recent[i]
		switch {
		case l.IsClosed():
			feed = append(feed, dashboard.Activity{
				Message: fmt.Sprintf("Lead %s closed", l.Name),
				At:      l.UpdatedAt,
			})
		case isCreationEvent(l) && l.AssignedTo != nil:
			key := l.UpdatedAt.Truncate(time.Minute)
			b, ok := assignedBatches[key]
			if !ok {
				b = &bucket{at: l.UpdatedAt}
				assignedBatches[key] = b
			}
			if l.UpdatedAt.After(b.at) {
				b.at = l.UpdatedAt
			}
			b.names = append(b.names, l.Name)
		case isCreationEvent(l):
			feed = append(feed, dashboard.Activity{
				Message: fmt.Sprintf("Lead %s added unassigned", l.Name),
				At:      l.CreatedAt,
			})
		default:
			feed = append(feed, dashboard.Activity{
				Message: fmt.Sprintf("Lead %s updated", l.Name),
				At:      l.UpdatedAt,
			})
		}
	}

	for _, b := range assignedBatches {
		msg := fmt.Sprintf("Lead %s assigned", b.names[0])
		if len(b.names) > 1 {
			msg = fmt.Sprintf("%d leads assigned together", len(b.names))
		}
		feed = append(feed, dashboard.Activity{Message: msg, At: b.at})
	}

	joined, err := s.employees.FindCreatedSince(ctx, now.Add(-employeeFeedWindow))
	if err != nil {
		return nil, fmt.Errorf("failed to load recent employees: %w", err)
	}
	for i := range joined {
		e := &joined[i]
		feed = append(feed, dashboard.Activity{
			Message: fmt.Sprintf("Employee %s joined the team", e.FullName()),
			At:      e.CreatedAt,
		})
	}

	sort.Slice(feed, func(i, j int) bool { return feed[i].At.After(feed[j].At) })
	if len(feed) > activityFeedSize {
		feed = feed[:activityFeedSize]
	}
	if feed == nil {
		feed = []dashboard.Activity{}
	}
	return feed, nil
}

// chartData buckets the last 14 days, oldest first: each day's value is the
// share of closes over new assignments that day, 0 when nothing was
// assigned.
func (s *Service) chartData(ctx context.Context, now time.Time) ([]dashboard.ChartPoint, error) {
	start := startOfDay(now).AddDate(0, 0, -(chartDays - 1))

	window, err := s.leads.FindSince(ctx, start)
	if err != nil {
		return nil, fmt.Errorf("failed to load chart window: %w", err)
	}

	var assigned, closed [chartDays]int
	for i := range window {
		l := &window[i]
		if l.AssignedTo != nil {
			if d, ok := dayIndex(start, l.CreatedAt); ok {
				assigned[d]++
			}
		}
		if l.IsClosed() {
			if d, ok := dayIndex(start, l.UpdatedAt); ok {
				closed[d]++
			}
		}
	}

	points := make([]dashboard.ChartPoint, chartDays)
	for d := 0; d < chartDays; d++ {
		day := start.AddDate(0, 0, d)
		value := 0.0
		if assigned[d] > 0 {
			value = round1(float64(closed[d]) / float64(assigned[d]) * 100)
		}
		points[d] = dashboard.ChartPoint{
			Day:   day.Format("Mon"),
			Value: value,
		}
	}
	return points, nil
}

// isCreationEvent treats a lead whose last update happened at creation time
// as a creation/assignment event rather than a later edit.
func isCreationEvent(l *lead.Lead) bool {
	return l.UpdatedAt.Sub(l.CreatedAt) < time.Second
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// round1 rounds a percentage to one decimal place.
func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func dayIndex(start, t time.Time) (int, bool) {
	d := int(startOfDay(t.In(start.Location())).Sub(start).Hours() / 24)
	if d < 0 || d >= chartDays {
		return 0, false
	}
	return d, true
}
