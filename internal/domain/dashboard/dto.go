// internal/domain/dashboard/dto.go
package dashboard

import (
	"time"

	"crm-service/internal/domain/employee"
)

// KPIs shown at the top of the admin dashboard.
type Stats struct {
	Unassigned       int64   `json:"unassigned"`
	AssignedThisWeek int64   `json:"assignedThisWeek"`
	ActiveCount      int64   `json:"activeCount"`
	ConversionRate   float64 `json:"conversionRate"`
	TotalLeads       int64   `json:"totalLeads"`
}

// Activity is one line of the recent-activity feed.
type Activity struct {
	Message string    `json:"message"`
	At      time.Time `json:"at"`
}

// ChartPoint is one daily bucket of the 14-day conversion series.
type ChartPoint struct {
	Day   string  `json:"day"`
	Value float64 `json:"value"`
}

type StatsResponse struct {
	Stats      Stats               `json:"stats"`
	Employees  []employee.Employee `json:"employees"`
	Activities []Activity          `json:"activities"`
	ChartData  []ChartPoint        `json:"chartData"`
}
