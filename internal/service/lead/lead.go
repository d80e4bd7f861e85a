// internal/service/lead/lead.go
package lead

import (
	"context"
	"fmt"
	"time"

	"crm-service/internal/domain/lead"

	"crm-service/internal/domain/employee"
	xerrors "crm-service/internal/pkg/errors"

	"go.uber.org/zap"
)

var validTypes = map[string]bool{
	"Hot":         true,
	"Warm":        true,
	"Cold":        true,
	lead.TypeNone: true,
}

// Service applies lifecycle updates to leads and reconciles employee
// counters when a lead closes.
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

// Update applies a partial update to a lead. Closing is refused while the
// schedule date lies in the future, and the assignee's counters move exactly
// once per close no matter how often "closed" is re-sent.
func (s *Service) Update(ctx context.Context, id string, req *lead.UpdateLeadRequest) (*lead.Lead, error) {
	l, err := s.leads.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	wasClosed := l.IsClosed()
	closing := false

	if req.Status != nil {
		status := lead.NormalizeStatus(*req.Status)
		if status != lead.StatusOngoing && status != lead.StatusClosed {
			return nil, fmt.Errorf("%w: unknown status %q", xerrors.ErrInvalidInput, *req.Status)
		}
		if status == lead.StatusClosed && !wasClosed {
			if l.ScheduleDate != nil && l.ScheduleDate.After(s.now()) {
				return nil, fmt.Errorf("%w: lead cannot be closed before its scheduled time", xerrors.ErrInvalidInput)
			}
			closing = true
		}
		l.Status = status
	}

	if req.Type != nil {
		if !validTypes[*req.Type] {
			return nil, fmt.Errorf("%w: unknown lead type %q", xerrors.ErrInvalidInput, *req.Type)
		}
		l.Type = *req.Type
	}

	if req.ScheduleDate != nil {
		scheduled, err := parseScheduleDate(*req.ScheduleDate)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", xerrors.ErrInvalidInput, err)
		}
		l.ScheduleDate = scheduled
	}

	if err := s.leads.Update(ctx, l); err != nil {
		return nil, err
	}

	if closing && l.AssignedTo != nil {
		if err := s.employees.ReleaseAssignment(ctx, l.AssignedTo.Hex()); err != nil {
			// The lead is already closed; counter drift is logged, not retried.
			s.logger.Error("failed to settle employee counters on close",
				zap.String("lead_id", id),
				zap.String("employee_id", l.AssignedTo.Hex()),
				zap.Error(err),
			)
		} else {
			s.logger.Info("lead closed",
				zap.String("lead_id", id),
				zap.String("employee_id", l.AssignedTo.Hex()),
			)
		}
	}

	return l, nil
}

// All lists every lead with the assignee's display fields resolved.
func (s *Service) All(ctx context.Context) ([]lead.WithAssignee, error) {
	return s.leads.FindAllWithAssignee(ctx)
}

// Assigned lists the open book of one employee, newest first.
func (s *Service) Assigned(ctx context.Context, employeeID string) ([]lead.Lead, error) {
	return s.leads.FindByAssignee(ctx, employeeID)
}

// Scheduled lists an employee's leads that carry a schedule date, soonest
// first.
func (s *Service) Scheduled(ctx context.Context, employeeID string) ([]lead.Lead, error) {
	return s.leads.FindScheduledByAssignee(ctx, employeeID)
}

func parseScheduleDate(raw string) (*time.Time, error) {
	if raw == "" || raw == "-" {
		return nil, nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04", "2006-01-02"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return &t, nil
		}
	}
	return nil, fmt.Errorf("unparseable schedule date %q", raw)
}
