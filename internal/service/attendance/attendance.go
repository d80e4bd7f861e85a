// internal/service/attendance/attendance.go
package attendance

import (
	"context"
	"fmt"
	"time"

	"crm-service/internal/domain/employee"

	"go.uber.org/zap"
)

const (
	clockLayout = "03:04 PM"
	dateLayout  = "01/02/2006"
	dayLayout   = "2006-01-02"
)

// Service drives the per-employee daily attendance cycle:
// unset -> checked-in -> (on-break <-> checked-in)* -> checked-out.
// Disallowed transitions are silent no-ops; callers inspect the returned
// state to detect them.
type Service struct {
	employees employee.Repository
	logger    *zap.Logger
	loc       *time.Location
	now       func() time.Time
}

func NewService(employees employee.Repository, logger *zap.Logger, loc *time.Location) *Service {
	if loc == nil {
		loc = time.Local
	}
	return &Service{
		employees: employees,
		logger:    logger,
		loc:       loc,
		now:       time.Now,
	}
}

// Status returns the employee's attendance state for today. On the first
// read of a new calendar day the per-day fields are reset to unset before
// being returned; break history is kept.
func (s *Service) Status(ctx context.Context, id string) (*employee.AttendanceStatusResponse, error) {
	emp, err := s.employees.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	today := s.now().In(s.loc).Format(dayLayout)
	if emp.AttendanceDate != today {
		emp.CheckState = employee.CheckUnset
		emp.OnBreak = false
		emp.LastCheckInTime = ""
		emp.LastCheckOutTime = ""
		emp.AttendanceDate = today
		if err := s.employees.Update(ctx, emp); err != nil {
			return nil, fmt.Errorf("failed to reset daily attendance: %w", err)
		}
	}

	return s.statusResponse(emp), nil
}

// Toggle checks the employee in (status "Active") or out (anything else).
// Checking out is refused while on break, and each direction is only
// permitted from the states the cycle allows.
func (s *Service) Toggle(ctx context.Context, id, status string) (*employee.ToggleAttendanceResponse, error) {
	emp, err := s.employees.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	now := s.now().In(s.loc)
	timeNow := now.Format(clockLayout)

	if status == employee.StatusActive {
		// Check-in: only from unset or a finished day.
		if emp.CheckState == employee.CheckedIn || emp.OnBreak {
			return toggleResponse(emp, emp.LastCheckInTime), nil
		}
		emp.Status = employee.StatusActive
		emp.CheckState = employee.CheckedIn
		emp.OnBreak = false
		emp.LastCheckInTime = timeNow
		emp.LastCheckOutTime = ""
		emp.AttendanceDate = now.Format(dayLayout)
	} else {
		// Check-out: only while checked in and not on break.
		if emp.CheckState != employee.CheckedIn || emp.OnBreak {
			return toggleResponse(emp, emp.LastCheckOutTime), nil
		}
		emp.Status = employee.StatusInactive
		emp.CheckState = employee.CheckedOut
		emp.LastCheckOutTime = timeNow
	}

	if err := s.employees.Update(ctx, emp); err != nil {
		return nil, fmt.Errorf("failed to save attendance: %w", err)
	}

	s.logger.Info("attendance toggled",
		zap.String("employee_id", id),
		zap.String("state", string(emp.CheckState)),
	)
	return toggleResponse(emp, timeNow), nil
}

// ToggleBreak starts a break when checked in, or ends the running one. A
// new history entry is pushed at the head on start; its end time is filled
// in on resume.
func (s *Service) ToggleBreak(ctx context.Context, id string) (*employee.ToggleBreakResponse, error) {
	emp, err := s.employees.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	now := s.now().In(s.loc)
	timeNow := now.Format(clockLayout)

	switch {
	case emp.OnBreak:
		emp.OnBreak = false
		if len(emp.BreakHistory) > 0 {
			emp.BreakHistory[0].Ended = timeNow
		}
	case emp.CheckState == employee.CheckedIn:
		emp.OnBreak = true
		emp.BreakHistory = append([]employee.BreakEntry{{
			Break: timeNow,
			Ended: employee.BreakInProgress,
			Date:  now.Format(dateLayout),
		}}, emp.BreakHistory...)
	default:
		// Not checked in: nothing to do.
		return s.breakResponse(emp), nil
	}

	if err := s.employees.Update(ctx, emp); err != nil {
		return nil, fmt.Errorf("failed to save break state: %w", err)
	}
	return s.breakResponse(emp), nil
}

func (s *Service) statusResponse(emp *employee.Employee) *employee.AttendanceStatusResponse {
	history := emp.BreakHistory
	if history == nil {
		history = []employee.BreakEntry{}
	}
	return &employee.AttendanceStatusResponse{
		CheckInStatus: emp.CheckState.TriState(),
		BreakStatus:   s.breakTriState(emp),
		CheckInTime:   emp.LastCheckInTime,
		CheckOutTime:  emp.LastCheckOutTime,
		BreakHistory:  history,
	}
}

func toggleResponse(emp *employee.Employee, t string) *employee.ToggleAttendanceResponse {
	return &employee.ToggleAttendanceResponse{
		CheckInStatus: emp.CheckState.TriState(),
		Time:          t,
	}
}

func (s *Service) breakResponse(emp *employee.Employee) *employee.ToggleBreakResponse {
	history := emp.BreakHistory
	if history == nil {
		history = []employee.BreakEntry{}
	}
	return &employee.ToggleBreakResponse{
		BreakStatus: s.breakTriState(emp),
		History:     history,
	}
}

// breakTriState mirrors the dashboard contract: null until the first break
// of the day, true while on break, false after resuming.
func (s *Service) breakTriState(emp *employee.Employee) *bool {
	if emp.OnBreak {
		v := true
		return &v
	}
	today := s.now().In(s.loc).Format(dateLayout)
	if len(emp.BreakHistory) > 0 && emp.BreakHistory[0].Date == today {
		v := false
		return &v
	}
	return nil
}
