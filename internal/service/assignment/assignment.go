// internal/service/assignment/assignment.go
package assignment

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"crm-service/internal/domain/employee"
	"crm-service/internal/domain/lead"

	"go.uber.org/zap"
)

// MaxOpenLeads is the capacity cap: an employee holding this many open leads
// is skipped for new assignments.
const MaxOpenLeads = 3

// Service routes incoming leads to employees. Policy: among Active employees
// whose language matches (case-insensitive) the first one with spare
// capacity wins; the claim is atomic so concurrent requests cannot push an
// employee past the cap.
type Service struct {
	leads     lead.Repository
	employees employee.Repository
	logger    *zap.Logger
}

func NewService(leads lead.Repository, employees employee.Repository, logger *zap.Logger) *Service {
	return &Service{
		leads:     leads,
		employees: employees,
		logger:    logger,
	}
}

// AssignLead creates a lead and routes it to the first eligible employee.
// Having no eligible employee is not an error: the lead is stored
// unassigned.
func (s *Service) AssignLead(ctx context.Context, req *lead.AddLeadRequest) (*lead.AssignmentResult, error) {
	l := &lead.Lead{
		Name:     strings.TrimSpace(req.Name),
		Email:    strings.TrimSpace(req.Email),
		Source:   req.Source,
		Date:     req.Date,
		Location: req.Location,
		Language: req.Language,
		Status:   lead.StatusOngoing,
		Type:     lead.TypeNone,
	}

	language := strings.ToLower(strings.TrimSpace(req.Language))
	emp, err := s.employees.ClaimNextAssignable(ctx, language, MaxOpenLeads)
	if err != nil {
		return nil, fmt.Errorf("failed to select employee: %w", err)
	}
	if emp != nil {
		l.AssignedTo = &emp.ID
	}

	if err := s.leads.Create(ctx, l); err != nil {
		if emp != nil {
			s.logger.Error("lead insert failed after claiming capacity",
				zap.String("employee_id", emp.ID.Hex()),
				zap.Error(err),
			)
		}
		return nil, fmt.Errorf("failed to create lead: %w", err)
	}

	result := &lead.AssignmentResult{Lead: l}
	if emp != nil {
		result.Assigned = true
		result.AssigneeName = emp.FirstName
		s.logger.Info("lead assigned",
			zap.String("lead_id", l.ID.Hex()),
			zap.String("employee_id", emp.ID.Hex()),
			zap.String("language", language),
		)
	} else {
		s.logger.Info("lead saved unassigned",
			zap.String("lead_id", l.ID.Hex()),
			zap.String("language", language),
		)
	}
	return result, nil
}

// ImportCSV bulk-creates leads from CSV text (header row plus
// name,email,source,date,location,language rows). Each row goes through the
// same matching and cap logic as a manual lead. Bad rows are skipped and
// logged, never fatal to the batch. Returns the number of leads created.
func (s *Service) ImportCSV(ctx context.Context, csvData string) (int, error) {
	reader := csv.NewReader(strings.NewReader(csvData))
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	created := 0
	row := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		row++
		if err != nil {
			s.logger.Warn("skipping malformed csv row", zap.Int("row", row), zap.Error(err))
			continue
		}
		if row == 1 {
			// header
			continue
		}

		req, err := rowToRequest(record)
		if err != nil {
			s.logger.Warn("skipping invalid csv row", zap.Int("row", row), zap.Error(err))
			continue
		}

		if _, err := s.AssignLead(ctx, req); err != nil {
			s.logger.Warn("failed to import csv row", zap.Int("row", row), zap.Error(err))
			continue
		}
		created++
	}
	return created, nil
}

func rowToRequest(record []string) (*lead.AddLeadRequest, error) {
	field := func(i int) string {
		if i < len(record) {
			return strings.TrimSpace(record[i])
		}
		return ""
	}

	req := &lead.AddLeadRequest{
		Name:     field(0),
		Email:    field(1),
		Source:   field(2),
		Date:     field(3),
		Location: field(4),
		Language: field(5),
	}
	if req.Name == "" || req.Email == "" {
		return nil, fmt.Errorf("name and email are required")
	}
	return req, nil
}
