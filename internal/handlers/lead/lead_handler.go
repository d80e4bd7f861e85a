// internal/handlers/lead/lead_handler.go
package lead

import (
	"errors"
	"fmt"
	"net/http"

	leadDomain "crm-service/internal/domain/lead"
	xerrors "crm-service/internal/pkg/errors"
	"crm-service/internal/pkg/response"
	"crm-service/internal/service/assignment"
	leadService "crm-service/internal/service/lead"

	"github.com/gin-gonic/gin"
)

// LeadHandler serves lead intake, listing and lifecycle updates.
type LeadHandler struct {
	assignmentService *assignment.Service
	leadService       *leadService.Service
}

func NewLeadHandler(assignmentService *assignment.Service, leadService *leadService.Service) *LeadHandler {
	return &LeadHandler{
		assignmentService: assignmentService,
		leadService:       leadService,
	}
}

// AddManually registers a single lead and routes it to an eligible employee.
func (h *LeadHandler) AddManually(c *gin.Context) {
	var req leadDomain.AddLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "all lead fields are required", err)
		return
	}

	result, err := h.assignmentService.AssignLead(c.Request.Context(), &req)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "failed to add lead", nil)
		return
	}

	message := "lead added, no eligible employee available"
	if result.Assigned {
		message = fmt.Sprintf("lead added and assigned to %s", result.AssigneeName)
	}
	response.Success(c, http.StatusCreated, message, result)
}

// ImportCSV ingests a CSV payload, one lead per data row.
func (h *LeadHandler) ImportCSV(c *gin.Context) {
	var req leadDomain.ImportCSVRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.CSVData == "" {
		response.ValidationError(c, "csvData is required", err)
		return
	}

	created, err := h.assignmentService.ImportCSV(c.Request.Context(), req.CSVData)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "failed to import leads", nil)
		return
	}
	response.Success(c, http.StatusCreated, fmt.Sprintf("%d lead(s) imported successfully", created), leadDomain.ImportCSVResult{Count: created})
}

// All lists every lead with its assignee resolved, newest first.
func (h *LeadHandler) All(c *gin.Context) {
	leads, err := h.leadService.All(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "failed to list leads", nil)
		return
	}
	response.Success(c, http.StatusOK, "leads retrieved", leads)
}

// Update changes status, type or schedule date of one lead.
func (h *LeadHandler) Update(c *gin.Context) {
	var req leadDomain.UpdateLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "invalid request", err)
		return
	}

	updated, err := h.leadService.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		switch {
		case errors.Is(err, xerrors.ErrNotFound):
			response.NotFound(c, "lead not found")
		case errors.Is(err, xerrors.ErrInvalidInput):
			response.ValidationError(c, xerrors.MessageOrDefault(err, "invalid lead update"), nil)
		default:
			response.Error(c, http.StatusInternalServerError, "failed to update lead", nil)
		}
		return
	}
	response.Success(c, http.StatusOK, "lead updated successfully", updated)
}

// Assigned lists the open leads routed to one employee.
func (h *LeadHandler) Assigned(c *gin.Context) {
	leads, err := h.leadService.Assigned(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "failed to list assigned leads", nil)
		return
	}
	response.Success(c, http.StatusOK, "assigned leads retrieved", leads)
}

// Scheduled lists an employee's leads that carry a schedule date.
func (h *LeadHandler) Scheduled(c *gin.Context) {
	leads, err := h.leadService.Scheduled(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "failed to list scheduled leads", nil)
		return
	}
	response.Success(c, http.StatusOK, "scheduled leads retrieved", leads)
}
