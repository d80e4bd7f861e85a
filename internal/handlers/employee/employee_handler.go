// internal/handlers/employee/employee_handler.go
package employee

import (
	"errors"
	"net/http"

	employeeDomain "crm-service/internal/domain/employee"
	xerrors "crm-service/internal/pkg/errors"
	"crm-service/internal/pkg/response"
	"crm-service/internal/service/attendance"
	"crm-service/internal/service/auth"
	employeeService "crm-service/internal/service/employee"

	"github.com/gin-gonic/gin"
)

// EmployeeHandler serves the employee app: login, profile and the
// attendance state machine.
type EmployeeHandler struct {
	authService       *auth.AuthService
	employeeService   *employeeService.Service
	attendanceService *attendance.Service
}

func NewEmployeeHandler(authService *auth.AuthService, employeeService *employeeService.Service, attendanceService *attendance.Service) *EmployeeHandler {
	return &EmployeeHandler{
		authService:       authService,
		employeeService:   employeeService,
		attendanceService: attendanceService,
	}
}

// Login authenticates an employee.
func (h *EmployeeHandler) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "email and password are required", err)
		return
	}

	token, emp, err := h.authService.EmployeeLogin(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		response.Unauthorized(c, "invalid credentials")
		return
	}

	response.Success(c, http.StatusOK, "login successful", gin.H{
		"token": token,
		"user": gin.H{
			"id":         emp.ID.Hex(),
			"employeeId": emp.EmployeeID,
			"firstName":  emp.FirstName,
			"lastName":   emp.LastName,
			"email":      emp.Email,
			"role":       auth.RoleEmployee,
		},
	})
}

// UpdateProfile edits the caller's own name.
func (h *EmployeeHandler) UpdateProfile(c *gin.Context) {
	var req employeeDomain.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "invalid request", err)
		return
	}

	emp, err := h.employeeService.UpdateProfile(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		if errors.Is(err, xerrors.ErrNotFound) {
			response.NotFound(c, "employee not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "failed to update profile", nil)
		return
	}
	response.Success(c, http.StatusOK, "profile updated successfully", emp)
}

// Status reports today's attendance state for the dashboard.
func (h *EmployeeHandler) Status(c *gin.Context) {
	status, err := h.attendanceService.Status(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, xerrors.ErrNotFound) {
			response.NotFound(c, "employee not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "failed to load status", nil)
		return
	}
	response.Success(c, http.StatusOK, "status retrieved", status)
}

// ToggleStatus checks the employee in or out.
func (h *EmployeeHandler) ToggleStatus(c *gin.Context) {
	var req employeeDomain.ToggleAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "status is required", err)
		return
	}

	result, err := h.attendanceService.Toggle(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		if errors.Is(err, xerrors.ErrNotFound) {
			response.NotFound(c, "employee not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "failed to update status", nil)
		return
	}
	response.Success(c, http.StatusOK, "status updated", result)
}

// ToggleBreak starts or ends a break.
func (h *EmployeeHandler) ToggleBreak(c *gin.Context) {
	result, err := h.attendanceService.ToggleBreak(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, xerrors.ErrNotFound) {
			response.NotFound(c, "employee not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "failed to update break", nil)
		return
	}
	response.Success(c, http.StatusOK, "break updated", result)
}
