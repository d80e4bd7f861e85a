// internal/handlers/admin/admin_handler.go
package admin

import (
	"errors"
	"fmt"
	"net/http"

	adminDomain "crm-service/internal/domain/admin"
	employeeDomain "crm-service/internal/domain/employee"
	xerrors "crm-service/internal/pkg/errors"
	"crm-service/internal/pkg/response"
	"crm-service/internal/service/auth"
	employeeService "crm-service/internal/service/employee"

	"github.com/gin-gonic/gin"
)

// AdminHandler serves the admin console: login, settings and the employee
// directory.
type AdminHandler struct {
	authService     *auth.AuthService
	employeeService *employeeService.Service
}

func NewAdminHandler(authService *auth.AuthService, employeeService *employeeService.Service) *AdminHandler {
	return &AdminHandler{
		authService:     authService,
		employeeService: employeeService,
	}
}

// Login authenticates the console admin.
func (h *AdminHandler) Login(c *gin.Context) {
	var req adminDomain.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "email and password are required", err)
		return
	}

	token, a, err := h.authService.AdminLogin(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		response.Unauthorized(c, "invalid credentials")
		return
	}

	response.Success(c, http.StatusOK, "login successful", gin.H{
		"token": token,
		"user": gin.H{
			"id":        a.ID.Hex(),
			"firstName": a.FirstName,
			"lastName":  a.LastName,
			"email":     a.Email,
			"role":      auth.RoleAdmin,
		},
	})
}

// Settings returns the admin profile.
func (h *AdminHandler) Settings(c *gin.Context) {
	settings, err := h.authService.Settings(c.Request.Context())
	if err != nil {
		if errors.Is(err, xerrors.ErrNotFound) {
			response.NotFound(c, "admin not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "failed to load settings", nil)
		return
	}
	response.Success(c, http.StatusOK, "settings retrieved", settings)
}

// UpdateSettings edits the admin profile.
func (h *AdminHandler) UpdateSettings(c *gin.Context) {
	var req adminDomain.UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "invalid request", err)
		return
	}

	if err := h.authService.UpdateSettings(c.Request.Context(), &req); err != nil {
		if errors.Is(err, xerrors.ErrNotFound) {
			response.NotFound(c, "admin not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "failed to update settings", nil)
		return
	}
	response.Success(c, http.StatusOK, "profile updated successfully", nil)
}

// AddEmployee registers a new employee.
func (h *AdminHandler) AddEmployee(c *gin.Context) {
	var req employeeDomain.CreateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "invalid request", err)
		return
	}

	e, err := h.employeeService.Create(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, xerrors.ErrConflict) {
			response.ValidationError(c, "employee with this email already exists", nil)
			return
		}
		response.Error(c, http.StatusInternalServerError, "failed to add employee", nil)
		return
	}
	response.Success(c, http.StatusCreated, "employee added successfully", e)
}

// ListEmployees returns the full directory, newest first.
func (h *AdminHandler) ListEmployees(c *gin.Context) {
	employees, err := h.employeeService.List(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "failed to list employees", nil)
		return
	}
	response.Success(c, http.StatusOK, "employees retrieved", employees)
}

// EditEmployee updates name and location.
func (h *AdminHandler) EditEmployee(c *gin.Context) {
	var req employeeDomain.EditEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "invalid request", err)
		return
	}

	e, err := h.employeeService.Edit(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, xerrors.ErrNotFound) {
			response.NotFound(c, "employee not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "failed to edit employee", nil)
		return
	}
	response.Success(c, http.StatusOK, "employee updated successfully", e)
}

// ToggleEmployeeStatus flips an employee between Active and Inactive.
func (h *AdminHandler) ToggleEmployeeStatus(c *gin.Context) {
	var req struct {
		ID     string `json:"id" binding:"required"`
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "id and status are required", err)
		return
	}

	e, err := h.employeeService.SetStatus(c.Request.Context(), req.ID, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, xerrors.ErrNotFound):
			response.NotFound(c, "employee not found")
		case errors.Is(err, xerrors.ErrInvalidInput):
			response.ValidationError(c, "status must be Active or Inactive", nil)
		default:
			response.Error(c, http.StatusInternalServerError, "failed to update employee status", nil)
		}
		return
	}
	response.Success(c, http.StatusOK, "employee status updated", e)
}

// DeleteEmployee removes a single employee (id) or a batch (ids).
func (h *AdminHandler) DeleteEmployee(c *gin.Context) {
	var req employeeDomain.DeleteEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "invalid request", err)
		return
	}

	n, err := h.employeeService.Delete(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, xerrors.ErrNotFound):
			response.NotFound(c, "employee not found")
		case errors.Is(err, xerrors.ErrInvalidInput):
			response.ValidationError(c, "no ids provided", nil)
		default:
			response.Error(c, http.StatusInternalServerError, "failed to delete employee", nil)
		}
		return
	}
	response.Success(c, http.StatusOK, fmt.Sprintf("%d employee(s) deleted successfully", n), gin.H{"count": n})
}
