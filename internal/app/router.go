// internal/app/router.go
package app

import (
	adminHandler "crm-service/internal/handlers/admin"
	dashboardHandler "crm-service/internal/handlers/dashboard"
	employeeHandler "crm-service/internal/handlers/employee"
	leadHandler "crm-service/internal/handlers/lead"
	"crm-service/internal/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handlers struct {
	AdminHandler     *adminHandler.AdminHandler
	EmployeeHandler  *employeeHandler.EmployeeHandler
	LeadHandler      *leadHandler.LeadHandler
	DashboardHandler *dashboardHandler.DashboardHandler

	AuthMiddleware       *middleware.AuthMiddleware
	AttendanceMiddleware *middleware.AttendanceMiddleware
}

func SetupRouter(r *gin.Engine, logger *zap.Logger, h *Handlers) {
	api := r.Group("/api")

	// ==================== Health Check ====================
	api.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok", "version": "1.0.0"})
	})

	// ==================== Admin Console ====================
	admin := api.Group("/admin")
	{
		admin.POST("/login", h.AdminHandler.Login)

		adminAuth := admin.Group("")
		adminAuth.Use(h.AuthMiddleware.Auth(), h.AuthMiddleware.AdminOnly())
		{
			adminAuth.GET("/settings", h.AdminHandler.Settings)
			adminAuth.PUT("/settings", h.AdminHandler.UpdateSettings)

			adminAuth.POST("/add-employee", h.AdminHandler.AddEmployee)
			adminAuth.GET("/employees", h.AdminHandler.ListEmployees)
			adminAuth.PUT("/edit-employee", h.AdminHandler.EditEmployee)
			adminAuth.PUT("/employee-status", h.AdminHandler.ToggleEmployeeStatus)
			adminAuth.DELETE("/delete-employee", h.AdminHandler.DeleteEmployee)
		}
	}

	// ==================== Employee App ====================
	employee := api.Group("/employee")
	{
		employee.POST("/login", h.EmployeeHandler.Login)

		employeeAuth := employee.Group("")
		employeeAuth.Use(h.AuthMiddleware.Auth())
		{
			employeeAuth.PUT("/:id/profile", h.EmployeeHandler.UpdateProfile)

			// Attendance state machine
			employeeAuth.GET("/dashboard-status/:id", h.EmployeeHandler.Status)
			employeeAuth.PUT("/:id/status", h.EmployeeHandler.ToggleStatus)
			employeeAuth.PUT("/:id/break", h.EmployeeHandler.ToggleBreak)
		}
	}

	// ==================== Leads ====================
	leads := api.Group("/leads")
	leads.Use(h.AuthMiddleware.Auth())
	{
		leads.POST("/add-manually", h.LeadHandler.AddManually)
		leads.POST("/add-csv", h.LeadHandler.ImportCSV)
		leads.GET("/all", h.LeadHandler.All)
		leads.GET("/assigned/:id", h.LeadHandler.Assigned)
		leads.GET("/scheduled/:id", h.LeadHandler.Scheduled)

		// Only checked-in employees may work leads.
		leads.PUT("/:id", h.AttendanceMiddleware.RequireCheckIn(), h.LeadHandler.Update)
	}

	// ==================== Dashboard ====================
	dashboard := api.Group("/dashboard")
	dashboard.Use(h.AuthMiddleware.Auth())
	{
		dashboard.GET("/stats", h.DashboardHandler.Stats)
	}
}
