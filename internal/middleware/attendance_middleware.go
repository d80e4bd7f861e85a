// internal/middleware/attendance_middleware.go
package middleware

import (
	"crm-service/internal/domain/employee"
	"crm-service/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type AttendanceMiddleware struct {
	employees employee.Repository
}

func NewAttendanceMiddleware(employees employee.Repository) *AttendanceMiddleware {
	return &AttendanceMiddleware{employees: employees}
}

// RequireCheckIn gates lead mutations on the caller being checked in today.
// The employee is resolved from the authenticated identity, with an
// employeeId request field as fallback for unauthenticated tooling.
func (m *AttendanceMiddleware) RequireCheckIn() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := GetIdentityID(c)
		if !ok || id == "" {
			id = c.Query("employeeId")
		}
		if id == "" {
			response.ValidationError(c, "employee id missing", nil)
			return
		}

		emp, err := m.employees.FindByID(c.Request.Context(), id)
		if err != nil || emp.CheckState != employee.CheckedIn {
			response.Forbidden(c, "to access leads you need to check in")
			return
		}
		c.Next()
	}
}
