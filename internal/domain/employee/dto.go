// internal/domain/employee/dto.go
package employee

type CreateEmployeeRequest struct {
	FirstName string `json:"firstName" binding:"required,max=100"`
	LastName  string `json:"lastName" binding:"required,max=100"`
	Email     string `json:"email" binding:"required,email,max=255"`
	Location  string `json:"location"`
	Language  string `json:"language"`
}

type EditEmployeeRequest struct {
	ID        string `json:"id" binding:"required"`
	FirstName string `json:"firstName" binding:"required,max=100"`
	LastName  string `json:"lastName" binding:"required,max=100"`
	Location  string `json:"location"`
}

// DeleteEmployeeRequest carries either a single id or a bulk ids list.
type DeleteEmployeeRequest struct {
	ID  string   `json:"id"`
	IDs []string `json:"ids"`
}

type UpdateProfileRequest struct {
	FirstName string `json:"firstName" binding:"required,max=100"`
	LastName  string `json:"lastName" binding:"required,max=100"`
}

// ToggleAttendanceRequest flips check-in/check-out. Status "Active" means
// check in, anything else checks out.
type ToggleAttendanceRequest struct {
	Status string `json:"status" binding:"required"`
}

// AttendanceStatusResponse is the employee dashboard state. The tri-state
// booleans are null until the first transition of the day.
type AttendanceStatusResponse struct {
	CheckInStatus *bool        `json:"checkInStatus"`
	BreakStatus   *bool        `json:"breakStatus"`
	CheckInTime   string       `json:"checkInTime,omitempty"`
	CheckOutTime  string       `json:"checkOutTime,omitempty"`
	BreakHistory  []BreakEntry `json:"breakHistory"`
}

type ToggleAttendanceResponse struct {
	CheckInStatus *bool  `json:"checkInStatus"`
	Time          string `json:"time"`
}

type ToggleBreakResponse struct {
	BreakStatus *bool        `json:"breakStatus"`
	History     []BreakEntry `json:"history"`
}
