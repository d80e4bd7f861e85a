// internal/domain/lead/dto.go
package lead

type AddLeadRequest struct {
	Name     string `json:"name" binding:"required,max=255"`
	Email    string `json:"email" binding:"required,email,max=255"`
	Source   string `json:"source" binding:"required"`
	Date     string `json:"date" binding:"required"`
	Location string `json:"location" binding:"required"`
	Language string `json:"language" binding:"required"`
}

type ImportCSVRequest struct {
	CSVData string `json:"csvData" binding:"required"`
}

type ImportCSVResult struct {
	Count int `json:"count"`
}

// UpdateLeadRequest is a partial update; nil fields are left untouched.
// ScheduleDate accepts RFC 3339, an empty string clears it.
type UpdateLeadRequest struct {
	Status       *string `json:"status"`
	Type         *string `json:"type"`
	ScheduleDate *string `json:"scheduleDate"`
}

type AssignmentResult struct {
	Lead         *Lead  `json:"lead"`
	AssigneeName string `json:"assigneeName,omitempty"`
	Assigned     bool   `json:"assigned"`
}
