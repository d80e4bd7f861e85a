// internal/domain/employee/entity.go
package employee

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

const (
	StatusActive   = "Active"
	StatusInactive = "Inactive"
)

// CheckState is the daily attendance state of an employee. The legacy
// tri-state boolean (null/true/false) maps to Unset/CheckedIn/CheckedOut.
type CheckState string

const (
	CheckUnset CheckState = ""
	CheckedIn  CheckState = "in"
	CheckedOut CheckState = "out"
)

// TriState converts the state back to the nullable boolean the dashboard
// clients render (null = never checked in today, true = in, false = out).
func (s CheckState) TriState() *bool {
	switch s {
	case CheckedIn:
		v := true
		return &v
	case CheckedOut:
		v := false
		return &v
	default:
		return nil
	}
}

// BreakEntry is one row of the break history shown on the employee
// dashboard. Ended holds "..." while the break is still running.
type BreakEntry struct {
	Break string `bson:"break" json:"break"`
	Ended string `bson:"ended" json:"ended"`
	Date  string `bson:"date" json:"date"`
}

// BreakInProgress is the sentinel end value of a running break.
const BreakInProgress = "..."

type Employee struct {
	ID         bson.ObjectID `bson:"_id,omitempty" json:"id"`
	FirstName  string        `bson:"first_name" json:"firstName"`
	LastName   string        `bson:"last_name" json:"lastName"`
	EmployeeID string        `bson:"employee_id" json:"employeeId"`
	Email      string        `bson:"email" json:"email"`
	Role       string        `bson:"role" json:"role"`
	Status     string        `bson:"status" json:"status"`
	Location   string        `bson:"location" json:"location"`

	// Language is stored lowercased; lead routing matches on the exact
	// lowercased value.
	Language string `bson:"language" json:"language"`

	// Assigned counts currently open leads (capacity counter), Closed is the
	// lifetime closed total.
	Assigned int `bson:"assigned" json:"assigned"`
	Closed   int `bson:"closed" json:"closed"`

	// Attendance fields refer to AttendanceDate and are lazily reset on the
	// first status read of a new calendar day.
	CheckState       CheckState   `bson:"check_state" json:"-"`
	OnBreak          bool         `bson:"on_break" json:"-"`
	LastCheckInTime  string       `bson:"last_check_in_time,omitempty" json:"lastCheckInTime,omitempty"`
	LastCheckOutTime string       `bson:"last_check_out_time,omitempty" json:"lastCheckOutTime,omitempty"`
	BreakHistory     []BreakEntry `bson:"break_history,omitempty" json:"breakHistory,omitempty"`
	AttendanceDate   string       `bson:"attendance_date,omitempty" json:"-"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}

// FullName joins first and last name for display strings.
func (e *Employee) FullName() string {
	if e.LastName == "" {
		return e.FirstName
	}
	return e.FirstName + " " + e.LastName
}
