// internal/domain/lead/entity.go
package lead

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

const (
	StatusOngoing = "ongoing"
	StatusClosed  = "closed"

	// TypeNone is the placeholder classification of a fresh lead.
	TypeNone = "-"
)

// NormalizeStatus folds the status casing variants seen in imports and
// client payloads onto the canonical lowercase values.
func NormalizeStatus(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

type Lead struct {
	ID       bson.ObjectID `bson:"_id,omitempty" json:"id"`
	Name     string        `bson:"name" json:"name"`
	Email    string        `bson:"email" json:"email"`
	Source   string        `bson:"source" json:"source"`
	Date     string        `bson:"date" json:"date"`
	Location string        `bson:"location" json:"location"`
	Language string        `bson:"language" json:"language"`

	Status       string         `bson:"status" json:"status"`
	Type         string         `bson:"type" json:"type"`
	ScheduleDate *time.Time     `bson:"schedule_date,omitempty" json:"scheduleDate,omitempty"`
	AssignedTo   *bson.ObjectID `bson:"assigned_to,omitempty" json:"assignedTo,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}

// IsClosed reports whether the lead has reached its terminal status.
func (l *Lead) IsClosed() bool {
	return NormalizeStatus(l.Status) == StatusClosed
}

// WithAssignee is a lead joined with display fields of its assignee.
type WithAssignee struct {
	Lead               `bson:",inline"`
	AssigneeName       string `bson:"assignee_name,omitempty" json:"assigneeName,omitempty"`
	AssigneeEmployeeID string `bson:"assignee_employee_id,omitempty" json:"assigneeEmployeeId,omitempty"`
}
