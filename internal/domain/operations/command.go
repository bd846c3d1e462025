// Package operations models directives issued by managers to staff.
package operations

import (
	"fmt"
	"strings"

	"github.com/erp/ausyexpo/internal/domain/shared"
)

// Command enumerations.
var (
	CommandTypes = []string{
		"GENERAL_INSTRUCTION", "TASK_ASSIGNMENT", "POLICY_UPDATE", "URGENT_NOTICE", "OPERATIONAL_CHANGE",
		"SAFETY_DIRECTIVE", "TRAINING_REQUIREMENT", "PERFORMANCE_REVIEW", "MAINTENANCE_REQUEST", "OTHER",
	}
	CommandPriorities = []string{"LOW", "MEDIUM", "HIGH", "URGENT"}
	CommandStatuses   = []string{"PENDING", "IN_PROGRESS", "COMPLETED", "CANCELLED", "ON_HOLD"}
)

// MissingIssuerMessage is reported when a command is submitted without a
// signed-in user.
const MissingIssuerMessage = "User information not found. Please log in again."

// Person is the user shape embedded in command responses.
type Person struct {
	ID        int64  `json:"id"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
}

// Name joins first and last name.
func (p *Person) Name() string {
	if p == nil {
		return ""
	}
	return strings.TrimSpace(p.FirstName + " " + p.LastName)
}

// PersonID returns the person's id, or 0 when nil.
func PersonID(p *Person) int64 {
	if p == nil {
		return 0
	}
	return p.ID
}

// Command is an instruction issued by one user and optionally assigned to another.
type Command struct {
	shared.BaseEntity
	Title         string                `json:"title"`
	Description   string                `json:"description"`
	Type          string                `json:"type"`
	Priority      string                `json:"priority"`
	Status        string                `json:"status"`
	DueDate       *shared.LocalDateTime `json:"dueDate,omitempty"`
	CompletedDate *shared.LocalDateTime `json:"completedDate,omitempty"`
	Notes         string                `json:"notes,omitempty"`
	IssuedBy      *Person               `json:"issuedBy,omitempty"`
	AssignedTo    *Person               `json:"assignedTo,omitempty"`
}

// CommandForm holds the editable fields of a command. IssuedByID is not user
// editable; it is stamped from the session before submission.
type CommandForm struct {
	Title        string `form:"title" validate:"required"`
	Description  string `form:"description" validate:"required"`
	Type         string `form:"type" validate:"required,oneof=GENERAL_INSTRUCTION TASK_ASSIGNMENT POLICY_UPDATE URGENT_NOTICE OPERATIONAL_CHANGE SAFETY_DIRECTIVE TRAINING_REQUIREMENT PERFORMANCE_REVIEW MAINTENANCE_REQUEST OTHER"`
	Priority     string `form:"priority" validate:"required,oneof=LOW MEDIUM HIGH URGENT"`
	Status       string `form:"status" validate:"required,oneof=PENDING IN_PROGRESS COMPLETED CANCELLED ON_HOLD"`
	DueDate      string `form:"dueDate" validate:"omitempty,localdatetime"`
	AssignedToID string `form:"assignedTo" validate:"omitempty,refid"`
	Notes        string `form:"notes"`
	IssuedByID   int64  `form:"-"`
}

// NewCommandForm returns the create-mode defaults.
func NewCommandForm() *CommandForm {
	return &CommandForm{Type: "GENERAL_INSTRUCTION", Priority: "MEDIUM", Status: "PENDING"}
}

// Fill pre-populates the form from an existing command. The due date is
// rendered at minute precision.
func (f *CommandForm) Fill(c Command) {
	f.Title = c.Title
	f.Description = c.Description
	f.Type = c.Type
	f.Priority = c.Priority
	f.Status = c.Status
	f.DueDate = ""
	if c.DueDate != nil && !c.DueDate.IsZero() {
		f.DueDate = c.DueDate.Format("2006-01-02T15:04")
	}
	f.AssignedToID = shared.FormatID(PersonID(c.AssignedTo))
	f.Notes = c.Notes
}

// SetIssuer stamps the signed-in user as issuer.
func (f *CommandForm) SetIssuer(userID int64) {
	f.IssuedByID = userID
}

// Check rejects submission when no issuer is known.
func (f *CommandForm) Check(shared.FormMode) []shared.FieldError {
	if f.IssuedByID <= 0 {
		return []shared.FieldError{{Field: "issuedBy", Message: MissingIssuerMessage}}
	}
	return nil
}

// CommandPayload is the request body for POST/PUT /api/commands.
type CommandPayload struct {
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Type        string      `json:"type"`
	Priority    string      `json:"priority"`
	Status      string      `json:"status"`
	DueDate     *string     `json:"dueDate"`
	AssignedTo  *shared.Ref `json:"assignedTo"`
	IssuedBy    *shared.Ref `json:"issuedBy"`
	Notes       string      `json:"notes"`
}

// Payload maps the form to the wire shape.
func (f *CommandForm) Payload(shared.FormMode) (any, error) {
	p := CommandPayload{
		Title:       f.Title,
		Description: f.Description,
		Type:        f.Type,
		Priority:    f.Priority,
		Status:      f.Status,
		AssignedTo:  shared.NewRef(shared.ParseID(f.AssignedToID)),
		IssuedBy:    shared.NewRef(f.IssuedByID),
		Notes:       f.Notes,
	}
	if f.DueDate != "" {
		due, err := shared.ParseLocalDateTime(f.DueDate)
		if err != nil {
			return nil, fmt.Errorf("dueDate: %w", err)
		}
		s := due.String()
		p.DueDate = &s
	}
	return p, nil
}

// CommandStatusTransition sets the command status
// (PUT /api/commands/{id}/status?status=X).
func CommandStatusTransition(status string) shared.Transition {
	return shared.Transition{Action: "status", Query: map[string]string{"status": status}}
}
