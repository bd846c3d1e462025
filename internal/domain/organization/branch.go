// Package organization models branches, departments, employees and users.
package organization

import "github.com/erp/ausyexpo/internal/domain/shared"

// Branch activity filter values.
const (
	StatusActive   = "ACTIVE"
	StatusInactive = "INACTIVE"
)

// ActivityStatuses lists the values of the active/inactive filter.
var ActivityStatuses = []string{StatusActive, StatusInactive}

// Branch is a company site. Location and ContactDetails mirror Address and
// Phone for older backend consumers.
type Branch struct {
	shared.BaseEntity
	Name           string `json:"name"`
	Address        string `json:"address"`
	Location       string `json:"location,omitempty"`
	Phone          string `json:"phone"`
	ContactDetails string `json:"contactDetails,omitempty"`
	Email          string `json:"email"`
	Manager        string `json:"manager"`
	Description    string `json:"description,omitempty"`
	IsActive       bool   `json:"isActive"`
}

// Status returns ACTIVE or INACTIVE.
func (b Branch) Status() string {
	if b.IsActive {
		return StatusActive
	}
	return StatusInactive
}

// BranchForm holds the editable fields of a branch.
type BranchForm struct {
	Name        string `form:"name" validate:"required"`
	Address     string `form:"address" validate:"required"`
	Phone       string `form:"phone" validate:"required"`
	Email       string `form:"email" validate:"required,emailshape"`
	Manager     string `form:"manager" validate:"required"`
	Description string `form:"description"`
	IsActive    bool   `form:"isActive"`
}

// NewBranchForm returns the create-mode defaults.
func NewBranchForm() *BranchForm {
	return &BranchForm{IsActive: true}
}

// Fill pre-populates the form from an existing branch.
func (f *BranchForm) Fill(b Branch) {
	f.Name = b.Name
	f.Address = b.Address
	f.Phone = b.Phone
	f.Email = b.Email
	f.Manager = b.Manager
	f.Description = b.Description
	f.IsActive = b.IsActive
}

// BranchPayload is the request body for POST/PUT /api/branches.
type BranchPayload struct {
	Name           string `json:"name"`
	Address        string `json:"address"`
	Location       string `json:"location"`
	Phone          string `json:"phone"`
	ContactDetails string `json:"contactDetails"`
	Email          string `json:"email"`
	Manager        string `json:"manager"`
	Description    string `json:"description"`
	IsActive       bool   `json:"isActive"`
}

// Payload maps the form to the wire shape.
func (f *BranchForm) Payload(shared.FormMode) (any, error) {
	return BranchPayload{
		Name:           f.Name,
		Address:        f.Address,
		Location:       f.Address,
		Phone:          f.Phone,
		ContactDetails: f.Phone,
		Email:          f.Email,
		Manager:        f.Manager,
		Description:    f.Description,
		IsActive:       f.IsActive,
	}, nil
}

// ToggleBranchStatus flips isActive (PUT /api/branches/{id}/toggle-status).
func ToggleBranchStatus() shared.Transition {
	return shared.Transition{Action: "toggle-status"}
}
