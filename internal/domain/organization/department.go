package organization

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/erp/ausyexpo/internal/domain/shared"
)

// Department belongs to one branch.
type Department struct {
	shared.BaseEntity
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Branch      *shared.Ref     `json:"branch,omitempty"`
	Budget      decimal.Decimal `json:"budget"`
}

// DepartmentForm holds the editable fields of a department.
type DepartmentForm struct {
	Name        string `form:"name" validate:"required"`
	Description string `form:"description"`
	BranchID    string `form:"branchId" validate:"required,refid"`
	Budget      string `form:"budget" validate:"omitempty,nonnegative"`
}

// NewDepartmentForm returns the create-mode defaults.
func NewDepartmentForm() *DepartmentForm {
	return &DepartmentForm{Budget: "0"}
}

// Fill pre-populates the form from an existing department.
func (f *DepartmentForm) Fill(d Department) {
	f.Name = d.Name
	f.Description = d.Description
	f.BranchID = shared.FormatID(shared.RefID(d.Branch))
	f.Budget = d.Budget.String()
}

// DepartmentPayload is the request body for POST/PUT /api/departments.
type DepartmentPayload struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Branch      *shared.Ref     `json:"branch"`
	Budget      decimal.Decimal `json:"budget"`
}

// Payload maps the form to the wire shape.
func (f *DepartmentForm) Payload(shared.FormMode) (any, error) {
	budget, err := shared.ParseAmount(f.Budget)
	if err != nil {
		return nil, fmt.Errorf("budget: %w", err)
	}
	return DepartmentPayload{
		Name:        f.Name,
		Description: f.Description,
		Branch:      shared.NewRef(shared.ParseID(f.BranchID)),
		Budget:      budget,
	}, nil
}
