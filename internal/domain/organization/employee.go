package organization

import (
	"fmt"
	"strings"

	"github.com/erp/ausyexpo/internal/domain/shared"
)

// Genders lists the accepted gender values.
var Genders = []string{"MALE", "FEMALE", "OTHER"}

// NoDepartment is shown for employees without a resolvable department.
const NoDepartment = "No Department"

// Employee works in a department.
type Employee struct {
	shared.BaseEntity
	FirstName          string            `json:"firstName"`
	LastName           string            `json:"lastName"`
	DateOfBirth        *shared.LocalDate `json:"dateOfBirth,omitempty"`
	Gender             string            `json:"gender"`
	ContactInformation string            `json:"contactInformation"`
	Department         *shared.Ref       `json:"department,omitempty"`
}

// FullName joins first and last name.
func (e Employee) FullName() string {
	return strings.TrimSpace(e.FirstName + " " + e.LastName)
}

// EmployeeForm holds the editable fields of an employee.
type EmployeeForm struct {
	FirstName          string `form:"firstName" validate:"required"`
	LastName           string `form:"lastName" validate:"required"`
	DateOfBirth        string `form:"dateOfBirth" validate:"required,date"`
	Gender             string `form:"gender" validate:"required,oneof=MALE FEMALE OTHER"`
	ContactInformation string `form:"contactInformation" validate:"required"`
	DepartmentID       string `form:"departmentId" validate:"omitempty,refid"`
}

// NewEmployeeForm returns the create-mode defaults.
func NewEmployeeForm() *EmployeeForm {
	return &EmployeeForm{Gender: "MALE"}
}

// Fill pre-populates the form from an existing employee.
func (f *EmployeeForm) Fill(e Employee) {
	f.FirstName = e.FirstName
	f.LastName = e.LastName
	f.DateOfBirth = ""
	if e.DateOfBirth != nil {
		f.DateOfBirth = e.DateOfBirth.String()
	}
	f.Gender = e.Gender
	f.ContactInformation = e.ContactInformation
	f.DepartmentID = shared.FormatID(shared.RefID(e.Department))
}

// EmployeePayload is the request body for POST/PUT /api/employees.
type EmployeePayload struct {
	FirstName          string            `json:"firstName"`
	LastName           string            `json:"lastName"`
	DateOfBirth        *shared.LocalDate `json:"dateOfBirth"`
	Gender             string            `json:"gender"`
	ContactInformation string            `json:"contactInformation"`
	Department         *shared.Ref       `json:"department"`
}

// Payload maps the form to the wire shape.
func (f *EmployeeForm) Payload(shared.FormMode) (any, error) {
	p := EmployeePayload{
		FirstName:          f.FirstName,
		LastName:           f.LastName,
		Gender:             f.Gender,
		ContactInformation: f.ContactInformation,
		Department:         shared.NewRef(shared.ParseID(f.DepartmentID)),
	}
	if f.DateOfBirth != "" {
		dob, err := shared.ParseLocalDate(f.DateOfBirth)
		if err != nil {
			return nil, fmt.Errorf("dateOfBirth: %w", err)
		}
		p.DateOfBirth = &dob
	}
	return p, nil
}
