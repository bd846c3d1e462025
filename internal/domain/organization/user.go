package organization

import (
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/erp/ausyexpo/internal/domain/shared"
)

// User roles.
const (
	RoleAdmin    = "ADMIN"
	RoleOwner    = "OWNER"
	RoleManager  = "MANAGER"
	RoleSupplier = "SUPPLIER"
	RoleBuyer    = "BUYER"
)

// Roles lists every user role.
var Roles = []string{RoleAdmin, RoleOwner, RoleManager, RoleSupplier, RoleBuyer}

// MinPasswordLength is enforced client-side when creating a user.
const MinPasswordLength = 6

// User is an account on the platform.
type User struct {
	shared.BaseEntity
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone,omitempty"`
	Address   string `json:"address,omitempty"`
	Role      string `json:"role"`
	BranchID  *int64 `json:"branchId,omitempty"`
	IsActive  bool   `json:"isActive"`
}

// FullName joins first and last name.
func (u User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// Status returns ACTIVE or INACTIVE.
func (u User) Status() string {
	if u.IsActive {
		return StatusActive
	}
	return StatusInactive
}

// CanManageAgreements reports whether the user may be assigned as an
// agreement's manager.
func (u User) CanManageAgreements() bool {
	return u.Role == RoleManager || u.Role == RoleOwner
}

// UserForm holds the editable fields of a user.
type UserForm struct {
	FirstName string `form:"firstName" validate:"required"`
	LastName  string `form:"lastName" validate:"required"`
	Email     string `form:"email" validate:"required,emailshape"`
	Password  string `form:"password"`
	Phone     string `form:"phone"`
	Address   string `form:"address"`
	Role      string `form:"role" validate:"required,oneof=ADMIN OWNER MANAGER SUPPLIER BUYER"`
	BranchID  string `form:"branchId" validate:"omitempty,refid"`
	IsActive  bool   `form:"isActive"`
}

// NewUserForm returns the create-mode defaults.
func NewUserForm() *UserForm {
	return &UserForm{Role: RoleBuyer, IsActive: true}
}

// Fill pre-populates the form from an existing user. The password is never
// returned by the backend and stays blank.
func (f *UserForm) Fill(u User) {
	f.FirstName = u.FirstName
	f.LastName = u.LastName
	f.Email = u.Email
	f.Password = ""
	f.Phone = u.Phone
	f.Address = u.Address
	f.Role = u.Role
	f.BranchID = ""
	if u.BranchID != nil {
		f.BranchID = shared.FormatID(*u.BranchID)
	}
	f.IsActive = u.IsActive
}

// Check enforces the password rules: required with a minimum length on
// create, optional on edit (blank keeps the current password).
func (f *UserForm) Check(mode shared.FormMode) []shared.FieldError {
	switch {
	case f.Password == "" && mode == shared.ModeCreate:
		return []shared.FieldError{{Field: "password", Message: "Password is required"}}
	case f.Password != "" && utf8.RuneCountInString(f.Password) < MinPasswordLength:
		return []shared.FieldError{{Field: "password", Message: "Password must be at least 6 characters"}}
	}
	return nil
}

// UserPayload is the request body for POST/PUT /api/users.
type UserPayload struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Password  string `json:"password,omitempty"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
	Role      string `json:"role"`
	BranchID  *int64 `json:"branchId"`
	IsActive  bool   `json:"isActive"`
}

// Payload maps the form to the wire shape; a blank password is omitted.
func (f *UserForm) Payload(shared.FormMode) (any, error) {
	p := UserPayload{
		FirstName: f.FirstName,
		LastName:  f.LastName,
		Email:     f.Email,
		Password:  f.Password,
		Phone:     f.Phone,
		Address:   f.Address,
		Role:      f.Role,
		IsActive:  f.IsActive,
	}
	if id := shared.ParseID(f.BranchID); id > 0 {
		p.BranchID = &id
	}
	return p, nil
}

// ToggleUserStatus flips isActive (PATCH /api/users/{id}/toggle-status).
func ToggleUserStatus() shared.Transition {
	return shared.Transition{Action: "toggle-status", Method: http.MethodPatch}
}
