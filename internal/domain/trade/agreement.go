package trade

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/erp/ausyexpo/internal/domain/shared"
)

// Agreement enumerations; values are display strings as stored by the backend.
var (
	AgreementTypes = []string{
		"Export Contract", "Import Contract", "Partnership Agreement", "Service Agreement",
		"Supply Agreement", "Distribution Agreement", "Manufacturing Agreement", "Licensing Agreement",
	}
	AgreementStatuses   = []string{"Draft", "Under Review", "Approved", "Active", "Completed", "Cancelled", "Expired", "Suspended"}
	AgreementPriorities = []string{"Low", "Medium", "High", "Critical"}
)

// Agreement is a contract with a client, owned by a branch and a manager.
type Agreement struct {
	shared.BaseEntity
	Title           string            `json:"title"`
	AgreementType   string            `json:"agreementType"`
	ClientName      string            `json:"clientName"`
	ClientContact   string            `json:"clientContact,omitempty"`
	ClientEmail     string            `json:"clientEmail,omitempty"`
	Description     string            `json:"description,omitempty"`
	ContractValue   decimal.Decimal   `json:"contractValue"`
	StartDate       *shared.LocalDate `json:"startDate,omitempty"`
	EndDate         *shared.LocalDate `json:"endDate,omitempty"`
	Status          string            `json:"status"`
	Terms           string            `json:"terms,omitempty"`
	Deliverables    string            `json:"deliverables,omitempty"`
	PaymentTerms    string            `json:"paymentTerms,omitempty"`
	IsActive        bool              `json:"isActive"`
	DocumentPath    string            `json:"documentPath,omitempty"`
	Priority        string            `json:"priority"`
	Branch          *shared.Ref       `json:"branch,omitempty"`
	AssignedManager *shared.Ref       `json:"assignedManager,omitempty"`
}

// AgreementForm holds the editable fields of an agreement.
type AgreementForm struct {
	Title             string `form:"title" validate:"required"`
	AgreementType     string `form:"agreementType" validate:"required"`
	ClientName        string `form:"clientName" validate:"required"`
	ClientContact     string `form:"clientContact"`
	ClientEmail       string `form:"clientEmail" validate:"omitempty,emailshape"`
	Description       string `form:"description"`
	ContractValue     string `form:"contractValue" validate:"omitempty,nonnegative"`
	StartDate         string `form:"startDate" validate:"omitempty,date"`
	EndDate           string `form:"endDate" validate:"omitempty,date"`
	Status            string `form:"status" validate:"required"`
	Terms             string `form:"terms"`
	Deliverables      string `form:"deliverables"`
	PaymentTerms      string `form:"paymentTerms"`
	IsActive          bool   `form:"isActive"`
	DocumentPath      string `form:"documentPath"`
	Priority          string `form:"priority" validate:"required"`
	BranchID          string `form:"branchId" validate:"omitempty,refid"`
	AssignedManagerID string `form:"assignedManagerId" validate:"omitempty,refid"`
}

// NewAgreementForm returns the create-mode defaults.
func NewAgreementForm() *AgreementForm {
	return &AgreementForm{Status: "Draft", Priority: "Medium", IsActive: true}
}

// Fill pre-populates the form from an existing agreement.
func (f *AgreementForm) Fill(a Agreement) {
	f.Title = a.Title
	f.AgreementType = a.AgreementType
	f.ClientName = a.ClientName
	f.ClientContact = a.ClientContact
	f.ClientEmail = a.ClientEmail
	f.Description = a.Description
	f.ContractValue = a.ContractValue.String()
	f.StartDate, f.EndDate = "", ""
	if a.StartDate != nil {
		f.StartDate = a.StartDate.String()
	}
	if a.EndDate != nil {
		f.EndDate = a.EndDate.String()
	}
	f.Status = a.Status
	f.Terms = a.Terms
	f.Deliverables = a.Deliverables
	f.PaymentTerms = a.PaymentTerms
	f.IsActive = a.IsActive
	f.DocumentPath = a.DocumentPath
	f.Priority = a.Priority
	f.BranchID = shared.FormatID(shared.RefID(a.Branch))
	f.AssignedManagerID = shared.FormatID(shared.RefID(a.AssignedManager))
}

// Enums lists the option values of the enumerated fields.
func (f *AgreementForm) Enums() map[string][]string {
	return map[string][]string{
		"agreementType": AgreementTypes,
		"status":        AgreementStatuses,
		"priority":      AgreementPriorities,
	}
}

// Check validates the enumerations, whose values contain spaces, and the
// date range.
func (f *AgreementForm) Check(shared.FormMode) []shared.FieldError {
	var errs []shared.FieldError
	errs = append(errs, shared.CheckOneOf("agreementType", f.AgreementType, AgreementTypes)...)
	errs = append(errs, shared.CheckOneOf("status", f.Status, AgreementStatuses)...)
	errs = append(errs, shared.CheckOneOf("priority", f.Priority, AgreementPriorities)...)
	if f.StartDate != "" && f.EndDate != "" {
		start, errStart := shared.ParseLocalDate(f.StartDate)
		end, errEnd := shared.ParseLocalDate(f.EndDate)
		if errStart == nil && errEnd == nil && end.Before(start.Time) {
			errs = append(errs, shared.FieldError{Field: "endDate", Message: "End date must not be before start date"})
		}
	}
	return errs
}

// AgreementPayload is the request body for POST/PUT /api/agreements.
type AgreementPayload struct {
	Title           string            `json:"title"`
	AgreementType   string            `json:"agreementType"`
	ClientName      string            `json:"clientName"`
	ClientContact   string            `json:"clientContact"`
	ClientEmail     string            `json:"clientEmail"`
	Description     string            `json:"description"`
	ContractValue   decimal.Decimal   `json:"contractValue"`
	StartDate       *shared.LocalDate `json:"startDate"`
	EndDate         *shared.LocalDate `json:"endDate"`
	Status          string            `json:"status"`
	Terms           string            `json:"terms"`
	Deliverables    string            `json:"deliverables"`
	PaymentTerms    string            `json:"paymentTerms"`
	IsActive        bool              `json:"isActive"`
	DocumentPath    string            `json:"documentPath"`
	Priority        string            `json:"priority"`
	Branch          *shared.Ref       `json:"branch"`
	AssignedManager *shared.Ref       `json:"assignedManager"`
}

// Payload maps the form to the wire shape.
func (f *AgreementForm) Payload(shared.FormMode) (any, error) {
	value, err := shared.ParseAmount(f.ContractValue)
	if err != nil {
		return nil, fmt.Errorf("contractValue: %w", err)
	}
	p := AgreementPayload{
		Title:           f.Title,
		AgreementType:   f.AgreementType,
		ClientName:      f.ClientName,
		ClientContact:   f.ClientContact,
		ClientEmail:     f.ClientEmail,
		Description:     f.Description,
		ContractValue:   value,
		Status:          f.Status,
		Terms:           f.Terms,
		Deliverables:    f.Deliverables,
		PaymentTerms:    f.PaymentTerms,
		IsActive:        f.IsActive,
		DocumentPath:    f.DocumentPath,
		Priority:        f.Priority,
		Branch:          shared.NewRef(shared.ParseID(f.BranchID)),
		AssignedManager: shared.NewRef(shared.ParseID(f.AssignedManagerID)),
	}
	for _, d := range []struct {
		name string
		in   string
		out  **shared.LocalDate
	}{
		{"startDate", f.StartDate, &p.StartDate},
		{"endDate", f.EndDate, &p.EndDate},
	} {
		if d.in == "" {
			continue
		}
		parsed, err := shared.ParseLocalDate(d.in)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", d.name, err)
		}
		*d.out = &parsed
	}
	return p, nil
}
