package inventory

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/erp/ausyexpo/internal/domain/shared"
)

// Supply categories.
var SupplyCategories = []string{"GENERAL", "RAW_MATERIALS", "EQUIPMENT", "PACKAGING", "OFFICE_SUPPLIES", "MAINTENANCE"}

// Supply request statuses. Transitions between them are not restricted.
var SupplyStatuses = []string{"PENDING", "APPROVED", "ORDERED", "DELIVERED", "COMPLETED", "CANCELLED"}

// SupplyUnits lists the units of measure.
var SupplyUnits = []string{"PCS", "KG", "TONS", "METERS", "LITERS", "BOXES", "SETS"}

// Supply is a purchase request for materials from a supplier.
type Supply struct {
	shared.BaseEntity
	ItemName        string          `json:"itemName"`
	SupplierName    string          `json:"supplierName"`
	SupplierContact string          `json:"supplierContact,omitempty"`
	Category        string          `json:"category"`
	Status          string          `json:"status"`
	Description     string          `json:"description,omitempty"`
	Unit            string          `json:"unit,omitempty"`
	Quantity        int             `json:"quantity"`
	UnitPrice       decimal.Decimal `json:"unitPrice"`
	MinimumQuantity int             `json:"minimumQuantity,omitempty"`
	Branch          *shared.Ref     `json:"branch,omitempty"`
}

// TotalCost returns quantity × unit price.
func (s Supply) TotalCost() decimal.Decimal {
	return s.UnitPrice.Mul(decimal.NewFromInt(int64(s.Quantity)))
}

// BelowMinimum reports whether the quantity has fallen under the reorder level.
func (s Supply) BelowMinimum() bool {
	return s.MinimumQuantity > 0 && s.Quantity < s.MinimumQuantity
}

// SupplyForm holds the editable fields of a supply request.
type SupplyForm struct {
	ItemName        string `form:"itemName" validate:"required"`
	SupplierName    string `form:"supplierName" validate:"required"`
	SupplierContact string `form:"supplierContact"`
	Category        string `form:"category" validate:"required,oneof=GENERAL RAW_MATERIALS EQUIPMENT PACKAGING OFFICE_SUPPLIES MAINTENANCE"`
	Status          string `form:"status" validate:"required,oneof=PENDING APPROVED ORDERED DELIVERED COMPLETED CANCELLED"`
	Description     string `form:"description"`
	Unit            string `form:"unit" validate:"omitempty,oneof=PCS KG TONS METERS LITERS BOXES SETS"`
	Quantity        string `form:"quantity" validate:"required,integer,positive"`
	UnitPrice       string `form:"unitPrice" validate:"required,nonnegative"`
	MinimumQuantity string `form:"minimumQuantity" validate:"omitempty,integer,nonnegative"`
	BranchID        string `form:"branchId" validate:"required,refid"`
}

// NewSupplyForm returns the create-mode defaults.
func NewSupplyForm() *SupplyForm {
	return &SupplyForm{Category: "GENERAL", Status: "PENDING", Unit: "PCS"}
}

// Fill pre-populates the form from an existing supply.
func (f *SupplyForm) Fill(s Supply) {
	f.ItemName = s.ItemName
	f.SupplierName = s.SupplierName
	f.SupplierContact = s.SupplierContact
	f.Category = s.Category
	f.Status = s.Status
	f.Description = s.Description
	f.Unit = s.Unit
	f.Quantity = fmt.Sprint(s.Quantity)
	f.UnitPrice = s.UnitPrice.String()
	f.MinimumQuantity = fmt.Sprint(s.MinimumQuantity)
	f.BranchID = shared.FormatID(shared.RefID(s.Branch))
}

// SupplyPayload is the request body for POST/PUT /api/supplies.
type SupplyPayload struct {
	ItemName        string          `json:"itemName"`
	SupplierName    string          `json:"supplierName"`
	SupplierContact string          `json:"supplierContact"`
	Category        string          `json:"category"`
	Status          string          `json:"status"`
	Description     string          `json:"description"`
	Unit            string          `json:"unit"`
	Quantity        int             `json:"quantity"`
	UnitPrice       decimal.Decimal `json:"unitPrice"`
	MinimumQuantity int             `json:"minimumQuantity"`
	Branch          *shared.Ref     `json:"branch"`
}

// Payload maps the form to the wire shape.
func (f *SupplyForm) Payload(shared.FormMode) (any, error) {
	qty, err := shared.ParseInt(f.Quantity)
	if err != nil {
		return nil, fmt.Errorf("quantity: %w", err)
	}
	minQty, err := shared.ParseInt(f.MinimumQuantity)
	if err != nil {
		return nil, fmt.Errorf("minimumQuantity: %w", err)
	}
	price, err := shared.ParseAmount(f.UnitPrice)
	if err != nil {
		return nil, fmt.Errorf("unitPrice: %w", err)
	}
	return SupplyPayload{
		ItemName:        f.ItemName,
		SupplierName:    f.SupplierName,
		SupplierContact: f.SupplierContact,
		Category:        f.Category,
		Status:          f.Status,
		Description:     f.Description,
		Unit:            f.Unit,
		Quantity:        qty,
		UnitPrice:       price,
		MinimumQuantity: minQty,
		Branch:          shared.NewRef(shared.ParseID(f.BranchID)),
	}, nil
}

// SupplyStatusTransition sets a supply's status (PUT /api/supplies/{id}/status?status=X).
func SupplyStatusTransition(status string) shared.Transition {
	return shared.Transition{Action: "status", Query: map[string]string{"status": status}}
}
