// Package inventory models stock lots and supply requests.
package inventory

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/erp/ausyexpo/internal/domain/shared"
)

// Stock release states, derived from ReleaseDate.
const (
	StockUnreleased = "UNRELEASED"
	StockReleased   = "RELEASED"
)

// StockStatuses lists the values of the stock status filter.
var StockStatuses = []string{StockUnreleased, StockReleased}

// Stock is a lot of material held until it is released to production.
type Stock struct {
	shared.BaseEntity
	StockType    string            `json:"stockType"`
	MaterialType string            `json:"materialType"`
	Quantity     int               `json:"quantity"`
	Price        decimal.Decimal   `json:"price"`
	PurchaseDate *shared.LocalDate `json:"purchaseDate,omitempty"`
	ReleaseDate  *shared.LocalDate `json:"releaseDate,omitempty"`
}

// Released reports whether the lot has a release date.
func (s Stock) Released() bool {
	return s.ReleaseDate != nil && !s.ReleaseDate.IsZero()
}

// Status returns RELEASED or UNRELEASED.
func (s Stock) Status() string {
	if s.Released() {
		return StockReleased
	}
	return StockUnreleased
}

// Value returns quantity × price.
func (s Stock) Value() decimal.Decimal {
	return s.Price.Mul(decimal.NewFromInt(int64(s.Quantity)))
}

// StockForm holds the editable fields of a stock lot.
type StockForm struct {
	StockType    string `form:"stockType" validate:"required"`
	MaterialType string `form:"materialType" validate:"required"`
	Quantity     string `form:"quantity" validate:"required,integer,positive"`
	Price        string `form:"price" validate:"required,positive"`
	PurchaseDate string `form:"purchaseDate" validate:"required,date"`
	ReleaseDate  string `form:"releaseDate" validate:"omitempty,date"`
}

// NewStockForm returns the create-mode defaults.
func NewStockForm() *StockForm {
	return &StockForm{}
}

// Fill pre-populates the form from an existing lot.
func (f *StockForm) Fill(s Stock) {
	f.StockType = s.StockType
	f.MaterialType = s.MaterialType
	f.Quantity = fmt.Sprint(s.Quantity)
	f.Price = s.Price.String()
	f.PurchaseDate = ""
	if s.PurchaseDate != nil {
		f.PurchaseDate = s.PurchaseDate.String()
	}
	f.ReleaseDate = ""
	if s.ReleaseDate != nil {
		f.ReleaseDate = s.ReleaseDate.String()
	}
}

// StockPayload is the request body for POST/PUT /api/stock.
type StockPayload struct {
	StockType    string            `json:"stockType"`
	MaterialType string            `json:"materialType"`
	Quantity     int               `json:"quantity"`
	Price        decimal.Decimal   `json:"price"`
	PurchaseDate *shared.LocalDate `json:"purchaseDate"`
	ReleaseDate  *shared.LocalDate `json:"releaseDate"`
}

// Payload maps the form to the wire shape.
func (f *StockForm) Payload(shared.FormMode) (any, error) {
	qty, err := shared.ParseInt(f.Quantity)
	if err != nil {
		return nil, fmt.Errorf("quantity: %w", err)
	}
	price, err := shared.ParseAmount(f.Price)
	if err != nil {
		return nil, fmt.Errorf("price: %w", err)
	}
	p := StockPayload{
		StockType:    f.StockType,
		MaterialType: f.MaterialType,
		Quantity:     qty,
		Price:        price,
	}
	if p.PurchaseDate, err = optionalDate(f.PurchaseDate); err != nil {
		return nil, fmt.Errorf("purchaseDate: %w", err)
	}
	if p.ReleaseDate, err = optionalDate(f.ReleaseDate); err != nil {
		return nil, fmt.Errorf("releaseDate: %w", err)
	}
	return p, nil
}

func optionalDate(s string) (*shared.LocalDate, error) {
	if s == "" {
		return nil, nil
	}
	d, err := shared.ParseLocalDate(s)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// ReleaseTransition marks a lot as released (PUT /api/stock/{id}/release).
func ReleaseTransition() shared.Transition {
	return shared.Transition{Action: "release"}
}
