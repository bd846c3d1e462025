// Package trade models customer orders and client agreements.
package trade

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/erp/ausyexpo/internal/domain/shared"
)

// Order enumerations. Status changes are not restricted client-side.
var (
	OrderStatuses   = []string{"PENDING", "CONFIRMED", "IN_PRODUCTION", "READY_FOR_DELIVERY", "DELIVERED", "CANCELLED"}
	OrderPriorities = []string{"LOW", "MEDIUM", "HIGH", "URGENT"}
	PaymentStatuses = []string{"PENDING", "PARTIAL", "PAID", "OVERDUE"}
	PaymentMethods  = []string{"CASH", "BANK_TRANSFER", "CREDIT_CARD", "CHECK", "OTHER"}
)

// Order is a customer's garment order.
type Order struct {
	shared.BaseEntity
	OrderNumber          string                `json:"orderNumber,omitempty"`
	CustomerName         string                `json:"customerName"`
	CustomerEmail        string                `json:"customerEmail,omitempty"`
	CustomerPhone        string                `json:"customerPhone,omitempty"`
	CustomerAddress      string                `json:"customerAddress,omitempty"`
	ProductName          string                `json:"productName"`
	ProductCategory      string                `json:"productCategory,omitempty"`
	ProductDescription   string                `json:"productDescription,omitempty"`
	Quantity             int                   `json:"quantity"`
	UnitPrice            decimal.Decimal       `json:"unitPrice"`
	TotalAmount          decimal.Decimal       `json:"totalAmount"`
	Status               string                `json:"status"`
	Priority             string                `json:"priority"`
	ExpectedDeliveryDate *shared.LocalDateTime `json:"expectedDeliveryDate,omitempty"`
	PaymentStatus        string                `json:"paymentStatus"`
	PaymentMethod        string                `json:"paymentMethod,omitempty"`
	Notes                string                `json:"notes,omitempty"`
	Specifications       string                `json:"specifications,omitempty"`
	Branch               *shared.Ref           `json:"branch,omitempty"`
}

// ComputeTotal returns quantity × unit price rounded to cents.
func ComputeTotal(quantity int, unitPrice decimal.Decimal) decimal.Decimal {
	return unitPrice.Mul(decimal.NewFromInt(int64(quantity))).Round(2)
}

// OrderForm holds the editable fields of an order. TotalAmount is derived.
type OrderForm struct {
	OrderNumber          string `form:"orderNumber"`
	CustomerName         string `form:"customerName" validate:"required"`
	CustomerEmail        string `form:"customerEmail" validate:"omitempty,emailshape"`
	CustomerPhone        string `form:"customerPhone"`
	CustomerAddress      string `form:"customerAddress"`
	ProductName          string `form:"productName" validate:"required"`
	ProductCategory      string `form:"productCategory"`
	ProductDescription   string `form:"productDescription"`
	Quantity             string `form:"quantity" validate:"required,integer,positive"`
	UnitPrice            string `form:"unitPrice" validate:"required,positive"`
	TotalAmount          string `form:"totalAmount"`
	Status               string `form:"status" validate:"required,oneof=PENDING CONFIRMED IN_PRODUCTION READY_FOR_DELIVERY DELIVERED CANCELLED"`
	Priority             string `form:"priority" validate:"required,oneof=LOW MEDIUM HIGH URGENT"`
	ExpectedDeliveryDate string `form:"expectedDeliveryDate" validate:"omitempty,date"`
	PaymentStatus        string `form:"paymentStatus" validate:"required,oneof=PENDING PARTIAL PAID OVERDUE"`
	PaymentMethod        string `form:"paymentMethod" validate:"omitempty,oneof=CASH BANK_TRANSFER CREDIT_CARD CHECK OTHER"`
	Notes                string `form:"notes"`
	Specifications       string `form:"specifications"`
	BranchID             string `form:"branchId" validate:"omitempty,refid"`
}

// NewOrderForm returns the create-mode defaults.
func NewOrderForm() *OrderForm {
	return &OrderForm{
		Status:        "PENDING",
		Priority:      "MEDIUM",
		PaymentStatus: "PENDING",
		PaymentMethod: "CASH",
	}
}

// Fill pre-populates the form from an existing order.
func (f *OrderForm) Fill(o Order) {
	f.OrderNumber = o.OrderNumber
	f.CustomerName = o.CustomerName
	f.CustomerEmail = o.CustomerEmail
	f.CustomerPhone = o.CustomerPhone
	f.CustomerAddress = o.CustomerAddress
	f.ProductName = o.ProductName
	f.ProductCategory = o.ProductCategory
	f.ProductDescription = o.ProductDescription
	f.Quantity = fmt.Sprint(o.Quantity)
	f.UnitPrice = o.UnitPrice.String()
	f.TotalAmount = shared.FormatAmount(o.TotalAmount)
	f.Status = o.Status
	f.Priority = o.Priority
	f.ExpectedDeliveryDate = ""
	if o.ExpectedDeliveryDate != nil {
		f.ExpectedDeliveryDate = o.ExpectedDeliveryDate.Format(shared.DateLayout)
	}
	f.PaymentStatus = o.PaymentStatus
	f.PaymentMethod = o.PaymentMethod
	f.Notes = o.Notes
	f.Specifications = o.Specifications
	f.BranchID = shared.FormatID(shared.RefID(o.Branch))
}

// Derive recomputes TotalAmount whenever quantity and unit price are both
// valid numbers; otherwise the previous total is kept.
func (f *OrderForm) Derive() {
	qty, err := shared.ParseInt(f.Quantity)
	if err != nil || strings.TrimSpace(f.Quantity) == "" {
		return
	}
	price, err := shared.ParseAmount(f.UnitPrice)
	if err != nil || strings.TrimSpace(f.UnitPrice) == "" {
		return
	}
	f.TotalAmount = shared.FormatAmount(ComputeTotal(qty, price))
}

// OrderPayload is the request body for POST/PUT /api/orders.
type OrderPayload struct {
	OrderNumber          string          `json:"orderNumber,omitempty"`
	CustomerName         string          `json:"customerName"`
	CustomerEmail        string          `json:"customerEmail"`
	CustomerPhone        string          `json:"customerPhone"`
	CustomerAddress      string          `json:"customerAddress"`
	ProductName          string          `json:"productName"`
	ProductCategory      string          `json:"productCategory"`
	ProductDescription   string          `json:"productDescription"`
	Quantity             int             `json:"quantity"`
	UnitPrice            decimal.Decimal `json:"unitPrice"`
	TotalAmount          decimal.Decimal `json:"totalAmount"`
	Status               string          `json:"status"`
	Priority             string          `json:"priority"`
	ExpectedDeliveryDate *string         `json:"expectedDeliveryDate"`
	PaymentStatus        string          `json:"paymentStatus"`
	PaymentMethod        string          `json:"paymentMethod"`
	Notes                string          `json:"notes"`
	Specifications       string          `json:"specifications"`
	Branch               *shared.Ref     `json:"branch,omitempty"`
}

// Payload maps the form to the wire shape. The delivery date becomes a
// midnight date-time and the total is recomputed from quantity and price.
func (f *OrderForm) Payload(shared.FormMode) (any, error) {
	qty, err := shared.ParseInt(f.Quantity)
	if err != nil {
		return nil, fmt.Errorf("quantity: %w", err)
	}
	price, err := shared.ParseAmount(f.UnitPrice)
	if err != nil {
		return nil, fmt.Errorf("unitPrice: %w", err)
	}
	p := OrderPayload{
		OrderNumber:        f.OrderNumber,
		CustomerName:       f.CustomerName,
		CustomerEmail:      f.CustomerEmail,
		CustomerPhone:      f.CustomerPhone,
		CustomerAddress:    f.CustomerAddress,
		ProductName:        f.ProductName,
		ProductCategory:    f.ProductCategory,
		ProductDescription: f.ProductDescription,
		Quantity:           qty,
		UnitPrice:          price,
		TotalAmount:        ComputeTotal(qty, price),
		Status:             f.Status,
		Priority:           f.Priority,
		PaymentStatus:      f.PaymentStatus,
		PaymentMethod:      f.PaymentMethod,
		Notes:              f.Notes,
		Specifications:     f.Specifications,
		Branch:             shared.NewRef(shared.ParseID(f.BranchID)),
	}
	if f.ExpectedDeliveryDate != "" {
		at, err := shared.StartOfDay(f.ExpectedDeliveryDate)
		if err != nil {
			return nil, fmt.Errorf("expectedDeliveryDate: %w", err)
		}
		p.ExpectedDeliveryDate = &at
	}
	return p, nil
}

// OrderStatusTransition sets the order status (PUT /api/orders/{id}/status).
func OrderStatusTransition(status string) shared.Transition {
	return shared.Transition{Action: "status", Body: map[string]string{"status": status}}
}

// PaymentStatusTransition sets the payment status
// (PUT /api/orders/{id}/payment-status).
func PaymentStatusTransition(status string) shared.Transition {
	return shared.Transition{Action: "payment-status", Body: map[string]string{"paymentStatus": status}}
}

// OrderStatistics is the dashboard summary from GET /api/orders/statistics.
type OrderStatistics struct {
	TotalOrders     int64           `json:"totalOrders"`
	PendingOrders   int64           `json:"pendingOrders"`
	DeliveredOrders int64           `json:"deliveredOrders"`
	TotalRevenue    decimal.Decimal `json:"totalRevenue"`
}
