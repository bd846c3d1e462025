// Package logistics models the transport fleet.
package logistics

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/erp/ausyexpo/internal/domain/shared"
)

// VehicleTypes lists the fleet vehicle categories.
var VehicleTypes = []string{"Truck", "Van", "Container", "Trailer", "Pickup", "Other"}

// Activity filter values.
const (
	StatusActive   = "ACTIVE"
	StatusInactive = "INACTIVE"
)

// Transportation is one vehicle of the fleet with its assigned driver.
type Transportation struct {
	shared.BaseEntity
	VehicleType        string           `json:"vehicleType"`
	VehicleNumber      string           `json:"vehicleNumber"`
	DriverName         string           `json:"driverName"`
	DriverContact      string           `json:"driverContact,omitempty"`
	Capacity           *decimal.Decimal `json:"capacity,omitempty"`
	Description        string           `json:"description,omitempty"`
	MaintenanceDetails string           `json:"maintenanceDetails,omitempty"`
	IsActive           bool             `json:"isActive"`
	Branch             *shared.Ref      `json:"branch,omitempty"`
}

// Status returns ACTIVE or INACTIVE.
func (t Transportation) Status() string {
	if t.IsActive {
		return StatusActive
	}
	return StatusInactive
}

// TransportationForm holds the editable fields of a vehicle.
type TransportationForm struct {
	VehicleType        string `form:"vehicleType" validate:"required,oneof=Truck Van Container Trailer Pickup Other"`
	VehicleNumber      string `form:"vehicleNumber" validate:"required"`
	DriverName         string `form:"driverName" validate:"required"`
	DriverContact      string `form:"driverContact"`
	Capacity           string `form:"capacity" validate:"omitempty,positive"`
	Description        string `form:"description"`
	MaintenanceDetails string `form:"maintenanceDetails"`
	IsActive           bool   `form:"isActive"`
	BranchID           string `form:"branchId" validate:"omitempty,refid"`
}

// NewTransportationForm returns the create-mode defaults.
func NewTransportationForm() *TransportationForm {
	return &TransportationForm{IsActive: true}
}

// Fill pre-populates the form from an existing vehicle.
func (f *TransportationForm) Fill(t Transportation) {
	f.VehicleType = t.VehicleType
	f.VehicleNumber = t.VehicleNumber
	f.DriverName = t.DriverName
	f.DriverContact = t.DriverContact
	f.Capacity = ""
	if t.Capacity != nil {
		f.Capacity = t.Capacity.String()
	}
	f.Description = t.Description
	f.MaintenanceDetails = t.MaintenanceDetails
	f.IsActive = t.IsActive
	f.BranchID = shared.FormatID(shared.RefID(t.Branch))
}

// TransportationPayload is the request body for POST/PUT /api/transportation.
type TransportationPayload struct {
	VehicleType        string           `json:"vehicleType"`
	VehicleNumber      string           `json:"vehicleNumber"`
	DriverName         string           `json:"driverName"`
	DriverContact      string           `json:"driverContact"`
	Capacity           *decimal.Decimal `json:"capacity"`
	Description        string           `json:"description"`
	MaintenanceDetails string           `json:"maintenanceDetails"`
	IsActive           bool             `json:"isActive"`
	Branch             *shared.Ref      `json:"branch,omitempty"`
}

// Payload maps the form to the wire shape; a blank capacity is sent as null.
func (f *TransportationForm) Payload(shared.FormMode) (any, error) {
	p := TransportationPayload{
		VehicleType:        f.VehicleType,
		VehicleNumber:      f.VehicleNumber,
		DriverName:         f.DriverName,
		DriverContact:      f.DriverContact,
		Description:        f.Description,
		MaintenanceDetails: f.MaintenanceDetails,
		IsActive:           f.IsActive,
		Branch:             shared.NewRef(shared.ParseID(f.BranchID)),
	}
	if f.Capacity != "" {
		c, err := shared.ParseAmount(f.Capacity)
		if err != nil {
			return nil, fmt.Errorf("capacity: %w", err)
		}
		p.Capacity = &c
	}
	return p, nil
}
