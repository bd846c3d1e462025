package screen

import (
	"github.com/erp/ausyexpo/internal/application/listing"
	"github.com/erp/ausyexpo/internal/domain/logistics"
	"github.com/erp/ausyexpo/internal/domain/shared"
)

func transportationConfig() Config[logistics.Transportation, *logistics.TransportationForm] {
	type V = logistics.Transportation
	return Config[V, *logistics.TransportationForm]{
		Key:        "transportation",
		Title:      "Transportation",
		Label:      listing.Label{Singular: "Vehicle", Plural: "vehicles"},
		Collection: "transportation",
		Schema: &listing.Schema[V]{
			Search: []listing.SearchField[V]{
				{Name: "vehicleNumber", Value: func(v V) string { return v.VehicleNumber }},
				{Name: "driverName", Value: func(v V) string { return v.DriverName }},
				{Name: "vehicleType", Value: func(v V) string { return v.VehicleType }},
			},
			Filters: []listing.FilterDef[V]{
				{Key: "vehicleType", Kind: listing.FilterEnum, Options: logistics.VehicleTypes, Match: listing.EqualMatch(func(v V) string { return v.VehicleType })},
				{Key: "status", Kind: listing.FilterEnum, Options: []string{logistics.StatusActive, logistics.StatusInactive}, Match: listing.EqualMatch(V.Status)},
				{Key: "branch", Kind: listing.FilterRef, Match: listing.RefMatch(func(v V) int64 { return shared.RefID(v.Branch) })},
			},
		},
		Columns: []Column[V]{
			idColumn[V](),
			text("VEHICLE", func(v V) string { return v.VehicleNumber }),
			text("TYPE", func(v V) string { return v.VehicleType }),
			text("DRIVER", func(v V) string { return v.DriverName }),
			text("CONTACT", func(v V) string { return v.DriverContact }),
			text("CAPACITY", func(v V) string {
				if v.Capacity == nil {
					return ""
				}
				return v.Capacity.String()
			}),
			{Header: "BRANCH", Value: func(v V, refs *Refs) string { return Name(refs.Branches, v.Branch, listing.Unknown) }},
			text("STATUS", func(v V) string { return activeLabel(v.IsActive) }),
		},
		References: []string{RefBranches},
		RefFields:  map[string]string{"branchId": RefBranches},
		NewForm:    logistics.NewTransportationForm,
	}
}
