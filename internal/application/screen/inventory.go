package screen

import (
	"fmt"

	"github.com/erp/ausyexpo/internal/application/listing"
	"github.com/erp/ausyexpo/internal/domain/inventory"
	"github.com/erp/ausyexpo/internal/domain/shared"
)

func stockConfig() Config[inventory.Stock, *inventory.StockForm] {
	type S = inventory.Stock
	return Config[S, *inventory.StockForm]{
		Key:        "stock",
		Title:      "Stock",
		Label:      listing.Label{Singular: "Stock", Plural: "stock"},
		Collection: "stock",
		Schema: &listing.Schema[S]{
			Search: []listing.SearchField[S]{
				{Name: "stockType", Value: func(s S) string { return s.StockType }},
				{Name: "materialType", Value: func(s S) string { return s.MaterialType }},
			},
			Filters: []listing.FilterDef[S]{
				{Key: "status", Kind: listing.FilterEnum, Options: inventory.StockStatuses, Match: listing.EqualMatch(S.Status)},
				{Key: "stockType", Kind: listing.FilterText, Match: func(s S, v string) bool { return listing.ContainsFold(s.StockType, v) }},
			},
		},
		Columns: []Column[S]{
			idColumn[S](),
			text("STOCK TYPE", func(s S) string { return s.StockType }),
			text("MATERIAL", func(s S) string { return s.MaterialType }),
			text("QUANTITY", func(s S) string { return fmt.Sprint(s.Quantity) }),
			text("PRICE", func(s S) string { return money(s.Price) }),
			text("VALUE", func(s S) string { return money(s.Value()) }),
			text("PURCHASED", func(s S) string { return date(s.PurchaseDate) }),
			text("RELEASED", func(s S) string { return date(s.ReleaseDate) }),
			text("STATUS", S.Status),
		},
		NewForm: inventory.NewStockForm,
		Actions: []Action[S]{{
			Name:    "release",
			Help:    "Mark a stock lot as released",
			Build:   func(string) shared.Transition { return inventory.ReleaseTransition() },
			Success: func(*S, string) string { return "Stock released successfully" },
			Failure: "Failed to release stock",
		}},
	}
}

func suppliesConfig() Config[inventory.Supply, *inventory.SupplyForm] {
	type S = inventory.Supply
	return Config[S, *inventory.SupplyForm]{
		Key:        "supplies",
		Title:      "Supplies",
		Label:      listing.Label{Singular: "Supply", Plural: "supplies"},
		Collection: "supplies",
		Schema: &listing.Schema[S]{
			Search: []listing.SearchField[S]{
				{Name: "itemName", Value: func(s S) string { return s.ItemName }},
				{Name: "supplierName", Value: func(s S) string { return s.SupplierName }},
				{Name: "category", Value: func(s S) string { return s.Category }},
			},
			Filters: []listing.FilterDef[S]{
				{Key: "branch", Kind: listing.FilterRef, Match: listing.RefMatch(func(s S) int64 { return shared.RefID(s.Branch) })},
				{Key: "category", Kind: listing.FilterEnum, Options: inventory.SupplyCategories, Match: listing.EqualMatch(func(s S) string { return s.Category })},
				{Key: "status", Kind: listing.FilterEnum, Options: inventory.SupplyStatuses, Match: listing.EqualMatch(func(s S) string { return s.Status })},
			},
		},
		Columns: []Column[S]{
			idColumn[S](),
			text("ITEM", func(s S) string { return s.ItemName }),
			text("SUPPLIER", func(s S) string { return s.SupplierName }),
			text("CATEGORY", func(s S) string { return s.Category }),
			text("QUANTITY", func(s S) string {
				q := fmt.Sprintf("%d %s", s.Quantity, s.Unit)
				if s.BelowMinimum() {
					q += " (low)"
				}
				return q
			}),
			text("UNIT PRICE", func(s S) string { return money(s.UnitPrice) }),
			text("TOTAL", func(s S) string { return money(s.TotalCost()) }),
			text("STATUS", func(s S) string { return s.Status }),
			{Header: "BRANCH", Value: func(s S, refs *Refs) string { return Name(refs.Branches, s.Branch, listing.Unknown) }},
		},
		References: []string{RefBranches},
		RefFields:  map[string]string{"branchId": RefBranches},
		NewForm:    inventory.NewSupplyForm,
		Actions: []Action[S]{{
			Name:    "status",
			Help:    "Set the status of a supply request",
			Options: inventory.SupplyStatuses,
			Build:   inventory.SupplyStatusTransition,
			Success: func(*S, string) string { return "Supply status updated successfully" },
			Failure: "Failed to update supply status",
		}},
	}
}
