package screen

import (
	"fmt"

	"github.com/erp/ausyexpo/internal/application/listing"
	"github.com/erp/ausyexpo/internal/domain/shared"
	"github.com/erp/ausyexpo/internal/domain/trade"
)

// agreementsPageSize is the fixed page size of the agreements screen.
const agreementsPageSize = 10

func ordersConfig() Config[trade.Order, *trade.OrderForm] {
	type O = trade.Order
	return Config[O, *trade.OrderForm]{
		Key:        "orders",
		Title:      "Orders",
		Label:      listing.Label{Singular: "Order", Plural: "orders"},
		Collection: "orders",
		Schema: &listing.Schema[O]{
			Search: []listing.SearchField[O]{
				{Name: "orderNumber", Value: func(o O) string { return o.OrderNumber }},
				{Name: "customerName", Value: func(o O) string { return o.CustomerName }},
				{Name: "productName", Value: func(o O) string { return o.ProductName }},
			},
			Filters: []listing.FilterDef[O]{
				{Key: "status", Kind: listing.FilterEnum, Options: trade.OrderStatuses, Match: listing.EqualMatch(func(o O) string { return o.Status })},
				{Key: "priority", Kind: listing.FilterEnum, Options: trade.OrderPriorities, Match: listing.EqualMatch(func(o O) string { return o.Priority })},
				{Key: "paymentStatus", Kind: listing.FilterEnum, Options: trade.PaymentStatuses, Match: listing.EqualMatch(func(o O) string { return o.PaymentStatus })},
				{Key: "branch", Kind: listing.FilterRef, Match: listing.RefMatch(func(o O) int64 { return shared.RefID(o.Branch) })},
			},
		},
		Columns: []Column[O]{
			idColumn[O](),
			text("ORDER #", func(o O) string { return o.OrderNumber }),
			text("CUSTOMER", func(o O) string { return o.CustomerName }),
			text("PRODUCT", func(o O) string { return o.ProductName }),
			text("QTY", func(o O) string { return fmt.Sprint(o.Quantity) }),
			text("TOTAL", func(o O) string { return money(o.TotalAmount) }),
			text("STATUS", func(o O) string { return o.Status }),
			text("PRIORITY", func(o O) string { return o.Priority }),
			text("PAYMENT", func(o O) string { return o.PaymentStatus }),
			text("DELIVERY", func(o O) string { return dateTime(o.ExpectedDeliveryDate) }),
			{Header: "BRANCH", Value: func(o O, refs *Refs) string { return Name(refs.Branches, o.Branch, listing.Unknown) }},
		},
		References: []string{RefBranches},
		RefFields:  map[string]string{"branchId": RefBranches},
		NewForm:    trade.NewOrderForm,
		Actions: []Action[O]{
			{
				Name:    "status",
				Help:    "Set the fulfilment status of an order",
				Options: trade.OrderStatuses,
				Build:   trade.OrderStatusTransition,
				Success: func(*O, string) string { return "Order status updated successfully" },
				Failure: "Failed to update order status",
			},
			{
				Name:    "payment-status",
				Help:    "Set the payment status of an order",
				Options: trade.PaymentStatuses,
				Build:   trade.PaymentStatusTransition,
				Success: func(*O, string) string { return "Payment status updated successfully" },
				Failure: "Failed to update payment status",
			},
		},
	}
}

func agreementsConfig() Config[trade.Agreement, *trade.AgreementForm] {
	type A = trade.Agreement
	return Config[A, *trade.AgreementForm]{
		Key:        "agreements",
		Title:      "Agreements",
		Label:      listing.Label{Singular: "Agreement", Plural: "agreements"},
		Collection: "agreements",
		Schema: &listing.Schema[A]{
			Search: []listing.SearchField[A]{
				{Name: "title", Value: func(a A) string { return a.Title }},
				{Name: "clientName", Value: func(a A) string { return a.ClientName }},
				{Name: "agreementType", Value: func(a A) string { return a.AgreementType }},
			},
			Filters: []listing.FilterDef[A]{
				{Key: "status", Kind: listing.FilterEnum, Options: trade.AgreementStatuses, Match: listing.EqualMatch(func(a A) string { return a.Status })},
				{Key: "type", Kind: listing.FilterEnum, Options: trade.AgreementTypes, Match: listing.EqualMatch(func(a A) string { return a.AgreementType })},
				{Key: "branch", Kind: listing.FilterRef, Match: listing.RefMatch(func(a A) int64 { return shared.RefID(a.Branch) })},
			},
		},
		Columns: []Column[A]{
			idColumn[A](),
			text("TITLE", func(a A) string { return a.Title }),
			text("CLIENT", func(a A) string { return a.ClientName }),
			text("TYPE", func(a A) string { return a.AgreementType }),
			text("VALUE", func(a A) string { return money(a.ContractValue) }),
			text("START", func(a A) string { return date(a.StartDate) }),
			text("END", func(a A) string { return date(a.EndDate) }),
			text("STATUS", func(a A) string { return a.Status }),
			text("PRIORITY", func(a A) string { return a.Priority }),
			{Header: "BRANCH", Value: func(a A, refs *Refs) string { return Name(refs.Branches, a.Branch, listing.Unknown) }},
			{Header: "MANAGER", Value: func(a A, refs *Refs) string { return Name(refs.Users, a.AssignedManager, listing.Unknown) }},
		},
		References: []string{RefBranches, RefUsers},
		RefFields:  map[string]string{"branchId": RefBranches, "assignedManagerId": RefManagers},
		NewForm:    trade.NewAgreementForm,
		PageSize:   agreementsPageSize,
	}
}
