package screen

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/erp/ausyexpo/internal/domain/shared"
)

func idColumn[T shared.Entity]() Column[T] {
	return Column[T]{Header: "ID", Value: func(item T, _ *Refs) string {
		return fmt.Sprint(item.GetID())
	}}
}

func text[T any](header string, value func(T) string) Column[T] {
	return Column[T]{Header: header, Value: func(item T, _ *Refs) string { return value(item) }}
}

func money(d decimal.Decimal) string {
	return shared.FormatAmount(d)
}

func date(d *shared.LocalDate) string {
	if d == nil {
		return ""
	}
	return d.String()
}

func dateTime(t *shared.LocalDateTime) string {
	if t == nil || t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02 15:04")
}

func activeLabel(active bool) string {
	if active {
		return "Active"
	}
	return "Inactive"
}
