package shared

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

func init() {
	// The backend expects money as JSON numbers, not strings.
	decimal.MarshalJSONWithoutQuotes = true
}

// ParseAmount parses a decimal form value. Empty input yields zero.
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount %q", s)
	}
	return d, nil
}

// FormatAmount renders money with two decimals.
func FormatAmount(d decimal.Decimal) string {
	return d.StringFixed(2)
}
