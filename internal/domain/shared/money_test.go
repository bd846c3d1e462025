package shared

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAmount(t *testing.T) {
	d, err := ParseAmount("5.50")
	require.NoError(t, err)
	assert.True(t, d.Equal(decimal.RequireFromString("5.5")))

	d, err = ParseAmount("")
	require.NoError(t, err)
	assert.True(t, d.IsZero())

	_, err = ParseAmount("five")
	assert.Error(t, err)
}

func TestAmountsMarshalAsNumbers(t *testing.T) {
	out, err := json.Marshal(map[string]decimal.Decimal{"price": decimal.RequireFromString("12.50")})
	require.NoError(t, err)
	assert.JSONEq(t, `{"price": 12.5}`, string(out))
	assert.Equal(t, "12.50", FormatAmount(decimal.RequireFromString("12.5")))
}
