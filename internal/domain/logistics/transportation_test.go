package logistics

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erp/ausyexpo/internal/domain/shared"
)

func TestTransportationForm(t *testing.T) {
	t.Run("blank capacity is sent as null", func(t *testing.T) {
		f := NewTransportationForm()
		f.VehicleType = "Truck"
		f.VehicleNumber = "WP-1234"
		f.DriverName = "Ruwan"

		got, err := f.Payload(shared.ModeCreate)
		require.NoError(t, err)

		data, err := json.Marshal(got)
		require.NoError(t, err)
		assert.Contains(t, string(data), `"capacity":null`)
		assert.NotContains(t, string(data), `"branch"`)
		assert.Contains(t, string(data), `"isActive":true`)
	})

	t.Run("capacity and branch are converted", func(t *testing.T) {
		f := NewTransportationForm()
		f.Capacity = "12.5"
		f.BranchID = "3"

		got, err := f.Payload(shared.ModeEdit)
		require.NoError(t, err)

		p := got.(TransportationPayload)
		require.NotNil(t, p.Capacity)
		assert.True(t, decimal.RequireFromString("12.5").Equal(*p.Capacity))
		assert.Equal(t, &shared.Ref{ID: 3}, p.Branch)
	})

	t.Run("fill round trips", func(t *testing.T) {
		c := decimal.RequireFromString("8")
		f := NewTransportationForm()
		f.Fill(Transportation{VehicleType: "Van", Capacity: &c, IsActive: false, Branch: &shared.Ref{ID: 2}})

		assert.Equal(t, "Van", f.VehicleType)
		assert.Equal(t, "8", f.Capacity)
		assert.Equal(t, "2", f.BranchID)
		assert.False(t, f.IsActive)
	})

	t.Run("status", func(t *testing.T) {
		assert.Equal(t, StatusActive, Transportation{IsActive: true}.Status())
		assert.Equal(t, StatusInactive, Transportation{}.Status())
	})
}
