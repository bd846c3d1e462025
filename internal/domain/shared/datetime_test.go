package shared

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalDate_JSON(t *testing.T) {
	t.Run("round trips a date", func(t *testing.T) {
		var d LocalDate
		require.NoError(t, json.Unmarshal([]byte(`"2024-03-15"`), &d))
		assert.Equal(t, 2024, d.Year())
		assert.Equal(t, time.March, d.Month())

		out, err := json.Marshal(d)
		require.NoError(t, err)
		assert.Equal(t, `"2024-03-15"`, string(out))
	})

	t.Run("accepts a date-time and keeps the date", func(t *testing.T) {
		var d LocalDate
		require.NoError(t, json.Unmarshal([]byte(`"2024-03-15T10:30:00"`), &d))
		assert.Equal(t, "2024-03-15", d.String())
	})

	t.Run("null and empty are zero", func(t *testing.T) {
		var d LocalDate
		require.NoError(t, json.Unmarshal([]byte(`null`), &d))
		assert.True(t, d.IsZero())
		require.NoError(t, json.Unmarshal([]byte(`""`), &d))
		assert.True(t, d.IsZero())

		out, err := json.Marshal(d)
		require.NoError(t, err)
		assert.Equal(t, "null", string(out))
	})

	t.Run("rejects garbage", func(t *testing.T) {
		var d LocalDate
		assert.Error(t, json.Unmarshal([]byte(`"15/03/2024"`), &d))
	})
}

func TestLocalDateTime_JSON(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"backend layout", `"2024-06-01T08:15:30"`, "2024-06-01T08:15:30"},
		{"fractional seconds", `"2024-06-01T08:15:30.123456"`, "2024-06-01T08:15:30"},
		{"rfc3339", `"2024-06-01T08:15:30Z"`, "2024-06-01T08:15:30"},
		{"minute precision", `"2024-06-01T08:15"`, "2024-06-01T08:15:00"},
		{"date only", `"2024-06-01"`, "2024-06-01T00:00:00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var dt LocalDateTime
			require.NoError(t, json.Unmarshal([]byte(tt.input), &dt))
			assert.Equal(t, tt.want, dt.String())
		})
	}

	t.Run("marshals without zone", func(t *testing.T) {
		dt := LocalDateTime{Time: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)}
		out, err := json.Marshal(dt)
		require.NoError(t, err)
		assert.Equal(t, `"2024-01-02T03:04:05"`, string(out))
	})
}

func TestStartOfDay(t *testing.T) {
	got, err := StartOfDay("2024-12-31")
	require.NoError(t, err)
	assert.Equal(t, "2024-12-31T00:00:00", got)

	got, err = StartOfDay("  ")
	require.NoError(t, err)
	assert.Empty(t, got)

	_, err = StartOfDay("31-12-2024")
	assert.Error(t, err)
}
