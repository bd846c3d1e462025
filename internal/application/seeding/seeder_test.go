package seeding

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erp/ausyexpo/internal/application/screen"
	"github.com/erp/ausyexpo/internal/domain/shared"
	"github.com/erp/ausyexpo/internal/testutil"
)

func newRegistry(t *testing.T) (*testutil.Backend, *screen.Registry) {
	t.Helper()
	b := testutil.NewBackend(t)
	reg := screen.NewRegistry(screen.Env{Client: b.NewClient(t, ""), PageSize: 10})
	return b, reg
}

func mustScreen(t *testing.T, reg *screen.Registry, key string) screen.Screen {
	t.Helper()
	s, ok := reg.Get(key)
	require.True(t, ok)
	return s
}

func TestSeeder_Seed(t *testing.T) {
	ctx := context.Background()

	t.Run("creates valid records for every screen with references in place", func(t *testing.T) {
		b, reg := newRegistry(t)
		b.Seed(t, "branches", map[string]any{"id": 1, "name": "Dhaka HQ", "isActive": true})
		b.Seed(t, "departments", map[string]any{"id": 1, "name": "Cutting"})
		b.Seed(t, "users", map[string]any{"id": 1, "firstName": "Ana", "lastName": "Rahman", "role": "OWNER"})

		sd := New(Options{Seed: 42})
		for _, key := range []string{"branches", "users", "employees", "departments", "stock", "supplies", "transportation", "orders", "agreements"} {
			res, err := sd.Seed(ctx, mustScreen(t, reg, key), 3)
			require.NoError(t, err, key)
			assert.Equal(t, 3, res.Created, "%s: %v", key, res.Errors)
			assert.Zero(t, res.Failed, key)
		}
	})

	t.Run("stops when a required reference has no records", func(t *testing.T) {
		b, reg := newRegistry(t)
		sd := New(Options{Seed: 1})

		res, err := sd.Seed(ctx, mustScreen(t, reg, "departments"), 2)
		assert.True(t, errors.Is(err, ErrNoReference))
		assert.Zero(t, res.Created)
		assert.Empty(t, b.Records("departments"))
	})

	t.Run("counts server rejections and keeps going", func(t *testing.T) {
		b, reg := newRegistry(t)
		b.Fail(http.MethodPost, "/api/branches", testutil.Failure{Status: http.StatusConflict, Body: "Branch name already exists"})
		sd := New(Options{Seed: 7})

		res, err := sd.Seed(ctx, mustScreen(t, reg, "branches"), 2)
		require.NoError(t, err)
		assert.Equal(t, 0, res.Created)
		assert.Equal(t, 2, res.Failed)
		assert.Equal(t, 2, b.CountRequests(http.MethodPost, "/api/branches"))
	})

	t.Run("rejects a non-positive count", func(t *testing.T) {
		_, reg := newRegistry(t)
		_, err := New(Options{}).Seed(ctx, mustScreen(t, reg, "branches"), 0)
		assert.True(t, errors.Is(err, shared.ErrInvalidInput))
	})

	t.Run("honors cancellation while waiting for the limiter", func(t *testing.T) {
		_, reg := newRegistry(t)
		sd := New(Options{Rate: 0.001, Burst: 1, Seed: 3})
		cctx, cancel := context.WithCancel(ctx)
		cancel()

		res, err := sd.Seed(cctx, mustScreen(t, reg, "branches"), 2)
		require.Error(t, err)
		assert.Zero(t, res.Created)
	})
}

func TestSeeder_Values(t *testing.T) {
	ctx := context.Background()
	b, reg := newRegistry(t)
	b.Seed(t, "branches", map[string]any{"id": 4, "name": "Khulna"})

	values, err := New(Options{Seed: 9}).Values(ctx, mustScreen(t, reg, "orders"))
	require.NoError(t, err)

	assert.NotContains(t, values, "orderNumber")
	assert.NotContains(t, values, "totalAmount")
	assert.Equal(t, "4", values["branchId"])
	assert.Contains(t, []string{"PENDING", "CONFIRMED", "IN_PRODUCTION", "READY_FOR_DELIVERY", "DELIVERED", "CANCELLED"}, values["status"])
	assert.NotEmpty(t, values["customerName"])
}
