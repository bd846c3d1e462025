package screen

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erp/ausyexpo/internal/application/listing"
	"github.com/erp/ausyexpo/internal/domain/operations"
	"github.com/erp/ausyexpo/internal/domain/shared"
	"github.com/erp/ausyexpo/internal/domain/trade"
	"github.com/erp/ausyexpo/internal/testutil"
)

type fixture struct {
	backend *testutil.Backend
	notes   *testutil.Notifications
	reg     *Registry
}

func newFixture(t *testing.T, token string, pageSize int) *fixture {
	t.Helper()
	b := testutil.NewBackend(t)
	notes := &testutil.Notifications{}
	reg := NewRegistry(Env{
		Client:   b.NewClient(t, token),
		Notifier: notes,
		PageSize: pageSize,
	})
	return &fixture{backend: b, notes: notes, reg: reg}
}

func (f *fixture) screen(t *testing.T, key string) Screen {
	t.Helper()
	s, ok := f.reg.Get(key)
	require.True(t, ok, "screen %s", key)
	return s
}

func column(l *Listing, header string) []string {
	idx := -1
	for i, c := range l.Columns {
		if c == header {
			idx = i
		}
	}
	out := make([]string, 0, len(l.Rows))
	for _, row := range l.Rows {
		out = append(out, row[idx])
	}
	return out
}

func signedToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test"))
	require.NoError(t, err)
	return token
}

func TestRegistry(t *testing.T) {
	f := newFixture(t, "", 10)

	var keys []string
	for _, s := range f.reg.All() {
		keys = append(keys, s.Key())
	}
	assert.Equal(t, []string{
		"branches", "users", "employees", "departments", "stock",
		"supplies", "transportation", "orders", "agreements", "commands",
	}, keys)
	assert.Len(t, f.reg.Keys(), 10)

	_, ok := f.reg.Get("salaries")
	assert.False(t, ok)
}

func TestBranches_FilterToggleReload(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, "", 10)
	f.backend.Seed(t, "branches",
		map[string]any{"id": 1, "name": "Dhaka HQ", "isActive": true},
		map[string]any{"id": 2, "name": "Chittagong", "isActive": true},
		map[string]any{"id": 3, "name": "Khulna", "isActive": false},
	)
	s := f.screen(t, "branches")

	require.NoError(t, s.Load(ctx))
	require.NoError(t, s.Apply(Query{Filters: map[string]string{"status": "ACTIVE"}}))
	l, err := s.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "2"}, column(l, "ID"))

	_, err = s.Act(ctx, "toggle-status", 2, "")
	require.NoError(t, err)

	assert.Equal(t, []string{"Branch deactivated successfully"}, f.notes.Successes())
	assert.Equal(t, 2, f.backend.CountRequests(http.MethodGet, "/api/branches"), "reload after the toggle")

	l, err = s.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"1"}, column(l, "ID"))
}

func TestOrders_DeleteRejectedByServer(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, "", 10)
	f.backend.Seed(t, "orders", map[string]any{"id": 7, "customerName": "Acme", "productName": "Shirts"})
	f.backend.Fail(http.MethodDelete, "/api/orders/7", testutil.Failure{
		Status: http.StatusBadRequest,
		Body:   "Cannot delete: referenced by orders",
	})
	s := f.screen(t, "orders")
	require.NoError(t, s.Load(ctx))

	err := s.Delete(ctx, 7)
	require.Error(t, err)
	assert.Equal(t, []string{"Cannot delete: referenced by orders"}, f.notes.Failures())
	assert.Empty(t, f.notes.Successes())

	_, ok := f.backend.Record("orders", 7)
	assert.True(t, ok)
	assert.Equal(t, 1, f.backend.CountRequests(http.MethodGet, "/api/orders"), "no reload after a failed delete")
}

func TestOrders_CreateComputesTotal(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, "", 10)
	s := f.screen(t, "orders")

	rec, err := s.Create(ctx, map[string]string{
		"customerName":         "Acme",
		"productName":          "Denim",
		"quantity":             "10",
		"unitPrice":            "5.50",
		"expectedDeliveryDate": "2024-06-30",
	})
	require.NoError(t, err)

	order := rec.(trade.Order)
	assert.Equal(t, "55", order.TotalAmount.String())
	assert.Equal(t, []string{"Order created successfully"}, f.notes.Successes())

	stored := f.backend.Records("orders")
	require.Len(t, stored, 1)
	assert.Equal(t, "2024-06-30T00:00:00", stored[0]["expectedDeliveryDate"])
	assert.Equal(t, "PENDING", stored[0]["status"])
}

func TestOrders_StatusActions(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, "", 10)
	f.backend.Seed(t, "orders", map[string]any{"id": 3, "status": "PENDING", "paymentStatus": "PENDING"})
	s := f.screen(t, "orders")
	require.NoError(t, s.Load(ctx))

	_, err := s.Act(ctx, "status", 3, "CONFIRMED")
	require.NoError(t, err)
	_, err = s.Act(ctx, "payment-status", 3, "PAID")
	require.NoError(t, err)

	rec, _ := f.backend.Record("orders", 3)
	assert.Equal(t, "CONFIRMED", rec["status"])
	assert.Equal(t, "PAID", rec["paymentStatus"])
	assert.Equal(t, []string{"Order status updated successfully", "Payment status updated successfully"}, f.notes.Successes())
}

func TestAct_RejectsBadInputWithoutRequest(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, "", 10)
	f.backend.Seed(t, "orders", map[string]any{"id": 3, "status": "PENDING"})
	s := f.screen(t, "orders")

	tests := []struct {
		name   string
		action string
		arg    string
	}{
		{"unknown action", "archive", ""},
		{"value outside the options", "status", "SHIPPED"},
		{"missing value", "payment-status", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.Act(ctx, tt.action, 3, tt.arg)
			assert.True(t, errors.Is(err, shared.ErrInvalidAction))
		})
	}

	branches := f.screen(t, "branches")
	_, err := branches.Act(ctx, "toggle-status", 1, "yes")
	assert.True(t, errors.Is(err, shared.ErrInvalidAction))

	assert.Empty(t, f.backend.Requests())
}

func TestCommands_IssuerFromSession(t *testing.T) {
	ctx := context.Background()
	values := map[string]string{"title": "Audit stock", "description": "Count the warehouse"}

	t.Run("stamps the signed-in user as issuer", func(t *testing.T) {
		f := newFixture(t, signedToken(t, jwt.MapClaims{"sub": "owner@ausy.test", "userId": 42}), 10)
		s := f.screen(t, "commands")

		rec, err := s.Create(ctx, values)
		require.NoError(t, err)
		assert.NotZero(t, rec.(operations.Command).ID)

		stored := f.backend.Records("commands")
		require.Len(t, stored, 1)
		assert.Equal(t, map[string]any{"id": float64(42)}, stored[0]["issuedBy"])
		assert.Equal(t, "GENERAL_INSTRUCTION", stored[0]["type"])
	})

	t.Run("refuses to submit without a signed-in user", func(t *testing.T) {
		f := newFixture(t, "", 10)
		s := f.screen(t, "commands")

		_, err := s.Create(ctx, values)
		var verr *shared.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Contains(t, verr.Error(), operations.MissingIssuerMessage)
		assert.Empty(t, f.backend.Records("commands"))
	})
}

func TestAgreements_FixedPageSize(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, "", 5)
	for i := 1; i <= 12; i++ {
		f.backend.Seed(t, "agreements", map[string]any{"id": i, "title": fmt.Sprintf("Agreement %d", i)})
	}

	s := f.screen(t, "agreements")
	require.NoError(t, s.Load(ctx))
	l, err := s.List(ctx)
	require.NoError(t, err)
	assert.Len(t, l.Rows, 10)
	assert.Equal(t, 2, l.Pages)
	assert.Equal(t, 12, l.Total)

	branches := f.screen(t, "branches")
	f.backend.Seed(t, "branches", map[string]any{"id": 1}, map[string]any{"id": 2}, map[string]any{"id": 3},
		map[string]any{"id": 4}, map[string]any{"id": 5}, map[string]any{"id": 6})
	require.NoError(t, branches.Load(ctx))
	l, err = branches.List(ctx)
	require.NoError(t, err)
	assert.Len(t, l.Rows, 5)
}

func TestReferences(t *testing.T) {
	ctx := context.Background()

	t.Run("joins department names and falls back for missing ones", func(t *testing.T) {
		f := newFixture(t, "", 0)
		f.backend.Seed(t, "departments", map[string]any{"id": 1, "name": "Cutting"})
		f.backend.Seed(t, "employees",
			map[string]any{"id": 1, "firstName": "Rina", "lastName": "Akter", "department": map[string]any{"id": 1}},
			map[string]any{"id": 2, "firstName": "Tanvir", "lastName": "Hasan", "department": map[string]any{"id": 9}},
			map[string]any{"id": 3, "firstName": "Mitu", "lastName": "Das"},
		)
		s := f.screen(t, "employees")
		require.NoError(t, s.Load(ctx))
		l, err := s.List(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"Cutting", "No Department", "No Department"}, column(l, "DEPARTMENT"))
	})

	t.Run("an unavailable reference list renders Unknown", func(t *testing.T) {
		f := newFixture(t, "", 0)
		f.backend.Seed(t, "departments", map[string]any{"id": 1, "name": "Finance", "branch": map[string]any{"id": 4}})
		f.backend.Fail(http.MethodGet, "/api/branches", testutil.Failure{Status: http.StatusInternalServerError})
		s := f.screen(t, "departments")
		require.NoError(t, s.Load(ctx))
		l, err := s.List(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{listing.Unknown}, column(l, "BRANCH"))
		assert.Empty(t, f.notes.Failures())
	})

	t.Run("offers only managers and owners as agreement managers", func(t *testing.T) {
		f := newFixture(t, "", 0)
		f.backend.Seed(t, "users",
			map[string]any{"id": 1, "firstName": "Ana", "lastName": "Owner", "role": "OWNER"},
			map[string]any{"id": 2, "firstName": "Ben", "lastName": "Buyer", "role": "BUYER"},
			map[string]any{"id": 3, "firstName": "Cy", "lastName": "Manager", "role": "MANAGER"},
		)
		s := f.screen(t, "agreements")
		fields, err := s.Fields(ctx)
		require.NoError(t, err)

		var managers []listing.Choice
		for _, fi := range fields {
			if fi.Name == "assignedManagerId" {
				assert.Equal(t, "reference", fi.Type)
				managers = fi.Choices
			}
		}
		assert.Equal(t, []listing.Choice{{ID: 1, Label: "Ana Owner"}, {ID: 3, Label: "Cy Manager"}}, managers)
	})
}

func TestUpdate_UsesLoadedRecord(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, "", 10)
	f.backend.Seed(t, "branches", map[string]any{
		"id": 5, "name": "Sylhet", "address": "Zindabazar", "phone": "0171",
		"email": "sylhet@ausy.test", "manager": "Karim", "isActive": true,
	})
	s := f.screen(t, "branches")

	_, err := s.Update(ctx, 5, map[string]string{"name": "Sylhet Central"})
	require.NoError(t, err)

	rec, _ := f.backend.Record("branches", 5)
	assert.Equal(t, "Sylhet Central", rec["name"])
	assert.Equal(t, "Zindabazar", rec["address"])
	assert.Equal(t, []string{"Branch updated successfully"}, f.notes.Successes())

	_, err = s.Update(ctx, 5, map[string]string{"email": "not-an-email"})
	var verr *shared.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []shared.FieldError{{Field: "email", Message: "Email is invalid"}}, verr.Fields)
}

func TestLoad_RefreshesReferenceLists(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, "", 0)
	f.backend.Seed(t, "branches", map[string]any{"id": 1, "name": "North", "isActive": true})
	f.backend.Seed(t, "departments",
		map[string]any{"id": 1, "name": "Cutting", "branch": map[string]any{"id": 1}},
		map[string]any{"id": 2, "name": "Sewing", "branch": map[string]any{"id": 2}},
	)
	departments := f.screen(t, "departments")

	require.NoError(t, departments.Load(ctx))
	l, err := departments.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"North", listing.Unknown}, column(l, "BRANCH"))

	_, err = f.screen(t, "branches").Create(ctx, map[string]string{
		"name": "South", "address": "Agrabad", "phone": "0181",
		"email": "south@ausy.test", "manager": "Rahim",
	})
	require.NoError(t, err)
	require.Len(t, f.backend.Records("branches"), 2)

	require.NoError(t, departments.Load(ctx))
	l, err = departments.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"North", "South"}, column(l, "BRANCH"))
}

func TestLoad_RetriesFailedReferenceList(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, "", 0)
	f.backend.Seed(t, "branches", map[string]any{"id": 4, "name": "Gazipur", "isActive": true})
	f.backend.Seed(t, "departments", map[string]any{"id": 1, "name": "Finance", "branch": map[string]any{"id": 4}})
	f.backend.Fail(http.MethodGet, "/api/branches", testutil.Failure{Status: http.StatusInternalServerError})
	s := f.screen(t, "departments")

	require.NoError(t, s.Load(ctx))
	l, err := s.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{listing.Unknown}, column(l, "BRANCH"))

	f.backend.Clear()
	l, err = s.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Gazipur"}, column(l, "BRANCH"))
}

func TestApply_ReplacesFilters(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, "", 0)
	f.backend.Seed(t, "branches",
		map[string]any{"id": 1, "name": "North", "isActive": true},
		map[string]any{"id": 2, "name": "South", "isActive": false},
	)
	s := f.screen(t, "branches")
	require.NoError(t, s.Load(ctx))

	require.NoError(t, s.Apply(Query{Filters: map[string]string{"status": "INACTIVE"}}))
	l, err := s.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"2"}, column(l, "ID"))

	require.NoError(t, s.Apply(Query{Search: "o"}))
	l, err = s.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "2"}, column(l, "ID"), "a query without filters clears the earlier ones")
}

func TestCreate_RejectsOutOfRangeReference(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, "", 0)
	s := f.screen(t, "departments")

	_, err := s.Create(ctx, map[string]string{"name": "Cutting", "branchId": "99999999999999999999"})

	var verr *shared.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "Branch must be a valid id", verr.Message("branchId"))
	assert.Zero(t, f.backend.CountRequests(http.MethodPost, "/api/departments"))
}
