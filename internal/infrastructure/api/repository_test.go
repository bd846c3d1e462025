package api

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erp/ausyexpo/internal/domain/shared"
)

// TestRepository_CRUD tests the REST verbs and paths of a collection.
func TestRepository_CRUD(t *testing.T) {
	type call struct{ method, path string }
	var calls []call

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls = append(calls, call{r.Method, r.URL.Path})
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/api/branches":
			w.Write([]byte(`[{"id":1,"name":"North","isActive":true}]`))
		case r.Method == http.MethodGet:
			w.Write([]byte(`{"id":1,"name":"North","isActive":true}`))
		case r.Method == http.MethodPost:
			var in map[string]any
			require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
			assert.NotContains(t, in, "id")
			in["id"] = 2
			json.NewEncoder(w).Encode(in)
		case r.Method == http.MethodPut:
			w.Write([]byte(`{"id":1,"name":"North Updated","isActive":true}`))
		case r.Method == http.MethodDelete:
			w.WriteHeader(http.StatusOK)
		}
	})

	repo := NewRepository[testBranch](client, "branches")
	ctx := context.Background()
	assert.Equal(t, "branches", repo.Collection())

	items, err := repo.FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, items, 1)

	one, err := repo.FindByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "North", one.Name)

	created, err := repo.Create(ctx, map[string]any{"name": "South", "isActive": false})
	require.NoError(t, err)
	assert.Equal(t, int64(2), created.ID)

	updated, err := repo.Update(ctx, 1, map[string]any{"name": "North Updated"})
	require.NoError(t, err)
	assert.Equal(t, "North Updated", updated.Name)

	require.NoError(t, repo.Delete(ctx, 2))

	assert.Equal(t, []call{
		{http.MethodGet, "/api/branches"},
		{http.MethodGet, "/api/branches/1"},
		{http.MethodPost, "/api/branches"},
		{http.MethodPut, "/api/branches/1"},
		{http.MethodDelete, "/api/branches/2"},
	}, calls)
}

// TestRepository_FindAllEmpty tests that an empty array is not nil.
func TestRepository_FindAllEmpty(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	})

	items, err := NewRepository[testBranch](client, "branches").FindAll(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)
}

// TestRepository_Transition tests sub-resource calls with record, text and empty replies.
func TestRepository_Transition(t *testing.T) {
	tests := []struct {
		name       string
		transition shared.Transition
		wantMethod string
		wantPath   string
		wantQuery  string
		wantBody   string
		reply      string
		wantRecord bool
	}{
		{
			name:       "toggle returns record",
			transition: shared.Transition{Action: "toggle-status"},
			wantMethod: http.MethodPut,
			wantPath:   "/api/branches/2/toggle-status",
			reply:      `{"id":2,"name":"South","isActive":true}`,
			wantRecord: true,
		},
		{
			name:       "patch returns text",
			transition: shared.Transition{Action: "toggle-status", Method: http.MethodPatch},
			wantMethod: http.MethodPatch,
			wantPath:   "/api/branches/2/toggle-status",
			reply:      `User status updated`,
		},
		{
			name:       "status in query",
			transition: shared.Transition{Action: "status", Query: map[string]string{"status": "DELIVERED"}},
			wantMethod: http.MethodPut,
			wantPath:   "/api/branches/2/status",
			wantQuery:  "status=DELIVERED",
		},
		{
			name:       "status in body",
			transition: shared.Transition{Action: "status", Body: map[string]string{"status": "CONFIRMED"}},
			wantMethod: http.MethodPut,
			wantPath:   "/api/branches/2/status",
			wantBody:   `{"status":"CONFIRMED"}`,
			reply:      `{"id":2}`,
			wantRecord: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, tt.wantMethod, r.Method)
				assert.Equal(t, tt.wantPath, r.URL.Path)
				assert.Equal(t, tt.wantQuery, r.URL.RawQuery)
				if tt.wantBody != "" {
					var body map[string]any
					require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
					raw, _ := json.Marshal(body)
					assert.JSONEq(t, tt.wantBody, string(raw))
				}
				w.Write([]byte(tt.reply))
			})

			rec, err := NewRepository[testBranch](client, "branches").Transition(context.Background(), 2, tt.transition)
			require.NoError(t, err)
			if tt.wantRecord {
				require.NotNil(t, rec)
				assert.Equal(t, int64(2), rec.ID)
			} else {
				assert.Nil(t, rec)
			}
		})
	}
}
