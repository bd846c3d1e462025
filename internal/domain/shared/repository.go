package shared

import (
	"context"
	"net/http"
)

// Repository is the data-access contract for one REST collection.
// Payloads are the wire shapes produced by forms, not records.
type Repository[T any] interface {
	FindAll(ctx context.Context) ([]T, error)
	FindByID(ctx context.Context, id int64) (*T, error)
	Create(ctx context.Context, payload any) (*T, error)
	Update(ctx context.Context, id int64, payload any) (*T, error)
	Delete(ctx context.Context, id int64) error
	Transition(ctx context.Context, id int64, t Transition) (*T, error)
}

// Transition is a single-field state change exposed by the backend as a
// sub-resource of a record, e.g. PUT /api/orders/{id}/status.
type Transition struct {
	Action string            // path segment after the id
	Method string            // defaults to PUT
	Query  map[string]string // optional query parameters
	Body   any               // optional JSON body
}

// HTTPMethod returns the request method, defaulting to PUT.
func (t Transition) HTTPMethod() string {
	if t.Method == "" {
		return http.MethodPut
	}
	return t.Method
}
