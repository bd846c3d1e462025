package api

import (
	"context"
	"net/http"
	"strconv"

	"github.com/erp/ausyexpo/internal/domain/shared"
)

// Repository implements shared.Repository[T] for one REST collection,
// e.g. /api/branches.
type Repository[T any] struct {
	client     *Client
	collection string
}

var _ shared.Repository[struct{}] = (*Repository[struct{}])(nil)

// NewRepository returns a repository for the collection path under /api.
func NewRepository[T any](client *Client, collection string) *Repository[T] {
	return &Repository[T]{client: client, collection: collection}
}

// Collection returns the collection path, e.g. "branches".
func (r *Repository[T]) Collection() string {
	return r.collection
}

// FindAll fetches the whole collection.
func (r *Repository[T]) FindAll(ctx context.Context) ([]T, error) {
	items := make([]T, 0)
	if err := r.client.Do(ctx, Request{Method: http.MethodGet, Path: r.collection}, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// FindByID fetches one record.
func (r *Repository[T]) FindByID(ctx context.Context, id int64) (*T, error) {
	var item T
	if err := r.client.Do(ctx, Request{
		Method: http.MethodGet,
		Path:   r.itemPath(id),
		Route:  r.collection + "/{id}",
	}, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// Create POSTs payload and returns the record with its server-assigned id.
func (r *Repository[T]) Create(ctx context.Context, payload any) (*T, error) {
	var item T
	if err := r.client.Do(ctx, Request{Method: http.MethodPost, Path: r.collection, Body: payload}, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// Update PUTs payload to the record's path.
func (r *Repository[T]) Update(ctx context.Context, id int64, payload any) (*T, error) {
	var item T
	if err := r.client.Do(ctx, Request{
		Method: http.MethodPut,
		Path:   r.itemPath(id),
		Route:  r.collection + "/{id}",
		Body:   payload,
	}, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// Delete removes the record.
func (r *Repository[T]) Delete(ctx context.Context, id int64) error {
	return r.client.Do(ctx, Request{
		Method: http.MethodDelete,
		Path:   r.itemPath(id),
		Route:  r.collection + "/{id}",
	}, nil)
}

// Transition calls a sub-resource such as /api/stock/{id}/release. Some
// endpoints answer with the updated record, others with a message or an
// empty body; the record is returned only when the body decodes as one.
func (r *Repository[T]) Transition(ctx context.Context, id int64, t shared.Transition) (*T, error) {
	var raw rawBody
	if err := r.client.Do(ctx, Request{
		Method: t.HTTPMethod(),
		Path:   r.itemPath(id) + "/" + t.Action,
		Route:  r.collection + "/{id}/" + t.Action,
		Query:  t.Query,
		Body:   t.Body,
	}, &raw); err != nil {
		return nil, err
	}
	return decodeRecord[T](raw), nil
}

func (r *Repository[T]) itemPath(id int64) string {
	return r.collection + "/" + strconv.FormatInt(id, 10)
}
