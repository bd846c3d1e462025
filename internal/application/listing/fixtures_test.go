package listing

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/erp/ausyexpo/internal/domain/shared"
)

type widget struct {
	shared.BaseEntity
	Name    string `json:"name"`
	Kind    string `json:"kind"`
	OwnerID int64  `json:"ownerId"`
	Active  bool   `json:"active"`
}

type widgetForm struct {
	Name    string `form:"name" validate:"required"`
	Email   string `form:"email" validate:"omitempty,emailshape"`
	Qty     string `form:"qty" validate:"required,integer,positive"`
	Price   string `form:"price" validate:"required,positive"`
	Total   string `form:"total"`
	Kind    string `form:"kind" validate:"required,oneof=A B"`
	OwnerID string `form:"ownerId" validate:"omitempty,refid"`
	Active  bool   `form:"active"`
	Secret  string `form:"secret"`
}

func newWidgetForm() *widgetForm { return &widgetForm{Kind: "A", Active: true} }

func (f *widgetForm) Fill(w widget) {
	f.Name = w.Name
	f.Kind = w.Kind
	f.OwnerID = shared.FormatID(w.OwnerID)
	f.Active = w.Active
	f.Qty = "1"
	f.Price = "1"
}

func (f *widgetForm) Payload(shared.FormMode) (any, error) {
	return widget{Name: f.Name, Kind: f.Kind, OwnerID: shared.ParseID(f.OwnerID), Active: f.Active}, nil
}

func (f *widgetForm) Check(mode shared.FormMode) []shared.FieldError {
	if mode == shared.ModeCreate && f.Secret == "" {
		return []shared.FieldError{{Field: "secret", Message: "Secret is required"}}
	}
	return nil
}

func (f *widgetForm) Derive() {
	qty, err1 := decimal.NewFromString(f.Qty)
	price, err2 := decimal.NewFromString(f.Price)
	if err1 == nil && err2 == nil {
		f.Total = qty.Mul(price).StringFixed(2)
	}
}

var widgetLabel = Label{Singular: "Widget", Plural: "widgets"}

func widgetSchema() *Schema[widget] {
	return &Schema[widget]{
		Search: []SearchField[widget]{
			{Name: "name", Value: func(w widget) string { return w.Name }},
			{Name: "kind", Value: func(w widget) string { return w.Kind }},
		},
		Filters: []FilterDef[widget]{
			{Key: "kind", Kind: FilterEnum, Options: []string{"A", "B"}, Match: EqualMatch(func(w widget) string { return w.Kind })},
			{Key: "owner", Kind: FilterRef, Match: RefMatch(func(w widget) int64 { return w.OwnerID })},
			{Key: "status", Kind: FilterEnum, Options: []string{"ACTIVE", "INACTIVE"}, Match: func(w widget, v string) bool {
				return (v == "ACTIVE") == w.Active
			}},
			{Key: "name", Kind: FilterText, Match: func(w widget, v string) bool { return ContainsFold(w.Name, v) }},
		},
	}
}

func newWidget(id int64, name, kind string, owner int64, active bool) widget {
	return widget{BaseEntity: shared.BaseEntity{ID: id}, Name: name, Kind: kind, OwnerID: owner, Active: active}
}

// recorder collects notifications.
type recorder struct {
	mu        sync.Mutex
	successes []string
	failures  []string
}

func (r *recorder) Success(msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.successes = append(r.successes, msg)
}

func (r *recorder) Failure(msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failures = append(r.failures, msg)
}

// remoteErr mimics an API error carrying the backend's text.
type remoteErr struct {
	status int
	msg    string
}

func (e *remoteErr) Error() string         { return fmt.Sprintf("status %d: %s", e.status, e.msg) }
func (e *remoteErr) RemoteMessage() string { return e.msg }

// memRepo is an in-memory backend for one collection.
type memRepo struct {
	mu        sync.Mutex
	records   map[int64]widget
	nextID    int64
	deleteErr error
	createErr error
}

func newMemRepo(items ...widget) *memRepo {
	r := &memRepo{records: map[int64]widget{}, nextID: 1}
	for _, it := range items {
		r.records[it.ID] = it
		if it.ID >= r.nextID {
			r.nextID = it.ID + 1
		}
	}
	return r
}

func (r *memRepo) FindAll(context.Context) ([]widget, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]widget, 0, len(r.records))
	for _, w := range r.records {
		out = append(out, w)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *memRepo) FindByID(_ context.Context, id int64) (*widget, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	w, ok := r.records[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return &w, nil
}

func (r *memRepo) Create(_ context.Context, payload any) (*widget, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return nil, r.createErr
	}
	w := payload.(widget)
	w.ID = r.nextID
	r.nextID++
	r.records[w.ID] = w
	return &w, nil
}

func (r *memRepo) Update(_ context.Context, id int64, payload any) (*widget, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.records[id]; !ok {
		return nil, &remoteErr{status: 404, msg: "Widget not found"}
	}
	w := payload.(widget)
	w.ID = id
	r.records[id] = w
	return &w, nil
}

func (r *memRepo) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.deleteErr != nil {
		return r.deleteErr
	}
	delete(r.records, id)
	return nil
}

func (r *memRepo) Transition(_ context.Context, id int64, t shared.Transition) (*widget, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	w, ok := r.records[id]
	if !ok {
		return nil, &remoteErr{status: 404, msg: "Widget not found"}
	}
	if t.Action != "toggle-status" {
		return nil, errors.New("unsupported action " + t.Action)
	}
	w.Active = !w.Active
	r.records[id] = w
	return &w, nil
}

// MockWidgetRepository is a mock implementation of shared.Repository[widget]
type MockWidgetRepository struct {
	mock.Mock
}

func (m *MockWidgetRepository) FindAll(ctx context.Context) ([]widget, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]widget), args.Error(1)
}

func (m *MockWidgetRepository) FindByID(ctx context.Context, id int64) (*widget, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*widget), args.Error(1)
}

func (m *MockWidgetRepository) Create(ctx context.Context, payload any) (*widget, error) {
	args := m.Called(ctx, payload)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*widget), args.Error(1)
}

func (m *MockWidgetRepository) Update(ctx context.Context, id int64, payload any) (*widget, error) {
	args := m.Called(ctx, id, payload)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*widget), args.Error(1)
}

func (m *MockWidgetRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockWidgetRepository) Transition(ctx context.Context, id int64, t shared.Transition) (*widget, error) {
	args := m.Called(ctx, id, t)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*widget), args.Error(1)
}

func names(items []widget) string {
	parts := make([]string, 0, len(items))
	for _, w := range items {
		parts = append(parts, w.Name)
	}
	return strings.Join(parts, ",")
}
