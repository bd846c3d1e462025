// Package screen assembles one list-management screen per backend entity
// and exposes them behind a uniform, type-erased interface.
package screen

import (
	"context"

	"go.uber.org/zap"

	"github.com/erp/ausyexpo/internal/application/listing"
	"github.com/erp/ausyexpo/internal/infrastructure/api"
)

// Screen is one entity screen: a list with search, filters and pages, a
// create/edit form, delete and quick status actions.
type Screen interface {
	Key() string
	Title() string
	Label() listing.Label
	Collection() string

	SearchFields() []string
	Filters() []FilterInfo
	Actions() []ActionInfo
	Fields(ctx context.Context) ([]FieldInfo, error)

	Load(ctx context.Context) error
	Apply(q Query) error
	List(ctx context.Context) (*Listing, error)
	Get(ctx context.Context, id int64) (any, error)

	Create(ctx context.Context, values map[string]string) (any, error)
	Update(ctx context.Context, id int64, values map[string]string) (any, error)
	Delete(ctx context.Context, id int64) error
	Act(ctx context.Context, action string, id int64, arg string) (any, error)
}

// Env carries the dependencies shared by every screen.
type Env struct {
	Client   *api.Client
	Notifier listing.Notifier
	Logger   *zap.Logger
	PageSize int
}

// Query narrows a list. Apply replaces the search and the whole filter set;
// a nil PageSize keeps the current size and a zero Page the current page.
type Query struct {
	Search   string
	Filters  map[string]string
	Page     int
	PageSize *int
}

// Listing is one rendered page of a screen.
type Listing struct {
	Columns []string
	Rows    [][]string
	Records []any
	Page    int
	Pages   int
	Total   int
	HasNext bool
	HasPrev bool
}

// FilterInfo describes a discrete filter for help output.
type FilterInfo struct {
	Key     string   `json:"key"`
	Kind    string   `json:"kind"`
	Options []string `json:"options,omitempty"`
}

// ActionInfo describes a quick status action.
type ActionInfo struct {
	Name    string   `json:"name"`
	Help    string   `json:"help"`
	Options []string `json:"options,omitempty"`
}

// FieldInfo describes one form input, with choices for reference fields.
type FieldInfo struct {
	Name     string           `json:"name"`
	Type     string           `json:"type"`
	Required bool             `json:"required"`
	Options  []string         `json:"options,omitempty"`
	Choices  []listing.Choice `json:"choices,omitempty"`
}
