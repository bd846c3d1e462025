package screen

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"strings"

	"github.com/erp/ausyexpo/internal/application/listing"
	"github.com/erp/ausyexpo/internal/domain/shared"
	"github.com/erp/ausyexpo/internal/infrastructure/api"
)

// Column renders one table column of a record.
type Column[T any] struct {
	Header string
	Value  func(item T, refs *Refs) string
}

// Action is a quick status change offered by a screen.
type Action[T any] struct {
	Name    string
	Help    string
	Options []string // accepted argument values; nil means no argument
	Build   func(arg string) shared.Transition
	// Success returns the notification; current is the loaded record
	// before the change, when known.
	Success func(current *T, arg string) string
	Failure string
}

// Config declares an entity screen.
type Config[T shared.Entity, B listing.Binding[T]] struct {
	Key        string
	Title      string
	Label      listing.Label
	Collection string
	Schema     *listing.Schema[T]
	Columns    []Column[T]
	NewForm    func() B
	Actions    []Action[T]
	// References lists the lookups the columns join against.
	References []string
	// RefFields maps form fields to the reference list offering choices.
	RefFields map[string]string
	// Prepare stamps values the user does not edit, before validation.
	Prepare func(form B, env Env)
	// PageSize overrides the configured default when positive.
	PageSize int
}

type entityScreen[T shared.Entity, B listing.Binding[T]] struct {
	cfg  Config[T, B]
	env  Env
	ctrl *listing.Controller[T]
	refs *refLoader
}

func newEntityScreen[T shared.Entity, B listing.Binding[T]](cfg Config[T, B], env Env, refs *refLoader) *entityScreen[T, B] {
	pageSize := env.PageSize
	if cfg.PageSize > 0 {
		pageSize = cfg.PageSize
	}
	repo := api.NewRepository[T](env.Client, cfg.Collection)
	ctrl := listing.NewController[T](repo, cfg.Schema, listing.Options{
		Label:    cfg.Label,
		Notifier: env.Notifier,
		PageSize: pageSize,
	})
	return &entityScreen[T, B]{cfg: cfg, env: env, ctrl: ctrl, refs: refs}
}

func (s *entityScreen[T, B]) Key() string            { return s.cfg.Key }
func (s *entityScreen[T, B]) Title() string          { return s.cfg.Title }
func (s *entityScreen[T, B]) Label() listing.Label   { return s.cfg.Label }
func (s *entityScreen[T, B]) Collection() string     { return s.cfg.Collection }
func (s *entityScreen[T, B]) SearchFields() []string { return s.cfg.Schema.SearchFields() }

// Controller exposes the typed list controller.
func (s *entityScreen[T, B]) Controller() *listing.Controller[T] { return s.ctrl }

func (s *entityScreen[T, B]) Filters() []FilterInfo {
	out := make([]FilterInfo, 0, len(s.cfg.Schema.Filters))
	for _, f := range s.cfg.Schema.Filters {
		info := FilterInfo{Key: f.Key, Options: f.Options}
		switch f.Kind {
		case listing.FilterEnum:
			info.Kind = "enum"
		case listing.FilterRef:
			info.Kind = "id"
		case listing.FilterText:
			info.Kind = "text"
		}
		out = append(out, info)
	}
	return out
}

func (s *entityScreen[T, B]) Actions() []ActionInfo {
	out := make([]ActionInfo, 0, len(s.cfg.Actions))
	for _, a := range s.cfg.Actions {
		out = append(out, ActionInfo{Name: a.Name, Help: a.Help, Options: a.Options})
	}
	return out
}

func (s *entityScreen[T, B]) Fields(ctx context.Context) ([]FieldInfo, error) {
	refs := s.refs.load(ctx, s.formRefs()...)

	fields := listing.Fields[T, B]()
	out := make([]FieldInfo, 0, len(fields))
	for _, f := range fields {
		info := FieldInfo{Name: f.Name, Type: f.Type, Required: f.Required, Options: f.Options}
		if kind, ok := s.cfg.RefFields[f.Name]; ok {
			info.Type = "reference"
			info.Choices = refs.lookup(kind).Choices()
		}
		out = append(out, info)
	}
	return out, nil
}

// Load fetches the list and then refreshes every reference list the
// screen joins against or offers as form choices.
func (s *entityScreen[T, B]) Load(ctx context.Context) error {
	if err := s.ctrl.Load(ctx); err != nil {
		return err
	}
	s.refs.refresh(ctx, append(slices.Clone(s.cfg.References), s.formRefs()...)...)
	return nil
}

func (s *entityScreen[T, B]) formRefs() []string {
	kinds := make([]string, 0, len(s.cfg.RefFields))
	for _, kind := range s.cfg.RefFields {
		kinds = append(kinds, kind)
	}
	sort.Strings(kinds)
	return kinds
}

func (s *entityScreen[T, B]) Apply(q Query) error {
	if err := s.ctrl.SetFilters(q.Filters); err != nil {
		return err
	}
	s.ctrl.SetSearch(q.Search)
	if q.PageSize != nil {
		s.ctrl.SetPageSize(*q.PageSize)
	}
	if q.Page > 0 {
		s.ctrl.SetPage(q.Page)
	}
	return nil
}

func (s *entityScreen[T, B]) List(ctx context.Context) (*Listing, error) {
	refs := s.refs.load(ctx, s.cfg.References...)
	page := s.ctrl.Page()

	out := &Listing{
		Columns: make([]string, 0, len(s.cfg.Columns)),
		Rows:    make([][]string, 0, len(page.Items)),
		Records: make([]any, 0, len(page.Items)),
		Page:    page.Number,
		Pages:   page.Count,
		Total:   page.Total,
		HasNext: page.HasNext(),
		HasPrev: page.HasPrev(),
	}
	for _, c := range s.cfg.Columns {
		out.Columns = append(out.Columns, c.Header)
	}
	for _, item := range page.Items {
		row := make([]string, 0, len(s.cfg.Columns))
		for _, c := range s.cfg.Columns {
			row = append(row, c.Value(item, refs))
		}
		out.Rows = append(out.Rows, row)
		out.Records = append(out.Records, item)
	}
	return out, nil
}

func (s *entityScreen[T, B]) Get(ctx context.Context, id int64) (any, error) {
	if rec, ok := s.ctrl.Find(id); ok {
		return rec, nil
	}
	rec, err := s.ctrl.Repository().FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return *rec, nil
}

func (s *entityScreen[T, B]) Create(ctx context.Context, values map[string]string) (any, error) {
	form := listing.NewForm[T](s.cfg.NewForm)
	return s.submit(ctx, form, values)
}

func (s *entityScreen[T, B]) Update(ctx context.Context, id int64, values map[string]string) (any, error) {
	current, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	form := listing.NewForm[T](s.cfg.NewForm)
	form.OpenEdit(current.(T))
	return s.submit(ctx, form, values)
}

func (s *entityScreen[T, B]) submit(ctx context.Context, form *listing.Form[T, B], values map[string]string) (any, error) {
	if err := form.Set(values); err != nil {
		return nil, err
	}
	if s.cfg.Prepare != nil {
		s.cfg.Prepare(form.Values(), s.env)
	}
	rec, err := form.Submit(ctx, s.ctrl)
	if err != nil {
		return nil, err
	}
	return *rec, nil
}

func (s *entityScreen[T, B]) Delete(ctx context.Context, id int64) error {
	return s.ctrl.Delete(ctx, id)
}

func (s *entityScreen[T, B]) Act(ctx context.Context, name string, id int64, arg string) (any, error) {
	idx := slices.IndexFunc(s.cfg.Actions, func(a Action[T]) bool { return a.Name == name })
	if idx < 0 {
		return nil, fmt.Errorf("%w: %s has no action %q", shared.ErrInvalidAction, s.cfg.Key, name)
	}
	action := s.cfg.Actions[idx]

	arg = strings.TrimSpace(arg)
	if action.Options == nil && arg != "" {
		return nil, fmt.Errorf("%w: %s takes no argument", shared.ErrInvalidAction, name)
	}
	if action.Options != nil && !slices.Contains(action.Options, arg) {
		return nil, fmt.Errorf("%w: %s must be one of %s, got %q", shared.ErrInvalidAction, name, strings.Join(action.Options, ", "), arg)
	}

	var current *T
	if rec, ok := s.ctrl.Find(id); ok {
		current = &rec
	}
	rec, err := s.ctrl.Transition(ctx, id, action.Build(arg), action.Success(current, arg), action.Failure)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, nil
	}
	return *rec, nil
}
