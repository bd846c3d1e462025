package listing

import (
	"context"
	"slices"
	"sync"

	"go.uber.org/zap"

	"github.com/erp/ausyexpo/internal/domain/shared"
	"github.com/erp/ausyexpo/internal/infrastructure/logger"
)

// View is the narrowing state of a list: search term, discrete filter
// selections and the requested page.
type View struct {
	Search   string
	Filters  map[string]string
	Page     int
	PageSize int
}

// Controller holds one entity collection and its view state. It is safe for
// concurrent use. Every fetch is tagged with a sequence number and a result
// is applied only when it is newer than the last applied one, so a slow
// response never overwrites a fresher list.
type Controller[T shared.Entity] struct {
	repo   shared.Repository[T]
	schema *Schema[T]
	label  Label
	notify Notifier

	mu       sync.Mutex
	items    []T
	inflight int
	issued   uint64
	applied  uint64
	view     View
}

// Options configures a Controller.
type Options struct {
	Label    Label
	Notifier Notifier
	PageSize int
}

// NewController returns a controller with an empty collection. Call Load to
// fetch it.
func NewController[T shared.Entity](repo shared.Repository[T], schema *Schema[T], opts Options) *Controller[T] {
	if schema == nil {
		schema = &Schema[T]{}
	}
	if opts.Notifier == nil {
		opts.Notifier = NopNotifier{}
	}
	return &Controller[T]{
		repo:   repo,
		schema: schema,
		label:  opts.Label,
		notify: opts.Notifier,
		items:  []T{},
		view:   View{Filters: map[string]string{}, Page: 1, PageSize: opts.PageSize},
	}
}

// Label returns the entity label used in notifications.
func (c *Controller[T]) Label() Label { return c.label }

// Schema returns the search and filter description.
func (c *Controller[T]) Schema() *Schema[T] { return c.schema }

// Repository returns the underlying data access.
func (c *Controller[T]) Repository() shared.Repository[T] { return c.repo }

// Load fetches the whole collection with a single request. On failure the
// collection is emptied and a failure is notified. Results of fetches that
// were overtaken by a later fetch are discarded without notification.
func (c *Controller[T]) Load(ctx context.Context) error {
	c.mu.Lock()
	c.issued++
	seq := c.issued
	c.inflight++
	c.mu.Unlock()

	items, err := c.repo.FindAll(ctx)

	c.mu.Lock()
	c.inflight--
	if seq <= c.applied {
		c.mu.Unlock()
		logger.L(ctx).Debug("discarding stale fetch",
			zap.String("collection", c.label.Plural),
			zap.Uint64("seq", seq))
		return err
	}
	c.applied = seq
	if err != nil {
		c.items = []T{}
	} else {
		if items == nil {
			items = []T{}
		}
		c.items = items
	}
	c.mu.Unlock()

	if err != nil {
		logger.L(ctx).Warn("load failed", zap.String("collection", c.label.Plural), zap.Error(err))
		c.notify.Failure(c.label.loadFailed())
		return err
	}
	return nil
}

// Loading reports whether a fetch is in flight.
func (c *Controller[T]) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.inflight > 0
}

// Items returns a copy of the whole loaded collection.
func (c *Controller[T]) Items() []T {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.items)
}

// Find returns the loaded record with id.
func (c *Controller[T]) Find(id int64) (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, item := range c.items {
		if item.GetID() == id {
			return item, true
		}
	}
	var zero T
	return zero, false
}

// Create submits a payload with POST, notifies the outcome and reloads the
// list on success. On failure the server's message is shown verbatim, or a
// generic fallback.
func (c *Controller[T]) Create(ctx context.Context, payload any) (*T, error) {
	rec, err := c.repo.Create(ctx, payload)
	if err != nil {
		c.fail(ctx, "create", err, c.label.createFailed())
		return nil, err
	}
	c.notify.Success(c.label.Created())
	_ = c.Load(ctx)
	return rec, nil
}

// Update submits a payload with PUT to the record's path.
func (c *Controller[T]) Update(ctx context.Context, id int64, payload any) (*T, error) {
	rec, err := c.repo.Update(ctx, id, payload)
	if err != nil {
		c.fail(ctx, "update", err, c.label.updateFailed())
		return nil, err
	}
	c.notify.Success(c.label.Updated())
	_ = c.Load(ctx)
	return rec, nil
}

// Delete removes a record. Confirmation is the caller's concern.
func (c *Controller[T]) Delete(ctx context.Context, id int64) error {
	if err := c.repo.Delete(ctx, id); err != nil {
		c.fail(ctx, "delete", err, c.label.deleteFailed())
		return err
	}
	c.notify.Success(c.label.Deleted())
	_ = c.Load(ctx)
	return nil
}

// Transition applies a quick status change and reloads the list. The
// returned record is nil when the endpoint does not answer with one.
func (c *Controller[T]) Transition(ctx context.Context, id int64, t shared.Transition, success, failure string) (*T, error) {
	rec, err := c.repo.Transition(ctx, id, t)
	if err != nil {
		c.fail(ctx, t.Action, err, failure)
		return nil, err
	}
	c.notify.Success(success)
	_ = c.Load(ctx)
	return rec, nil
}

func (c *Controller[T]) fail(ctx context.Context, op string, err error, fallback string) {
	logger.L(ctx).Warn(op+" failed", zap.String("collection", c.label.Plural), zap.Error(err))
	c.notify.Failure(shared.RemoteMessage(err, fallback))
}

// View returns a copy of the current view state.
func (c *Controller[T]) View() View {
	c.mu.Lock()
	defer c.mu.Unlock()
	v := c.view
	v.Filters = make(map[string]string, len(c.view.Filters))
	for k, val := range c.view.Filters {
		v.Filters[k] = val
	}
	return v
}

// SetSearch changes the search term and returns to the first page.
func (c *Controller[T]) SetSearch(term string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.view.Search = term
	c.view.Page = 1
}

// SetFilter selects a discrete filter value and returns to the first page.
// ALL or an empty value clears the filter.
func (c *Controller[T]) SetFilter(key, value string) error {
	normalized, err := c.schema.Normalize(map[string]string{key: value})
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if v, ok := normalized[key]; ok {
		c.view.Filters[key] = v
	} else {
		delete(c.view.Filters, key)
	}
	c.view.Page = 1
	return nil
}

// SetFilters replaces every filter selection and returns to the first page.
// Filters missing from filters are cleared.
func (c *Controller[T]) SetFilters(filters map[string]string) error {
	normalized, err := c.schema.Normalize(filters)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.view.Filters = normalized
	c.view.Page = 1
	return nil
}

// SetPage selects a page; it is clamped when the view is rendered.
func (c *Controller[T]) SetPage(n int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.view.Page = n
}

// SetPageSize changes the page size; zero disables pagination.
func (c *Controller[T]) SetPageSize(n int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.view.PageSize = n
	c.view.Page = 1
}

// Visible returns the loaded records passing the search and filters.
func (c *Controller[T]) Visible() []T {
	view := c.View()
	c.mu.Lock()
	items := c.items
	c.mu.Unlock()
	return c.schema.Apply(items, view.Search, view.Filters)
}

// Page returns the current page of visible records.
func (c *Controller[T]) Page() Page[T] {
	view := c.View()
	return Paginate(c.Visible(), view.Page, view.PageSize)
}
