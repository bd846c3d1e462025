package listing

import (
	"fmt"
	"slices"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/text/cases"

	"github.com/erp/ausyexpo/internal/domain/shared"
)

// FilterAll is the filter value that disables a discrete filter.
const FilterAll = "ALL"

// FilterKind decides which values a discrete filter accepts.
type FilterKind int

const (
	// FilterEnum accepts one of the filter's Options.
	FilterEnum FilterKind = iota
	// FilterRef accepts the id of a referenced record.
	FilterRef
	// FilterText accepts any text, matched as a substring.
	FilterText
)

// SearchField is one record field covered by the free-text search.
type SearchField[T any] struct {
	Name  string
	Value func(T) string
}

// FilterDef is one discrete filter of a screen.
type FilterDef[T any] struct {
	Key     string
	Kind    FilterKind
	Options []string
	// Match reports whether item passes the filter for a validated value.
	Match func(item T, value string) bool
}

// Schema describes how a screen narrows its collection.
type Schema[T any] struct {
	Search  []SearchField[T]
	Filters []FilterDef[T]
}

// SearchFields returns the names of the searched fields.
func (s *Schema[T]) SearchFields() []string {
	names := make([]string, 0, len(s.Search))
	for _, f := range s.Search {
		names = append(names, f.Name)
	}
	return names
}

// Filter returns the definition for key.
func (s *Schema[T]) Filter(key string) (FilterDef[T], bool) {
	for _, f := range s.Filters {
		if f.Key == key {
			return f, true
		}
	}
	return FilterDef[T]{}, false
}

// Normalize validates filter selections and drops no-op values (ALL or
// empty). Unknown keys and values outside a filter's options are rejected.
func (s *Schema[T]) Normalize(filters map[string]string) (map[string]string, error) {
	out := make(map[string]string, len(filters))
	keys := make([]string, 0, len(filters))
	for k := range filters {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		value := strings.TrimSpace(filters[key])
		def, ok := s.Filter(key)
		if !ok {
			return nil, fmt.Errorf("%w: %q (available: %s)", shared.ErrInvalidFilter, key, strings.Join(s.filterKeys(), ", "))
		}
		if value == "" || value == FilterAll {
			continue
		}
		if err := def.accepts(value); err != nil {
			return nil, err
		}
		out[key] = value
	}
	return out, nil
}

func (s *Schema[T]) filterKeys() []string {
	keys := make([]string, 0, len(s.Filters))
	for _, f := range s.Filters {
		keys = append(keys, f.Key)
	}
	return keys
}

func (d FilterDef[T]) accepts(value string) error {
	switch d.Kind {
	case FilterEnum:
		if !slices.Contains(d.Options, value) {
			return fmt.Errorf("%w: %s must be one of %s, got %q", shared.ErrInvalidFilter, d.Key, strings.Join(append([]string{FilterAll}, d.Options...), ", "), value)
		}
	case FilterRef:
		if id, err := strconv.ParseInt(value, 10, 64); err != nil || id <= 0 {
			return fmt.Errorf("%w: %s must be a record id, got %q", shared.ErrInvalidFilter, d.Key, value)
		}
	}
	return nil
}

// Apply returns the items that match the search term and every active
// filter. Filters must already be normalized.
func (s *Schema[T]) Apply(items []T, search string, filters map[string]string) []T {
	fold := cases.Fold()
	term := fold.String(strings.TrimSpace(search))

	out := make([]T, 0, len(items))
	for _, item := range items {
		if !s.matchesSearch(fold, item, term) {
			continue
		}
		if !s.matchesFilters(item, filters) {
			continue
		}
		out = append(out, item)
	}
	return out
}

// MatchesSearch reports whether any searched field of item contains term,
// ignoring case. An empty term matches every record.
func (s *Schema[T]) MatchesSearch(item T, term string) bool {
	fold := cases.Fold()
	return s.matchesSearch(fold, item, fold.String(strings.TrimSpace(term)))
}

func (s *Schema[T]) matchesSearch(fold cases.Caser, item T, term string) bool {
	if term == "" {
		return true
	}
	for _, f := range s.Search {
		if strings.Contains(fold.String(f.Value(item)), term) {
			return true
		}
	}
	return false
}

func (s *Schema[T]) matchesFilters(item T, filters map[string]string) bool {
	for key, value := range filters {
		def, ok := s.Filter(key)
		if !ok {
			continue
		}
		if !def.Match(item, value) {
			return false
		}
	}
	return true
}

// ContainsFold reports whether s contains substr, ignoring case.
func ContainsFold(s, substr string) bool {
	fold := cases.Fold()
	return strings.Contains(fold.String(s), fold.String(substr))
}

// RefMatch builds a Match func comparing a referenced id with the filter value.
func RefMatch[T any](id func(T) int64) func(T, string) bool {
	return func(item T, value string) bool {
		return strconv.FormatInt(id(item), 10) == value
	}
}

// EqualMatch builds a Match func comparing a field with the filter value.
func EqualMatch[T any](field func(T) string) func(T, string) bool {
	return func(item T, value string) bool {
		return field(item) == value
	}
}
