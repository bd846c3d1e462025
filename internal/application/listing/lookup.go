package listing

import (
	"sort"

	"github.com/erp/ausyexpo/internal/domain/shared"
)

// Unknown is rendered for a reference whose record is not in the lookup.
const Unknown = "Unknown"

// Choice is one selectable record of a reference field.
type Choice struct {
	ID    int64  `json:"id"`
	Label string `json:"label"`
}

// Lookup resolves reference ids to display names from an independently
// fetched list.
type Lookup map[int64]string

// NewLookup indexes items by id using name for the display text.
func NewLookup[T shared.Entity](items []T, name func(T) string) Lookup {
	l := make(Lookup, len(items))
	for _, item := range items {
		l[item.GetID()] = name(item)
	}
	return l
}

// Name returns the display name for id, or fallback when id is unset or
// not present.
func (l Lookup) Name(id int64, fallback string) string {
	if name, ok := l[id]; ok && id > 0 {
		return name
	}
	return fallback
}

// Choices lists the lookup as selectable options ordered by id.
func (l Lookup) Choices() []Choice {
	out := make([]Choice, 0, len(l))
	for id, label := range l {
		out = append(out, Choice{ID: id, Label: label})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
