package listing

// Page is one slice of a paginated collection.
type Page[T any] struct {
	Items  []T
	Number int // 1-based, clamped to [1, Count]
	Count  int // number of pages, at least 1
	Size   int // page size; 0 when pagination is disabled
	Total  int // items across all pages
}

// HasNext reports whether a later page exists.
func (p Page[T]) HasNext() bool { return p.Number < p.Count }

// HasPrev reports whether an earlier page exists.
func (p Page[T]) HasPrev() bool { return p.Number > 1 }

// Paginate returns page number of items split into pages of size. A size of
// zero or less disables pagination. An empty collection has one empty page.
func Paginate[T any](items []T, number, size int) Page[T] {
	total := len(items)
	if size <= 0 {
		return Page[T]{Items: items, Number: 1, Count: 1, Total: total}
	}

	count := (total + size - 1) / size
	if count < 1 {
		count = 1
	}
	number = min(max(number, 1), count)

	start := min((number-1)*size, total)
	end := min(start+size, total)
	return Page[T]{
		Items:  items[start:end],
		Number: number,
		Count:  count,
		Size:   size,
		Total:  total,
	}
}
