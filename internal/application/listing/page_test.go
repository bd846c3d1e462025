package listing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func seq(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i + 1
	}
	return out
}

func TestPaginate(t *testing.T) {
	tests := []struct {
		name      string
		n         int
		page      int
		size      int
		wantItems []int
		wantPage  int
		wantCount int
	}{
		{name: "first page", n: 25, page: 1, size: 10, wantItems: seq(10), wantPage: 1, wantCount: 3},
		{name: "last partial page", n: 25, page: 3, size: 10, wantItems: []int{21, 22, 23, 24, 25}, wantPage: 3, wantCount: 3},
		{name: "page beyond the end is clamped", n: 25, page: 9, size: 10, wantItems: []int{21, 22, 23, 24, 25}, wantPage: 3, wantCount: 3},
		{name: "page below one is clamped", n: 5, page: 0, size: 2, wantItems: []int{1, 2}, wantPage: 1, wantCount: 3},
		{name: "empty collection has one empty page", n: 0, page: 1, size: 10, wantItems: []int{}, wantPage: 1, wantCount: 1},
		{name: "zero size disables pagination", n: 7, page: 3, size: 0, wantItems: seq(7), wantPage: 1, wantCount: 1},
		{name: "exact multiple", n: 20, page: 2, size: 10, wantItems: []int{11, 12, 13, 14, 15, 16, 17, 18, 19, 20}, wantPage: 2, wantCount: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Paginate(seq(tt.n), tt.page, tt.size)
			assert.Equal(t, tt.wantItems, p.Items)
			assert.Equal(t, tt.wantPage, p.Number)
			assert.Equal(t, tt.wantCount, p.Count)
			assert.Equal(t, tt.n, p.Total)
		})
	}
}

func TestPaginate_PartitionsItems(t *testing.T) {
	for _, n := range []int{0, 1, 9, 10, 11, 37} {
		for _, size := range []int{1, 3, 10} {
			items := seq(n)
			first := Paginate(items, 1, size)

			var joined []int
			for page := 1; page <= first.Count; page++ {
				joined = append(joined, Paginate(items, page, size).Items...)
			}
			if n == 0 {
				assert.Empty(t, joined)
				continue
			}
			assert.Equal(t, items, joined, "n=%d size=%d", n, size)
		}
	}
}

func TestPage_Navigation(t *testing.T) {
	p := Paginate(seq(25), 2, 10)
	assert.True(t, p.HasPrev())
	assert.True(t, p.HasNext())

	last := Paginate(seq(25), 3, 10)
	assert.False(t, last.HasNext())
}
