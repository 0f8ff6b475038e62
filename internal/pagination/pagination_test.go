package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_RejectsNonPositivePageSize(t *testing.T) {
	_, err := New(0)
	assert.ErrorIs(t, err, ErrInvalidPageSize)

	_, err = New(-3)
	assert.ErrorIs(t, err, ErrInvalidPageSize)

	p, err := New(1)
	require.NoError(t, err)
	assert.Equal(t, 1, p.PageSize())
}

func TestWindow_LastPageSize(t *testing.T) {
	p, err := New(10)
	require.NoError(t, err)

	tests := []struct {
		name       string
		total      int64
		page       int
		wantPage   int
		wantOffset int
		wantPages  int
		hasNext    bool
		hasPrev    bool
	}{
		{"First of two pages", 15, 1, 1, 0, 2, true, false},
		{"Partial last page", 15, 2, 2, 10, 2, false, true},
		{"Out of range clamps to last", 15, 3, 2, 10, 2, false, true},
		{"Exact multiple keeps full last page", 20, 2, 2, 10, 2, false, true},
		{"Below range clamps to first", 15, 0, 1, 0, 2, true, false},
		{"Single page", 7, 1, 1, 0, 1, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := p.Window(tt.total, tt.page)
			assert.Equal(t, tt.wantPage, w.Page)
			assert.Equal(t, tt.wantOffset, w.Offset)
			assert.Equal(t, tt.wantPages, w.TotalPages)
			assert.Equal(t, tt.total, w.TotalItems)
			assert.Equal(t, tt.hasNext, w.HasNext)
			assert.Equal(t, tt.hasPrev, w.HasPrev)
		})
	}
}

func TestWindow_EmptySequence(t *testing.T) {
	p, err := New(10)
	require.NoError(t, err)

	w := p.Window(0, 1)
	assert.Equal(t, 1, w.Page)
	assert.Equal(t, 1, w.TotalPages)
	assert.Equal(t, int64(0), w.TotalItems)
	assert.False(t, w.HasNext)
	assert.False(t, w.HasPrev)

	// Any page of an empty sequence is page 1 of 1.
	w = p.Window(0, 42)
	assert.Equal(t, 1, w.Page)
}

func TestSlice_FifteenItemsPageSizeTen(t *testing.T) {
	p, err := New(10)
	require.NoError(t, err)

	items := make([]int, 15)
	for i := range items {
		items[i] = i
	}

	page1, w1 := Slice(p, items, 1)
	assert.Len(t, page1, 10)
	assert.True(t, w1.HasNext)

	page2, w2 := Slice(p, items, 2)
	assert.Len(t, page2, 5)
	assert.False(t, w2.HasNext)
	assert.True(t, w2.HasPrev)

	// Page 3 is out of range and returns the same slice as page 2.
	page3, w3 := Slice(p, items, 3)
	assert.Equal(t, page2, page3)
	assert.Equal(t, w2.Page, w3.Page)
}

func TestSlice_Empty(t *testing.T) {
	p, err := New(10)
	require.NoError(t, err)

	items, w := Slice(p, []string{}, 1)
	assert.Empty(t, items)
	assert.Equal(t, 1, w.Page)
	assert.Equal(t, 1, w.TotalPages)
}
