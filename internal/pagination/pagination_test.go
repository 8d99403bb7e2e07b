package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// render turns tokens into labels so expectations read like the on-screen bar.
func render(tokens []Token, ix Indexing) []string {
	out := make([]string, len(tokens))
	for i, t := range tokens {
		out[i] = t.Label(ix)
	}
	return out
}

func TestPagesSuppressedForSinglePage(t *testing.T) {
	assert.Nil(t, Pages(0, 20, 0))
	assert.Nil(t, Pages(20, 20, 0))
	assert.Nil(t, Pages(5, 20, 3))
	assert.Nil(t, Pages(100, 0, 0))
}

func TestPagesListsEverySmallPageSet(t *testing.T) {
	for totalPages := 2; totalPages <= 5; totalPages++ {
		tokens := Pages(totalPages*10, 10, 0)
		assert.Len(t, tokens, totalPages)
		for i, tok := range tokens {
			assert.False(t, tok.Ellipsis)
			assert.Equal(t, i, tok.Page)
		}
	}
}

func TestPagesWindow(t *testing.T) {
	tests := []struct {
		name    string
		current int
		want    []string
	}{
		{"first page", 0, []string{"0", "1", "2", "...", "9"}},
		{"near start", 2, []string{"0", "1", "2", "...", "9"}},
		{"first middle", 3, []string{"0", "...", "2", "3", "4", "...", "9"}},
		{"middle", 5, []string{"0", "...", "4", "5", "6", "...", "9"}},
		{"last middle", 6, []string{"0", "...", "5", "6", "7", "...", "9"}},
		{"near end", 7, []string{"0", "...", "7", "8", "9"}},
		{"last page", 9, []string{"0", "...", "7", "8", "9"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, render(Pages(100, 10, tt.current), ZeroBased))
		})
	}
}

func TestPagesOneBasedLabels(t *testing.T) {
	got := render(Pages(100, 10, 0), OneBased)
	assert.Equal(t, []string{"1", "2", "3", "...", "10"}, got)
}

func TestPagesClampsCurrentPage(t *testing.T) {
	assert.Equal(t, Pages(100, 10, 9), Pages(100, 10, 42))
	assert.Equal(t, Pages(100, 10, 0), Pages(100, 10, -3))
}

func TestOffsetConversion(t *testing.T) {
	assert.Equal(t, 0, PageFromOffset(0, 10))
	assert.Equal(t, 2, PageFromOffset(25, 10))
	assert.Equal(t, 30, OffsetFromPage(3, 10))
	assert.Equal(t, 0, OffsetFromPage(-1, 10))
}

func TestDescriptor(t *testing.T) {
	d := Descriptor{Total: 45, PageSize: 20, Page: 2}
	assert.Equal(t, 3, d.TotalPages())
	assert.True(t, d.HasPrevious())
	assert.False(t, d.HasNext())

	first, last := d.Range()
	assert.Equal(t, 41, first)
	assert.Equal(t, 45, last)

	d = FromOffset(45, 20, 20)
	assert.Equal(t, 1, d.Page)
	assert.True(t, d.HasNext())

	first, last = Descriptor{}.Range()
	assert.Zero(t, first)
	assert.Zero(t, last)
}
