// Package pagination computes the page-number window shown under paged lists.
//
// Pages are always addressed internally by a zero-based index. Indexing only
// decides how a page is labelled and how offsets map onto pages, so the
// offset/limit listings and the page/size listings share one window policy.
package pagination

import "strconv"

// Indexing is the page numbering convention used for labels.
type Indexing int

const (
	ZeroBased Indexing = iota
	OneBased
)

const (
	// maxVisible is the page count up to which every page is listed.
	maxVisible = 5
	// edgeWindow is how many pages are shown next to a boundary.
	edgeWindow = 3
)

// PageSizes are the page sizes a user can pick from.
var PageSizes = []int{10, 20, 50, 100}

// Token is one entry of the page window: a page index or an ellipsis.
type Token struct {
	Page     int
	Ellipsis bool
}

func page(i int) Token { return Token{Page: i} }

var ellipsis = Token{Ellipsis: true}

// Label renders the token for display.
func (t Token) Label(ix Indexing) string {
	if t.Ellipsis {
		return "..."
	}
	if ix == OneBased {
		return strconv.Itoa(t.Page + 1)
	}
	return strconv.Itoa(t.Page)
}

// TotalPages returns ceil(totalItems / pageSize).
func TotalPages(totalItems, pageSize int) int {
	if totalItems <= 0 || pageSize <= 0 {
		return 0
	}
	return (totalItems + pageSize - 1) / pageSize
}

// Pages returns the page window for currentPage. Nil means no pagination
// control should be shown.
func Pages(totalItems, pageSize, currentPage int) []Token {
	total := TotalPages(totalItems, pageSize)
	if total <= 1 {
		return nil
	}

	current := clamp(currentPage, 0, total-1)
	last := total - 1

	if total <= maxVisible {
		tokens := make([]Token, 0, total)
		for i := 0; i < total; i++ {
			tokens = append(tokens, page(i))
		}
		return tokens
	}

	switch {
	case current < edgeWindow:
		tokens := make([]Token, 0, edgeWindow+2)
		for i := 0; i < edgeWindow; i++ {
			tokens = append(tokens, page(i))
		}
		return append(tokens, ellipsis, page(last))
	case current >= total-edgeWindow:
		tokens := []Token{page(0), ellipsis}
		for i := total - edgeWindow; i < total; i++ {
			tokens = append(tokens, page(i))
		}
		return tokens
	default:
		return []Token{
			page(0), ellipsis,
			page(current - 1), page(current), page(current + 1),
			ellipsis, page(last),
		}
	}
}

// PageFromOffset converts an offset/limit position into a zero-based page.
func PageFromOffset(offset, limit int) int {
	if limit <= 0 || offset <= 0 {
		return 0
	}
	return offset / limit
}

// OffsetFromPage converts a zero-based page into an offset.
func OffsetFromPage(page, limit int) int {
	if page <= 0 || limit <= 0 {
		return 0
	}
	return page * limit
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
