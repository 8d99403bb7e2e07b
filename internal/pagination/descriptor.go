package pagination

// Descriptor is the derived pagination state of one fetched listing. It is
// rebuilt from filter state and the latest response total on every render.
type Descriptor struct {
	Total    int
	PageSize int
	Page     int
}

// FromOffset builds a descriptor for an offset/limit listing.
func FromOffset(total, limit, offset int) Descriptor {
	return Descriptor{Total: total, PageSize: limit, Page: PageFromOffset(offset, limit)}
}

func (d Descriptor) TotalPages() int {
	return TotalPages(d.Total, d.PageSize)
}

func (d Descriptor) HasPrevious() bool {
	return d.Page > 0
}

func (d Descriptor) HasNext() bool {
	return d.Page+1 < d.TotalPages()
}

// Offset is the row offset of the current page.
func (d Descriptor) Offset() int {
	return OffsetFromPage(d.Page, d.PageSize)
}

// Range returns the one-based first and last item shown on the page.
// Both are zero for an empty listing.
func (d Descriptor) Range() (first, last int) {
	if d.Total <= 0 || d.PageSize <= 0 {
		return 0, 0
	}
	first = d.Offset() + 1
	if first > d.Total {
		return 0, 0
	}
	last = d.Offset() + d.PageSize
	if last > d.Total {
		last = d.Total
	}
	return first, last
}

// Tokens returns the page window for the descriptor.
func (d Descriptor) Tokens() []Token {
	return Pages(d.Total, d.PageSize, d.Page)
}
