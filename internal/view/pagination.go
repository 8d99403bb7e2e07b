package view

import (
	"fmt"
	"strings"

	"merchdash/internal/pagination"
)

// PaginationBar renders the page strip, e.g. "« Prev 1 ... 4 [5] 6 ... 10 Next »".
// It is empty when there is a single page or none.
func PaginationBar(d pagination.Descriptor, ix pagination.Indexing) string {
	tokens := d.Tokens()
	if len(tokens) == 0 {
		return ""
	}
	parts := make([]string, 0, len(tokens)+2)
	if d.HasPrevious() {
		parts = append(parts, "« Prev")
	}
	for _, t := range tokens {
		label := t.Label(ix)
		if !t.Ellipsis && t.Page == d.Page {
			label = "[" + label + "]"
		}
		parts = append(parts, label)
	}
	if d.HasNext() {
		parts = append(parts, "Next »")
	}
	return strings.Join(parts, " ")
}

// ShowingLine renders "Showing 41-60 of 95".
func ShowingLine(d pagination.Descriptor, noun string) string {
	first, last := d.Range()
	if d.Total == 0 {
		return fmt.Sprintf("No %s", noun)
	}
	return fmt.Sprintf("Showing %d-%d of %s %s", first, last, count(int64(d.Total)), noun)
}

func (r *Renderer) Pagination(d pagination.Descriptor, ix pagination.Indexing, noun string) {
	r.printf("%s\n", ShowingLine(d, noun))
	if bar := PaginationBar(d, ix); bar != "" {
		r.printf("%s\n", bar)
	}
}
