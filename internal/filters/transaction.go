package filters

import (
	"time"

	"merchdash/internal/models"
)

// DefaultPageSize is the transaction page size before the user picks one.
const DefaultPageSize = 20

// Transaction is the filter state of the transactions listing.
type Transaction struct {
	Page       int
	Size       int
	Range      models.DateRange
	Status     models.Status
	MerchantID string
	Search     string
}

// Update is a partial filter change. Nil fields are left untouched.
type Update struct {
	Page       *int
	Size       *int
	Range      *models.DateRange
	Status     *models.Status
	MerchantID *string
	Search     *string
}

// NewTransaction returns the default filter state for the given clock.
func NewTransaction(now time.Time) Transaction {
	return Transaction{
		Page:  0,
		Size:  DefaultPageSize,
		Range: models.LastDays(now, models.DefaultWindow),
	}
}

// Apply merges u into f. Whenever a field other than the page index actually
// changes the page index is forced back to 0, even if u also set a page.
func Apply(f Transaction, u Update) Transaction {
	next := f
	changed := false

	if u.Size != nil && *u.Size > 0 && *u.Size != f.Size {
		next.Size = *u.Size
		changed = true
	}
	if u.Range != nil && !u.Range.Equal(f.Range) {
		next.Range = *u.Range
		changed = true
	}
	if u.Status != nil && *u.Status != f.Status {
		next.Status = *u.Status
		changed = true
	}
	if u.MerchantID != nil && *u.MerchantID != f.MerchantID {
		next.MerchantID = *u.MerchantID
		changed = true
	}
	if u.Search != nil && *u.Search != f.Search {
		next.Search = *u.Search
		changed = true
	}

	switch {
	case changed:
		next.Page = 0
	case u.Page != nil && *u.Page >= 0:
		next.Page = *u.Page
	}
	return next
}

// Reset restores the default date range ending at now and clears status and
// search. The merchant id survives only when keepMerchant is set. The page
// size is a display preference and is kept.
func Reset(f Transaction, now time.Time, keepMerchant bool) Transaction {
	next := NewTransaction(now)
	if f.Size > 0 {
		next.Size = f.Size
	}
	if keepMerchant {
		next.MerchantID = f.MerchantID
	}
	return next
}

// GoToPage is shorthand for an Update that only moves the page.
func GoToPage(page int) Update {
	return Update{Page: &page}
}

// Describe summarises the active filters for a listing header.
func (f Transaction) Describe() string {
	out := "All merchants"
	if f.MerchantID != "" {
		out = "Merchant " + f.MerchantID
	}
	if f.Status != "" {
		out += " | Status: " + string(f.Status)
	}
	if f.Search != "" {
		out += " | Search: " + f.Search
	}
	return out + " | Date: " + f.Range.String()
}
