package filters

// DefaultMerchantLimit is the merchant page size used by the listing.
const DefaultMerchantLimit = 10

// Merchant is the offset/limit filter state of the merchants listing.
type Merchant struct {
	Search string
	Limit  int
	Offset int
}

func NewMerchant() Merchant {
	return Merchant{Limit: DefaultMerchantLimit}
}

// WithSearch changes the search term and rewinds to the first page.
func (m Merchant) WithSearch(search string) Merchant {
	if search == m.Search {
		return m
	}
	m.Search = search
	m.Offset = 0
	return m
}

// WithLimit changes the page size and rewinds to the first page.
func (m Merchant) WithLimit(limit int) Merchant {
	if limit <= 0 || limit == m.Limit {
		return m
	}
	m.Limit = limit
	m.Offset = 0
	return m
}

// WithOffset moves to another page without touching the other fields.
func (m Merchant) WithOffset(offset int) Merchant {
	if offset < 0 {
		offset = 0
	}
	m.Offset = offset
	return m
}
