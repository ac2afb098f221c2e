//nolint:revive // types is a standard Go package name pattern
package types

// Page identifies one page of a server-paginated collection. Number is 1-based.
type Page struct {
	Number int
	Limit  int
}

// Normalize returns a copy with out-of-range values replaced:
// a page below 1 becomes 1 and a non-positive limit becomes defaultLimit.
func (p Page) Normalize(defaultLimit int) Page {
	if p.Number < 1 {
		p.Number = 1
	}
	if p.Limit < 1 {
		p.Limit = defaultLimit
	}
	return p
}

// TotalPages returns how many pages of size limit are needed to hold total items.
func TotalPages(total, limit int) int {
	if total <= 0 || limit <= 0 {
		return 0
	}
	return (total + limit - 1) / limit
}

// HasMore reports whether pages exist after the given page.
func HasMore(total, page, limit int) bool {
	return page < TotalPages(total, limit)
}
