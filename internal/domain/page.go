package domain

// PageParams carries limit/offset values from the HTTP layer to the repo layer.
// The zero value is not usable; build instances with NewPageParams.
type PageParams struct {
	// Limit is the maximum number of items to return.
	Limit int
	// Offset is the number of items to skip before the first returned row.
	Offset int
}

// NewPageParams builds a PageParams from optional HTTP query params.
// Nil pointers fall back to the defaults (limit=10, offset=0).
// The limit is capped at 100 to prevent runaway queries.
func NewPageParams(limit, offset *int) PageParams {
	p := PageParams{Limit: 10, Offset: 0}
	if limit != nil && *limit >= 1 {
		p.Limit = *limit
		if p.Limit > 100 {
			p.Limit = 100
		}
	}
	if offset != nil && *offset >= 0 {
		p.Offset = *offset
	}
	return p
}

// Page returns the 1-indexed page number implied by the offset.
func (p PageParams) Page() int {
	return p.Offset/p.Limit + 1
}

// Pages returns the total number of pages for total rows at the given limit.
func (p PageParams) Pages(total int64) int {
	return int((total + int64(p.Limit) - 1) / int64(p.Limit))
}
