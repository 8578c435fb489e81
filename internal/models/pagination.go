package models

// Pagination contains pagination metadata returned in list responses.
type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalCount int `json:"total_count"`
}

// Bounds returns the slice bounds for a collection of
// total items. Pages past the end yield an empty range at TotalCount.
func (p Pagination) Bounds() (start, end int) {
	if p.Page < 1 || p.PageSize < 1 || p.TotalCount < 1 {
		return 0, 0
	}
	// compared before multiplying so huge page numbers cannot overflow
	if p.Page-1 > (p.TotalCount-1)/p.PageSize {
		return p.TotalCount, p.TotalCount
	}
	start = (p.Page - 1) * p.PageSize
	end = start + p.PageSize
	if end > p.TotalCount {
		end = p.TotalCount
	}
	return start, end
}

// NewPagination normalises page and size the same way the list endpoints do.
func NewPagination(page, size, total int) Pagination {
	if page < 1 {
		page = 1
	}
	if size <= 0 || size > 100 {
		size = 20
	}
	return Pagination{Page: page, PageSize: size, TotalCount: total}
}
