package utils

// Page/limit bounds applied to every list endpoint.
const (
	DefaultPage  = 1
	DefaultLimit = 20
	MaxLimit     = 50
)

// Params is the clamped offset/limit pair for a page request.
type Params struct {
	Page  int
	Limit int
	Skip  int64
}

// ParseParams clamps page to >=1 and limit to [1, MaxLimit], substituting
// defaults for zero or negative input.
func ParseParams(page, limit int) Params {
	if page < 1 {
		page = DefaultPage
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return Params{
		Page:  page,
		Limit: limit,
		Skip:  int64(page-1) * int64(limit),
	}
}

// Pagination is the metadata envelope returned with every list response.
type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	HasMore    bool  `json:"hasMore"`
	TotalPages int   `json:"totalPages"`
}

// NewPagination shapes the envelope for a page of a result set of the given
// total size.
func NewPagination(page, limit int, total int64) Pagination {
	totalPages := 0
	if limit > 0 {
		totalPages = int((total + int64(limit) - 1) / int64(limit))
	}
	return Pagination{
		Page:       page,
		Limit:      limit,
		Total:      total,
		HasMore:    int64(page)*int64(limit) < total,
		TotalPages: totalPages,
	}
}
