package feed

// Pagination defaults applied when the caller omits or sends non-positive
// values.
const (
	DefaultPage  = 1
	DefaultLimit = 10
)

// PageRequest is a normalized page/limit pair.
type PageRequest struct {
	Page  int
	Limit int
}

// NormalizePage coerces page and limit to positive values, falling back to
// the defaults.
func NormalizePage(page, limit int) PageRequest {
	if page < 1 {
		page = DefaultPage
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	return PageRequest{Page: page, Limit: limit}
}

// Meta describes the full result set a page was cut from.
//
//nolint:govet // fieldalignment: Accept minor memory overhead for better readability
type Meta struct {
	TotalDocs   int  `json:"totalDocs"`
	TotalPages  int  `json:"totalPages"`
	Page        int  `json:"page"`
	Limit       int  `json:"limit"`
	HasNextPage bool `json:"hasNextPage"`
	HasPrevPage bool `json:"hasPrevPage"`
}

// Page is a window of documents plus its metadata.
type Page[T any] struct {
	Docs []T `json:"docs"`
	Meta
}

func pageMeta(total int, req PageRequest) Meta {
	totalPages := (total + req.Limit - 1) / req.Limit
	return Meta{
		TotalDocs:   total,
		TotalPages:  totalPages,
		Page:        req.Page,
		Limit:       req.Limit,
		HasNextPage: req.Page < totalPages,
		HasPrevPage: req.Page > 1 && total > 0,
	}
}

func window[T any](items []T, req PageRequest) []T {
	start := (req.Page - 1) * req.Limit
	if start >= len(items) {
		return []T{}
	}
	end := start + req.Limit
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}
