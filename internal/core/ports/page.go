package ports

// ListInput carries the common query parameters for paged listings.
// Page is 0-based. Size is the maximum number of items per page; the service
// layer applies defaults and caps. Search is a literal, case-sensitive
// substring filter; empty means no filtering.
type ListInput struct {
	Page   int
	Size   int
	Search string
}

// Page is one slice of a filtered result set plus the metadata describing its
// position within the whole set.
type Page[T any] struct {
	Items         []T   `json:"items"`
	Page          int   `json:"page"`
	Size          int   `json:"size"`
	TotalElements int64 `json:"totalElements"`
	TotalPages    int   `json:"totalPages"`
	Last          bool  `json:"last"`
}

// NewPage assembles a Page from a result slice and the total matching count.
func NewPage[T any](items []T, page, size int, total int64) *Page[T] {
	if items == nil {
		items = []T{}
	}
	totalPages := 0
	if size > 0 {
		totalPages = int((total + int64(size) - 1) / int64(size))
	}
	return &Page[T]{
		Items:         items,
		Page:          page,
		Size:          size,
		TotalElements: total,
		TotalPages:    totalPages,
		Last:          page >= totalPages-1,
	}
}
