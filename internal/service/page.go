package service

// Pagination defaults. A request that does not specify a size gets
// DefaultPageSize; anything above MaxPageSize is clamped.
const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// PageRequest is a zero-based page selector.
type PageRequest struct {
	Page int
	Size int
}

func (p PageRequest) normalized() PageRequest {
	if p.Page < 0 {
		p.Page = 0
	}
	if p.Size <= 0 {
		p.Size = DefaultPageSize
	}
	if p.Size > MaxPageSize {
		p.Size = MaxPageSize
	}
	return p
}

func (p PageRequest) limit() int  { return p.Size }
func (p PageRequest) offset() int { return p.Page * p.Size }

// Page is one page of results plus totals.
type Page[T any] struct {
	Items      []T   `json:"items"`
	Page       int   `json:"page"`
	Size       int   `json:"size"`
	TotalItems int64 `json:"total_items"`
	TotalPages int   `json:"total_pages"`
}

func newPage[T any](items []T, req PageRequest, total int64) Page[T] {
	pages := int(total) / req.Size
	if int(total)%req.Size != 0 {
		pages++
	}
	return Page[T]{
		Items:      items,
		Page:       req.Page,
		Size:       req.Size,
		TotalItems: total,
		TotalPages: pages,
	}
}
