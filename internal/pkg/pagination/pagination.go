// Package pagination pages acquisition listings for both repository drivers.
package pagination

const (
	DefaultPage    = 1
	DefaultPerPage = 20
	MaxPerPage     = 100
)

// Params is a normalized page request. Build it with NewParams.
type Params struct {
	Page    int
	PerPage int
}

func NewParams(page, perPage int) Params {
	p := Params{Page: page, PerPage: perPage}
	if p.Page < 1 {
		p.Page = DefaultPage
	}
	switch {
	case p.PerPage < 1:
		p.PerPage = DefaultPerPage
	case p.PerPage > MaxPerPage:
		p.PerPage = MaxPerPage
	}
	return p
}

func (p Params) Offset() int { return (p.Page - 1) * p.PerPage }

func (p Params) Limit() int { return p.PerPage }

type Info struct {
	Page       int  `json:"page"`
	PerPage    int  `json:"per_page"`
	TotalItems int  `json:"total_items"`
	TotalPages int  `json:"total_pages"`
	HasNext    bool `json:"has_next"`
	HasPrev    bool `json:"has_prev"`
}

// NewInfo describes page within totalItems. An empty listing still has one page.
func NewInfo(page, perPage, totalItems int) *Info {
	pages := 1
	if perPage > 0 && totalItems > 0 {
		pages = (totalItems + perPage - 1) / perPage
	}
	return &Info{
		Page:       page,
		PerPage:    perPage,
		TotalItems: totalItems,
		TotalPages: pages,
		HasNext:    page < pages,
		HasPrev:    page > 1,
	}
}

// Page returns the slice of items selected by p. Out of range pages are empty.
func Page[T any](items []T, p Params) []T {
	start := p.Offset()
	if start >= len(items) {
		return nil
	}
	end := min(start+p.Limit(), len(items))
	return items[start:end]
}
