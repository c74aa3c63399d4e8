// Package pagination implements the page windowing used by every listing
// surface (users index, posts, feed, following/followers).
package pagination

// PerPage is the page size shared by all listings so UI-level expectations
// stay uniform across surfaces.
const PerPage = 30

// Page is one window of a listing, with enough totals for the caller to
// render pagination controls.
type Page[T any] struct {
	Items      []T   `json:"items"`
	TotalCount int64 `json:"total_count"`
	PageCount  int   `json:"page_count"`
	Page       int   `json:"page"`
	PerPage    int   `json:"per_page"`
}

// Paginate windows a sequence source into 1-indexed pages. count reports the
// total number of items; window fetches a single limit/offset slice. A page
// beyond the last yields an empty item list with valid totals, never an
// error. A page below 1 is clamped to 1.
func Paginate[T any](page, perPage int, count func() (int64, error), window func(limit, offset int) ([]T, error)) (*Page[T], error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = PerPage
	}

	total, err := count()
	if err != nil {
		return nil, err
	}

	pageCount := int((total + int64(perPage) - 1) / int64(perPage))

	var items []T
	offset := (page - 1) * perPage
	if int64(offset) < total {
		items, err = window(perPage, offset)
		if err != nil {
			return nil, err
		}
	}
	if items == nil {
		items = []T{}
	}

	return &Page[T]{
		Items:      items,
		TotalCount: total,
		PageCount:  pageCount,
		Page:       page,
		PerPage:    perPage,
	}, nil
}
