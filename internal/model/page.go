package model

// Page is one slice of a paginated listing
type Page[T any] struct {
	Items       []T  `json:"items"`
	Number      int  `json:"page"`
	PerPage     int  `json:"perPage"`
	Total       int  `json:"total"`
	TotalPages  int  `json:"totalPages"`
	HasNext     bool `json:"hasNext"`
	HasPrevious bool `json:"hasPrevious"`
}

// Paginate cuts items into pages of perPage. Page numbers below one
// resolve to the first page and numbers past the end to the last page;
// an empty listing still has one (empty) page.
func Paginate[T any](items []T, number, perPage int) Page[T] {
	if perPage < 1 {
		perPage = 1
	}
	total := len(items)
	totalPages := (total + perPage - 1) / perPage
	if totalPages == 0 {
		totalPages = 1
	}
	if number < 1 {
		number = 1
	}
	if number > totalPages {
		number = totalPages
	}

	start := (number - 1) * perPage
	end := start + perPage
	if end > total {
		end = total
	}

	return Page[T]{
		Items:       append([]T{}, items[start:end]...),
		Number:      number,
		PerPage:     perPage,
		Total:       total,
		TotalPages:  totalPages,
		HasNext:     number < totalPages,
		HasPrevious: number > 1,
	}
}
