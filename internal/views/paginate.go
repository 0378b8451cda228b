package views

// Page is one 1-indexed slice of a larger result set.
type Page[T any] struct {
	Items      []T `json:"items"`
	Number     int `json:"number"`
	Size       int `json:"size"`
	TotalPages int `json:"total_pages"`
	Total      int `json:"total"`
}

// Paginate returns page number of items split into pages of size. Numbers
// below 1 are clamped to 1; numbers past the last page yield no items. A
// size below 1 puts everything on one page.
func Paginate[T any](items []T, number, size int) Page[T] {
	if number < 1 {
		number = 1
	}
	total := len(items)
	if size < 1 {
		size = max(total, 1)
	}
	page := Page[T]{
		Items:      []T{},
		Number:     number,
		Size:       size,
		TotalPages: (total + size - 1) / size,
		Total:      total,
	}
	start := (number - 1) * size
	if start >= total {
		return page
	}
	end := min(start+size, total)
	page.Items = append(page.Items, items[start:end]...)
	return page
}
