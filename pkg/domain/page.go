package domain

// Page is the combined result of a paged listing: the items of the current
// page joined with the total count. It is the terminal tuple of the
// two-source combination helper.
type Page[T any] struct {
	Items []T   `json:"items"`
	Count int64 `json:"count"`
}
