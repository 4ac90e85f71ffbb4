package repository

// Page represents a simple limit/offset window for listing operations.
// Kept intentionally small; filtering belongs to higher layers.
type Page struct {
	Limit  int
	Offset int
}

// PageResult carries a slice of items plus the total count matching the
// query, so clients can render pagination without a second round trip.
type PageResult[T any] struct {
	Items []T
	Total int
}
