package domain

// Page is the list envelope returned by paginated endpoints. Total is the
// server's count of all matching records, not the length of Data.
type Page[T any] struct {
	Data  []T `json:"data"`
	Total int `json:"total"`
}
