package shared

// Filter carries the common list-query options. Domain-specific criteria
// travel in Filters keyed by column name and are interpreted by each
// repository implementation.
type Filter struct {
	Page     int
	PageSize int
	OrderBy  string
	OrderDir string
	Search   string
	Filters  map[string]interface{}
}

// DefaultFilter returns the pagination and ordering defaults used when a
// caller leaves them unset
func DefaultFilter() Filter {
	return Filter{
		Page:     1,
		PageSize: 20,
		OrderBy:  "created_at",
		OrderDir: "desc",
		Filters:  make(map[string]interface{}),
	}
}
