package pagination

const (
	// DefaultLimit is used when the caller does not ask for a page size.
	DefaultLimit = 50
	// MaxLimit caps the page size of every listing.
	MaxLimit = 200
)

// Normalize clamps limit into [1, MaxLimit] (0 means DefaultLimit) and offset to >= 0.
func Normalize(limit, offset int) (int, int) {
	switch {
	case limit <= 0:
		limit = DefaultLimit
	case limit > MaxLimit:
		limit = MaxLimit
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

// Window returns the [start, end) slice bounds of a page over total items.
func Window(total, limit, offset int) (int, int) {
	limit, offset = Normalize(limit, offset)
	if offset >= total {
		return total, total
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return offset, end
}
