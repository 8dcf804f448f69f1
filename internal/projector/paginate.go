package projector

// Paginate returns the 1-indexed page of items for the given page size.
// Out-of-range pages yield an empty slice rather than an error.
func Paginate[T any](items []T, page, size int) []T {
	if page < 1 || size < 1 || len(items) == 0 {
		return []T{}
	}
	// Compare page numbers before multiplying so huge pages cannot wrap.
	if page-1 >= PageCount(len(items), size) {
		return []T{}
	}
	start := (page - 1) * size
	end := min(start+size, len(items))
	return items[start:end:end]
}

// PageCount is the number of pages needed to show n items.
func PageCount(n, size int) int {
	if n <= 0 || size < 1 {
		return 0
	}
	return (n-1)/size + 1
}
