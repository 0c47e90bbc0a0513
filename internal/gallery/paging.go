package gallery

const PageSize = 52

// TotalPages is ceil(count / size). An empty listing has zero pages.
func TotalPages(count, size int) int {
	if count <= 0 || size <= 0 {
		return 0
	}
	return (count + size - 1) / size
}

// Clamp limits page to [0, totalPages-1], or 0 when there are no pages.
func Clamp(page, totalPages int) int {
	if page >= totalPages {
		page = totalPages - 1
	}
	if page < 0 {
		page = 0
	}
	return page
}

// Bounds returns the half open range [start, end) of items shown on page.
func Bounds(page, size, count int) (int, int) {
	start := page * size
	if start > count {
		start = count
	}
	end := start + size
	if end > count {
		end = count
	}
	return start, end
}
