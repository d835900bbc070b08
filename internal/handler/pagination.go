package handler

import "strconv"

const (
	defaultPageSize = 5
	maxPageSize     = 30
)

// pageParams turns ?page and ?page_size query values into a LIMIT/OFFSET
// pair. Missing or invalid values fall back to the first page of the default
// size; page_size is capped at the maximum.
func pageParams(pageStr, sizeStr string) (limit, offset int) {
	page, err := strconv.Atoi(pageStr)
	if err != nil || page < 1 {
		page = 1
	}

	size, err := strconv.Atoi(sizeStr)
	if err != nil || size < 1 {
		size = defaultPageSize
	}
	if size > maxPageSize {
		size = maxPageSize
	}

	return size, (page - 1) * size
}
