package util

import (
	"strconv"
	"strings"
)

// SafeAtoi parses s as an integer, returning 0 when it is not one.
func SafeAtoi(s string) int {
	i, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return i
}

// ParsePage reads a 1-indexed page number. ok is false for anything that is
// not a positive integer.
func ParsePage(s string) (page int, ok bool) {
	page = SafeAtoi(s)
	return page, page >= 1
}
