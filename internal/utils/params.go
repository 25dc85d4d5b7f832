// Package utils provides small, generic helper functions used across
// different layers of the application. These utilities are independent
// of domain or business logic.
package utils

import "strconv"

// ParseIntDefault converts a query-string value to an int. An empty string
// yields the provided default; anything else must parse as a base-10
// integer or an error is returned. Malformed values are reported rather
// than clamped so the API can reject them.
//
// Example:
//
//	n, err := utils.ParseIntDefault("42", 0) // 42, nil
//	n, err = utils.ParseIntDefault("", 10)   // 10, nil
//	n, err = utils.ParseIntDefault("x", 5)   // 0, error
func ParseIntDefault(s string, def int) (int, error) {
	if s == "" {
		return def, nil
	}
	return strconv.Atoi(s)
}

// ParseID converts a path parameter to an int64 identifier. Any base-10
// integer parses, including zero and negatives; those simply match no
// record and surface as a lookup miss.
func ParseID(s string) (int64, error) {
	return strconv.ParseInt(s, 10, 64)
}
