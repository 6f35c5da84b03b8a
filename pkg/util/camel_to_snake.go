package util

import (
	"regexp"
	"strings"
)

var camelRegex = regexp.MustCompile("[A-Z]?[a-z0-9]+")

// CamelToSnakeCase maps struct field names to column names for sqlx,
// e.g. "IndexName" -> "index_name".
func CamelToSnakeCase(s string) string {
	parts := camelRegex.FindAllString(s, -1)

	for i := range parts {
		parts[i] = strings.ToLower(parts[i])
	}

	return strings.Join(parts, "_")
}
