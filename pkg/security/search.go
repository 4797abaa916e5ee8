package security

import (
	"errors"
	"strings"
	"unicode"
)

// MaxSearchQueryLength caps search input before it reaches the store.
const MaxSearchQueryLength = 100

// ValidateSearchQuery screens a raw search query before it is bound into a
// LIKE expression. Returns the trimmed query, or an error for input that is
// too long or carries characters outside the allow-list.
func ValidateSearchQuery(query string) (string, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return "", nil
	}

	if len(query) > MaxSearchQueryLength {
		return "", errors.New("search query too long")
	}

	for _, char := range query {
		if !isValidSearchChar(char) {
			return "", errors.New("search query contains invalid characters")
		}
	}

	return query, nil
}

func isValidSearchChar(char rune) bool {
	// Letters, numbers, spaces and the punctuation that appears in names
	// and email addresses.
	return unicode.IsLetter(char) || unicode.IsNumber(char) ||
		char == ' ' || char == '-' || char == '_' || char == '.' ||
		char == '@' || char == '+' || char == '\''
}

// EscapeLike escapes LIKE wildcards so a literal % or _ in the query
// matches itself instead of acting as a pattern.
func EscapeLike(query string) string {
	query = strings.ReplaceAll(query, `\`, `\\`)
	query = strings.ReplaceAll(query, "%", `\%`)
	query = strings.ReplaceAll(query, "_", `\_`)
	return query
}
