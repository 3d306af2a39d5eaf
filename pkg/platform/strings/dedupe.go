// Package strings provides string manipulation utilities.
package strings

import (
	"strings"
	"unicode"
)

// DedupeAndTrim removes duplicates and blank entries, trimming whitespace
// from each element. Order is preserved. Works for named string types.
//
// Example:
//
//	DedupeAndTrim([]TenderStatus{" new ", "won", "new", ""})
//	// Returns: []TenderStatus{"new", "won"}
func DedupeAndTrim[S ~string](values []S) []S {
	if len(values) == 0 {
		return values
	}

	seen := make(map[S]struct{}, len(values))
	result := make([]S, 0, len(values))

	for _, v := range values {
		trimmed := S(strings.TrimSpace(string(v)))
		if trimmed == "" {
			continue
		}
		if _, ok := seen[trimmed]; !ok {
			seen[trimmed] = struct{}{}
			result = append(result, trimmed)
		}
	}

	return result
}

// SplitList splits a comma-separated flag value and applies DedupeAndTrim.
// An empty input yields nil.
func SplitList[S ~string](s string) []S {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	values := make([]S, len(parts))
	for i, p := range parts {
		values[i] = S(p)
	}
	return DedupeAndTrim(values)
}

// ToSnakeCase converts Go identifiers such as "CompletionRate" to "completion_rate".
func ToSnakeCase(s string) string {
	var b strings.Builder
	runes := []rune(s)
	for i, r := range runes {
		if unicode.IsUpper(r) && i > 0 &&
			(unicode.IsLower(runes[i-1]) || (i+1 < len(runes) && unicode.IsLower(runes[i+1]))) {
			b.WriteByte('_')
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}
