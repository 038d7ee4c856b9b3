package domain

import "strings"

var angleBrackets = strings.NewReplacer("<", "", ">", "")

// SanitizeText drops angle brackets, collapses whitespace runs to a single
// space and trims. Brackets go first so the result is a fixed point.
func SanitizeText(s string) string {
	return strings.Join(strings.Fields(angleBrackets.Replace(s)), " ")
}
