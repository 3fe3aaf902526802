package scoring

import "strings"

// VerifyAnswer reports whether the supplied answer matches the stored one.
// Comparison is case-insensitive exact equality after trimming. Answers are
// stored in the clear and there is no attempt limit.
func VerifyAnswer(stored, supplied string) bool {
	stored = strings.TrimSpace(stored)
	supplied = strings.TrimSpace(supplied)
	if stored == "" {
		return false
	}
	return strings.EqualFold(stored, supplied)
}
