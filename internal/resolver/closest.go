package resolver

import (
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
)

// noDistance is the running-minimum sentinel, larger than any real distance.
const noDistance = 1 << 30

// Option pairs a candidate string with the payload to return when it wins.
type Option[T comparable] struct {
	Candidate string
	Payload   T
}

// Match is the result of a closest-match scan: every payload tied at the
// minimum edit distance, the distance itself, and a normalized error ratio.
type Match[T comparable] struct {
	Payloads []T
	Distance int
	Error    float64
}

// FindClosest scans the options for the candidates nearest the search value
// under Levenshtein distance. Ties are kept, not broken: street names can stay
// ambiguous even on an imperfect match (north vs south of the same street),
// and the caller decides what ambiguity means at its stage.
func FindClosest[T comparable](searchValue string, options []Option[T]) Match[T] {
	var best []T
	bestDistance := noDistance

	searchLen := utf8.RuneCountInString(searchValue)

	for _, option := range options {
		if containsPayload(best, option.Candidate) {
			continue
		}

		// A candidate whose length differs from the search value by more
		// than the current best distance cannot beat or tie it; skip the
		// distance computation entirely.
		if diff := utf8.RuneCountInString(option.Candidate) - searchLen; diff > bestDistance || -diff > bestDistance {
			continue
		}

		distance := levenshtein.ComputeDistance(searchValue, option.Candidate)
		if distance < bestDistance {
			best = []T{option.Payload}
			bestDistance = distance
		} else if distance == bestDistance {
			best = append(best, option.Payload)
		}
	}

	errorRatio := 1.0
	if len(best) > 0 {
		errorRatio = float64(bestDistance) / float64(maxInt(searchLen, 1))
	}

	return Match[T]{
		Payloads: dedupe(best),
		Distance: bestDistance,
		Error:    errorRatio,
	}
}

// containsPayload reports whether a candidate string is already present in the
// best set. Only meaningful when payloads are the candidate strings
// themselves, as in place matching; otherwise it never fires.
func containsPayload[T comparable](best []T, candidate string) bool {
	for _, payload := range best {
		if interface{}(payload) == interface{}(candidate) {
			return true
		}
	}
	return false
}

// dedupe removes duplicate payloads preserving first-seen order.
func dedupe[T comparable](payloads []T) []T {
	if len(payloads) < 2 {
		return payloads
	}
	seen := make(map[T]bool, len(payloads))
	unique := payloads[:0]
	for _, payload := range payloads {
		if !seen[payload] {
			seen[payload] = true
			unique = append(unique, payload)
		}
	}
	return unique
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
