package service

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
)

// Monetary values are kept as exact decimal text end to end. Accepting only
// unsigned digits with an optional fraction rejects negatives, exponents, and
// anything a float detour could distort.
var amountPattern = regexp.MustCompile(`^[0-9]+(\.[0-9]+)?$`)

var errBadAmount = errors.New("not a non-negative decimal")

// normalizeAmount validates raw as a non-negative decimal and returns it with
// surrounding whitespace stripped. The digits themselves are preserved as sent.
func normalizeAmount(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if !amountPattern.MatchString(raw) {
		return "", errBadAmount
	}
	return raw, nil
}

// parseYears validates a non-negative integer field such as experienceYears.
func parseYears(raw string) (int, error) {
	years, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, err
	}
	if years < 0 {
		return 0, errBadAmount
	}
	return years, nil
}
