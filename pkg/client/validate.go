package client

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

const (
	MinCount = 1
	MaxCount = 5000
)

var (
	decimalCount  = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?$`)
	infinityCount = regexp.MustCompile(`^[+-]?Infinity$`)
	prefixedCount = regexp.MustCompile(`^0([xX][0-9a-fA-F]+|[oO][0-7]+|[bB][01]+)$`)
)

// ValidateCount parses raw the way a browser number input would: surrounding whitespace is
// ignored, empty input reads as zero, and any finite whole number (including "1e3", "10.0"
// or "0x10") is accepted within [MinCount, MaxCount]. Go-only literal forms such as "1_0"
// or "0x1p4" are not numbers here.
func ValidateCount(raw string) (int, error) {
	value, err := parseCount(strings.TrimSpace(raw))
	if err != nil {
		return 0, &ValidationError{Kind: NotAWholeNumber}
	}
	if math.IsNaN(value) || math.IsInf(value, 0) || value != math.Trunc(value) {
		return 0, &ValidationError{Kind: NotAWholeNumber}
	}
	if value < MinCount {
		return 0, &ValidationError{Kind: TooSmall}
	}
	if value > MaxCount {
		return 0, &ValidationError{Kind: TooLarge}
	}
	return int(value), nil
}

func parseCount(raw string) (float64, error) {
	switch {
	case raw == "":
		return 0, nil
	case infinityCount.MatchString(raw):
		return math.Inf(1), nil
	case prefixedCount.MatchString(raw):
		base := map[byte]int{'x': 16, 'o': 8, 'b': 2}[raw[1]|0x20]
		n, err := strconv.ParseUint(raw[2:], base, 64)
		if errors.Is(err, strconv.ErrRange) {
			return math.MaxFloat64, nil
		}
		return float64(n), err
	case decimalCount.MatchString(raw):
		value, err := strconv.ParseFloat(raw, 64)
		if errors.Is(err, strconv.ErrRange) {
			// ParseFloat already saturated value to ±Inf or rounded it to zero
			return value, nil
		}
		return value, err
	default:
		return 0, errors.Errorf("not a number: %q", raw)
	}
}
