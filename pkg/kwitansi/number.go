// Package kwitansi assigns the human-facing sequential receipt numbers
// (no_kwitansi) printed on transaction receipts.
package kwitansi

import (
	"fmt"
	"strconv"
	"strings"
)

// MinWidth is the zero-padding width of generated receipt numbers. Larger
// values are never truncated.
const MinWidth = 3

// Value returns the numeric value of a receipt number after stripping every
// non-digit character. Empty, unparsable or out-of-range inputs count as 0.
func Value(s string) int64 {
	d := Digits(s)
	if d == "" {
		return 0
	}
	n, err := strconv.ParseInt(d, 10, 64)
	if err != nil {
		return 0
	}
	return n
}

// Format renders n zero-padded to MinWidth digits.
func Format(n int64) string {
	return fmt.Sprintf("%0*d", MinWidth, n)
}

// Next returns the receipt number following the highest one in existing.
func Next(existing []string) string {
	var max int64
	for _, s := range existing {
		if v := Value(s); v > max {
			max = v
		}
	}
	return Format(max + 1)
}

// Digits keeps only the ASCII digits of s.
func Digits(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, s)
}
