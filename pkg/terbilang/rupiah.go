package terbilang

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormatRupiah renders amount as "Rp 1.500.000", appending ",50" style sen
// only when the amount is not whole.
func FormatRupiah(amount decimal.Decimal) string {
	sign := ""
	if amount.IsNegative() {
		sign = "-"
		amount = amount.Neg()
	}
	fixed := amount.StringFixed(2)
	intPart, sen, _ := strings.Cut(fixed, ".")
	out := "Rp " + sign + formatGrouping(intPart)
	if sen != "" && sen != "00" {
		out += "," + sen
	}
	return out
}

// formatGrouping adds dot separators every 3 digits.
func formatGrouping(ds string) string {
	n := len(ds)
	if n <= 3 {
		return ds
	}
	var parts []string
	for n > 3 {
		parts = append([]string{ds[n-3:]}, parts...)
		ds = ds[:n-3]
		n = len(ds)
	}
	parts = append([]string{ds}, parts...)
	return strings.Join(parts, ".")
}
