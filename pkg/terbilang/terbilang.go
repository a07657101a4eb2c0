// Package terbilang spells amounts out in Indonesian, the way they are
// written on a kwitansi ("terbilang: satu juta lima ratus ribu rupiah").
package terbilang

import (
	"strconv"

	"github.com/shopspring/decimal"
)

var satuan = [...]string{"", "satu", "dua", "tiga", "empat", "lima", "enam", "tujuh", "delapan", "sembilan", "sepuluh", "sebelas"}

const (
	ribu    = 1_000
	juta    = 1_000_000
	miliar  = 1_000_000_000
	triliun = 1_000_000_000_000
	kuadril = 1_000_000_000_000_000
)

// Words returns the Indonesian words for n. Magnitudes of a kuadriliun and
// above are written as digits.
func Words(n int64) string {
	switch {
	case n == 0:
		return "nol"
	case n < 0:
		// -(n+1) cannot overflow, even for math.MinInt64
		return "minus " + words(uint64(-(n+1))+1)
	}
	return words(uint64(n))
}

var kuadrilDec = decimal.NewFromInt(kuadril)

// Rupiah spells the whole-rupiah part of amount followed by "rupiah".
// Sen (fractional) digits are not spelled.
func Rupiah(amount decimal.Decimal) string {
	whole := amount.Truncate(0)
	if whole.Abs().GreaterThanOrEqual(kuadrilDec) {
		return whole.String() + " rupiah"
	}
	return Words(whole.IntPart()) + " rupiah"
}

func words(n uint64) string {
	switch {
	case n < 12:
		return satuan[n]
	case n < 20:
		return words(n-10) + " belas"
	case n < 100:
		return words(n/10) + " puluh" + rest(n%10)
	case n < 200:
		return "seratus" + rest(n-100)
	case n < ribu:
		return words(n/100) + " ratus" + rest(n%100)
	case n < 2*ribu:
		return "seribu" + rest(n-ribu)
	case n < juta:
		return words(n/ribu) + " ribu" + rest(n%ribu)
	case n < miliar:
		return words(n/juta) + " juta" + rest(n%juta)
	case n < triliun:
		return words(n/miliar) + " miliar" + rest(n%miliar)
	case n < kuadril:
		return words(n/triliun) + " triliun" + rest(n%triliun)
	}
	return strconv.FormatUint(n, 10)
}

func rest(n uint64) string {
	if n == 0 {
		return ""
	}
	return " " + words(n)
}
