package terbilang

import (
	"math"
	"testing"

	"github.com/shopspring/decimal"
)

func TestWords(t *testing.T) {
	cases := []struct {
		n    int64
		want string
	}{
		{0, "nol"},
		{1, "satu"},
		{11, "sebelas"},
		{12, "dua belas"},
		{19, "sembilan belas"},
		{20, "dua puluh"},
		{45, "empat puluh lima"},
		{100, "seratus"},
		{115, "seratus lima belas"},
		{250, "dua ratus lima puluh"},
		{1000, "seribu"},
		{1001, "seribu satu"},
		{11000, "sebelas ribu"},
		{250000, "dua ratus lima puluh ribu"},
		{1500000, "satu juta lima ratus ribu"},
		{2000000000, "dua miliar"},
		{3000000000000, "tiga triliun"},
		{-5, "minus lima"},
		{999_999_999_999_999, "sembilan ratus sembilan puluh sembilan triliun sembilan ratus sembilan puluh sembilan miliar sembilan ratus sembilan puluh sembilan juta sembilan ratus sembilan puluh sembilan ribu sembilan ratus sembilan puluh sembilan"},
		{1_000_000_000_000_000, "1000000000000000"},
		{math.MaxInt64, "9223372036854775807"},
		{math.MinInt64, "minus 9223372036854775808"},
	}
	for _, tc := range cases {
		if got := Words(tc.n); got != tc.want {
			t.Errorf("Words(%d) = %q want %q", tc.n, got, tc.want)
		}
	}
}

func TestRupiahLargeAmounts(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"9999999999999.99", "sembilan triliun sembilan ratus sembilan puluh sembilan miliar sembilan ratus sembilan puluh sembilan juta sembilan ratus sembilan puluh sembilan ribu sembilan ratus sembilan puluh sembilan rupiah"},
		{"9223372036854775808", "9223372036854775808 rupiah"},
		{"18446744073709551615", "18446744073709551615 rupiah"},
		{"-9223372036854775809", "-9223372036854775809 rupiah"},
	}
	for _, tc := range cases {
		if got := Rupiah(decimal.RequireFromString(tc.in)); got != tc.want {
			t.Errorf("Rupiah(%s) = %q want %q", tc.in, got, tc.want)
		}
	}
}

func TestRupiahUsesWholePart(t *testing.T) {
	got := Rupiah(decimal.RequireFromString("1500000.75"))
	if got != "satu juta lima ratus ribu rupiah" {
		t.Fatalf("unexpected %q", got)
	}
}

func TestFormatRupiah(t *testing.T) {
	cases := map[string]string{
		"0":         "Rp 0",
		"950":       "Rp 950",
		"1500000":   "Rp 1.500.000",
		"1234567.5": "Rp 1.234.567,50",
		"-20000":    "Rp -20.000",
	}
	for in, want := range cases {
		if got := FormatRupiah(decimal.RequireFromString(in)); got != want {
			t.Errorf("FormatRupiah(%s) = %q want %q", in, got, want)
		}
	}
}
