package kwitansi

import "testing"

func TestNextAfterGaps(t *testing.T) {
	got := Next([]string{"001", "002", "005"})
	if got != "006" {
		t.Fatalf("expected 006 got %s", got)
	}
}

func TestNextEmpty(t *testing.T) {
	if got := Next(nil); got != "001" {
		t.Fatalf("expected 001 got %s", got)
	}
}

func TestNextStripsPrefixes(t *testing.T) {
	got := Next([]string{"KW-009", "abc", "", "INV/2/0"})
	// "INV/2/0" -> 20
	if got != "021" {
		t.Fatalf("expected 021 got %s", got)
	}
}

func TestFormatDoesNotTruncate(t *testing.T) {
	cases := map[int64]string{4: "004", 42: "042", 999: "999", 1000: "1000", 123456: "123456"}
	for n, want := range cases {
		if got := Format(n); got != want {
			t.Errorf("Format(%d) = %s want %s", n, got, want)
		}
	}
}

func TestValueOverflowCountsAsZero(t *testing.T) {
	if v := Value("99999999999999999999999"); v != 0 {
		t.Fatalf("expected 0 got %d", v)
	}
	if got := Next([]string{"99999999999999999999999", "007"}); got != "008" {
		t.Fatalf("expected 008 got %s", got)
	}
}

func TestDigits(t *testing.T) {
	for in, want := range map[string]string{"Rp 1.500.000": "1500000", "KW-007": "007", "٣٤": "", "": ""} {
		if got := Digits(in); got != want {
			t.Errorf("Digits(%q) = %q want %q", in, got, want)
		}
	}
}
