package models

import (
	"encoding/json"
	"testing"
	"time"
)

func TestDateJSON(t *testing.T) {
	var d Date
	if err := json.Unmarshal([]byte(`"2025-12-01"`), &d); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	out, _ := json.Marshal(d)
	if string(out) != `"2025-12-01"` {
		t.Fatalf("got %s", out)
	}
	var zero Date
	out, _ = json.Marshal(zero)
	if string(out) != "null" {
		t.Fatalf("zero date should marshal as null, got %s", out)
	}
}

func TestParseDateKeepsWrittenDay(t *testing.T) {
	d, err := ParseDate("2025-03-31T23:30:00+07:00")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if d.String() != "2025-03-31" {
		t.Fatalf("expected 2025-03-31 got %s", d)
	}
	if _, err := ParseDate("31/03/2025"); err == nil {
		t.Fatalf("expected error for unsupported layout")
	}
}

func TestDateScan(t *testing.T) {
	var d Date
	if err := d.Scan(time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC)); err != nil || d.String() != "2024-02-29" {
		t.Fatalf("scan time: %v %s", err, d)
	}
	if err := d.Scan([]byte("2024-01-05")); err != nil || d.String() != "2024-01-05" {
		t.Fatalf("scan bytes: %v %s", err, d)
	}
	if err := d.Scan(42); err == nil {
		t.Fatalf("expected error scanning int")
	}
}
