package sanitize

import (
	"reflect"
	"testing"
)

func TestParseTables(t *testing.T) {
	valid, skipped := ParseTables(" users, transactions ,,drop table;x,_tmp1")
	if !reflect.DeepEqual(valid, []string{"users", "transactions", "_tmp1"}) {
		t.Fatalf("unexpected valid %v", valid)
	}
	if !reflect.DeepEqual(skipped, []string{"drop table;x"}) {
		t.Fatalf("unexpected skipped %v", skipped)
	}
}

func TestTruncateStatement(t *testing.T) {
	got := TruncateStatement([]string{"users", "transactions"})
	want := `TRUNCATE TABLE "users", "transactions" RESTART IDENTITY CASCADE`
	if got != want {
		t.Fatalf("got %s", got)
	}
}

func TestDefaultTablesAreValid(t *testing.T) {
	_, skipped := ParseTables(DefaultTables)
	if len(skipped) != 0 {
		t.Fatalf("default tables rejected: %v", skipped)
	}
}
