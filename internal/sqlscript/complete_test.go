package sqlscript

import (
	"testing"
)

func TestComplete(t *testing.T) {
	tests := []struct {
		name string
		sql  string
		want bool
	}{
		{"empty", "", false},
		{"whitespace only", "  \n\t", false},
		{"simple statement", "SELECT 1;", true},
		{"no terminator", "SELECT 1", false},
		{"trailing whitespace", "SELECT 1;\n  ", true},
		{"multiple statements", "SELECT 1;\nSELECT 2;", true},
		{"second statement open", "SELECT 1;\nSELECT 2", false},
		{"multi-line statement", "INSERT INTO t\nVALUES (1,\n2)", false},
		{"multi-line complete", "INSERT INTO t\nVALUES (1,\n2);", true},
		{"semicolon in string", "INSERT INTO t VALUES ('a;b')", false},
		{"string closed then terminated", "INSERT INTO t VALUES ('a;b');", true},
		{"escaped quote in string", "INSERT INTO t VALUES ('it''s;');", true},
		{"unterminated string", "INSERT INTO t VALUES ('abc;", false},
		{"semicolon in identifier", `SELECT ";" FROM t`, false},
		{"double-quoted identifier", `INSERT INTO "my;table" VALUES (1);`, true},
		{"line comment after terminator", "SELECT 1; -- trailing note", true},
		{"line comment hides terminator", "SELECT 1 -- ;", false},
		{"block comment after terminator", "SELECT 1; /* done */", true},
		{"unterminated block comment", "SELECT 1; /* open", false},
		{"block comment inside statement", "SELECT /* c */ 1;", true},
		{"comment only", "-- just a comment\n", false},
		{"dollar quoted semicolon", "SELECT $$a;b$$", false},
		{"dollar quoted closed", "SELECT $$a;b$$;", true},
		{"tagged dollar quote", "SELECT $fn$body;$fn$;", true},
		{"unterminated dollar quote", "SELECT $fn$body;", false},
		{"commit", "COMMIT;", true},
		{"create table multi-line", "CREATE TABLE epsg_datum (\n  datum_code INTEGER,\n  datum_name TEXT\n);", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Complete(tt.sql); got != tt.want {
				t.Errorf("Complete(%q) = %v, want %v", tt.sql, got, tt.want)
			}
		})
	}
}
