package db

import "testing"

func TestNormalizeDSN(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"postgres://user:pw@host:5432/db", "postgres://user:pw@host:5432/db"},
		{`  "postgres://user:pw@host/db"  `, "postgres://user:pw@host/db"},
		{"host=localhost user=pos dbname=store", "host=localhost user=pos dbname=store sslmode=disable"},
		{"host=localhost  user=pos   sslmode=require", "host=localhost user=pos sslmode=require"},
		{"store.db", "store.db"},
		{"file:test?mode=memory&cache=shared", "file:test?mode=memory&cache=shared"},
		{"", ""},
	}
	for _, c := range cases {
		if got := NormalizeDSN(c.in); got != c.want {
			t.Fatalf("NormalizeDSN(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestIsPostgres(t *testing.T) {
	cases := []struct {
		in   string
		want bool
	}{
		{"postgres://u@h/db", true},
		{"postgresql://u@h/db", true},
		{"host=localhost dbname=store", true},
		{"store.db", false},
		{"file:test?mode=memory&cache=shared", false},
		{"", false},
	}
	for _, c := range cases {
		if got := IsPostgres(c.in); got != c.want {
			t.Fatalf("IsPostgres(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}
