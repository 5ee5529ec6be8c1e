package adapters

import "testing"

func TestRedisOptions(t *testing.T) {
	cases := []struct {
		in   string
		addr string
		db   int
	}{
		{"localhost:6379", "localhost:6379", 0},
		{"redis://cache:6380/2", "cache:6380", 2},
	}
	for _, c := range cases {
		opts, err := redisOptions(c.in)
		if err != nil {
			t.Fatalf("redisOptions(%q): %v", c.in, err)
		}
		if opts.Addr != c.addr || opts.DB != c.db {
			t.Fatalf("redisOptions(%q) = %s db %d, want %s db %d", c.in, opts.Addr, opts.DB, c.addr, c.db)
		}
	}
	if _, err := redisOptions("redis://cache:6379/notadb"); err == nil {
		t.Fatalf("expected an error for a malformed database number")
	}
}
