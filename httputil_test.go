package coinfolio

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestDailyCache(t *testing.T) {
	var hits int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		fmt.Fprintf(w, `{"n": %d}`, hits)
	}))
	defer server.Close()

	client := daily()

	var first, second struct{ N int }
	if err := jwget(client, server.URL+"/quote", &first); err != nil {
		t.Fatalf("jwget() error = %v", err)
	}
	if err := jwget(client, server.URL+"/quote", &second); err != nil {
		t.Fatalf("jwget() error = %v", err)
	}

	if hits != 1 {
		t.Errorf("server hits = %d, want 1: the second read must come from the cache", hits)
	}
	if first.N != second.N {
		t.Errorf("cached body = %d, want %d", second.N, first.N)
	}
}

func TestDailyCacheSkipsFailures(t *testing.T) {
	var hits int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		http.Error(w, "down", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := daily()
	var data any
	for i := 0; i < 2; i++ {
		if err := jwget(client, server.URL+"/quote", &data); err == nil {
			t.Fatal("jwget() swallowed the server error")
		}
	}
	if hits != 2 {
		t.Errorf("server hits = %d, want 2: error responses must not be cached", hits)
	}
}
