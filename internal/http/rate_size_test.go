package handlers_test

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"bookworm/internal/http/handlers"
)

func TestOversizedBodyRejected(t *testing.T) {
	app := newTestApp(t)
	big := bytes.Repeat([]byte("a"), handlers.MaxBodyBytes+1)
	req := httptest.NewRequest("POST", "/register", bytes.NewReader(big))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusRequestEntityTooLarge {
		t.Fatalf("want 413, got %d", resp.StatusCode)
	}
}

func TestSearchThrottled(t *testing.T) {
	app := newTestApp(t)
	var last int
	for i := 0; i < 21; i++ {
		last = app.do(t, "GET", "/search?query=gatsby", nil, "").StatusCode
		if i < 20 && last != http.StatusOK {
			t.Fatalf("request %d: want 200, got %d", i, last)
		}
	}
	if last != http.StatusTooManyRequests {
		t.Fatalf("want 429 after burst, got %d", last)
	}
}
