package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jmoiron/sqlx"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/crypto/bcrypt"

	"bookworm/internal/config"
	"bookworm/internal/http/handlers"
	"bookworm/internal/metrics"
	"bookworm/internal/repos"
)

const testSecret = "test-secret"

type testApp struct {
	*fiber.App
	db  *sqlx.DB
	reg *prometheus.Registry
}

// newTestApp wires the full app over an in-memory store seeded with the demo books.
// opts adjust the config before anything is built.
func newTestApp(t *testing.T, opts ...func(*config.Config)) *testApp {
	t.Helper()
	cfg := config.Config{
		Env:            "test",
		DBDriver:       "sqlite",
		DBDSN:          ":memory:",
		SecretKey:      testSecret,
		TokenTTL:       time.Hour,
		BcryptCost:     bcrypt.MinCost,
		RequestTimeout: 5 * time.Second,
		CORSOrigin:     "http://localhost:3000",
	}
	for _, o := range opts {
		o(&cfg)
	}
	db, err := repos.OpenDB(cfg.DBDriver, cfg.DBDSN)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	if err := repos.SeedBooks(t.Context(), db); err != nil {
		t.Fatalf("seed: %v", err)
	}
	reg := prometheus.NewRegistry()
	app := handlers.NewApp(cfg, handlers.NewDeps(db, cfg, metrics.New(reg)), reg)
	return &testApp{App: app, db: db, reg: reg}
}

// do sends body as JSON. token, when set, goes in a bearer header.
func (a *testApp) do(t *testing.T, method, path string, body any, token string) *http.Response {
	t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatal(err)
		}
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := a.Test(req, -1)
	if err != nil {
		t.Fatal(err)
	}
	return resp
}

// register creates a user and returns its token.
func (a *testApp) register(t *testing.T, email string) string {
	t.Helper()
	resp := a.do(t, "POST", "/register", map[string]any{
		"name": "Reader", "email": email, "password": "Passw0rd!",
	}, "")
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("register %s: status %d", email, resp.StatusCode)
	}
	var out struct {
		Token string `json:"token"`
	}
	decode(t, resp, &out)
	return out.Token
}

func decode(t *testing.T, resp *http.Response, v any) {
	t.Helper()
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		t.Fatalf("decode body: %v", err)
	}
}

func bodyString(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	return string(b)
}

func cookieValue(resp *http.Response, name string) (string, bool) {
	for _, c := range resp.Cookies() {
		if c.Name == name {
			return c.Value, true
		}
	}
	return "", false
}
