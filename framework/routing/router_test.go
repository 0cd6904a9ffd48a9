package routing_test

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/km-arc/go-depmanager/framework/routing"
)

// ── helpers ──────────────────────────────────────────────────────────────────

func okHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func do(t *testing.T, router *routing.Router, method, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

// ── HTTP verbs ────────────────────────────────────────────────────────────────

func TestRouter_Verbs(t *testing.T) {
	r := routing.New(nil)
	r.Get("/files", okHandler)
	r.Post("/files/{name}/load", okHandler)

	tests := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/files"},
		{http.MethodPost, "/files/jquery/load"},
	}
	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			if rr := do(t, r, tt.method, tt.path); rr.Code != http.StatusOK {
				t.Errorf("got %d want 200", rr.Code)
			}
		})
	}
}

// ── 404 / 405 ────────────────────────────────────────────────────────────────

func TestRouter_NotFound(t *testing.T) {
	r := routing.New(nil)
	rr := do(t, r, http.MethodGet, "/not-registered")
	if rr.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rr.Code)
	}
}

func TestRouter_MethodNotAllowed(t *testing.T) {
	r := routing.New(nil)
	r.Get("/files", okHandler)
	rr := do(t, r, http.MethodPost, "/files")
	if rr.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected 405, got %d", rr.Code)
	}
}

// ── Route params ─────────────────────────────────────────────────────────────

func TestRouter_Param(t *testing.T) {
	r := routing.New(nil)
	r.Get("/files/{name}", func(w http.ResponseWriter, req *http.Request) {
		name := routing.Param(req, "name")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(name))
	})

	rr := do(t, r, http.MethodGet, "/files/jquery")
	if rr.Code != http.StatusOK {
		t.Fatalf("got %d want 200", rr.Code)
	}
	if rr.Body.String() != "jquery" {
		t.Errorf("got body %q want %q", rr.Body.String(), "jquery")
	}
}

// ── Prefix ───────────────────────────────────────────────────────────────────

func TestRouter_Prefix(t *testing.T) {
	r := routing.New(nil)
	r.Prefix("/dependencies", func(deps *routing.Router) {
		deps.Get("/files", okHandler)
	})

	rr := do(t, r, http.MethodGet, "/dependencies/files")
	if rr.Code != http.StatusOK {
		t.Errorf("GET /dependencies/files: got %d want 200", rr.Code)
	}

	// Root must 404
	rr2 := do(t, r, http.MethodGet, "/files")
	if rr2.Code != http.StatusNotFound {
		t.Errorf("GET /files: expected 404, got %d", rr2.Code)
	}
}

// ── Default middleware ───────────────────────────────────────────────────────

func TestRouter_RequestLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	r := routing.New(logger)
	r.Get("/ping", okHandler)
	do(t, r, http.MethodGet, "/ping")

	line := buf.String()
	for _, want := range []string{"method=GET", "path=/ping", "status=200"} {
		if !strings.Contains(line, want) {
			t.Errorf("log line %q missing %q", line, want)
		}
	}
}

func TestRouter_RecoversPanics(t *testing.T) {
	r := routing.New(nil)
	r.Get("/boom", func(http.ResponseWriter, *http.Request) { panic("boom") })

	rr := do(t, r, http.MethodGet, "/boom")
	if rr.Code != http.StatusInternalServerError {
		t.Errorf("expected 500, got %d", rr.Code)
	}
}

// ── Router is an http.Handler ────────────────────────────────────────────────

func TestRouter_HandlerInterface(t *testing.T) {
	r := routing.New(nil)
	r.Get("/ping", okHandler)
	var _ http.Handler = r
}
