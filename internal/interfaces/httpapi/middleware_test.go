package httpapi

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/riskibarqy/fantasy-livescore/internal/platform/logging"
)

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
})

func TestCORS(t *testing.T) {
	tests := []struct {
		name        string
		allowed     []string
		method      string
		origin      string
		wantStatus  int
		wantOrigin  string
		wantHeaders bool
	}{
		{"configured origin", []string{"https://livescore.example.com"}, http.MethodGet, "https://livescore.example.com", http.StatusOK, "https://livescore.example.com", true},
		{"wildcard preflight", []string{"*"}, http.MethodOptions, "https://livescore.example.com", http.StatusNoContent, "*", true},
		{"unconfigured origin", []string{"https://allowed.example.com"}, http.MethodGet, "https://elsewhere.example.com", http.StatusOK, "", false},
		{"no origin header", []string{"*"}, http.MethodGet, "", http.StatusOK, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, "/v1/rounds/7/live-table", nil)
			if tt.origin != "" {
				req.Header.Set("Origin", tt.origin)
			}
			rec := httptest.NewRecorder()
			CORS(tt.allowed, okHandler).ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Fatalf("expected status %d, got %d", tt.wantStatus, rec.Code)
			}
			if got := rec.Header().Get("Access-Control-Allow-Origin"); got != tt.wantOrigin {
				t.Fatalf("unexpected Access-Control-Allow-Origin: %q", got)
			}
			allowHeaders := rec.Header().Get("Access-Control-Allow-Headers")
			if tt.wantHeaders && allowHeaders != "Content-Type,Accept,X-Internal-Job-Token" {
				t.Fatalf("unexpected Access-Control-Allow-Headers: %q", allowHeaders)
			}
			if !tt.wantHeaders && allowHeaders != "" {
				t.Fatalf("did not expect CORS headers, got %q", allowHeaders)
			}
		})
	}
}

func TestShouldTraceRequest(t *testing.T) {
	skipped := []string{"/healthz", "/health", "/livez", "/readyz", "/metrics", " /HEALTHZ "}
	for _, path := range skipped {
		if shouldTraceRequest(path) {
			t.Fatalf("expected no tracing for path %q", path)
		}
	}
	traced := []string{"/v1/rounds/7/live-table", "/v1/internal/jobs/live-refresh", "/"}
	for _, path := range traced {
		if !shouldTraceRequest(path) {
			t.Fatalf("expected tracing for path %q", path)
		}
	}
}

func TestRequireInternalJobToken(t *testing.T) {
	tests := []struct {
		name       string
		configured string
		sent       string
		wantStatus int
	}{
		{"matching token", "secret", "secret", http.StatusOK},
		{"wrong token", "secret", "guess", http.StatusUnauthorized},
		{"missing header", "secret", "", http.StatusUnauthorized},
		{"token not configured", "", "anything", http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/v1/internal/jobs/live-refresh", nil)
			if tt.sent != "" {
				req.Header.Set(internalJobTokenHeader, tt.sent)
			}
			rec := httptest.NewRecorder()
			RequireInternalJobToken(tt.configured, okHandler).ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Fatalf("expected status %d, got %d", tt.wantStatus, rec.Code)
			}
		})
	}
}

func TestRecoverPanic(t *testing.T) {
	panicking := http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("nil squad")
	})
	rec := httptest.NewRecorder()
	recoverPanic(logging.NewNop(), panicking).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/rounds/7/live-table", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d", rec.Code)
	}
}
