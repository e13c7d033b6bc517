package middleware

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/mmynk/housemate/internal/api"
	"github.com/mmynk/housemate/internal/auth"
	"github.com/mmynk/housemate/internal/models"
)

func whoami(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, map[string]any{
		"memberId": GetMemberID(r.Context()),
		"loginId":  GetLoginID(r.Context()),
	})
}

func TestBearerAuth(t *testing.T) {
	jwtManager := auth.NewJWTManager("test-secret-key-0123456789", time.Hour)
	token, err := jwtManager.Generate(&models.Member{ID: 7, LoginID: "alice"})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	handler := BearerAuth(jwtManager)(http.HandlerFunc(whoami))

	tests := []struct {
		name       string
		header     string
		wantStatus int
	}{
		{"valid token", "Bearer " + token, http.StatusOK},
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic " + token, http.StatusUnauthorized},
		{"garbage token", "Bearer not-a-jwt", http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if tt.wantStatus == http.StatusOK {
				var got struct {
					MemberID int64  `json:"memberId"`
					LoginID  string `json:"loginId"`
				}
				if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
					t.Fatalf("decode: %v", err)
				}
				if got.MemberID != 7 || got.LoginID != "alice" {
					t.Errorf("context member = %+v", got)
				}
				return
			}
			var env api.RawEnvelope
			if err := json.NewDecoder(rec.Body).Decode(&env); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if env.IsSuccess || env.Code != api.CodeUnauthorized {
				t.Errorf("envelope = %+v", env)
			}
		})
	}
}

func TestRequestID(t *testing.T) {
	var seen string
	handler := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetRequestID(r.Context())
	}))

	t.Run("generated", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		if seen == "" || rec.Header().Get(RequestIDHeader) != seen {
			t.Errorf("context id %q, header %q", seen, rec.Header().Get(RequestIDHeader))
		}
	})

	t.Run("propagated", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(RequestIDHeader, "abc-123")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		if seen != "abc-123" {
			t.Errorf("id = %q, want abc-123", seen)
		}
	})
}

func TestRateLimiter(t *testing.T) {
	now := time.Date(2025, 7, 1, 12, 0, 0, 0, time.UTC)
	limiter := NewRateLimiter(1, 2)
	limiter.now = func() time.Time { return now }

	for i, want := range []bool{true, true, false} {
		if got := limiter.Allow("10.0.0.1"); got != want {
			t.Errorf("request %d allowed = %v, want %v", i, got, want)
		}
	}
	if !limiter.Allow("10.0.0.2") {
		t.Error("a different client must have its own bucket")
	}

	now = now.Add(time.Second)
	if !limiter.Allow("10.0.0.1") {
		t.Error("bucket should refill after a second")
	}

	now = now.Add(2 * idleVisitor)
	limiter.Allow("10.0.0.3")
	if _, ok := limiter.visitors["10.0.0.1"]; ok {
		t.Error("idle visitor should be swept")
	}
}

func TestRateLimiterMiddleware(t *testing.T) {
	limiter := NewRateLimiter(0.001, 1)
	handler := limiter.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	first := httptest.NewRecorder()
	handler.ServeHTTP(first, httptest.NewRequest(http.MethodGet, "/", nil))
	second := httptest.NewRecorder()
	handler.ServeHTTP(second, httptest.NewRequest(http.MethodGet, "/", nil))

	if first.Code != http.StatusOK {
		t.Errorf("first status = %d", first.Code)
	}
	if second.Code != http.StatusTooManyRequests {
		t.Errorf("second status = %d, want 429", second.Code)
	}
	if !strings.Contains(second.Body.String(), api.CodeRateLimited) {
		t.Errorf("body = %s", second.Body.String())
	}
}

func TestCORSPreflight(t *testing.T) {
	called := false
	handler := CORS("https://app.example")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, "/api/v1/puzzles", nil))

	if called {
		t.Error("preflight must not reach the handler")
	}
	if rec.Code != http.StatusNoContent {
		t.Errorf("status = %d", rec.Code)
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "https://app.example" {
		t.Errorf("origin = %q", got)
	}
}

func TestMetrics(t *testing.T) {
	metrics := NewMetrics()
	mux := http.NewServeMux()
	mux.HandleFunc("GET /items/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})
	handler := Chain(mux, AccessLog, metrics.Middleware)

	for _, path := range []string{"/items/1", "/items/2"} {
		handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	srv := httptest.NewServer(metrics.Handler())
	defer srv.Close()
	resp, err := http.Get(srv.URL)
	if err != nil {
		t.Fatalf("scrape: %v", err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)

	want := `http_requests_total{method="GET",path="GET /items/{id}",status="418"} 2`
	if !strings.Contains(string(body), want) {
		t.Errorf("metrics output missing %q", want)
	}
}
