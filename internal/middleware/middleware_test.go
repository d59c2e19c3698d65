package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Dan9191/budget-advisor/internal/config"
	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
)

func signed(t *testing.T, secret string, method jwt.SigningMethod, claims jwt.RegisteredClaims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(method, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func TestAuthMiddleware(t *testing.T) {
	cfg := &config.Config{JWTSecret: "secret"}
	var gotID int64
	h := AuthMiddleware(cfg)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID, _ = UserIDFromContext(r.Context())
	}))

	valid := jwt.RegisteredClaims{Subject: "42", ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))}
	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"valid token", "Bearer " + signed(t, "secret", jwt.SigningMethodHS256, valid), http.StatusOK},
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic abc", http.StatusUnauthorized},
		{"wrong secret", "Bearer " + signed(t, "other", jwt.SigningMethodHS256, valid), http.StatusUnauthorized},
		{"wrong algorithm", "Bearer " + signed(t, "secret", jwt.SigningMethodHS512, valid), http.StatusUnauthorized},
		{"expired", "Bearer " + signed(t, "secret", jwt.SigningMethodHS256, jwt.RegisteredClaims{
			Subject: "42", ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		}), http.StatusUnauthorized},
		{"non-numeric subject", "Bearer " + signed(t, "secret", jwt.SigningMethodHS256, jwt.RegisteredClaims{Subject: "ann"}), http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotID = 0
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rr := httptest.NewRecorder()
			h.ServeHTTP(rr, req)
			if rr.Code != tt.want {
				t.Errorf("status = %d, want %d", rr.Code, tt.want)
			}
			if tt.want == http.StatusOK && gotID != 42 {
				t.Errorf("user id = %d, want 42", gotID)
			}
		})
	}
}

func TestLoggingMiddleware(t *testing.T) {
	var buf bytes.Buffer
	log := logrus.New()
	log.SetOutput(&buf)
	log.SetFormatter(&logrus.JSONFormatter{})

	h := LoggingMiddleware(log)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))
	req := httptest.NewRequest(http.MethodPost, "/decisions", nil)
	req.Header.Set("X-Request-ID", "req-1")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if rr.Header().Get("X-Request-ID") != "req-1" {
		t.Errorf("X-Request-ID = %q", rr.Header().Get("X-Request-ID"))
	}
	out := buf.String()
	for _, want := range []string{`"request_id":"req-1"`, `"status":418`, `"path":"/decisions"`} {
		if !strings.Contains(out, want) {
			t.Errorf("log missing %s: %s", want, out)
		}
	}

	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	if rr.Header().Get("X-Request-ID") == "" {
		t.Error("request id not generated")
	}
}
