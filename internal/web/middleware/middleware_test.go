package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JonMunkholm/csv2json/internal/config"
)

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(r.RemoteAddr))
})

// ----------------------------------------------------------------------------
// TrustedRealIP
// ----------------------------------------------------------------------------

func TestTrustedRealIP(t *testing.T) {
	tests := []struct {
		name       string
		trusted    []string
		remoteAddr string
		headers    map[string]string
		want       string
	}{
		{
			name:       "untrusted source keeps remote addr",
			trusted:    []string{"10.0.0.0/8"},
			remoteAddr: "203.0.113.5:4000",
			headers:    map[string]string{"X-Real-IP": "1.2.3.4"},
			want:       "203.0.113.5:4000",
		},
		{
			name:       "trusted proxy with X-Real-IP",
			trusted:    []string{"10.0.0.0/8"},
			remoteAddr: "10.1.2.3:4000",
			headers:    map[string]string{"X-Real-IP": "198.51.100.7"},
			want:       "198.51.100.7",
		},
		{
			name:       "trusted proxy with X-Forwarded-For chain",
			trusted:    []string{"10.0.0.0/8"},
			remoteAddr: "10.1.2.3:4000",
			headers:    map[string]string{"X-Forwarded-For": "198.51.100.8, 10.1.2.3"},
			want:       "198.51.100.8",
		},
		{
			name:       "trusted single IP entry",
			trusted:    []string{"127.0.0.1"},
			remoteAddr: "127.0.0.1:5555",
			headers:    map[string]string{"X-Real-IP": "198.51.100.9"},
			want:       "198.51.100.9",
		},
		{
			name:       "invalid header value ignored",
			trusted:    []string{"10.0.0.0/8"},
			remoteAddr: "10.1.2.3:4000",
			headers:    map[string]string{"X-Real-IP": "not-an-ip"},
			want:       "10.1.2.3:4000",
		},
		{
			name:       "invalid CIDR skipped",
			trusted:    []string{"garbage", ""},
			remoteAddr: "10.1.2.3:4000",
			headers:    map[string]string{"X-Real-IP": "198.51.100.7"},
			want:       "10.1.2.3:4000",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remoteAddr
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			rec := httptest.NewRecorder()

			TrustedRealIP(tt.trusted)(okHandler).ServeHTTP(rec, req)
			assert.Equal(t, tt.want, rec.Body.String())
		})
	}
}

// ----------------------------------------------------------------------------
// APIKeyAuth
// ----------------------------------------------------------------------------

func TestAPIKeyAuth(t *testing.T) {
	tests := []struct {
		name       string
		cfg        config.SecurityConfig
		key        string
		wantStatus int
	}{
		{
			name:       "disabled passes through",
			cfg:        config.SecurityConfig{RequireAPIKey: false},
			wantStatus: http.StatusOK,
		},
		{
			name:       "missing key",
			cfg:        config.SecurityConfig{RequireAPIKey: true, APIKeys: []string{"k1"}},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "wrong key",
			cfg:        config.SecurityConfig{RequireAPIKey: true, APIKeys: []string{"k1"}},
			key:        "nope",
			wantStatus: http.StatusForbidden,
		},
		{
			name:       "second configured key accepted",
			cfg:        config.SecurityConfig{RequireAPIKey: true, APIKeys: []string{"k1", "k2"}},
			key:        "k2",
			wantStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/convert", nil)
			if tt.key != "" {
				req.Header.Set("X-API-Key", tt.key)
			}
			rec := httptest.NewRecorder()

			APIKeyAuth(&tt.cfg)(okHandler).ServeHTTP(rec, req)
			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus != http.StatusOK {
				var body map[string]string
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
				assert.Equal(t, "AUTH001", body["code"])
			}
		})
	}
}

// ----------------------------------------------------------------------------
// RateLimiter
// ----------------------------------------------------------------------------

func TestRateLimiter_BurstThenReject(t *testing.T) {
	rl := NewRateLimiter(60, 2)
	limited := 0
	rl.OnLimited = func() { limited++ }
	h := rl.Middleware(okHandler)

	codes := make([]int, 3)
	for i := range codes {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "192.0.2.1:1234"
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		codes[i] = rec.Code
		if rec.Code == http.StatusTooManyRequests {
			assert.Equal(t, "1", rec.Header().Get("Retry-After"))
		}
	}

	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
	assert.Equal(t, 1, limited)
}

func TestRateLimiter_PerClient(t *testing.T) {
	rl := NewRateLimiter(60, 1)

	assert.True(t, rl.Allow("192.0.2.1"))
	assert.False(t, rl.Allow("192.0.2.1"))
	assert.True(t, rl.Allow("192.0.2.2"))
	assert.Equal(t, 2, rl.Len())
}

func TestRateLimiter_PortIgnored(t *testing.T) {
	rl := NewRateLimiter(60, 1)
	h := rl.Middleware(okHandler)

	for i, port := range []string{"1111", "2222"} {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "192.0.2.9:" + port
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		if i == 1 {
			assert.Equal(t, http.StatusTooManyRequests, rec.Code)
		}
	}
}

func TestRateLimiter_Prune(t *testing.T) {
	rl := NewRateLimiter(60, 1)
	rl.Allow("192.0.2.1")

	rl.prune(time.Now())
	assert.Equal(t, 1, rl.Len())

	rl.prune(time.Now().Add(visitorTTL + time.Second))
	assert.Equal(t, 0, rl.Len())
}

// ----------------------------------------------------------------------------
// Logger
// ----------------------------------------------------------------------------

func TestLogger_CapturesStatusAndBytes(t *testing.T) {
	var captured *responseWriter
	h := Logger(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured = w.(*responseWriter)
		w.WriteHeader(http.StatusTeapot)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("hello"))
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusTeapot, rec.Code)
	require.NotNil(t, captured)
	assert.Equal(t, http.StatusTeapot, captured.status)
	assert.Equal(t, 5, captured.bytes)
}
