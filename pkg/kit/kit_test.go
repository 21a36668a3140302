package kit_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"FurniStore/pkg/kit"
)

var ok = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusNoContent) })

func limitedHit(h http.Handler) func(remote, xff string) int {
	return func(remote, xff string) int {
		req := httptest.NewRequest(http.MethodPost, "/auth/login", nil)
		req.RemoteAddr = remote
		if xff != "" {
			req.Header.Set("X-Forwarded-For", xff)
		}
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec.Code
	}
}

func TestIPRateLimiter_PerIP(t *testing.T) {
	hit := limitedHit(kit.NewIPRateLimiter(2).Middleware(ok))

	assert.Equal(t, http.StatusNoContent, hit("10.0.0.1:5000", ""))
	assert.Equal(t, http.StatusNoContent, hit("10.0.0.1:5001", ""))
	assert.Equal(t, http.StatusTooManyRequests, hit("10.0.0.1:5002", ""))

	assert.Equal(t, http.StatusNoContent, hit("10.0.0.2:5000", ""), "other clients keep their own budget")
}

func TestIPRateLimiter_IgnoresForwardedForByDefault(t *testing.T) {
	hit := limitedHit(kit.NewIPRateLimiter(2).Middleware(ok))

	assert.Equal(t, http.StatusNoContent, hit("10.0.0.1:5000", "198.51.100.1"))
	assert.Equal(t, http.StatusNoContent, hit("10.0.0.1:5001", "198.51.100.2"))
	assert.Equal(t, http.StatusTooManyRequests, hit("10.0.0.1:5002", "198.51.100.3"),
		"a rotating X-Forwarded-For does not buy a fresh budget")
}

func TestIPRateLimiter_TrustForwardedFor(t *testing.T) {
	l := kit.NewIPRateLimiter(2)
	l.TrustForwardedFor = true
	hit := limitedHit(l.Middleware(ok))

	assert.Equal(t, http.StatusNoContent, hit("10.0.0.1:5000", ""))
	assert.Equal(t, http.StatusNoContent, hit("10.0.0.1:5001", ""))
	assert.Equal(t, http.StatusTooManyRequests, hit("10.0.0.1:5002", ""))

	assert.Equal(t, http.StatusNoContent, hit("10.0.0.1:5003", "203.0.113.9, 10.0.0.1"))
	assert.Equal(t, http.StatusNoContent, hit("10.0.0.1:5004", "203.0.113.9"))
	assert.Equal(t, http.StatusTooManyRequests, hit("10.0.0.1:5005", "203.0.113.9"))
}

func TestIPRateLimiter_RejectionBody(t *testing.T) {
	l := kit.NewIPRateLimiter(1)
	require.True(t, l.Allow("192.0.2.1"))

	req := httptest.NewRequest(http.MethodPost, "/auth/register", nil)
	req.RemoteAddr = "192.0.2.1:1234"
	rec := httptest.NewRecorder()
	l.Middleware(ok).ServeHTTP(rec, req)

	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "60", rec.Header().Get("Retry-After"))

	var body kit.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "too many requests", body.Error)
}

func TestMetricsAuth(t *testing.T) {
	cases := []struct {
		name   string
		token  string
		header string
		want   int
	}{
		{name: "no token configured", token: "", header: "Bearer anything", want: http.StatusForbidden},
		{name: "missing header", token: "s3cret", header: "", want: http.StatusForbidden},
		{name: "wrong scheme", token: "s3cret", header: "Basic s3cret", want: http.StatusForbidden},
		{name: "wrong token", token: "s3cret", header: "Bearer nope", want: http.StatusForbidden},
		{name: "match", token: "s3cret", header: "Bearer s3cret", want: http.StatusNoContent},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()
			kit.MetricsAuth(tc.token)(ok).ServeHTTP(rec, req)
			assert.Equal(t, tc.want, rec.Code)
		})
	}
}

func TestDecodeJSON(t *testing.T) {
	type body struct {
		Email string `json:"email"`
	}

	decode := func(raw string) (body, error) {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(raw))
		var b body
		err := kit.DecodeJSON(httptest.NewRecorder(), req, &b)
		return b, err
	}

	b, err := decode(`{"email":"a@b.c"}`)
	require.NoError(t, err)
	assert.Equal(t, "a@b.c", b.Email)

	_, err = decode(`{"email":"a@b.c","role":"admin"}`)
	assert.Error(t, err, "unknown fields are rejected")

	_, err = decode(`{"email":"a@b.c"}{}`)
	assert.Error(t, err, "trailing data is rejected")

	_, err = decode(`not json`)
	assert.Error(t, err)
}

func TestMetricsMiddleware_UsesRoutePattern(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := kit.NewMetrics(reg)

	r := chi.NewRouter()
	r.Use(m.Middleware("storefront", kit.ChiRoutePatternOrPath))
	r.Get("/products/{id}", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("{}"))
	})

	for _, id := range []string{"1", "3", "11"} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/products/"+id, nil))
		require.Equal(t, http.StatusOK, rec.Code)
	}

	got := testutil.ToFloat64(m.Requests.WithLabelValues("storefront", http.MethodGet, "/products/{id}", "200"))
	assert.Equal(t, float64(3), got)
}

func TestChiRoutePatternOrPath_NoRouter(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/plain", nil)
	assert.Equal(t, "/plain", kit.ChiRoutePatternOrPath(req))
}

func TestNewLogger(t *testing.T) {
	log, err := kit.NewLogger("storefront", "debug")
	require.NoError(t, err)
	assert.NotNil(t, log)

	_, err = kit.NewLogger("storefront", "loud")
	assert.Error(t, err)
}
