package middleware_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aps-bridge/internal/config"
	"aps-bridge/internal/middleware"
)

func defaultCORS() config.CORSConfig {
	return config.CORSConfig{
		AllowedOrigins: []string{"http://localhost:5173", "http://localhost:3000", "http://localhost:4173"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "Accept", "Authorization"},
	}
}

// routeSpy records whether the route behind the gate was reached.
type routeSpy struct{ hits int }

func (s *routeSpy) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.hits++
	w.Header().Set("Content-Type", "application/json")
	_, _ = io.WriteString(w, `{"ok":true}`)
}

func newGate(t *testing.T) (http.Handler, *routeSpy) {
	t.Helper()
	logger, _ := test.NewNullLogger()
	spy := &routeSpy{}
	return middleware.NewOriginGate(defaultCORS(), true, logger).Handler(spy), spy
}

func TestPreflightShortCircuitsForAnyOrigin(t *testing.T) {
	h, spy := newGate(t)

	for _, origin := range []string{"http://evil.example", "http://localhost:5173", ""} {
		req := httptest.NewRequest(http.MethodOptions, "/api/aps/v2/upload-step", nil)
		if origin != "" {
			req.Header.Set("Origin", origin)
		}
		req.Header.Set("Access-Control-Request-Method", "POST")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code, origin)
		assert.Empty(t, rec.Body.String(), origin)
	}
	assert.Zero(t, spy.hits)
}

func TestPreflightWithoutRequestMethodHeader(t *testing.T) {
	h, spy := newGate(t)

	req := httptest.NewRequest(http.MethodOptions, "/anything", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Body.String())
	assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Zero(t, spy.hits)
}

func TestPreflightAllowedOriginGetsPolicy(t *testing.T) {
	h, _ := newGate(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/aps/v2/upload-step", nil)
	req.Header.Set("Origin", "http://localhost:4173")
	req.Header.Set("Access-Control-Request-Method", "POST")
	req.Header.Set("Access-Control-Request-Headers", "content-type")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	hdr := rec.Header()
	assert.Equal(t, "http://localhost:4173", hdr.Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "GET, POST, PUT, DELETE, OPTIONS", hdr.Get("Access-Control-Allow-Methods"))
	assert.Equal(t, "Content-Type, Accept, Authorization", hdr.Get("Access-Control-Allow-Headers"))
	assert.Empty(t, hdr.Get("Access-Control-Allow-Credentials"))
	assert.Empty(t, hdr.Get("Access-Control-Max-Age"))
}

func TestPreflightUnlistedOriginGetsNoPolicy(t *testing.T) {
	h, _ := newGate(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/aps/v2/upload-step", nil)
	req.Header.Set("Origin", "http://evil.example")
	req.Header.Set("Access-Control-Request-Method", "POST")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Methods"))
}

func TestActualRequestDecoration(t *testing.T) {
	cases := []struct {
		name    string
		method  string
		origin  string
		allowed bool
	}{
		{"post allowed 5173", http.MethodPost, "http://localhost:5173", true},
		{"get allowed 3000", http.MethodGet, "http://localhost:3000", true},
		{"put allowed 4173", http.MethodPut, "http://localhost:4173", true},
		{"delete allowed", http.MethodDelete, "http://localhost:5173", true},
		{"post unlisted", http.MethodPost, "http://evil.example", false},
		{"post other port", http.MethodPost, "http://localhost:8080", false},
		{"post no origin", http.MethodPost, "", false},
		{"patch allowed origin but method unlisted", http.MethodPatch, "http://localhost:5173", false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			h, spy := newGate(t)

			req := httptest.NewRequest(c.method, "/api/aps/v2/upload-step", strings.NewReader(`{}`))
			if c.origin != "" {
				req.Header.Set("Origin", c.origin)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			require.Equal(t, 1, spy.hits, "request must reach the route")
			assert.Equal(t, http.StatusOK, rec.Code)
			if c.allowed {
				assert.Equal(t, c.origin, rec.Header().Get("Access-Control-Allow-Origin"))
				assert.Equal(t, "GET, POST, PUT, DELETE, OPTIONS", rec.Header().Get("Access-Control-Allow-Methods"))
				assert.Equal(t, "Content-Type, Accept, Authorization", rec.Header().Get("Access-Control-Allow-Headers"))
			} else {
				assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
				assert.Empty(t, rec.Header().Get("Access-Control-Allow-Methods"))
			}
			assert.Empty(t, rec.Header().Get("Access-Control-Allow-Credentials"))
		})
	}
}

func TestMaxAgeOnPreflight(t *testing.T) {
	cfg := defaultCORS()
	cfg.MaxAge = 600
	h := middleware.NewOriginGate(cfg, false, nil).Handler(&routeSpy{})

	req := httptest.NewRequest(http.MethodOptions, "/x", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", "GET")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, "600", rec.Header().Get("Access-Control-Max-Age"))
}

func TestUnlistedPreflightIsLoggedAtDebug(t *testing.T) {
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	h := middleware.NewOriginGate(defaultCORS(), false, logger).Handler(&routeSpy{})

	req := httptest.NewRequest(http.MethodOptions, "/api/aps/v2/upload-step", nil)
	req.Header.Set("Origin", "http://evil.example")
	h.ServeHTTP(httptest.NewRecorder(), req)

	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, "http://evil.example", hook.LastEntry().Data["origin"])
}
