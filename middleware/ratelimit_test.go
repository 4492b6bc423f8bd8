package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func okHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func TestRateLimitMiddleware(t *testing.T) {
	t.Run("Read tier allows requests within burst", func(t *testing.T) {
		m := NewRateLimitMiddleware()
		handler := m.WithReadLimit(okHandler)

		for i := 0; i < readBurst; i++ {
			r := httptest.NewRequest(http.MethodGet, "/slack/integrations", nil)
			r.RemoteAddr = "10.0.0.1:1234"
			w := httptest.NewRecorder()
			handler(w, r)
			assert.Equal(t, http.StatusOK, w.Code)
		}
	})

	t.Run("Read tier rejects once burst is exhausted", func(t *testing.T) {
		m := NewRateLimitMiddleware()
		handler := m.WithReadLimit(okHandler)

		for i := 0; i < readBurst; i++ {
			r := httptest.NewRequest(http.MethodGet, "/slack/integrations", nil)
			r.RemoteAddr = "10.0.0.2:1234"
			w := httptest.NewRecorder()
			handler(w, r)
		}

		r := httptest.NewRequest(http.MethodGet, "/slack/integrations", nil)
		r.RemoteAddr = "10.0.0.2:1234"
		w := httptest.NewRecorder()
		handler(w, r)

		assert.Equal(t, http.StatusTooManyRequests, w.Code)
	})

	t.Run("Buckets are isolated per client", func(t *testing.T) {
		m := NewRateLimitMiddleware()
		handler := m.WithWriteLimit(okHandler)

		for i := 0; i < writeBurst; i++ {
			r := httptest.NewRequest(http.MethodPatch, "/slack/integrations/si_x", nil)
			r.RemoteAddr = "10.0.0.3:1234"
			w := httptest.NewRecorder()
			handler(w, r)
		}

		exhausted := httptest.NewRequest(http.MethodPatch, "/slack/integrations/si_x", nil)
		exhausted.RemoteAddr = "10.0.0.3:1234"
		w := httptest.NewRecorder()
		handler(w, exhausted)
		assert.Equal(t, http.StatusTooManyRequests, w.Code)

		fresh := httptest.NewRequest(http.MethodPatch, "/slack/integrations/si_x", nil)
		fresh.RemoteAddr = "10.0.0.4:1234"
		w = httptest.NewRecorder()
		handler(w, fresh)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("First forwarded hop identifies the client", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/slack/integrations", nil)
		r.RemoteAddr = "10.0.0.5:1234"
		r.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.5")

		assert.Equal(t, "203.0.113.7", clientKey(r))
	})

	t.Run("Remote address host identifies direct clients", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/slack/integrations", nil)
		r.RemoteAddr = "10.0.0.6:1234"

		assert.Equal(t, "10.0.0.6", clientKey(r))
	})
}
