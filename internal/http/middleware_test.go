package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"usage-analytics/internal/shared/loggers"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLogger(t *testing.T) loggers.Logger {
	t.Helper()
	logger, err := loggers.New("debug", loggers.FormatJSON)
	require.NoError(t, err)
	return logger
}

func TestMwRequestID(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		providedID string
	}{
		{name: "generates an id when none is provided"},
		{name: "keeps the provided id", providedID: "custom-request-id-12345"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			handler := mwRequestID(newTestLogger(t))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				requestID := r.Header.Get(headerRequestID)
				if tt.providedID != "" {
					assert.Equal(t, tt.providedID, requestID)
				} else {
					assert.Len(t, requestID, 26, "request ID should be a ULID")
				}
				assert.NotNil(t, loggers.Ctx(r.Context()), "logger should be in context")
				w.WriteHeader(http.StatusOK)
			}))

			req := httptest.NewRequest(http.MethodGet, "/test", nil)
			if tt.providedID != "" {
				req.Header.Set(headerRequestID, tt.providedID)
			}
			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, req)

			assert.Equal(t, http.StatusOK, rr.Code)
		})
	}
}

func TestMwRecoverer(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		panicValue any
	}{
		{name: "string panic", panicValue: "test panic"},
		{name: "error panic", panicValue: assert.AnError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			handler := mwRecoverer(mwRequestID(newTestLogger(t))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				panic(tt.panicValue)
			})))

			req := httptest.NewRequest(http.MethodGet, "/test", nil)
			rr := httptest.NewRecorder()
			assert.NotPanics(t, func() { handler.ServeHTTP(rr, req) })

			assert.Equal(t, http.StatusInternalServerError, rr.Code)
			assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

			var errorResponse ErrorResponse
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &errorResponse))
			assert.NotEmpty(t, errorResponse.RequestID)
			assert.Equal(t, "internal", errorResponse.ErrorCategory)
			assert.Equal(t, "SYS_9000", errorResponse.ErrorCode)
			assert.Equal(t, "internal server error", errorResponse.ErrorDescription)
		})
	}
}

func TestMwRecoverer_PassesThroughWhenNoPanic(t *testing.T) {
	t.Parallel()

	handler := mwRecoverer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("success"))
	}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/test", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "success", rr.Body.String())
}

func TestMwRateLimit(t *testing.T) {
	t.Parallel()

	router := chi.NewRouter()
	setupMiddleware(router, newTestLogger(t))
	router.With(mwRateLimit(2)).Post("/limited", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	router.With(mwRateLimit(0)).Post("/unlimited", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	send := func(path, remoteAddr string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, path, nil)
		req.RemoteAddr = remoteAddr
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)
		return rr
	}

	assert.Equal(t, http.StatusNoContent, send("/limited", "10.0.0.1:1000").Code)
	assert.Equal(t, http.StatusNoContent, send("/limited", "10.0.0.1:1001").Code)

	rr := send("/limited", "10.0.0.1:1002")
	assert.Equal(t, http.StatusTooManyRequests, rr.Code)
	var errorResponse ErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &errorResponse))
	assert.Equal(t, "rate_limited", errorResponse.ErrorCategory)
	assert.Equal(t, "HTTP_1001", errorResponse.ErrorCode)

	assert.Equal(t, http.StatusNoContent, send("/limited", "10.0.0.2:1000").Code, "limit is per client IP")

	for i := 0; i < 5; i++ {
		assert.Equal(t, http.StatusNoContent, send("/unlimited", "10.0.0.1:1000").Code)
	}
}

func TestSetupMiddleware_Integration(t *testing.T) {
	t.Parallel()

	router := chi.NewRouter()
	setupMiddleware(router, newTestLogger(t))

	router.Get("/test-id", func(w http.ResponseWriter, r *http.Request) {
		assert.NotEmpty(t, r.Header.Get(headerRequestID), "request ID should be set")
		_, isAppWriter := w.(*appResponseWriter)
		assert.True(t, isAppWriter, "handlers receive the app response writer")
	})
	router.Get("/test-panic", func(w http.ResponseWriter, r *http.Request) {
		panic("integration test panic")
	})

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/test-id", nil))
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = httptest.NewRecorder()
	assert.NotPanics(t, func() {
		router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/test-panic", nil))
	})
	assert.Equal(t, http.StatusInternalServerError, rr.Code)

	var errorResponse ErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &errorResponse))
	assert.NotEmpty(t, errorResponse.RequestID)
	assert.Equal(t, "SYS_9000", errorResponse.ErrorCode)
}
