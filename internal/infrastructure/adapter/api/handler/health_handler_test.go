package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errs "github.com/amirhossein-jamali/account-opening-service/internal/domain/error"
	"github.com/amirhossein-jamali/account-opening-service/internal/infrastructure/adapter/logger"
)

type stubPinger struct {
	err error
}

func (s *stubPinger) Ping(ctx context.Context) error {
	return s.err
}

func checkHealth(t *testing.T, pinger Pinger) *httptest.ResponseRecorder {
	t.Helper()

	h := NewHealthHandler(pinger, logger.NewNoopLogger())
	router := gin.New()
	router.GET("/health", h.Check)

	req, err := http.NewRequest(http.MethodGet, "/health", nil)
	require.NoError(t, err)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestHealthEndpoint(t *testing.T) {
	t.Run("Healthy service reports ok", func(t *testing.T) {
		w := checkHealth(t, &stubPinger{})

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "no-store", w.Header().Get("Cache-Control"))

		var resp map[string]string
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "ok", resp["status"])
	})

	t.Run("Unreachable database reports unhealthy", func(t *testing.T) {
		w := checkHealth(t, &stubPinger{err: errs.ErrDatabaseConnection})

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)

		var resp map[string]string
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "unhealthy", resp["status"])
		assert.Equal(t, "unreachable", resp["database"])
	})
}
