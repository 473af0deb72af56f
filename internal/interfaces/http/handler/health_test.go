package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockPinger struct {
	mock.Mock
}

func (m *mockPinger) Ping(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func serveHealth(t *testing.T, h *HealthHandler) (*httptest.ResponseRecorder, HealthResponse, bool) {
	t.Helper()
	engine := gin.New()
	engine.GET("/health", h.Health)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	var body struct {
		Success bool           `json:"success"`
		Data    HealthResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w, body.Data, body.Success
}

func TestHealth_Up(t *testing.T) {
	db := new(mockPinger)
	db.On("Ping", mock.Anything).Return(nil)

	w, resp, ok := serveHealth(t, NewHealthHandler(db, "1.2.3"))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, ok)
	assert.Equal(t, "healthy", resp.Status)
	assert.Equal(t, "up", resp.Database)
	assert.Equal(t, "1.2.3", resp.Version)
	db.AssertExpectations(t)
}

func TestHealth_DatabaseDown(t *testing.T) {
	db := new(mockPinger)
	db.On("Ping", mock.Anything).Return(errors.New("connection refused"))

	w, resp, ok := serveHealth(t, NewHealthHandler(db, "1.2.3"))

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.False(t, ok)
	assert.Equal(t, "degraded", resp.Status)
	assert.Equal(t, "down", resp.Database)
}
