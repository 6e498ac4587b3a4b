package endpoints

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHandleStatus(t *testing.T) {
	t.Run("returns HTML status page", func(t *testing.T) {
		handler := handleStatus(nil)

		req := httptest.NewRequest("GET", "/", nil)
		w := httptest.NewRecorder()

		handler(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
		assert.Contains(t, w.Body.String(), "Your sal server is running!")
	})

	t.Run("returns JSON when Accept header is application/json", func(t *testing.T) {
		handler := handleStatus(nil)

		req := httptest.NewRequest("GET", "/", nil)
		req.Header.Set("Accept", "application/json")
		w := httptest.NewRecorder()

		handler(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Header().Get("Content-Type"), "application/json")
		assert.Contains(t, w.Body.String(), `"status":"ok"`)
	})

	t.Run("reports degraded backend", func(t *testing.T) {
		healthStore := NewMockHealthStore()
		healthStore.On("CheckConnectivity").Return(errors.New("connection refused"))

		handler := handleStatus(healthStore)

		req := httptest.NewRequest("GET", "/?format=json", nil)
		w := httptest.NewRecorder()

		handler(w, req)

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.Contains(t, w.Body.String(), `"status":"degraded"`)
	})
}
