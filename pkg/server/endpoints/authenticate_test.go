package endpoints

import (
	"encoding/base64"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthenticateEndpoint(t *testing.T) {
	srv := newTestServer(t, NewMockFilesStore(), nil, nil, nil)

	t.Run("exchanges API key for a token", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/authn/admin/authenticate", strings.NewReader(testAPIKey))
		w := httptest.NewRecorder()
		srv.Router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		token := w.Body.String()
		require.NotEmpty(t, token)

		// The token opens the protected endpoints.
		listReq := httptest.NewRequest("DELETE", "/files/obj-a", nil)
		listReq.Header.Set("Authorization", fmt.Sprintf("Token token=%q", token))
		filesStore := srv.FilesStore.(*MockFilesStore)
		filesStore.On("DeleteFile", "obj-a").Return(nil)

		listW := httptest.NewRecorder()
		srv.Router.ServeHTTP(listW, listReq)
		assert.Equal(t, http.StatusNoContent, listW.Code)
	})

	t.Run("base64 encodes when requested", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/authn/admin/authenticate", strings.NewReader(testAPIKey))
		req.Header.Set(acceptEncoding, "base64")
		w := httptest.NewRecorder()
		srv.Router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "base64", w.Header().Get("Content-Encoding"))

		_, err := base64.StdEncoding.DecodeString(w.Body.String())
		assert.NoError(t, err)
	})

	t.Run("rejects a wrong API key", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/authn/admin/authenticate", strings.NewReader("wrong"))
		w := httptest.NewRecorder()
		srv.Router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
