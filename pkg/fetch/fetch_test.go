package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDoRejectsNonHTTPSchemes(t *testing.T) {
	for _, url := range []string{"ftp://example.com", "example.com", "file:///etc/passwd"} {
		_, err := Fetch(context.Background(), url, http.MethodGet)
		assert.ErrorIs(t, err, ErrScheme, url)
	}
}

func TestDoSendsHeadersAndBody(t *testing.T) {
	var gotUA, gotCT, gotBody string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		gotCT = r.Header.Get("Content-Type")
		buf := make([]byte, r.ContentLength)
		_, _ = r.Body.Read(buf)
		gotBody = string(buf)

		w.Header().Set("X-Answer", "42")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer ts.Close()

	req := Request{
		Header: map[string]string{"Content-Type": "application/json"},
		Body:   []byte(`{"hello":"world"}`),
	}
	resp, err := req.Do(context.Background(), ts.URL, http.MethodPost)
	require.NoError(t, err)

	assert.Equal(t, UserAgent, gotUA)
	assert.Equal(t, "application/json", gotCT)
	assert.Equal(t, `{"hello":"world"}`, gotBody)
	assert.Equal(t, http.StatusCreated, resp.Status)
	assert.Equal(t, "42", resp.Header.Get("X-Answer"))

	var parsed struct {
		OK bool `json:"ok"`
	}
	require.NoError(t, resp.JSON(&parsed))
	assert.True(t, parsed.OK)
}

func TestFetch(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		_, _ = w.Write([]byte("pong"))
	}))
	defer ts.Close()

	resp, err := Fetch(context.Background(), ts.URL, http.MethodGet)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.Status)
	assert.Equal(t, "pong", string(resp.Body))
}
