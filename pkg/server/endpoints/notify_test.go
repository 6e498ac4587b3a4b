package endpoints

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	json "github.com/goccy/go-json"

	"github.com/saloxy/sal-server/pkg/notice"
)

func newFakePushServer(t *testing.T, reply notice.Response) (*httptest.Server, *[]map[string]string) {
	t.Helper()

	var requests []map[string]string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/send", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		requests = append(requests, body)

		_ = json.NewEncoder(w).Encode(reply)
	}))
	t.Cleanup(ts.Close)
	return ts, &requests
}

func TestNotifyEndpoint(t *testing.T) {
	ts, requests := newFakePushServer(t, notice.Response{Code: 200, Msg: "请求成功"})

	sender := notice.New("push-token", notice.TemplateMarkdown, notice.ChannelWechat)
	sender.Endpoint = ts.URL

	srv := newTestServer(t, NewMockFilesStore(), nil, nil, sender)

	body, _ := json.Marshal(NotifyRequest{Title: "scan finished", Content: "indexed **3** new files"})
	req := httptest.NewRequest("POST", "/notify", bytes.NewReader(body))
	authorize(t, srv, req)
	w := httptest.NewRecorder()
	srv.Router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp NotifyResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 200, resp.Code)

	require.Len(t, *requests, 1)
	sent := (*requests)[0]
	assert.Equal(t, "push-token", sent["token"])
	assert.Equal(t, "markdown", sent["template"])
	assert.Equal(t, "wechat", sent["channel"])
	assert.Equal(t, "scan finished", sent["title"])
}

func TestNotifyEndpointRendersMarkdown(t *testing.T) {
	ts, requests := newFakePushServer(t, notice.Response{Code: 200, Msg: "请求成功"})

	sender := notice.New("push-token", notice.TemplateHTML, notice.ChannelWechat)
	sender.Endpoint = ts.URL

	srv := newTestServer(t, NewMockFilesStore(), nil, nil, sender)

	body, _ := json.Marshal(NotifyRequest{
		Title:          "scan finished",
		Content:        "indexed **3** new files",
		RenderMarkdown: true,
	})
	req := httptest.NewRequest("POST", "/notify", bytes.NewReader(body))
	authorize(t, srv, req)
	w := httptest.NewRecorder()
	srv.Router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, *requests, 1)
	assert.Contains(t, (*requests)[0]["content"], "<strong>3</strong>")
}

func TestNotifyEndpointRejections(t *testing.T) {
	t.Run("not configured", func(t *testing.T) {
		srv := newTestServer(t, NewMockFilesStore(), nil, nil, nil)

		body, _ := json.Marshal(NotifyRequest{Title: "t", Content: "c"})
		req := httptest.NewRequest("POST", "/notify", bytes.NewReader(body))
		authorize(t, srv, req)
		w := httptest.NewRecorder()
		srv.Router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	})

	t.Run("missing fields", func(t *testing.T) {
		sender := notice.New("push-token", notice.TemplateTXT, notice.ChannelMail)
		srv := newTestServer(t, NewMockFilesStore(), nil, nil, sender)

		body, _ := json.Marshal(NotifyRequest{Title: "t"})
		req := httptest.NewRequest("POST", "/notify", bytes.NewReader(body))
		authorize(t, srv, req)
		w := httptest.NewRecorder()
		srv.Router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("service error code relayed", func(t *testing.T) {
		ts, _ := newFakePushServer(t, notice.Response{Code: 903, Msg: "无效的用户token"})

		sender := notice.New("bad-token", notice.TemplateTXT, notice.ChannelWechat)
		sender.Endpoint = ts.URL

		srv := newTestServer(t, NewMockFilesStore(), nil, nil, sender)

		body, _ := json.Marshal(NotifyRequest{Title: "t", Content: "c"})
		req := httptest.NewRequest("POST", "/notify", bytes.NewReader(body))
		authorize(t, srv, req)
		w := httptest.NewRecorder()
		srv.Router.ServeHTTP(w, req)

		require.Equal(t, http.StatusBadGateway, w.Code)

		var resp NotifyResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, 903, resp.Code)
	})
}
