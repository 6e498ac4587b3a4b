package notice

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTemplateStrings(t *testing.T) {
	assert.Equal(t, "html", TemplateHTML.String())
	assert.Equal(t, "txt", TemplateTXT.String())
	assert.Equal(t, "json", TemplateJSON.String())
	assert.Equal(t, "markdown", TemplateMarkdown.String())

	tpl, err := TemplateString("markdown")
	require.NoError(t, err)
	assert.Equal(t, TemplateMarkdown, tpl)

	_, err = TemplateString("carrier-pigeon")
	assert.Error(t, err)
}

func TestChannelStrings(t *testing.T) {
	assert.Equal(t, "wechat", ChannelWechat.String())
	assert.Equal(t, "mail", ChannelMail.String())
}

func TestSend(t *testing.T) {
	var got sendRequest
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/send", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &got))

		_, _ = w.Write([]byte(`{"code":200,"msg":"请求成功","data":"send ok"}`))
	}))
	defer ts.Close()

	n := New("tok-123", TemplateJSON, ChannelWechat)
	n.Endpoint = ts.URL

	resp, err := n.Send(context.Background(), "Newest Data", `{"hello":"world"}`)
	require.NoError(t, err)

	assert.True(t, resp.OK())
	assert.Equal(t, "send ok", resp.Data)

	assert.Equal(t, "tok-123", got.Token)
	assert.Equal(t, "json", got.Template)
	assert.Equal(t, "wechat", got.Channel)
	assert.Equal(t, "Newest Data", got.Title)
}

func TestSendRejectsNonJSONReply(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html>gateway error</html>"))
	}))
	defer ts.Close()

	n := New("tok", TemplateTXT, ChannelMail)
	n.Endpoint = ts.URL

	_, err := n.Send(context.Background(), "t", "c")
	assert.ErrorIs(t, err, ErrBadReply)
}

func TestRenderMarkdown(t *testing.T) {
	html, err := RenderMarkdown("indexed **3** new files")
	require.NoError(t, err)
	assert.Contains(t, html, "<strong>3</strong>")
}
