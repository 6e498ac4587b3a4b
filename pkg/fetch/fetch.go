// Package fetch provides a small outbound HTTP helper used by the drive
// and notice clients. Only http and https URLs are accepted.
package fetch

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	json "github.com/goccy/go-json"
)

// UserAgent is sent on every outbound request.
const UserAgent = "Saloxy Mozilla Curl"

// ErrScheme is returned for URLs that are not http or https.
var ErrScheme = errors.New("fetch: url must be http or https")

// DefaultClient is the client used by the package-level helpers.
var DefaultClient = &http.Client{Timeout: 30 * time.Second}

// Request carries headers and an optional body for an outbound call.
type Request struct {
	Header map[string]string
	Body   []byte
}

// Response is the parsed result of an outbound call.
type Response struct {
	Status int
	Header http.Header
	Body   []byte
}

// JSON decodes the response body into v.
func (r *Response) JSON(v interface{}) error {
	return json.Unmarshal(r.Body, v)
}

// Do performs the request against the URL with the given method.
func (r Request) Do(ctx context.Context, url, method string) (*Response, error) {
	if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		return nil, ErrScheme
	}

	var body io.Reader
	if len(r.Body) > 0 {
		body = bytes.NewReader(r.Body)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, err
	}

	req.Header.Set("User-Agent", UserAgent)
	for k, v := range r.Header {
		req.Header.Set(k, v)
	}

	resp, err := DefaultClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	return &Response{
		Status: resp.StatusCode,
		Header: resp.Header,
		Body:   data,
	}, nil
}

// Fetch performs a bare request with no extra headers or body.
func Fetch(ctx context.Context, url, method string) (*Response, error) {
	return Request{}.Do(ctx, url, method)
}
