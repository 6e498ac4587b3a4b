// Package notice pushes messages to phones through the PushPlus
// service.
//
// A Notice is configured once with an access token, a content template
// and a delivery channel, then reused:
//
//	n := notice.New(token, notice.TemplateMarkdown, notice.ChannelWechat)
//	resp, err := n.Send(ctx, "scan finished", "indexed **3** new files")
//
// PushPlus response codes are documented at
// http://pushplus.plus/doc/guide/code.html
package notice

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	json "github.com/goccy/go-json"

	"github.com/saloxy/sal-server/pkg/fetch"
)

// DefaultEndpoint is the PushPlus API base URL.
const DefaultEndpoint = "https://www.pushplus.plus"

// ErrBadReply is returned when PushPlus answers with something that is
// not the documented JSON envelope.
var ErrBadReply = errors.New("notice: malformed reply from push service")

//go:generate go run github.com/dmarkham/enumer -type Template -trimprefix Template -transform lower -output template.gen.go
type Template int

const (
	TemplateHTML Template = iota
	TemplateTXT
	TemplateJSON
	TemplateMarkdown
)

//go:generate go run github.com/dmarkham/enumer -type Channel -trimprefix Channel -transform lower -output channel.gen.go
type Channel int

const (
	ChannelWechat Channel = iota
	ChannelMail
)

// Notice is a reusable push sender.
type Notice struct {
	// Endpoint overrides the PushPlus base URL; empty means
	// DefaultEndpoint.
	Endpoint string

	token    string
	template Template
	channel  Channel
}

// Response is the PushPlus reply envelope.
type Response struct {
	Code int    `json:"code"`
	Msg  string `json:"msg"`
	Data string `json:"data"`
}

// OK reports whether the service accepted the message.
func (r *Response) OK() bool {
	return r.Code == 200
}

func (r *Response) String() string {
	return fmt.Sprintf("Response { code: %d, msg: %s, data: %s }", r.Code, r.Msg, r.Data)
}

// New creates a push sender for the given PushPlus token.
func New(token string, template Template, channel Channel) *Notice {
	return &Notice{
		token:    token,
		template: template,
		channel:  channel,
	}
}

// Template returns the configured content template.
func (n *Notice) Template() Template {
	return n.template
}

// Channel returns the configured delivery channel.
func (n *Notice) Channel() Channel {
	return n.channel
}

type sendRequest struct {
	Token    string `json:"token"`
	Template string `json:"template"`
	Channel  string `json:"channel"`
	Title    string `json:"title"`
	Content  string `json:"content"`
}

// Send delivers one message and returns the service reply.
func (n *Notice) Send(ctx context.Context, title, content string) (*Response, error) {
	body, err := json.Marshal(sendRequest{
		Token:    n.token,
		Template: n.template.String(),
		Channel:  n.channel.String(),
		Title:    title,
		Content:  content,
	})
	if err != nil {
		return nil, err
	}

	endpoint := n.Endpoint
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}

	req := fetch.Request{
		Header: map[string]string{"Content-Type": "application/json"},
		Body:   body,
	}
	resp, err := req.Do(ctx, endpoint+"/send", http.MethodPost)
	if err != nil {
		return nil, err
	}

	var reply Response
	if err := resp.JSON(&reply); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadReply, err)
	}
	if reply.Code == 0 {
		return nil, ErrBadReply
	}

	return &reply, nil
}
