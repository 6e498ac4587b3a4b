package endpoints

import (
	"net/http"

	json "github.com/goccy/go-json"

	"github.com/saloxy/sal-server/pkg/audit"
	"github.com/saloxy/sal-server/pkg/notice"
	"github.com/saloxy/sal-server/pkg/server"
)

// NotifyRequest is the body of POST /notify. RenderMarkdown converts
// the content to HTML before sending.
type NotifyRequest struct {
	Title          string `json:"title"`
	Content        string `json:"content"`
	RenderMarkdown bool   `json:"render_markdown,omitempty"`
}

// NotifyResponse relays the push service reply.
type NotifyResponse struct {
	Code int    `json:"code"`
	Msg  string `json:"msg"`
	Data string `json:"data,omitempty"`
}

// RegisterNotifyEndpoint registers the push notification endpoint. It
// requires a bearer token.
func RegisterNotifyEndpoint(srv *server.Server) {
	sender := srv.Notice

	router := srv.Router.PathPrefix("/notify").Subrouter()
	router.Use(srv.Auth.Middleware)

	// POST /notify - Push a message to the configured channel
	router.HandleFunc(
		"",
		func(writer http.ResponseWriter, request *http.Request) {
			if sender == nil {
				respondWithError(writer, http.StatusServiceUnavailable, "push notifications are not configured")
				return
			}

			var req NotifyRequest
			if err := json.NewDecoder(request.Body).Decode(&req); err != nil {
				respondWithError(writer, http.StatusBadRequest, err.Error())
				return
			}
			if req.Title == "" || req.Content == "" {
				respondWithError(writer, http.StatusBadRequest, "title and content are required")
				return
			}

			content := req.Content
			if req.RenderMarkdown {
				rendered, err := notice.RenderMarkdown(content)
				if err != nil {
					respondWithError(writer, http.StatusBadRequest, err.Error())
					return
				}
				content = rendered
			}

			template := sender.Template().String()
			channel := sender.Channel().String()

			reply, err := sender.Send(request.Context(), req.Title, content)
			if err != nil {
				audit.Log(audit.NoticeEvent{
					Title:    req.Title,
					Template: template,
					Channel:  channel,
					Success:  false,
				})
				respondWithError(writer, http.StatusBadGateway, err.Error())
				return
			}

			audit.Log(audit.NoticeEvent{
				Title:    req.Title,
				Template: template,
				Channel:  channel,
				Code:     reply.Code,
				Success:  reply.OK(),
			})

			status := http.StatusOK
			if !reply.OK() {
				status = http.StatusBadGateway
			}
			respondWithJSON(writer, status, NotifyResponse{
				Code: reply.Code,
				Msg:  reply.Msg,
				Data: reply.Data,
			})
		},
	).Methods("POST")
}
