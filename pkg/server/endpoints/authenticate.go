package endpoints

import (
	"crypto/subtle"
	"encoding/base64"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/gorilla/mux"

	"github.com/saloxy/sal-server/pkg/audit"
	"github.com/saloxy/sal-server/pkg/server"
)

const acceptEncoding string = "Accept-Encoding"

func RegisterAuthenticateEndpoint(srv *server.Server) {
	router := srv.Router
	cfg := srv.Config

	// POST /authn/{login}/authenticate - Exchange the API key for a bearer token
	router.HandleFunc(
		"/authn/{login}/authenticate",
		func(writer http.ResponseWriter, request *http.Request) {
			requestApiKey, err := io.ReadAll(request.Body)
			defer request.Body.Close()
			if err != nil {
				http.Error(writer, err.Error(), http.StatusBadRequest)
				return
			}

			vars := mux.Vars(request)
			login, err := url.PathUnescape(vars["login"])
			if err != nil {
				http.Error(writer, err.Error(), http.StatusBadRequest)
				return
			}

			// Detect the encoding to use
			var base64Encoding bool
			for _, curEnc := range strings.Split(request.Header.Get(acceptEncoding), ",") {
				curEnc = strings.TrimSpace(curEnc)
				if curEnc == "base64" {
					base64Encoding = true
					break
				}
			}

			clientIP := request.RemoteAddr
			if forwarded := request.Header.Get("X-Forwarded-For"); forwarded != "" {
				clientIP = forwarded
			}

			if cfg.APIKey == "" {
				audit.Log(audit.AuthnEvent{Login: login, ClientIP: clientIP, Success: false})
				http.Error(writer, "Authentication is not configured", http.StatusUnauthorized)
				return
			}

			if ok := subtle.ConstantTimeCompare([]byte(cfg.APIKey), requestApiKey); ok != 1 {
				audit.Log(audit.AuthnEvent{Login: login, ClientIP: clientIP, Success: false})
				writer.WriteHeader(http.StatusUnauthorized)
				return
			}

			token, err := srv.Auth.IssueToken(login)
			if err != nil {
				http.Error(writer, "Failed to issue token", http.StatusInternalServerError)
				return
			}

			audit.Log(audit.AuthnEvent{Login: login, ClientIP: clientIP, Success: true})

			if base64Encoding {
				writer.Header().Add("Content-Encoding", "base64")
				enc := base64.NewEncoder(base64.StdEncoding.Strict(), writer)
				_, _ = enc.Write([]byte(token))
				_ = enc.Close()
				return
			}

			writer.Header().Set("Content-Type", "text/plain")
			_, _ = writer.Write([]byte(token))
		},
	).Methods("POST")
}
