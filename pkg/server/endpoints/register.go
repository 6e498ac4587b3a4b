package endpoints

import (
	"github.com/saloxy/sal-server/pkg/server"
)

// RegisterAll registers all API endpoints on the server
func RegisterAll(srv *server.Server) {
	RegisterStatusEndpoints(srv)
	RegisterAuthenticateEndpoint(srv)
	RegisterFilesEndpoints(srv)
	RegisterNotifyEndpoint(srv)
}
