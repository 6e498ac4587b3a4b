package endpoints

import (
	"net/http"
	"os"
	"strings"

	json "github.com/goccy/go-json"

	"github.com/saloxy/sal-server/pkg/server"
	"github.com/saloxy/sal-server/pkg/server/store"
)

// StatusResponse is the JSON form of the status page.
type StatusResponse struct {
	Version string `json:"version"`
	Status  string `json:"status"`
}

// RegisterStatusEndpoints registers the status endpoint
func RegisterStatusEndpoints(s *server.Server) {
	// GET / - Status page (no auth required)
	s.Router.HandleFunc("/", handleStatus(s.HealthStore)).Methods("GET")
}

func handleStatus(healthStore store.HealthStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		version := os.Getenv("SAL_VERSION_DISPLAY")
		if version == "" {
			version = "0.1.0"
		}

		status := "ok"
		code := http.StatusOK
		if healthStore != nil {
			if err := healthStore.CheckConnectivity(); err != nil {
				status = "degraded"
				code = http.StatusServiceUnavailable
			}
		}

		// Check if JSON is requested via Accept header or format query param
		accept := r.Header.Get("Accept")
		format := r.URL.Query().Get("format")
		if format == "json" || strings.Contains(accept, "application/json") {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(code)
			_ = json.NewEncoder(w).Encode(StatusResponse{Version: version, Status: status})
			return
		}

		html := `<!DOCTYPE html>
<html>
  <head>
    <meta charset="utf-8">
    <meta name="viewport" content="width=device-width">
    <title>Sal Status</title>
  </head>
  <body>
    <main>
      <h1>Status</h1>
      <p>Your sal server is running!</p>
      <dl>
        <dt>Version:</dt>
        <dd>` + version + `</dd>
        <dt>Index backend:</dt>
        <dd>` + status + `</dd>
      </dl>
    </main>
  </body>
</html>
`

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(code)
		_, _ = w.Write([]byte(html))
	}
}
