package endpoints

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/saloxy/sal-server/pkg/config"
	"github.com/saloxy/sal-server/pkg/drive"
	"github.com/saloxy/sal-server/pkg/notice"
	"github.com/saloxy/sal-server/pkg/server"
	"github.com/saloxy/sal-server/pkg/server/store"
)

const testAPIKey = "test-api-key"

func newTestServer(
	t *testing.T,
	filesStore store.FilesStore,
	healthStore store.HealthStore,
	driveClient *drive.Client,
	sender *notice.Notice,
) *server.Server {
	t.Helper()

	cfg := &config.Config{
		BindAddress:  "127.0.0.1",
		Port:         4998,
		Workers:      4,
		TokenTTL:     60,
		ScanPageSize: 4,
		APIKey:       testAPIKey,
	}

	srv := server.NewServer(filesStore, healthStore, driveClient, sender, cfg)
	RegisterAll(srv)
	return srv
}

func authorize(t *testing.T, srv *server.Server, req *http.Request) {
	t.Helper()

	token, err := srv.Auth.IssueToken("admin")
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	req.Header.Set("Authorization", fmt.Sprintf("Token token=%q", token))
}
