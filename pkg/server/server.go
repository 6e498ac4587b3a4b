package server

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"github.com/saloxy/sal-server/pkg/config"
	"github.com/saloxy/sal-server/pkg/drive"
	"github.com/saloxy/sal-server/pkg/notice"
	"github.com/saloxy/sal-server/pkg/server/middleware"
	"github.com/saloxy/sal-server/pkg/server/store"
)

type Server struct {
	FilesStore  store.FilesStore
	HealthStore store.HealthStore
	Drive       *drive.Client
	Notice      *notice.Notice
	Config      *config.Config
	Auth        *middleware.TokenAuthenticator
	Router      *mux.Router
	srv         *http.Server
}

func NewServer(
	filesStore store.FilesStore,
	healthStore store.HealthStore,
	driveClient *drive.Client,
	sender *notice.Notice,
	cfg *config.Config,
) *Server {

	router := mux.NewRouter().UseEncodedPath()
	auth := middleware.NewTokenAuthenticator([]byte(cfg.APIKey), cfg.TokenLifetime())

	handler := handlers.LoggingHandler(
		os.Stdout,
		middleware.Limit(cfg.Workers, middleware.Recover(router)),
	)
	srv := &http.Server{
		Handler: handler,
		Addr:    cfg.Addr(),
		// Good practice: enforce timeouts for servers you create!
		WriteTimeout: 15 * time.Second,
		ReadTimeout:  15 * time.Second,
	}

	return &Server{
		FilesStore:  filesStore,
		HealthStore: healthStore,
		Drive:       driveClient,
		Notice:      sender,
		Config:      cfg,
		Auth:        auth,
		Router:      router,
		srv:         srv,
	}
}

func (s *Server) Start() error {
	return s.srv.ListenAndServe()
}

// Shutdown stops the listener and waits for in-flight requests to
// finish, up to the context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}
