// Package server provides the HTTP server for the sal API.
//
// The server listens on port 4998 by default and uses gorilla/mux for
// routing. Requests pass through a logging handler, a recovery
// middleware and an in-flight limiter before reaching the router.
//
// # Server Setup
//
//	srv := server.NewServer(filesStore, healthStore, driveClient, sender, cfg)
//	endpoints.RegisterAll(srv)
//	if err := srv.Start(); err != nil {
//	    log.Fatal(err)
//	}
//
// # Endpoints
//
// API endpoints are registered via the endpoints subpackage:
//
//   - / - status page
//   - /authn/{login}/authenticate - API key to bearer token exchange
//   - /files - index listing and scanning
//   - /files/{objectID}/link - download link resolution
//   - /notify - push notifications
package server
