package endpoints

import (
	"errors"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/saloxy/sal-server/pkg/audit"
	"github.com/saloxy/sal-server/pkg/drive"
	"github.com/saloxy/sal-server/pkg/server"
	"github.com/saloxy/sal-server/pkg/server/store"
)

// FileResponse is the JSON form of one indexed file.
type FileResponse struct {
	Name      string    `json:"name"`
	ObjectID  string    `json:"object_id"`
	SessionID string    `json:"session_id,omitempty"`
	ScannedAt time.Time `json:"scanned_at"`
}

// ScanResponse reports the outcome of a scan pass.
type ScanResponse struct {
	SessionID string `json:"session_id"`
	Added     int    `json:"added"`
}

// LinkResponse carries a resolved download link.
type LinkResponse struct {
	ObjectID string `json:"object_id"`
	URL      string `json:"url"`
}

// RegisterFilesEndpoints registers the file index endpoints. All of
// them require a bearer token.
func RegisterFilesEndpoints(srv *server.Server) {
	filesStore := srv.FilesStore
	driveClient := srv.Drive

	router := srv.Router.PathPrefix("/files").Subrouter()
	router.Use(srv.Auth.Middleware)

	// GET /files - List the index
	router.HandleFunc(
		"",
		func(writer http.ResponseWriter, request *http.Request) {
			files, err := filesStore.ListFiles()
			if err != nil {
				respondWithError(writer, http.StatusInternalServerError, err.Error())
				return
			}

			response := make([]FileResponse, 0, len(files))
			for _, f := range files {
				response = append(response, FileResponse{
					Name:      f.Name,
					ObjectID:  f.ObjectID,
					SessionID: f.SessionID,
					ScannedAt: f.ScannedAt,
				})
			}
			respondWithJSON(writer, http.StatusOK, response)
		},
	).Methods("GET")

	// POST /files/scan - Drain the drive listing into the index
	router.HandleFunc(
		"/scan",
		func(writer http.ResponseWriter, request *http.Request) {
			sessionID := uuid.NewString()
			added := 0

			for {
				entries, err := driveClient.ScanPage(request.Context())
				if err != nil {
					audit.Log(audit.ScanEvent{
						SessionID:    sessionID,
						Added:        added,
						Success:      false,
						ErrorMessage: err.Error(),
					})
					respondWithError(writer, driveStatus(err), err.Error())
					return
				}
				if len(entries) == 0 {
					break
				}

				page := make([]store.File, 0, len(entries))
				now := time.Now()
				for _, e := range entries {
					page = append(page, store.File{
						Name:      e.Name,
						ObjectID:  e.ObjectID,
						SessionID: sessionID,
						ScannedAt: now,
					})
				}

				n, err := filesStore.SaveFiles(sessionID, page)
				if err != nil {
					audit.Log(audit.ScanEvent{
						SessionID:    sessionID,
						Added:        added,
						Success:      false,
						ErrorMessage: err.Error(),
					})
					respondWithError(writer, http.StatusInternalServerError, err.Error())
					return
				}
				// A pass that adds nothing ends the scan. Without this
				// a listing the delete call fails to advance would be
				// fetched forever.
				if n == 0 {
					break
				}
				added += n
			}

			audit.Log(audit.ScanEvent{SessionID: sessionID, Added: added, Success: true})
			respondWithJSON(writer, http.StatusCreated, ScanResponse{SessionID: sessionID, Added: added})
		},
	).Methods("POST")

	// GET /files/{objectID}/link - Resolve a direct download link
	router.HandleFunc(
		"/{objectID}/link",
		func(writer http.ResponseWriter, request *http.Request) {
			vars := mux.Vars(request)
			objectID, err := url.PathUnescape(vars["objectID"])
			if err != nil {
				respondWithError(writer, http.StatusBadRequest, err.Error())
				return
			}

			if _, err := filesStore.FileByObjectID(objectID); err != nil {
				if errors.Is(err, store.ErrFileNotFound) {
					respondWithError(writer, http.StatusNotFound, "file not found")
					return
				}
				respondWithError(writer, http.StatusInternalServerError, err.Error())
				return
			}

			link, err := driveClient.Link(request.Context(), objectID)
			if err != nil {
				audit.Log(audit.LinkEvent{ObjectID: objectID, Success: false, ErrorMessage: err.Error()})
				respondWithError(writer, driveStatus(err), err.Error())
				return
			}

			audit.Log(audit.LinkEvent{ObjectID: objectID, Success: true})
			respondWithJSON(writer, http.StatusOK, LinkResponse{ObjectID: objectID, URL: link})
		},
	).Methods("GET")

	// DELETE /files/{objectID} - Drop an entry from the index
	router.HandleFunc(
		"/{objectID}",
		func(writer http.ResponseWriter, request *http.Request) {
			vars := mux.Vars(request)
			objectID, err := url.PathUnescape(vars["objectID"])
			if err != nil {
				respondWithError(writer, http.StatusBadRequest, err.Error())
				return
			}

			if err := filesStore.DeleteFile(objectID); err != nil {
				audit.Log(audit.DeleteEvent{ObjectID: objectID, Success: false})
				if errors.Is(err, store.ErrFileNotFound) {
					respondWithError(writer, http.StatusNotFound, "file not found")
					return
				}
				respondWithError(writer, http.StatusInternalServerError, err.Error())
				return
			}

			audit.Log(audit.DeleteEvent{ObjectID: objectID, Success: true})
			writer.WriteHeader(http.StatusNoContent)
		},
	).Methods("DELETE")
}

// driveStatus maps drive errors to HTTP statuses.
func driveStatus(err error) int {
	switch {
	case errors.Is(err, drive.ErrLinkNotFound):
		return http.StatusNotFound
	case errors.Is(err, drive.ErrDenied):
		return http.StatusBadGateway
	case errors.Is(err, drive.ErrBadPayload):
		return http.StatusBadGateway
	default:
		return http.StatusBadGateway
	}
}
