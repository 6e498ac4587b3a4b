package store

import (
	"errors"
	"time"
)

// ErrFileNotFound is returned when an object id isn't in the index.
var ErrFileNotFound = errors.New("file not found")

// File is one indexed drive entry.
type File struct {
	Name      string
	ObjectID  string
	SessionID string
	ScannedAt time.Time
}

// FilesStore abstracts index storage operations
type FilesStore interface {
	// SaveFiles records newly scanned files under a scan session id.
	// Entries whose object id is already indexed are skipped; the
	// number actually stored is returned.
	SaveFiles(sessionID string, files []File) (int, error)

	// ListFiles returns the whole index, oldest first.
	ListFiles() ([]File, error)

	// FileByObjectID retrieves one entry.
	// Returns ErrFileNotFound if the object id isn't indexed.
	FileByObjectID(objectID string) (*File, error)

	// DeleteFile drops an entry from the index.
	// Returns ErrFileNotFound if the object id isn't indexed.
	DeleteFile(objectID string) error
}

// HealthStore provides health check operations
type HealthStore interface {
	// CheckConnectivity verifies backend connectivity
	CheckConnectivity() error
}
