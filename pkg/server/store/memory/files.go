// Package memory provides an in-memory implementation of the store
// interfaces, backed by the encrypted state file. It serves deployments
// that run without a database.
package memory

import (
	"sync"
	"time"

	"github.com/saloxy/sal-server/pkg/server/store"
	"github.com/saloxy/sal-server/pkg/statefile"
)

// Ensure FilesStore implements store.FilesStore
var _ store.FilesStore = (*FilesStore)(nil)

// FilesStore implements store.FilesStore over a state-file index.
type FilesStore struct {
	mu    sync.RWMutex
	files []store.File
	byID  map[string]int
}

// NewFilesStore creates a store seeded from an index. A nil index
// starts empty.
func NewFilesStore(ix *statefile.Index) *FilesStore {
	s := &FilesStore{byID: make(map[string]int)}
	if ix != nil {
		for _, f := range ix.Files {
			s.byID[f.ObjectID] = len(s.files)
			s.files = append(s.files, store.File{
				Name:     f.Name,
				ObjectID: f.ObjectID,
			})
		}
	}
	return s
}

// SaveFiles records newly scanned files under a scan session id.
func (s *FilesStore) SaveFiles(sessionID string, files []store.File) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	added := 0
	for _, f := range files {
		if _, ok := s.byID[f.ObjectID]; ok {
			continue
		}
		s.byID[f.ObjectID] = len(s.files)
		s.files = append(s.files, store.File{
			Name:      f.Name,
			ObjectID:  f.ObjectID,
			SessionID: sessionID,
			ScannedAt: now,
		})
		added++
	}
	return added, nil
}

// ListFiles returns the whole index, oldest first.
func (s *FilesStore) ListFiles() ([]store.File, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]store.File, len(s.files))
	copy(out, s.files)
	return out, nil
}

// FileByObjectID retrieves one entry.
func (s *FilesStore) FileByObjectID(objectID string) (*store.File, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i, ok := s.byID[objectID]
	if !ok {
		return nil, store.ErrFileNotFound
	}
	f := s.files[i]
	return &f, nil
}

// DeleteFile drops an entry from the index.
func (s *FilesStore) DeleteFile(objectID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.byID[objectID]
	if !ok {
		return store.ErrFileNotFound
	}

	s.files = append(s.files[:i], s.files[i+1:]...)
	delete(s.byID, objectID)
	for id, j := range s.byID {
		if j > i {
			s.byID[id] = j - 1
		}
	}
	return nil
}

// Snapshot copies the current file list into a state-file index using
// the given credentials, for persisting to disk.
func (s *FilesStore) Snapshot(uid, token, dirID string) *statefile.Index {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ix := &statefile.Index{UID: uid, Token: token, DirID: dirID}
	for _, f := range s.files {
		ix.Files = append(ix.Files, statefile.File{
			Name:     f.Name,
			ObjectID: f.ObjectID,
		})
	}
	return ix
}

// HealthStore reports health for the in-memory backend; it is always
// reachable.
type HealthStore struct{}

// NewHealthStore creates a new HealthStore
func NewHealthStore() *HealthStore {
	return &HealthStore{}
}

// CheckConnectivity verifies backend connectivity
func (s *HealthStore) CheckConnectivity() error {
	return nil
}
