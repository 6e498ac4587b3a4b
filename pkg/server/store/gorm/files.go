package gorm

import (
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/saloxy/sal-server/pkg/model"
	"github.com/saloxy/sal-server/pkg/server/store"
)

// Ensure FilesStore implements store.FilesStore
var _ store.FilesStore = (*FilesStore)(nil)

// FilesStore implements store.FilesStore using GORM
type FilesStore struct {
	db *gorm.DB
}

// NewFilesStore creates a new FilesStore
func NewFilesStore(db *gorm.DB) *FilesStore {
	return &FilesStore{db: db}
}

// SaveFiles records newly scanned files under a scan session id.
// Duplicate object ids are skipped via the unique index.
func (s *FilesStore) SaveFiles(sessionID string, files []store.File) (int, error) {
	if len(files) == 0 {
		return 0, nil
	}

	now := time.Now()
	rows := make([]model.File, 0, len(files))
	for _, f := range files {
		rows = append(rows, model.File{
			Name:      f.Name,
			ObjectID:  f.ObjectID,
			SessionID: sessionID,
			ScannedAt: now,
		})
	}

	tx := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "object_id"}},
		DoNothing: true,
	}).Create(&rows)
	if tx.Error != nil {
		return 0, tx.Error
	}
	return int(tx.RowsAffected), nil
}

// ListFiles returns the whole index, oldest first.
func (s *FilesStore) ListFiles() ([]store.File, error) {
	var rows []model.File
	if err := s.db.Order("id asc").Find(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]store.File, 0, len(rows))
	for _, r := range rows {
		out = append(out, toStoreFile(r))
	}
	return out, nil
}

// FileByObjectID retrieves one entry.
func (s *FilesStore) FileByObjectID(objectID string) (*store.File, error) {
	var row model.File
	tx := s.db.Where(&model.File{ObjectID: objectID}).First(&row)
	if tx.Error != nil {
		if errors.Is(tx.Error, gorm.ErrRecordNotFound) {
			return nil, store.ErrFileNotFound
		}
		return nil, tx.Error
	}

	f := toStoreFile(row)
	return &f, nil
}

// DeleteFile drops an entry from the index.
func (s *FilesStore) DeleteFile(objectID string) error {
	tx := s.db.Where("object_id = ?", objectID).Delete(&model.File{})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return store.ErrFileNotFound
	}
	return nil
}

func toStoreFile(r model.File) store.File {
	return store.File{
		Name:      r.Name,
		ObjectID:  r.ObjectID,
		SessionID: r.SessionID,
		ScannedAt: r.ScannedAt,
	}
}

// HealthStore provides health check operations using GORM
type HealthStore struct {
	db *gorm.DB
}

// NewHealthStore creates a new HealthStore
func NewHealthStore(db *gorm.DB) *HealthStore {
	return &HealthStore{db: db}
}

// CheckConnectivity verifies database connectivity
func (s *HealthStore) CheckConnectivity() error {
	return s.db.Exec("SELECT 1").Error
}
