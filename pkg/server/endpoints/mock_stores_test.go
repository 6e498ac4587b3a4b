package endpoints

import (
	"github.com/stretchr/testify/mock"

	"github.com/saloxy/sal-server/pkg/server/store"
)

// MockFilesStore implements store.FilesStore for testing using testify/mock
type MockFilesStore struct {
	mock.Mock
}

func NewMockFilesStore() *MockFilesStore {
	return &MockFilesStore{}
}

func (m *MockFilesStore) SaveFiles(sessionID string, files []store.File) (int, error) {
	args := m.Called(sessionID, files)
	return args.Int(0), args.Error(1)
}

func (m *MockFilesStore) ListFiles() ([]store.File, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]store.File), args.Error(1)
}

func (m *MockFilesStore) FileByObjectID(objectID string) (*store.File, error) {
	args := m.Called(objectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*store.File), args.Error(1)
}

func (m *MockFilesStore) DeleteFile(objectID string) error {
	args := m.Called(objectID)
	return args.Error(0)
}

// MockHealthStore implements store.HealthStore for testing using testify/mock
type MockHealthStore struct {
	mock.Mock
}

func NewMockHealthStore() *MockHealthStore {
	return &MockHealthStore{}
}

func (m *MockHealthStore) CheckConnectivity() error {
	args := m.Called()
	return args.Error(0)
}
