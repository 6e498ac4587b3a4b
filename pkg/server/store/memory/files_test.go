package memory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saloxy/sal-server/pkg/server/store"
	"github.com/saloxy/sal-server/pkg/statefile"
)

func TestSeedFromIndex(t *testing.T) {
	s := NewFilesStore(&statefile.Index{Files: []statefile.File{
		{Name: "a.txt", ObjectID: "obj-a"},
		{Name: "b.txt", ObjectID: "obj-b"},
	}})

	files, err := s.ListFiles()
	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Equal(t, "obj-a", files[0].ObjectID)
}

func TestSaveFilesSkipsDuplicates(t *testing.T) {
	s := NewFilesStore(nil)

	added, err := s.SaveFiles("sess-1", []store.File{
		{Name: "a.txt", ObjectID: "obj-a"},
		{Name: "b.txt", ObjectID: "obj-b"},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, added)

	added, err = s.SaveFiles("sess-2", []store.File{
		{Name: "a.txt", ObjectID: "obj-a"},
		{Name: "c.txt", ObjectID: "obj-c"},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, added)

	files, err := s.ListFiles()
	require.NoError(t, err)
	require.Len(t, files, 3)
	assert.Equal(t, "sess-1", files[0].SessionID)
	assert.Equal(t, "sess-2", files[2].SessionID)
}

func TestFileByObjectID(t *testing.T) {
	s := NewFilesStore(nil)
	_, err := s.SaveFiles("sess", []store.File{{Name: "a", ObjectID: "obj-a"}})
	require.NoError(t, err)

	f, err := s.FileByObjectID("obj-a")
	require.NoError(t, err)
	assert.Equal(t, "a", f.Name)

	_, err = s.FileByObjectID("missing")
	assert.ErrorIs(t, err, store.ErrFileNotFound)
}

func TestDeleteFile(t *testing.T) {
	s := NewFilesStore(nil)
	_, err := s.SaveFiles("sess", []store.File{
		{Name: "a", ObjectID: "obj-a"},
		{Name: "b", ObjectID: "obj-b"},
		{Name: "c", ObjectID: "obj-c"},
	})
	require.NoError(t, err)

	require.NoError(t, s.DeleteFile("obj-b"))
	assert.ErrorIs(t, s.DeleteFile("obj-b"), store.ErrFileNotFound)

	files, err := s.ListFiles()
	require.NoError(t, err)
	require.Len(t, files, 2)

	// Index stays consistent after the shift.
	f, err := s.FileByObjectID("obj-c")
	require.NoError(t, err)
	assert.Equal(t, "c", f.Name)
}

func TestSnapshot(t *testing.T) {
	s := NewFilesStore(nil)
	_, err := s.SaveFiles("sess", []store.File{{Name: "a", ObjectID: "obj-a"}})
	require.NoError(t, err)

	ix := s.Snapshot("uid", "tok", "dir")
	assert.Equal(t, "uid", ix.UID)
	assert.Equal(t, "tok", ix.Token)
	require.Len(t, ix.Files, 1)
	assert.Equal(t, "obj-a", ix.Files[0].ObjectID)
}
