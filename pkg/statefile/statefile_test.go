package statefile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testIndex() *Index {
	return &Index{
		UID:   "290001234",
		Token: "b8f391d3726fd0b2",
		DirID: "940555592",
		Files: []File{
			{Name: "notes.pdf", ObjectID: "obj-a1"},
			{Name: "报告.docx", ObjectID: "obj-b2"},
		},
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	key := Key{127, 97, 112, 128}

	ix := testIndex()
	data, err := Encode(ix, key)
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(data), minFileSize)

	got, err := Decode(data)
	require.NoError(t, err)

	assert.Equal(t, ix.UID, got.UID)
	assert.Equal(t, ix.Token, got.Token)
	assert.Equal(t, ix.DirID, got.DirID)
	assert.Equal(t, ix.Files, got.Files)
}

func TestEncodeDecodeEmptyFileList(t *testing.T) {
	key := Key{2, 1, 1, 1}

	ix := &Index{UID: "u", Token: "t", DirID: ""}
	data, err := Encode(ix, key)
	require.NoError(t, err)

	got, err := Decode(data)
	require.NoError(t, err)
	assert.Empty(t, got.Files)
	assert.Equal(t, "u", got.UID)
	assert.Equal(t, "t", got.Token)
	assert.Equal(t, "", got.DirID)
}

func TestEncodeRejectsOversizedCredentials(t *testing.T) {
	key := Key{2, 1, 1, 1}

	ix := &Index{
		UID:   string(make([]byte, 40)),
		Token: string(make([]byte, 40)),
	}
	_, err := Encode(ix, key)
	assert.ErrorIs(t, err, ErrBaseTooLarge)
}

func TestEncodeRejectsInvalidKey(t *testing.T) {
	_, err := Encode(testIndex(), Key{1, 2, 2, 1})
	assert.ErrorIs(t, err, ErrKeyDeterminant)
}

func TestDecodeRejectsShortData(t *testing.T) {
	_, err := Decode(make([]byte, minFileSize-1))
	assert.ErrorIs(t, err, ErrTooShort)
}

func TestDecodeRejectsBadMagic(t *testing.T) {
	key := Key{2, 1, 1, 1}
	data, err := Encode(testIndex(), key)
	require.NoError(t, err)

	data[0] ^= 0xff
	_, err = Decode(data)
	assert.ErrorIs(t, err, ErrBadMagic)
}

func TestMerge(t *testing.T) {
	ix := testIndex()

	added := ix.Merge(&Index{Files: []File{
		{Name: "notes.pdf", ObjectID: "obj-a1"}, // duplicate
		{Name: "new.txt", ObjectID: "obj-c3"},
	}})

	assert.Equal(t, 1, added)
	require.Len(t, ix.Files, 3)
	assert.Equal(t, "obj-c3", ix.Files[2].ObjectID)
}

func TestMergeIsIdempotent(t *testing.T) {
	ix := testIndex()
	other := &Index{Files: []File{{Name: "x", ObjectID: "obj-x"}}}

	assert.Equal(t, 1, ix.Merge(other))
	assert.Equal(t, 0, ix.Merge(other))
	assert.Len(t, ix.Files, 3)
}
