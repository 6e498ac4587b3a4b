package statefile

import (
	"bytes"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/adrg/xdg"
)

const (
	// baseBlockSize is the fixed size of the credential block inside the
	// plaintext payload.
	baseBlockSize = 64

	// minFileSize is the header plus the enciphered credential block.
	minFileSize = headerSize + 2*baseBlockSize

	headerSize = 16

	fieldSep = 0x1B // between credentials, and between file entries
	entrySep = 0x1A // between a file name and its object id
)

var (
	fileMagic = []byte{3, 3, 4, 21, 7, 23, 10, 8}
	headerEnd = []byte{25, 0, 0, 3}
)

var (
	// ErrTooShort is returned for data below the minimum decodable size.
	ErrTooShort = errors.New("statefile: data shorter than minimum file size")

	// ErrBadMagic is returned when the file magic doesn't match.
	ErrBadMagic = errors.New("statefile: unrecognized file magic")

	// ErrBaseTooLarge is returned when the credentials don't fit the
	// fixed credential block.
	ErrBaseTooLarge = errors.New("statefile: credentials exceed the credential block")
)

// File is one indexed drive entry.
type File struct {
	Name     string
	ObjectID string
}

// Index is the decoded contents of a state file: the drive credentials
// and the list of files indexed so far.
type Index struct {
	UID   string
	Token string
	DirID string

	Files []File
}

// Merge appends another index's files, skipping object ids already
// present.
func (ix *Index) Merge(other *Index) int {
	seen := make(map[string]bool, len(ix.Files))
	for _, f := range ix.Files {
		seen[f.ObjectID] = true
	}

	added := 0
	for _, f := range other.Files {
		if seen[f.ObjectID] {
			continue
		}
		seen[f.ObjectID] = true
		ix.Files = append(ix.Files, f)
		added++
	}
	return added
}

// Encode serializes the index into state-file bytes under the given key.
func Encode(ix *Index, key Key) ([]byte, error) {
	if err := key.Validate(); err != nil {
		return nil, err
	}

	base := bytes.Join([][]byte{
		[]byte(ix.UID),
		[]byte(ix.Token),
		[]byte(ix.DirID),
	}, []byte{fieldSep})
	if len(base) > baseBlockSize {
		return nil, ErrBaseTooLarge
	}

	payload := make([]byte, 0, baseBlockSize)
	payload = append(payload, base...)
	for len(payload) < baseBlockSize {
		payload = append(payload, 0)
	}

	entries := make([][]byte, 0, len(ix.Files))
	for _, f := range ix.Files {
		entries = append(entries, bytes.Join(
			[][]byte{[]byte(f.Name), []byte(f.ObjectID)},
			[]byte{entrySep},
		))
	}
	payload = append(payload, bytes.Join(entries, []byte{fieldSep})...)

	words, err := encipher(key, payload)
	if err != nil {
		return nil, err
	}

	out := make([]byte, 0, headerSize+2*len(words))
	out = append(out, fileMagic...)
	out = append(out, key[:]...)
	out = append(out, headerEnd...)
	out = append(out, packWords(words)...)

	return out, nil
}

// Decode parses state-file bytes back into an index. The key is read
// from the file header.
func Decode(data []byte) (*Index, error) {
	if len(data) < minFileSize {
		return nil, ErrTooShort
	}
	if !bytes.Equal(data[:8], fileMagic) {
		return nil, ErrBadMagic
	}

	var key Key
	copy(key[:], data[8:12])

	payload, err := decipher(key, unpackWords(data[headerSize:]))
	if err != nil {
		return nil, err
	}

	base, list := payload[:baseBlockSize], payload[baseBlockSize:]

	ix := &Index{}
	fields := bytes.SplitN(bytes.TrimRight(base, "\x00"), []byte{fieldSep}, 3)
	for i, v := range fields {
		switch i {
		case 0:
			ix.UID = string(v)
		case 1:
			ix.Token = string(v)
		case 2:
			ix.DirID = string(v)
		}
	}

	// Odd payloads pick up a padding byte when enciphered.
	list = bytes.TrimRight(list, "\x00")
	if len(list) == 0 {
		return ix, nil
	}

	for _, raw := range bytes.Split(list, []byte{fieldSep}) {
		parts := bytes.SplitN(raw, []byte{entrySep}, 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("statefile: malformed file entry %q", raw)
		}
		ix.Files = append(ix.Files, File{
			Name:     string(parts[0]),
			ObjectID: string(parts[1]),
		})
	}

	return ix, nil
}

// DefaultPath returns the state file's location under the XDG data
// directory, creating parent directories as needed.
func DefaultPath() (string, error) {
	return xdg.DataFile(filepath.Join("sal-server", "index.bin"))
}
