package statefile

import (
	"bytes"
	"testing"
)

func TestKeyValidate(t *testing.T) {
	tests := []struct {
		name string
		key  Key
		err  error
	}{
		{name: "identity-ish key", key: Key{2, 1, 1, 1}, err: nil},
		{name: "known good key", key: Key{127, 97, 112, 128}, err: nil},
		{name: "byte out of range", key: Key{200, 1, 1, 1}, err: ErrKeyRange},
		{name: "zero determinant", key: Key{2, 2, 2, 2}, err: ErrKeyDeterminant},
		{name: "negative determinant", key: Key{1, 2, 2, 1}, err: ErrKeyDeterminant},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.key.Validate(); err != tt.err {
				t.Fatalf("Validate() = %v, want %v", err, tt.err)
			}
		})
	}
}

func TestGenerateKey(t *testing.T) {
	for i := 0; i < 32; i++ {
		key, err := GenerateKey()
		if err != nil {
			t.Fatalf("GenerateKey failed: %v", err)
		}
		if err := key.Validate(); err != nil {
			t.Fatalf("generated key %v is invalid: %v", key, err)
		}
	}
}

func TestEncipherRoundTrip(t *testing.T) {
	key := Key{127, 97, 112, 128}

	tests := []struct {
		name string
		data []byte
	}{
		{name: "even length", data: []byte("hello world!")},
		{name: "odd length", data: []byte("hello")},
		{name: "single byte", data: []byte{0xff}},
		{name: "zeros", data: make([]byte, 64)},
		{name: "all byte values", data: allBytes()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			words, err := encipher(key, tt.data)
			if err != nil {
				t.Fatalf("encipher failed: %v", err)
			}
			if len(words)%2 != 0 {
				t.Fatalf("encipher produced odd word count %d", len(words))
			}

			got, err := decipher(key, words)
			if err != nil {
				t.Fatalf("decipher failed: %v", err)
			}

			// Odd inputs gain one padding byte through the cipher.
			want := tt.data
			if len(tt.data)%2 == 1 {
				want = append(append([]byte{}, tt.data...), 0)
			}
			if !bytes.Equal(got, want) {
				t.Fatalf("round trip mismatch: got %v, want %v", got, want)
			}
		})
	}
}

func TestDecipherOddWordCount(t *testing.T) {
	key := Key{2, 1, 1, 1}
	if _, err := decipher(key, []uint16{1, 2, 3}); err != ErrOddLength {
		t.Fatalf("expected ErrOddLength, got %v", err)
	}
}

func TestPackWordsRoundTrip(t *testing.T) {
	words := []uint16{0, 1, 255, 256, 0x1234, 0xffff}
	packed := packWords(words)
	if len(packed) != 2*len(words) {
		t.Fatalf("packed length = %d, want %d", len(packed), 2*len(words))
	}

	got := unpackWords(packed)
	if len(got) != len(words) {
		t.Fatalf("unpacked %d words, want %d", len(got), len(words))
	}
	for i := range words {
		if got[i] != words[i] {
			t.Fatalf("word %d = %d, want %d", i, got[i], words[i])
		}
	}
}

func allBytes() []byte {
	out := make([]byte, 256)
	for i := range out {
		out[i] = byte(i)
	}
	return out
}
