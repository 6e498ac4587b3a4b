package statefile

import (
	"crypto/rand"
	"errors"
)

// Key is the 2x2 matrix cipher key, laid out row-major as [a b; c d].
type Key [4]byte

var (
	// ErrKeyRange is returned when a key byte exceeds the allowed range.
	ErrKeyRange = errors.New("statefile: key bytes must be in 0..=128")

	// ErrKeyDeterminant is returned when the key matrix is not invertible
	// over the integers with a positive determinant.
	ErrKeyDeterminant = errors.New("statefile: key determinant must be positive")

	// ErrOddLength is returned when enciphered data doesn't hold an even
	// number of words.
	ErrOddLength = errors.New("statefile: enciphered data has odd word count")
)

// Validate checks the key invariants: every byte at most 128 and a
// strictly positive determinant, so the matrix inverts without loss.
func (k Key) Validate() error {
	for _, b := range k {
		if b > 128 {
			return ErrKeyRange
		}
	}

	a, b, c, d := uint32(k[0]), uint32(k[1]), uint32(k[2]), uint32(k[3])
	if a*d <= b*c {
		return ErrKeyDeterminant
	}
	return nil
}

// GenerateKey produces a random valid matrix key.
func GenerateKey() (Key, error) {
	buf := make([]byte, 4)
	for {
		if _, err := rand.Read(buf); err != nil {
			return Key{}, err
		}

		var k Key
		for i := range k {
			k[i] = buf[i] % 129
		}
		if k.Validate() == nil {
			return k, nil
		}
	}
}

// encipher maps plaintext bytes pairwise through the key matrix. Each
// input pair becomes a pair of 16-bit words; a trailing odd byte is
// multiplied by the first column alone.
func encipher(key Key, data []byte) ([]uint16, error) {
	if err := key.Validate(); err != nil {
		return nil, err
	}

	a, b, c, d := uint16(key[0]), uint16(key[1]), uint16(key[2]), uint16(key[3])

	out := make([]uint16, 0, len(data)+len(data)%2)
	for i := 0; i+1 < len(data); i += 2 {
		x, y := uint16(data[i]), uint16(data[i+1])
		out = append(out, a*x+b*y, c*x+d*y)
	}

	if len(data)%2 == 1 {
		x := uint16(data[len(data)-1])
		out = append(out, a*x, c*x)
	}

	return out, nil
}

// decipher inverts encipher using the adjugate matrix over the
// determinant. Word count must be even.
func decipher(key Key, words []uint16) ([]byte, error) {
	if err := key.Validate(); err != nil {
		return nil, err
	}
	if len(words)%2 == 1 {
		return nil, ErrOddLength
	}

	a, b, c, d := uint32(key[0]), uint32(key[1]), uint32(key[2]), uint32(key[3])
	det := a*d - b*c

	out := make([]byte, 0, len(words))
	for i := 0; i+1 < len(words); i += 2 {
		u, v := uint32(words[i]), uint32(words[i+1])
		out = append(out, byte((d*u-b*v)/det), byte((a*v-c*u)/det))
	}

	return out, nil
}

// packWords serializes 16-bit words high byte first.
func packWords(words []uint16) []byte {
	out := make([]byte, 0, 2*len(words))
	for _, w := range words {
		out = append(out, byte(w>>8), byte(w&0xff))
	}
	return out
}

// unpackWords reverses packWords. A trailing odd byte becomes its own
// word.
func unpackWords(data []byte) []uint16 {
	out := make([]uint16, 0, (len(data)+1)/2)
	for i := 0; i+1 < len(data); i += 2 {
		out = append(out, uint16(data[i])<<8|uint16(data[i+1]))
	}
	if len(data)%2 == 1 {
		out = append(out, uint16(data[len(data)-1]))
	}
	return out
}
