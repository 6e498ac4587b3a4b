// Package statefile implements the encrypted binary format used to
// carry the drive index between runs.
//
// A state file holds the drive credentials (uid, token, directory id)
// and the list of indexed files. The payload is enciphered with a 2x2
// integer matrix keyed by four bytes embedded in the file header, then
// packed as big-endian 16-bit words.
//
// # Layout
//
//	[0, 8)    file magic
//	[8, 12)   matrix key
//	[12, 16)  end-of-header marker
//	[16, ..)  enciphered payload
//
// The first 64 plaintext bytes are the credential block (fields joined
// by 0x1B, zero padded); everything after is the file list, entries
// joined by 0x1B with name and object id split by 0x1A.
//
// # Usage
//
//	key, err := statefile.GenerateKey()
//	data, err := statefile.Encode(index, key)
//	index, err := statefile.Decode(data)
package statefile
