// Package store provides storage abstractions for the sal server.
//
// The endpoints depend on the FilesStore interface rather than a
// concrete backend. Two implementations exist: a GORM/PostgreSQL store
// in the gorm subpackage, and an in-memory store in the memory
// subpackage backed by the encrypted state file.
package store
