// Package model defines the database models for the sal server.
//
// The only persistent entity is the indexed drive file. Each row maps
// one drive object id to its name, along with the scan session that
// surfaced it.
package model
