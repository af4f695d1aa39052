// Package store defines the document store the import stage writes
// destination records into.
package store

import "context"

// Document is one destination record as stored: a generated id plus a
// flat field map. Vectors are serialized into the field map by the
// caller.
type Document struct {
	ID     string
	Fields map[string]string
}

// DocumentStore is a bulk-writable document backend.
type DocumentStore interface {
	// GenerateID returns a new unique document id.
	GenerateID() string
	// BatchWrite persists all documents atomically enough for the
	// pipeline: either the whole batch is committed or an error is
	// returned and none of the batch should be counted as written.
	BatchWrite(ctx context.Context, docs []Document) error
	Ping(ctx context.Context) error
	Close()
}
