package docindex

import (
	"context"
	"io"
)

// Encoder serializes a record into a search-index ingestion format.
type Encoder interface {
	// Extension is the file name extension for encoded records, e.g. ".json".
	Extension() string

	Encode(w io.Writer, rec *Record) error
}

// RecordStore persists records with atomic semantics.
// Save writes to a temporary location; Commit makes changes permanent;
// Abort discards pending changes.
type RecordStore interface {
	Save(ctx context.Context, rec *Record) error
	Commit() error
	Abort() error
}
