// Package json encodes index records as flat JSON objects.
package json

import (
	"encoding/json"
	"io"

	"github.com/fwojciec/docindex"
)

// Ensure Encoder implements docindex.Encoder at compile time.
var _ docindex.Encoder = (*Encoder)(nil)

// Encoder writes each record as one UTF-8 JSON object with sorted keys.
type Encoder struct {
	// Indent, when set, pretty-prints the object using this indent string.
	Indent string
}

// NewEncoder creates a new Encoder producing compact output.
func NewEncoder() *Encoder {
	return &Encoder{}
}

// Extension returns ".json".
func (e *Encoder) Extension() string {
	return ".json"
}

// Encode writes rec. Non-ASCII characters and HTML metacharacters are
// written as they are.
func (e *Encoder) Encode(w io.Writer, rec *docindex.Record) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if e.Indent != "" {
		enc.SetIndent("", e.Indent)
	}
	return enc.Encode(rec.Flatten())
}
