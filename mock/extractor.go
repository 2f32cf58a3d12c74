package mock

import (
	"io"

	"github.com/fwojciec/docindex"
)

var _ docindex.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of docindex.Extractor.
type Extractor struct {
	ExtractFn func(r io.Reader, name string) (docindex.Fields, error)
}

func (e *Extractor) Extract(r io.Reader, name string) (docindex.Fields, error) {
	return e.ExtractFn(r, name)
}
