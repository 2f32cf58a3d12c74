package mock

import (
	"context"
	"io"

	"github.com/fwojciec/docindex"
)

var _ docindex.Source = (*Source)(nil)

// Source is a mock implementation of docindex.Source.
type Source struct {
	FilesFn func(ctx context.Context) ([]*docindex.File, error)
	OpenFn  func(file *docindex.File) (io.ReadCloser, error)
}

func (s *Source) Files(ctx context.Context) ([]*docindex.File, error) {
	return s.FilesFn(ctx)
}

func (s *Source) Open(file *docindex.File) (io.ReadCloser, error) {
	return s.OpenFn(file)
}
