package mock

import (
	"context"
	"io"

	"github.com/fwojciec/docindex"
)

var _ docindex.RecordStore = (*RecordStore)(nil)

// RecordStore is a mock implementation of docindex.RecordStore.
type RecordStore struct {
	SaveFn   func(ctx context.Context, rec *docindex.Record) error
	CommitFn func() error
	AbortFn  func() error
}

func (s *RecordStore) Save(ctx context.Context, rec *docindex.Record) error {
	return s.SaveFn(ctx, rec)
}

func (s *RecordStore) Commit() error {
	return s.CommitFn()
}

func (s *RecordStore) Abort() error {
	return s.AbortFn()
}

var _ docindex.Encoder = (*Encoder)(nil)

// Encoder is a mock implementation of docindex.Encoder.
type Encoder struct {
	ExtensionFn func() string
	EncodeFn    func(w io.Writer, rec *docindex.Record) error
}

func (e *Encoder) Extension() string {
	return e.ExtensionFn()
}

func (e *Encoder) Encode(w io.Writer, rec *docindex.Record) error {
	return e.EncodeFn(w, rec)
}
