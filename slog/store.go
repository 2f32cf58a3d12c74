package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/docindex"
)

// Ensure LoggingRecordStore implements docindex.RecordStore.
var _ docindex.RecordStore = (*LoggingRecordStore)(nil)

// LoggingRecordStore wraps a RecordStore with logging.
type LoggingRecordStore struct {
	next   docindex.RecordStore
	logger *slog.Logger
}

// NewLoggingRecordStore creates a new LoggingRecordStore.
func NewLoggingRecordStore(next docindex.RecordStore, logger *slog.Logger) *LoggingRecordStore {
	return &LoggingRecordStore{next: next, logger: logger}
}

// Save delegates to the wrapped store and logs the written record.
func (s *LoggingRecordStore) Save(ctx context.Context, rec *docindex.Record) (err error) {
	defer func(begin time.Time) {
		if err != nil {
			s.logger.Error("save record",
				"path", rec.Path,
				"url", rec.URL,
				"err", err,
			)
			return
		}
		s.logger.Info("save record",
			"path", rec.Path,
			"url", rec.URL,
			"size", rec.Size,
			"duration", time.Since(begin),
		)
	}(time.Now())
	return s.next.Save(ctx, rec)
}

// Commit delegates to the wrapped store and logs the outcome.
func (s *LoggingRecordStore) Commit() (err error) {
	defer func(begin time.Time) {
		s.logger.Info("commit records",
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Commit()
}

// Abort delegates to the wrapped store and logs the outcome.
func (s *LoggingRecordStore) Abort() (err error) {
	defer func() {
		s.logger.Warn("abort records", "err", err)
	}()
	return s.next.Abort()
}
