package slog

import (
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/docindex"
)

// Ensure LoggingExtractor implements docindex.Extractor.
var _ docindex.Extractor = (*LoggingExtractor)(nil)

// LoggingExtractor wraps an Extractor with logging.
type LoggingExtractor struct {
	next   docindex.Extractor
	logger *slog.Logger
}

// NewLoggingExtractor creates a new LoggingExtractor.
func NewLoggingExtractor(next docindex.Extractor, logger *slog.Logger) *LoggingExtractor {
	return &LoggingExtractor{next: next, logger: logger}
}

// Extract delegates to the wrapped extractor. Failures are logged at error
// level, successful extractions at debug level.
func (e *LoggingExtractor) Extract(r io.Reader, name string) (fields docindex.Fields, err error) {
	defer func(begin time.Time) {
		if err != nil {
			e.logger.Error("extract",
				"name", name,
				"duration", time.Since(begin),
				"err", err,
			)
			return
		}
		e.logger.Debug("extract",
			"name", name,
			"fields", len(fields),
			"chars", len(fields[docindex.FieldText]),
			"duration", time.Since(begin),
		)
	}(time.Now())
	return e.next.Extract(r, name)
}
