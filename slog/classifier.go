package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/docindex"
)

// Ensure LoggingClassifier implements docindex.Classifier.
var _ docindex.Classifier = (*LoggingClassifier)(nil)

// LoggingClassifier wraps a Classifier and warns about paths it cannot classify.
type LoggingClassifier struct {
	next   docindex.Classifier
	logger *slog.Logger
}

// NewLoggingClassifier creates a new LoggingClassifier.
func NewLoggingClassifier(next docindex.Classifier, logger *slog.Logger) *LoggingClassifier {
	return &LoggingClassifier{next: next, logger: logger}
}

// Classify delegates to the wrapped classifier and logs the outcome.
func (c *LoggingClassifier) Classify(path string) docindex.Fields {
	begin := time.Now()
	fields := c.next.Classify(path)
	if len(fields) == 0 {
		c.logger.Warn("no product from path", "path", path)
		return fields
	}
	c.logger.Debug("classify",
		"path", path,
		"product", fields[docindex.FieldProduct],
		"release", fields[docindex.FieldRelease],
		"booktitle", fields[docindex.FieldBookTitle],
		"duration", time.Since(begin),
	)
	return fields
}
