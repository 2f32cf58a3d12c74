package docindex

import (
	"time"
)

// Field names produced by extraction, classification, and the indexer.
// Harvested meta elements add further keys named after the meta name.
const (
	FieldTitle        = "title"
	FieldText         = "text"
	FieldPriorityText = "ptext"
	FieldLang         = "lang"
	FieldDescription  = "description"
	FieldKeywords     = "keywords"

	FieldProduct   = "product"
	FieldRelease   = "release"
	FieldBookTitle = "booktitle"

	FieldID   = "id"
	FieldURL  = "url"
	FieldDate = "date"
	FieldSize = "size"
	FieldHash = "hash"
)

// DateLayout is the W3C datetime format used for the date field.
const DateLayout = "2006-01-02T15:04:05"

// Fields is a flat mapping of metadata names to whitespace-normalized values.
type Fields map[string]string

// Merge returns a new Fields holding f overlaid with other.
// On key collision the value from other wins.
func (f Fields) Merge(other Fields) Fields {
	merged := make(Fields, len(f)+len(other))
	for k, v := range f {
		merged[k] = v
	}
	for k, v := range other {
		merged[k] = v
	}
	return merged
}

// Record is the unit handed to the serialization sink: one per input file.
type Record struct {
	ID   string
	URL  string
	Path string // relative to the input root, slash separated
	Date time.Time
	Size int64
	Hash string

	// Fields holds the merged extraction and classification output.
	Fields Fields
}

// Validate returns an error if the record contains invalid fields.
func (r *Record) Validate() error {
	if r.URL == "" {
		return Errorf(EINVALID, "record URL required")
	}
	if r.Path == "" {
		return Errorf(EINVALID, "record path required")
	}
	return nil
}

// Flatten returns the record as a single flat object. The url, date, size,
// id and hash keys are written last and take precedence over harvested
// meta names that happen to collide with them.
func (r *Record) Flatten() map[string]any {
	flat := make(map[string]any, len(r.Fields)+5)
	for k, v := range r.Fields {
		flat[k] = v
	}
	flat[FieldURL] = r.URL
	if !r.Date.IsZero() {
		flat[FieldDate] = r.Date.UTC().Format(DateLayout)
	}
	flat[FieldSize] = r.Size
	if r.ID != "" {
		flat[FieldID] = r.ID
	}
	if r.Hash != "" {
		flat[FieldHash] = r.Hash
	}
	return flat
}
