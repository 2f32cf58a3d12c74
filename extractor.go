package docindex

import "io"

// Extractor turns one document into title, body text, priority text, and
// any metadata the document declares about itself.
type Extractor interface {
	// Extract reads a document and returns its fields. The name is the
	// document's file name; extractors without an in-document title use it.
	// Returns EINVALID if the document has no extractable structure.
	Extract(r io.Reader, name string) (Fields, error)
}
