// Package docindex turns a directory tree of HTML and plain-text
// documentation into flat metadata records for bulk ingestion into a
// search index. Each record carries the display title, indexable body text,
// a priority text excerpt drawn from headings and metadata, and the
// product, release, and book inferred from the document's path.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, sqlite/, etree/).
package docindex
