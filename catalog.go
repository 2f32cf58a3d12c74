package docindex

import (
	"context"
	"time"
)

// CatalogEntry remembers what was indexed for a URL on a previous run.
type CatalogEntry struct {
	URL       string    `json:"url"`
	Path      string    `json:"path"`
	Hash      string    `json:"hash"`
	Size      int64     `json:"size"`
	ModTime   time.Time `json:"modTime"`
	Title     string    `json:"title"`
	Product   string    `json:"product"`
	Release   string    `json:"release"`
	BookTitle string    `json:"booktitle"`
	IndexedAt time.Time `json:"indexedAt"`
}

// Validate returns an error if the entry contains invalid fields.
func (e *CatalogEntry) Validate() error {
	if e.URL == "" {
		return Errorf(EINVALID, "catalog entry URL required")
	}
	return nil
}

// Unchanged reports whether the file described by size, modTime and hash is
// the same file the entry was recorded from.
func (e *CatalogEntry) Unchanged(size int64, modTime time.Time, hash string) bool {
	return e.Size == size && e.ModTime.Equal(modTime) && e.Hash == hash
}

// Facet is the number of catalog entries sharing one value of a field.
type Facet struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

// FacetFields lists the fields that Catalog.Facets accepts.
var FacetFields = []string{FieldProduct, FieldRelease, FieldBookTitle}

// Catalog keeps per-URL state across runs so unchanged files can be skipped,
// and summarizes the indexed corpus by classification.
type Catalog interface {
	// FindEntry returns the entry for url.
	// Returns ENOTFOUND if the URL has never been indexed.
	FindEntry(ctx context.Context, url string) (*CatalogEntry, error)

	// UpsertEntry creates or replaces the entry for e.URL.
	UpsertEntry(ctx context.Context, e *CatalogEntry) error

	// Facets counts entries grouped by field, one of FacetFields.
	// Returns EINVALID for any other field.
	Facets(ctx context.Context, field string) ([]Facet, error)
}
