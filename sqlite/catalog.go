package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/fwojciec/docindex"
)

// Compile-time interface verification.
var _ docindex.Catalog = (*Catalog)(nil)

// Catalog implements docindex.Catalog using SQLite.
type Catalog struct {
	db *DB

	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time
}

// NewCatalog creates a new Catalog.
func NewCatalog(db *DB) *Catalog {
	return &Catalog{db: db, Now: time.Now}
}

// FindEntry retrieves the catalog entry for a URL.
func (c *Catalog) FindEntry(ctx context.Context, url string) (*docindex.CatalogEntry, error) {
	var e docindex.CatalogEntry
	var modified, indexedAt string

	err := c.db.QueryRowContext(ctx, `
		SELECT url, path, hash, size, modified, title, product, "release", booktitle, indexed_at
		FROM documents
		WHERE url = ?
	`, url).Scan(&e.URL, &e.Path, &e.Hash, &e.Size, &modified, &e.Title,
		&e.Product, &e.Release, &e.BookTitle, &indexedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, docindex.Errorf(docindex.ENOTFOUND, "catalog entry not found: %s", url)
	}
	if err != nil {
		return nil, err
	}

	if e.ModTime, err = parseRFC3339(modified, "modified"); err != nil {
		return nil, err
	}
	if e.IndexedAt, err = parseRFC3339(indexedAt, "indexed_at"); err != nil {
		return nil, err
	}

	return &e, nil
}

// UpsertEntry creates or replaces the entry for e.URL and stamps IndexedAt.
func (c *Catalog) UpsertEntry(ctx context.Context, e *docindex.CatalogEntry) error {
	if err := e.Validate(); err != nil {
		return err
	}

	e.IndexedAt = c.Now().UTC()

	_, err := c.db.ExecContext(ctx, `
		INSERT INTO documents (url, path, hash, size, modified, title, product, "release", booktitle, indexed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(url) DO UPDATE SET
			path = excluded.path,
			hash = excluded.hash,
			size = excluded.size,
			modified = excluded.modified,
			title = excluded.title,
			product = excluded.product,
			"release" = excluded."release",
			booktitle = excluded.booktitle,
			indexed_at = excluded.indexed_at
	`, e.URL, e.Path, e.Hash, e.Size, formatTime(e.ModTime), e.Title,
		e.Product, e.Release, e.BookTitle, formatTime(e.IndexedAt))

	return err
}

// Facets counts classified entries by field, most frequent first.
// Entries with an empty value are not counted.
func (c *Catalog) Facets(ctx context.Context, field string) ([]docindex.Facet, error) {
	// Column names match the field names; only known fields reach the query.
	if !slices.Contains(docindex.FacetFields, field) {
		return nil, docindex.Errorf(docindex.EINVALID, "unknown facet field %q", field)
	}

	rows, err := c.db.QueryContext(ctx, fmt.Sprintf(`
		SELECT "%[1]s", COUNT(*)
		FROM documents
		WHERE "%[1]s" != ''
		GROUP BY "%[1]s"
		ORDER BY COUNT(*) DESC, "%[1]s" ASC
	`, field))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var facets []docindex.Facet
	for rows.Next() {
		var f docindex.Facet
		if err := rows.Scan(&f.Value, &f.Count); err != nil {
			return nil, err
		}
		facets = append(facets, f)
	}

	return facets, rows.Err()
}
