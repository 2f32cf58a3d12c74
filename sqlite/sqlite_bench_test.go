package sqlite_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fwojciec/docindex"
	"github.com/fwojciec/docindex/sqlite"
	"github.com/stretchr/testify/require"
)

// BenchmarkWALMode compares write performance between WAL and rollback journal modes.
// This simulates an indexing run: upserting one catalog entry per file.
func BenchmarkWALMode(b *testing.B) {
	b.Run("rollback_journal", func(b *testing.B) {
		benchmarkUpserts(b, "DELETE")
	})

	b.Run("wal_mode", func(b *testing.B) {
		benchmarkUpserts(b, "WAL")
	})
}

func benchmarkUpserts(b *testing.B, journalMode string) {
	b.Helper()

	dbPath := filepath.Join(b.TempDir(), "bench.db")

	db := sqlite.NewDB(dbPath)
	require.NoError(b, db.Open())

	ctx := context.Background()
	_, err := db.ExecContext(ctx, "PRAGMA journal_mode = "+journalMode)
	require.NoError(b, err)

	defer func() {
		db.Close()
		os.Remove(dbPath + "-wal")
		os.Remove(dbPath + "-shm")
	}()

	catalog := sqlite.NewCatalog(db)
	modTime := time.Now()

	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		entry := &docindex.CatalogEntry{
			URL:       fmt.Sprintf("/HDPDocuments/HDP2/HDP-2.3.0/bk_security/page%d.html", i),
			Path:      fmt.Sprintf("HDPDocuments/HDP2/HDP-2.3.0/bk_security/page%d.html", i),
			Hash:      fmt.Sprintf("%016x", i),
			Size:      int64(i),
			ModTime:   modTime,
			Title:     fmt.Sprintf("Page %d", i),
			Product:   "Data Platform",
			Release:   "2.3.0.0",
			BookTitle: "Security Guide",
		}
		if err := catalog.UpsertEntry(ctx, entry); err != nil {
			b.Fatal(err)
		}
	}
}
