// Package index builds search index records from a tree of documentation
// files. It coordinates discovery, extraction, classification and storage.
package index

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync/atomic"

	"github.com/fwojciec/docindex"
	"github.com/fwojciec/docindex/bloom"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

// DefaultConcurrency is the number of files processed at once when
// Indexer.Concurrency is not set.
const DefaultConcurrency = 4

// Indexer turns every file of a Source into one stored record.
type Indexer struct {
	Source docindex.Source

	// Extractors maps a file name extension to the extractor for it.
	// Files with other extensions are skipped.
	Extractors map[string]docindex.Extractor

	Classifier docindex.Classifier
	Store      docindex.RecordStore

	// Catalog, when set, makes runs incremental: files whose size,
	// modification time and content hash match the catalog are not stored
	// again. Entries are written only once the store has committed, so an
	// aborted run leaves the catalog as it was.
	Catalog docindex.Catalog

	// Duplicates, when set, counts files whose content was already seen
	// during the run.
	Duplicates *bloom.Filter

	// Limiter, when set, throttles how fast files are dispatched.
	Limiter *rate.Limiter

	// URL returns the web URL of a file. Defaults to its relative path
	// under "/".
	URL func(file *docindex.File) string

	Logger      *slog.Logger
	Concurrency int
}

// Result holds the outcome of an indexing run.
type Result struct {
	Indexed      int
	Skipped      int
	Unchanged    int
	Failed       int
	Untitled     int
	Unclassified int
	Duplicates   int
	Bytes        int64
}

// ProgressEvent reports progress during an indexing run.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	Path      string
	Error     error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressUnchanged
	ProgressSkipped
	ProgressFailed
	ProgressFinished
)

// ProgressFunc is a callback for reporting indexing progress.
type ProgressFunc func(event ProgressEvent)

// fileStatus is what happened to one file.
type fileStatus int

const (
	statusIndexed fileStatus = iota
	statusUnchanged
	statusSkipped
	statusFailed
)

// fileResult holds the outcome of processing a single file.
type fileResult struct {
	file         *docindex.File
	status       fileStatus
	untitled     bool
	unclassified bool
	duplicate    bool
	entry        *docindex.CatalogEntry
	err          error
}

// Run indexes every file from the source and commits the store. Failures
// on individual files are counted and reported but do not stop the run.
// If the source cannot be listed or ctx is cancelled, the store is aborted
// and an error is returned.
func (ix *Indexer) Run(ctx context.Context, progress ProgressFunc) (*Result, error) {
	files, err := ix.Source.Files(ctx)
	if err != nil {
		return nil, ix.abort(fmt.Errorf("listing files: %w", err))
	}

	concurrency := ix.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	total := len(files)
	if progress != nil {
		progress(ProgressEvent{Type: ProgressStarted, Total: total})
	}

	resultCh := make(chan fileResult, concurrency)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	go func() {
		defer close(resultCh)
		for _, file := range files {
			if gctx.Err() != nil {
				break
			}
			if ix.Limiter != nil {
				if err := ix.Limiter.Wait(gctx); err != nil {
					break
				}
			}
			g.Go(func() error {
				resultCh <- ix.processFile(gctx, file)
				return nil
			})
		}
		_ = g.Wait()
	}()

	var result Result
	var entries []*docindex.CatalogEntry
	var completed atomic.Int64
	for r := range resultCh {
		n := int(completed.Add(1))
		event := ProgressEvent{Completed: n, Total: total, Path: r.file.RelPath}

		switch r.status {
		case statusIndexed:
			result.Indexed++
			result.Bytes += r.file.Size
			event.Type = ProgressCompleted
		case statusUnchanged:
			result.Unchanged++
			event.Type = ProgressUnchanged
		case statusSkipped:
			result.Skipped++
			event.Type = ProgressSkipped
		case statusFailed:
			result.Failed++
			event.Type = ProgressFailed
			event.Error = r.err
		}
		if r.untitled {
			result.Untitled++
		}
		if r.unclassified {
			result.Unclassified++
		}
		if r.duplicate {
			result.Duplicates++
		}
		if r.entry != nil {
			entries = append(entries, r.entry)
		}

		if progress != nil {
			progress(event)
		}
	}

	if err := ctx.Err(); err != nil {
		return &result, ix.abort(err)
	}

	if err := ix.Store.Commit(); err != nil {
		return &result, ix.abort(fmt.Errorf("committing records: %w", err))
	}

	if err := ix.updateCatalog(ctx, entries); err != nil {
		return &result, err
	}

	if progress != nil {
		progress(ProgressEvent{Type: ProgressFinished, Completed: total, Total: total})
	}

	return &result, nil
}

// abort discards stored records and returns err.
func (ix *Indexer) abort(err error) error {
	if abortErr := ix.Store.Abort(); abortErr != nil {
		ix.logger().Error("abort records", "err", abortErr)
	}
	return err
}

// updateCatalog records committed files. Every entry is attempted; the first
// failure is returned. A file missing from the catalog is indexed again on
// the next run.
func (ix *Indexer) updateCatalog(ctx context.Context, entries []*docindex.CatalogEntry) error {
	var firstErr error
	for _, entry := range entries {
		if err := ix.Catalog.UpsertEntry(ctx, entry); err != nil {
			ix.logger().Error("catalog update", "url", entry.URL, "err", err)
			if firstErr == nil {
				firstErr = fmt.Errorf("updating catalog: %w", err)
			}
		}
	}
	return firstErr
}

// processFile extracts, classifies and stores a single file. The catalog
// entry for a stored file is returned for Run to record after commit.
func (ix *Indexer) processFile(ctx context.Context, file *docindex.File) fileResult {
	result := fileResult{file: file}
	logger := ix.logger()

	extractor, ok := ix.Extractors[file.Ext()]
	if !ok {
		logger.Debug("skip file", "path", file.Path, "reason", "no extractor")
		result.status = statusSkipped
		return result
	}

	fail := func(err error) fileResult {
		logger.Warn("skip file", "path", file.Path, "err", err)
		result.status = statusFailed
		result.err = err
		return result
	}

	data, err := ix.read(file)
	if err != nil {
		return fail(err)
	}
	hash := ComputeHash(data)
	url := ix.url(file)

	if ix.Catalog != nil {
		entry, err := ix.Catalog.FindEntry(ctx, url)
		switch {
		case err == nil && entry.Unchanged(file.Size, file.ModTime, hash):
			result.status = statusUnchanged
			return result
		case err != nil && docindex.ErrorCode(err) != docindex.ENOTFOUND:
			return fail(fmt.Errorf("catalog lookup: %w", err))
		}
	}

	rec, err := ix.buildRecord(extractor, file, data, hash, url)
	if err != nil {
		return fail(err)
	}
	result.untitled = rec.Fields[docindex.FieldTitle] == ""
	result.unclassified = !hasClassification(rec.Fields)

	if err := ix.Store.Save(ctx, rec); err != nil {
		return fail(err)
	}

	if ix.Duplicates != nil && ix.Duplicates.SeenBefore(hash) {
		logger.Info("duplicate content", "path", file.Path, "hash", hash)
		result.duplicate = true
	}

	if ix.Catalog != nil {
		result.entry = &docindex.CatalogEntry{
			URL:       url,
			Path:      file.RelPath,
			Hash:      hash,
			Size:      file.Size,
			ModTime:   file.ModTime,
			Title:     rec.Fields[docindex.FieldTitle],
			Product:   rec.Fields[docindex.FieldProduct],
			Release:   rec.Fields[docindex.FieldRelease],
			BookTitle: rec.Fields[docindex.FieldBookTitle],
		}
	}

	result.status = statusIndexed
	return result
}

// Record builds the record for a single file without consulting the
// catalog or storing it. Returns EINVALID if no extractor handles the file.
func (ix *Indexer) Record(file *docindex.File) (*docindex.Record, error) {
	extractor, ok := ix.Extractors[file.Ext()]
	if !ok {
		return nil, docindex.Errorf(docindex.EINVALID, "no extractor for %q files", file.Ext())
	}
	data, err := ix.read(file)
	if err != nil {
		return nil, err
	}
	return ix.buildRecord(extractor, file, data, ComputeHash(data), ix.url(file))
}

// buildRecord extracts and classifies a file and merges the results, with
// classification taking precedence.
func (ix *Indexer) buildRecord(extractor docindex.Extractor, file *docindex.File, data []byte, hash, url string) (*docindex.Record, error) {
	fields, err := extractor.Extract(bytes.NewReader(data), file.Name())
	if err != nil {
		return nil, err
	}
	if fields[docindex.FieldTitle] == "" {
		ix.logger().Warn("no title", "path", file.Path)
	}

	return &docindex.Record{
		ID:     uuid.NewSHA1(uuid.NameSpaceURL, []byte(url)).String(),
		URL:    url,
		Path:   file.RelPath,
		Date:   file.ModTime,
		Size:   file.Size,
		Hash:   hash,
		Fields: fields.Merge(ix.Classifier.Classify(file.Path)),
	}, nil
}

// hasClassification reports whether any classification field is set.
func hasClassification(fields docindex.Fields) bool {
	for _, name := range []string{docindex.FieldProduct, docindex.FieldRelease, docindex.FieldBookTitle} {
		if fields[name] != "" {
			return true
		}
	}
	return false
}

func (ix *Indexer) read(file *docindex.File) ([]byte, error) {
	rc, err := ix.Source.Open(file)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

func (ix *Indexer) url(file *docindex.File) string {
	if ix.URL != nil {
		return ix.URL(file)
	}
	return "/" + file.RelPath
}

func (ix *Indexer) logger() *slog.Logger {
	if ix.Logger != nil {
		return ix.Logger
	}
	return slog.New(slog.DiscardHandler)
}
