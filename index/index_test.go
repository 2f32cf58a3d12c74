package index_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/fwojciec/docindex"
	"github.com/fwojciec/docindex/bloom"
	"github.com/fwojciec/docindex/index"
	"github.com/fwojciec/docindex/mock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

var modTime = time.Date(2016, 5, 4, 10, 30, 0, 0, time.UTC)

// newSource serves files from memory, keyed by relative path.
func newSource(contents map[string]string) *mock.Source {
	return &mock.Source{
		FilesFn: func(_ context.Context) ([]*docindex.File, error) {
			var files []*docindex.File
			for rel, content := range contents {
				files = append(files, &docindex.File{
					Path:    "/var/www/" + rel,
					RelPath: rel,
					Size:    int64(len(content)),
					ModTime: modTime,
				})
			}
			sort.Slice(files, func(i, j int) bool { return files[i].RelPath < files[j].RelPath })
			return files, nil
		},
		OpenFn: func(file *docindex.File) (io.ReadCloser, error) {
			content, ok := contents[file.RelPath]
			if !ok {
				return nil, errors.New("no such file")
			}
			return io.NopCloser(strings.NewReader(content)), nil
		},
	}
}

// titleExtractor uses the document content as title and text.
func titleExtractor() *mock.Extractor {
	return &mock.Extractor{
		ExtractFn: func(r io.Reader, name string) (docindex.Fields, error) {
			data, err := io.ReadAll(r)
			if err != nil {
				return nil, err
			}
			return docindex.Fields{"title": string(data), "text": string(data), "ptext": ""}, nil
		},
	}
}

func productClassifier() *mock.Classifier {
	return &mock.Classifier{
		ClassifyFn: func(path string) docindex.Fields {
			if strings.Contains(path, "HDPDocuments") {
				return docindex.Fields{"product": "Data Platform", "release": "2.3.0.0"}
			}
			return docindex.Fields{}
		},
	}
}

// recordingStore keeps saved records and tracks commit and abort calls.
type recordingStore struct {
	mu        sync.Mutex
	records   map[string]*docindex.Record
	committed bool
	aborted   bool
	saveErr   func(rec *docindex.Record) error
	commitErr error
}

func (s *recordingStore) mock() *mock.RecordStore {
	s.records = map[string]*docindex.Record{}
	return &mock.RecordStore{
		SaveFn: func(_ context.Context, rec *docindex.Record) error {
			if s.saveErr != nil {
				if err := s.saveErr(rec); err != nil {
					return err
				}
			}
			s.mu.Lock()
			defer s.mu.Unlock()
			s.records[rec.Path] = rec
			return nil
		},
		CommitFn: func() error {
			if s.commitErr != nil {
				return s.commitErr
			}
			s.committed = true
			return nil
		},
		AbortFn: func() error {
			s.aborted = true
			return nil
		},
	}
}

func TestIndexer_Run(t *testing.T) {
	t.Parallel()

	t.Run("indexes every file and commits", func(t *testing.T) {
		t.Parallel()

		var store recordingStore
		ix := &index.Indexer{
			Source: newSource(map[string]string{
				"HDPDocuments/HDP2/HDP-2.3.0/bk_security/index.html": "Security",
				"HDPDocuments/HDP2/HDP-2.3.0/README.txt":             "Readme",
			}),
			Extractors:  map[string]docindex.Extractor{".html": titleExtractor(), ".txt": titleExtractor()},
			Classifier:  productClassifier(),
			Store:       store.mock(),
			Concurrency: 2,
		}

		result, err := ix.Run(context.Background(), nil)

		require.NoError(t, err)
		assert.Equal(t, 2, result.Indexed)
		assert.Equal(t, 0, result.Failed)
		assert.Equal(t, int64(len("Security")+len("Readme")), result.Bytes)
		assert.True(t, store.committed)
		assert.False(t, store.aborted)

		rec := store.records["HDPDocuments/HDP2/HDP-2.3.0/bk_security/index.html"]
		require.NotNil(t, rec)
		assert.Equal(t, "/HDPDocuments/HDP2/HDP-2.3.0/bk_security/index.html", rec.URL)
		assert.Equal(t, uuid.NewSHA1(uuid.NameSpaceURL, []byte(rec.URL)).String(), rec.ID)
		assert.Equal(t, index.ComputeHash([]byte("Security")), rec.Hash)
		assert.Equal(t, modTime, rec.Date)
		assert.Equal(t, int64(8), rec.Size)
		assert.Equal(t, "Security", rec.Fields["title"])
		assert.Equal(t, "Data Platform", rec.Fields["product"])
		assert.Equal(t, "2.3.0.0", rec.Fields["release"])
	})

	t.Run("classification overrides extracted fields", func(t *testing.T) {
		t.Parallel()

		var store recordingStore
		ix := &index.Indexer{
			Source: newSource(map[string]string{"HDPDocuments/a.html": "x"}),
			Extractors: map[string]docindex.Extractor{".html": &mock.Extractor{
				ExtractFn: func(r io.Reader, name string) (docindex.Fields, error) {
					return docindex.Fields{"title": "T", "product": "from meta"}, nil
				},
			}},
			Classifier: productClassifier(),
			Store:      store.mock(),
		}

		_, err := ix.Run(context.Background(), nil)

		require.NoError(t, err)
		assert.Equal(t, "Data Platform", store.records["HDPDocuments/a.html"].Fields["product"])
	})

	t.Run("uses URL function and file name", func(t *testing.T) {
		t.Parallel()

		var store recordingStore
		var gotName string
		ix := &index.Indexer{
			Source: newSource(map[string]string{"docs/page.html": "x"}),
			Extractors: map[string]docindex.Extractor{".html": &mock.Extractor{
				ExtractFn: func(r io.Reader, name string) (docindex.Fields, error) {
					gotName = name
					return docindex.Fields{"title": "T"}, nil
				},
			}},
			Classifier: productClassifier(),
			Store:      store.mock(),
			URL: func(file *docindex.File) string {
				return "https://docs.example.com/" + file.RelPath
			},
		}

		_, err := ix.Run(context.Background(), nil)

		require.NoError(t, err)
		assert.Equal(t, "page.html", gotName)
		assert.Equal(t, "https://docs.example.com/docs/page.html", store.records["docs/page.html"].URL)
	})

	t.Run("skips files without an extractor", func(t *testing.T) {
		t.Parallel()

		var store recordingStore
		ix := &index.Indexer{
			Source:     newSource(map[string]string{"a.html": "A", "b.pdf": "B"}),
			Extractors: map[string]docindex.Extractor{".html": titleExtractor()},
			Classifier: productClassifier(),
			Store:      store.mock(),
		}

		result, err := ix.Run(context.Background(), nil)

		require.NoError(t, err)
		assert.Equal(t, 1, result.Indexed)
		assert.Equal(t, 1, result.Skipped)
		assert.NotContains(t, store.records, "b.pdf")
	})

	t.Run("counts failures and keeps going", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		var store recordingStore
		ix := &index.Indexer{
			Source: newSource(map[string]string{"bad.html": "", "good.html": "G"}),
			Extractors: map[string]docindex.Extractor{".html": &mock.Extractor{
				ExtractFn: func(r io.Reader, name string) (docindex.Fields, error) {
					if name == "bad.html" {
						return nil, docindex.Errorf(docindex.EINVALID, "no root: %s is empty", name)
					}
					return docindex.Fields{"title": "G"}, nil
				},
			}},
			Classifier: productClassifier(),
			Store:      store.mock(),
			Logger:     slog.New(slog.NewTextHandler(&buf, nil)),
		}

		result, err := ix.Run(context.Background(), nil)

		require.NoError(t, err)
		assert.Equal(t, 1, result.Indexed)
		assert.Equal(t, 1, result.Failed)
		assert.True(t, store.committed)
		assert.Contains(t, buf.String(), "path=/var/www/bad.html")
	})

	t.Run("counts store failures", func(t *testing.T) {
		t.Parallel()

		store := recordingStore{saveErr: func(rec *docindex.Record) error {
			return errors.New("disk full")
		}}
		ix := &index.Indexer{
			Source:     newSource(map[string]string{"a.html": "A"}),
			Extractors: map[string]docindex.Extractor{".html": titleExtractor()},
			Classifier: productClassifier(),
			Store:      store.mock(),
		}

		result, err := ix.Run(context.Background(), nil)

		require.NoError(t, err)
		assert.Equal(t, 0, result.Indexed)
		assert.Equal(t, 1, result.Failed)
	})

	t.Run("counts and logs untitled and unclassified files", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		var store recordingStore
		ix := &index.Indexer{
			Source: newSource(map[string]string{"other/a.html": "A"}),
			Extractors: map[string]docindex.Extractor{".html": &mock.Extractor{
				ExtractFn: func(r io.Reader, name string) (docindex.Fields, error) {
					return docindex.Fields{"text": "body", "ptext": ""}, nil
				},
			}},
			Classifier: productClassifier(),
			Store:      store.mock(),
			Logger:     slog.New(slog.NewTextHandler(&buf, nil)),
		}

		result, err := ix.Run(context.Background(), nil)

		require.NoError(t, err)
		assert.Equal(t, 1, result.Indexed)
		assert.Equal(t, 1, result.Untitled)
		assert.Equal(t, 1, result.Unclassified)
		assert.Contains(t, buf.String(), `msg="no title"`)

		rec := store.records["other/a.html"]
		require.NotNil(t, rec)
		assert.NotContains(t, rec.Fields, "title")
		assert.NotContains(t, rec.Fields, "product")
	})

	t.Run("counts duplicate content", func(t *testing.T) {
		t.Parallel()

		var store recordingStore
		ix := &index.Indexer{
			Source:     newSource(map[string]string{"a.html": "same", "b.html": "same", "c.html": "other"}),
			Extractors: map[string]docindex.Extractor{".html": titleExtractor()},
			Classifier: productClassifier(),
			Store:      store.mock(),
			Duplicates: bloom.NewFilter(100, 0.01),
		}

		result, err := ix.Run(context.Background(), nil)

		require.NoError(t, err)
		assert.Equal(t, 3, result.Indexed)
		assert.Equal(t, 1, result.Duplicates)
	})

	t.Run("applies rate limit", func(t *testing.T) {
		t.Parallel()

		var store recordingStore
		ix := &index.Indexer{
			Source:     newSource(map[string]string{"a.html": "A", "b.html": "B"}),
			Extractors: map[string]docindex.Extractor{".html": titleExtractor()},
			Classifier: productClassifier(),
			Store:      store.mock(),
			Limiter:    rate.NewLimiter(rate.Inf, 1),
		}

		result, err := ix.Run(context.Background(), nil)

		require.NoError(t, err)
		assert.Equal(t, 2, result.Indexed)
	})

	t.Run("reports progress", func(t *testing.T) {
		t.Parallel()

		var store recordingStore
		ix := &index.Indexer{
			Source:      newSource(map[string]string{"a.html": "A", "b.txt": "B", "c.pdf": "C"}),
			Extractors:  map[string]docindex.Extractor{".html": titleExtractor(), ".txt": titleExtractor()},
			Classifier:  productClassifier(),
			Store:       store.mock(),
			Concurrency: 1,
		}

		var events []index.ProgressEvent
		_, err := ix.Run(context.Background(), func(e index.ProgressEvent) {
			events = append(events, e)
		})

		require.NoError(t, err)
		require.Len(t, events, 5)
		assert.Equal(t, index.ProgressStarted, events[0].Type)
		assert.Equal(t, 3, events[0].Total)
		assert.Equal(t, index.ProgressSkipped, events[3].Type)
		assert.Equal(t, "c.pdf", events[3].Path)
		assert.Equal(t, index.ProgressFinished, events[4].Type)
		assert.Equal(t, 3, events[4].Completed)
	})

	t.Run("aborts when files cannot be listed", func(t *testing.T) {
		t.Parallel()

		var store recordingStore
		ix := &index.Indexer{
			Source: &mock.Source{
				FilesFn: func(_ context.Context) ([]*docindex.File, error) {
					return nil, docindex.Errorf(docindex.ENOTFOUND, "input directory not found: /nope")
				},
			},
			Classifier: productClassifier(),
			Store:      store.mock(),
		}

		_, err := ix.Run(context.Background(), nil)

		require.Error(t, err)
		assert.Equal(t, docindex.ENOTFOUND, docindex.ErrorCode(err))
		assert.True(t, store.aborted)
		assert.False(t, store.committed)
	})

	t.Run("aborts when context is cancelled", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		var store recordingStore
		ix := &index.Indexer{
			Source: newSource(map[string]string{"a.html": "A", "b.html": "B", "c.html": "C"}),
			Extractors: map[string]docindex.Extractor{".html": &mock.Extractor{
				ExtractFn: func(r io.Reader, name string) (docindex.Fields, error) {
					cancel()
					return docindex.Fields{"title": "T"}, nil
				},
			}},
			Classifier:  productClassifier(),
			Store:       store.mock(),
			Concurrency: 1,
		}

		_, err := ix.Run(ctx, nil)

		require.ErrorIs(t, err, context.Canceled)
		assert.True(t, store.aborted)
		assert.False(t, store.committed)
	})
}

// memoryCatalog keeps catalog entries in a map.
type memoryCatalog struct {
	mu      sync.Mutex
	entries map[string]*docindex.CatalogEntry
}

func (c *memoryCatalog) mock() *mock.Catalog {
	c.entries = map[string]*docindex.CatalogEntry{}
	return &mock.Catalog{
		FindEntryFn: func(_ context.Context, url string) (*docindex.CatalogEntry, error) {
			c.mu.Lock()
			defer c.mu.Unlock()
			if e, ok := c.entries[url]; ok {
				return e, nil
			}
			return nil, docindex.Errorf(docindex.ENOTFOUND, "catalog entry not found: %s", url)
		},
		UpsertEntryFn: func(_ context.Context, e *docindex.CatalogEntry) error {
			c.mu.Lock()
			defer c.mu.Unlock()
			c.entries[e.URL] = e
			return nil
		},
	}
}

func (c *memoryCatalog) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func TestIndexer_Run_Catalog(t *testing.T) {
	t.Parallel()

	t.Run("skips unchanged files and records changed ones", func(t *testing.T) {
		t.Parallel()

		var mu sync.Mutex
		upserted := map[string]*docindex.CatalogEntry{}
		catalog := &mock.Catalog{
			FindEntryFn: func(_ context.Context, url string) (*docindex.CatalogEntry, error) {
				switch url {
				case "/HDPDocuments/same.html":
					return &docindex.CatalogEntry{URL: url, Size: 4, ModTime: modTime, Hash: index.ComputeHash([]byte("same"))}, nil
				case "/HDPDocuments/changed.html":
					return &docindex.CatalogEntry{URL: url, Size: 7, ModTime: modTime, Hash: "stale"}, nil
				}
				return nil, docindex.Errorf(docindex.ENOTFOUND, "catalog entry not found: %s", url)
			},
			UpsertEntryFn: func(_ context.Context, e *docindex.CatalogEntry) error {
				mu.Lock()
				defer mu.Unlock()
				upserted[e.URL] = e
				return nil
			},
		}

		var store recordingStore
		ix := &index.Indexer{
			Source: newSource(map[string]string{
				"HDPDocuments/same.html":    "same",
				"HDPDocuments/changed.html": "changed",
				"HDPDocuments/new.html":     "new",
			}),
			Extractors: map[string]docindex.Extractor{".html": titleExtractor()},
			Classifier: productClassifier(),
			Store:      store.mock(),
			Catalog:    catalog,
		}

		result, err := ix.Run(context.Background(), nil)

		require.NoError(t, err)
		assert.Equal(t, 2, result.Indexed)
		assert.Equal(t, 1, result.Unchanged)
		assert.NotContains(t, store.records, "HDPDocuments/same.html")
		assert.Contains(t, store.records, "HDPDocuments/changed.html")

		require.Contains(t, upserted, "/HDPDocuments/new.html")
		entry := upserted["/HDPDocuments/new.html"]
		assert.Equal(t, "new", entry.Title)
		assert.Equal(t, "Data Platform", entry.Product)
		assert.Equal(t, "2.3.0.0", entry.Release)
		assert.Equal(t, index.ComputeHash([]byte("new")), entry.Hash)
		assert.NotContains(t, upserted, "/HDPDocuments/same.html")
	})

	t.Run("failed commit leaves catalog untouched", func(t *testing.T) {
		t.Parallel()

		var catalog memoryCatalog
		cat := catalog.mock()
		contents := map[string]string{"HDPDocuments/a.html": "A"}

		failing := recordingStore{commitErr: errors.New("disk full")}
		ix := &index.Indexer{
			Source:     newSource(contents),
			Extractors: map[string]docindex.Extractor{".html": titleExtractor()},
			Classifier: productClassifier(),
			Store:      failing.mock(),
			Catalog:    cat,
		}

		_, err := ix.Run(context.Background(), nil)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "disk full")
		assert.True(t, failing.aborted)
		assert.Zero(t, catalog.count())

		var healthy recordingStore
		ix.Store = healthy.mock()

		result, err := ix.Run(context.Background(), nil)

		require.NoError(t, err)
		assert.Equal(t, 1, result.Indexed)
		assert.Equal(t, 0, result.Unchanged)
		assert.Contains(t, healthy.records, "HDPDocuments/a.html")
		assert.Equal(t, 1, catalog.count())

		var again recordingStore
		ix.Store = again.mock()

		result, err = ix.Run(context.Background(), nil)

		require.NoError(t, err)
		assert.Equal(t, 1, result.Unchanged)
		assert.Empty(t, again.records)
	})

	t.Run("cancelled run leaves catalog untouched", func(t *testing.T) {
		t.Parallel()

		var catalog memoryCatalog
		cat := catalog.mock()
		contents := map[string]string{"a.html": "A", "b.html": "B", "c.html": "C"}

		ctx, cancel := context.WithCancel(context.Background())
		var cancelled recordingStore
		ix := &index.Indexer{
			Source: newSource(contents),
			Extractors: map[string]docindex.Extractor{".html": &mock.Extractor{
				ExtractFn: func(r io.Reader, name string) (docindex.Fields, error) {
					cancel()
					return docindex.Fields{"title": "T"}, nil
				},
			}},
			Classifier:  productClassifier(),
			Store:       cancelled.mock(),
			Catalog:     cat,
			Concurrency: 1,
		}

		_, err := ix.Run(ctx, nil)

		require.ErrorIs(t, err, context.Canceled)
		assert.True(t, cancelled.aborted)
		assert.Zero(t, catalog.count())

		var rerun recordingStore
		ix.Store = rerun.mock()
		ix.Extractors = map[string]docindex.Extractor{".html": titleExtractor()}

		result, err := ix.Run(context.Background(), nil)

		require.NoError(t, err)
		assert.Equal(t, 3, result.Indexed)
		assert.Len(t, rerun.records, 3)
		assert.Equal(t, 3, catalog.count())
	})

	t.Run("reports catalog update failures after commit", func(t *testing.T) {
		t.Parallel()

		var store recordingStore
		ix := &index.Indexer{
			Source:     newSource(map[string]string{"a.html": "A", "b.html": "B"}),
			Extractors: map[string]docindex.Extractor{".html": titleExtractor()},
			Classifier: productClassifier(),
			Store:      store.mock(),
			Catalog: &mock.Catalog{
				FindEntryFn: func(_ context.Context, url string) (*docindex.CatalogEntry, error) {
					return nil, docindex.Errorf(docindex.ENOTFOUND, "catalog entry not found: %s", url)
				},
				UpsertEntryFn: func(_ context.Context, e *docindex.CatalogEntry) error {
					return errors.New("database is locked")
				},
			},
		}

		result, err := ix.Run(context.Background(), nil)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "updating catalog")
		assert.True(t, store.committed)
		assert.Equal(t, 2, result.Indexed)
	})

	t.Run("fails file when catalog lookup errors", func(t *testing.T) {
		t.Parallel()

		var store recordingStore
		ix := &index.Indexer{
			Source:     newSource(map[string]string{"a.html": "A"}),
			Extractors: map[string]docindex.Extractor{".html": titleExtractor()},
			Classifier: productClassifier(),
			Store:      store.mock(),
			Catalog: &mock.Catalog{
				FindEntryFn: func(_ context.Context, url string) (*docindex.CatalogEntry, error) {
					return nil, errors.New("database is locked")
				},
			},
		}

		result, err := ix.Run(context.Background(), nil)

		require.NoError(t, err)
		assert.Equal(t, 1, result.Failed)
		assert.Empty(t, store.records)
	})
}

func TestIndexer_Record(t *testing.T) {
	t.Parallel()

	t.Run("builds record without storing it", func(t *testing.T) {
		t.Parallel()

		ix := &index.Indexer{
			Source:     newSource(map[string]string{"HDPDocuments/a.html": "A"}),
			Extractors: map[string]docindex.Extractor{".html": titleExtractor()},
			Classifier: productClassifier(),
		}
		file := &docindex.File{Path: "/var/www/HDPDocuments/a.html", RelPath: "HDPDocuments/a.html", Size: 1, ModTime: modTime}

		rec, err := ix.Record(file)

		require.NoError(t, err)
		assert.Equal(t, "/HDPDocuments/a.html", rec.URL)
		assert.Equal(t, "A", rec.Fields["title"])
		assert.Equal(t, "Data Platform", rec.Fields["product"])
		assert.Equal(t, index.ComputeHash([]byte("A")), rec.Hash)
	})

	t.Run("rejects files without an extractor", func(t *testing.T) {
		t.Parallel()

		ix := &index.Indexer{
			Source:     newSource(map[string]string{"a.pdf": "A"}),
			Extractors: map[string]docindex.Extractor{".html": titleExtractor()},
			Classifier: productClassifier(),
		}

		_, err := ix.Record(&docindex.File{Path: "/var/www/a.pdf", RelPath: "a.pdf"})

		require.Error(t, err)
		assert.Equal(t, docindex.EINVALID, docindex.ErrorCode(err))
	})
}
