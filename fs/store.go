package fs

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fwojciec/docindex"
)

// Ensure RecordStore implements docindex.RecordStore at compile time.
var _ docindex.RecordStore = (*RecordStore)(nil)

// RecordStore writes one encoded file per record, mirroring the input tree.
// Records are saved to a temporary directory next to the output directory
// and moved into place on Commit.
type RecordStore struct {
	dir     string
	encoder docindex.Encoder

	// Overwrite allows Commit to replace an existing output directory.
	Overwrite bool
}

// NewRecordStore creates a RecordStore writing to dir.
// Records are saved to dir.tmp and moved to dir on Commit.
func NewRecordStore(dir string, encoder docindex.Encoder) *RecordStore {
	return &RecordStore{dir: dir, encoder: encoder}
}

func (s *RecordStore) tempDir() string {
	return filepath.Clean(s.dir) + ".tmp"
}

// Open checks that the output directory can be written and clears any
// temporary directory left behind by an interrupted run.
// Returns ECONFLICT if the output directory exists and Overwrite is not set.
func (s *RecordStore) Open() error {
	if err := s.checkConflict(); err != nil {
		return err
	}
	if err := os.RemoveAll(s.tempDir()); err != nil {
		return err
	}
	return os.MkdirAll(s.tempDir(), 0755)
}

func (s *RecordStore) checkConflict() error {
	if s.Overwrite {
		return nil
	}
	if _, err := os.Stat(s.dir); err == nil {
		return docindex.Errorf(docindex.ECONFLICT, "output directory already exists: %s", s.dir)
	} else if !os.IsNotExist(err) {
		return err
	}
	return nil
}

// Save encodes rec into the temporary directory.
func (s *RecordStore) Save(ctx context.Context, rec *docindex.Record) error {
	if err := rec.Validate(); err != nil {
		return err
	}

	rel := filepath.Clean(filepath.FromSlash(OutputPath(rec.Path, s.encoder.Extension())))
	if filepath.IsAbs(rel) || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return docindex.Errorf(docindex.EINVALID, "path traversal in record path: %s", rec.Path)
	}
	fullPath := filepath.Join(s.tempDir(), rel)

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return err
	}

	f, err := os.Create(fullPath)
	if err != nil {
		return err
	}
	if err := s.encoder.Encode(f, rec); err != nil {
		_ = f.Close()
		return fmt.Errorf("encode %s: %w", rec.Path, err)
	}
	return f.Close()
}

// Commit moves the temporary directory to the output directory.
func (s *RecordStore) Commit() error {
	if err := s.checkConflict(); err != nil {
		return err
	}
	if err := os.MkdirAll(s.tempDir(), 0755); err != nil {
		return err
	}

	// Remove existing output directory if present
	if err := os.RemoveAll(s.dir); err != nil {
		return err
	}

	return os.Rename(s.tempDir(), s.dir)
}

// Abort discards the temporary directory.
func (s *RecordStore) Abort() error {
	return os.RemoveAll(s.tempDir())
}
