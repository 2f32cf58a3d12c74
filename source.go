package docindex

import (
	"context"
	"io"
	"path"
	"time"
)

// File describes one input document discovered under the input root.
type File struct {
	// Path is the full path as found on disk. It is what gets classified.
	Path string

	// RelPath is the slash-separated path relative to the input root.
	RelPath string

	Size    int64
	ModTime time.Time
}

// Ext returns the file name extension, including the dot.
func (f *File) Ext() string {
	return path.Ext(f.RelPath)
}

// Name returns the last element of the file's path.
func (f *File) Name() string {
	return path.Base(f.RelPath)
}

// Source discovers input documents and opens them for reading.
type Source interface {
	// Files returns every indexable file under the input root.
	Files(ctx context.Context) ([]*File, error)

	// Open returns the document content. HTML is decoded to UTF-8;
	// plain text is returned as stored on disk.
	Open(file *File) (io.ReadCloser, error)
}
