package fs

import (
	"context"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/fwojciec/docindex"
	"golang.org/x/net/html/charset"
)

// Ensure Source implements docindex.Source at compile time.
var _ docindex.Source = (*Source)(nil)

// DefaultExtensions are the file name extensions indexed by default.
// Matching is case sensitive.
var DefaultExtensions = []string{".html", ".htm", ".txt"}

// htmlExtensions are decoded to UTF-8 on Open.
var htmlExtensions = map[string]bool{".html": true, ".htm": true}

// Source discovers documentation files under a root directory.
type Source struct {
	root       string
	extensions map[string]bool
}

// NewSource creates a Source rooted at root. With no extensions given,
// DefaultExtensions are used.
func NewSource(root string, extensions ...string) *Source {
	if len(extensions) == 0 {
		extensions = DefaultExtensions
	}
	exts := make(map[string]bool, len(extensions))
	for _, ext := range extensions {
		exts[ext] = true
	}
	return &Source{root: root, extensions: exts}
}

// Files walks the root in lexical order and returns every regular file with
// an indexable extension. Returns ENOTFOUND if the root does not exist.
func (s *Source) Files(ctx context.Context) ([]*docindex.File, error) {
	info, err := os.Stat(s.root)
	if os.IsNotExist(err) {
		return nil, docindex.Errorf(docindex.ENOTFOUND, "input directory not found: %s", s.root)
	} else if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, docindex.Errorf(docindex.EINVALID, "input is not a directory: %s", s.root)
	}

	var files []*docindex.File
	err = filepath.WalkDir(s.root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if !d.Type().IsRegular() || !s.extensions[filepath.Ext(p)] {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(s.root, p)
		if err != nil {
			return err
		}
		files = append(files, &docindex.File{
			Path:    p,
			RelPath: filepath.ToSlash(rel),
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

// Open opens a discovered file. HTML is decoded to UTF-8 using the charset
// the document declares, falling back to content sniffing. Other files are
// returned as stored.
func (s *Source) Open(file *docindex.File) (io.ReadCloser, error) {
	f, err := os.Open(file.Path)
	if err != nil {
		return nil, err
	}
	// Empty files have nothing to sniff.
	if !htmlExtensions[file.Ext()] || file.Size == 0 {
		return f, nil
	}

	r, err := charset.NewReader(f, "text/html")
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	return &readCloser{Reader: r, Closer: f}, nil
}

type readCloser struct {
	io.Reader
	io.Closer
}
