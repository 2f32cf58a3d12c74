// Package fs discovers documentation files on disk and writes index records
// next to them in a mirrored directory tree.
package fs

import (
	"net/url"
	"path"
	"path/filepath"
	"strings"
)

// URLFromPath returns the web URL of a file served from the web root prefix.
// The prefix is trimmed and every path segment is percent-encoded; separators
// are kept. Only letters, digits and "-._~" are left as they are.
// Paths outside the prefix are encoded as they are.
func URLFromPath(filePath, prefix string) string {
	p := filepath.ToSlash(filePath)
	p = strings.TrimPrefix(p, filepath.ToSlash(prefix))

	segments := strings.Split(p, "/")
	for i, s := range segments {
		segments[i] = escapeSegment(s)
	}
	return strings.Join(segments, "/")
}

// OutputPath returns the slash-separated output path for the input relPath.
// Dots in the file name become underscores and ext is appended, so
// a/b/page.html with ".json" becomes a/b/page_html.json.
func OutputPath(relPath, ext string) string {
	dir, name := path.Split(filepath.ToSlash(relPath))
	return dir + strings.ReplaceAll(name, ".", "_") + ext
}

// WebRoot returns the web root prefix for an input directory: the directory
// with any trailing separators removed.
func WebRoot(dir string) string {
	return strings.TrimRight(filepath.ToSlash(dir), "/")
}

// escapeSegment percent-encodes everything but unreserved characters.
// QueryEscape does that except for writing spaces as "+"; a literal "+" is
// always escaped, so any "+" left in its output stands for a space.
func escapeSegment(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
