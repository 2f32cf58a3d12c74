// Package charmap extracts plain-text documentation files encoded in
// legacy single-byte character sets.
package charmap

import (
	"io"
	"path"
	"strings"
	"unicode/utf8"

	"github.com/fwojciec/docindex"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// Ensure Extractor implements docindex.Extractor at compile time.
var _ docindex.Extractor = (*Extractor)(nil)

// Extractor reads plain text and uses the file name as the title.
type Extractor struct {
	charmap *charmap.Charmap
}

// NewExtractor creates an Extractor that decodes Windows-1252 text.
func NewExtractor() *Extractor {
	return &Extractor{charmap: charmap.Windows1252}
}

// Extract decodes the text, dropping bytes the character map does not
// define, and returns it whitespace-normalized as the text field.
func (e *Extractor) Extract(r io.Reader, name string) (docindex.Fields, error) {
	decoded := transform.NewReader(r, e.charmap.NewDecoder())
	data, err := io.ReadAll(decoded)
	if err != nil {
		return nil, err
	}

	return docindex.Fields{
		docindex.FieldTitle:        path.Base(name),
		docindex.FieldText:         docindex.NormalizeWhitespace(stripUndefined(string(data))),
		docindex.FieldPriorityText: "",
	}, nil
}

// stripUndefined drops what the decoder emits for bytes that Windows-1252
// leaves undefined: C1 control characters and the replacement character.
func stripUndefined(s string) string {
	return strings.Map(func(r rune) rune {
		if r == utf8.RuneError || (r >= 0x80 && r <= 0x9f) {
			return -1
		}
		return r
	}, s)
}
