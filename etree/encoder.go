// Package etree encodes index records as Solr XML update messages.
package etree

import (
	"fmt"
	"io"
	"slices"
	"strconv"

	"github.com/beevik/etree"
	"github.com/fwojciec/docindex"
)

// Ensure Encoder implements docindex.Encoder at compile time.
var _ docindex.Encoder = (*Encoder)(nil)

// Encoder writes each record as an <add><doc> message with one field
// element per key, in key order.
type Encoder struct {
	// Indent is the number of spaces per nesting level. Zero writes
	// everything on one line.
	Indent int
}

// NewEncoder creates a new Encoder indenting by two spaces.
func NewEncoder() *Encoder {
	return &Encoder{Indent: 2}
}

// Extension returns ".xml".
func (e *Encoder) Extension() string {
	return ".xml"
}

// Encode writes rec as a Solr update document.
func (e *Encoder) Encode(w io.Writer, rec *docindex.Record) error {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	d := doc.CreateElement("add").CreateElement("doc")

	flat := rec.Flatten()
	keys := make([]string, 0, len(flat))
	for k := range flat {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	for _, k := range keys {
		field := d.CreateElement("field")
		field.CreateAttr("name", k)
		field.SetText(formatValue(flat[k]))
	}

	if e.Indent > 0 {
		doc.Indent(e.Indent)
	}
	if _, err := doc.WriteTo(w); err != nil {
		return fmt.Errorf("writing XML: %w", err)
	}
	return nil
}

func formatValue(v any) string {
	switch v := v.(type) {
	case string:
		return v
	case int64:
		return strconv.FormatInt(v, 10)
	default:
		return fmt.Sprint(v)
	}
}
