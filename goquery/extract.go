// Package goquery extracts indexable text from HTML documentation pages.
package goquery

import (
	"bytes"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/docindex"
	"golang.org/x/net/html"
)

// Ensure Extractor implements docindex.Extractor at compile time.
var _ docindex.Extractor = (*Extractor)(nil)

// blockTags are rendered on their own line, so their text is separated from
// neighbouring text. Combination of caption, tbody and thead plus
// https://www.w3.org/TR/CSS21/sample.html#q22.0 and
// https://developer.mozilla.org/en-US/docs/Web/HTML/Block-level_elements
var blockTags = map[string]bool{
	"address": true, "article": true, "aside": true, "blockquote": true,
	"body": true, "canvas": true, "center": true, "dd": true, "dir": true,
	"div": true, "dl": true, "dt": true, "fieldset": true, "figcaption": true,
	"figure": true, "footer": true, "form": true, "frame": true,
	"frameset": true, "h1": true, "h2": true, "h3": true, "h4": true,
	"h5": true, "h6": true, "header": true, "hgroup": true, "hr": true,
	"html": true, "li": true, "main": true, "menu": true, "nav": true,
	"noframes": true, "noscript": true, "ol": true, "output": true, "p": true,
	"pre": true, "section": true, "table": true, "tfoot": true, "ul": true,
	"video": true, "caption": true, "tbody": true, "thead": true, "tr": true,
}

// priorityTags are searched in this order; matches in them rank higher.
var priorityTags = []string{
	"h1", "h2", "h3", "h4", "h5", "h6", "title", "caption", "figcaption",
}

// contentSelector finds the main content area of generated documentation,
// which excludes navigation and other chrome.
const contentSelector = "html > body > div#content"

// Extractor extracts title, body text, priority text and meta fields
// from HTML.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract parses UTF-8 HTML and returns its fields.
// Returns EINVALID if the input holds no document at all.
func (e *Extractor) Extract(r io.Reader, name string) (docindex.Fields, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, docindex.Errorf(docindex.EINVALID, "no root: %s is empty", name)
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(data))
	if err != nil {
		return nil, docindex.Errorf(docindex.EINVALID, "failed to parse HTML: %v", err)
	}

	return e.ExtractDocument(doc)
}

// ExtractDocument returns the fields of an already parsed document.
// The document is not modified.
func (e *Extractor) ExtractDocument(doc *goquery.Document) (docindex.Fields, error) {
	root := doc.Find("html").First()
	if root.Length() == 0 {
		return nil, docindex.Errorf(docindex.EINVALID, "no root element")
	}

	// Extracted values replace meta values of the same name. A meta title
	// or lang survives only when the document has none of its own.
	fields := harvestMeta(doc)

	if lang, ok := root.Attr("lang"); ok {
		if lang = strings.TrimSpace(lang); lang != "" {
			fields[docindex.FieldLang] = lang
		}
	}

	if title, ok := extractTitle(doc); ok {
		fields[docindex.FieldTitle] = title
	}

	fields[docindex.FieldPriorityText] = extractPriorityText(doc, fields)
	fields[docindex.FieldText] = extractBodyText(doc, root)

	return fields, nil
}

// harvestMeta records every meta element carrying both a name and content.
// Names are lower-cased and trimmed; the last occurrence of a name wins.
func harvestMeta(doc *goquery.Document) docindex.Fields {
	fields := make(docindex.Fields)
	doc.Find("meta").Each(func(_ int, sel *goquery.Selection) {
		name, ok := sel.Attr("name")
		if !ok {
			return
		}
		content, ok := sel.Attr("content")
		if !ok {
			return
		}
		name = strings.ToLower(strings.TrimSpace(name))
		if name == "" {
			return
		}
		fields[name] = docindex.NormalizeWhitespace(content)
	})
	return fields
}

// extractTitle prefers the first h1 over the title element.
func extractTitle(doc *goquery.Document) (string, bool) {
	for _, selector := range []string{"h1", "title"} {
		sel := doc.Find(selector).First()
		if sel.Length() == 0 {
			continue
		}
		return docindex.CleanTitle(Text(sel.Get(0))), true
	}
	return "", false
}

// extractPriorityText joins headings, titles and captions with the text
// following each, stripped of section numbering, then the description and
// keywords meta values.
func extractPriorityText(doc *goquery.Document, meta docindex.Fields) string {
	var parts []string
	for _, tag := range priorityTags {
		doc.Find(tag).Each(func(_ int, sel *goquery.Selection) {
			text := docindex.NormalizeWhitespace(textWithTail(sel.Get(0)))
			parts = append(parts, docindex.TrimSectionNumbering(text))
		})
	}
	for _, name := range []string{docindex.FieldDescription, docindex.FieldKeywords} {
		if v, ok := meta[name]; ok {
			parts = append(parts, v)
		}
	}
	return docindex.NormalizeWhitespace(strings.Join(parts, " "))
}

// extractBodyText takes the content area and the text following it when the
// page has one, otherwise the whole document, and drops the legal notices
// footer.
func extractBodyText(doc *goquery.Document, root *goquery.Selection) string {
	node := root.Get(0)
	if content := doc.Find(contentSelector).First(); content.Length() > 0 {
		node = content.Get(0)
	}
	text := docindex.NormalizeWhitespace(textWithTail(node))
	return docindex.TrimLegalNotices(text)
}

// Text returns the text content of an element: its leading text and the
// text of its descendants in document order. Script and style content is
// never included. Block-level elements contribute a space on either side so
// that adjacent blocks do not run together once whitespace is collapsed.
// Text following the element itself is not part of the result.
func Text(n *html.Node) string {
	var b strings.Builder
	writeElement(&b, n, false)
	return b.String()
}

// textWithTail is Text followed by the text that directly follows n.
// Priority and body text keep that text; titles do not.
func textWithTail(n *html.Node) string {
	var b strings.Builder
	writeElement(&b, n, true)
	return b.String()
}

// writeElement writes the text of element n. When withTail is set, the text
// nodes that follow n up to its next non-text sibling are written as well,
// inside the block separators.
func writeElement(b *strings.Builder, n *html.Node, withTail bool) {
	if n == nil {
		return
	}
	switch n.Type {
	case html.ElementNode:
	case html.CommentNode:
		if withTail {
			writeTail(b, n)
		}
		return
	default:
		return
	}

	block := blockTags[n.Data]
	if block {
		b.WriteByte(' ')
	}

	if n.Data != "script" && n.Data != "style" {
		child := n.FirstChild
		for ; child != nil && child.Type == html.TextNode; child = child.NextSibling {
			b.WriteString(child.Data)
		}
		for ; child != nil; child = child.NextSibling {
			if child.Type != html.TextNode {
				writeElement(b, child, true)
			}
		}
	}

	if withTail {
		writeTail(b, n)
	}

	if block {
		b.WriteByte(' ')
	}
}

// writeTail writes the text that directly follows n.
func writeTail(b *strings.Builder, n *html.Node) {
	for s := n.NextSibling; s != nil && s.Type == html.TextNode; s = s.NextSibling {
		b.WriteString(s.Data)
	}
}
