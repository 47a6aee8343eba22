// Package dom is the DOM query layer: it parses application pages, resolves
// selector sets against them and hands out opaque handles to the blocks and
// controls it finds.
package dom

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/PuerkitoBio/goquery"
	"github.com/google/uuid"
	"github.com/jonathan/autofill-core/internal/question"
	"github.com/jonathan/autofill-core/internal/selectors"
)

// Document is a parsed page plus the handle table for elements extracted from it.
type Document struct {
	doc  *goquery.Document
	href string

	mu      sync.Mutex
	handles map[question.BlockRef]*goquery.Selection
}

// NewDocument parses HTML from r. href is the page URL used for platform detection.
func NewDocument(href string, r io.Reader) (*Document, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}
	return &Document{
		doc:     doc,
		href:    href,
		handles: make(map[question.BlockRef]*goquery.Selection),
	}, nil
}

// ParseHTML parses an HTML string.
func ParseHTML(href, html string) (*Document, error) {
	return NewDocument(href, strings.NewReader(html))
}

// Href returns the page URL.
func (d *Document) Href() string {
	return d.href
}

// Root returns the document root selection.
func (d *Document) Root() *goquery.Selection {
	return d.doc.Selection
}

// Find runs a raw CSS query against the whole document.
func (d *Document) Find(selector string) *goquery.Selection {
	return d.doc.Find(selector)
}

// HTML renders the current document, including any values written by Fill.
func (d *Document) HTML() (string, error) {
	return d.doc.Html()
}

// Handle registers a selection and returns an opaque token for it. The token
// is only meaningful to this document.
func (d *Document) Handle(sel *goquery.Selection) question.BlockRef {
	if sel == nil || sel.Length() == 0 {
		return ""
	}
	ref := question.BlockRef(uuid.NewString())
	d.mu.Lock()
	d.handles[ref] = sel
	d.mu.Unlock()
	return ref
}

// Resolve looks a handle up. It returns false for unknown or released handles.
func (d *Document) Resolve(ref question.BlockRef) (*goquery.Selection, bool) {
	if ref == "" {
		return nil, false
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	sel, ok := d.handles[ref]
	return sel, ok
}

// Release drops every handle issued by this document. Questions that still
// hold handles keep working as values; their handles simply stop resolving.
func (d *Document) Release() {
	d.mu.Lock()
	d.handles = make(map[question.BlockRef]*goquery.Selection)
	d.mu.Unlock()
}

// HandleCount returns the number of live handles.
func (d *Document) HandleCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.handles)
}

// FirstMatch returns the matches of the first alternative in sel that finds
// anything under root, or an empty selection.
func FirstMatch(root *goquery.Selection, sel selectors.Selector) *goquery.Selection {
	for _, locator := range sel {
		if found := root.Find(locator); found.Length() > 0 {
			return found
		}
	}
	return none(root)
}

// AnyMatch returns the union of all alternatives in sel under root.
func AnyMatch(root *goquery.Selection, sel selectors.Selector) *goquery.Selection {
	if sel.Empty() {
		return none(root)
	}
	return root.Find(sel.Join())
}

// MatchesAny reports whether the first node of s matches any alternative in sel.
func MatchesAny(s *goquery.Selection, sel selectors.Selector) bool {
	for _, locator := range sel {
		if s.Is(locator) {
			return true
		}
	}
	return false
}

func none(s *goquery.Selection) *goquery.Selection {
	return s.Slice(0, 0)
}

// Text returns the whitespace-collapsed text of a selection.
func Text(sel *goquery.Selection) string {
	return strings.Join(strings.Fields(sel.Text()), " ")
}
