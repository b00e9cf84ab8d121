package scraper

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Node is a single element of a parsed document.
type Node interface {
	// Name returns the lower-case tag name.
	Name() string
	// Text returns the flattened text content of the node and its descendants.
	Text() string
	// HTML returns the serialized markup of the node's children.
	HTML() (string, error)
}

// Tree is the query and mutation capability the sanitizer and the content
// selector need from a parsed document. Implementations are not safe for
// concurrent use; a tree belongs to one pipeline invocation.
type Tree interface {
	// Query returns every node matching the CSS selector, in document order.
	Query(selector string) []Node
	// Remove detaches every node matching the CSS selector and returns how
	// many were removed.
	Remove(selector string) int
	// Body returns the document body.
	Body() Node
}

// ParseDocument builds a Tree from raw HTML.
func ParseDocument(html string) (Tree, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parse HTML: %w", err)
	}
	return &goqueryTree{doc: doc}, nil
}

type goqueryTree struct {
	doc *goquery.Document
}

func (t *goqueryTree) Query(selector string) []Node {
	var nodes []Node
	t.doc.Find(selector).Each(func(_ int, s *goquery.Selection) {
		nodes = append(nodes, goqueryNode{sel: s})
	})
	return nodes
}

func (t *goqueryTree) Remove(selector string) int {
	selection := t.doc.Find(selector)
	count := selection.Length()
	if count > 0 {
		selection.Remove()
	}
	return count
}

func (t *goqueryTree) Body() Node {
	return goqueryNode{sel: t.doc.Find(BodySelector).First()}
}

type goqueryNode struct {
	sel *goquery.Selection
}

func (n goqueryNode) Name() string {
	return goquery.NodeName(n.sel)
}

func (n goqueryNode) Text() string {
	return n.sel.Text()
}

func (n goqueryNode) HTML() (string, error) {
	return n.sel.Html()
}
