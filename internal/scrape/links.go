package scrape

import (
	"path"
	"strings"

	"golang.org/x/net/html"
)

// ZipLinkClass is the exact class attribute the listing pages put on
// anchors for downloadable zip releases.
const ZipLinkClass = "related-item file-type-zip"

// Positions of the DateKey inside an archive basename, e.g.
// "eiopa_rfr_20230331.zip": the 8 digits after the 10-character prefix.
// Inherited from the publisher's URL structure; revalidate on site changes.
const (
	dateKeyStart = 10
	dateKeyEnd   = 18
)

const extensionLen = 4 // ".zip"

// monthEndTokens are the canonical month-end day tokens (mmdd) that can
// appear in a release file name. 0229 covers leap years.
var monthEndTokens = []string{
	"0131", "0228", "0229", "0331", "0430", "0531",
	"0630", "0731", "0831", "0930", "1031", "1130", "1231",
}

// LinkIndex maps a release DateKey (yyyymmdd) to the archive URL it was
// discovered under.
type LinkIndex map[string]string

// LinkFilter decides whether a candidate href looks like a release archive.
// The default is deliberately heuristic; callers with a stricter convention
// can plug their own.
type LinkFilter func(href string) bool

// DefaultLinkFilter keeps hrefs whose character immediately before the
// 4-character extension is a digit. This excludes unrelated zip links whose
// names end in a non-numeric suffix.
func DefaultLinkFilter(href string) bool {
	if len(href) < extensionLen+1 {
		return false
	}
	c := href[len(href)-extensionLen-1]
	return c >= '0' && c <= '9'
}

// Extractor pulls release links out of a parsed listing page.
type Extractor struct {
	// Filter screens candidate hrefs; nil means DefaultLinkFilter.
	Filter LinkFilter
}

// Extract walks the document and returns the DateKey -> URL index of all
// qualifying anchors. Anchors whose href carries no month-end token are
// silently dropped. Pure function of the input tree.
func (e *Extractor) Extract(doc *html.Node) LinkIndex {
	filter := e.Filter
	if filter == nil {
		filter = DefaultLinkFilter
	}

	index := make(LinkIndex)
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "a" {
			if href, ok := qualifyingHref(n, filter); ok {
				if key, ok := dateKeyFromURL(href); ok {
					index[key] = href
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return index
}

// qualifyingHref returns the anchor's href when its class attribute exactly
// matches ZipLinkClass and the filter accepts the href.
func qualifyingHref(n *html.Node, filter LinkFilter) (string, bool) {
	var href, class string
	for _, attr := range n.Attr {
		switch attr.Key {
		case "href":
			href = attr.Val
		case "class":
			class = attr.Val
		}
	}
	if class != ZipLinkClass || href == "" || !filter(href) {
		return "", false
	}
	return href, true
}

// dateKeyFromURL scans rawURL for a month-end token (first match wins) and,
// on a hit, slices the DateKey out of the file name at the fixed offsets.
func dateKeyFromURL(rawURL string) (string, bool) {
	for _, token := range monthEndTokens {
		if !strings.Contains(rawURL, token) {
			continue
		}
		base := path.Base(rawURL)
		if len(base) < dateKeyEnd {
			return "", false
		}
		return base[dateKeyStart:dateKeyEnd], true
	}
	return "", false
}
