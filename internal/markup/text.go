package markup

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// legacyTagPattern is the historical tag matcher: '<', one or more non-'<'
// characters (shortest match), then '>'.
var legacyTagPattern = regexp.MustCompile(`<[^<]+?>`)

// rawTextElements hold text the parser never decodes.
const rawTextElements = "script, style, xmp, iframe, noembed, noframes, noscript"

// Text returns the text content of fragment with all markup removed. Entity
// references are returned as written in the source, so "&lt;" stays "&lt;".
func Text(fragment string) (string, error) {
	// Every '&' is escaped before parsing; the parser's own decoding then
	// restores the source spelling of each reference.
	nodes, err := ParseFragment(strings.ReplaceAll(fragment, "&", "&amp;"))
	if err != nil {
		return "", err
	}
	doc := goquery.NewDocumentFromNode(wrap(nodes))
	doc.Find(rawTextElements).Contents().Each(func(_ int, s *goquery.Selection) {
		if n := s.Get(0); n.Type == html.TextNode {
			n.Data = strings.ReplaceAll(n.Data, "&amp;", "&")
		}
	})
	return doc.Text(), nil
}

// StripTags deletes every match of the legacy tag pattern and leaves the rest
// of s, entities included, untouched. Tags containing a nested '<' are not
// removed cleanly.
func StripTags(s string) string {
	return legacyTagPattern.ReplaceAllString(s, "")
}
