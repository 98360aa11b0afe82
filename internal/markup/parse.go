package markup

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

func bodyContext() *html.Node {
	return &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
}

// ParseFragment parses fragment as the content of a <body> element. The
// returned nodes are detached and can be re-parented by the caller.
func ParseFragment(fragment string) ([]*html.Node, error) {
	nodes, err := html.ParseFragment(strings.NewReader(fragment), bodyContext())
	if err != nil {
		return nil, fmt.Errorf("parse fragment: %w", err)
	}
	return nodes, nil
}

// Render serializes nodes in order.
func Render(nodes []*html.Node) (string, error) {
	var b strings.Builder
	for _, n := range nodes {
		if err := html.Render(&b, n); err != nil {
			return "", fmt.Errorf("render fragment: %w", err)
		}
	}
	return b.String(), nil
}

// Normalize returns the canonical serialization of fragment: unclosed tags are
// closed, void elements are self-closed and attribute values are quoted.
// Normalizing an already normalized fragment returns it unchanged.
func Normalize(fragment string) (string, error) {
	nodes, err := ParseFragment(fragment)
	if err != nil {
		return "", err
	}
	return Render(nodes)
}

// wrap attaches nodes to a detached container element so they can be walked
// as one tree.
func wrap(nodes []*html.Node) *html.Node {
	root := &html.Node{Type: html.ElementNode, Data: "div", DataAtom: atom.Div}
	for _, n := range nodes {
		if n.Parent != nil {
			n.Parent.RemoveChild(n)
		}
		root.AppendChild(n)
	}
	return root
}
