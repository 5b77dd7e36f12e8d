package extract

import (
	"strings"

	"golang.org/x/net/html"
)

// parseHTML parses an HTML string into a node tree
func parseHTML(content string) (*html.Node, error) {
	return html.Parse(strings.NewReader(content))
}

// hasClass checks if a node has a specific CSS class
func hasClass(n *html.Node, className string) bool {
	if n.Type != html.ElementNode {
		return false
	}

	for _, attr := range n.Attr {
		if attr.Key == "class" {
			for _, class := range strings.Fields(attr.Val) {
				if class == className {
					return true
				}
			}
		}
	}
	return false
}

// byClass matches elements carrying className
func byClass(className string) func(*html.Node) bool {
	return func(n *html.Node) bool { return hasClass(n, className) }
}

// byTag matches elements named tag
func byTag(tag string) func(*html.Node) bool {
	return func(n *html.Node) bool { return n.Type == html.ElementNode && n.Data == tag }
}

// findAll returns the descendants of n (n excluded) matching predicate, in
// document order
func findAll(n *html.Node, predicate func(*html.Node) bool) []*html.Node {
	var results []*html.Node

	var walk func(*html.Node)
	walk = func(node *html.Node) {
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			if predicate(c) {
				results = append(results, c)
			}
			walk(c)
		}
	}

	walk(n)
	return results
}

// selectDescendants applies a descendant-combinator chain: each predicate is
// matched below the nodes matched by the previous one. Nodes reached through
// more than one ancestor are returned once.
func selectDescendants(root *html.Node, chain ...func(*html.Node) bool) []*html.Node {
	current := []*html.Node{root}
	for _, predicate := range chain {
		seen := make(map[*html.Node]bool)
		var next []*html.Node
		for _, n := range current {
			for _, m := range findAll(n, predicate) {
				if !seen[m] {
					seen[m] = true
					next = append(next, m)
				}
			}
		}
		current = next
	}
	return current
}

// textContent concatenates the text nodes below n, each trimmed, separated
// by a space
func textContent(n *html.Node) string {
	if n.Type == html.TextNode {
		return strings.TrimSpace(n.Data)
	}

	var parts []string
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if t := textContent(c); t != "" {
			parts = append(parts, t)
		}
	}
	return strings.Join(parts, " ")
}
