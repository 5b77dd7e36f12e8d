// Package extract pulls English meanings out of dictionary result pages.
package extract

import (
	"bytes"
	"fmt"
	"regexp"

	"github.com/k3a/html2text"
	"golang.org/x/net/html"

	"github.com/ben-kodbiz/quranlingo/internal/util"
)

// Class names of the dictionary's result panel
const (
	PanelClass   = "panel-body"
	ResultsClass = "meaning-results"
)

// enumeration splits a flattened results panel on "1." style numbering and
// bullet marks
var enumeration = regexp.MustCompile(`\d+\.\s*|•\s*`)

// Meanings returns the meanings listed on a dictionary result page, in page
// order. List items under the results panel are preferred; when there are
// none the panel text is split on its enumeration marks. A page without a
// results panel yields no meanings and no error.
func Meanings(page string) ([]string, error) {
	doc, err := parseHTML(page)
	if err != nil {
		return nil, fmt.Errorf("parse HTML: %w", err)
	}

	var meanings []string
	for _, li := range selectDescendants(doc, byClass(PanelClass), byClass(ResultsClass), byTag("li")) {
		if m := util.FoldSpace(textContent(li)); m != "" {
			meanings = append(meanings, m)
		}
	}
	if len(meanings) > 0 {
		return meanings, nil
	}

	for _, panel := range selectDescendants(doc, byClass(PanelClass), byClass(ResultsClass)) {
		text, err := panelText(panel)
		if err != nil {
			return nil, err
		}
		for _, part := range enumeration.Split(text, -1) {
			if m := util.FoldSpace(part); m != "" {
				meanings = append(meanings, m)
			}
		}
	}
	return meanings, nil
}

// panelText renders a results panel back to HTML and flattens it to plain
// text
func panelText(n *html.Node) (string, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return "", fmt.Errorf("render results panel: %w", err)
	}
	return html2text.HTML2Text(buf.String()), nil
}
