// Package textcache normalizes feature text for matching and caches the
// result, since descriptions are HTML-bearing and re-normalizing ~1,900 of
// them on every search is wasted work.
package textcache

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/text/cases"
)

// Fold case-folds a string for case-insensitive comparison.
//
// A cases.Caser carries internal state, so a fresh one is taken per call
// rather than shared.
func Fold(s string) string {
	return cases.Fold().String(s)
}

// StripMarkup extracts the visible text from an HTML fragment, collapsing
// runs of whitespace to single spaces. Plain text passes straight through.
func StripMarkup(s string) string {
	if !strings.ContainsRune(s, '<') {
		return collapseSpace(s)
	}

	doc, err := html.Parse(strings.NewReader(s))
	if err != nil {
		// html.Parse is tolerant; this is effectively unreachable, but a
		// parse failure still must not lose the text.
		return collapseSpace(s)
	}

	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		switch n.Type {
		case html.TextNode:
			sb.WriteString(n.Data)
			sb.WriteByte(' ')
		case html.ElementNode:
			if n.Data == "script" || n.Data == "style" {
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return collapseSpace(sb.String())
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
