// Package sanitize reduces untrusted rich text to plain text. The backend's
// explanation field may carry arbitrary markup; anything rendered outside a
// markdown-aware surface goes through Strip first.
package sanitize

import (
	"strings"

	"golang.org/x/net/html"
)

// Strip removes HTML markup from s and returns the remaining text with
// whitespace collapsed. Script and style bodies are dropped entirely.
// Input that contains no markup passes through (modulo whitespace).
func Strip(s string) string {
	if !strings.ContainsAny(s, "<>") {
		return cleanText(s)
	}

	doc, err := html.Parse(strings.NewReader(s))
	if err != nil {
		// Unparseable input: fall back to dropping angle brackets so no
		// tag-like content survives.
		replacer := strings.NewReplacer("<", " ", ">", " ")
		return cleanText(replacer.Replace(s))
	}

	return cleanText(textContent(doc))
}

// textContent walks the parsed tree collecting text nodes.
func textContent(n *html.Node) string {
	if n.Type == html.ElementNode {
		if n.Data == "script" || n.Data == "style" {
			return ""
		}
	}

	var text strings.Builder
	if n.Type == html.TextNode {
		text.WriteString(n.Data)
		text.WriteString(" ")
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		text.WriteString(textContent(c))
	}
	return text.String()
}

// cleanText collapses runs of whitespace into single spaces.
func cleanText(text string) string {
	return strings.TrimSpace(strings.Join(strings.Fields(text), " "))
}
