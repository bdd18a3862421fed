package content

import (
	"strings"

	"golang.org/x/net/html"
)

// Tags whose text is never readable page content.
var skippedTags = map[string]bool{
	"script":   true,
	"style":    true,
	"noscript": true,
	"svg":      true,
	"iframe":   true,
	"head":     true,
	"template": true,
}

// Text parses an HTML fragment and returns its visible text with collapsed
// whitespace. Unparsable input falls back to the raw string so a broken page
// still yields something for the oracle to look at.
func Text(rawHTML string) string {
	doc, err := html.Parse(strings.NewReader(rawHTML))
	if err != nil {
		return normalizeSpace(rawHTML)
	}

	var sb strings.Builder
	collectText(doc, &sb)
	return normalizeSpace(sb.String())
}

// Truncate clamps s to the given character budget, marking the cut so the
// oracle knows the text continues.
func Truncate(s string, budget int) string {
	if budget <= 0 || len(s) <= budget {
		return s
	}
	return s[:budget] + "\n... (truncated)"
}

func collectText(n *html.Node, sb *strings.Builder) {
	switch n.Type {
	case html.TextNode:
		text := strings.TrimSpace(n.Data)
		if text != "" {
			sb.WriteString(text)
			sb.WriteString(" ")
		}
		return
	case html.ElementNode:
		if skippedTags[n.Data] {
			return
		}
	case html.CommentNode:
		return
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(c, sb)
	}
}

func normalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
