package ingestion

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var htmlTag = regexp.MustCompile(`(?i)<\s*(html|body|div|p|ul|ol|li|br|h[1-6]|span|section|article|table)\b[^>]*>`)

// LooksLikeHTML reports whether s appears to be markup rather than plain text.
func LooksLikeHTML(s string) bool {
	head := strings.TrimSpace(s)
	if len(head) > 512 {
		head = head[:512]
	}
	lower := strings.ToLower(head)
	if strings.HasPrefix(lower, "<!doctype html") || strings.HasPrefix(lower, "<html") {
		return true
	}
	return len(htmlTag.FindAllStringIndex(s, 2)) >= 2
}

// HTMLToText converts an HTML document or fragment to plain text, one block per line.
// Scripts, styles, navigation and footers are dropped.
func HTMLToText(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}

	doc.Find("script, style, noscript, nav, footer, iframe, svg").Remove()
	doc.Find("p, li, div, tr, h1, h2, h3, h4, h5, h6, section, article").Each(func(_ int, s *goquery.Selection) {
		s.AppendHtml("\n")
	})
	doc.Find("li").Each(func(_ int, s *goquery.Selection) {
		s.PrependHtml("- ")
	})
	doc.Find("br").Each(func(_ int, s *goquery.Selection) {
		s.ReplaceWithHtml("\n")
	})

	lines := strings.Split(doc.Text(), "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		if line = strings.Join(strings.Fields(line), " "); line != "" {
			out = append(out, line)
		}
	}
	return strings.Join(out, "\n"), nil
}
