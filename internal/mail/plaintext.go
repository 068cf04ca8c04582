package mail

import (
	"html"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// PlainText renders an HTML body as text for the text/plain alternative. Block
// elements end a line and blank lines are dropped. Input that cannot be parsed
// is returned unchanged.
func PlainText(body string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return body
	}

	doc.Find("head, script, style").Remove()
	doc.Find("br").ReplaceWithHtml("\n")
	doc.Find("p, div, li, tr, h1, h2, h3, h4, h5, h6, blockquote, pre").AppendHtml("\n")
	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		if href != "" && href != strings.TrimSpace(s.Text()) {
			s.AppendHtml(" (" + html.EscapeString(href) + ")")
		}
	})

	lines := strings.Split(doc.Text(), "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.Join(strings.Fields(line), " ")
		if line != "" {
			out = append(out, line)
		}
	}
	return strings.Join(out, "\n")
}
