package courtlistener

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// htmlToText extracts readable text from an HTML opinion body. Script and
// style elements are dropped and whitespace runs collapse to single spaces.
func htmlToText(html string) string {
	if strings.TrimSpace(html) == "" {
		return ""
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return ""
	}
	doc.Find("script, style").Remove()

	return normalizeWhitespace(doc.Text())
}

func normalizeWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
