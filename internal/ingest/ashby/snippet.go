package ashby

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// htmlToText flattens the board's descriptionHtml into plain text for the
// alert snippet. Unparsable markup yields an empty string, never an error.
func htmlToText(html string) string {
	if strings.TrimSpace(html) == "" {
		return ""
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return ""
	}
	return cleanText(doc.Text())
}
