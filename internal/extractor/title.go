package extractor

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var titleSuffix = regexp.MustCompile(`(?i) System Requirements.*$`)

// ExtractTitle returns the game name from the first <h1>, falling back to
// <title>. The " System Requirements..." suffix is removed. It returns nil
// when neither element exists or the name is empty.
func ExtractTitle(html string) *string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil
	}

	sel := doc.Find("h1").First()
	if sel.Length() == 0 {
		sel = doc.Find("title").First()
	}
	if sel.Length() == 0 {
		return nil
	}

	name := strings.Join(strings.Fields(sel.Text()), " ")
	name = strings.TrimSpace(titleSuffix.ReplaceAllString(name, ""))
	if name == "" {
		return nil
	}
	return &name
}
