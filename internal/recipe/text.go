package recipe

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// PlainText converts provider HTML into collapsed plain text. Input that
// cannot be parsed is returned with whitespace collapsed.
func PlainText(html string) string {
	if strings.TrimSpace(html) == "" {
		return ""
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return collapseSpace(html)
	}

	doc.Find("script, style, iframe").Remove()
	return collapseSpace(doc.Text())
}

// Steps splits instruction HTML into steps. List items become one step each;
// instructions without a list are a single step.
func Steps(html string) []string {
	if strings.TrimSpace(html) == "" {
		return nil
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return []string{collapseSpace(html)}
	}
	doc.Find("script, style, iframe").Remove()

	var steps []string
	doc.Find("li").Each(func(_ int, s *goquery.Selection) {
		if text := collapseSpace(s.Text()); text != "" {
			steps = append(steps, text)
		}
	})
	if len(steps) > 0 {
		return steps
	}

	if text := collapseSpace(doc.Text()); text != "" {
		return []string{text}
	}
	return nil
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
