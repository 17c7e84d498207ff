// Package extract implements the Extractor interface.
// It isolates the main content of an HTML input by:
//  1. Finding the best content container (<main>, <article>, or <body>)
//  2. Removing noise elements (nav, footer, scripts, images, etc.)
package extract

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// noiseSelectors are removed before extraction. Tables and lists are kept;
// they are what the converter cares about most.
var noiseSelectors = []string{
	"script", "style", "noscript", "template",
	"nav", "footer", "header",
	"img", "picture", "figure", "figcaption",
	"iframe", "video", "audio",
	"svg", "canvas",
	"form", "button", "input", "select", "textarea",
	".sidebar", ".menu", ".navigation", ".ads", ".advertisement",
	"[aria-hidden=true]",
}

// HTMLExtractor strips noise from HTML and returns the main content fragment.
type HTMLExtractor struct{}

// New creates an HTMLExtractor.
func New() *HTMLExtractor {
	return &HTMLExtractor{}
}

// Extract returns a cleaned HTML fragment holding only the main content,
// and the document title: <title>, else the first <h1>.
func (e *HTMLExtractor) Extract(html string) (string, string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", "", fmt.Errorf("parsing HTML: %w", err)
	}

	title := strings.TrimSpace(doc.Find("head title").First().Text())
	if title == "" {
		title = strings.TrimSpace(doc.Find("h1").First().Text())
	}

	for _, sel := range noiseSelectors {
		doc.Find(sel).Remove()
	}

	var content *goquery.Selection
	for _, tag := range []string{"main", "article", "body"} {
		sel := doc.Find(tag)
		if sel.Length() > 0 {
			content = sel.First()
			break
		}
	}
	if content == nil {
		return "", title, fmt.Errorf("no content container found in HTML")
	}

	result, err := content.Html()
	if err != nil {
		return "", title, fmt.Errorf("serializing content: %w", err)
	}
	return result, title, nil
}

// Language returns the lang attribute of the <html> element, if any.
func Language(html string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return ""
	}
	lang, _ := doc.Find("html").First().Attr("lang")
	return strings.TrimSpace(lang)
}
