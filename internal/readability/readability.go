package readability

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/quizsmith/backend/internal/content"
)

const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// Article is the best-effort readable form of a web page.
type Article struct {
	Title string
	Text  string
}

// chrome elements never contribute to article text.
const stripSelector = "script, style, noscript, template, iframe, nav, header, footer, aside, form, button"

// candidate containers, in preference order.
var contentSelectors = []string{"article", "main", "[role=main]", "#content", ".content", ".post"}

// Extract fetches a URL and returns its readable article title and text.
// The text is whitespace-normalized and bounded to the source budget. A page
// that fetches fine but carries no readable text yields an empty-text
// Article, not an error: whether an empty source is acceptable is the
// caller's decision.
func Extract(ctx context.Context, client *http.Client, pageURL string) (Article, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return Article{}, err
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := client.Do(req)
	if err != nil {
		return Article{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Article{}, errors.New("failed to fetch URL: " + resp.Status)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return Article{}, err
	}
	doc.Find(stripSelector).Remove()

	text := content.Normalize(pickContent(doc).Text())

	return Article{
		Title: pageTitle(doc),
		Text:  content.Truncate(text, content.MaxSourceLength),
	}, nil
}

// pickContent returns the first candidate container with a substantial
// amount of text, falling back to the document body.
func pickContent(doc *goquery.Document) *goquery.Selection {
	for _, sel := range contentSelectors {
		s := doc.Find(sel).First()
		if s.Length() > 0 && len(strings.TrimSpace(s.Text())) >= 140 {
			return s
		}
	}
	return doc.Find("body")
}

func pageTitle(doc *goquery.Document) string {
	if og, ok := doc.Find(`meta[property="og:title"]`).Attr("content"); ok {
		if og = strings.TrimSpace(og); og != "" {
			return og
		}
	}
	return strings.TrimSpace(doc.Find("title").First().Text())
}
