package parser

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Template and UI imagery lives under a path whose fourth segment is this
// marker; it never belongs to a transient.
const siteChromeSegment = "site"

// ExtractImageURLs collects classification-image references from one image
// frame. Relative CGI references are made absolute against the main page's
// base path (the main page URL minus its trailing filename); everything
// else is passed through untouched.
func ExtractImageURLs(html, mainPage string) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parse image frame: %w", err)
	}

	base := basePath(mainPage)

	var urls []string
	doc.Find("img").Each(func(_ int, img *goquery.Selection) {
		src, ok := img.Attr("src")
		if !ok || src == "" {
			return
		}
		if segs := strings.Split(src, "/"); len(segs) > 3 && segs[3] == siteChromeSegment {
			return
		}
		if isCGIRef(src) {
			src = base + src
		}
		urls = append(urls, src)
	})

	return urls, nil
}

// isCGIRef reports whether the reference points at a CGI script, which the
// server emits host-relative.
func isCGIRef(src string) bool {
	return len(src) >= 4 && src[1:4] == "cgi"
}

// basePath strips everything after the last slash of the main page URL, so
// a root-relative CGI reference appends cleanly.
func basePath(mainPage string) string {
	idx := strings.LastIndex(mainPage, "/")
	if idx < 0 {
		return mainPage
	}
	return mainPage[:idx]
}
