package model

import "strings"

// MaxPageSize is the maximum size of a page body kept in memory.
// The fetcher stops reading after this many decoded bytes.
const MaxPageSize = 5 * 1024 * 1024 // 5 MB

// FetchedPage is the result of fetching one URL.
// It lives only long enough to update the crawl state and to run the
// requirement extractor, then it is discarded.
type FetchedPage struct {
	// URL is the canonical URL that was requested.
	URL string `json:"url"`

	// StatusCode is the HTTP response status code.
	StatusCode int `json:"status_code"`

	// ContentType is the MIME type of the response.
	ContentType string `json:"content_type"`

	// Body is the decoded response body.
	Body []byte `json:"-"`

	// Links are the absolute, canonical, same-domain links found in anchor tags.
	// Filled by the crawler after parsing; the fetcher leaves it empty.
	Links []string `json:"links,omitempty"`
}

// HTML returns the body as a string.
func (p *FetchedPage) HTML() string {
	return string(p.Body)
}

// IsHTML reports whether the content type indicates HTML.
// An empty content type is treated as HTML because many servers omit it.
func (p *FetchedPage) IsHTML() bool {
	ct := strings.ToLower(p.ContentType)
	return ct == "" ||
		strings.HasPrefix(ct, "text/html") ||
		strings.HasPrefix(ct, "application/xhtml+xml")
}
