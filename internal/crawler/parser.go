package crawler

import (
	"bytes"
	"io"
	"net/url"
	"strings"

	"golang.org/x/net/html"
)

// Parser extracts links from a fetched HTML page.
//
// Design decision: We use golang.org/x/net/html for parsing rather than
// regex because:
//  1. It correctly handles malformed HTML common on the web
//  2. Attribute quoting and case variations need no special handling
//  3. Relative links can be resolved against the page URL
type Parser struct {
	// baseURL is the URL of the page being parsed, used for resolving relative URLs.
	baseURL *url.URL
}

// ParseResult contains the links found on a page.
type ParseResult struct {
	// InternalLinks holds the same-host http(s) links in canonical form,
	// deduplicated, in document order.
	InternalLinks []string
}

// NewParser creates a new HTML parser with the given base URL.
// The base URL is used to resolve relative links.
func NewParser(baseURL string) (*Parser, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, err
	}
	return &Parser{baseURL: u}, nil
}

// Parse walks the document and collects <a href> links.
func (p *Parser) Parse(content io.Reader) (*ParseResult, error) {
	doc, err := html.Parse(content)
	if err != nil {
		return nil, err
	}

	result := &ParseResult{
		InternalLinks: make([]string, 0),
	}
	seen := make(map[string]struct{})

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "a" {
			p.addLink(getAttr(n, "href"), seen, result)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return result, nil
}

func (p *Parser) addLink(href string, seen map[string]struct{}, result *ParseResult) {
	link := p.resolveURL(href)
	if link == "" {
		return
	}
	if _, dup := seen[link]; dup {
		return
	}
	seen[link] = struct{}{}

	if u, err := url.Parse(link); err == nil && strings.EqualFold(u.Host, p.baseURL.Host) {
		result.InternalLinks = append(result.InternalLinks, link)
	}
}

// resolveURL resolves href against the base URL and canonicalizes it.
// Non-navigational schemes and bare fragments resolve to "".
func (p *Parser) resolveURL(href string) string {
	href = strings.TrimSpace(href)
	if href == "" || href == "#" {
		return ""
	}
	lower := strings.ToLower(href)
	for _, scheme := range []string{"javascript:", "mailto:", "tel:", "data:"} {
		if strings.HasPrefix(lower, scheme) {
			return ""
		}
	}

	u, err := url.Parse(href)
	if err != nil {
		return ""
	}
	canon, ok := canonicalURL(p.baseURL.ResolveReference(u))
	if !ok {
		return ""
	}
	return canon
}

// ExtractLinks is a convenience wrapper returning the same-host links of body.
// Parse failures yield no links.
func ExtractLinks(body []byte, pageURL string) []string {
	p, err := NewParser(pageURL)
	if err != nil {
		return nil
	}
	result, err := p.Parse(bytes.NewReader(body))
	if err != nil {
		return nil
	}
	return result.InternalLinks
}

// getAttr retrieves an attribute value from an HTML node.
func getAttr(n *html.Node, key string) string {
	for _, attr := range n.Attr {
		if attr.Key == key {
			return attr.Val
		}
	}
	return ""
}
