package crawler

import (
	"net/url"
	"strings"
)

// Canonicalize normalizes raw into the key used for visited dedup.
// The fragment is dropped, scheme and host are lowercased, an empty path
// becomes "/", and trailing slashes are removed from non-root paths.
// It returns false when raw does not parse or is not an absolute http(s) URL.
//
// Canonicalize is idempotent: Canonicalize(Canonicalize(u)) == Canonicalize(u).
func Canonicalize(raw string) (string, bool) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return "", false
	}
	return canonicalURL(u)
}

func canonicalURL(u *url.URL) (string, bool) {
	scheme := strings.ToLower(u.Scheme)
	if (scheme != "http" && scheme != "https") || u.Host == "" {
		return "", false
	}

	c := *u
	c.Scheme = scheme
	c.Host = strings.ToLower(u.Host)
	c.Fragment = ""
	c.RawFragment = ""

	if c.Path == "" {
		c.Path = "/"
	}
	if len(c.Path) > 1 && strings.HasSuffix(c.Path, "/") {
		c.Path = strings.TrimRight(c.Path, "/")
		if c.Path == "" {
			c.Path = "/"
		}
	}
	// Path was edited; let String re-escape it.
	c.RawPath = ""

	return c.String(), true
}
