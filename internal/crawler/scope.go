package crawler

import (
	"fmt"
	"net/url"
	"path/filepath"
	"regexp"
	"strings"
)

// Scope decides which links the spider may enqueue.
// Seeds bypass the scope; every discovered link must pass it.
type Scope struct {
	// Domain is the host (with port, if any) links must share.
	Domain string

	// PathPrefix is a case-insensitive path prefix. Empty allows every path.
	PathPrefix string

	// IgnorePatterns are glob patterns of paths that are never followed.
	IgnorePatterns []string
}

// Allows reports whether link is on the domain, under the prefix and not ignored.
func (s *Scope) Allows(link string) bool {
	u, err := url.Parse(link)
	if err != nil {
		return false
	}
	if !s.SameDomain(u) {
		return false
	}

	path := u.Path
	if path == "" {
		path = "/"
	}
	if s.PathPrefix != "" && !strings.HasPrefix(strings.ToLower(path), strings.ToLower(s.PathPrefix)) {
		return false
	}
	for _, pattern := range s.IgnorePatterns {
		if matchPattern(pattern, path) {
			return false
		}
	}
	return true
}

// SameDomain reports whether u is on the scope's domain.
func (s *Scope) SameDomain(u *url.URL) bool {
	return strings.EqualFold(u.Host, s.Domain)
}

// TargetPattern builds the regexp matching requirement pages:
// https://<domain><prefix>/<slug>/<numeric id>, case-insensitive.
func TargetPattern(domain, prefix string) *regexp.Regexp {
	prefix = "/" + strings.Trim(prefix, "/")
	return regexp.MustCompile(fmt.Sprintf(`(?i)^https://%s%s/[a-z0-9-]+/[0-9]+$`,
		regexp.QuoteMeta(domain), regexp.QuoteMeta(prefix)))
}

// matchPattern checks if a path matches a glob pattern.
// Patterns can use:
//   - * to match any sequence of non-separator characters
//   - ? to match any single character
//
// Examples:
//   - "/cyri/ajax/*" matches "/cyri/ajax/search"
//   - "*.pdf" matches "/docs/file.pdf"
func matchPattern(pattern, path string) bool {
	// "/dir/*" also matches deeper paths under /dir.
	if strings.HasSuffix(pattern, "/*") {
		prefix := strings.TrimSuffix(pattern, "/*")
		if strings.HasPrefix(path, prefix+"/") || path == prefix {
			return true
		}
	}

	if strings.HasPrefix(pattern, "*.") {
		if strings.HasSuffix(path, strings.TrimPrefix(pattern, "*")) {
			return true
		}
	}

	if matched, err := filepath.Match(pattern, path); err == nil && matched {
		return true
	}

	// Bare filename patterns like "login*" match the last segment.
	if strings.Contains(pattern, "*") && !strings.Contains(pattern, "/") {
		if matched, err := filepath.Match(pattern, filepath.Base(path)); err == nil && matched {
			return true
		}
	}

	return false
}
