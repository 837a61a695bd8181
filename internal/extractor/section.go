package extractor

import (
	"regexp"
	"strings"

	"github.com/nao1215/cyriscan/internal/model"
)

// MaxSectionWindow bounds how many bytes after a header belong to its section.
const MaxSectionWindow = 8000

// ExtractSection returns the raw text between the first case-insensitive
// occurrence of header and the nearest following stop header. The section
// is cut at MaxSectionWindow bytes or the end of html, whichever comes first.
// It returns false when header does not occur.
func ExtractSection(html, header string, stopHeaders []string) (string, bool) {
	if header == "" {
		return "", false
	}
	lower := asciiLower(html)
	idx := strings.Index(lower, asciiLower(header))
	if idx < 0 {
		return "", false
	}
	start := idx + len(header)

	end := len(html)
	for _, stop := range stopHeaders {
		if stop == "" {
			continue
		}
		if p := strings.Index(lower[start:], asciiLower(stop)); p >= 0 && start+p < end {
			end = start + p
		}
	}
	end = min(end, start+MaxSectionWindow)

	return html[start:end], true
}

// asciiLower lowercases ASCII letters only, so byte offsets in the result
// match the input.
func asciiLower(s string) string {
	b := []byte(s)
	for i, c := range b {
		if 'A' <= c && c <= 'Z' {
			b[i] = c + ('a' - 'A')
		}
	}
	return string(b)
}

var (
	breakTag      = regexp.MustCompile(`(?i)<br\s*/?>\s*`)
	blockCloseTag = regexp.MustCompile(`(?i)</(p|div|li|h[1-6])\s*>`)
	blockOpenTag  = regexp.MustCompile(`(?i)<(p|div|li|h[1-6])(\s[^>]*)?>`)
	anyTag        = regexp.MustCompile(`<[^>]*>`)
	manyNewlines  = regexp.MustCompile(`\n{3,}`)

	entities = strings.NewReplacer(
		"&nbsp;", " ",
		"&amp;", "&",
		"&lt;", "<",
		"&gt;", ">",
		"&quot;", `"`,
		"&#39;", "'",
	)
)

// HTMLToText turns an HTML fragment into plain text lines. Block level tags
// become line breaks before the remaining tags are stripped, so list items
// stay on their own lines.
func HTMLToText(fragment string) string {
	s := breakTag.ReplaceAllString(fragment, "\n")
	s = blockCloseTag.ReplaceAllString(s, "\n")
	s = blockOpenTag.ReplaceAllString(s, "\n")
	s = anyTag.ReplaceAllString(s, "")
	s = entities.Replace(s)
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	s = manyNewlines.ReplaceAllString(s, "\n\n")
	return strings.TrimSpace(s)
}

// fieldLine is the shape of a requirement line on CYRI pages: an uppercase
// label of 2 to 31 characters followed by a colon.
var fieldLine = regexp.MustCompile(`^[A-Z][A-Z ]{1,30}:\s*`)

// FilterFieldLines returns the trimmed lines of text that look like
// "LABEL: value". Everything else on the page is boilerplate.
func FilterFieldLines(text string) []string {
	out := make([]string, 0)
	for line := range strings.SplitSeq(text, "\n") {
		line = strings.TrimSpace(line)
		if line != "" && fieldLine.MatchString(line) {
			out = append(out, line)
		}
	}
	return out
}

var nonAlnum = regexp.MustCompile(`[^a-z0-9]+`)

// NormalizeKey turns a field label into a map key: "Graphics Card" becomes
// "graphics_card".
func NormalizeKey(label string) string {
	return strings.Trim(nonAlnum.ReplaceAllString(strings.ToLower(label), "_"), "_")
}

// ParseFields splits each line on its first colon into a normalized key and
// a trimmed value. Lines without a colon, an empty key or an empty value
// are skipped. A repeated key keeps the last value.
func ParseFields(text string) model.Requirements {
	fields := make(model.Requirements)
	for line := range strings.SplitSeq(text, "\n") {
		label, value, ok := strings.Cut(strings.TrimSpace(line), ":")
		if !ok {
			continue
		}
		key := NormalizeKey(label)
		value = strings.TrimSpace(value)
		if key == "" || value == "" {
			continue
		}
		fields[key] = value
	}
	return fields
}
