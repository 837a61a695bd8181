package scorer

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// alternativeSep splits "A or B", "A veya B", "A, B", "A / B" and "A | B".
var alternativeSep = regexp.MustCompile(`(?i)\s+(?:or|veya)\s+|[,/|]`)

// orQualifier matches "or better" style phrases, which must go before the
// "or" split turns their last word into a candidate.
var orQualifier = regexp.MustCompile(`(?i)\bor\s+(?:better|higher|faster|greater|equivalent|above|newer|later)\b`)

// SplitAlternatives splits a requirement value into candidate models.
// "Or better" qualifiers are removed first. Candidates are trimmed and
// empty ones dropped.
func SplitAlternatives(raw string) []string {
	raw = orQualifier.ReplaceAllString(raw, " ")
	parts := alternativeSep.Split(raw, -1)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

var (
	symbols       = strings.NewReplacer("™", " ", "®", " ", "©", " ")
	parenthetical = regexp.MustCompile(`\([^)]*\)|\[[^\]]*\]`)
	core2         = regexp.MustCompile(`(?i)\bcore\s*2\s*(duo|quad|extreme)\b`)

	boilerplate = regexp.MustCompile(`(?i)` +
		`\bor\s+(?:better|higher|faster|greater|equivalent|above|newer|later)\b` +
		`|(?:&|\band)\s+(?:above|better|higher)\b` +
		`|\bcompatible\b` +
		`|\bdirect\s*x\s*\d+(?:\.\d+)?\b|\bdx\s*\d+\b` +
		`|\bopengl\s*\d+(?:\.\d+)?\b|\bvulkan(?:\s*\d+(?:\.\d+)?)?\b` +
		`|\bshader\s+model\s*\d+(?:\.\d+)?\b` +
		`|\b\d+(?:\.\d+)?\s*(?:gb|mb)\b(?:\s*(?:of\s+)?v?ram\b)?` +
		`|\b\d+(?:\.\d+)?\s*[gm]hz\b`)

	brands = regexp.MustCompile(`(?i)\b(?:` +
		`intel|amd|nvidia|ati|geforce|radeon|` +
		`(?:dual|quad|hexa|octa)[\s-]core|core|` +
		`processor|cpu|gpu|graphics|series|card|video|with|tm` +
		`)\b`)

	spaces = regexp.MustCompile(`\s+`)
)

// CleanCandidate strips everything from a single candidate that is not part
// of the model name: trademark symbols, parenthetical asides, anything from
// "@" on, "or better" style phrases, API versions, memory sizes, clock
// speeds and brand words. "Ryzen" is kept because it is part of the model.
func CleanCandidate(raw string) string {
	s := symbols.Replace(raw)
	s = norm.NFKC.String(s)
	if at := strings.IndexByte(s, '@'); at >= 0 {
		s = s[:at]
	}
	s = parenthetical.ReplaceAllString(s, " ")
	s = core2.ReplaceAllString(s, "Core2 $1")
	s = boilerplate.ReplaceAllString(s, " ")
	s = brands.ReplaceAllString(s, " ")
	s = spaces.ReplaceAllString(s, " ")
	return strings.Trim(s, " -,;:.")
}

var (
	// gpuFamily matches a family prefix glued to or separated from its number.
	gpuFamily = regexp.MustCompile(`(?i)\b(gtx|rtx|rx|hd|r5|r7|r9|gt)\s*-?\s*(\d)`)

	// gluedSuffix matches a model number with its tier suffix attached, as in "5700XT".
	gluedSuffix = regexp.MustCompile(`(?i)\b(\d{3,5})(xtx|xt|ti|super)\b`)

	// cpuFamily matches Core i-series names such as "i5 4460" or "I7-8700k".
	cpuFamily = regexp.MustCompile(`(?i)\bi([3579])(?:[\s-]*(\d{3,5})([a-z]{0,2})\b)?`)

	suffixWords = map[string]string{
		"ti":    "Ti",
		"super": "SUPER",
		"xt":    "XT",
		"xtx":   "XTX",
	}
)

// Canonical rewrites family prefixes into a single spelling:
// "GTX970" and "gtx 970" become "GTX 970", "rx580" becomes "RX 580",
// "I5 4460" becomes "i5-4460". Suffix words are split off the number and
// cased ("5700xt" becomes "5700 XT", "super" becomes "SUPER").
func Canonical(s string) string {
	s = gpuFamily.ReplaceAllStringFunc(s, func(m string) string {
		sub := gpuFamily.FindStringSubmatch(m)
		return strings.ToUpper(sub[1]) + " " + sub[2]
	})
	s = cpuFamily.ReplaceAllStringFunc(s, func(m string) string {
		sub := cpuFamily.FindStringSubmatch(m)
		if sub[2] == "" {
			return "i" + sub[1]
		}
		return "i" + sub[1] + "-" + sub[2] + strings.ToUpper(sub[3])
	})

	s = gluedSuffix.ReplaceAllString(s, "$1 $2")

	words := strings.Fields(s)
	for i, w := range words {
		if r, ok := suffixWords[strings.ToLower(w)]; ok {
			words[i] = r
		}
	}
	return strings.Join(words, " ")
}

// NormalizeModel returns the first alternative of raw, cleaned and in
// canonical form. It returns "" when nothing is left.
func NormalizeModel(raw string) string {
	if cs := candidates(raw); len(cs) > 0 {
		return cs[0]
	}
	return ""
}

// candidates returns the cleaned, canonical, non-empty alternatives of raw.
func candidates(raw string) []string {
	alts := SplitAlternatives(raw)
	out := make([]string, 0, len(alts))
	for _, a := range alts {
		if c := Canonical(CleanCandidate(a)); c != "" {
			out = append(out, c)
		}
	}
	return out
}
