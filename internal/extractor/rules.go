package extractor

import (
	"strings"

	"github.com/nao1215/cyriscan/internal/model"
)

// SectionRule describes one way to find a requirement block.
type SectionRule struct {
	// Name identifies the rule in logs and tests.
	Name string

	// Header starts the section (case-insensitive).
	Header string

	// StopHeaders end the section at the nearest occurrence.
	StopHeaders []string
}

// Section headers used on CYRI game pages.
const (
	HeaderMinimum     = "System Requirements (Minimum)"
	HeaderRecommended = "Recommended Requirements"
	headerGPUs        = "Latest Graphic Cards"
	headerDrivers     = "Driver Update"
	headerLatency     = "Online games Test Latency"
)

// MinimumRules are tried in order; the first rule that yields a block wins.
//
//  1. minimum-strict stops at any header that follows the minimum list.
//  2. minimum-loose stops only at the recommended header. Some pages render
//     the sidebar headers inside the minimum list, which makes rule 1 cut
//     the section before any field line.
func MinimumRules() []SectionRule {
	return []SectionRule{
		{
			Name:        "minimum-strict",
			Header:      HeaderMinimum,
			StopHeaders: []string{HeaderRecommended, headerGPUs, headerDrivers, headerLatency},
		},
		{
			Name:        "minimum-loose",
			Header:      HeaderMinimum,
			StopHeaders: []string{HeaderRecommended},
		},
	}
}

// RecommendedRules locate the recommended block.
func RecommendedRules() []SectionRule {
	return []SectionRule{
		{
			Name:        "recommended",
			Header:      HeaderRecommended,
			StopHeaders: []string{headerGPUs, headerDrivers, headerLatency},
		},
	}
}

// Section applies one rule. It returns nil when the header is absent or no
// field line survives filtering, which callers read as "section not found".
// A non-nil result may still be empty when field lines carry no values.
func Section(html string, rule SectionRule) model.Requirements {
	raw, ok := ExtractSection(html, rule.Header, rule.StopHeaders)
	if !ok {
		return nil
	}
	lines := FilterFieldLines(HTMLToText(raw))
	if len(lines) == 0 {
		return nil
	}
	return ParseFields(strings.Join(lines, "\n"))
}

// ApplyRules returns the block of the first rule that finds one.
func ApplyRules(html string, rules []SectionRule) model.Requirements {
	for _, rule := range rules {
		if block := Section(html, rule); block != nil {
			return block
		}
	}
	return nil
}
