package extractor

import (
	"github.com/nao1215/cyriscan/internal/model"
)

// Extractor turns a fetched requirement page into a record.
type Extractor interface {
	Extract(page *model.FetchedPage) *model.RequirementRecord
}

// HeuristicExtractor is the text based Extractor for CYRI pages.
type HeuristicExtractor struct {
	minimum     []SectionRule
	recommended []SectionRule
}

// Option configures a HeuristicExtractor.
type Option func(*HeuristicExtractor)

// WithMinimumRules replaces the minimum block rules.
func WithMinimumRules(rules []SectionRule) Option {
	return func(e *HeuristicExtractor) {
		e.minimum = rules
	}
}

// WithRecommendedRules replaces the recommended block rules.
func WithRecommendedRules(rules []SectionRule) Option {
	return func(e *HeuristicExtractor) {
		e.recommended = rules
	}
}

// New returns an extractor using MinimumRules and RecommendedRules.
func New(opts ...Option) *HeuristicExtractor {
	e := &HeuristicExtractor{
		minimum:     MinimumRules(),
		recommended: RecommendedRules(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract implements Extractor.
func (e *HeuristicExtractor) Extract(page *model.FetchedPage) *model.RequirementRecord {
	html := page.HTML()
	return &model.RequirementRecord{
		Source: model.SourceCYRI,
		URL:    page.URL,
		Game:   ExtractTitle(html),
		Requirements: model.RequirementBlocks{
			Minimum:     ApplyRules(html, e.minimum),
			Recommended: ApplyRules(html, e.recommended),
		},
	}
}

// ParsePage extracts a record from raw HTML with the default rules.
func ParsePage(html, url string) *model.RequirementRecord {
	return New().Extract(&model.FetchedPage{URL: url, Body: []byte(html)})
}
