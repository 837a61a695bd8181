package model

import "time"

// SourceCYRI identifies records scraped from the Can You Run It pages.
const SourceCYRI = "systemrequirementslab"

// Requirements maps a normalized field name (e.g. "cpu", "ram", "video_card")
// to the raw value string found on the page.
type Requirements map[string]string

// Get returns the first non-empty value among keys, in the given order.
// The order documents precedence when a page uses several labels for the
// same field.
func (r Requirements) Get(keys ...string) (string, bool) {
	for _, k := range keys {
		if v, ok := r[k]; ok && v != "" {
			return v, true
		}
	}
	return "", false
}

// RequirementBlocks groups the minimum and recommended sections of a page.
//
// A nil block means the section was not found on the page. Callers must keep
// that distinct from a found-but-empty block, so the JSON form is null rather
// than {}.
type RequirementBlocks struct {
	Minimum     Requirements `json:"minimum"`
	Recommended Requirements `json:"recommended"`
}

// RequirementRecord is the output unit of the scraper.
type RequirementRecord struct {
	// Source names the site the record was scraped from.
	Source string `json:"source"`

	// URL is the page the record was extracted from.
	URL string `json:"url"`

	// Game is the game title, nil when the page had no usable heading.
	Game *string `json:"game"`

	// Requirements holds the parsed requirement blocks.
	Requirements RequirementBlocks `json:"requirements"`

	// Error is set instead of Requirements when the page could not be fetched.
	Error string `json:"error,omitempty"`

	// FetchedAt is when the page was fetched.
	FetchedAt time.Time `json:"fetchedAt,omitempty"`
}

// NewFailedRecord returns a record for a URL whose fetch failed.
func NewFailedRecord(url string, err error) *RequirementRecord {
	return &RequirementRecord{
		Source:    SourceCYRI,
		URL:       url,
		Error:     err.Error(),
		FetchedAt: time.Now(),
	}
}

// Failed reports whether the record represents a failed fetch.
func (r *RequirementRecord) Failed() bool {
	return r.Error != ""
}

// Title returns the game title, or the URL when the title is unknown.
func (r *RequirementRecord) Title() string {
	if r.Game != nil && *r.Game != "" {
		return *r.Game
	}
	return r.URL
}
