package report

import (
	"time"

	"github.com/nao1215/cyriscan/internal/model"
)

// Ranking is the input of every Writer.
type Ranking struct {
	// Version is the cyriscan version that produced the ranking.
	Version string `json:"version,omitempty"`

	// GeneratedAt is when the ranking was computed.
	GeneratedAt time.Time `json:"generatedAt"`

	// Source describes where the records came from (a file or the DB).
	Source string `json:"source,omitempty"`

	// Records is how many records were read, failed ones included.
	Records int `json:"records"`

	// Skipped is how many records were left out because their fetch failed.
	Skipped int `json:"skipped"`

	// Games are ordered by rank.
	Games []model.ScoredGame `json:"games"`
}

// NewRanking wraps games, which must already be ranked.
func NewRanking(games []model.ScoredGame, records int) *Ranking {
	if games == nil {
		games = []model.ScoredGame{}
	}
	return &Ranking{
		GeneratedAt: time.Now().UTC(),
		Records:     records,
		Skipped:     max(records-len(games), 0),
		Games:       games,
	}
}

// Top returns a copy holding only the first n games. n <= 0 keeps all.
func (r *Ranking) Top(n int) *Ranking {
	out := *r
	if n > 0 && n < len(r.Games) {
		out.Games = r.Games[:n]
	}
	return &out
}

// Tier buckets a composite score for summaries.
type Tier string

// Tiers, lightest first.
const (
	TierLight     Tier = "Light"
	TierModerate  Tier = "Moderate"
	TierDemanding Tier = "Demanding"
)

// Tier thresholds on the composite score.
const (
	ModerateThreshold  = 2500
	DemandingThreshold = 6000
)

// TierOf returns the tier of a composite score.
func TierOf(composite int) Tier {
	switch {
	case composite >= DemandingThreshold:
		return TierDemanding
	case composite >= ModerateThreshold:
		return TierModerate
	default:
		return TierLight
	}
}

// TierCounts counts games per tier.
func (r *Ranking) TierCounts() map[Tier]int {
	counts := map[Tier]int{TierLight: 0, TierModerate: 0, TierDemanding: 0}
	for _, g := range r.Games {
		counts[TierOf(g.Spec.Composite)]++
	}
	return counts
}

// UnknownHardware counts games whose CPU or GPU fell back to the default
// score.
func (r *Ranking) UnknownHardware() int {
	n := 0
	for _, g := range r.Games {
		if !g.Spec.CPUKnown || !g.Spec.GPUKnown {
			n++
		}
	}
	return n
}
