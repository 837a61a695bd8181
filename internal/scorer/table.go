package scorer

import "strings"

// Table maps canonical model names to benchmark scores.
// Keys go through the same cleaning as requirement values, so a table entry
// may be written with or without brand words ("GeForce GTX 970" or "GTX970").
type Table struct {
	scores map[string]float64
}

// NewTable builds a table from raw model names.
func NewTable(scores map[string]float64) *Table {
	t := &Table{scores: make(map[string]float64, len(scores))}
	t.Merge(scores)
	return t
}

// Merge adds or replaces entries.
func (t *Table) Merge(scores map[string]float64) {
	for name, score := range scores {
		t.scores[tableKey(name)] = score
	}
}

// Lookup returns the score of a canonical model name.
func (t *Table) Lookup(model string) (float64, bool) {
	if model == "" {
		return 0, false
	}
	score, ok := t.scores[tableKey(model)]
	return score, ok
}

func tableKey(name string) string {
	return strings.ToLower(Canonical(CleanCandidate(name)))
}

// Match is the outcome of looking up a requirement value.
type Match struct {
	// Model is the chosen candidate in canonical form; "" when the value
	// held no usable candidate.
	Model string

	// Score is the benchmark score; zero when Found is false.
	Score float64

	// Found reports whether Model is in the table.
	Found bool
}

// BestMatch picks the highest scoring alternative of raw. Equal scores keep
// the earlier alternative. When no alternative is in the table the first
// one is returned unscored.
func BestMatch(raw string, table *Table) Match {
	cs := candidates(raw)
	if len(cs) == 0 {
		return Match{}
	}

	best := Match{Model: cs[0]}
	for _, c := range cs {
		score, ok := table.Lookup(c)
		if !ok {
			continue
		}
		if !best.Found || score > best.Score {
			best = Match{Model: c, Score: score, Found: true}
		}
	}
	return best
}
