package scorer

import (
	"math"
	"slices"

	"github.com/nao1215/cyriscan/internal/model"
)

// Composite weights.
const (
	CPUWeight = 0.4
	GPUWeight = 0.5
	RAMWeight = 150

	// DefaultUnknownScore is used for models missing from a table.
	DefaultUnknownScore = 500
)

// Field keys looked up in a minimum block, in precedence order.
var (
	CPUKeys = []string{"cpu", "processor"}
	GPUKeys = []string{"video_card", "graphics", "gpu", "graphics_card"}
	RAMKeys = []string{"ram", "memory", "system_memory"}
)

// Scorer turns requirement records into hardware specs and scores.
type Scorer struct {
	cpu        *Table
	gpu        *Table
	defaultCPU float64
	defaultGPU float64
}

// Option configures a Scorer.
type Option func(*Scorer)

// WithCPUScores merges extra CPU scores over the built-in table.
func WithCPUScores(scores map[string]float64) Option {
	return func(s *Scorer) {
		s.cpu.Merge(scores)
	}
}

// WithGPUScores merges extra GPU scores over the built-in table.
func WithGPUScores(scores map[string]float64) Option {
	return func(s *Scorer) {
		s.gpu.Merge(scores)
	}
}

// WithDefaultScores sets the scores given to unknown CPU and GPU models.
// Non-positive values keep the current default.
func WithDefaultScores(cpu, gpu float64) Option {
	return func(s *Scorer) {
		if cpu > 0 {
			s.defaultCPU = cpu
		}
		if gpu > 0 {
			s.defaultGPU = gpu
		}
	}
}

// New returns a Scorer backed by the built-in tables.
func New(opts ...Option) *Scorer {
	s := &Scorer{
		cpu:        NewTable(DefaultCPUScores()),
		gpu:        NewTable(DefaultGPUScores()),
		defaultCPU: DefaultUnknownScore,
		defaultGPU: DefaultUnknownScore,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Score derives the hardware spec of a record from its minimum block.
// A record without a minimum block scores as unknown hardware with no RAM.
func (s *Scorer) Score(rec *model.RequirementRecord) model.HardwareSpec {
	var spec model.HardwareSpec
	minimum := rec.Requirements.Minimum

	if v, ok := minimum.Get(CPUKeys...); ok {
		m := BestMatch(v, s.cpu)
		spec.CPUModel, spec.CPUScore, spec.CPUKnown = m.Model, m.Score, m.Found
	}
	if !spec.CPUKnown {
		spec.CPUScore = s.defaultCPU
	}

	if v, ok := minimum.Get(GPUKeys...); ok {
		m := BestMatch(v, s.gpu)
		spec.GPUModel, spec.GPUScore, spec.GPUKnown = m.Model, m.Score, m.Found
	}
	if !spec.GPUKnown {
		spec.GPUScore = s.defaultGPU
	}

	if v, ok := minimum.Get(RAMKeys...); ok {
		spec.RAMGB, spec.RAMFound = ParseRAM(v)
	}

	spec.Composite = Composite(spec.CPUScore, spec.GPUScore, spec.RAMGB)
	return spec
}

// Composite combines the three inputs into one integer score.
func Composite(cpuScore, gpuScore, ramGB float64) int {
	return int(math.Round(cpuScore*CPUWeight + gpuScore*GPUWeight + ramGB*RAMWeight))
}

// Rank scores every record that was fetched successfully and orders them by
// composite score, highest first. Equal scores keep input order.
func (s *Scorer) Rank(records []*model.RequirementRecord) []model.ScoredGame {
	games := make([]model.ScoredGame, 0, len(records))
	for _, rec := range records {
		if rec == nil || rec.Failed() {
			continue
		}
		games = append(games, model.ScoredGame{
			Title: rec.Title(),
			URL:   rec.URL,
			Spec:  s.Score(rec),
		})
	}

	slices.SortStableFunc(games, func(a, b model.ScoredGame) int {
		return b.Spec.Composite - a.Spec.Composite
	})
	for i := range games {
		games[i].Rank = i + 1
	}
	return games
}
