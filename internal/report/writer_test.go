package report

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/nao1215/cyriscan/internal/model"
)

// createTestRanking creates a ranking with sample data for testing.
func createTestRanking() *Ranking {
	games := []model.ScoredGame{
		{
			Rank:  1,
			Title: "Heavy Game",
			URL:   "https://www.systemrequirementslab.com/cyri/requirements/heavy-game/1",
			Spec: model.HardwareSpec{
				CPUModel: "i5-4460", CPUScore: 4800, CPUKnown: true,
				GPUModel: "GTX 970", GPUScore: 9650, GPUKnown: true,
				RAMGB: 8, RAMFound: true,
				Composite: 7945,
			},
		},
		{
			Rank:  2,
			Title: "Light | Game",
			URL:   "https://www.systemrequirementslab.com/cyri/requirements/light-game/2",
			Spec: model.HardwareSpec{
				CPUModel: "Pentium 4", CPUScore: 500,
				GPUScore: 500,
				RAMGB:    0.5, RAMFound: true,
				Composite: 525,
			},
		},
	}
	r := NewRanking(games, 3)
	r.GeneratedAt = time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)
	r.Source = "cyri-data.json"
	r.Version = "v1.2.3"
	return r
}

func TestNewRanking(t *testing.T) {
	t.Parallel()

	r := NewRanking(nil, 2)
	if r.Games == nil {
		t.Error("expected non-nil games")
	}
	if r.Skipped != 2 {
		t.Errorf("expected 2 skipped, got %d", r.Skipped)
	}
	if r.GeneratedAt.IsZero() {
		t.Error("expected GeneratedAt to be set")
	}
}

func TestRankingTop(t *testing.T) {
	t.Parallel()

	r := createTestRanking()
	if got := len(r.Top(1).Games); got != 1 {
		t.Errorf("expected 1 game, got %d", got)
	}
	if got := len(r.Top(0).Games); got != 2 {
		t.Errorf("expected all games, got %d", got)
	}
	if got := len(r.Top(10).Games); got != 2 {
		t.Errorf("expected all games, got %d", got)
	}
	if len(r.Games) != 2 {
		t.Error("expected Top not to modify the ranking")
	}
}

func TestRankingUnknownHardware(t *testing.T) {
	t.Parallel()

	game := func(cpuKnown, gpuKnown bool) model.ScoredGame {
		return model.ScoredGame{Spec: model.HardwareSpec{CPUKnown: cpuKnown, GPUKnown: gpuKnown}}
	}

	tests := []struct {
		name  string
		games []model.ScoredGame
		want  int
	}{
		{name: "empty", games: nil, want: 0},
		{name: "all known", games: []model.ScoredGame{game(true, true), game(true, true)}, want: 0},
		{name: "unknown cpu", games: []model.ScoredGame{game(false, true), game(true, true)}, want: 1},
		{name: "unknown gpu", games: []model.ScoredGame{game(true, false)}, want: 1},
		{name: "both unknown counts once", games: []model.ScoredGame{game(false, false), game(true, false)}, want: 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := NewRanking(tt.games, 0).UnknownHardware(); got != tt.want {
				t.Errorf("expected %d, got %d", tt.want, got)
			}
		})
	}

	if got := createTestRanking().UnknownHardware(); got != 1 {
		t.Errorf("expected 1 unknown game in sample ranking, got %d", got)
	}
}

func TestTierOf(t *testing.T) {
	t.Parallel()

	tests := []struct {
		score int
		want  Tier
	}{
		{score: 0, want: TierLight},
		{score: ModerateThreshold - 1, want: TierLight},
		{score: ModerateThreshold, want: TierModerate},
		{score: DemandingThreshold - 1, want: TierModerate},
		{score: DemandingThreshold, want: TierDemanding},
	}
	for _, tt := range tests {
		if got := TierOf(tt.score); got != tt.want {
			t.Errorf("TierOf(%d): expected %s, got %s", tt.score, tt.want, got)
		}
	}

	counts := createTestRanking().TierCounts()
	if counts[TierDemanding] != 1 || counts[TierLight] != 1 || counts[TierModerate] != 0 {
		t.Errorf("unexpected tier counts %v", counts)
	}
}

func TestSimpleWriter(t *testing.T) {
	t.Parallel()

	t.Run("writes header and rows", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewSimpleWriter(&buf).Write(createTestRanking()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := buf.String()
		for _, want := range []string{"CYRISCAN REQUIREMENT RANKING", "cyri-data.json", "Heavy Game", "GTX 970", "8 GB", "0.5 GB", "7945", "(1 skipped)"} {
			if !strings.Contains(output, want) {
				t.Errorf("expected output to contain %q", want)
			}
		}
		if strings.Contains(output, "https://") {
			t.Error("expected URLs only in verbose mode")
		}
	})

	t.Run("verbose marks unknown hardware", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewSimpleWriter(&buf, WithVerbose(true)).Write(createTestRanking()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := buf.String()
		if !strings.Contains(output, "Pentium 4*") {
			t.Error("expected unknown CPU marker")
		}
		if !strings.Contains(output, "heavy-game/1") {
			t.Error("expected URL in verbose output")
		}
		if !strings.Contains(output, "default score used for 1 game(s)") {
			t.Error("expected unknown hardware footer")
		}
	})

	t.Run("empty ranking", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewSimpleWriter(&buf).Write(NewRanking(nil, 0)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(buf.String(), "No games to rank") {
			t.Error("expected empty message")
		}
	})
}

func TestJSONWriter(t *testing.T) {
	t.Parallel()

	t.Run("compact output parses back", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewJSONWriter(&buf).Write(createTestRanking()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if strings.Count(buf.String(), "\n") != 1 {
			t.Error("expected a single line of compact JSON")
		}

		var got Ranking
		if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
			t.Fatalf("invalid JSON: %v", err)
		}
		if len(got.Games) != 2 || got.Games[0].Spec.Composite != 7945 {
			t.Errorf("unexpected ranking %+v", got)
		}
		if got.Version != "v1.2.3" {
			t.Errorf("expected version v1.2.3, got %q", got.Version)
		}
	})

	t.Run("pretty print", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewJSONWriter(&buf, WithPrettyPrint()).Write(createTestRanking()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(buf.String(), "\n  \"games\"") {
			t.Error("expected indented output")
		}
	})
}

func TestMarkdownWriter(t *testing.T) {
	t.Parallel()

	t.Run("writes tables and chart", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		n, err := NewMarkdownWriter(&buf).Write(createTestRanking())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if n == 0 {
			t.Error("expected bytes written")
		}

		output := buf.String()
		for _, want := range []string{
			"# CYRI Requirement Ranking",
			"## Ranking",
			"```mermaid",
			"[Heavy Game](https://www.systemrequirementslab.com/cyri/requirements/heavy-game/1)",
			`Light \| Game`,
			"Pentium 4 †",
			"Generated by cyriscan v1.2.3",
		} {
			if !strings.Contains(output, want) {
				t.Errorf("expected output to contain %q", want)
			}
		}
	})

	t.Run("empty ranking", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewMarkdownWriter(&buf).Write(NewRanking(nil, 0)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		output := buf.String()
		if !strings.Contains(output, "No games to rank") {
			t.Error("expected empty note")
		}
		if strings.Contains(output, "mermaid") {
			t.Error("expected no chart for an empty ranking")
		}
	})
}

type failingWriter struct{ err error }

func (f failingWriter) Write(*Ranking) (int, error) { return 0, f.err }

func TestMultiWriter(t *testing.T) {
	t.Parallel()

	t.Run("writes to all", func(t *testing.T) {
		t.Parallel()

		var a, b bytes.Buffer
		mw := NewMultiWriter(NewSimpleWriter(&a), NewJSONWriter(&b))
		n, err := mw.Write(createTestRanking())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if n != a.Len()+b.Len() {
			t.Errorf("expected %d bytes, got %d", a.Len()+b.Len(), n)
		}
	})

	t.Run("stops on first error", func(t *testing.T) {
		t.Parallel()

		boom := errors.New("boom")
		var buf bytes.Buffer
		mw := NewMultiWriter(failingWriter{err: boom}, NewSimpleWriter(&buf))
		if _, err := mw.Write(createTestRanking()); !errors.Is(err, boom) {
			t.Errorf("expected boom, got %v", err)
		}
		if buf.Len() != 0 {
			t.Error("expected later writers to be skipped")
		}
	})
}

func TestRecordsFile(t *testing.T) {
	t.Parallel()

	t.Run("nil writes empty array", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if err := WriteRecords(&buf, nil); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if strings.TrimSpace(buf.String()) != "[]" {
			t.Errorf("expected [], got %q", buf.String())
		}
	})

	t.Run("round trip keeps null blocks and errors", func(t *testing.T) {
		t.Parallel()

		game := "Hollow Knight"
		records := []*model.RequirementRecord{
			{
				Source: model.SourceCYRI,
				URL:    "https://example.com/a/1",
				Game:   &game,
				Requirements: model.RequirementBlocks{
					Minimum: model.Requirements{"cpu": "Intel Core 2 Duo E5200"},
				},
			},
			model.NewFailedRecord("https://example.com/b/2", errors.New("timeout")),
		}

		var buf bytes.Buffer
		if err := WriteRecords(&buf, records); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(buf.String(), `"recommended": null`) {
			t.Error("expected missing block to be written as null")
		}

		got, err := ReadRecords(&buf)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(got) != 2 {
			t.Fatalf("expected 2 records, got %d", len(got))
		}
		if got[0].Requirements.Recommended != nil || got[0].Title() != game {
			t.Errorf("unexpected first record %+v", got[0])
		}
		if !got[1].Failed() {
			t.Error("expected second record to be a failure")
		}
	})

	t.Run("invalid input", func(t *testing.T) {
		t.Parallel()

		if _, err := ReadRecords(strings.NewReader("{")); err == nil {
			t.Error("expected parse error")
		}
	})
}
