package extractor

import (
	"encoding/json"
	"maps"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nao1215/cyriscan/internal/model"
)

func loadFixture(t *testing.T, name string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", name))
	if err != nil {
		t.Fatalf("read fixture: %v", err)
	}
	return string(data)
}

func TestParsePage(t *testing.T) {
	t.Parallel()

	const url = "https://www.systemrequirementslab.com/cyri/requirements/hollow-knight-silksong/18551"
	rec := ParsePage(loadFixture(t, "hollow-knight.html"), url)

	if rec.Source != model.SourceCYRI || rec.URL != url {
		t.Errorf("unexpected source/url: %q %q", rec.Source, rec.URL)
	}
	if rec.Game == nil || *rec.Game != "Hollow Knight: Silksong" {
		t.Errorf("unexpected title: %v", rec.Game)
	}

	wantMin := model.Requirements{
		"cpu":                 "Intel Core 2 Duo E5200",
		"ram":                 "4 GB",
		"video_card":          "GeForce 9800GTX+ (1GB)",
		"dedicated_video_ram": "1024 MB",
		"os":                  "Windows 10",
		"free_disk_space":     "9 GB",
	}
	if !maps.Equal(rec.Requirements.Minimum, wantMin) {
		t.Errorf("minimum mismatch:\n got %v\nwant %v", rec.Requirements.Minimum, wantMin)
	}

	wantRec := model.Requirements{
		"cpu":        "Intel Core i5",
		"ram":        "8 GB",
		"video_card": "GeForce GTX 560 & above",
		"os":         "Windows 10",
	}
	if !maps.Equal(rec.Requirements.Recommended, wantRec) {
		t.Errorf("recommended mismatch:\n got %v\nwant %v", rec.Requirements.Recommended, wantRec)
	}
}

func TestParsePage_MissingSections(t *testing.T) {
	t.Parallel()

	rec := ParsePage("<html><body><p>Nothing here</p></body></html>", "https://h/cyri/requirements/x/1")
	if rec.Requirements.Minimum != nil || rec.Requirements.Recommended != nil {
		t.Errorf("expected nil blocks, got %+v", rec.Requirements)
	}
	if rec.Game != nil {
		t.Errorf("expected no title, got %q", *rec.Game)
	}

	data, err := json.Marshal(rec)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `"minimum":null`) || !strings.Contains(string(data), `"game":null`) {
		t.Errorf("expected null blocks in json, got %s", data)
	}
}

func TestMinimumRulePrecedence(t *testing.T) {
	t.Parallel()

	// The sidebar header sits between the minimum header and its list, so
	// the strict rule finds no field lines and the loose rule takes over.
	html := `<h2>System Requirements (Minimum)</h2>
<div>Driver Update</div>
<ul><li>CPU: Core i3</li><li>RAM: 2 GB</li></ul>
<h2>Recommended Requirements</h2><ul><li>CPU: Core i7</li></ul>`

	if got := Section(html, MinimumRules()[0]); got != nil {
		t.Fatalf("expected strict rule to miss, got %v", got)
	}

	got := ApplyRules(html, MinimumRules())
	want := model.Requirements{"cpu": "Core i3", "ram": "2 GB"}
	if !maps.Equal(got, want) {
		t.Errorf("expected loose rule result %v, got %v", want, got)
	}
}

func TestSection_FoundButEmpty(t *testing.T) {
	t.Parallel()

	// A field line with no value keeps the block but leaves it empty.
	html := `Recommended Requirements<li>CPU:</li>`
	got := Section(html, RecommendedRules()[0])
	if got == nil {
		t.Fatal("expected a non-nil block")
	}
	if len(got) != 0 {
		t.Errorf("expected empty block, got %v", got)
	}
}

func TestExtractTitle(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		html string
		want string
	}{
		{name: "h1 wins", html: "<title>Other</title><h1>Borderlands 4 System Requirements</h1>", want: "Borderlands 4"},
		{name: "title fallback", html: "<title>Elden Ring System Requirements | Can I Run It</title>", want: "Elden Ring"},
		{name: "nested markup and whitespace", html: "<h1> <span>Hades</span>\n II system requirements</h1>", want: "Hades II"},
		{name: "nothing", html: "<p>no headings</p>", want: ""},
		{name: "blank h1", html: "<h1>   </h1>", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := ExtractTitle(tt.html)
			if tt.want == "" {
				if got != nil {
					t.Errorf("expected nil, got %q", *got)
				}
				return
			}
			if got == nil || *got != tt.want {
				t.Errorf("expected %q, got %v", tt.want, got)
			}
		})
	}
}

func TestHeuristicExtractor_CustomRules(t *testing.T) {
	t.Parallel()

	e := New(
		WithMinimumRules([]SectionRule{{Name: "min", Header: "MIN", StopHeaders: []string{"END"}}}),
		WithRecommendedRules(nil),
	)
	var _ Extractor = e

	page := &model.FetchedPage{URL: "u", Body: []byte("MIN<br>CPU: X1<br>END<br>GPU: nope")}
	rec := e.Extract(page)
	if !maps.Equal(rec.Requirements.Minimum, model.Requirements{"cpu": "X1"}) {
		t.Errorf("unexpected minimum %v", rec.Requirements.Minimum)
	}
	if rec.Requirements.Recommended != nil {
		t.Errorf("expected nil recommended without rules, got %v", rec.Requirements.Recommended)
	}
}
