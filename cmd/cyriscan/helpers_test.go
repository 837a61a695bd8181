package main

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"path/filepath"
	"sync"
	"testing"

	"github.com/nao1215/cyriscan/internal/config"
	"github.com/nao1215/cyriscan/internal/fetcher"
	"github.com/nao1215/cyriscan/internal/model"
)

const siteRoot = "https://www.systemrequirementslab.com"

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// testConfig returns defaults with every file and the database inside a
// temporary directory and no delays.
func testConfig(t *testing.T) *config.Config {
	t.Helper()

	dir := t.TempDir()
	cfg := config.NewConfig()
	cfg.StateFile = filepath.Join(dir, "crawl-state.json")
	cfg.URLsFile = filepath.Join(dir, "cyri-urls.txt")
	cfg.DataFile = filepath.Join(dir, "cyri-data.json")
	cfg.DBDir = filepath.Join(dir, "db")
	cfg.CrawlDelay = 0
	cfg.ScrapeDelay = 0
	return cfg
}

// fakeSite serves fixed pages and answers 404 for everything else.
type fakeSite struct {
	mu      sync.Mutex
	pages   map[string]string
	fetched []string
}

func (f *fakeSite) Fetch(_ context.Context, url string) (*model.FetchedPage, error) {
	f.mu.Lock()
	f.fetched = append(f.fetched, url)
	f.mu.Unlock()

	body, ok := f.pages[url]
	if !ok {
		return nil, &fetcher.StatusError{URL: url, StatusCode: http.StatusNotFound}
	}
	return &model.FetchedPage{URL: url, StatusCode: http.StatusOK, ContentType: "text/html", Body: []byte(body)}, nil
}

func (f *fakeSite) fetchCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.fetched)
}

func requirementPage(game, cpu, gpu, ram string) string {
	return `<html><head><title>` + game + ` System Requirements</title></head><body>
<h1>` + game + ` System Requirements</h1>
<h2>System Requirements (Minimum)</h2>
<ul>
<li>CPU: ` + cpu + `</li>
<li>VIDEO CARD: ` + gpu + `</li>
<li>RAM: ` + ram + `</li>
<li>OS: Windows 10</li>
</ul>
</body></html>`
}
