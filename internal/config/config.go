package config

import (
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
)

// Default configuration values.
// These values mirror the budgets the crawl and scrape commands have always
// used against the CYRI pages.
const (
	// AppName is the application name used for XDG directory paths.
	AppName = "cyriscan"

	// DefaultDomain is the only host the crawler follows links on.
	DefaultDomain = "www.systemrequirementslab.com"

	// DefaultPathPrefix restricts traversal to the CYRI part of the site.
	DefaultPathPrefix = "/cyri"

	// DefaultTargetPrefix is the literal path prefix of requirement pages.
	// A requirement page is <prefix>/<slug>/<numeric id>.
	DefaultTargetPrefix = "/cyri/requirements"

	// DefaultSeed is used when no seed is given on the command line or in
	// a seed file.
	DefaultSeed = "https://www.systemrequirementslab.com/cyri"

	// DefaultMaxPages is the maximum number of URLs the crawler visits.
	// Failed fetches count toward this budget.
	DefaultMaxPages = 300

	// DefaultMaxDepth is the maximum number of hops from a seed.
	DefaultMaxDepth = 2

	// DefaultCrawlDelay is the fixed delay between crawler requests.
	DefaultCrawlDelay = 700 * time.Millisecond

	// DefaultSaveEvery is the number of visited pages between checkpoints.
	DefaultSaveEvery = 20

	// DefaultStateFile is the checkpoint file written by the crawler.
	DefaultStateFile = "crawl-state.json"

	// DefaultURLsFile is the newline-delimited list of discovered requirement URLs.
	DefaultURLsFile = "cyri-urls.txt"

	// DefaultDataFile is the JSON array of requirement records written by scrape.
	DefaultDataFile = "cyri-data.json"

	// DefaultScrapeDelay is the fixed delay between scrape batches.
	// Scraping is gentler than crawling because every page is a full game page.
	DefaultScrapeDelay = 1200 * time.Millisecond

	// DefaultBatchSize of 1 fetches requirement pages one at a time.
	DefaultBatchSize = 1

	// DefaultMaxConsecutiveFailures stops a scrape after this many failures
	// in a row. Partial results are still written.
	DefaultMaxConsecutiveFailures = 5

	// DefaultTimeout is the per-request timeout.
	DefaultTimeout = 15 * time.Second

	// DefaultUserAgent is sent with every request. The site serves a
	// reduced page to unknown agents, so a browser string is used.
	DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 Safari/537.36"

	// DefaultMaxBodySize limits the maximum response body size to read.
	DefaultMaxBodySize = 5 * 1024 * 1024 // 5MB

	// DefaultUnknownScore is the benchmark score given to a CPU or GPU model
	// that is not in the benchmark table.
	DefaultUnknownScore = 500
)

// Config holds all configuration options for cyriscan.
// It is populated from defaults, then the YAML file, then CLI flags, and is
// passed through the application rather than kept in global state.
//
// Design decision: We use a single flat struct instead of nested structs
// (e.g., CrawlConfig, ScrapeConfig) for simplicity. Each command only reads
// the fields it needs.
type Config struct {
	// Domain is the host the crawler stays on.
	Domain string

	// PathPrefix restricts which paths are followed. Ignored when AllPaths is set.
	PathPrefix string

	// TargetPrefix is the path prefix of requirement pages.
	TargetPrefix string

	// AllPaths disables the PathPrefix filter.
	AllPaths bool

	// Seeds are explicit crawl seeds.
	Seeds []string

	// SeedFile is a file of seeds, one per line.
	SeedFile string

	// IgnorePatterns are glob patterns of paths never followed.
	IgnorePatterns []string

	// MaxPages is the visit budget of a crawl.
	MaxPages int

	// MaxDepth is the maximum hop count from a seed.
	MaxDepth int

	// CrawlDelay is the fixed delay between crawler requests.
	CrawlDelay time.Duration

	// SaveEvery is the number of visited pages between checkpoints.
	SaveEvery int

	// StateFile is the checkpoint path.
	StateFile string

	// URLsFile is the crawler results file and the default scrape input.
	URLsFile string

	// RespectRobots makes the crawler consult robots.txt.
	RespectRobots bool

	// ScrapeURLs are explicit requirement page URLs to scrape.
	ScrapeURLs []string

	// ScrapeFile is a file of requirement page URLs, one per line.
	ScrapeFile string

	// DataFile is the scrape results file and the default score input.
	DataFile string

	// ScrapeDelay is the fixed delay between scrape batches.
	ScrapeDelay time.Duration

	// BatchSize is the number of pages fetched concurrently per scrape batch.
	BatchSize int

	// MaxConsecutiveFailures stops a scrape early. Zero disables the guard.
	MaxConsecutiveFailures int

	// Timeout is the per-request timeout.
	Timeout time.Duration

	// UserAgent is the User-Agent header sent with every request.
	UserAgent string

	// Headers are extra HTTP headers sent with every request.
	Headers map[string]string

	// MaxBodySize is the maximum response body size in bytes.
	MaxBodySize int64

	// DefaultCPUScore is used for CPU models missing from the benchmark table.
	DefaultCPUScore float64

	// DefaultGPUScore is used for GPU models missing from the benchmark table.
	DefaultGPUScore float64

	// CPUBenchmarks and GPUBenchmarks extend or override the built-in tables.
	CPUBenchmarks map[string]float64
	GPUBenchmarks map[string]float64

	// DBDir is the directory of the SQLite database.
	DBDir string

	// SaveToDB stores scrape results and crawl runs in the database.
	SaveToDB bool

	// JSONReport and MarkdownReport select the score report format.
	JSONReport     bool
	MarkdownReport bool

	// ReportFile is the output path of the score report; stdout when empty.
	ReportFile string

	// Verbose enables debug logging.
	Verbose bool

	// LogJSON switches log output from text to JSON lines.
	LogJSON bool

	// ConfigFilePath is the explicit YAML config path, if any.
	ConfigFilePath string
}

// NewConfig creates a new Config with default values.
//
// Design decision: We use a constructor function instead of relying on
// zero values because most defaults are non-zero. This also serves as
// documentation of what the defaults are.
func NewConfig() *Config {
	return &Config{
		Domain:                 DefaultDomain,
		PathPrefix:             DefaultPathPrefix,
		TargetPrefix:           DefaultTargetPrefix,
		MaxPages:               DefaultMaxPages,
		MaxDepth:               DefaultMaxDepth,
		CrawlDelay:             DefaultCrawlDelay,
		SaveEvery:              DefaultSaveEvery,
		StateFile:              DefaultStateFile,
		URLsFile:               DefaultURLsFile,
		DataFile:               DefaultDataFile,
		ScrapeDelay:            DefaultScrapeDelay,
		BatchSize:              DefaultBatchSize,
		MaxConsecutiveFailures: DefaultMaxConsecutiveFailures,
		Timeout:                DefaultTimeout,
		UserAgent:              DefaultUserAgent,
		Headers:                make(map[string]string),
		MaxBodySize:            DefaultMaxBodySize,
		DefaultCPUScore:        DefaultUnknownScore,
		DefaultGPUScore:        DefaultUnknownScore,
		CPUBenchmarks:          make(map[string]float64),
		GPUBenchmarks:          make(map[string]float64),
		DBDir:                  XDGDataDir(),
		SaveToDB:               true,
	}
}

// XDGDataDir returns the XDG data directory for cyriscan.
// On Linux: ~/.local/share/cyriscan
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for cyriscan.
// On Linux: ~/.config/cyriscan
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// Validate checks if the configuration is valid.
// It returns the first problem found as a sentinel error.
func (c *Config) Validate() error {
	if c.Domain == "" {
		return ErrEmptyDomain
	}
	if c.MaxPages <= 0 {
		return ErrInvalidMaxPages
	}
	if c.MaxDepth < 0 {
		return ErrInvalidMaxDepth
	}
	if c.CrawlDelay < 0 || c.ScrapeDelay < 0 {
		return ErrInvalidDelay
	}
	if c.SaveEvery <= 0 {
		return ErrInvalidSaveEvery
	}
	if c.Timeout <= 0 {
		return ErrInvalidTimeout
	}
	if c.BatchSize <= 0 {
		return ErrInvalidBatchSize
	}
	if c.MaxConsecutiveFailures < 0 {
		return ErrInvalidMaxFailures
	}
	if c.MaxBodySize < 0 {
		return ErrInvalidMaxBodySize
	}
	if c.JSONReport && c.MarkdownReport {
		return ErrConflictingReportFormats
	}
	return nil
}
