// Package crawler discovers requirement pages with a bounded breadth-first
// traversal of a single domain.
//
// The traversal state (visited set, FIFO queue, discovered targets) lives in
// a model.CrawlState that the caller passes in and gets back. The Spider
// never keeps traversal state between runs, so resuming is a matter of
// loading a checkpoint into a CrawlState and calling Crawl again.
//
// # Components
//
//   - Canonicalize: the dedup key for visited URLs
//   - Parser: extracts anchor links from HTML with golang.org/x/net/html
//   - Scope: domain, path prefix and ignore pattern filtering
//   - RobotsAgent: optional robots.txt checks with github.com/temoto/robotstxt
//   - Spider: the traversal loop with politeness delay and checkpointing
//
// # Failure policy
//
// A failed fetch (network error, timeout, status outside 200-399) is logged
// and skipped. It still consumes the page budget and is never retried, so a
// flaky page cannot stall a multi-hundred page crawl.
package crawler
