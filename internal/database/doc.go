// Package database provides SQLite-based storage for cyriscan.
//
// The DB stores:
//   - requirement records, one row per URL, updated in place on re-scrape
//   - crawl runs, one row per crawl invocation, for the history command
//
// Design decision: SQLite (via modernc.org/sqlite) keeps the store a single
// CGO-free file under the XDG data directory. Requirement blocks are kept as
// JSON text so a missing block (null) stays distinct from an empty one.
package database
