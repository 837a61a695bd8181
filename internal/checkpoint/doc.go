// Package checkpoint stores crawl progress and URL lists on disk.
//
// A checkpoint is a JSON document with the visited URLs, the pending queue
// and the discovered requirement URLs. Next to it the store keeps a plain
// results file with the discovered URLs, one per line, so a killed crawl
// still leaves a usable list behind.
//
// Files are replaced atomically (write to a temporary file, then rename)
// while holding an advisory lock on "<state>.lock", so two crawls pointed at
// the same state file cannot interleave their writes.
package checkpoint
