// Package pipeline scrapes requirement pages into records.
//
// Each URL runs through a Pipeline of steps (fetch, extract, store) inside
// a Job. A BatchProcessor feeds URLs to fresh pipelines a fixed number at a
// time, waits between batches, and stops once too many items fail in a row.
//
// Design decision: Steps share a Job rather than returning values so that a
// later step (storage) can be dropped without changing the earlier ones, and
// a failing fetch still leaves the URL behind for an error record.
package pipeline
