// Package model defines the core data structures used throughout cyriscan.
//
// This package contains the following main types:
//   - CrawlState: Resumable breadth-first traversal progress
//   - FetchedPage: A single fetched page and the links found on it
//   - RequirementRecord: Minimum/recommended requirement blocks of a game page
//   - HardwareSpec: Normalized CPU/GPU/RAM values derived from a record
//   - ScoredGame: The ranking unit produced by the scorer
//
// Design decision: We separate models into their own package to avoid circular
// dependencies. The crawler, checkpoint store, extractor, scorer and report
// writers all exchange these types, so centralizing them prevents import cycles.
//
// The models are designed to be serializable to JSON because the checkpoint
// file and the results files are the hand-off artifacts between commands.
package model
