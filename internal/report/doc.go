// Package report renders scored rankings and scraped records.
//
// This package contains writers for different output formats:
//   - SimpleWriter: fixed-width text for the terminal
//   - JSONWriter: structured JSON for other tools
//   - MarkdownWriter: a shareable document built with nao1215/markdown
//
// WriteRecords and ReadRecords handle the scraper's results file, which is
// a plain JSON array of requirement records.
package report
