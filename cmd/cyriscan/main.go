// Package main provides the entry point for the cyriscan CLI.
//
// cyriscan collects game system requirements from the Can You Run It pages
// and ranks games by how demanding their minimum hardware is.
//
// Usage:
//
//	cyriscan crawl             # discover requirement page URLs
//	cyriscan scrape            # extract requirements from those pages
//	cyriscan score             # rank the scraped games
//
// See --help for all available options.
package main

func main() {
	Execute()
}
