// Package fetcher retrieves pages over HTTP for the crawler and the scraper.
//
// The rest of cyriscan only sees the Fetcher interface: a URL goes in, a
// model.FetchedPage or an error comes out. Any status outside 200-399 is an
// error (*StatusError). Callers treat every error the same way: log it and
// move on, so the fetcher never retries.
package fetcher
