// Package config provides configuration structures and utilities for cyriscan.
// It defines the crawl budgets, politeness settings, scrape batching and
// scoring defaults, and loads optional overrides from a YAML file.
package config
