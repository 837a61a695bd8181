package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for cyriscan.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cyriscan",
		Short: "Crawl, scrape and rank CYRI game system requirements",
		Long: `cyriscan collects game system requirements from the Can You Run It pages.

The work is split into three resumable stages:
  crawl   walks the site breadth-first and writes requirement page URLs
  scrape  fetches each page and extracts the minimum and recommended blocks
  score   normalizes CPU/GPU/RAM and ranks games by a composite score

Settings are read from .cyriscan (current or home directory) or from the
file given with --config. Command line flags win over the file.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	cmd.PersistentFlags().Bool("log-json", false, "Write logs as JSON lines")
	cmd.PersistentFlags().StringP("config", "c", "",
		"Configuration file path (default: .cyriscan in current or home directory)")

	cmd.AddCommand(NewCrawlCmd())
	cmd.AddCommand(NewScrapeCmd())
	cmd.AddCommand(NewScoreCmd())
	cmd.AddCommand(NewHistoryCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
