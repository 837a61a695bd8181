package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

const (
	ruleWidth  = 96
	modelWidth = 22
	titleWidth = 32
)

// SimpleWriter outputs a fixed-width text table for the terminal.
type SimpleWriter struct {
	baseWriter

	// verbose adds the URL and a marker for default-scored hardware.
	verbose bool
}

// SimpleWriterOption configures a SimpleWriter.
type SimpleWriterOption func(*SimpleWriter)

// WithVerbose enables verbose output with additional details.
func WithVerbose(verbose bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.verbose = verbose
	}
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer.
func NewSimpleWriter(output io.Writer, opts ...SimpleWriterOption) *SimpleWriter {
	w := &SimpleWriter{baseWriter: newBaseWriter(output)}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Write outputs the ranking in human-readable format.
func (w *SimpleWriter) Write(ranking *Ranking) (int, error) {
	var sb strings.Builder

	w.writeHeader(&sb, ranking)
	w.writeTable(&sb, ranking)
	w.writeFooter(&sb, ranking)

	return w.output.Write([]byte(sb.String()))
}

func (w *SimpleWriter) writeHeader(sb *strings.Builder, ranking *Ranking) {
	sb.WriteString(strings.Repeat("=", ruleWidth))
	sb.WriteString("\n")
	sb.WriteString("CYRISCAN REQUIREMENT RANKING\n")
	sb.WriteString(strings.Repeat("=", ruleWidth))
	sb.WriteString("\n\n")

	if ranking.Source != "" {
		fmt.Fprintf(sb, "Source:    %s\n", ranking.Source)
	}
	fmt.Fprintf(sb, "Generated: %s\n", ranking.GeneratedAt.Format("2006-01-02 15:04:05 MST"))
	fmt.Fprintf(sb, "Records:   %d (%d skipped)\n", ranking.Records, ranking.Skipped)
	fmt.Fprintf(sb, "Ranked:    %d\n\n", len(ranking.Games))
}

func (w *SimpleWriter) writeTable(sb *strings.Builder, ranking *Ranking) {
	sb.WriteString(strings.Repeat("-", ruleWidth))
	sb.WriteString("\n")

	if len(ranking.Games) == 0 {
		sb.WriteString("  No games to rank\n\n")
		return
	}

	fmt.Fprintf(sb, "%4s  %6s  %-*s  %-*s  %6s  %s\n",
		"#", "SCORE", modelWidth, "CPU", modelWidth, "GPU", "RAM", "GAME")
	sb.WriteString(strings.Repeat("-", ruleWidth))
	sb.WriteString("\n")

	for _, g := range ranking.Games {
		cpu := truncateString(dash(g.Spec.CPUModel), modelWidth)
		gpu := truncateString(dash(g.Spec.GPUModel), modelWidth)
		if w.verbose {
			if !g.Spec.CPUKnown {
				cpu = truncateString(cpu, modelWidth-1) + "*"
			}
			if !g.Spec.GPUKnown {
				gpu = truncateString(gpu, modelWidth-1) + "*"
			}
		}
		fmt.Fprintf(sb, "%4d  %6d  %-*s  %-*s  %6s  %s\n",
			g.Rank,
			g.Spec.Composite,
			modelWidth, cpu,
			modelWidth, gpu,
			formatRAM(g.Spec.RAMGB, g.Spec.RAMFound),
			truncateString(g.Title, titleWidth),
		)
		if w.verbose {
			fmt.Fprintf(sb, "%14s%s\n", "", g.URL)
		}
	}
	sb.WriteString("\n")
}

func (w *SimpleWriter) writeFooter(sb *strings.Builder, ranking *Ranking) {
	if w.verbose && ranking.UnknownHardware() > 0 {
		fmt.Fprintf(sb, "* default score used for %d game(s) with unknown hardware\n", ranking.UnknownHardware())
	}
	sb.WriteString(strings.Repeat("=", ruleWidth))
	sb.WriteString("\n")
}

// formatRAM renders a RAM amount without trailing zeros.
func formatRAM(gb float64, found bool) string {
	if !found {
		return "-"
	}
	return strconv.FormatFloat(gb, 'f', -1, 64) + " GB"
}
