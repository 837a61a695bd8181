package report

import (
	"io"
	"strconv"
	"strings"

	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"
)

// MarkdownWriter outputs rankings as a Markdown document.
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{baseWriter: newBaseWriter(output)}
}

// Write outputs the ranking in Markdown format.
func (w *MarkdownWriter) Write(ranking *Ranking) (int, error) {
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, ranking)
	w.writeTiers(md, ranking)
	w.writeRanking(md, ranking)
	w.writeFooter(md, ranking)

	return len(md.String()), md.Build()
}

func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, ranking *Ranking) {
	md.H1("CYRI Requirement Ranking")
	md.PlainText("")

	rows := [][]string{
		{"Generated", ranking.GeneratedAt.Format("2006-01-02 15:04:05 MST")},
		{"Records", strconv.Itoa(ranking.Records)},
		{"Skipped (failed fetch)", strconv.Itoa(ranking.Skipped)},
		{"Ranked", strconv.Itoa(len(ranking.Games))},
	}
	if ranking.Source != "" {
		rows = append([][]string{{"Source", "`" + ranking.Source + "`"}}, rows...)
	}
	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows:   rows,
	})
	md.PlainText("")
}

func (w *MarkdownWriter) writeTiers(md *markdown.Markdown, ranking *Ranking) {
	if len(ranking.Games) == 0 {
		return
	}

	md.H2("Tiers")
	md.PlainText("")

	counts := ranking.TierCounts()
	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle("Games by requirement tier"),
		piechart.WithShowData(true),
	)
	for _, tier := range []Tier{TierLight, TierModerate, TierDemanding} {
		if counts[tier] > 0 {
			chart.LabelAndIntValue(string(tier), uint64(counts[tier]))
		}
	}
	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")

	md.BulletList(
		string(TierLight)+": composite below "+strconv.Itoa(ModerateThreshold),
		string(TierModerate)+": "+strconv.Itoa(ModerateThreshold)+" to "+strconv.Itoa(DemandingThreshold-1),
		string(TierDemanding)+": "+strconv.Itoa(DemandingThreshold)+" and above",
	)
	md.PlainText("")
}

func (w *MarkdownWriter) writeRanking(md *markdown.Markdown, ranking *Ranking) {
	md.H2("Ranking")
	md.PlainText("")

	if len(ranking.Games) == 0 {
		md.Note("No games to rank. Run `cyriscan scrape` first.")
		md.PlainText("")
		return
	}

	rows := make([][]string, len(ranking.Games))
	for i, g := range ranking.Games {
		rows[i] = []string{
			strconv.Itoa(g.Rank),
			"[" + escapeCell(g.Title) + "](" + g.URL + ")",
			strconv.Itoa(g.Spec.Composite),
			escapeCell(dash(g.Spec.CPUModel)) + knownMark(g.Spec.CPUKnown),
			escapeCell(dash(g.Spec.GPUModel)) + knownMark(g.Spec.GPUKnown),
			formatRAM(g.Spec.RAMGB, g.Spec.RAMFound),
			string(TierOf(g.Spec.Composite)),
		}
	}
	md.Table(markdown.TableSet{
		Header: []string{"#", "Game", "Score", "CPU", "GPU", "RAM", "Tier"},
		Rows:   rows,
	})
	md.PlainText("")
}

func (w *MarkdownWriter) writeFooter(md *markdown.Markdown, ranking *Ranking) {
	if n := ranking.UnknownHardware(); n > 0 {
		md.Importantf("%d game(s) have hardware missing from the benchmark tables (marked †). "+
			"They were scored with the default value; add them under `scoring:` in the config file.", n)
		md.PlainText("")
	}
	md.HorizontalRule()
	md.PlainText("")
	if ranking.Version != "" {
		md.PlainTextf("*Generated by cyriscan %s*", ranking.Version)
	} else {
		md.PlainText("*Generated by cyriscan*")
	}
}

func knownMark(known bool) string {
	if known {
		return ""
	}
	return " †"
}

// escapeCell keeps pipes in model names from splitting table cells.
func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
