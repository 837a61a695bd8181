package report

import (
	"io"
)

// Writer defines the interface for ranking output.
type Writer interface {
	// Write outputs the ranking and returns the number of bytes written.
	Write(ranking *Ranking) (int, error)
}

// MultiWriter writes to multiple Writers in turn, stopping at the first
// error.
type MultiWriter struct {
	writers []Writer
}

// NewMultiWriter creates a Writer that writes to all provided Writers.
func NewMultiWriter(writers ...Writer) *MultiWriter {
	return &MultiWriter{writers: writers}
}

// Write outputs the ranking to all configured Writers.
func (m *MultiWriter) Write(ranking *Ranking) (int, error) {
	var total int
	for _, w := range m.writers {
		n, err := w.Write(ranking)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// baseWriter provides common functionality for report writers.
type baseWriter struct {
	output io.Writer
}

func newBaseWriter(output io.Writer) baseWriter {
	return baseWriter{output: output}
}

// dash stands in for empty table cells.
func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// truncateString truncates s to maxLen runes with an ellipsis.
func truncateString(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(r[:maxLen])
	}
	return string(r[:maxLen-3]) + "..."
}
