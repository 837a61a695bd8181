package report

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/nao1215/cyriscan/internal/model"
)

// JSONWriter outputs rankings in JSON format.
type JSONWriter struct {
	baseWriter

	indent       bool
	indentPrefix string
	indentString string
}

// JSONWriterOption configures a JSONWriter.
type JSONWriterOption func(*JSONWriter)

// WithIndent enables pretty-printed JSON output.
func WithIndent(prefix, indent string) JSONWriterOption {
	return func(w *JSONWriter) {
		w.indent = true
		w.indentPrefix = prefix
		w.indentString = indent
	}
}

// WithPrettyPrint is WithIndent("", "  ").
func WithPrettyPrint() JSONWriterOption {
	return WithIndent("", "  ")
}

// NewJSONWriter creates a JSONWriter that outputs to the given writer.
func NewJSONWriter(output io.Writer, opts ...JSONWriterOption) *JSONWriter {
	w := &JSONWriter{baseWriter: newBaseWriter(output)}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Write outputs the ranking as one JSON document.
func (w *JSONWriter) Write(ranking *Ranking) (int, error) {
	return w.writeJSON(ranking)
}

func (w *JSONWriter) writeJSON(v any) (int, error) {
	var (
		data []byte
		err  error
	)
	if w.indent {
		data, err = json.MarshalIndent(v, w.indentPrefix, w.indentString)
	} else {
		data, err = json.Marshal(v)
	}
	if err != nil {
		return 0, err
	}

	data = append(data, '\n')
	return w.output.Write(data)
}

// WriteRecords writes records as an indented JSON array. A nil slice is
// written as [] so the results file is always a valid array.
func WriteRecords(output io.Writer, records []*model.RequirementRecord) error {
	if records == nil {
		records = []*model.RequirementRecord{}
	}
	w := NewJSONWriter(output, WithPrettyPrint())
	if _, err := w.writeJSON(records); err != nil {
		return fmt.Errorf("failed to write records: %w", err)
	}
	return nil
}

// ReadRecords reads a results file written by WriteRecords.
func ReadRecords(input io.Reader) ([]*model.RequirementRecord, error) {
	var records []*model.RequirementRecord
	if err := json.NewDecoder(input).Decode(&records); err != nil {
		return nil, fmt.Errorf("failed to parse records: %w", err)
	}
	return records, nil
}
