package replay

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

// Record is one parsed log record, children included.
type Record struct {
	Message string    `yaml:"msg"`
	Level   string    `yaml:"level"`
	Time    string    `yaml:"ts"`
	Scope   string    `yaml:"scope"`
	Fields  yaml.Node `yaml:"fields"`
	Steps   []Record  `yaml:"steps"`
}

// Placeholder reports whether the record was synthesized by the writer to
// open a scope rather than logged by a call site. Real records always carry
// a level.
func (r Record) Placeholder() bool {
	return r.Level == ""
}

// Field is one parsed key/value pair, both sides as written.
type Field struct {
	Key   string
	Value string
}

// FieldPairs returns the record's fields in stream order.
func (r Record) FieldPairs() []Field {
	if r.Fields.Kind != yaml.MappingNode {
		return nil
	}
	pairs := make([]Field, 0, len(r.Fields.Content)/2)
	for i := 0; i+1 < len(r.Fields.Content); i += 2 {
		pairs = append(pairs, Field{
			Key:   r.Fields.Content[i].Value,
			Value: r.Fields.Content[i+1].Value,
		})
	}
	return pairs
}

// Documents decodes a full stream into its YAML documents.
func Documents(r io.Reader) ([][]Record, error) {
	dec := yaml.NewDecoder(r)
	var docs [][]Record
	for {
		var doc []Record
		if err := dec.Decode(&doc); err != nil {
			if errors.Is(err, io.EOF) {
				return docs, nil
			}
			return docs, fmt.Errorf("decode log document %d: %w", len(docs)+1, err)
		}
		docs = append(docs, doc)
	}
}

// Entry is a flattened (depth, level, message, fields) view of one record.
type Entry struct {
	Depth       int
	Level       string
	Message     string
	Time        string
	Scope       string
	Fields      []Field
	Placeholder bool
}

// Flatten walks the documents depth first and returns entries in stream
// order, placeholders included.
func Flatten(docs [][]Record) []Entry {
	var entries []Entry
	for _, doc := range docs {
		flattenInto(&entries, doc, 0)
	}
	return entries
}

func flattenInto(dst *[]Entry, records []Record, depth int) {
	for _, rec := range records {
		*dst = append(*dst, Entry{
			Depth:       depth,
			Level:       rec.Level,
			Message:     rec.Message,
			Time:        rec.Time,
			Scope:       rec.Scope,
			Fields:      rec.FieldPairs(),
			Placeholder: rec.Placeholder(),
		})
		flattenInto(dst, rec.Steps, depth+1)
	}
}

// Stats summarizes a parsed stream.
type Stats struct {
	Documents int
	Records   int // logged records, placeholders excluded
	MaxDepth  int
}

// Check parses the whole stream and reports its shape. Any syntactic damage
// surfaces as a decode error.
func Check(r io.Reader) (Stats, error) {
	docs, err := Documents(r)
	if err != nil {
		return Stats{}, err
	}
	stats := Stats{Documents: len(docs)}
	for _, entry := range Flatten(docs) {
		if entry.Depth > stats.MaxDepth {
			stats.MaxDepth = entry.Depth
		}
		if !entry.Placeholder {
			stats.Records++
		}
	}
	return stats, nil
}

// CheckString is a convenience wrapper for tests and prefix probing.
func CheckString(s string) (Stats, error) {
	return Check(strings.NewReader(s))
}
