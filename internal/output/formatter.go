// Package output handles output formatting.
package output

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/hightemp/ccconv/internal/reftable"
	"gopkg.in/yaml.v3"
)

// Format selects how results are rendered.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat parses a format name.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "text", "":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("invalid format: %s (use text, json, or yaml)", s)
	}
}

// Formatter is implemented by every renderable result.
type Formatter interface {
	FormatText() string
	FormatJSON() (string, error)
	FormatYAML() (string, error)
}

// Render formats v in the given format.
func Render(v Formatter, f Format) (string, error) {
	switch f {
	case FormatJSON:
		return v.FormatJSON()
	case FormatYAML:
		return v.FormatYAML()
	default:
		return v.FormatText(), nil
	}
}

// LookupResult contains the result of one lookup.
type LookupResult struct {
	Query string `json:"query" yaml:"query"`
	Code  string `json:"code,omitempty" yaml:"code,omitempty"`
	Name  string `json:"name,omitempty" yaml:"name,omitempty"`
	Found bool   `json:"found" yaml:"found"`
	Error string `json:"error,omitempty" yaml:"error,omitempty"`
}

// FormatText formats result as tab-separated text.
func (r *LookupResult) FormatText() string {
	if r.Error != "" {
		return fmt.Sprintf("%s\t-\t-\tERROR: %s", r.Query, r.Error)
	}
	if !r.Found {
		return fmt.Sprintf("%s\t-\t-\tNOT FOUND", r.Query)
	}
	return fmt.Sprintf("%s\t%s\t%s", r.Query, r.Code, r.Name)
}

// FormatJSON formats result as JSON.
func (r *LookupResult) FormatJSON() (string, error) {
	return marshalJSON(r)
}

// FormatYAML formats result as YAML.
func (r *LookupResult) FormatYAML() (string, error) {
	return marshalYAML(r)
}

// BatchResult contains results for batch processing.
type BatchResult struct {
	Results []*LookupResult
}

// FormatText formats batch results as text (one line per result).
func (b *BatchResult) FormatText() string {
	var lines []string
	for _, r := range b.Results {
		lines = append(lines, r.FormatText())
	}
	return strings.Join(lines, "\n")
}

// FormatJSON formats batch results as JSON array.
func (b *BatchResult) FormatJSON() (string, error) {
	return marshalJSON(nonNil(b.Results))
}

// FormatYAML formats batch results as a YAML sequence.
func (b *BatchResult) FormatYAML() (string, error) {
	return marshalYAML(nonNil(b.Results))
}

// EntryList is a full table listing.
type EntryList struct {
	Entries []reftable.Entry
}

// FormatText formats entries as "code<TAB>name" lines.
func (l *EntryList) FormatText() string {
	lines := make([]string, len(l.Entries))
	for i, e := range l.Entries {
		lines[i] = e.Code + "\t" + e.Name
	}
	return strings.Join(lines, "\n")
}

// FormatJSON formats entries as a JSON array.
func (l *EntryList) FormatJSON() (string, error) {
	return marshalJSON(nonNil(l.Entries))
}

// FormatYAML formats entries as a YAML sequence.
func (l *EntryList) FormatYAML() (string, error) {
	return marshalYAML(nonNil(l.Entries))
}

// TableInfo describes a loaded table.
type TableInfo struct {
	Source    string `json:"source" yaml:"source"`
	Delimiter string `json:"delimiter" yaml:"delimiter"`
	Entries   int    `json:"entries" yaml:"entries"`
}

// NewTableInfo summarizes idx.
func NewTableInfo(idx *reftable.Index) *TableInfo {
	return &TableInfo{
		Source:    idx.Source(),
		Delimiter: reftable.DelimiterName(idx.Delimiter()),
		Entries:   idx.Size(),
	}
}

// FormatText formats info as aligned key/value lines.
func (i *TableInfo) FormatText() string {
	return fmt.Sprintf("Source:    %s\nDelimiter: %s\nEntries:   %d", i.Source, i.Delimiter, i.Entries)
}

// FormatJSON formats info as JSON.
func (i *TableInfo) FormatJSON() (string, error) {
	return marshalJSON(i)
}

// FormatYAML formats info as YAML.
func (i *TableInfo) FormatYAML() (string, error) {
	return marshalYAML(i)
}

func marshalJSON(v any) (string, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func marshalYAML(v any) (string, error) {
	data, err := yaml.Marshal(v)
	if err != nil {
		return "", err
	}
	return strings.TrimSuffix(string(data), "\n"), nil
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
