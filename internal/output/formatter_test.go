package output

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/hightemp/ccconv/internal/reftable"
	"gopkg.in/yaml.v3"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input    string
		expected Format
		hasError bool
	}{
		{"text", FormatText, false},
		{"", FormatText, false},
		{"json", FormatJSON, false},
		{"JSON", FormatJSON, false},
		{"yaml", FormatYAML, false},
		{"yml", FormatYAML, false},
		{"xml", "", true},
	}

	for _, tc := range tests {
		format, err := ParseFormat(tc.input)
		if tc.hasError {
			if err == nil {
				t.Errorf("ParseFormat(%q) expected error", tc.input)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseFormat(%q) unexpected error: %v", tc.input, err)
		}
		if format != tc.expected {
			t.Errorf("ParseFormat(%q) = %q, expected %q", tc.input, format, tc.expected)
		}
	}
}

func TestLookupResultFormatText(t *testing.T) {
	result := &LookupResult{
		Query: "CAN",
		Code:  "can",
		Name:  "Canada",
		Found: true,
	}

	text := result.FormatText()

	parts := strings.Split(text, "\t")
	if len(parts) != 3 {
		t.Fatalf("Expected 3 tab-separated parts, got %d", len(parts))
	}
	if parts[0] != "CAN" {
		t.Errorf("Query = %s, expected CAN", parts[0])
	}
	if parts[1] != "can" {
		t.Errorf("Code = %s, expected can", parts[1])
	}
	if parts[2] != "Canada" {
		t.Errorf("Name = %s, expected Canada", parts[2])
	}
}

func TestLookupResultFormatTextNotFound(t *testing.T) {
	result := &LookupResult{Query: "Atlantis"}

	text := result.FormatText()

	if !strings.HasPrefix(text, "Atlantis\t") {
		t.Errorf("Expected query first, got %q", text)
	}
	if !strings.Contains(text, "NOT FOUND") {
		t.Error("Missing result should contain NOT FOUND")
	}
}

func TestLookupResultFormatTextError(t *testing.T) {
	result := &LookupResult{
		Query: "",
		Error: "empty query",
	}

	text := result.FormatText()

	if !strings.Contains(text, "ERROR:") {
		t.Error("Error result should contain ERROR:")
	}
	if !strings.Contains(text, "empty query") {
		t.Error("Error result should contain error message")
	}
}

func TestLookupResultFormatJSON(t *testing.T) {
	result := &LookupResult{
		Query: "France",
		Code:  "fra",
		Name:  "France",
		Found: true,
	}

	jsonStr, err := result.FormatJSON()
	if err != nil {
		t.Fatalf("FormatJSON failed: %v", err)
	}

	var parsed map[string]interface{}
	if err := json.Unmarshal([]byte(jsonStr), &parsed); err != nil {
		t.Fatalf("Failed to parse JSON: %v", err)
	}

	if parsed["code"] != "fra" {
		t.Errorf("code = %v, expected fra", parsed["code"])
	}
	if parsed["found"] != true {
		t.Errorf("found = %v, expected true", parsed["found"])
	}
	if _, ok := parsed["error"]; ok {
		t.Error("error should be omitted when empty")
	}
}

func TestLookupResultFormatYAML(t *testing.T) {
	result := &LookupResult{Query: "xyz"}

	out, err := result.FormatYAML()
	if err != nil {
		t.Fatalf("FormatYAML failed: %v", err)
	}

	var parsed map[string]interface{}
	if err := yaml.Unmarshal([]byte(out), &parsed); err != nil {
		t.Fatalf("Failed to parse YAML: %v", err)
	}
	if parsed["query"] != "xyz" {
		t.Errorf("query = %v, expected xyz", parsed["query"])
	}
	if parsed["found"] != false {
		t.Errorf("found = %v, expected false", parsed["found"])
	}
	if _, ok := parsed["code"]; ok {
		t.Error("code should be omitted when empty")
	}
}

func TestBatchResultFormatText(t *testing.T) {
	batch := &BatchResult{
		Results: []*LookupResult{
			{Query: "can", Code: "can", Name: "Canada", Found: true},
			{Query: "xxx"},
		},
	}

	lines := strings.Split(batch.FormatText(), "\n")
	if len(lines) != 2 {
		t.Fatalf("Expected 2 lines, got %d", len(lines))
	}
	if !strings.Contains(lines[1], "NOT FOUND") {
		t.Errorf("Second line = %q, expected NOT FOUND", lines[1])
	}
}

func TestBatchResultFormatJSONEmpty(t *testing.T) {
	batch := &BatchResult{}

	jsonStr, err := batch.FormatJSON()
	if err != nil {
		t.Fatalf("FormatJSON failed: %v", err)
	}
	if jsonStr != "[]" {
		t.Errorf("Empty batch = %q, expected []", jsonStr)
	}
}

func TestEntryListFormats(t *testing.T) {
	list := &EntryList{Entries: []reftable.Entry{
		{Code: "can", Name: "Canada"},
		{Code: "fra", Name: "France"},
	}}

	if text := list.FormatText(); text != "can\tCanada\nfra\tFrance" {
		t.Errorf("FormatText = %q", text)
	}

	out, err := list.FormatYAML()
	if err != nil {
		t.Fatalf("FormatYAML failed: %v", err)
	}
	var entries []reftable.Entry
	if err := yaml.Unmarshal([]byte(out), &entries); err != nil {
		t.Fatalf("Failed to parse YAML: %v", err)
	}
	if len(entries) != 2 || entries[1].Name != "France" {
		t.Errorf("Decoded entries = %+v", entries)
	}
}

func TestRender(t *testing.T) {
	info := &TableInfo{Source: "embedded:country-codes.txt", Delimiter: "tab", Entries: 249}

	text, err := Render(info, FormatText)
	if err != nil {
		t.Fatalf("Render text failed: %v", err)
	}
	if !strings.Contains(text, "Entries:   249") {
		t.Errorf("Text = %q", text)
	}

	jsonStr, err := Render(info, FormatJSON)
	if err != nil {
		t.Fatalf("Render json failed: %v", err)
	}
	var decoded TableInfo
	if err := json.Unmarshal([]byte(jsonStr), &decoded); err != nil {
		t.Fatalf("Failed to parse JSON: %v", err)
	}
	if decoded != *info {
		t.Errorf("Decoded = %+v, expected %+v", decoded, *info)
	}
}
