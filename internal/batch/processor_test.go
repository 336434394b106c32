package batch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/hightemp/ccconv/internal/output"
	"github.com/hightemp/ccconv/internal/reftable"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

const table = "Country,Alpha-3 code\nCanada,CAN\nFrance,FRA\nGermany,DEU\n"

func testIndex(t *testing.T) *reftable.Index {
	t.Helper()
	idx, err := reftable.Parse(strings.NewReader(table), "test", reftable.Options{})
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	return idx
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		input    string
		expected Mode
		hasError bool
	}{
		{"name", ModeName, false},
		{"", ModeName, false},
		{"code", ModeCode, false},
		{"both", "", true},
		{"CODE", "", true}, // Case sensitive
	}

	for _, tc := range tests {
		mode, err := ParseMode(tc.input)
		if tc.hasError {
			if err == nil {
				t.Errorf("ParseMode(%q) expected error", tc.input)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseMode(%q) unexpected error: %v", tc.input, err)
		}
		if mode != tc.expected {
			t.Errorf("ParseMode(%q) = %q, expected %q", tc.input, mode, tc.expected)
		}
	}
}

func TestResolve(t *testing.T) {
	idx := testIndex(t)

	tests := []struct {
		mode  Mode
		query string
		code  string
		name  string
		found bool
	}{
		{ModeName, "CAN", "can", "Canada", true},
		{ModeName, " fra ", "fra", "France", true},
		{ModeName, "usa", "", "", false},
		{ModeCode, "germany", "deu", "Germany", true},
		{ModeCode, "Narnia", "", "", false},
	}

	for _, tc := range tests {
		r := Resolve(idx, tc.mode, tc.query)
		if r.Query != tc.query || r.Code != tc.code || r.Name != tc.name || r.Found != tc.found {
			t.Errorf("Resolve(%s, %q) = %+v, expected code=%q name=%q found=%v",
				tc.mode, tc.query, r, tc.code, tc.name, tc.found)
		}
	}
}

func TestProcessInputText(t *testing.T) {
	p := NewProcessor(testIndex(t), ModeName, 1)
	in := strings.NewReader("CAN\n\n  \nxxx\nfra\n")
	var out bytes.Buffer

	if err := p.ProcessInput(context.Background(), in, &out, output.FormatText); err != nil {
		t.Fatalf("ProcessInput failed: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("Expected 3 lines, got %d: %q", len(lines), out.String())
	}
	if lines[0] != "CAN\tcan\tCanada" {
		t.Errorf("Line 0 = %q", lines[0])
	}
	if !strings.Contains(lines[1], "NOT FOUND") {
		t.Errorf("Line 1 = %q, expected NOT FOUND", lines[1])
	}
}

func TestProcessInputJSON(t *testing.T) {
	p := NewProcessor(testIndex(t), ModeCode, 1)
	in := strings.NewReader("Canada\nAtlantis\n")
	var out bytes.Buffer

	if err := p.ProcessInput(context.Background(), in, &out, output.FormatJSON); err != nil {
		t.Fatalf("ProcessInput failed: %v", err)
	}

	var results []output.LookupResult
	if err := json.Unmarshal(out.Bytes(), &results); err != nil {
		t.Fatalf("Failed to parse JSON: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("Expected 2 results, got %d", len(results))
	}
	if results[0].Code != "can" || !results[0].Found {
		t.Errorf("Result 0 = %+v", results[0])
	}
	if results[1].Found {
		t.Errorf("Result 1 should not be found: %+v", results[1])
	}
}

func TestProcessInputCancelled(t *testing.T) {
	p := NewProcessor(testIndex(t), ModeName, 1)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	err := p.ProcessInput(ctx, strings.NewReader("can\n"), &out, output.FormatText)
	if err != context.Canceled {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
	if out.Len() != 0 {
		t.Errorf("Expected no output, got %q", out.String())
	}
}

func TestProcessInputConcurrentKeepsOrder(t *testing.T) {
	p := NewProcessor(testIndex(t), ModeName, 8)

	codes := []string{"can", "fra", "deu", "xxx"}
	var in strings.Builder
	var expected []string
	for i := 0; i < 100; i++ {
		c := codes[i%len(codes)]
		fmt.Fprintln(&in, c)
		expected = append(expected, Resolve(p.idx, ModeName, c).FormatText())
	}

	var out bytes.Buffer
	if err := p.ProcessInputConcurrent(context.Background(), strings.NewReader(in.String()), &out, output.FormatText); err != nil {
		t.Fatalf("ProcessInputConcurrent failed: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != len(expected) {
		t.Fatalf("Expected %d lines, got %d", len(expected), len(lines))
	}
	for i := range lines {
		if lines[i] != expected[i] {
			t.Errorf("Line %d = %q, expected %q", i, lines[i], expected[i])
		}
	}
}

func TestProcessInputConcurrentYAML(t *testing.T) {
	p := NewProcessor(testIndex(t), ModeName, 0)
	var out bytes.Buffer

	if err := p.ProcessInputConcurrent(context.Background(), strings.NewReader("deu\n"), &out, output.FormatYAML); err != nil {
		t.Fatalf("ProcessInputConcurrent failed: %v", err)
	}
	if !strings.Contains(out.String(), "name: Germany") {
		t.Errorf("YAML output = %q", out.String())
	}
}
