// Package batch handles batch lookups from stdin.
package batch

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/hightemp/ccconv/internal/output"
	"github.com/hightemp/ccconv/internal/reftable"
)

// Mode is the lookup direction.
type Mode string

const (
	// ModeName resolves codes to names.
	ModeName Mode = "name"
	// ModeCode resolves names to codes.
	ModeCode Mode = "code"
)

// ParseMode parses a mode string.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "name", "":
		return ModeName, nil
	case "code":
		return ModeCode, nil
	default:
		return "", fmt.Errorf("invalid mode: %s (use name or code)", s)
	}
}

// Resolve looks query up in idx in the given direction.
func Resolve(idx *reftable.Index, mode Mode, query string) *output.LookupResult {
	result := &output.LookupResult{Query: query}

	switch mode {
	case ModeCode:
		code, ok := idx.CodeForName(query)
		if !ok {
			return result
		}
		result.Code = code
		result.Name, _ = idx.NameForCode(code)
	default:
		name, ok := idx.NameForCode(query)
		if !ok {
			return result
		}
		result.Code = strings.ToLower(strings.TrimSpace(query))
		result.Name = name
	}

	result.Found = true
	return result
}

// Processor handles batch lookups.
type Processor struct {
	idx         *reftable.Index
	mode        Mode
	concurrency int
}

// NewProcessor creates a new batch processor.
func NewProcessor(idx *reftable.Index, mode Mode, concurrency int) *Processor {
	if concurrency < 1 {
		concurrency = 1
	}
	return &Processor{
		idx:         idx,
		mode:        mode,
		concurrency: concurrency,
	}
}

// ProcessInput reads one query per line from r and writes results to w.
// Text output is streamed; JSON and YAML are written as one document.
func (p *Processor) ProcessInput(ctx context.Context, r io.Reader, w io.Writer, format output.Format) error {
	scanner := bufio.NewScanner(r)
	var results []*output.LookupResult

	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		result := Resolve(p.idx, p.mode, line)
		if format == output.FormatText {
			fmt.Fprintln(w, result.FormatText())
			continue
		}
		results = append(results, result)
	}
	if err := scanner.Err(); err != nil {
		return err
	}

	if format == output.FormatText {
		return nil
	}
	return writeBatch(w, results, format)
}

// ProcessInputConcurrent resolves all queries in parallel and writes them
// in input order.
func (p *Processor) ProcessInputConcurrent(ctx context.Context, r io.Reader, w io.Writer, format output.Format) error {
	scanner := bufio.NewScanner(r)
	var lines []string

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			lines = append(lines, line)
		}
	}

	if err := scanner.Err(); err != nil {
		return err
	}

	results := make([]*output.LookupResult, len(lines))
	var wg sync.WaitGroup
	sem := make(chan struct{}, p.concurrency)

	for i, line := range lines {
		if ctx.Err() != nil {
			break
		}
		wg.Add(1)
		go func(idx int, query string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()
			results[idx] = Resolve(p.idx, p.mode, query)
		}(i, line)
	}

	wg.Wait()

	if err := ctx.Err(); err != nil {
		return err
	}

	if format == output.FormatText {
		for _, result := range results {
			fmt.Fprintln(w, result.FormatText())
		}
		return nil
	}
	return writeBatch(w, results, format)
}

func writeBatch(w io.Writer, results []*output.LookupResult, format output.Format) error {
	batch := &output.BatchResult{Results: results}
	out, err := output.Render(batch, format)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, out)
	return err
}
