// Package reftable loads small delimited reference tables (name to code) and
// serves case-insensitive lookups in both directions.
package reftable

import (
	"sort"
	"strings"
)

// Entry is one accepted row of a table.
type Entry struct {
	Code string `json:"code" yaml:"code"`
	Name string `json:"name" yaml:"name"`
}

// Index is an immutable bidirectional code/name table. It is safe for
// concurrent use once returned by Load or Parse.
type Index struct {
	codeToName map[string]string
	nameToCode map[string]string
	source     string
	delim      rune
}

func newIndex(source string, delim rune) *Index {
	return &Index{
		codeToName: make(map[string]string),
		nameToCode: make(map[string]string),
		source:     source,
		delim:      delim,
	}
}

// put records one accepted row in both directions. code must already be
// normalized; name keeps its display case.
func (x *Index) put(code, name string) {
	x.codeToName[code] = name
	x.nameToCode[normalize(name)] = code
}

// NameForCode returns the display name for code. Case and surrounding
// whitespace of code are ignored.
func (x *Index) NameForCode(code string) (string, bool) {
	key := normalize(code)
	if key == "" {
		return "", false
	}
	name, ok := x.codeToName[key]
	return name, ok
}

// CodeForName returns the normalized code for name. Case and surrounding
// whitespace of name are ignored.
func (x *Index) CodeForName(name string) (string, bool) {
	key := normalize(name)
	if key == "" {
		return "", false
	}
	code, ok := x.nameToCode[key]
	return code, ok
}

// Size returns the number of indexed codes.
func (x *Index) Size() int {
	return len(x.codeToName)
}

// Codes returns all codes in ascending order.
func (x *Index) Codes() []string {
	codes := make([]string, 0, len(x.codeToName))
	for code := range x.codeToName {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// Entries returns all entries ordered by code.
func (x *Index) Entries() []Entry {
	codes := x.Codes()
	entries := make([]Entry, len(codes))
	for i, code := range codes {
		entries[i] = Entry{Code: code, Name: x.codeToName[code]}
	}
	return entries
}

// Source returns the location the table was read from.
func (x *Index) Source() string {
	return x.source
}

// Delimiter returns the field delimiter detected from the header.
func (x *Index) Delimiter() rune {
	return x.delim
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
