package reftable

import (
	"bufio"
	"io"
	"path"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

const (
	bom = "\uFEFF"

	// maxLineSize caps a single line of the resource.
	maxLineSize = 1 << 20
)

// Location is one place a resource may be found.
type Location struct {
	Fs    afero.Fs
	Path  string
	Label string // shown in errors and logs, e.g. "embedded" or "disk"
}

func (l Location) String() string {
	if l.Label == "" {
		return l.Path
	}
	return l.Label + ":" + l.Path
}

// Locations returns one candidate per root, each pointing at resource
// inside that root. An empty root means the filesystem root.
func Locations(fsys afero.Fs, label, resource string, roots ...string) []Location {
	locs := make([]Location, 0, len(roots))
	for _, root := range roots {
		locs = append(locs, Location{
			Fs:    fsys,
			Path:  path.Join(root, resource),
			Label: label,
		})
	}
	return locs
}

// Schema tells the header parser which columns hold names and codes.
type Schema struct {
	// NameColumns are lowercase header names accepted for the name column.
	NameColumns []string
	// CodePrefix is the lowercase prefix identifying the code column.
	CodePrefix string
}

// CountrySchema matches ISO 3166 style tables such as
// "Country<TAB>Alpha-2 code<TAB>Alpha-3 code".
var CountrySchema = Schema{
	NameColumns: []string{"country", "name"},
	CodePrefix:  "alpha-3",
}

func (s Schema) isZero() bool {
	return len(s.NameColumns) == 0 && s.CodePrefix == ""
}

// columns returns the positions of the name and code columns, or -1 when a
// column is missing. Later matches win.
func (s Schema) columns(cols []string) (nameIdx, codeIdx int) {
	nameIdx, codeIdx = -1, -1
	for i, col := range cols {
		h := strings.ToLower(strings.TrimSpace(col))
		for _, n := range s.NameColumns {
			if h == n {
				nameIdx = i
			}
		}
		if s.CodePrefix != "" && strings.HasPrefix(h, s.CodePrefix) {
			codeIdx = i
		}
	}
	return nameIdx, codeIdx
}

// Options configures Load.
type Options struct {
	// Resource is the logical resource name, used in error messages.
	Resource string
	// Candidates are tried in order; the first that opens is used.
	Candidates []Location
	// Schema defaults to CountrySchema.
	Schema Schema
	// Logger receives debug output about skipped rows. Nil discards.
	Logger logrus.FieldLogger
}

func (o Options) logger() logrus.FieldLogger {
	if o.Logger != nil {
		return o.Logger
	}
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// Load resolves the first available candidate and parses it into an Index.
// The resource is closed before Load returns.
func Load(opts Options) (*Index, error) {
	log := opts.logger()

	f, loc, err := resolve(opts.Resource, opts.Candidates, log)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	opts.Logger = log
	return Parse(f, loc.String(), opts)
}

func resolve(resource string, candidates []Location, log logrus.FieldLogger) (afero.File, Location, error) {
	tried := make([]string, 0, len(candidates))
	for _, loc := range candidates {
		tried = append(tried, loc.String())
		if loc.Fs == nil {
			continue
		}

		f, err := loc.Fs.Open(loc.Path)
		if err != nil {
			log.WithField("candidate", loc.String()).WithError(err).Debug("Candidate unavailable")
			continue
		}
		if fi, err := f.Stat(); err == nil && fi.IsDir() {
			f.Close()
			log.WithField("candidate", loc.String()).Debug("Candidate is a directory")
			continue
		}
		return f, loc, nil
	}

	return nil, Location{}, &LoadError{
		Kind:     ErrResourceNotFound,
		Resource: resource,
		Tried:    tried,
	}
}

// Parse builds an Index from r. source names r in errors and logs. The
// candidate list in opts is ignored.
func Parse(r io.Reader, source string, opts Options) (*Index, error) {
	log := opts.logger().WithField("source", source)
	schema := opts.Schema
	if schema.isZero() {
		schema = CountrySchema
	}

	fail := func(kind error) *LoadError {
		return &LoadError{Kind: kind, Resource: opts.Resource, Location: source}
	}

	dec := transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder()))
	sc := bufio.NewScanner(dec)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	if !sc.Scan() {
		if err := sc.Err(); err != nil {
			e := fail(ErrLoadFailure)
			e.Err = err
			return nil, e
		}
		return nil, fail(ErrEmptyResource)
	}

	header := strings.ReplaceAll(sc.Text(), bom, "")
	delim := ','
	if strings.ContainsRune(header, '\t') {
		delim = '\t'
	}
	sep := string(delim)

	cols := strings.Split(header, sep)
	nameIdx, codeIdx := schema.columns(cols)
	if nameIdx < 0 || codeIdx < 0 {
		e := fail(ErrMalformedHeader)
		e.Columns = cols
		return nil, e
	}
	need := max(nameIdx, codeIdx)

	idx := newIndex(source, delim)
	ln := 1
	for sc.Scan() {
		ln++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Split(line, sep)
		if len(fields) <= need {
			log.WithField("line", ln).Debug("Skipping short row")
			continue
		}

		name := strings.TrimSpace(fields[nameIdx])
		code := normalize(strings.ReplaceAll(fields[codeIdx], bom, ""))
		if name == "" || code == "" {
			log.WithField("line", ln).Debug("Skipping row with empty name or code")
			continue
		}

		if prev, ok := idx.codeToName[code]; ok && prev != name {
			log.WithFields(logrus.Fields{"line": ln, "code": code, "previous": prev}).Debug("Duplicate code, later row wins")
		}
		idx.put(code, name)
	}
	if err := sc.Err(); err != nil {
		e := fail(ErrLoadFailure)
		e.Err = err
		return nil, e
	}

	if idx.Size() == 0 {
		return nil, fail(ErrEmptyResultSet)
	}

	log.WithFields(logrus.Fields{
		"entries":   idx.Size(),
		"delimiter": DelimiterName(delim),
	}).Info("Reference table loaded")
	return idx, nil
}

// DelimiterName returns "tab" or "comma".
func DelimiterName(d rune) string {
	if d == '\t' {
		return "tab"
	}
	return "comma"
}
