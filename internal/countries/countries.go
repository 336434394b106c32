// Package countries provides the ISO-3166 alpha-3 country table and the
// places it is looked up from.
package countries

import (
	"embed"
	"io/fs"
	"strings"
	"sync"

	"github.com/hightemp/ccconv/internal/reftable"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
)

const (
	// DefaultResource is the file name of the country table.
	DefaultResource = "country-codes.txt"

	// Namespace is the subdirectory checked after the root of each location.
	Namespace = "translation"
)

//go:embed data/country-codes.txt
var dataFiles embed.FS

var (
	defaultIndex *reftable.Index
	defaultErr   error
	once         sync.Once
)

// Options selects where the table is read from.
type Options struct {
	// Resource overrides DefaultResource.
	Resource string
	// DataDir is searched before the packaged table. Empty skips it.
	DataDir string
	// Fs backs DataDir. Defaults to the OS filesystem.
	Fs     afero.Fs
	Logger logrus.FieldLogger
}

func (o Options) resource() string {
	if o.Resource == "" {
		return DefaultResource
	}
	return o.Resource
}

// Embedded returns the packaged data as a read-only filesystem.
func Embedded() afero.Fs {
	sub, err := fs.Sub(dataFiles, "data")
	if err != nil {
		// "data" is a valid static path, Sub cannot fail on it.
		panic(err)
	}
	return afero.FromIOFS{FS: sub}
}

// Candidates returns the lookup order for the table: the data directory
// (root, then namespaced) followed by the packaged copy (root, then
// namespaced).
func Candidates(opts Options) []reftable.Location {
	resource := opts.resource()
	var locs []reftable.Location

	if opts.DataDir != "" {
		disk := opts.Fs
		if disk == nil {
			disk = afero.NewReadOnlyFs(afero.NewOsFs())
		}
		locs = append(locs, reftable.Locations(disk, "disk", resource,
			opts.DataDir, opts.DataDir+"/"+Namespace)...)
	}

	return append(locs, reftable.Locations(Embedded(), "embedded", resource, "", Namespace)...)
}

// Load builds the country index from the first candidate that exists.
func Load(opts Options) (*reftable.Index, error) {
	return reftable.Load(reftable.Options{
		Resource:   opts.resource(),
		Candidates: Candidates(opts),
		Schema:     reftable.CountrySchema,
		Logger:     opts.Logger,
	})
}

// Default returns the packaged country index, loading it on first use.
func Default() (*reftable.Index, error) {
	once.Do(func() {
		defaultIndex, defaultErr = Load(Options{})
	})
	return defaultIndex, defaultErr
}

// Label returns the display name for code, or the upper-cased code when the
// table has no entry for it.
func Label(idx *reftable.Index, code string) string {
	if name, ok := idx.NameForCode(code); ok {
		return name
	}
	return strings.ToUpper(strings.TrimSpace(code))
}
