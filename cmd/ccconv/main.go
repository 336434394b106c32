// ccconv is a CLI tool that converts between country names and ISO-3166 alpha-3 codes.
package main

import (
	"github.com/hightemp/ccconv/internal/cli"
)

// Build information (set via ldflags)
var (
	version   = "dev"
	commit    = "unknown"
	buildTime = "unknown"
)

func main() {
	cli.Version = version
	cli.Commit = commit
	cli.BuildTime = buildTime
	cli.Execute()
}
