// Package cli implements the command-line interface.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/hightemp/ccconv/internal/config"
	"github.com/hightemp/ccconv/internal/countries"
	"github.com/hightemp/ccconv/internal/logging"
	"github.com/hightemp/ccconv/internal/output"
	"github.com/hightemp/ccconv/internal/reftable"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

var (
	// Version information (set at build time)
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

// Global state, populated by setup before any command runs.
var (
	cfgFile   string
	v         = viper.New()
	cfg       *config.Config
	log       *logrus.Logger
	logCloser io.Closer
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "ccconv",
	Short: "Country code converter - look up ISO-3166 alpha-3 codes and country names",
	Long: `ccconv converts between country names and ISO-3166 alpha-3 codes.

  ccconv name CAN          # Canada
  ccconv code "Viet Nam"   # vnm
  ccconv list --format json
  cat codes.txt | ccconv batch --mode name

The packaged table can be overridden by placing country-codes.txt (tab or
comma separated, with a Country/Name column and an Alpha-3 column) in the
data directory or its translation/ subdirectory.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
	PersistentPostRun: teardown,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		stop()
		os.Exit(1)
	}
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (default $XDG_CONFIG_HOME/ccconv/config.yaml)")
	pf.String("data-dir", config.DefaultDataDir(), "directory searched for the country table before the packaged copy")
	pf.String("resource", config.DefaultResource, "country table file name")
	pf.String("format", config.DefaultFormat, "output format: text, json, or yaml")
	pf.String("log-level", config.DefaultLogLevel, "log level: debug, info, warning, error")
	pf.String("log-file", "", "write logs to a rotating file instead of stderr")

	bindFlag(config.KeyDataDir, pf.Lookup("data-dir"))
	bindFlag(config.KeyResource, pf.Lookup("resource"))
	bindFlag(config.KeyFormat, pf.Lookup("format"))
	bindFlag(config.KeyLogLevel, pf.Lookup("log-level"))
	bindFlag(config.KeyLogFile, pf.Lookup("log-file"))

	// Add subcommands
	rootCmd.AddCommand(nameCmd)
	rootCmd.AddCommand(codeCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(infoCmd)
	rootCmd.AddCommand(batchCmd)
	rootCmd.AddCommand(versionCmd)
}

// ExitCode constants
const (
	ExitSuccess      = 0
	ExitInvalidInput = 2
	ExitTableLoad    = 3
	ExitNotFound     = 4
)

func exitWithCode(code int, msg string) {
	fmt.Fprintln(os.Stderr, msg)
	teardown(nil, nil)
	os.Exit(code)
}

func bindFlag(key string, flag *pflag.Flag) {
	if err := v.BindPFlag(key, flag); err != nil {
		panic(fmt.Sprintf("bind flag %s: %v", key, err))
	}
}

func setup(cmd *cobra.Command, args []string) error {
	c, err := config.Load(v, cfgFile)
	if err != nil {
		exitWithCode(ExitInvalidInput, fmt.Sprintf("Error: %v", err))
		return nil
	}
	cfg = c

	logger, closer, err := logging.New(cfg.Log)
	if err != nil {
		exitWithCode(ExitInvalidInput, fmt.Sprintf("Error: %v", err))
		return nil
	}
	log, logCloser = logger, closer

	if cfg.ConfigFile != "" {
		log.WithField("file", cfg.ConfigFile).Debug("Loaded config")
	}
	return nil
}

func teardown(cmd *cobra.Command, args []string) {
	if logCloser != nil {
		logCloser.Close()
		logCloser = nil
	}
}

// loadTable returns the country index selected by the configuration. The
// packaged table is shared when no override can apply.
func loadTable() *reftable.Index {
	var (
		idx *reftable.Index
		err error
	)
	if cfg.DataDir == "" && cfg.Resource == countries.DefaultResource {
		idx, err = countries.Default()
	} else {
		idx, err = countries.Load(countries.Options{
			Resource: cfg.Resource,
			DataDir:  cfg.DataDir,
			Logger:   log,
		})
	}
	if err != nil {
		exitWithCode(ExitTableLoad, fmt.Sprintf("Error loading country table: %v", err))
		return nil
	}

	log.WithFields(logrus.Fields{
		"source":  idx.Source(),
		"entries": idx.Size(),
	}).Debug("Using country table")
	return idx
}

func outputFormat() output.Format {
	f, err := output.ParseFormat(cfg.Format)
	if err != nil {
		exitWithCode(ExitInvalidInput, err.Error())
	}
	return f
}

func render(r output.Formatter) error {
	out, err := output.Render(r, outputFormat())
	if err != nil {
		return err
	}
	fmt.Println(out)
	return nil
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Args:  cobra.NoArgs,
	// Version needs neither config nor logging.
	PersistentPreRun:  func(cmd *cobra.Command, args []string) {},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {},
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("ccconv %s (commit %s, built %s)\n", Version, Commit, BuildTime)
	},
}
