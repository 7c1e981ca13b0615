package cmd

import (
	"fmt"
	"os"

	"bibforge/core/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// options holds the flags shared by every command.
type options struct {
	fields  []string
	inputs  []string
	dir     string
	output  string
	include string
	exclude string
	lower   bool
	list    bool
	format  string
}

var opts options

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "bibforge",
	Short: "Set algebra over bibliographic reference files",
	Long: `bibforge merges, intersects and diffs collections of BibTeX references
identified by a comparison field such as a DOI, and narrows the result with
regular expressions over one or more fields.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		// Console logger at debug level for readable timestamps.
		cfg := &logger.Config{
			Level:  "debug",
			Format: "console",
		}

		l, logErr := logger.New(cfg)
		if logErr == nil {
			l.Error("command failed", zap.Error(err))
			_ = l.Sync()
		} else {
			fmt.Println(err)
		}
		os.Exit(1)
	}
}

func init() {
	f := RootCmd.PersistentFlags()
	f.StringArrayVarP(&opts.fields, "field", "f", nil, "Comparison field, repeatable; the first is primary, all are filtered and listed (default from COMPARE_FIELD)")
	f.StringSliceVar(&opts.inputs, "in", nil, "Input files, in order (also accepted as arguments)")
	f.StringVar(&opts.dir, "dir", "", "Directory whose reference files are used as inputs")
	f.StringVarP(&opts.output, "out", "o", "", "Output file")
	f.StringVar(&opts.include, "include", "", "Keep only records where a field matches this regex")
	f.StringVar(&opts.exclude, "exclude", "", "Drop records where a field matches this regex")
	f.BoolVar(&opts.lower, "lower", false, "Lower-case the primary field before comparing")
	f.BoolVar(&opts.list, "list", false, "Print the fields of every result record")
	f.StringVar(&opts.format, "format", "", "Output format (bibtex, json, yaml); default follows the output extension")
}
