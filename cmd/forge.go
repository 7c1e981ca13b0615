package cmd

import (
	"fmt"
	"os"
	"time"

	"bibforge/core/algebra"
	"bibforge/core/config"
	"bibforge/core/logger"
	"bibforge/core/storage"
	"bibforge/feature/forge"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var mergeCmd = &cobra.Command{
	Use:   "merge [files...]",
	Short: "Merge inputs, keeping the first record per comparison key",
	RunE:  forgeRunner(algebra.OpMerge),
}

var intersectCmd = &cobra.Command{
	Use:   "intersect [a] [b]",
	Short: "Records of the second input whose key also occurs in the first",
	RunE:  forgeRunner(algebra.OpIntersection),
}

var diffCmd = &cobra.Command{
	Use:   "diff [a] [b]",
	Short: "Records of the first input whose key does not occur in the second",
	RunE:  forgeRunner(algebra.OpDifference),
}

var filterCmd = &cobra.Command{
	Use:   "filter [files...]",
	Short: "Filter or list the merged inputs without an explicit operation",
	RunE:  forgeRunner(""),
}

func init() {
	RootCmd.AddCommand(mergeCmd, intersectCmd, diffCmd, filterCmd)
}

func forgeRunner(op algebra.Operation) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		startTime := time.Now()

		cfg, err := config.LoadConfig(".")
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if opts.format != "" {
			cfg.Storage.OutputFormat = opts.format
		}

		logg, err := logger.New(&cfg.Log)
		if err != nil {
			return fmt.Errorf("failed to create logger: %w", err)
		}
		defer func() { _ = logg.Sync() }()
		logg = logger.WithRunID(logg, logger.NewRunID())

		store, err := storage.NewStore(cfg.Storage)
		if err != nil {
			return fmt.Errorf("failed to create store: %w", err)
		}
		policies, err := algebra.PoliciesFromConfig(cfg.Compare)
		if err != nil {
			return fmt.Errorf("invalid compare config: %w", err)
		}

		req := forge.Request{
			Inputs:    append(append([]string(nil), opts.inputs...), args...),
			Dir:       opts.dir,
			Output:    opts.output,
			Fields:    fieldsOrDefault(opts.fields, cfg.Compare.Field),
			Operation: op,
			Include:   opts.include,
			Exclude:   opts.exclude,
			Lower:     opts.lower,
			List:      opts.list,
		}

		svc := forge.NewService(store, policies, os.Stdout, logg)
		res, err := svc.Run(cmd.Context(), req)
		if err != nil {
			return err
		}

		logg.Info("Run completed",
			zap.String("operation", string(res.Summary.Operation)),
			zap.Int("sources", len(res.Sources)),
			zap.Int("result", res.Collection.Len()),
			zap.Duration("execution_time", time.Since(startTime)),
		)
		return nil
	}
}

func fieldsOrDefault(fields []string, def string) []string {
	if len(fields) > 0 {
		return fields
	}
	if def == "" {
		return nil
	}
	return []string{def}
}
