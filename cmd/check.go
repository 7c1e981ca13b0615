package cmd

import (
	"fmt"
	"os"
	"time"

	"bibforge/core/algebra"
	"bibforge/core/config"
	"bibforge/core/logger"
	"bibforge/core/storage"
	"bibforge/feature/integrity"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// checkCmd represents the check command
var checkCmd = &cobra.Command{
	Use:   "check [files...]",
	Short: "Report missing comparison fields and duplicate keys per input",
	Long: `Loads each input and reports, per source, the records lacking the comparison
field and the records whose keys collide under the merge and the pair key policies.
Outputs metrics by default or the detailed report with --json.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		startTime := time.Now()
		jsonOutput, _ := cmd.Flags().GetBool("json")

		cfg, err := config.LoadConfig(".")
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
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

		paths := append(append([]string(nil), opts.inputs...), args...)
		if opts.dir != "" {
			if len(paths) > 0 {
				return fmt.Errorf("input files and directory are mutually exclusive")
			}
			if paths, err = store.Enumerate(opts.dir); err != nil {
				return err
			}
		}
		if len(paths) == 0 {
			return fmt.Errorf("either input files or a directory is required")
		}

		fields := fieldsOrDefault(opts.fields, cfg.Compare.Field)
		if len(fields) == 0 {
			return fmt.Errorf("no comparison field given")
		}

		svc := integrity.NewService(store, policies, logg)
		reports, err := svc.Check(cmd.Context(), paths, fields[0])
		if err != nil {
			return err
		}

		if jsonOutput {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(reports)
		}

		dirty := 0
		fmt.Println("\n=== Reference Integrity Metrics ===")
		for _, r := range reports {
			if !r.Clean() {
				dirty++
			}
			fmt.Printf("%s\n", r.Source)
			fmt.Printf("  Records: %d\n", r.Records)
			fmt.Printf("  Missing '%s': %d\n", fields[0], len(r.Field.Missing))
			fmt.Printf("  Duplicate groups (%s): %d\n", policies.Merge, len(r.Merge))
			fmt.Printf("  Duplicate groups (%s): %d\n", policies.Pair, len(r.Pair))
		}
		executionTime := time.Since(startTime)
		fmt.Printf("Sources with issues: %d of %d\n", dirty, len(reports))
		fmt.Printf("Execution Time: %s\n", executionTime.String())

		logg.Info("Integrity check completed",
			zap.Int("sources", len(reports)),
			zap.Int("with_issues", dirty),
			zap.Duration("execution_time", executionTime),
		)
		return nil
	},
}

func init() {
	RootCmd.AddCommand(checkCmd)
	checkCmd.Flags().Bool("json", false, "Output the detailed report as JSON")
}
