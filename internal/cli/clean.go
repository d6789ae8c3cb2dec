package cli

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/seonghoon-dev/policyfit/internal/pipeline"
	"github.com/seonghoon-dev/policyfit/internal/store"
)

var (
	cleanInput       string
	cleanOutputDir   string
	cleanDBPath      string
	cleanLimit       int
	cleanConcurrency int
	cleanTimeout     time.Duration
)

// cleanCmd represents the clean command
var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Extract eligibility constraints from an input policy table",
	Long: `Clean runs the full extraction batch:
- Validate the input table contract (fail-fast, no partial output)
- Normalize each row's text and run the four domain extractors
- Reduce raw constraints into the fixed policy_eligibility schema
- Emit policies.csv and policy_eligibility.csv together, or not at all

Example:
  policyfit clean --input policies.csv
  policyfit clean --input policies.csv --output-dir ./out --db snapshot.db
  policyfit clean --input policies.csv --limit 100 --concurrency 4`,
	RunE: runClean,
}

func init() {
	rootCmd.AddCommand(cleanCmd)

	cleanCmd.Flags().StringVar(&cleanInput, "input", "", "input policy table (CSV or TSV)")
	cleanCmd.Flags().StringVar(&cleanOutputDir, "output-dir", "./policyfit-out", "directory for the output tables")
	cleanCmd.Flags().StringVar(&cleanDBPath, "db", "", "optional sqlite snapshot database path")
	cleanCmd.Flags().IntVar(&cleanLimit, "limit", 0, "process only the first N rows (0 = all)")
	cleanCmd.Flags().IntVar(&cleanConcurrency, "concurrency", runtime.NumCPU(), "number of concurrent row workers")
	cleanCmd.Flags().DurationVar(&cleanTimeout, "timeout", 10*time.Minute, "total timeout for the batch")

	_ = cleanCmd.MarkFlagRequired("input")
}

func runClean(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), cleanTimeout)
	defer cancel()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	cfg.Pipeline.Concurrency = cleanConcurrency
	cfg.Pipeline.Limit = cleanLimit
	cfg.Output.Dir = cleanOutputDir

	log, err := newLogger(cfg)
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	rows, err := pipeline.ReadPolicyTable(cleanInput)
	if err != nil {
		return fmt.Errorf("read input table: %w", err)
	}
	log.Info("input table loaded", zap.String("path", cleanInput), zap.Int("rows", len(rows)))

	p := pipeline.New(cfg, log)
	snap, err := p.Run(ctx, rows)
	if err != nil {
		return fmt.Errorf("run batch: %w", err)
	}

	if err := pipeline.WriteTables(cfg.Output.Dir, snap); err != nil {
		return fmt.Errorf("write output tables: %w", err)
	}
	log.Info("output tables written", zap.String("dir", cfg.Output.Dir))

	if cleanDBPath != "" {
		db, err := store.OpenSQLite(cleanDBPath)
		if err != nil {
			return fmt.Errorf("open snapshot db: %w", err)
		}
		defer func() { _ = db.Close() }()
		if err := db.Replace(ctx, snap); err != nil {
			return fmt.Errorf("replace snapshot: %w", err)
		}
		log.Info("snapshot persisted", zap.String("db", cleanDBPath), zap.String("run_id", snap.RunID))
	}

	fmt.Fprintf(os.Stderr, "✓ %d policies → %s (run %s)\n", len(snap.Policies), cfg.Output.Dir, snap.RunID)
	return nil
}
