package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/seonghoon-dev/policyfit/internal/evaluate"
	"github.com/seonghoon-dev/policyfit/internal/model"
	"github.com/seonghoon-dev/policyfit/internal/pipeline"
	"github.com/seonghoon-dev/policyfit/internal/store"
)

var (
	checkEligibility  string
	checkDBPath       string
	checkAge          int
	checkIncome       int64
	checkAssets       int64
	checkHomeless     bool
	checkVehicleValue int64
	checkJSON         bool
	checkTop          int
)

// checkCmd represents the check command
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Evaluate an applicant profile against an eligibility dataset",
	Long: `Check compares one applicant profile against every record of a
policy_eligibility dataset and reports which policies pass, with a
per-criterion explanation.

Flags left unset count as unknown applicant data: a policy whose active
constraint needs that field then fails conservatively rather than being
skipped.

Example:
  policyfit check --eligibility out/policy_eligibility.csv --age 31 --annual-income 50000000 --homeless=true
  policyfit check --db snapshot.db --age 25 --json`,
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().StringVar(&checkEligibility, "eligibility", "", "policy_eligibility table (CSV or TSV)")
	checkCmd.Flags().StringVar(&checkDBPath, "db", "", "sqlite snapshot database path")
	checkCmd.Flags().IntVar(&checkAge, "age", 0, "applicant age (required)")
	checkCmd.Flags().Int64Var(&checkIncome, "annual-income", 0, "annual income in won")
	checkCmd.Flags().Int64Var(&checkAssets, "assets", 0, "total assets in won")
	checkCmd.Flags().BoolVar(&checkHomeless, "homeless", false, "applicant owns no home")
	checkCmd.Flags().Int64Var(&checkVehicleValue, "vehicle-value", 0, "vehicle value in won")
	checkCmd.Flags().BoolVar(&checkJSON, "json", false, "print the full result as JSON")
	checkCmd.Flags().IntVar(&checkTop, "top", 5, "number of passing policies to detail")

	_ = checkCmd.MarkFlagRequired("age")
}

func runCheck(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	records, err := loadEligibility(ctx)
	if err != nil {
		return err
	}

	// Evaluation always runs against one published generation.
	dataset := store.NewMemory()
	dataset.Publish(&store.Snapshot{GeneratedAt: time.Now().UTC(), Eligibility: records})

	profile := model.ApplicantProfile{Age: checkAge}
	if cmd.Flags().Changed("annual-income") {
		profile.AnnualIncome = &checkIncome
	}
	if cmd.Flags().Changed("assets") {
		profile.Assets = &checkAssets
	}
	if cmd.Flags().Changed("homeless") {
		profile.IsHomeless = &checkHomeless
	}
	if cmd.Flags().Changed("vehicle-value") {
		profile.VehicleValue = &checkVehicleValue
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	ttl := cfg.Cache.TTL
	if !cfg.Cache.Enabled {
		ttl = 0
	}

	snap := dataset.Current()
	result := evaluate.NewFilter(ttl).Run(snap.Eligibility, profile)

	if checkJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}

	fmt.Printf("policies: %d  passed: %d  failed: %d\n",
		len(records), len(result.Passed), len(result.Failed))
	for i, match := range result.Passed {
		if i >= checkTop {
			fmt.Printf("... and %d more\n", len(result.Passed)-checkTop)
			break
		}
		fmt.Printf("\n--- PASS policy_id=%s ---\n", match.PolicyID)
		for _, line := range match.Explanation.Passed {
			fmt.Printf("  ✓ %s\n", line)
		}
		for _, line := range match.Explanation.Skipped {
			fmt.Printf("  - %s\n", line)
		}
	}
	return nil
}

// loadEligibility reads records from the sqlite snapshot when --db is set,
// otherwise from the CSV table.
func loadEligibility(ctx context.Context) ([]model.EligibilityRecord, error) {
	switch {
	case checkDBPath != "":
		db, err := store.OpenSQLite(checkDBPath)
		if err != nil {
			return nil, fmt.Errorf("open snapshot db: %w", err)
		}
		defer func() { _ = db.Close() }()
		return db.LoadEligibility(ctx)
	case checkEligibility != "":
		return pipeline.ReadEligibilityTable(checkEligibility)
	default:
		return nil, fmt.Errorf("one of --eligibility or --db is required")
	}
}
