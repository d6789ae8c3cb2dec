package pipeline

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/seonghoon-dev/policyfit/internal/contract"
	"github.com/seonghoon-dev/policyfit/internal/model"
	"github.com/seonghoon-dev/policyfit/internal/store"
)

func TestWriteReadEligibilityRoundTrip(t *testing.T) {
	dir := t.TempDir()

	minAge, maxAge := 19, 34
	income := int64(60_000_000)
	region := "서울"
	snap := &store.Snapshot{
		RunID:       "run-1",
		GeneratedAt: time.Now().UTC(),
		Policies: []model.PolicyDoc{
			{PolicyID: "P1", PolicyName: "청년 주거 지원", Region: &region, CleanText: "[메타] ...", UpdatedAt: time.Now().UTC()},
		},
		Eligibility: []model.EligibilityRecord{
			{
				PolicyID:            "P1",
				MinAge:              &minAge,
				MaxAge:              &maxAge,
				IncomeRuleType:      model.IncomeRuleAmount,
				IncomeThreshold:     &income,
				IsHomeownerRequired: true,
			},
		},
	}

	if err := WriteTables(dir, snap); err != nil {
		t.Fatalf("write tables: %v", err)
	}
	for _, name := range []string{"policies.csv", "policy_eligibility.csv"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Fatalf("expected %s to exist: %v", name, err)
		}
	}
	if staged, _ := filepath.Glob(filepath.Join(dir, "*.tmp")); len(staged) != 0 {
		t.Errorf("publication must leave no staging files, found %v", staged)
	}

	records, err := ReadEligibilityTable(filepath.Join(dir, "policy_eligibility.csv"))
	if err != nil {
		t.Fatalf("read eligibility table: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	rec := records[0]
	if rec.PolicyID != "P1" || !rec.IsHomeownerRequired {
		t.Errorf("unexpected record identity: %+v", rec)
	}
	if rec.MinAge == nil || *rec.MinAge != 19 || rec.MaxAge == nil || *rec.MaxAge != 34 {
		t.Errorf("age bounds did not survive the round trip: %+v", rec)
	}
	if rec.IncomeRuleType != model.IncomeRuleAmount || rec.IncomeThreshold == nil || *rec.IncomeThreshold != 60_000_000 {
		t.Errorf("income rule did not survive the round trip: %+v", rec)
	}
	if rec.AssetThreshold != nil || rec.VehicleValueLimit != nil {
		t.Errorf("absent thresholds must stay null: %+v", rec)
	}
}

func TestReadEligibilityTable_SpreadsheetArtifacts(t *testing.T) {
	path := filepath.Join(t.TempDir(), "elig.tsv")
	content := "policy_id\tmin_age\tmax_age\tincome_rule_type\tincome_threshold\tasset_threshold\tis_homeowner_required\tvehicle_value_limit\n" +
		"P1\t19.0\t34\tamount\t60,000,000\t\tTRUE\t\n" +
		"P2\t\t\t\t\tnan\tFALSE\t\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	records, err := ReadEligibilityTable(path)
	if err != nil {
		t.Fatalf("read tsv: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}

	p1 := records[0]
	if p1.MinAge == nil || *p1.MinAge != 19 {
		t.Errorf("float rendering 19.0 should parse to 19, got %v", p1.MinAge)
	}
	if p1.IncomeRuleType != model.IncomeRuleAmount {
		t.Errorf("lowercase rule type should normalize, got %q", p1.IncomeRuleType)
	}
	if p1.IncomeThreshold == nil || *p1.IncomeThreshold != 60_000_000 {
		t.Errorf("thousands separators should parse, got %v", p1.IncomeThreshold)
	}
	if !p1.IsHomeownerRequired {
		t.Error("TRUE should parse as true")
	}

	p2 := records[1]
	if p2.AssetThreshold != nil {
		t.Errorf("nan should parse as null, got %v", *p2.AssetThreshold)
	}
	if p2.IncomeRuleType != model.IncomeRuleNone {
		t.Errorf("empty rule type should normalize to NONE, got %q", p2.IncomeRuleType)
	}
	if p2.IsHomeownerRequired {
		t.Error("FALSE should parse as false")
	}
}

func TestReadPolicyTable_MissingRequiredColumn(t *testing.T) {
	path := filepath.Join(t.TempDir(), "input.csv")
	if err := os.WriteFile(path, []byte("policy_id,policy_name\nP1,정책\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := ReadPolicyTable(path)
	if !errors.Is(err, contract.ErrSchema) {
		t.Fatalf("expected schema violation for missing eligibility column, got %v", err)
	}
}

func TestReadPolicyTable_BOMHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "input.csv")
	content := "\uFEFFpolicy_id,eligibility\nP1,만 19세 이상\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	rows, err := ReadPolicyTable(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 1 || rows[0].PolicyID != "P1" {
		t.Errorf("BOM-prefixed header should still resolve, got %+v", rows)
	}
}
