package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/seonghoon-dev/policyfit/internal/model"
)

func openTestDB(t *testing.T) *SQLite {
	t.Helper()
	db, err := OpenSQLite(filepath.Join(t.TempDir(), "snapshot.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestSQLite_ReplaceAndLoad(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	minAge, maxAge := 19, 34
	income := int64(60_000_000)
	snap := &Snapshot{
		RunID:       "run-1",
		GeneratedAt: time.Now().UTC(),
		Policies: []model.PolicyDoc{
			{PolicyID: "P1", PolicyName: "청년 주거 지원", CleanText: "[메타] ...", UpdatedAt: time.Now().UTC()},
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

	if err := db.Replace(ctx, snap); err != nil {
		t.Fatalf("replace: %v", err)
	}

	records, err := db.LoadEligibility(ctx)
	if err != nil {
		t.Fatalf("load eligibility: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	rec := records[0]
	if rec.PolicyID != "P1" || !rec.IsHomeownerRequired {
		t.Errorf("unexpected record: %+v", rec)
	}
	if rec.MinAge == nil || *rec.MinAge != 19 || rec.MaxAge == nil || *rec.MaxAge != 34 {
		t.Errorf("age bounds did not survive: %+v", rec)
	}
	if rec.IncomeRuleType != model.IncomeRuleAmount || rec.IncomeThreshold == nil || *rec.IncomeThreshold != 60_000_000 {
		t.Errorf("income rule did not survive: %+v", rec)
	}
	if rec.AssetThreshold != nil || rec.VehicleValueLimit != nil {
		t.Errorf("absent thresholds must load as nil: %+v", rec)
	}
}

func TestSQLite_ReplaceSwapsGeneration(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	first := snapshotWith("run-1", "P1", "P2")
	if err := db.Replace(ctx, first); err != nil {
		t.Fatalf("replace run-1: %v", err)
	}

	second := snapshotWith("run-2", "P3")
	second.GeneratedAt = first.GeneratedAt.Add(time.Second)
	if err := db.Replace(ctx, second); err != nil {
		t.Fatalf("replace run-2: %v", err)
	}

	records, err := db.LoadEligibility(ctx)
	if err != nil {
		t.Fatalf("load eligibility: %v", err)
	}
	if len(records) != 1 || records[0].PolicyID != "P3" {
		t.Errorf("expected only the new generation, got %+v", records)
	}

	runID, count, ok, err := db.LastRun(ctx)
	if err != nil || !ok {
		t.Fatalf("last run: %v (ok=%v)", err, ok)
	}
	if runID != "run-2" || count != 1 {
		t.Errorf("expected run-2 with 1 policy, got %s / %d", runID, count)
	}
}

func TestSQLite_LastRunEmpty(t *testing.T) {
	db := openTestDB(t)

	_, _, ok, err := db.LastRun(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Error("expected no run log entry in a fresh database")
	}
}
