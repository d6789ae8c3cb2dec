package pipeline

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/seonghoon-dev/policyfit/internal/contract"
	"github.com/seonghoon-dev/policyfit/internal/model"
)

func testRow(id, name, eligibility string) model.PolicyRow {
	return model.PolicyRow{
		PolicyID:    id,
		PolicyName:  name,
		Eligibility: eligibility,
		Benefit:     "보증금 지원",
	}
}

func TestProcessRow_YouthHousing(t *testing.T) {
	p := New(nil, nil)
	row := testRow("P1", "청년 주거 지원", "만 19세 이상 34세 이하, 무주택 세대주, 연소득 6,000만원 이하")

	pp, err := p.ProcessRow(row, time.Now().UTC())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	rec := pp.Record
	if rec.PolicyID != "P1" {
		t.Errorf("expected policy_id P1, got %q", rec.PolicyID)
	}
	if rec.MinAge == nil || *rec.MinAge != 19 {
		t.Errorf("expected min_age 19, got %v", rec.MinAge)
	}
	if rec.MaxAge == nil || *rec.MaxAge != 34 {
		t.Errorf("expected max_age 34, got %v", rec.MaxAge)
	}
	if !rec.IsHomeownerRequired {
		t.Error("expected is_homeowner_required=true")
	}
	if rec.IncomeRuleType != model.IncomeRuleAmount {
		t.Errorf("expected AMOUNT, got %q", rec.IncomeRuleType)
	}
	if rec.IncomeThreshold == nil || *rec.IncomeThreshold != 60_000_000 {
		t.Errorf("expected income_threshold 60000000, got %v", rec.IncomeThreshold)
	}

	if pp.Doc.PolicyID != "P1" || pp.Doc.PolicyName != "청년 주거 지원" {
		t.Errorf("unexpected doc identity: %+v", pp.Doc)
	}
	if pp.Doc.CleanText == "" {
		t.Error("expected non-empty clean_text")
	}
}

func TestProcessRow_MedianIncome(t *testing.T) {
	p := New(nil, nil)
	row := testRow("P1", "생활 지원", "기준 중위소득 150% 이하 가구")

	pp, err := p.ProcessRow(row, time.Now().UTC())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if pp.Record.IncomeRuleType != model.IncomeRuleMedianRatio {
		t.Errorf("expected MEDIAN_RATIO, got %q", pp.Record.IncomeRuleType)
	}
	if pp.Record.IncomeThreshold != nil {
		t.Errorf("MEDIAN_RATIO must not carry a threshold, got %v", *pp.Record.IncomeThreshold)
	}
}

func TestProcessRow_NoAssetVehicleMentions(t *testing.T) {
	p := New(nil, nil)
	row := testRow("P1", "청년 지원", "만 19세 이상")

	pp, err := p.ProcessRow(row, time.Now().UTC())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if pp.Record.AssetThreshold != nil || pp.Record.VehicleValueLimit != nil {
		t.Errorf("expected null asset/vehicle thresholds, got %v / %v",
			pp.Record.AssetThreshold, pp.Record.VehicleValueLimit)
	}
}

func TestProcessRow_MissingPolicyName(t *testing.T) {
	p := New(nil, nil)
	row := testRow("P1", "  ", "만 19세 이상")

	_, err := p.ProcessRow(row, time.Now().UTC())
	if !errors.Is(err, contract.ErrSchema) {
		t.Fatalf("expected schema violation for missing policy_name, got %v", err)
	}
}

func TestRun_DuplicatePolicyIDAborts(t *testing.T) {
	p := New(nil, nil)
	rows := []model.PolicyRow{
		testRow("P1", "정책 A", "만 19세 이상"),
		testRow("P1", "정책 B", "만 24세 이상"),
	}

	snap, err := p.Run(context.Background(), rows)
	if !errors.Is(err, contract.ErrSchema) {
		t.Fatalf("expected schema violation, got %v", err)
	}
	if snap != nil {
		t.Error("no snapshot may exist after a schema violation")
	}
}

func TestRun_SnapshotAssembly(t *testing.T) {
	cfg := model.DefaultConfig()
	cfg.Pipeline.Concurrency = 2
	p := New(cfg, nil)

	rows := []model.PolicyRow{
		testRow("P1", "정책 A", "만 19세 이상 34세 이하"),
		testRow("P2", "정책 B", "기준 중위소득 150% 이하"),
		testRow("P3", "정책 C", "차량 미보유, 차량가액 3,557만원 이하"),
	}

	snap, err := p.Run(context.Background(), rows)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if snap.RunID == "" {
		t.Error("expected a run id")
	}
	if len(snap.Policies) != 3 || len(snap.Eligibility) != 3 {
		t.Fatalf("expected 3 policies and 3 records, got %d / %d", len(snap.Policies), len(snap.Eligibility))
	}
	// Worker output must preserve input order.
	for i, want := range []string{"P1", "P2", "P3"} {
		if snap.Eligibility[i].PolicyID != want {
			t.Errorf("row %d: expected %s, got %s", i, want, snap.Eligibility[i].PolicyID)
		}
	}
	if snap.Eligibility[2].VehicleValueLimit == nil || *snap.Eligibility[2].VehicleValueLimit != 35_570_000 {
		t.Errorf("expected vehicle cap on P3, got %v", snap.Eligibility[2].VehicleValueLimit)
	}
}

func TestRun_Limit(t *testing.T) {
	cfg := model.DefaultConfig()
	cfg.Pipeline.Limit = 1
	p := New(cfg, nil)

	rows := []model.PolicyRow{
		testRow("P1", "정책 A", "만 19세 이상"),
		testRow("P2", "정책 B", "만 24세 이상"),
	}

	snap, err := p.Run(context.Background(), rows)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(snap.Eligibility) != 1 || snap.Eligibility[0].PolicyID != "P1" {
		t.Errorf("expected only the first row, got %+v", snap.Eligibility)
	}
}
