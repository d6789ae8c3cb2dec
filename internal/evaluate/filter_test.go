package evaluate

import (
	"testing"
	"time"

	"github.com/seonghoon-dev/policyfit/internal/model"
)

func TestFilter_Partition(t *testing.T) {
	records := []model.EligibilityRecord{
		{PolicyID: "P-open", IncomeRuleType: model.IncomeRuleNone},
		{PolicyID: "P-young", MinAge: intPtr(19), MaxAge: intPtr(34), IncomeRuleType: model.IncomeRuleNone},
	}
	res := NewFilter(0).Run(records, model.ApplicantProfile{Age: 40})

	if len(res.Passed) != 1 || res.Passed[0].PolicyID != "P-open" {
		t.Errorf("expected only P-open to pass, got %+v", res.Passed)
	}
	if len(res.Failed) != 1 || res.Failed[0].PolicyID != "P-young" {
		t.Errorf("expected P-young to fail, got %+v", res.Failed)
	}
}

func TestFilter_MemoizedRunsAgree(t *testing.T) {
	f := NewFilter(time.Minute)
	records := []model.EligibilityRecord{
		{PolicyID: "P1", MinAge: intPtr(19), IncomeRuleType: model.IncomeRuleNone},
	}
	p := model.ApplicantProfile{Age: 25}

	first := f.Run(records, p)
	second := f.Run(records, p)

	if len(first.Passed) != 1 || len(second.Passed) != 1 {
		t.Fatalf("expected both runs to pass, got %d and %d", len(first.Passed), len(second.Passed))
	}
	if len(first.Passed[0].Explanation.Passed) != len(second.Passed[0].Explanation.Passed) {
		t.Error("memoized run returned a different explanation")
	}
}

// Absent and zero-valued profile fields must not share a memo slot.
func TestFilter_NilAndZeroProfilesDistinct(t *testing.T) {
	f := NewFilter(time.Minute)
	records := []model.EligibilityRecord{
		{PolicyID: "P1", IncomeRuleType: model.IncomeRuleAmount, IncomeThreshold: int64Ptr(60_000_000)},
	}

	unknown := f.Run(records, model.ApplicantProfile{Age: 25})
	zero := f.Run(records, model.ApplicantProfile{Age: 25, AnnualIncome: int64Ptr(0)})

	if len(unknown.Failed) != 1 {
		t.Errorf("unknown income under an income cap must fail, got %+v", unknown)
	}
	if len(zero.Passed) != 1 {
		t.Errorf("zero income under an income cap must pass, got %+v", zero)
	}
}

func TestFilter_FlushKeepsWorking(t *testing.T) {
	f := NewFilter(time.Minute)
	records := []model.EligibilityRecord{{PolicyID: "P1", IncomeRuleType: model.IncomeRuleNone}}
	p := model.ApplicantProfile{Age: 30}

	before := f.Run(records, p)
	f.Flush()
	after := f.Run(records, p)

	if len(before.Passed) != 1 || len(after.Passed) != 1 {
		t.Errorf("flush must not change verdicts: before=%d after=%d", len(before.Passed), len(after.Passed))
	}
}
