package model

import "testing"

func TestNormalizeIncomeRuleType(t *testing.T) {
	tests := []struct {
		input string
		want  IncomeRuleType
	}{
		{"", IncomeRuleNone},
		{"  ", IncomeRuleNone},
		{"NONE", IncomeRuleNone},
		{"amount", IncomeRuleAmount},
		{" Amount ", IncomeRuleAmount},
		{"median_ratio", IncomeRuleMedianRatio},
		{"MEDIAN_RATIO", IncomeRuleMedianRatio},
		{"PERCENT", IncomeRuleType("PERCENT")},
	}
	for _, tt := range tests {
		if got := NormalizeIncomeRuleType(tt.input); got != tt.want {
			t.Errorf("NormalizeIncomeRuleType(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestIncomeRuleTypeValid(t *testing.T) {
	for _, rule := range []IncomeRuleType{IncomeRuleNone, IncomeRuleAmount, IncomeRuleMedianRatio} {
		if !rule.Valid() {
			t.Errorf("%q should be valid", rule)
		}
	}
	if IncomeRuleType("PERCENT").Valid() {
		t.Error("unknown rule type should be invalid")
	}
}
