package model

import "strings"

// IncomeRuleType classifies how a policy bounds applicant income.
type IncomeRuleType string

const (
	IncomeRuleNone        IncomeRuleType = "NONE"
	IncomeRuleAmount      IncomeRuleType = "AMOUNT"
	IncomeRuleMedianRatio IncomeRuleType = "MEDIAN_RATIO"
)

// NormalizeIncomeRuleType trims and upper-cases a raw rule type value,
// defaulting to NONE when empty.
func NormalizeIncomeRuleType(s string) IncomeRuleType {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "" {
		return IncomeRuleNone
	}
	return IncomeRuleType(s)
}

// Valid reports whether the rule type is one of the contract's enum values.
func (t IncomeRuleType) Valid() bool {
	switch t {
	case IncomeRuleNone, IncomeRuleAmount, IncomeRuleMedianRatio:
		return true
	}
	return false
}

// EligibilityRecord is the fixed downstream schema one policy reduces to.
// Monetary fields are integer won; IncomeThreshold is annual and present
// exactly when IncomeRuleType is AMOUNT.
type EligibilityRecord struct {
	PolicyID            string         `json:"policy_id"`
	MinAge              *int           `json:"min_age"`
	MaxAge              *int           `json:"max_age"`
	IncomeRuleType      IncomeRuleType `json:"income_rule_type"`
	IncomeThreshold     *int64         `json:"income_threshold"`
	AssetThreshold      *int64         `json:"asset_threshold"`
	IsHomeownerRequired bool           `json:"is_homeowner_required"`
	VehicleValueLimit   *int64         `json:"vehicle_value_limit"`
}

// ApplicantProfile carries one applicant's data for an evaluation call.
// Nil fields mean the applicant did not supply that value.
type ApplicantProfile struct {
	Age          int    `json:"age"`
	AnnualIncome *int64 `json:"annual_income,omitempty"` // won
	Assets       *int64 `json:"assets,omitempty"`        // won
	IsHomeless   *bool  `json:"is_homeless,omitempty"`
	VehicleValue *int64 `json:"vehicle_value,omitempty"` // won
}

// Explanation is the categorized breakdown of one evaluation.
type Explanation struct {
	Passed  []string `json:"passed"`
	Failed  []string `json:"failed"`
	Skipped []string `json:"skipped"`
}
