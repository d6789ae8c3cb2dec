package contract

import (
	"strings"

	"github.com/seonghoon-dev/policyfit/internal/model"
)

// ValidateInput enforces the input table contract: every row has a
// non-empty policy_id, policy_id values are unique across the table, and
// every row carries non-empty eligibility text. Fails fast on the first
// violation.
func ValidateInput(rows []model.PolicyRow) error {
	seen := make(map[string]struct{}, len(rows))
	for i, row := range rows {
		pid := strings.TrimSpace(row.PolicyID)
		if pid == "" {
			return SchemaErrorf("row %d: policy_id is empty", i)
		}
		if _, dup := seen[pid]; dup {
			return SchemaErrorf("duplicated policy_id %q", pid)
		}
		seen[pid] = struct{}{}

		if strings.TrimSpace(row.Eligibility) == "" {
			return SchemaErrorf("row %d (policy_id=%s): eligibility text is empty", i, pid)
		}
	}
	return nil
}

// ValidateRecords enforces the output contract on the reduced records:
// income_rule_type must normalize to one of the enum values, the threshold
// must be present exactly when the rule type is AMOUNT, and monetary fields
// must be non-negative.
func ValidateRecords(records []model.EligibilityRecord) error {
	for _, rec := range records {
		rule := model.NormalizeIncomeRuleType(string(rec.IncomeRuleType))
		if !rule.Valid() {
			return SchemaErrorf("policy_id=%s: invalid income_rule_type %q", rec.PolicyID, rec.IncomeRuleType)
		}
		if (rule == model.IncomeRuleAmount) != (rec.IncomeThreshold != nil) {
			return SchemaErrorf("policy_id=%s: income_threshold must be present iff income_rule_type=AMOUNT", rec.PolicyID)
		}
		for _, v := range []*int64{rec.IncomeThreshold, rec.AssetThreshold, rec.VehicleValueLimit} {
			if v != nil && *v < 0 {
				return SchemaErrorf("policy_id=%s: negative monetary threshold", rec.PolicyID)
			}
		}
	}
	return nil
}
