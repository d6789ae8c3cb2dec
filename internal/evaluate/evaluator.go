// Package evaluate compares normalized eligibility records against
// applicant profiles, producing a boolean verdict with a categorized,
// human-readable explanation.
package evaluate

import (
	"fmt"

	"github.com/seonghoon-dev/policyfit/internal/model"
	"github.com/seonghoon-dev/policyfit/internal/text"
)

// Check evaluates one eligibility record against one applicant profile.
// Five criteria are evaluated independently; each contributes to at most
// one of passed/failed/skipped. Missing applicant data under an active
// constraint always fails - unknown is treated as ineligible, never
// skipped. Skipped entries never block eligibility.
func Check(rec model.EligibilityRecord, p model.ApplicantProfile) (bool, model.Explanation) {
	var ex model.Explanation

	checkAge(rec, p, &ex)
	checkHomeowner(rec, p, &ex)
	checkIncome(rec, p, &ex)
	checkCap(p.Assets, rec.AssetThreshold, "자산", "자산", &ex)
	checkCap(p.VehicleValue, rec.VehicleValueLimit, "차량가액", "차량", &ex)

	return len(ex.Failed) == 0, ex
}

func checkAge(rec model.EligibilityRecord, p model.ApplicantProfile, ex *model.Explanation) {
	if rec.MinAge == nil && rec.MaxAge == nil {
		ex.Skipped = append(ex.Skipped, "나이 조건 없음")
		return
	}

	failed := false
	if rec.MinAge != nil && p.Age < *rec.MinAge {
		ex.Failed = append(ex.Failed, fmt.Sprintf("나이 미충족: %d < 최소 %d", p.Age, *rec.MinAge))
		failed = true
	}
	if rec.MaxAge != nil && p.Age > *rec.MaxAge {
		ex.Failed = append(ex.Failed, fmt.Sprintf("나이 미충족: %d > 최대 %d", p.Age, *rec.MaxAge))
		failed = true
	}
	if failed {
		return
	}

	switch {
	case rec.MinAge != nil && rec.MaxAge != nil:
		ex.Passed = append(ex.Passed, fmt.Sprintf("나이 충족: %d~%d", *rec.MinAge, *rec.MaxAge))
	case rec.MinAge != nil:
		ex.Passed = append(ex.Passed, fmt.Sprintf("나이 충족: %d 이상", *rec.MinAge))
	default:
		ex.Passed = append(ex.Passed, fmt.Sprintf("나이 충족: %d 이하", *rec.MaxAge))
	}
}

func checkHomeowner(rec model.EligibilityRecord, p model.ApplicantProfile, ex *model.Explanation) {
	if !rec.IsHomeownerRequired {
		ex.Skipped = append(ex.Skipped, "무주택 조건 없음")
		return
	}
	switch {
	case p.IsHomeless == nil:
		ex.Failed = append(ex.Failed, "무주택 여부 정보 없음(정책은 무주택 필수)")
	case !*p.IsHomeless:
		ex.Failed = append(ex.Failed, "무주택 조건 미충족(정책은 무주택 필수)")
	default:
		ex.Passed = append(ex.Passed, "무주택 조건 충족")
	}
}

func checkIncome(rec model.EligibilityRecord, p model.ApplicantProfile, ex *model.Explanation) {
	rule := model.NormalizeIncomeRuleType(string(rec.IncomeRuleType))
	switch rule {
	case model.IncomeRuleNone:
		ex.Skipped = append(ex.Skipped, "소득 조건 없음")
	case model.IncomeRuleMedianRatio:
		// annual_income alone cannot be compared against a median percentile
		ex.Skipped = append(ex.Skipped, "중위소득(%) 조건: 비교 불가 → 보류")
	case model.IncomeRuleAmount:
		if rec.IncomeThreshold == nil {
			ex.Skipped = append(ex.Skipped, "소득 AMOUNT 타입이나 threshold 없음(데이터 확인 필요)")
			return
		}
		switch {
		case p.AnnualIncome == nil:
			ex.Failed = append(ex.Failed, "연소득 정보 없음(정책은 소득 상한 존재)")
		case *p.AnnualIncome > *rec.IncomeThreshold:
			ex.Failed = append(ex.Failed, fmt.Sprintf("소득 미충족: %s원 > 기준 %s원",
				text.FormatWon(*p.AnnualIncome), text.FormatWon(*rec.IncomeThreshold)))
		default:
			ex.Passed = append(ex.Passed, fmt.Sprintf("소득 충족: %s원 ≤ %s원",
				text.FormatWon(*p.AnnualIncome), text.FormatWon(*rec.IncomeThreshold)))
		}
	default:
		ex.Skipped = append(ex.Skipped, fmt.Sprintf("소득 조건 타입 미인식(%s) → 보류", rule))
	}
}

// checkCap handles the assets and vehicle-value criteria, which share the
// same upper-bound shape. capNoun names what the policy caps in the
// missing-data message; for vehicles that is 차량, not 차량가액.
func checkCap(value, threshold *int64, label, capNoun string, ex *model.Explanation) {
	if threshold == nil {
		ex.Skipped = append(ex.Skipped, label+" 조건 없음")
		return
	}
	switch {
	case value == nil:
		ex.Failed = append(ex.Failed, fmt.Sprintf("%s 정보 없음(정책은 %s 상한 존재)", label, capNoun))
	case *value > *threshold:
		ex.Failed = append(ex.Failed, fmt.Sprintf("%s 미충족: %s원 > 기준 %s원",
			label, text.FormatWon(*value), text.FormatWon(*threshold)))
	default:
		ex.Passed = append(ex.Passed, fmt.Sprintf("%s 충족: %s원 ≤ %s원",
			label, text.FormatWon(*value), text.FormatWon(*threshold)))
	}
}
