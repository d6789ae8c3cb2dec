package contract

import (
	"regexp"

	"go.uber.org/zap"

	"github.com/seonghoon-dev/policyfit/internal/model"
)

// homeRE detects "no home ownership required" phrasing. The contract field
// is named is_homeowner_required, but the observed meaning across the
// dataset is that the policy demands the applicant own no home.
var homeRE = regexp.MustCompile(`무주택|주택\s*미소유|주택\s*소유\s*불가|자가\s*없`)

// Reducer folds the four per-domain extraction results into one
// EligibilityRecord. Age bounds merge by broadening (union of all
// mentions); monetary upper bounds merge by narrowing (tightest wins).
// The asymmetry matches the observed dataset behavior and is kept as is.
type Reducer struct {
	logger *zap.Logger
}

// NewReducer returns a reducer logging diagnostics to the given sink.
func NewReducer(logger *zap.Logger) *Reducer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Reducer{logger: logger}
}

// Reduce builds the eligibility record for one policy. sourceText is the
// combined normalized text the extractors ran over; it feeds only the
// homeowner keyword signal.
func (r *Reducer) Reduce(policyID, sourceText string, results map[model.Domain]model.ExtractionResult) model.EligibilityRecord {
	rec := model.EligibilityRecord{PolicyID: policyID}

	rec.MinAge, rec.MaxAge = ageBounds(results[model.DomainAge])
	rec.IncomeRuleType, rec.IncomeThreshold = r.incomeRule(policyID, results[model.DomainIncome])
	rec.AssetThreshold = tightest(results[model.DomainAssets], model.ConstraintMaxWon)
	rec.VehicleValueLimit = tightest(results[model.DomainVehicle], model.ConstraintValueMaxWon, model.ConstraintMaxWon)
	rec.IsHomeownerRequired = homeRE.MatchString(sourceText)

	return rec
}

// ageBounds takes the minimum over all lower bounds and the maximum over
// all upper bounds, range endpoints included. Tentative exact mentions are
// ignored.
func ageBounds(res model.ExtractionResult) (*int, *int) {
	var mn, mx *int
	for _, c := range res.Constraints {
		switch c.Type {
		case model.ConstraintRange:
			mn = keepMin(mn, c.Min)
			mx = keepMax(mx, c.Max)
		case model.ConstraintMin:
			mn = keepMin(mn, int(c.Value))
		case model.ConstraintMax:
			mx = keepMax(mx, int(c.Value))
		}
	}
	return mn, mx
}

// incomeRule applies the contract's priority order: median ratio wins
// outright, then the tightest annual cap, then the tightest monthly cap
// annualized. Lower-bound-only conditions are not representable and
// downgrade to NONE with a diagnostic.
func (r *Reducer) incomeRule(policyID string, res model.ExtractionResult) (model.IncomeRuleType, *int64) {
	hasType := func(types ...model.ConstraintType) bool {
		for _, c := range res.Constraints {
			for _, t := range types {
				if c.Type == t {
					return true
				}
			}
		}
		return false
	}

	if hasType(model.ConstraintMedianPercentMax, model.ConstraintMedianPercentMin) {
		return model.IncomeRuleMedianRatio, nil
	}
	if annual := tightest(res, model.ConstraintAnnualMaxWon); annual != nil {
		return model.IncomeRuleAmount, annual
	}
	if monthly := tightest(res, model.ConstraintMonthlyMaxWon); monthly != nil {
		annualized := *monthly * 12
		return model.IncomeRuleAmount, &annualized
	}
	if hasType(model.ConstraintAnnualMinWon, model.ConstraintMonthlyMinWon) {
		r.logger.Warn("income has only lower-bound constraints; contract represents upper bounds only, falling back to NONE",
			zap.String("policy_id", policyID))
		return model.IncomeRuleNone, nil
	}
	return model.IncomeRuleNone, nil
}

// tightest returns the minimum value among constraints of the given types.
func tightest(res model.ExtractionResult, types ...model.ConstraintType) *int64 {
	var best *int64
	for _, c := range res.Constraints {
		for _, t := range types {
			if c.Type != t {
				continue
			}
			v := c.Value
			if best == nil || v < *best {
				best = &v
			}
		}
	}
	return best
}

func keepMin(cur *int, v int) *int {
	if cur == nil || v < *cur {
		return &v
	}
	return cur
}

func keepMax(cur *int, v int) *int {
	if cur == nil || v > *cur {
		return &v
	}
	return cur
}
