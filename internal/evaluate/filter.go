package evaluate

import (
	"fmt"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/seonghoon-dev/policyfit/internal/model"
)

// Match pairs a policy with its evaluation explanation.
type Match struct {
	PolicyID    string            `json:"policy_id"`
	Explanation model.Explanation `json:"explain"`
}

// FilterResult is the dataset-wide outcome for one applicant profile.
type FilterResult struct {
	Profile model.ApplicantProfile `json:"profile"`
	Passed  []Match                `json:"passed"`
	Failed  []Match                `json:"failed"`
}

// Filter evaluates a whole eligibility dataset against applicant profiles.
// Verdicts are memoized per (policy, profile) pair; records are immutable
// within a published generation, so the memo is flushed only when a new
// snapshot is published.
type Filter struct {
	memo *gocache.Cache // nil when caching is disabled
}

type memoEntry struct {
	eligible    bool
	explanation model.Explanation
}

// NewFilter returns a filter with an evaluation memo cache of the given
// TTL. A non-positive TTL disables caching.
func NewFilter(ttl time.Duration) *Filter {
	if ttl <= 0 {
		return &Filter{}
	}
	return &Filter{memo: gocache.New(ttl, 2*ttl)}
}

// Run evaluates every record against the profile, partitioning policies
// into passed and failed.
func (f *Filter) Run(records []model.EligibilityRecord, p model.ApplicantProfile) FilterResult {
	out := FilterResult{Profile: p}
	pk := profileKey(p)

	for _, rec := range records {
		eligible, explanation := f.check(rec, pk, p)
		m := Match{PolicyID: rec.PolicyID, Explanation: explanation}
		if eligible {
			out.Passed = append(out.Passed, m)
		} else {
			out.Failed = append(out.Failed, m)
		}
	}
	return out
}

func (f *Filter) check(rec model.EligibilityRecord, pk string, p model.ApplicantProfile) (bool, model.Explanation) {
	if f.memo == nil {
		return Check(rec, p)
	}
	key := rec.PolicyID + "|" + pk
	if v, ok := f.memo.Get(key); ok {
		entry := v.(memoEntry)
		return entry.eligible, entry.explanation
	}
	eligible, explanation := Check(rec, p)
	f.memo.Set(key, memoEntry{eligible, explanation}, gocache.DefaultExpiration)
	return eligible, explanation
}

// Flush drops all memoized verdicts. Called when a new dataset snapshot is
// published.
func (f *Filter) Flush() {
	if f.memo != nil {
		f.memo.Flush()
	}
}

// profileKey fingerprints the five profile fields; nil renders as "-" so
// absent and zero values stay distinct.
func profileKey(p model.ApplicantProfile) string {
	opt := func(v *int64) string {
		if v == nil {
			return "-"
		}
		return fmt.Sprintf("%d", *v)
	}
	home := "-"
	if p.IsHomeless != nil {
		home = fmt.Sprintf("%t", *p.IsHomeless)
	}
	return fmt.Sprintf("%d|%s|%s|%s|%s", p.Age, opt(p.AnnualIncome), opt(p.Assets), home, opt(p.VehicleValue))
}
