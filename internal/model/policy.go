package model

import "time"

// PolicyRow is one row of the raw input table. PolicyID, PolicyName and
// Eligibility are required; the rest is consumed opportunistically.
type PolicyRow struct {
	PolicyID       string `json:"policy_id"`
	PolicyName     string `json:"policy_name"`
	Eligibility    string `json:"eligibility"`
	Benefit        string `json:"benefit,omitempty"`
	ApplyProcess   string `json:"apply_process,omitempty"`
	ApplyPeriod    string `json:"apply_period,omitempty"`
	RawText        string `json:"raw_text,omitempty"`
	Region         string `json:"region,omitempty"`
	Summary        string `json:"summary,omitempty"`
	TargetGroup    string `json:"target_group,omitempty"`
	SupportSummary string `json:"support_summary,omitempty"`
	SupportDetail  string `json:"support_detail,omitempty"`
}

// PolicyDoc is one row of the policies output table.
type PolicyDoc struct {
	PolicyID       string    `json:"policy_id"`
	PolicyName     string    `json:"policy_name"`
	SupportSummary string    `json:"support_summary"`
	SupportDetail  string    `json:"support_detail"`
	Region         *string   `json:"region"`
	CleanText      string    `json:"clean_text"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// ProcessedPolicy is the per-row output of the extraction pipeline: both
// output table rows plus any extraction notes, tagged with the row's
// position in the input table.
type ProcessedPolicy struct {
	Index  int
	Doc    PolicyDoc
	Record EligibilityRecord
	Notes  []string
}
