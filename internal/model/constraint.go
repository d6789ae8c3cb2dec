package model

// Domain identifies which extractor produced an extraction result.
type Domain string

const (
	DomainAge     Domain = "age"
	DomainIncome  Domain = "income"
	DomainAssets  Domain = "assets"
	DomainVehicle Domain = "vehicle"
)

// ConstraintType tags a single extracted constraint.
type ConstraintType string

const (
	// Age constraints.
	ConstraintMin   ConstraintType = "min"
	ConstraintMax   ConstraintType = "max"
	ConstraintRange ConstraintType = "range"
	ConstraintExact ConstraintType = "exact"

	// Income constraints.
	ConstraintMedianPercentMax ConstraintType = "median_percent_max"
	ConstraintMedianPercentMin ConstraintType = "median_percent_min"
	ConstraintPercentMax       ConstraintType = "percent_max"
	ConstraintPercentMin       ConstraintType = "percent_min"
	ConstraintAnnualMaxWon     ConstraintType = "annual_max_won"
	ConstraintAnnualMinWon     ConstraintType = "annual_min_won"
	ConstraintMonthlyMaxWon    ConstraintType = "monthly_max_won"
	ConstraintMonthlyMinWon    ConstraintType = "monthly_min_won"
	ConstraintDecile           ConstraintType = "decile"

	// Asset constraints.
	ConstraintMaxWon ConstraintType = "max_won"

	// Vehicle constraints.
	ConstraintMustNotOwn  ConstraintType = "must_not_own"
	ConstraintValueMaxWon ConstraintType = "value_max_won"
)

// Op records the comparison direction of a matched phrase.
type Op string

const (
	OpMax Op = "max" // 이하, 미만, 이내
	OpMin Op = "min" // 이상, 초과
)

// Constraint is a tagged variant describing one extracted condition.
// Only the fields relevant to its Type are populated; a Constraint is
// immutable once produced.
type Constraint struct {
	Type  ConstraintType `json:"type"`
	Value int64          `json:"value,omitempty"` // won, percent, decile or age depending on Type
	Min   int            `json:"min,omitempty"`   // range lower bound
	Max   int            `json:"max,omitempty"`   // range upper bound
	Op    Op             `json:"op,omitempty"`
	Field string         `json:"field,omitempty"` // asset label (총자산/순자산/재산)
}

// ExtractionResult holds everything one domain extractor found in one
// policy text. Consumed only by the contract reducer.
type ExtractionResult struct {
	Domain      Domain       `json:"domain"`
	Constraints []Constraint `json:"constraints"`
	Notes       []string     `json:"notes"`
	Evidence    []string     `json:"evidence"`
}

// NewExtractionResult returns an empty result for the given domain.
func NewExtractionResult(d Domain) ExtractionResult {
	return ExtractionResult{Domain: d}
}
