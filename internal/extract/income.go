package extract

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/seonghoon-dev/policyfit/internal/model"
	"github.com/seonghoon-dev/policyfit/internal/text"
)

// IncomeExtractor recognizes income conditions in priority order:
// median-income percentages, other reference-income percentages, absolute
// annual/monthly amounts, deciles, and - as a note only - per-household-
// member tiered percentages.
type IncomeExtractor struct {
	medianRE  *regexp.Regexp
	percentRE *regexp.Regexp
	amountRE  *regexp.Regexp
	decileRE  *regexp.Regexp
	tieredRE  *regexp.Regexp
}

// NewIncomeExtractor compiles the income phrase patterns.
func NewIncomeExtractor() *IncomeExtractor {
	return &IncomeExtractor{
		// 기준 중위소득 150% 이하 / 중위 소득 120% 이내
		medianRE: regexp.MustCompile(`(?:기준\s*)?중위\s*소득\s*(\d{1,3})\s*%\s*(이하|미만|이내|이상|초과)`),
		// 도시근로자 월평균소득 120% 이하 / 평균소득 80% 이하 / 소득 70% 이내
		percentRE: regexp.MustCompile(`(?:도시근로자\s*월평균\s*)?(?:평균\s*)?(?:기준\s*)?소득\s*(\d{1,3})\s*%\s*(이하|미만|이내|이상|초과)`),
		// 연소득 6,000만원 이하 / 월소득 300만원 미만 / 연 소득 50000000원 이하
		amountRE: regexp.MustCompile(`(연\s*소득|월\s*소득)\s*([0-9][0-9,]*)\s*(만원|원)\s*(이하|미만|이내|이상|초과)`),
		// 5분위 / 소득 3 분위
		decileRE: regexp.MustCompile(`(\d{1,2})\s*분위`),
		// 1인 120%, 2인 110% ... tiered by household size
		tieredRE: regexp.MustCompile(`\d+인\s*\d{1,3}\s*%`),
	}
}

func (e *IncomeExtractor) Domain() model.Domain { return model.DomainIncome }

// Extract scans for income constraints. Each appended constraint is
// deduplicated on its (type, value, op) triple.
func (e *IncomeExtractor) Extract(t string) model.ExtractionResult {
	out := model.NewExtractionResult(model.DomainIncome)
	if t == "" {
		return out
	}

	type key struct {
		typ model.ConstraintType
		val int64
		op  model.Op
	}
	seen := make(map[key]struct{})
	add := func(typ model.ConstraintType, value int64, op model.Op, evidence string) {
		k := key{typ, value, op}
		if _, dup := seen[k]; dup {
			return
		}
		seen[k] = struct{}{}
		out.Constraints = append(out.Constraints, model.Constraint{Type: typ, Value: value, Op: op})
		out.Evidence = append(out.Evidence, evidence)
	}

	// 1) median income percentage: the clearest signal, handled first
	for _, m := range e.medianRE.FindAllStringSubmatch(t, -1) {
		p, ok := text.ParseInt(m[1])
		if !ok {
			continue
		}
		switch opToBound(m[2]) {
		case model.OpMax:
			add(model.ConstraintMedianPercentMax, int64(p), model.OpMax, m[0])
		case model.OpMin:
			add(model.ConstraintMedianPercentMin, int64(p), model.OpMin, m[0])
		}
	}

	// 2) non-median reference-income percentage. The pattern also matches
	// the 소득 tail of a 중위소득 phrase, so any match directly preceded by
	// 중위 is excluded.
	for _, idx := range e.percentRE.FindAllStringSubmatchIndex(t, -1) {
		if precededByMedian(t, idx[0]) {
			continue
		}
		p, ok := text.ParseInt(t[idx[2]:idx[3]])
		if !ok {
			continue
		}
		switch opToBound(t[idx[4]:idx[5]]) {
		case model.OpMax:
			add(model.ConstraintPercentMax, int64(p), model.OpMax, t[idx[0]:idx[1]])
		case model.OpMin:
			add(model.ConstraintPercentMin, int64(p), model.OpMin, t[idx[0]:idx[1]])
		}
	}

	// 3) absolute annual/monthly amounts
	for _, m := range e.amountRE.FindAllStringSubmatch(t, -1) {
		won, ok := text.ParseWon(m[2] + m[3])
		if !ok {
			continue
		}
		annual := strings.Contains(strings.ReplaceAll(m[1], " ", ""), "연")
		switch opToBound(m[4]) {
		case model.OpMax:
			if annual {
				add(model.ConstraintAnnualMaxWon, won, model.OpMax, m[0])
			} else {
				add(model.ConstraintMonthlyMaxWon, won, model.OpMax, m[0])
			}
		case model.OpMin:
			if annual {
				add(model.ConstraintAnnualMinWon, won, model.OpMin, m[0])
			} else {
				add(model.ConstraintMonthlyMinWon, won, model.OpMin, m[0])
			}
		}
	}

	// 4) income deciles: kept only inside the expected 1-10 range, noted
	// otherwise
	for _, m := range e.decileRE.FindAllStringSubmatch(t, -1) {
		v, ok := text.ParseInt(m[1])
		if !ok {
			continue
		}
		if v >= 1 && v <= 10 {
			add(model.ConstraintDecile, int64(v), "", m[0])
		} else {
			out.Notes = append(out.Notes, fmt.Sprintf("분위 값 범위가 비정상일 수 있음: %s", m[0]))
			out.Evidence = append(out.Evidence, m[0])
		}
	}

	// 5) tiered household percentages are too compound for this schema
	if e.tieredRE.MatchString(t) {
		out.Notes = append(out.Notes, "가구원수별 소득% 조건이 포함되어 있을 수 있음(추후 확장 필요)")
	}

	return out
}

// opToBound maps a Korean comparison word onto a bound direction.
func opToBound(op string) model.Op {
	switch strings.TrimSpace(op) {
	case "이하", "미만", "이내":
		return model.OpMax
	case "이상", "초과":
		return model.OpMin
	}
	return ""
}

// precededByMedian reports whether the text just before offset contains
// 중위, meaning the percentage match is the tail of a median-income phrase.
func precededByMedian(t string, offset int) bool {
	start := offset - 12
	if start < 0 {
		start = 0
	}
	// Snap to a rune boundary.
	for start < offset && !isRuneStart(t[start]) {
		start++
	}
	return strings.Contains(t[start:offset], "중위")
}

func isRuneStart(b byte) bool { return b&0xC0 != 0x80 }
