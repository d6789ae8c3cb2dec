package extract

import (
	"regexp"

	"github.com/seonghoon-dev/policyfit/internal/model"
	"github.com/seonghoon-dev/policyfit/internal/text"
)

// AgeExtractor recognizes age bounds: ranges first, then open 이상/이하
// bounds, then - only when nothing else matched - a lone "N세" mention kept
// as a tentative exact value.
type AgeExtractor struct {
	rangeRE *regexp.Regexp
	minRE   *regexp.Regexp
	maxRE   *regexp.Regexp
	bareRE  *regexp.Regexp
}

// NewAgeExtractor compiles the age phrase patterns.
func NewAgeExtractor() *AgeExtractor {
	return &AgeExtractor{
		// 만 19세 ~ 34세 / 19세~34세 / 19-34세
		rangeRE: regexp.MustCompile(`(만\s*)?(\d{1,2})\s*세?\s*(?:~|-|–|—)\s*(만\s*)?(\d{1,2})\s*세`),
		// 만 19세 이상 / 19세 이상
		minRE: regexp.MustCompile(`(만\s*)?(\d{1,2})\s*세\s*이상`),
		// 만 34세 이하 / 34세 이하
		maxRE: regexp.MustCompile(`(만\s*)?(\d{1,2})\s*세\s*이하`),
		// bare N세, not followed by another word character
		bareRE: regexp.MustCompile(`((만\s*)?(\d{1,2})\s*세)(?:[^\p{L}\p{N}_]|$)`),
	}
}

func (e *AgeExtractor) Domain() model.Domain { return model.DomainAge }

// Extract scans for age constraints. Range matches mark their spans used so
// that the open-bound patterns do not double-count them.
func (e *AgeExtractor) Extract(t string) model.ExtractionResult {
	out := model.NewExtractionResult(model.DomainAge)
	if t == "" {
		return out
	}

	var used []span
	for _, idx := range e.rangeRE.FindAllStringSubmatchIndex(t, -1) {
		a, aok := text.ParseInt(t[idx[4]:idx[5]])
		b, bok := text.ParseInt(t[idx[8]:idx[9]])
		if !aok || !bok {
			continue
		}
		if b < a {
			a, b = b, a
		}
		out.Constraints = append(out.Constraints, model.Constraint{
			Type: model.ConstraintRange,
			Min:  a,
			Max:  b,
		})
		out.Evidence = append(out.Evidence, t[idx[0]:idx[1]])
		used = append(used, span{idx[0], idx[1]})
	}

	for _, bound := range []struct {
		re  *regexp.Regexp
		typ model.ConstraintType
	}{
		{e.minRE, model.ConstraintMin},
		{e.maxRE, model.ConstraintMax},
	} {
		for _, idx := range bound.re.FindAllStringSubmatchIndex(t, -1) {
			if overlapsAny(span{idx[0], idx[1]}, used) {
				continue
			}
			v, ok := text.ParseInt(t[idx[4]:idx[5]])
			if !ok {
				continue
			}
			out.Constraints = append(out.Constraints, model.Constraint{
				Type:  bound.typ,
				Value: int64(v),
			})
			out.Evidence = append(out.Evidence, t[idx[0]:idx[1]])
		}
	}

	// A bare mention is only worth keeping when no real bound was found,
	// and only the first one.
	if len(out.Constraints) == 0 {
		for _, idx := range e.bareRE.FindAllStringSubmatchIndex(t, -1) {
			v, ok := text.ParseInt(t[idx[6]:idx[7]])
			if !ok {
				continue
			}
			out.Constraints = append(out.Constraints, model.Constraint{
				Type:  model.ConstraintExact,
				Value: int64(v),
			})
			out.Notes = append(out.Notes, "단독 'N세' 표현은 문맥상 정확조건이 아닐 수 있음")
			out.Evidence = append(out.Evidence, t[idx[2]:idx[3]])
			break
		}
	}

	return out
}
