package extract

import (
	"regexp"
	"strings"

	"github.com/seonghoon-dev/policyfit/internal/model"
	"github.com/seonghoon-dev/policyfit/internal/text"
)

// AssetsExtractor recognizes asset caps: 총자산/순자산/재산 followed by an
// amount and an upper-bound word.
type AssetsExtractor struct {
	capRE *regexp.Regexp
}

// NewAssetsExtractor compiles the asset phrase pattern.
func NewAssetsExtractor() *AssetsExtractor {
	return &AssetsExtractor{
		// 총자산 3억원 이하 / 재산 2억 이하 / 순자산 5000만원 미만
		capRE: regexp.MustCompile(`(총\s*자산|순\s*자산|재산)\s*([0-9][0-9, ]*(?:억|만|원)?\s*원?)\s*(이하|미만)`),
	}
}

func (e *AssetsExtractor) Domain() model.Domain { return model.DomainAssets }

// Extract scans for asset upper bounds. Unparseable amounts drop the
// candidate as though no match occurred.
func (e *AssetsExtractor) Extract(t string) model.ExtractionResult {
	out := model.NewExtractionResult(model.DomainAssets)
	if t == "" {
		return out
	}

	for _, m := range e.capRE.FindAllStringSubmatch(t, -1) {
		won, ok := text.ParseWon(m[2])
		if !ok {
			continue
		}
		out.Constraints = append(out.Constraints, model.Constraint{
			Type:  model.ConstraintMaxWon,
			Value: won,
			Op:    model.OpMax,
			Field: strings.ReplaceAll(m[1], " ", ""),
		})
		out.Evidence = append(out.Evidence, m[0])
	}

	return out
}
