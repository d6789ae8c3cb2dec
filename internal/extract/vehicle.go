package extract

import (
	"regexp"

	"github.com/seonghoon-dev/policyfit/internal/model"
	"github.com/seonghoon-dev/policyfit/internal/text"
)

// VehicleExtractor recognizes vehicle conditions: non-ownership phrases and
// vehicle value caps.
type VehicleExtractor struct {
	notOwnRE *regexp.Regexp
	valueRE  *regexp.Regexp
}

// NewVehicleExtractor compiles the vehicle phrase patterns.
func NewVehicleExtractor() *VehicleExtractor {
	return &VehicleExtractor{
		// 차량 미보유 / 자동차 무소유
		notOwnRE: regexp.MustCompile(`(차량|자동차)\s*(미보유|무소유)`),
		// 차량가액 3,557만원 이하 / 자동차 가액 4000만원 미만
		valueRE: regexp.MustCompile(`(차량\s*가액|자동차\s*가액)\s*([0-9][0-9, ]*(?:억|만|원)?\s*원?)\s*(이하|미만)`),
	}
}

func (e *VehicleExtractor) Domain() model.Domain { return model.DomainVehicle }

// Extract scans for vehicle constraints.
func (e *VehicleExtractor) Extract(t string) model.ExtractionResult {
	out := model.NewExtractionResult(model.DomainVehicle)
	if t == "" {
		return out
	}

	for _, m := range e.notOwnRE.FindAllStringSubmatch(t, -1) {
		out.Constraints = append(out.Constraints, model.Constraint{
			Type: model.ConstraintMustNotOwn,
		})
		out.Evidence = append(out.Evidence, m[0])
	}

	for _, m := range e.valueRE.FindAllStringSubmatch(t, -1) {
		won, ok := text.ParseWon(m[2])
		if !ok {
			continue
		}
		out.Constraints = append(out.Constraints, model.Constraint{
			Type:  model.ConstraintValueMaxWon,
			Value: won,
			Op:    model.OpMax,
		})
		out.Evidence = append(out.Evidence, m[0])
	}

	return out
}
