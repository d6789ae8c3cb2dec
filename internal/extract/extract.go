// Package extract implements the four domain scanners that turn normalized
// policy text into per-domain constraint sets. Matching is pattern-based
// over explicit phrase templates; no semantic inference is attempted, and
// genuinely compound phrasing degrades to advisory notes.
package extract

import "github.com/seonghoon-dev/policyfit/internal/model"

// Extractor scans normalized policy text for one constraint domain.
// Extract is a pure function of its input.
type Extractor interface {
	Domain() model.Domain
	Extract(text string) model.ExtractionResult
}

// All returns the four domain extractors.
func All() []Extractor {
	return []Extractor{
		NewAgeExtractor(),
		NewIncomeExtractor(),
		NewAssetsExtractor(),
		NewVehicleExtractor(),
	}
}

// span is a matched [start, end) byte range.
type span struct{ start, end int }

func (a span) overlaps(b span) bool {
	return a.start < b.end && b.start < a.end
}

func overlapsAny(s span, used []span) bool {
	for _, u := range used {
		if s.overlaps(u) {
			return true
		}
	}
	return false
}
