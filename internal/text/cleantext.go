package text

import (
	"strings"

	"github.com/seonghoon-dev/policyfit/internal/model"
)

// Provider composes the clean_text column from a policy row. Providers are
// ranked: the composer tries each in order and keeps the first non-empty
// result.
type Provider interface {
	Name() string
	Build(row model.PolicyRow) string
}

// Composer builds clean_text through a ranked provider list.
type Composer struct {
	providers []Provider
}

// NewComposer returns the default composer: the sectioned provider first,
// the minimal provider as fallback.
func NewComposer(maxChars, rawExcerptChars int) *Composer {
	return &Composer{providers: []Provider{
		&sectionedProvider{maxChars: maxChars, rawExcerptChars: rawExcerptChars},
		&minimalProvider{maxChars: maxChars},
	}}
}

// Build returns the first provider's non-empty composition.
func (c *Composer) Build(row model.PolicyRow) string {
	for _, p := range c.providers {
		if out := p.Build(row); out != "" {
			return out
		}
	}
	return ""
}

// sectionedProvider assembles a meta header plus bracketed sections for
// search and embedding use.
type sectionedProvider struct {
	maxChars        int
	rawExcerptChars int
}

func (p *sectionedProvider) Name() string { return "sectioned" }

func (p *sectionedProvider) Build(row model.PolicyRow) string {
	var parts []string

	var header []string
	if name := CleanField(row.PolicyName); name != "" {
		header = append(header, name)
	}
	if target := CleanField(row.TargetGroup); target != "" {
		header = append(header, "대상: "+target)
	}
	if summary := firstNonEmpty(row.Summary, row.SupportSummary); summary != "" {
		header = append(header, "요약: "+summary)
	}
	if len(header) > 0 {
		parts = append(parts, "[메타]\n"+strings.Join(header, "\n"))
	}

	addSection(&parts, "지원대상", row.Eligibility)
	addSection(&parts, "지원내용", row.Benefit)
	addSection(&parts, "신청방법", row.ApplyProcess)
	addSection(&parts, "신청기간", row.ApplyPeriod)

	if raw := CleanField(row.RawText); raw != "" {
		addSection(&parts, "원문 일부", Truncate(raw, p.rawExcerptChars))
	}

	return Truncate(strings.Join(parts, "\n\n"), p.maxChars)
}

// minimalProvider concatenates the core fields with no meta header. Used
// when the sectioned provider produces nothing.
type minimalProvider struct {
	maxChars int
}

func (p *minimalProvider) Name() string { return "minimal" }

func (p *minimalProvider) Build(row model.PolicyRow) string {
	var parts []string
	addSection(&parts, "policy_name", row.PolicyName)
	addSection(&parts, "support_summary", row.SupportSummary)
	addSection(&parts, "eligibility", row.Eligibility)
	addSection(&parts, "support_detail", row.SupportDetail)
	if raw := CleanField(row.RawText); raw != "" {
		addSection(&parts, "raw", Truncate(raw, 2000))
	}
	return Truncate(strings.Join(parts, "\n\n"), p.maxChars)
}

func addSection(parts *[]string, title, body string) {
	body = CleanField(body)
	if body == "" {
		return
	}
	*parts = append(*parts, "["+title+"]\n"+body)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if cleaned := CleanField(v); cleaned != "" {
			return cleaned
		}
	}
	return ""
}

// SupportSummary resolves the policies.support_summary column:
// support_summary, then summary, then a short synthesis from eligibility
// and benefit.
func SupportSummary(row model.PolicyRow) string {
	if v := CleanField(row.SupportSummary); v != "" {
		return v
	}
	if v := CleanField(row.Summary); v != "" {
		return v
	}
	var bits []string
	if elig := CleanField(row.Eligibility); elig != "" {
		bits = append(bits, Truncate(elig, 80))
	}
	if ben := CleanField(row.Benefit); ben != "" {
		bits = append(bits, Truncate(ben, 80))
	}
	return Truncate(strings.Join(bits, " / "), 200)
}

// SupportDetail resolves the policies.support_detail column:
// support_detail, then raw_text, then a bracketed synthesis of the
// structured fields.
func SupportDetail(row model.PolicyRow) string {
	if v := CleanField(row.SupportDetail); v != "" {
		return v
	}
	if v := CleanField(row.RawText); v != "" {
		return v
	}
	var parts []string
	addSection(&parts, "eligibility", row.Eligibility)
	addSection(&parts, "benefit", row.Benefit)
	addSection(&parts, "apply_process", row.ApplyProcess)
	addSection(&parts, "apply_period", row.ApplyPeriod)
	return strings.Join(parts, "\n\n")
}
