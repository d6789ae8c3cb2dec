// Package pipeline orchestrates the text-to-constraint extraction run:
// raw policy rows in, the two output tables out.
package pipeline

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/seonghoon-dev/policyfit/internal/contract"
	"github.com/seonghoon-dev/policyfit/internal/extract"
	"github.com/seonghoon-dev/policyfit/internal/model"
	"github.com/seonghoon-dev/policyfit/internal/store"
	"github.com/seonghoon-dev/policyfit/internal/text"
	"github.com/seonghoon-dev/policyfit/internal/worker"
)

// Pipeline turns raw policy rows into eligibility records and policy docs.
// Every row is processed independently; the instance itself carries no
// mutable state and is safe for concurrent use.
type Pipeline struct {
	cfg        *model.Config
	logger     *zap.Logger
	extractors []extract.Extractor
	reducer    *contract.Reducer
	composer   *text.Composer
}

// New builds a pipeline with the given configuration and diagnostics sink.
func New(cfg *model.Config, logger *zap.Logger) *Pipeline {
	if cfg == nil {
		cfg = model.DefaultConfig()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Pipeline{
		cfg:        cfg,
		logger:     logger,
		extractors: extract.All(),
		reducer:    contract.NewReducer(logger),
		composer:   text.NewComposer(cfg.Pipeline.MaxCleanTextChars, cfg.Pipeline.RawExcerptChars),
	}
}

// ProcessRow runs one policy row through normalization, the four domain
// extractors and the contract reducer, and builds its policies table row.
func (p *Pipeline) ProcessRow(row model.PolicyRow, now time.Time) (model.ProcessedPolicy, error) {
	policyID := strings.TrimSpace(row.PolicyID)

	policyName := text.CleanField(row.PolicyName)
	if policyName == "" {
		return model.ProcessedPolicy{}, contract.SchemaErrorf("policy_name is required (policy_id=%s)", policyID)
	}

	source := p.sourceText(row)

	results := make(map[model.Domain]model.ExtractionResult, len(p.extractors))
	var notes []string
	for _, ex := range p.extractors {
		res := ex.Extract(source)
		results[res.Domain] = res
		notes = append(notes, res.Notes...)
	}
	for _, note := range notes {
		p.logger.Debug("extraction note", zap.String("policy_id", policyID), zap.String("note", note))
	}

	record := p.reducer.Reduce(policyID, source, results)

	rowForClean := row
	rowForClean.SupportSummary = text.SupportSummary(row)
	rowForClean.SupportDetail = text.SupportDetail(row)

	var region *string
	if r := text.CleanField(row.Region); r != "" {
		region = &r
	}

	doc := model.PolicyDoc{
		PolicyID:       policyID,
		PolicyName:     policyName,
		SupportSummary: rowForClean.SupportSummary,
		SupportDetail:  rowForClean.SupportDetail,
		Region:         region,
		CleanText:      p.composer.Build(rowForClean),
		UpdatedAt:      now,
	}

	return model.ProcessedPolicy{Doc: doc, Record: record, Notes: notes}, nil
}

// sourceText joins the text-bearing fields the extractors scan, then
// normalizes the result once for the whole row.
func (p *Pipeline) sourceText(row model.PolicyRow) string {
	var chunks []string
	for _, v := range []string{row.Eligibility, row.Benefit, row.ApplyProcess, row.ApplyPeriod, row.RawText} {
		if cleaned := text.CleanField(v); cleaned != "" {
			chunks = append(chunks, cleaned)
		}
	}
	return text.Normalize(strings.Join(chunks, "\n"))
}

// Run processes the whole input table: validate the input contract,
// process rows as an unordered parallel map, validate the output contract,
// and assemble one snapshot. Any schema violation aborts the batch before
// a snapshot exists.
func (p *Pipeline) Run(ctx context.Context, rows []model.PolicyRow) (*store.Snapshot, error) {
	if err := contract.ValidateInput(rows); err != nil {
		return nil, err
	}

	if limit := p.cfg.Pipeline.Limit; limit > 0 && limit < len(rows) {
		rows = rows[:limit]
	}

	now := time.Now().UTC()
	processor := worker.NewBatchProcessor(p, p.cfg.Pipeline.Concurrency)
	processed, err := processor.ProcessRows(ctx, rows, now)
	if err != nil {
		return nil, err
	}

	snap := &store.Snapshot{
		RunID:       uuid.NewString(),
		GeneratedAt: now,
		Policies:    make([]model.PolicyDoc, 0, len(processed)),
		Eligibility: make([]model.EligibilityRecord, 0, len(processed)),
	}
	for _, pp := range processed {
		snap.Policies = append(snap.Policies, pp.Doc)
		snap.Eligibility = append(snap.Eligibility, pp.Record)
	}

	if err := contract.ValidateRecords(snap.Eligibility); err != nil {
		return nil, err
	}

	p.logger.Info("batch complete",
		zap.String("run_id", snap.RunID),
		zap.Int("policies", len(snap.Policies)))
	return snap, nil
}
