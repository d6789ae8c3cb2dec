package worker

import (
	"context"
	"time"

	"github.com/seonghoon-dev/policyfit/internal/model"
)

// RowProcessor processes one input table row into its output rows.
type RowProcessor interface {
	ProcessRow(row model.PolicyRow, now time.Time) (model.ProcessedPolicy, error)
}

// RowJob is a single policy-row extraction job.
type RowJob struct {
	Index     int
	Row       model.PolicyRow
	Now       time.Time
	Processor RowProcessor
}

// Execute runs the extraction for one row.
func (j *RowJob) Execute(ctx context.Context) Result {
	if err := ctx.Err(); err != nil {
		return &RowResult{Index: j.Index, Error: err}
	}
	processed, err := j.Processor.ProcessRow(j.Row, j.Now)
	if err != nil {
		return &RowResult{Index: j.Index, Error: err}
	}
	processed.Index = j.Index
	return &RowResult{Index: j.Index, Processed: processed}
}

// RowResult is the outcome of one row job.
type RowResult struct {
	Index     int
	Processed model.ProcessedPolicy
	Error     error
}

// GetError returns the error from the row result.
func (r *RowResult) GetError() error { return r.Error }

// BatchProcessor processes input rows concurrently.
type BatchProcessor struct {
	processor   RowProcessor
	concurrency int
}

// NewBatchProcessor creates a new batch processor.
func NewBatchProcessor(processor RowProcessor, concurrency int) *BatchProcessor {
	return &BatchProcessor{processor: processor, concurrency: concurrency}
}

// ProcessRows runs every row through the pool and returns the results in
// input order. The first row error encountered is returned and the batch
// yields no output.
func (b *BatchProcessor) ProcessRows(ctx context.Context, rows []model.PolicyRow, now time.Time) ([]model.ProcessedPolicy, error) {
	if len(rows) == 0 {
		return []model.ProcessedPolicy{}, nil
	}

	pool := NewPool(b.concurrency)
	pool.Start()

	for i, row := range rows {
		pool.Submit(&RowJob{Index: i, Row: row, Now: now, Processor: b.processor})
	}

	results := pool.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	ordered := make([]model.ProcessedPolicy, len(rows))
	for _, result := range results {
		rr := result.(*RowResult)
		if rr.Error != nil {
			return nil, rr.Error
		}
		ordered[rr.Index] = rr.Processed
	}
	return ordered, nil
}
