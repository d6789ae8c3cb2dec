package store

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/seonghoon-dev/policyfit/internal/model"
)

const schema = `
CREATE TABLE IF NOT EXISTS policies (
	policy_id       TEXT PRIMARY KEY,
	policy_name     TEXT NOT NULL,
	support_summary TEXT NOT NULL,
	support_detail  TEXT NOT NULL,
	region          TEXT,
	clean_text      TEXT NOT NULL,
	updated_at      TIMESTAMP NOT NULL
);
CREATE TABLE IF NOT EXISTS policy_eligibility (
	policy_id             TEXT PRIMARY KEY,
	min_age               INTEGER,
	max_age               INTEGER,
	income_rule_type      TEXT NOT NULL,
	income_threshold      INTEGER,
	asset_threshold       INTEGER,
	is_homeowner_required INTEGER NOT NULL,
	vehicle_value_limit   INTEGER
);
CREATE TABLE IF NOT EXISTS run_logs (
	run_id       TEXT PRIMARY KEY,
	generated_at TIMESTAMP NOT NULL,
	policy_count INTEGER NOT NULL
);
`

// SQLite persists dataset snapshots. Replace rewrites both tables and the
// run log entry in a single transaction, so a reader on another connection
// sees either the previous generation or the new one.
type SQLite struct {
	db *sql.DB
}

// OpenSQLite opens (creating if needed) the snapshot database at path.
func OpenSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &SQLite{db: db}, nil
}

// Close closes the underlying database.
func (s *SQLite) Close() error {
	return s.db.Close()
}

// Replace swaps the stored dataset for the snapshot's generation.
func (s *SQLite) Replace(ctx context.Context, snap *Snapshot) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	for _, table := range []string{"policies", "policy_eligibility"} {
		if _, err = tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}

	for _, doc := range snap.Policies {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO policies (policy_id, policy_name, support_summary, support_detail, region, clean_text, updated_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			doc.PolicyID, doc.PolicyName, doc.SupportSummary, doc.SupportDetail, doc.Region, doc.CleanText, doc.UpdatedAt)
		if err != nil {
			return fmt.Errorf("insert policy %s: %w", doc.PolicyID, err)
		}
	}

	for _, rec := range snap.Eligibility {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO policy_eligibility (policy_id, min_age, max_age, income_rule_type, income_threshold, asset_threshold, is_homeowner_required, vehicle_value_limit)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			rec.PolicyID, rec.MinAge, rec.MaxAge, string(rec.IncomeRuleType),
			rec.IncomeThreshold, rec.AssetThreshold, rec.IsHomeownerRequired, rec.VehicleValueLimit)
		if err != nil {
			return fmt.Errorf("insert eligibility %s: %w", rec.PolicyID, err)
		}
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO run_logs (run_id, generated_at, policy_count) VALUES (?, ?, ?)`,
		snap.RunID, snap.GeneratedAt, len(snap.Policies))
	if err != nil {
		return fmt.Errorf("insert run log: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// LoadEligibility reads the stored policy_eligibility table.
func (s *SQLite) LoadEligibility(ctx context.Context) ([]model.EligibilityRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT policy_id, min_age, max_age, income_rule_type, income_threshold, asset_threshold, is_homeowner_required, vehicle_value_limit
		 FROM policy_eligibility ORDER BY policy_id`)
	if err != nil {
		return nil, fmt.Errorf("query eligibility: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var records []model.EligibilityRecord
	for rows.Next() {
		var (
			rec       model.EligibilityRecord
			rule      string
			minAge    sql.NullInt64
			maxAge    sql.NullInt64
			threshold sql.NullInt64
			assets    sql.NullInt64
			vehicle   sql.NullInt64
		)
		if err := rows.Scan(&rec.PolicyID, &minAge, &maxAge, &rule, &threshold, &assets, &rec.IsHomeownerRequired, &vehicle); err != nil {
			return nil, fmt.Errorf("scan eligibility: %w", err)
		}
		rec.IncomeRuleType = model.IncomeRuleType(rule)
		rec.MinAge = nullableInt(minAge)
		rec.MaxAge = nullableInt(maxAge)
		rec.IncomeThreshold = nullableInt64(threshold)
		rec.AssetThreshold = nullableInt64(assets)
		rec.VehicleValueLimit = nullableInt64(vehicle)
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate eligibility: %w", err)
	}
	return records, nil
}

// LastRun returns the most recent run log entry, if any.
func (s *SQLite) LastRun(ctx context.Context) (runID string, policyCount int, ok bool, err error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT run_id, policy_count FROM run_logs ORDER BY generated_at DESC LIMIT 1`)
	switch err = row.Scan(&runID, &policyCount); err {
	case nil:
		return runID, policyCount, true, nil
	case sql.ErrNoRows:
		return "", 0, false, nil
	default:
		return "", 0, false, fmt.Errorf("query run log: %w", err)
	}
}

func nullableInt(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	n := int(v.Int64)
	return &n
}

func nullableInt64(v sql.NullInt64) *int64 {
	if !v.Valid {
		return nil
	}
	n := v.Int64
	return &n
}
