package pipeline

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/seonghoon-dev/policyfit/internal/contract"
	"github.com/seonghoon-dev/policyfit/internal/model"
	"github.com/seonghoon-dev/policyfit/internal/store"
)

// eligibilityColumns is the contract column order of the
// policy_eligibility table.
var eligibilityColumns = []string{
	"policy_id", "min_age", "max_age", "income_rule_type",
	"income_threshold", "asset_threshold", "is_homeowner_required",
	"vehicle_value_limit",
}

// policiesColumns is the contract column order of the policies table.
var policiesColumns = []string{
	"policy_id", "policy_name", "support_summary", "support_detail",
	"region", "clean_text", "updated_at",
}

// ReadPolicyTable loads the raw input table. Missing required columns are
// a schema violation; optional columns are consumed when present.
func ReadPolicyTable(path string) ([]model.PolicyRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open input table: %w", err)
	}
	defer func() { _ = f.Close() }()

	r := newTableReader(f)
	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	col := make(map[string]int, len(header))
	for i, name := range header {
		col[normalizeHeader(name)] = i
	}
	for _, required := range []string{"policy_id", "eligibility"} {
		if _, ok := col[required]; !ok {
			return nil, contract.SchemaErrorf("missing required column %q", required)
		}
	}

	field := func(record []string, name string) string {
		idx, ok := col[name]
		if !ok || idx >= len(record) {
			return ""
		}
		return record[idx]
	}

	var rows []model.PolicyRow
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row %d: %w", len(rows)+1, err)
		}
		rows = append(rows, model.PolicyRow{
			PolicyID:       field(record, "policy_id"),
			PolicyName:     field(record, "policy_name"),
			Eligibility:    field(record, "eligibility"),
			Benefit:        field(record, "benefit"),
			ApplyProcess:   field(record, "apply_process"),
			ApplyPeriod:    field(record, "apply_period"),
			RawText:        field(record, "raw_text"),
			Region:         field(record, "region"),
			Summary:        field(record, "summary"),
			TargetGroup:    field(record, "target_group"),
			SupportSummary: field(record, "support_summary"),
			SupportDetail:  field(record, "support_detail"),
		})
	}
	return rows, nil
}

// ReadEligibilityTable loads a previously emitted policy_eligibility
// table, tolerating the usual spreadsheet artifacts: tab or comma
// separators, TRUE/False/1/0 booleans and thousands separators in
// numbers.
func ReadEligibilityTable(path string) ([]model.EligibilityRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open eligibility table: %w", err)
	}
	defer func() { _ = f.Close() }()

	r := newTableReader(f)
	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	col := make(map[string]int, len(header))
	for i, name := range header {
		col[normalizeHeader(name)] = i
	}
	for _, required := range eligibilityColumns {
		if _, ok := col[required]; !ok {
			return nil, contract.SchemaErrorf("missing required column %q", required)
		}
	}

	field := func(record []string, name string) string {
		idx := col[name]
		if idx >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[idx])
	}

	var records []model.EligibilityRecord
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row %d: %w", len(records)+1, err)
		}
		rec := model.EligibilityRecord{
			PolicyID:            field(record, "policy_id"),
			IncomeRuleType:      model.NormalizeIncomeRuleType(field(record, "income_rule_type")),
			IsHomeownerRequired: parseLenientBool(field(record, "is_homeowner_required")),
		}
		rec.MinAge = parseOptionalInt(field(record, "min_age"))
		rec.MaxAge = parseOptionalInt(field(record, "max_age"))
		rec.IncomeThreshold = parseOptionalInt64(field(record, "income_threshold"))
		rec.AssetThreshold = parseOptionalInt64(field(record, "asset_threshold"))
		rec.VehicleValueLimit = parseOptionalInt64(field(record, "vehicle_value_limit"))
		records = append(records, rec)
	}
	return records, nil
}

// WriteTables writes policies.csv and policy_eligibility.csv into dir.
// Each table is written to a temporary file first and renamed into place
// only after both writes succeed, so any write error leaves the previous
// generation untouched. The two renames themselves are sequential: a crash
// between them can pair the tables from different generations. The
// eligibility table, which carries the downstream contract, publishes
// first; fully atomic multi-file publication needs the sqlite snapshot
// (store.Replace runs in one transaction).
func WriteTables(dir string, snap *store.Snapshot) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	policiesTmp := filepath.Join(dir, "policies.csv.tmp")
	eligTmp := filepath.Join(dir, "policy_eligibility.csv.tmp")

	if err := writeCSV(policiesTmp, policiesColumns, policyRecords(snap)); err != nil {
		return err
	}
	if err := writeCSV(eligTmp, eligibilityColumns, eligibilityRecords(snap)); err != nil {
		_ = os.Remove(policiesTmp)
		return err
	}

	if err := os.Rename(eligTmp, filepath.Join(dir, "policy_eligibility.csv")); err != nil {
		_ = os.Remove(policiesTmp)
		return fmt.Errorf("publish policy_eligibility.csv: %w", err)
	}
	if err := os.Rename(policiesTmp, filepath.Join(dir, "policies.csv")); err != nil {
		return fmt.Errorf("publish policies.csv: %w", err)
	}
	return nil
}

func policyRecords(snap *store.Snapshot) [][]string {
	out := make([][]string, 0, len(snap.Policies))
	for _, doc := range snap.Policies {
		region := ""
		if doc.Region != nil {
			region = *doc.Region
		}
		out = append(out, []string{
			doc.PolicyID, doc.PolicyName, doc.SupportSummary, doc.SupportDetail,
			region, doc.CleanText, doc.UpdatedAt.Format(time.RFC3339),
		})
	}
	return out
}

func eligibilityRecords(snap *store.Snapshot) [][]string {
	out := make([][]string, 0, len(snap.Eligibility))
	for _, rec := range snap.Eligibility {
		out = append(out, []string{
			rec.PolicyID,
			formatOptionalInt(rec.MinAge),
			formatOptionalInt(rec.MaxAge),
			string(rec.IncomeRuleType),
			formatOptionalInt64(rec.IncomeThreshold),
			formatOptionalInt64(rec.AssetThreshold),
			strconv.FormatBool(rec.IsHomeownerRequired),
			formatOptionalInt64(rec.VehicleValueLimit),
		})
	}
	return out
}

func writeCSV(path string, header []string, records [][]string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close %s: %w", path, closeErr)
		}
	}()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, record := range records {
		if err := w.Write(record); err != nil {
			return fmt.Errorf("write record: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush %s: %w", path, err)
	}
	return nil
}

// newTableReader builds a csv.Reader, sniffing whether the file is tab or
// comma separated from its first line.
func newTableReader(f *os.File) *csv.Reader {
	br := bufio.NewReader(f)
	peek, _ := br.Peek(4096)
	r := csv.NewReader(br)
	r.FieldsPerRecord = -1
	firstLine, _, _ := strings.Cut(string(peek), "\n")
	if strings.Contains(firstLine, "\t") && !strings.Contains(firstLine, ",") {
		r.Comma = '\t'
	}
	return r
}

func normalizeHeader(s string) string {
	return strings.ToLower(strings.TrimSpace(strings.TrimPrefix(s, "\uFEFF")))
}

func parseLenientBool(s string) bool {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "TRUE", "T", "Y", "YES", "1":
		return true
	}
	return false
}

func formatOptionalInt(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}

func formatOptionalInt64(v *int64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatInt(*v, 10)
}

func parseOptionalInt(s string) *int {
	if v := parseOptionalInt64(s); v != nil {
		n := int(*v)
		return &n
	}
	return nil
}

func parseOptionalInt64(s string) *int64 {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" || strings.EqualFold(s, "nan") {
		return nil
	}
	// Tolerate float renderings like "34.0".
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		n := int64(f)
		return &n
	}
	return nil
}
