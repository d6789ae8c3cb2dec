// Package contract reduces raw extraction results into the fixed
// eligibility schema and enforces the input/output table contracts.
package contract

import (
	"errors"
	"fmt"
)

// ErrSchema marks fatal contract violations. A batch that trips it aborts
// before any output is written.
var ErrSchema = errors.New("schema violation")

// SchemaErrorf wraps ErrSchema with detail.
func SchemaErrorf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrSchema, fmt.Sprintf(format, args...))
}
