// Package curve implements the DI1 rate pipeline: normalization of raw
// provider snapshots and basis-point variation between two normalized tables.
// All transforms are pure value functions; inputs are never mutated.
package curve

import (
	"fmt"
	"strings"
	"time"

	"github.com/dipulse/dipulse/internal/domain/models"
)

// SchemaError reports a raw snapshot whose rate columns do not match the
// expected shape: exactly one of SettlementRate / CurrentRate must be present.
type SchemaError struct {
	// Columns is the list of recognized rate columns found (empty or both).
	Columns []string
}

func (e *SchemaError) Error() string {
	if len(e.Columns) == 0 {
		return "snapshot has no recognized rate column (want SettlementRate or CurrentRate)"
	}
	return fmt.Sprintf("snapshot has multiple rate columns: %s", strings.Join(e.Columns, ", "))
}

// DuplicateMaturityError reports a rate table that repeats a maturity date.
// Joining such a table would fan out rows per duplicate group, which is never
// what a variation chart wants, so the pipeline refuses instead.
type DuplicateMaturityError struct {
	MaturityDate time.Time
}

func (e *DuplicateMaturityError) Error() string {
	return fmt.Sprintf("duplicate maturity %s in rate table", e.MaturityDate.Format("2006-01-02"))
}

// UnitMismatchError reports an attempt to compute variation between tables
// whose rates use different representations.
type UnitMismatchError struct {
	Final   models.RateUnit
	Initial models.RateUnit
}

func (e *UnitMismatchError) Error() string {
	return fmt.Sprintf("rate unit mismatch: final table is %s, initial table is %s", e.Final, e.Initial)
}
