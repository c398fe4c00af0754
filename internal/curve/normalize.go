package curve

import (
	"time"

	"github.com/dipulse/dipulse/internal/domain/models"
)

// Options controls how Normalize reshapes a raw snapshot.
type Options struct {
	// GroupByMonth truncates each maturity to the first day of its month,
	// collapsing same-month contracts into one issuance vertex. Applied
	// before the maturity filter.
	GroupByMonth bool

	// RateScale multiplies every rate; zero means 1.0 (no scaling).
	// When the factor converts between the two known representations
	// (fraction x100, percent x0.01) the output table's unit tag follows.
	RateScale float64

	// Accepted, when non-nil, restricts the output to maturities in the set.
	// Dates are compared after GroupByMonth truncation.
	Accepted models.MaturityFilter
}

// Normalize standardizes a raw snapshot into a rate table.
//
// It requires exactly one recognized rate column (SettlementRate or
// CurrentRate) and fails with *SchemaError otherwise. The surviving column
// becomes the table's canonical rate; which column it was is kept only as the
// Live flag. Maturity granularity, scaling and filtering follow opts.
//
// The input snapshot is not modified; the returned table owns its records.
func Normalize(raw models.RawSnapshot, opts Options) (models.RateTable, error) {
	rates, live, err := rateColumn(raw)
	if err != nil {
		return models.RateTable{}, err
	}

	scale := opts.RateScale
	if scale == 0 {
		scale = 1.0
	}

	out := models.RateTable{
		Unit:    raw.Unit.Rescaled(scale),
		Live:    live,
		Records: make([]models.RateRecord, 0, len(raw.Maturities)),
	}

	for i, maturity := range raw.Maturities {
		if i >= len(rates) {
			break
		}
		d := models.DateKey(maturity)
		if opts.GroupByMonth {
			d = firstOfMonth(d)
		}
		if opts.Accepted != nil && !opts.Accepted.Contains(d) {
			continue
		}
		out.Records = append(out.Records, models.RateRecord{
			MaturityDate: d,
			Rate:         rates[i] * scale,
		})
	}

	return out, nil
}

// rateColumn picks the single recognized rate column from the snapshot.
func rateColumn(raw models.RawSnapshot) (rates []float64, live bool, err error) {
	var found []string
	for _, name := range []string{models.ColumnSettlementRate, models.ColumnCurrentRate} {
		if _, ok := raw.Columns[name]; ok {
			found = append(found, name)
		}
	}
	if len(found) != 1 {
		return nil, false, &SchemaError{Columns: found}
	}
	return raw.Columns[found[0]], found[0] == models.ColumnCurrentRate, nil
}

func firstOfMonth(d time.Time) time.Time {
	return time.Date(d.Year(), d.Month(), 1, 0, 0, 0, 0, time.UTC)
}
