package curve

import (
	"time"

	"github.com/dipulse/dipulse/internal/domain/models"
)

// ComputeVariation inner-joins two normalized tables on maturity date and
// returns the signed rate difference per vertex in basis points.
//
// Rules:
//   - Both tables must use the same rate unit; the basis-point factor is
//     derived from that unit (10_000 for fractions, 100 for percent).
//   - Maturities present in only one table are dropped, not null-filled.
//   - Either table repeating a maturity fails with *DuplicateMaturityError.
//   - Output preserves the final table's insertion order; callers sort if
//     their chart needs it.
func ComputeVariation(final, initial models.RateTable) ([]models.VariationRecord, error) {
	if final.Unit != initial.Unit {
		return nil, &UnitMismatchError{Final: final.Unit, Initial: initial.Unit}
	}

	initialByMaturity, err := indexByMaturity(initial)
	if err != nil {
		return nil, err
	}
	// The final side is walked in order below; duplicates still need the
	// same guard.
	if _, err := indexByMaturity(final); err != nil {
		return nil, err
	}

	scale := final.Unit.BasisPointScale()

	out := make([]models.VariationRecord, 0, len(final.Records))
	for _, rec := range final.Records {
		rateInitial, ok := initialByMaturity[rec.MaturityDate]
		if !ok {
			continue
		}
		out = append(out, models.VariationRecord{
			MaturityDate: rec.MaturityDate,
			RateFinal:    rec.Rate,
			RateInitial:  rateInitial,
			VariationBps: (rec.Rate - rateInitial) * scale,
		})
	}

	return out, nil
}

func indexByMaturity(t models.RateTable) (map[time.Time]float64, error) {
	idx := make(map[time.Time]float64, len(t.Records))
	for _, rec := range t.Records {
		if _, dup := idx[rec.MaturityDate]; dup {
			return nil, &DuplicateMaturityError{MaturityDate: rec.MaturityDate}
		}
		idx[rec.MaturityDate] = rec.Rate
	}
	return idx, nil
}
