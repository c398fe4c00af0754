package curve

import (
	"errors"
	"math"
	"testing"

	"github.com/dipulse/dipulse/internal/domain/models"
)

func table(unit models.RateUnit, recs ...models.RateRecord) models.RateTable {
	return models.RateTable{Unit: unit, Records: recs}
}

func TestComputeVariation_BasisPoints(t *testing.T) {
	cases := []struct {
		name    string
		unit    models.RateUnit
		final   float64
		initial float64
		wantBps float64
	}{
		{name: "fraction rates scale by 10000", unit: models.UnitFraction, final: 0.10, initial: 0.08, wantBps: 200.0},
		{name: "percent rates scale by 100", unit: models.UnitPercent, final: 10.5, initial: 10.0, wantBps: 50.0},
		{name: "negative variation", unit: models.UnitFraction, final: 0.09, initial: 0.095, wantBps: -50.0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			final := table(tc.unit, models.RateRecord{MaturityDate: d(2026, 1, 1), Rate: tc.final})
			initial := table(tc.unit, models.RateRecord{MaturityDate: d(2026, 1, 1), Rate: tc.initial})

			out, err := ComputeVariation(final, initial)
			if err != nil {
				t.Fatalf("variation: %v", err)
			}
			if len(out) != 1 {
				t.Fatalf("want 1 record, got %d", len(out))
			}
			if math.Abs(out[0].VariationBps-tc.wantBps) > 1e-9 {
				t.Fatalf("want %v bps, got %v", tc.wantBps, out[0].VariationBps)
			}
			if out[0].RateFinal != tc.final || out[0].RateInitial != tc.initial {
				t.Fatalf("joined rates not carried: %+v", out[0])
			}
		})
	}
}

func TestComputeVariation_InnerJoinDropsOneSided(t *testing.T) {
	final := table(models.UnitFraction,
		models.RateRecord{MaturityDate: d(2026, 1, 1), Rate: 0.10},
		models.RateRecord{MaturityDate: d(2026, 6, 1), Rate: 0.11}, // only in final
	)
	initial := table(models.UnitFraction,
		models.RateRecord{MaturityDate: d(2026, 1, 1), Rate: 0.09},
		models.RateRecord{MaturityDate: d(2026, 9, 1), Rate: 0.12}, // only in initial
	)

	out, err := ComputeVariation(final, initial)
	if err != nil {
		t.Fatalf("variation: %v", err)
	}
	if len(out) != 1 {
		t.Fatalf("inner join should emit 1 record, got %d", len(out))
	}
	for _, rec := range out {
		if rec.MaturityDate.Equal(d(2026, 6, 1)) || rec.MaturityDate.Equal(d(2026, 9, 1)) {
			t.Fatalf("one-sided maturity leaked into output: %v", rec.MaturityDate)
		}
	}
}

func TestComputeVariation_OutputBoundAndOrder(t *testing.T) {
	// Final order is deliberately not sorted; output must preserve it.
	final := table(models.UnitFraction,
		models.RateRecord{MaturityDate: d(2027, 1, 1), Rate: 0.12},
		models.RateRecord{MaturityDate: d(2026, 1, 1), Rate: 0.10},
		models.RateRecord{MaturityDate: d(2028, 1, 1), Rate: 0.13},
	)
	initial := table(models.UnitFraction,
		models.RateRecord{MaturityDate: d(2026, 1, 1), Rate: 0.09},
		models.RateRecord{MaturityDate: d(2027, 1, 1), Rate: 0.11},
	)

	out, err := ComputeVariation(final, initial)
	if err != nil {
		t.Fatalf("variation: %v", err)
	}
	if len(out) > len(final.Records) || len(out) > len(initial.Records) {
		t.Fatalf("output longer than an input: %d", len(out))
	}
	if !out[0].MaturityDate.Equal(d(2027, 1, 1)) || !out[1].MaturityDate.Equal(d(2026, 1, 1)) {
		t.Fatalf("final table order not preserved: %+v", out)
	}
}

func TestComputeVariation_DuplicateMaturity(t *testing.T) {
	dup := table(models.UnitFraction,
		models.RateRecord{MaturityDate: d(2026, 1, 1), Rate: 0.10},
		models.RateRecord{MaturityDate: d(2026, 1, 1), Rate: 0.101},
	)
	clean := table(models.UnitFraction,
		models.RateRecord{MaturityDate: d(2026, 1, 1), Rate: 0.09},
	)

	for _, tc := range []struct {
		name           string
		final, initial models.RateTable
	}{
		{name: "duplicate in final", final: dup, initial: clean},
		{name: "duplicate in initial", final: clean, initial: dup},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ComputeVariation(tc.final, tc.initial)
			var dupErr *DuplicateMaturityError
			if !errors.As(err, &dupErr) {
				t.Fatalf("expected DuplicateMaturityError, got %v", err)
			}
			if !dupErr.MaturityDate.Equal(d(2026, 1, 1)) {
				t.Fatalf("wrong maturity reported: %v", dupErr.MaturityDate)
			}
		})
	}
}

func TestComputeVariation_UnitMismatch(t *testing.T) {
	final := table(models.UnitPercent, models.RateRecord{MaturityDate: d(2026, 1, 1), Rate: 10.5})
	initial := table(models.UnitFraction, models.RateRecord{MaturityDate: d(2026, 1, 1), Rate: 0.10})

	_, err := ComputeVariation(final, initial)
	var mismatch *UnitMismatchError
	if !errors.As(err, &mismatch) {
		t.Fatalf("expected UnitMismatchError, got %v", err)
	}
	if mismatch.Final != models.UnitPercent || mismatch.Initial != models.UnitFraction {
		t.Fatalf("wrong units reported: %+v", mismatch)
	}
}
