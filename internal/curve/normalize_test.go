package curve

import (
	"errors"
	"testing"
	"time"

	"github.com/dipulse/dipulse/internal/domain/models"
)

func d(y int, m time.Month, day int) time.Time {
	return time.Date(y, m, day, 0, 0, 0, 0, time.UTC)
}

func rawSettled(maturities []time.Time, rates []float64) models.RawSnapshot {
	return models.RawSnapshot{
		ContractCode:  "DI1",
		ReferenceDate: d(2026, 1, 15),
		Unit:          models.UnitFraction,
		Maturities:    maturities,
		Columns:       map[string][]float64{models.ColumnSettlementRate: rates},
	}
}

func TestNormalize_SchemaError(t *testing.T) {
	cases := []struct {
		name    string
		columns map[string][]float64
	}{
		{name: "no recognized column", columns: map[string][]float64{"LastRate": {0.1}}},
		{name: "empty columns", columns: map[string][]float64{}},
		{name: "both columns", columns: map[string][]float64{
			models.ColumnSettlementRate: {0.1},
			models.ColumnCurrentRate:    {0.1},
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			raw := models.RawSnapshot{
				Maturities: []time.Time{d(2026, 1, 1)},
				Columns:    tc.columns,
			}
			_, err := Normalize(raw, Options{})
			var schemaErr *SchemaError
			if !errors.As(err, &schemaErr) {
				t.Fatalf("expected SchemaError, got %v", err)
			}
		})
	}
}

func TestNormalize_LiveFlagFollowsColumn(t *testing.T) {
	maturities := []time.Time{d(2027, 1, 1)}

	settled, err := Normalize(rawSettled(maturities, []float64{0.105}), Options{})
	if err != nil {
		t.Fatalf("settled: %v", err)
	}
	if settled.Live {
		t.Fatalf("SettlementRate snapshot should not be live")
	}

	live, err := Normalize(models.RawSnapshot{
		Unit:       models.UnitFraction,
		Maturities: maturities,
		Columns:    map[string][]float64{models.ColumnCurrentRate: {0.106}},
	}, Options{})
	if err != nil {
		t.Fatalf("live: %v", err)
	}
	if !live.Live {
		t.Fatalf("CurrentRate snapshot should be live")
	}
	if live.Records[0].Rate != 0.106 {
		t.Fatalf("rate not carried over: %v", live.Records[0].Rate)
	}
}

func TestNormalize_GroupByMonth(t *testing.T) {
	raw := rawSettled([]time.Time{d(2026, 3, 15), d(2026, 7, 1)}, []float64{0.11, 0.12})

	out, err := Normalize(raw, Options{GroupByMonth: true})
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if got := out.Records[0].MaturityDate; !got.Equal(d(2026, 3, 1)) {
		t.Fatalf("2026-03-15 should truncate to 2026-03-01, got %v", got)
	}
	if got := out.Records[1].MaturityDate; !got.Equal(d(2026, 7, 1)) {
		t.Fatalf("first of month should be unchanged, got %v", got)
	}

	// Without the flag, dates pass through untouched.
	out, err = Normalize(raw, Options{})
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if got := out.Records[0].MaturityDate; !got.Equal(d(2026, 3, 15)) {
		t.Fatalf("date should be as-is without GroupByMonth, got %v", got)
	}
}

func TestNormalize_MaturityFilter(t *testing.T) {
	raw := rawSettled(
		[]time.Time{d(2026, 1, 10), d(2026, 4, 1), d(2027, 1, 1)},
		[]float64{0.10, 0.11, 0.12},
	)
	accepted := models.NewMaturityFilter([]time.Time{d(2026, 1, 1), d(2027, 1, 1)})

	out, err := Normalize(raw, Options{GroupByMonth: true, Accepted: accepted})
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if len(out.Records) != 2 {
		t.Fatalf("want 2 rows after filter, got %d", len(out.Records))
	}
	for _, rec := range out.Records {
		if !accepted.Contains(rec.MaturityDate) {
			t.Fatalf("row %v escaped the filter", rec.MaturityDate)
		}
	}

	// Filtering is combined with month truncation: 2026-01-10 survives only
	// because its vertex 2026-01-01 is accepted.
	if !out.Records[0].MaturityDate.Equal(d(2026, 1, 1)) {
		t.Fatalf("expected truncated vertex 2026-01-01, got %v", out.Records[0].MaturityDate)
	}
}

func TestNormalize_FilterIdempotent(t *testing.T) {
	accepted := models.NewMaturityFilter([]time.Time{d(2026, 1, 1)})
	raw := rawSettled([]time.Time{d(2026, 1, 5), d(2026, 2, 5)}, []float64{0.10, 0.11})

	once, err := Normalize(raw, Options{GroupByMonth: true, Accepted: accepted})
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}

	// Re-run the filter over the already filtered output.
	again, err := Normalize(models.RawSnapshot{
		Unit:       once.Unit,
		Maturities: maturitiesOf(once),
		Columns:    map[string][]float64{models.ColumnSettlementRate: ratesOf(once)},
	}, Options{GroupByMonth: true, Accepted: accepted})
	if err != nil {
		t.Fatalf("normalize again: %v", err)
	}
	if len(again.Records) != len(once.Records) {
		t.Fatalf("reapplying filter changed row count: %d vs %d", len(again.Records), len(once.Records))
	}
	for i := range again.Records {
		if again.Records[i] != once.Records[i] {
			t.Fatalf("row %d changed on refilter: %+v vs %+v", i, again.Records[i], once.Records[i])
		}
	}
}

func TestNormalize_RateScaleUpdatesUnit(t *testing.T) {
	raw := rawSettled([]time.Time{d(2027, 1, 1)}, []float64{0.105})

	cases := []struct {
		name     string
		scale    float64
		wantRate float64
		wantUnit models.RateUnit
	}{
		{name: "default keeps fraction", scale: 0, wantRate: 0.105, wantUnit: models.UnitFraction},
		{name: "x100 becomes percent", scale: 100, wantRate: 10.5, wantUnit: models.UnitPercent},
		{name: "other factor keeps unit", scale: 2, wantRate: 0.21, wantUnit: models.UnitFraction},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			out, err := Normalize(raw, Options{RateScale: tc.scale})
			if err != nil {
				t.Fatalf("normalize: %v", err)
			}
			if out.Records[0].Rate != tc.wantRate {
				t.Fatalf("rate: want %v got %v", tc.wantRate, out.Records[0].Rate)
			}
			if out.Unit != tc.wantUnit {
				t.Fatalf("unit: want %v got %v", tc.wantUnit, out.Unit)
			}
		})
	}
}

func TestNormalize_DoesNotMutateInput(t *testing.T) {
	maturities := []time.Time{d(2026, 3, 15)}
	rates := []float64{0.11}
	raw := rawSettled(maturities, rates)

	if _, err := Normalize(raw, Options{GroupByMonth: true, RateScale: 100}); err != nil {
		t.Fatalf("normalize: %v", err)
	}

	if !maturities[0].Equal(d(2026, 3, 15)) {
		t.Fatalf("input maturity mutated: %v", maturities[0])
	}
	if rates[0] != 0.11 {
		t.Fatalf("input rate mutated: %v", rates[0])
	}
}

func maturitiesOf(t models.RateTable) []time.Time {
	out := make([]time.Time, len(t.Records))
	for i, r := range t.Records {
		out[i] = r.MaturityDate
	}
	return out
}

func ratesOf(t models.RateTable) []float64 {
	out := make([]float64, len(t.Records))
	for i, r := range t.Records {
		out[i] = r.Rate
	}
	return out
}
