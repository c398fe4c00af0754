package models

import "time"

// Recognized rate column names on raw DI1 snapshots.
//
// B3 publishes the end-of-day settlement rate once the session closes and a
// last-traded rate while the session is open. A snapshot carries exactly one
// of the two; which one is present tells whether the snapshot is settled or live.
const (
	ColumnSettlementRate = "SettlementRate"
	ColumnCurrentRate    = "CurrentRate"
)

// RateUnit tags the representation of the rates in a table.
//
// DI rates come from the provider as decimal fractions (0.105 for 10.5% a.a.),
// but tables may be rescaled to percent for display. The unit decides the
// factor that converts a rate difference into basis points, so mixing
// representations is an error rather than a silent wrong magnitude.
type RateUnit int

const (
	// UnitFraction means rates are decimal fractions (0.105 == 10.5%).
	UnitFraction RateUnit = iota
	// UnitPercent means rates are already expressed in percent (10.5).
	UnitPercent
)

// BasisPointScale returns the factor that converts a rate difference in this
// unit into basis points: 10_000 for fractions, 100 for percent.
func (u RateUnit) BasisPointScale() float64 {
	if u == UnitPercent {
		return 100
	}
	return 10_000
}

// Rescaled returns the unit resulting from multiplying rates by scale.
// Only the two known representation changes flip the tag; any other factor
// keeps the current unit.
func (u RateUnit) Rescaled(scale float64) RateUnit {
	switch {
	case u == UnitFraction && scale == 100:
		return UnitPercent
	case u == UnitPercent && scale == 0.01:
		return UnitFraction
	default:
		return u
	}
}

func (u RateUnit) String() string {
	if u == UnitPercent {
		return "percent"
	}
	return "fraction"
}

// RateRecord is one row of a rate table: a maturity instrument and its rate.
type RateRecord struct {
	MaturityDate time.Time
	Rate         float64
}

// RateTable is an ordered collection of rate records sharing one unit.
//
// Tables are built fresh per request from provider data, never mutated after
// normalization, and discarded once consumed by chart assembly.
//
// Fields:
//   - Unit: representation of every Rate in Records.
//   - Live: true when the table came from an intraday (CurrentRate) snapshot.
//   - Records: rows in insertion order, conceptually keyed by MaturityDate.
type RateTable struct {
	Unit    RateUnit
	Live    bool
	Records []RateRecord
}

// RawSnapshot is a provider rate table before normalization.
//
// Columns is keyed by the provider's rate column name; a well-formed snapshot
// has exactly one recognized key (ColumnSettlementRate or ColumnCurrentRate)
// whose slice is parallel to Maturities. Validation of that rule belongs to
// the normalizer, not to providers.
type RawSnapshot struct {
	ContractCode  string
	ReferenceDate time.Time
	Unit          RateUnit
	Maturities    []time.Time
	Columns       map[string][]float64
}

// VariationRecord is one joined row of two rate tables: the rate at a maturity
// in each snapshot and the signed difference expressed in basis points.
type VariationRecord struct {
	MaturityDate time.Time
	RateFinal    float64
	RateInitial  float64
	VariationBps float64
}
