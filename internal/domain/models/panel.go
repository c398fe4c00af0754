package models

import "time"

// CurvePanel is the assembled result of one dashboard render: both normalized
// curves, their basis-point variation per issuance vertex, and the session
// metadata the consumer needs to decide whether to keep refreshing.
//
// Fields:
//   - StartDate / FinalDate: the business days actually compared (after rolling).
//   - BusinessDays: business days between StartDate (inclusive) and FinalDate
//     (exclusive).
//   - Live: true when the final curve is an intraday snapshot taken during the
//     trading session; settled panels never change and need no refresh.
type CurvePanel struct {
	StartDate    time.Time
	FinalDate    time.Time
	BusinessDays int
	Live         bool
	Initial      RateTable
	Final        RateTable
	Variations   []VariationRecord
}
