package models

import "time"

// MaturityFilter is a set of accepted maturity dates, typically the LTN and
// NTN-F issuance vertices published by Anbima for a reference date. Dates are
// stored normalized to UTC midnight so lookups ignore clock and zone.
type MaturityFilter map[time.Time]struct{}

// NewMaturityFilter builds a filter from the given dates.
func NewMaturityFilter(dates ...[]time.Time) MaturityFilter {
	f := make(MaturityFilter)
	for _, group := range dates {
		for _, d := range group {
			f[DateKey(d)] = struct{}{}
		}
	}
	return f
}

// Contains reports whether the filter accepts the given maturity date.
func (f MaturityFilter) Contains(d time.Time) bool {
	_, ok := f[DateKey(d)]
	return ok
}

// DateKey truncates a timestamp to its date in UTC. All maturity comparisons
// go through this so tables from different sources join correctly.
func DateKey(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
