// Package bday provides Brazilian business-day arithmetic for the DI1
// pipeline: rolling reference dates onto trading days, offsetting and counting
// business days, and the trading-session gate that decides whether a snapshot
// can still be live.
package bday

import (
	"sync"
	"time"
)

// National fixed holidays, keyed by "MM-DD". Holiday checks work on the
// calendar date a value carries, never on its instant or location, so dates
// parsed in UTC and dates built in exchange-local time agree.
var fixedHolidays = map[string]struct{}{
	"01-01": {}, // New Year
	"04-21": {}, // Tiradentes
	"05-01": {}, // Labor Day
	"09-07": {}, // Independence Day
	"10-12": {}, // Our Lady Aparecida
	"11-02": {}, // All Souls' Day
	"11-15": {}, // Republic Proclamation
	"12-25": {}, // Christmas
}

var (
	movableMu     sync.Mutex
	movableByYear = map[int]map[string]struct{}{}
)

// movableHolidays returns the Easter-derived holidays for a year, keyed by
// "MM-DD". Computed once per year; Roll/Count/LastN hit this in a loop.
func movableHolidays(year int) map[string]struct{} {
	movableMu.Lock()
	defer movableMu.Unlock()

	if m, ok := movableByYear[year]; ok {
		return m
	}

	easter := easterSunday(year)
	m := map[string]struct{}{
		easter.AddDate(0, 0, -48).Format("01-02"): {}, // Carnival Monday
		easter.AddDate(0, 0, -47).Format("01-02"): {}, // Carnival Tuesday
		easter.AddDate(0, 0, -2).Format("01-02"):  {}, // Good Friday
		easter.AddDate(0, 0, 60).Format("01-02"):  {}, // Corpus Christi
	}
	movableByYear[year] = m
	return m
}

// IsBusinessDay returns true if date is a business day in Brazil.
func IsBusinessDay(d time.Time) bool {
	// Weekend
	if wd := d.Weekday(); wd == time.Saturday || wd == time.Sunday {
		return false
	}

	key := d.Format("01-02")
	if _, ok := fixedHolidays[key]; ok {
		return false
	}
	if _, ok := movableHolidays(d.Year())[key]; ok {
		return false
	}

	return true
}

// Roll returns the most recent business day on or before d.
func Roll(d time.Time) time.Time {
	out := truncateToDate(d)
	for !IsBusinessDay(out) {
		out = out.AddDate(0, 0, -1)
	}
	return out
}

// Offset moves n business days from Roll(d): negative n walks backward,
// positive forward, zero is Roll itself.
func Offset(d time.Time, n int) time.Time {
	out := Roll(d)
	step := 1
	if n < 0 {
		step = -1
		n = -n
	}
	for n > 0 {
		out = out.AddDate(0, 0, step)
		if IsBusinessDay(out) {
			n--
		}
	}
	return out
}

// Count returns the number of business days in [start, end). A start after
// end yields zero.
func Count(start, end time.Time) int {
	d := truncateToDate(start)
	limit := truncateToDate(end)
	n := 0
	for d.Before(limit) {
		if IsBusinessDay(d) {
			n++
		}
		d = d.AddDate(0, 0, 1)
	}
	return n
}

// LastN returns the last n business days counting back from `from`
// (most recent first).
func LastN(n int, from time.Time) []time.Time {
	out := make([]time.Time, 0, n)
	d := truncateToDate(from)

	for len(out) < n {
		if IsBusinessDay(d) {
			out = append(out, d)
		}
		d = d.AddDate(0, 0, -1)
	}
	return out
}

// truncateToDate normalizes to UTC midnight of the calendar date t carries,
// so dates rolled from different zones compare equal.
func truncateToDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// easterSunday returns the date of Easter Sunday for a given year
// (Meeus/Jones/Butcher algorithm).
func easterSunday(year int) time.Time {
	a := year % 19
	b := year / 100
	c := year % 100
	d := b / 4
	e := b % 4
	f := (b + 8) / 25
	g := (b - f + 1) / 3
	h := (19*a + b - d - g + 15) % 30
	i := c / 4
	k := c % 4
	l := (32 + 2*e + 2*i - h - k) % 7
	m := (a + 11*h + 22*l) / 451
	month := (h + l - 7*m + 114) / 31
	day := ((h + l - 7*m + 114) % 31) + 1

	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
}
