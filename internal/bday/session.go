package bday

import (
	"fmt"
	"time"
)

// Session is a daily trading window in the exchange's local time, expressed
// as minutes from midnight. DI1 futures trade roughly 09:00-18:00 BRT.
type Session struct {
	open  int
	close int
	loc   *time.Location
}

// NewSession parses open/close as "HH:MM" in the given location. A nil
// location defaults to America/Sao_Paulo, falling back to the host's local
// zone if the tzdata is unavailable.
func NewSession(open, close string, loc *time.Location) (Session, error) {
	if loc == nil {
		var err error
		loc, err = time.LoadLocation("America/Sao_Paulo")
		if err != nil {
			loc = time.Local
		}
	}
	o, err := parseClock(open)
	if err != nil {
		return Session{}, fmt.Errorf("invalid session open: %w", err)
	}
	c, err := parseClock(close)
	if err != nil {
		return Session{}, fmt.Errorf("invalid session close: %w", err)
	}
	if c <= o {
		return Session{}, fmt.Errorf("session close %s must be after open %s", close, open)
	}
	return Session{open: o, close: c, loc: loc}, nil
}

// InSession reports whether t falls inside the trading window of a business
// day. Outside the window (or on a non-business day) the market only has
// settled data, so there is nothing live to refresh.
func (s Session) InSession(t time.Time) bool {
	local := t.In(s.loc)
	if !IsBusinessDay(local) {
		return false
	}
	minutes := local.Hour()*60 + local.Minute()
	return minutes >= s.open && minutes < s.close
}

func parseClock(v string) (int, error) {
	parsed, err := time.Parse("15:04", v)
	if err != nil {
		return 0, err
	}
	return parsed.Hour()*60 + parsed.Minute(), nil
}
