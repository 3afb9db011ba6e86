package clock

import (
	"time"

	"interpreter-booking/internal/pkg/config"
	"interpreter-booking/internal/pkg/errs"
)

// Calendar holds the quiet-hour window and business-hours policy. All of its
// methods are pure functions of the given instant so they can be exercised
// directly in tests.
type Calendar struct {
	loc           *time.Location
	nightStart    int
	nightEnd      int
	businessOpen  int
	businessClose int
}

func NewCalendar(cfg config.CalendarConfig) (Calendar, error) {
	loc, err := time.LoadLocation(cfg.TimeZone)
	if err != nil {
		return Calendar{}, errs.Wrap(err, "invalid calendar timezone")
	}
	return Calendar{
		loc:           loc,
		nightStart:    cfg.NightStartHour,
		nightEnd:      cfg.NightEndHour,
		businessOpen:  cfg.BusinessOpenHour,
		businessClose: cfg.BusinessCloseHour,
	}, nil
}

func (c Calendar) Location() *time.Location {
	return c.loc
}

// IsNight reports whether t falls inside the quiet-hour window. The window
// crosses midnight (e.g. 22:00-06:00).
func (c Calendar) IsNight(t time.Time) bool {
	h := t.In(c.loc).Hour()
	if c.nightStart > c.nightEnd {
		return h >= c.nightStart || h < c.nightEnd
	}
	return h >= c.nightStart && h < c.nightEnd
}

// NextBusinessTime rolls t forward past the night window to the next working
// slot. Instants already inside business hours are returned unchanged.
func (c Calendar) NextBusinessTime(t time.Time) time.Time {
	lt := t.In(c.loc)
	open := time.Date(lt.Year(), lt.Month(), lt.Day(), c.businessOpen, 0, 0, 0, c.loc)

	switch {
	case c.IsNight(lt) && lt.Hour() >= c.nightStart:
		return open.AddDate(0, 0, 1)
	case lt.Before(open):
		return open
	case lt.Hour() >= c.businessClose:
		return open.AddDate(0, 0, 1)
	default:
		return lt
	}
}

// WillExpireAt computes the deadline after which an unaccepted booking times
// out. The ladder shortens the window for bookings created close to their
// due time:
//
//	due within 90 min  -> the due time itself
//	due within 24 h    -> created + 90 min
//	due within 72 h    -> created + 16 h
//	otherwise          -> due - 48 h
func WillExpireAt(due, created time.Time) time.Time {
	diff := due.Sub(created)

	switch {
	case diff <= 90*time.Minute:
		return due
	case diff <= 24*time.Hour:
		return created.Add(90 * time.Minute)
	case diff <= 72*time.Hour:
		return created.Add(16 * time.Hour)
	default:
		return due.Add(-48 * time.Hour)
	}
}
