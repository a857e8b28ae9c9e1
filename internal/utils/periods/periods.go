// Package periods classifies timestamps against rolling calendar windows
// anchored at an explicit reference instant. All functions are pure: "now"
// is always a parameter, never read from the wall clock.
package periods

import (
	"time"

	"github.com/coinkeep/coinkeep_backend/internal/core/domain"
)

// Calendar carries the locale conventions period containment depends on.
// The zero value is not usable; construct with NewCalendar.
type Calendar struct {
	location         *time.Location
	firstDayOfWeek   time.Weekday
	firstMonthOfYear time.Month
}

// NewCalendar builds a Calendar for the given timezone and locale
// conventions. A nil location defaults to UTC.
func NewCalendar(loc *time.Location, firstDayOfWeek time.Weekday, firstMonthOfYear time.Month) Calendar {
	if loc == nil {
		loc = time.UTC
	}
	if firstMonthOfYear < time.January || firstMonthOfYear > time.December {
		firstMonthOfYear = time.January
	}
	return Calendar{
		location:         loc,
		firstDayOfWeek:   firstDayOfWeek,
		firstMonthOfYear: firstMonthOfYear,
	}
}

// Contains reports whether t falls inside the period window that contains
// now: the same calendar day, week, month or year as now, respecting the
// calendar's timezone, first day of week and first month of year.
func (c Calendar) Contains(period domain.BudgetPeriod, t, now time.Time) bool {
	t = t.In(c.location)
	now = now.In(c.location)

	switch period {
	case domain.Daily:
		return sameDate(t, now)
	case domain.Weekly:
		return sameDate(c.weekStart(t), c.weekStart(now))
	case domain.Monthly:
		return t.Year() == now.Year() && t.Month() == now.Month()
	case domain.Yearly:
		return c.yearOf(t) == c.yearOf(now)
	default:
		return false
	}
}

func sameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// weekStart returns midnight of the most recent firstDayOfWeek on or
// before t.
func (c Calendar) weekStart(t time.Time) time.Time {
	daysBack := (int(t.Weekday()) - int(c.firstDayOfWeek) + 7) % 7
	y, m, d := t.AddDate(0, 0, -daysBack).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, c.location)
}

// yearOf returns the calendar (or fiscal) year t belongs to: months before
// firstMonthOfYear count towards the previous year.
func (c Calendar) yearOf(t time.Time) int {
	if t.Month() < c.firstMonthOfYear {
		return t.Year() - 1
	}
	return t.Year()
}
