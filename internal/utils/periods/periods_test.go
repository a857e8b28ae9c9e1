package periods

import (
	"testing"
	"time"

	"github.com/coinkeep/coinkeep_backend/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func utcCalendar() Calendar {
	return NewCalendar(time.UTC, time.Monday, time.January)
}

func TestContains_Daily(t *testing.T) {
	c := utcCalendar()
	now := time.Date(2024, time.March, 15, 13, 45, 0, 0, time.UTC)

	assert.True(t, c.Contains(domain.Daily, time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC), now))
	assert.True(t, c.Contains(domain.Daily, time.Date(2024, time.March, 15, 23, 59, 59, 0, time.UTC), now))

	// Midnight boundaries one day either side are out.
	assert.False(t, c.Contains(domain.Daily, time.Date(2024, time.March, 16, 0, 0, 0, 0, time.UTC), now))
	assert.False(t, c.Contains(domain.Daily, time.Date(2024, time.March, 14, 0, 0, 0, 0, time.UTC), now))
}

func TestContains_Weekly(t *testing.T) {
	c := utcCalendar()
	// 2024-03-15 is a Friday; Monday-start week runs Mar 11..17.
	now := time.Date(2024, time.March, 15, 12, 0, 0, 0, time.UTC)

	assert.True(t, c.Contains(domain.Weekly, time.Date(2024, time.March, 11, 0, 0, 0, 0, time.UTC), now))
	assert.True(t, c.Contains(domain.Weekly, time.Date(2024, time.March, 17, 23, 0, 0, 0, time.UTC), now))
	assert.False(t, c.Contains(domain.Weekly, time.Date(2024, time.March, 10, 23, 0, 0, 0, time.UTC), now))
	assert.False(t, c.Contains(domain.Weekly, time.Date(2024, time.March, 18, 0, 0, 0, 0, time.UTC), now))
}

func TestContains_WeeklyRespectsFirstDayOfWeek(t *testing.T) {
	// Sunday-start calendar: week of Friday 2024-03-15 runs Mar 10..16.
	c := NewCalendar(time.UTC, time.Sunday, time.January)
	now := time.Date(2024, time.March, 15, 12, 0, 0, 0, time.UTC)

	assert.True(t, c.Contains(domain.Weekly, time.Date(2024, time.March, 10, 0, 0, 0, 0, time.UTC), now))
	assert.False(t, c.Contains(domain.Weekly, time.Date(2024, time.March, 17, 0, 0, 0, 0, time.UTC), now))
}

func TestContains_Monthly(t *testing.T) {
	c := utcCalendar()
	now := time.Date(2024, time.February, 10, 0, 0, 0, 0, time.UTC)

	assert.True(t, c.Contains(domain.Monthly, time.Date(2024, time.February, 29, 0, 0, 0, 0, time.UTC), now))
	assert.False(t, c.Contains(domain.Monthly, time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC), now))
	// Same month of a different year does not count.
	assert.False(t, c.Contains(domain.Monthly, time.Date(2023, time.February, 10, 0, 0, 0, 0, time.UTC), now))
}

func TestContains_Yearly(t *testing.T) {
	c := utcCalendar()
	now := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)

	assert.True(t, c.Contains(domain.Yearly, time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC), now))
	assert.False(t, c.Contains(domain.Yearly, time.Date(2023, time.December, 31, 23, 59, 0, 0, time.UTC), now))
}

func TestContains_FiscalYearStart(t *testing.T) {
	// April-start year: March 2024 belongs to fiscal 2023, April 2024 to 2024.
	c := NewCalendar(time.UTC, time.Monday, time.April)
	now := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)

	assert.True(t, c.Contains(domain.Yearly, time.Date(2025, time.March, 31, 0, 0, 0, 0, time.UTC), now))
	assert.False(t, c.Contains(domain.Yearly, time.Date(2024, time.March, 31, 0, 0, 0, 0, time.UTC), now))
}

func TestContains_TimezoneAware(t *testing.T) {
	// 23:30 UTC on Mar 15 is already Mar 16 in UTC+2.
	loc := time.FixedZone("UTC+2", 2*60*60)
	c := NewCalendar(loc, time.Monday, time.January)
	now := time.Date(2024, time.March, 16, 1, 0, 0, 0, loc)

	assert.True(t, c.Contains(domain.Daily, time.Date(2024, time.March, 15, 23, 30, 0, 0, time.UTC), now))
}

func TestContains_StableUnderRepetition(t *testing.T) {
	c := utcCalendar()
	now := time.Date(2024, time.March, 15, 12, 0, 0, 0, time.UTC)
	ts := time.Date(2024, time.March, 15, 8, 0, 0, 0, time.UTC)

	first := c.Contains(domain.Daily, ts, now)
	for i := 0; i < 100; i++ {
		assert.Equal(t, first, c.Contains(domain.Daily, ts, now))
	}
}

func TestContains_UnknownPeriod(t *testing.T) {
	c := utcCalendar()
	now := time.Now()
	assert.False(t, c.Contains(domain.BudgetPeriod("QUARTERLY"), now, now))
}
