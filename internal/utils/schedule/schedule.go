// Package schedule holds the pure calendar arithmetic behind recurring
// planned transactions: expanding a start date into its same-year series
// and computing the aligned first occurrence when a series rolls into a
// new year. Everything here is storage-free and deterministic.
package schedule

import (
	"time"

	"github.com/finoffice/finoffice_backend/internal/core/domain"
)

// Step advances a date by one recurrence interval.
func Step(d time.Time, unit domain.RepeatUnit, every int) time.Time {
	switch unit {
	case domain.RepeatWeekly:
		return d.AddDate(0, 0, 7*every)
	case domain.RepeatMonthly:
		return d.AddDate(0, every, 0)
	case domain.RepeatYearly:
		return d.AddDate(every, 0, 0)
	default:
		return d
	}
}

// ExpandDates returns the dates following start at start+every, start+2*every, ...
// in the given unit, stopping as soon as a stepped date leaves start's
// calendar year. The start date itself is not included. The result may be
// empty when the first step already crosses the year boundary.
//
// Stepping is cumulative: each date is derived from the previous one, so
// month-end overflow carries forward the way repeated AddDate calls do.
func ExpandDates(start time.Time, unit domain.RepeatUnit, every int) []time.Time {
	if unit == domain.RepeatNone || every <= 0 {
		return nil
	}
	var out []time.Time
	d := Step(start, unit, every)
	for d.Year() == start.Year() {
		out = append(out, d)
		d = Step(d, unit, every)
	}
	return out
}

// alignedDay returns the day-of-month, counted from a month whose first day
// falls on firstWeekday, of the first day carrying weekday. When the month
// opens on the wanted weekday the result is day 8, not day 1: series are
// aligned to the first full week, matching the historical roll-over
// behavior of this ledger.
func alignedDay(weekday, firstWeekday time.Weekday) int {
	diff := int(weekday) - int(firstWeekday)
	if diff > 0 {
		return diff + 1
	}
	return diff + 8
}

// FirstOccurrence computes the first date of a rolled-over series in year:
//
//   - weekly: the representative's weekday within week `every` of the year;
//   - monthly: the January-aligned weekday day number, in month `every`;
//   - yearly: the first occurrence of the representative's weekday within
//     the representative's month of the new year.
//
// rep is the last known occurrence from the prior year; its weekday (and,
// for yearly, its month) carry the alignment.
func FirstOccurrence(rep time.Time, unit domain.RepeatUnit, every int, year int) time.Time {
	janFirst := time.Date(year, time.January, 1, 0, 0, 0, 0, rep.Location())
	dayStart := alignedDay(rep.Weekday(), janFirst.Weekday())

	switch unit {
	case domain.RepeatWeekly:
		return time.Date(year, time.January, dayStart+(every-1)*7, 0, 0, 0, 0, rep.Location())
	case domain.RepeatMonthly:
		return time.Date(year, time.Month(every), dayStart, 0, 0, 0, 0, rep.Location())
	case domain.RepeatYearly:
		monthFirst := time.Date(year, rep.Month(), 1, 0, 0, 0, 0, rep.Location())
		return time.Date(year, rep.Month(), alignedDay(rep.Weekday(), monthFirst.Weekday()), 0, 0, 0, 0, rep.Location())
	default:
		return janFirst
	}
}
