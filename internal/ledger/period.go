package ledger

import "time"

// PeriodToken names a relative reporting window selected by the caller.
type PeriodToken string

const (
	PeriodCurrentYear  PeriodToken = "currentYear"
	PeriodLastYear     PeriodToken = "lastYear"
	PeriodLast2Years   PeriodToken = "last2Years"
	PeriodLast3Years   PeriodToken = "last3Years"
	PeriodCurrentMonth PeriodToken = "currentMonth"
	PeriodLastMonth    PeriodToken = "lastMonth"
	PeriodLast3Months  PeriodToken = "last3Months"
	PeriodLast6Months  PeriodToken = "last6Months"
	PeriodAll          PeriodToken = "all"
)

// DateRange is a closed [Start, End] interval used to filter journal lines
// by transaction date.
type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Contains reports whether t falls inside the closed range.
func (r DateRange) Contains(t time.Time) bool {
	return !t.Before(r.Start) && !t.After(r.End)
}

// ResolvePeriod maps a period token and a reference instant to a calendar
// date range. Callers supply now explicitly so results stay deterministic.
// Unknown tokens fall back to PeriodAll.
func ResolvePeriod(token PeriodToken, now time.Time) DateRange {
	year, month, _ := now.Date()
	loc := now.Location()
	switch token {
	case PeriodCurrentYear:
		return yearRange(year, year, loc)
	case PeriodLastYear:
		return yearRange(year-1, year-1, loc)
	case PeriodLast2Years:
		return yearRange(year-2, year, loc)
	case PeriodLast3Years:
		return yearRange(year-3, year, loc)
	case PeriodCurrentMonth:
		return monthRange(year, month, year, month, loc)
	case PeriodLastMonth:
		start := time.Date(year, month, 1, 0, 0, 0, 0, loc).AddDate(0, -1, 0)
		return monthRange(start.Year(), start.Month(), start.Year(), start.Month(), loc)
	case PeriodLast3Months:
		start := time.Date(year, month, 1, 0, 0, 0, 0, loc).AddDate(0, -3, 0)
		return monthRange(start.Year(), start.Month(), year, month, loc)
	case PeriodLast6Months:
		start := time.Date(year, month, 1, 0, 0, 0, 0, loc).AddDate(0, -6, 0)
		return monthRange(start.Year(), start.Month(), year, month, loc)
	}
	return DateRange{Start: time.Time{}, End: now}
}

func yearRange(startYear, endYear int, loc *time.Location) DateRange {
	return DateRange{
		Start: time.Date(startYear, time.January, 1, 0, 0, 0, 0, loc),
		End:   time.Date(endYear, time.December, 31, 0, 0, 0, 0, loc),
	}
}

func monthRange(startYear int, startMonth time.Month, endYear int, endMonth time.Month, loc *time.Location) DateRange {
	return DateRange{
		Start: time.Date(startYear, startMonth, 1, 0, 0, 0, 0, loc),
		End:   time.Date(endYear, endMonth, 1, 0, 0, 0, 0, loc).AddDate(0, 1, -1),
	}
}
