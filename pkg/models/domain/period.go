package domain

import (
	"fmt"
	"strings"
	"time"
)

const DateFormat = "2006-01-02"

// Period is a calculation interval. Both bounds are inclusive dates.
type Period struct {
	Start time.Time
	End   time.Time
}

func (p Period) Validate() error {
	if p.Start.IsZero() || p.End.IsZero() {
		return ValidationError("period start and end are required")
	}
	if p.Start.After(p.End) {
		return ValidationError("period start %s is after end %s",
			p.Start.Format(DateFormat), p.End.Format(DateFormat))
	}
	return nil
}

func (p Period) String() string {
	return fmt.Sprintf("%s..%s", p.Start.Format(DateFormat), p.End.Format(DateFormat))
}

// MonthPeriod returns the full calendar month containing the given date.
func MonthPeriod(year int, month time.Month) Period {
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	return Period{
		Start: start,
		End:   start.AddDate(0, 1, -1),
	}
}

// ParseMonth accepts "YYYY-MM" or the shortcut "current" and returns the
// matching calendar month.
func ParseMonth(value string, now time.Time) (Period, error) {
	if strings.EqualFold(value, "current") {
		return MonthPeriod(now.UTC().Year(), now.UTC().Month()), nil
	}
	t, err := time.Parse("2006-01", value)
	if err != nil {
		return Period{}, ValidationError("invalid period %q, expected YYYY-MM or 'current'", value)
	}
	return MonthPeriod(t.Year(), t.Month()), nil
}

// ParseDateRange builds a period from two YYYY-MM-DD strings.
func ParseDateRange(from, to string) (Period, error) {
	start, err := time.Parse(DateFormat, from)
	if err != nil {
		return Period{}, ValidationError("invalid 'from' date %q, expected YYYY-MM-DD", from)
	}
	end, err := time.Parse(DateFormat, to)
	if err != nil {
		return Period{}, ValidationError("invalid 'to' date %q, expected YYYY-MM-DD", to)
	}
	p := Period{Start: start, End: end}
	if err := p.Validate(); err != nil {
		return Period{}, err
	}
	return p, nil
}
