package domain

import "time"

const DateLayout = "2006-01-02"

// DateOf truncates t to its calendar day in UTC.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, err
	}

	return DateOf(t), nil
}

// DateRange is the half-open interval [Start, End).
type DateRange struct {
	Start time.Time
	End   time.Time
}

func NewDateRange(start, end time.Time) DateRange {
	return DateRange{Start: DateOf(start), End: DateOf(end)}
}

// DayRange covers the single day d.
func DayRange(d time.Time) DateRange {
	day := DateOf(d)
	return DateRange{Start: day, End: day.AddDate(0, 0, 1)}
}

func (r DateRange) IsValid() bool {
	return !r.Start.IsZero() && !r.End.IsZero() && r.End.After(r.Start)
}

func (r DateRange) Overlaps(start, end time.Time) bool {
	return start.Before(r.End) && end.After(r.Start)
}

func (r DateRange) Contains(d time.Time) bool {
	day := DateOf(d)
	return !day.Before(r.Start) && day.Before(r.End)
}
