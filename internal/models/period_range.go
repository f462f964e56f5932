package models

import (
	"errors"
	"fmt"
	"time"
)

const DayLayout = "2006-01-02"

var (
	ErrDateRequired      = errors.New("the date parameter is required")
	ErrInvalidDate       = errors.New(`the date parameter is invalid, accepted formats are "YYYY-MM-DD" and RFC3339`)
	ErrDateNotInPast     = errors.New("the date parameter must be before today")
	ErrPeriodNotComplete = errors.New("the date range must end before today")
	ErrRangeReversed     = errors.New("the start date must not be after the end date")
)

// PeriodRange is a closed millisecond interval [Start, End] aligned to a
// day, ISO week or calendar month. Bounds are calendar dates at UTC midnight,
// the frame the recorder writes client-local activity times in.
type PeriodRange struct {
	Type  PeriodType
	Start time.Time
	End   time.Time
}

func (r *PeriodRange) StartMillis() int64 { return r.Start.UnixMilli() }
func (r *PeriodRange) EndMillis() int64 { return r.End.UnixMilli() }

// Key is the canonical aggregate record name for the period.
func (r *PeriodRange) Key() string { return r.Type.FormatKey(r.Start) }

// Days is the number of calendar days the period covers.
func (r *PeriodRange) Days() int {
	return int(r.End.Sub(r.Start)/(24*time.Hour)) + 1
}

func (r *PeriodRange) StartDay() string { return r.Start.Format(DayLayout) }
func (r *PeriodRange) EndDay() string { return r.End.Format(DayLayout) }

// ParseDate parses a calendar date and returns it as UTC midnight.
// For RFC3339 input the wall-clock date of the given offset is kept.
func ParseDate(date string) (time.Time, error) {
	if date == "" {
		return time.Time{}, ErrDateRequired
	}
	if t, err := time.ParseInLocation(DayLayout, date, time.UTC); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, date)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return StartOfDay(t), nil
}

// StartOfDay returns the wall-clock date of t as UTC midnight.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Today returns the current calendar date in loc as UTC midnight.
func Today(now time.Time, loc *time.Location) time.Time {
	return StartOfDay(now.In(loc))
}

// Yesterday returns the previous calendar day in loc as YYYY-MM-DD.
func Yesterday(now time.Time, loc *time.Location) string {
	return Today(now, loc).AddDate(0, 0, -1).Format(DayLayout)
}

// NormalizePeriod maps a date to the complete period of the given type that
// contains it. The period must have ended before the current day in loc
// starts.
func NormalizePeriod(date string, periodType PeriodType, now time.Time, loc *time.Location) (*PeriodRange, error) {
	day, err := ParseDate(date)
	if err != nil {
		return nil, err
	}
	today := Today(now, loc)
	if !day.Before(today) {
		return nil, ErrDateNotInPast
	}

	var start, next time.Time
	switch periodType {
	case PeriodDaily:
		start = day
		next = start.AddDate(0, 0, 1)
	case PeriodWeekly:
		offset := (int(day.Weekday()) + 6) % 7
		start = day.AddDate(0, 0, -offset)
		next = start.AddDate(0, 0, 7)
	case PeriodMonthly:
		start = time.Date(day.Year(), day.Month(), 1, 0, 0, 0, 0, time.UTC)
		next = start.AddDate(0, 1, 0)
	default:
		return nil, fmt.Errorf("unknown period type %q", periodType)
	}
	end := next.Add(-time.Millisecond)

	if !end.Before(today) {
		return nil, fmt.Errorf("%w, date range ends %s", ErrPeriodNotComplete, end.Format(DayLayout))
	}
	return &PeriodRange{Type: periodType, Start: start, End: end}, nil
}

// NormalizeDayRange validates an inclusive custom range of whole days. Both
// dates must be before today.
func NormalizeDayRange(startDate, endDate string, now time.Time, loc *time.Location) (*PeriodRange, error) {
	start, err := ParseDate(startDate)
	if err != nil {
		return nil, fmt.Errorf("start: %w", err)
	}
	end, err := ParseDate(endDate)
	if err != nil {
		return nil, fmt.Errorf("end: %w", err)
	}
	today := Today(now, loc)
	if !start.Before(today) || !end.Before(today) {
		return nil, ErrDateNotInPast
	}
	if end.Before(start) {
		return nil, ErrRangeReversed
	}
	return &PeriodRange{Type: PeriodDaily, Start: start, End: end.AddDate(0, 0, 1).Add(-time.Millisecond)}, nil
}
