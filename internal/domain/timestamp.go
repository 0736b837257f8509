package domain

import (
	"fmt"
	"time"
)

const (
	MinYear = 1990
	MaxYear = 2099
)

// Timestamp is a recording date-time recovered from a filename. It carries
// no zone; Time attaches one.
type Timestamp struct {
	Year   int
	Month  int
	Day    int
	Hour   int
	Minute int
	Second int
}

// Validate rejects out-of-range components. Values are never clamped.
func (t Timestamp) Validate() error {
	if t.Year < MinYear || t.Year > MaxYear {
		return fmt.Errorf("year %d outside %d-%d", t.Year, MinYear, MaxYear)
	}
	if t.Month < 1 || t.Month > 12 {
		return fmt.Errorf("month %d outside 1-12", t.Month)
	}
	if days := DaysIn(t.Year, t.Month); t.Day < 1 || t.Day > days {
		return fmt.Errorf("day %d outside 1-%d for %04d-%02d", t.Day, days, t.Year, t.Month)
	}
	if t.Hour < 0 || t.Hour > 23 {
		return fmt.Errorf("hour %d outside 0-23", t.Hour)
	}
	if t.Minute < 0 || t.Minute > 59 {
		return fmt.Errorf("minute %d outside 0-59", t.Minute)
	}
	if t.Second < 0 || t.Second > 59 {
		return fmt.Errorf("second %d outside 0-59", t.Second)
	}
	return nil
}

func (t Timestamp) IsZero() bool {
	return t == Timestamp{}
}

// Time returns the instant t denotes in loc.
func (t Timestamp) Time(loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	return time.Date(t.Year, time.Month(t.Month), t.Day, t.Hour, t.Minute, t.Second, 0, loc)
}

// ExifString formats t the way ExifTool expects date values.
func (t Timestamp) ExifString() string {
	return fmt.Sprintf("%04d:%02d:%02d %02d:%02d:%02d", t.Year, t.Month, t.Day, t.Hour, t.Minute, t.Second)
}

// ExifStringIn formats t in loc with its UTC offset, so that ExifTool stores
// the same instant Time(loc) denotes.
func (t Timestamp) ExifStringIn(loc *time.Location) string {
	return t.Time(loc).Format("2006:01:02 15:04:05-07:00")
}

// Digits formats t as YYYYMMDD_HHMMSS, the grouping most camera filenames use.
func (t Timestamp) Digits() string {
	return fmt.Sprintf("%04d%02d%02d_%02d%02d%02d", t.Year, t.Month, t.Day, t.Hour, t.Minute, t.Second)
}

func (t Timestamp) String() string {
	return fmt.Sprintf("%04d-%02d-%02d %02d:%02d:%02d", t.Year, t.Month, t.Day, t.Hour, t.Minute, t.Second)
}

func DaysIn(year, month int) int {
	switch month {
	case 2:
		if year%4 == 0 && (year%100 != 0 || year%400 == 0) {
			return 29
		}
		return 28
	case 4, 6, 9, 11:
		return 30
	default:
		return 31
	}
}
