// Package calendar converts dates between the Gregorian calendar and an
// approximated lunar (Hijri) calendar and projects upcoming observances.
//
// The lunar calendar here is a simplification: months alternate between 30
// and 29 days and a year averages 354.367 days. It is not an accurate
// religious calendar and results can differ from moon-sighting dates by a day
// or two.
package calendar

import (
	"errors"
	"fmt"
	"strings"
)

// System identifies a calendar system.
type System string

const (
	Gregorian System = "gregorian"
	Lunar     System = "hijri"
)

// Language identifies a display language for the name tables.
type Language string

const (
	English Language = "en"
	Arabic  Language = "ar"
)

var (
	// ErrInvalidMonth is returned when a month is outside 1-12.
	ErrInvalidMonth = errors.New("invalid month")

	// ErrInvalidDay is returned when a day is outside the month's range.
	ErrInvalidDay = errors.New("invalid day")

	// ErrInvalidSystem is returned for an unknown calendar system.
	ErrInvalidSystem = errors.New("invalid calendar system")

	// ErrInvalidLanguage is returned for an unknown language code.
	ErrInvalidLanguage = errors.New("invalid language")

	// ErrYearOutOfRange is returned for a year that cannot be written as
	// YYYY, which includes every lunar date before the epoch.
	ErrYearOutOfRange = errors.New("year out of range")
)

// Years representable in the YYYY-MM-DD form used by ParseDate and String.
const (
	MinYear = 1
	MaxYear = 9999
)

// Date is a calendar date in one of the supported systems.
// Dates are values; the With* methods return modified copies.
type Date struct {
	Day    int    `json:"day"`
	Month  int    `json:"month"`
	Year   int    `json:"year"`
	System System `json:"calendar"`
}

// NewDate returns a date in the given system. No validation is applied.
func NewDate(year, month, day int, sys System) Date {
	return Date{Day: day, Month: month, Year: year, System: sys}
}

// IsValid reports whether s is a known system.
func (s System) IsValid() bool {
	return s == Gregorian || s == Lunar
}

// Other returns the opposite calendar system.
func (s System) Other() System {
	if s == Lunar {
		return Gregorian
	}
	return Lunar
}

// ParseSystem parses a calendar system name. "lunar" is accepted as an
// alias for the Hijri calendar.
func ParseSystem(s string) (System, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "gregorian":
		return Gregorian, nil
	case "hijri", "lunar":
		return Lunar, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidSystem, s)
}

// IsValid reports whether l has name tables.
func (l Language) IsValid() bool {
	return l == English || l == Arabic
}

// ParseLanguage parses a language code.
func ParseLanguage(s string) (Language, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "en":
		return English, nil
	case "ar":
		return Arabic, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidLanguage, s)
}

// Validate checks d against the strict ranges: a known system, a month in
// 1-12 and a day in [1, MaxDayForMonth].
func Validate(d Date) error {
	if !d.System.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidSystem, d.System)
	}
	if d.Month < 1 || d.Month > 12 {
		return fmt.Errorf("%w: %d", ErrInvalidMonth, d.Month)
	}
	if maxDay := MaxDayForMonth(d.Month, d.Year, d.System); d.Day < 1 || d.Day > maxDay {
		return fmt.Errorf("%w: %d (month %d has %d days)", ErrInvalidDay, d.Day, d.Month, maxDay)
	}
	return nil
}

// CheckYear reports ErrYearOutOfRange when d.Year is outside
// [MinYear, MaxYear].
func CheckYear(d Date) error {
	if d.Year < MinYear || d.Year > MaxYear {
		return fmt.Errorf("%w: %s year %d is outside %d-%d", ErrYearOutOfRange, d.System, d.Year, MinYear, MaxYear)
	}
	return nil
}

// Clamp caps d.Day at the maximum for its month and year.
// The month must already be in range.
func Clamp(d Date) Date {
	if maxDay := MaxDayForMonth(d.Month, d.Year, d.System); d.Day > maxDay {
		d.Day = maxDay
	}
	return d
}

// WithDay returns a copy of d with the day replaced and clamped.
func (d Date) WithDay(day int) Date {
	d.Day = day
	return Clamp(d)
}

// WithMonth returns a copy of d with the month replaced and the day clamped.
func (d Date) WithMonth(month int) Date {
	d.Month = month
	return Clamp(d)
}

// WithYear returns a copy of d with the year replaced and the day clamped.
func (d Date) WithYear(year int) Date {
	d.Year = year
	return Clamp(d)
}

// String formats d as YYYY-MM-DD.
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}
