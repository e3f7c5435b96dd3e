package calendar

import (
	"math"
	"time"
)

const (
	// MeanLunarYear is the average length of a lunar year in days.
	MeanLunarYear = 354.367

	secondsPerDay = 24 * 60 * 60
)

// Epoch is the Gregorian instant lunar offsets are measured from:
// 16 July 622, midnight UTC. It approximates 1 Muharram 1 AH.
var Epoch = time.Date(622, time.July, 16, 0, 0, 0, 0, time.UTC)

// DaysInGregorianMonth returns the number of days in a proleptic Gregorian
// month. Leap years follow the Gregorian rule: divisible by 4, except
// centuries not divisible by 400.
//
// The month must be in 1-12.
func DaysInGregorianMonth(month, year int) int {
	// Day 0 of the following month is the last day of this one.
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// lunarMonthLength is the fixed alternating pattern: odd months have 30
// days, even months 29.
func lunarMonthLength(month int) int {
	if month%2 == 1 {
		return 30
	}
	return 29
}

// MaxDayForMonth returns the number of days in a month of the given system.
//
// Lunar months ignore the year and follow the 30/29 pattern. Real lunar
// months depend on moon sighting; this is a known approximation.
func MaxDayForMonth(month, year int, sys System) int {
	if sys == Gregorian {
		return DaysInGregorianMonth(month, year)
	}
	return lunarMonthLength(month)
}

// GregorianToLunar converts a Gregorian date to the approximated lunar
// calendar.
//
// Days elapsed since Epoch are split into whole mean years and a fractional
// remainder, and the remainder is located in the 30/29 month pattern. The
// pattern sums to 354 days, so a remainder in [354, 354.367) matches no
// month; those dates land on 29 Dhu al-Hijjah of the same year.
func GregorianToLunar(d Date) Date {
	elapsed := float64(daysSinceEpoch(d))

	year := int(math.Floor(elapsed/MeanLunarYear)) + 1
	into := math.Mod(elapsed, MeanLunarYear)

	month, day := 12, lunarMonthLength(12)
	before := 0
	for m := 1; m <= 12; m++ {
		length := lunarMonthLength(m)
		if float64(before+length) > into {
			month = m
			day = int(math.Floor(into-float64(before))) + 1
			break
		}
		before += length
	}

	// Dates before the epoch produce a negative remainder.
	day = max(1, min(day, lunarMonthLength(month)))

	return Date{Day: day, Month: month, Year: year, System: Lunar}
}

// LunarToGregorian converts an approximated lunar date to Gregorian.
//
// This is not an exact inverse of GregorianToLunar: fractional days are
// truncated here and the month search rounds there, so a round trip can
// drift by a day.
func LunarToGregorian(d Date) Date {
	elapsed := float64(d.Year-1) * MeanLunarYear
	for m := 1; m < d.Month; m++ {
		elapsed += float64(lunarMonthLength(m))
	}
	elapsed += float64(d.Day)

	t := Epoch.AddDate(0, 0, int(math.Floor(elapsed)))
	return FromTime(t)
}

// Convert returns d expressed in the target system. Dates already in the
// target system are returned unchanged.
func Convert(d Date, to System) Date {
	if d.System == to {
		return d
	}
	if to == Lunar {
		return GregorianToLunar(d)
	}
	return LunarToGregorian(d)
}

// WeekdayOf returns the day of the week for d. Lunar dates are converted to
// Gregorian first.
func WeekdayOf(d Date) time.Weekday {
	if d.System == Lunar {
		d = LunarToGregorian(d)
	}
	return gregorianTime(d).Weekday()
}

// FromTime returns the Gregorian date of t in t's own location.
func FromTime(t time.Time) Date {
	year, month, day := t.Date()
	return Date{Day: day, Month: int(month), Year: year, System: Gregorian}
}

// Time returns midnight UTC of d. Lunar dates are converted first.
func (d Date) Time() time.Time {
	if d.System == Lunar {
		d = LunarToGregorian(d)
	}
	return gregorianTime(d)
}

func gregorianTime(d Date) time.Time {
	return time.Date(d.Year, time.Month(d.Month), d.Day, 0, 0, 0, 0, time.UTC)
}

// daysSinceEpoch counts whole days from Epoch to d. Unix seconds are used
// rather than time.Duration, which overflows after about 292 years.
func daysSinceEpoch(d Date) int64 {
	return (gregorianTime(d).Unix() - Epoch.Unix()) / secondsPerDay
}
