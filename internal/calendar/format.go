package calendar

import (
	"fmt"
	"time"
)

// ParseDate parses a YYYY-MM-DD string as a date in sys. Only the syntax is
// checked; use Validate for range checks. time.Parse is not used because it
// rejects lunar days such as 30 Safar.
func ParseDate(s string, sys System) (Date, error) {
	if len(s) != len("2006-01-02") || s[4] != '-' || s[7] != '-' {
		return Date{}, fmt.Errorf("invalid date %q: use YYYY-MM-DD", s)
	}

	var fields [3]int
	for i, part := range []string{s[0:4], s[5:7], s[8:10]} {
		for _, r := range part {
			if r < '0' || r > '9' {
				return Date{}, fmt.Errorf("invalid date %q: use YYYY-MM-DD", s)
			}
			fields[i] = fields[i]*10 + int(r-'0')
		}
	}

	return Date{Year: fields[0], Month: fields[1], Day: fields[2], System: sys}, nil
}

// FormatShort formats d as "<day> <month> <year>", e.g. "12 Rabi al-Awwal 1446".
func FormatShort(d Date, lang Language) string {
	return fmt.Sprintf("%d %s %d", d.Day, MonthName(d.Month, d.System, lang), d.Year)
}

// FormatLong formats d with its weekday, e.g. "Monday, 1 January 2024".
func FormatLong(d Date, lang Language) string {
	sep := ", "
	if lang == Arabic {
		sep = "، "
	}
	return WeekdayName(WeekdayOf(d), lang) + sep + FormatShort(d, lang)
}

// CurrentDateTime renders the banner showing now in both calendars plus the
// wall-clock time, e.g.
//
//	Hijri: 8 Jumada al-Awwal, 1448 | Gregorian: 18 October, 2026 | 03:04 PM
func CurrentDateTime(now time.Time, lang Language) string {
	greg := FromTime(now)
	hijri := GregorianToLunar(greg)

	hijriStr := fmt.Sprintf("%d %s, %d", hijri.Day, MonthName(hijri.Month, Lunar, lang), hijri.Year)

	if lang == Arabic {
		gregStr := fmt.Sprintf("%02d %s، %d", greg.Day, MonthName(greg.Month, Gregorian, lang), greg.Year)
		meridiem := "ص"
		if now.Hour() >= 12 {
			meridiem = "م"
		}
		return fmt.Sprintf("الهجري: %s | الميلادي: %s | %s %s", hijriStr, gregStr, now.Format("03:04"), meridiem)
	}

	gregStr := fmt.Sprintf("%02d %s, %d", greg.Day, MonthName(greg.Month, Gregorian, English), greg.Year)
	return fmt.Sprintf("Hijri: %s | Gregorian: %s | %s", hijriStr, gregStr, now.Format("03:04 PM"))
}
