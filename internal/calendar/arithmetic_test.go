package calendar

import (
	"testing"
	"time"
)

func TestDaysInGregorianMonth(t *testing.T) {
	tests := []struct {
		month, year int
		want        int
	}{
		{2, 2024, 29},
		{2, 2023, 28},
		{2, 1900, 28}, // century, not divisible by 400
		{2, 2000, 29}, // divisible by 400
		{4, 2024, 30},
		{1, 2024, 31},
		{12, 2023, 31},
		{9, 1999, 30},
	}

	for _, tt := range tests {
		if got := DaysInGregorianMonth(tt.month, tt.year); got != tt.want {
			t.Errorf("DaysInGregorianMonth(%d, %d) = %d, want %d", tt.month, tt.year, got, tt.want)
		}
	}
}

func TestMaxDayForMonth_Lunar(t *testing.T) {
	for m := 1; m <= 12; m++ {
		want := 29
		if m%2 == 1 {
			want = 30
		}
		for _, year := range []int{1, 1445, 1446, 1500} {
			if got := MaxDayForMonth(m, year, Lunar); got != want {
				t.Errorf("MaxDayForMonth(%d, %d, Lunar) = %d, want %d", m, year, got, want)
			}
		}
	}
}

func TestMaxDayForMonth_Gregorian(t *testing.T) {
	for year := 1900; year <= 2100; year++ {
		for m := 1; m <= 12; m++ {
			if got, want := MaxDayForMonth(m, year, Gregorian), DaysInGregorianMonth(m, year); got != want {
				t.Fatalf("MaxDayForMonth(%d, %d, Gregorian) = %d, want %d", m, year, got, want)
			}
		}
	}
}

func TestGregorianToLunar(t *testing.T) {
	tests := []struct {
		name string
		in   Date
		want Date
	}{
		{"epoch", NewDate(622, 7, 16, Gregorian), NewDate(1, 1, 1, Lunar)},
		{"day after epoch", NewDate(622, 7, 17, Gregorian), NewDate(1, 1, 2, Lunar)},
		{"new year 2024", NewDate(2024, 1, 1, Gregorian), NewDate(1445, 6, 21, Lunar)},
		{"leap day", NewDate(2024, 2, 29, Gregorian), NewDate(1445, 8, 21, Lunar)},
		{"lunar new year 1446", NewDate(2024, 7, 6, Gregorian), NewDate(1446, 1, 1, Lunar)},
		{"millennium", NewDate(2000, 1, 1, Gregorian), NewDate(1420, 9, 26, Lunar)},
		{"range start", NewDate(1900, 1, 1, Gregorian), NewDate(1317, 9, 2, Lunar)},
		{"range end", NewDate(2100, 12, 31, Gregorian), NewDate(1524, 11, 2, Lunar)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GregorianToLunar(tt.in); got != tt.want {
				t.Errorf("GregorianToLunar(%v) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
}

// Remainders in [354, 354.367) fall past the 30/29 pattern and resolve to
// the last day of the year.
func TestGregorianToLunar_YearTailGap(t *testing.T) {
	got := GregorianToLunar(NewDate(2000, 4, 3, Gregorian))
	if want := NewDate(1420, 12, 29, Lunar); got != want {
		t.Errorf("GregorianToLunar(2000-04-03) = %+v, want %+v", got, want)
	}

	next := GregorianToLunar(NewDate(2000, 4, 4, Gregorian))
	if want := NewDate(1421, 1, 1, Lunar); next != want {
		t.Errorf("GregorianToLunar(2000-04-04) = %+v, want %+v", next, want)
	}
}

func TestGregorianToLunar_AlwaysValid(t *testing.T) {
	start := time.Date(1900, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2100, time.December, 31, 0, 0, 0, 0, time.UTC)

	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		lunar := GregorianToLunar(FromTime(d))
		if err := Validate(lunar); err != nil {
			t.Fatalf("GregorianToLunar(%s) = %+v: %v", d.Format("2006-01-02"), lunar, err)
		}
	}
}

func TestGregorianToLunar_BeforeEpoch(t *testing.T) {
	got := GregorianToLunar(NewDate(600, 1, 1, Gregorian))
	if err := Validate(got); err != nil {
		t.Errorf("GregorianToLunar(600-01-01) = %+v: %v", got, err)
	}
	if got.Year > 0 {
		t.Errorf("GregorianToLunar(600-01-01).Year = %d, want <= 0", got.Year)
	}
}

func TestLunarToGregorian(t *testing.T) {
	tests := []struct {
		in   Date
		want Date
	}{
		{NewDate(1, 1, 1, Lunar), NewDate(622, 7, 17, Gregorian)},
		{NewDate(1446, 1, 1, Lunar), NewDate(2024, 7, 6, Gregorian)},
		{NewDate(1445, 9, 1, Lunar), NewDate(2024, 3, 9, Gregorian)},
		{NewDate(1446, 9, 27, Lunar), NewDate(2025, 3, 25, Gregorian)},
		{NewDate(1446, 10, 1, Lunar), NewDate(2025, 3, 29, Gregorian)},
		{NewDate(1447, 1, 1, Lunar), NewDate(2025, 6, 25, Gregorian)},
	}

	for _, tt := range tests {
		if got := LunarToGregorian(tt.in); got != tt.want {
			t.Errorf("LunarToGregorian(%v) = %+v, want %+v", tt.in, got, tt.want)
		}
	}
}

// The conversions are approximate inverses. Every day from 1900 through
// 2100 drifts by at most one day; the bound asserted leaves one day of slack.
func TestRoundTripDrift(t *testing.T) {
	const bound = 2

	start := time.Date(1900, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2100, time.December, 31, 0, 0, 0, 0, time.UTC)

	maxDrift, exact, total := 0, 0, 0
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		back := LunarToGregorian(GregorianToLunar(FromTime(d)))
		drift := int(back.Time().Sub(d).Hours() / 24)
		if drift < 0 {
			drift = -drift
		}
		if drift > bound {
			t.Fatalf("round trip of %s landed on %s (%d days)", d.Format("2006-01-02"), back, drift)
		}
		if drift == 0 {
			exact++
		}
		maxDrift = max(maxDrift, drift)
		total++
	}

	t.Logf("round trip: max drift %d days, %d/%d exact", maxDrift, exact, total)
}

func TestRoundTripDrift_Sample(t *testing.T) {
	// 100 dates spread evenly over 1900-2100.
	start := time.Date(1900, time.January, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 100; i++ {
		d := start.AddDate(0, 0, i*733)
		back := LunarToGregorian(GregorianToLunar(FromTime(d))).Time()
		if diff := back.Sub(d); diff > 2*24*time.Hour || diff < -2*24*time.Hour {
			t.Errorf("round trip of %s landed on %s", d.Format("2006-01-02"), back.Format("2006-01-02"))
		}
	}
}

func TestWeekdayOf(t *testing.T) {
	tests := []struct {
		name string
		in   Date
		want time.Weekday
	}{
		{"anchor", NewDate(2024, 1, 1, Gregorian), time.Monday},
		{"leap day", NewDate(2024, 2, 29, Gregorian), time.Thursday},
		{"y2k", NewDate(2000, 1, 1, Gregorian), time.Saturday},
		{"lunar via gregorian", NewDate(1446, 1, 1, Lunar), time.Saturday},
		{"lunar eid", NewDate(1446, 10, 1, Lunar), time.Saturday},
		{"lunar laylat al-qadr", NewDate(1446, 9, 27, Lunar), time.Tuesday},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := WeekdayOf(tt.in); got != tt.want {
				t.Errorf("WeekdayOf(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestConvert(t *testing.T) {
	g := NewDate(2024, 7, 6, Gregorian)
	l := NewDate(1446, 1, 1, Lunar)

	if got := Convert(g, Lunar); got != l {
		t.Errorf("Convert(%v, Lunar) = %+v, want %+v", g, got, l)
	}
	if got := Convert(l, Gregorian); got != g {
		t.Errorf("Convert(%v, Gregorian) = %+v, want %+v", l, got, g)
	}
	if got := Convert(g, Gregorian); got != g {
		t.Errorf("Convert(%v, Gregorian) = %+v, want unchanged", g, got)
	}
}

func TestDateTime(t *testing.T) {
	want := time.Date(2024, time.July, 6, 0, 0, 0, 0, time.UTC)

	if got := NewDate(2024, 7, 6, Gregorian).Time(); !got.Equal(want) {
		t.Errorf("Gregorian Time() = %v, want %v", got, want)
	}
	if got := NewDate(1446, 1, 1, Lunar).Time(); !got.Equal(want) {
		t.Errorf("Lunar Time() = %v, want %v", got, want)
	}
}

func TestFromTime_UsesLocation(t *testing.T) {
	// 23:30 UTC on Jan 1 is already Jan 2 in UTC+3.
	loc := time.FixedZone("AST", 3*60*60)
	instant := time.Date(2024, time.January, 1, 23, 30, 0, 0, time.UTC).In(loc)

	if got, want := FromTime(instant), NewDate(2024, 1, 2, Gregorian); got != want {
		t.Errorf("FromTime() = %+v, want %+v", got, want)
	}
}
