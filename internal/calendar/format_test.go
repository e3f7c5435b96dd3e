package calendar

import (
	"testing"
	"time"
)

func TestMonthName(t *testing.T) {
	tests := []struct {
		month int
		sys   System
		lang  Language
		want  string
	}{
		{1, Gregorian, English, "January"},
		{12, Gregorian, Arabic, "ديسمبر"},
		{9, Lunar, English, "Ramadan"},
		{12, Lunar, English, "Dhu al-Hijjah"},
		{1, Lunar, Arabic, "محرم"},
		{0, Gregorian, English, ""},
		{13, Lunar, English, ""},
		{1, Lunar, "fr", ""},
		{1, "julian", English, ""},
	}

	for _, tt := range tests {
		if got := MonthName(tt.month, tt.sys, tt.lang); got != tt.want {
			t.Errorf("MonthName(%d, %s, %s) = %q, want %q", tt.month, tt.sys, tt.lang, got, tt.want)
		}
	}
}

func TestWeekdayName(t *testing.T) {
	if got := WeekdayName(time.Monday, English); got != "Monday" {
		t.Errorf("WeekdayName(Monday, en) = %q", got)
	}
	if got := WeekdayName(time.Friday, Arabic); got != "الجمعة" {
		t.Errorf("WeekdayName(Friday, ar) = %q", got)
	}
	if got := WeekdayName(time.Weekday(9), English); got != "" {
		t.Errorf("WeekdayName(9, en) = %q, want empty", got)
	}
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		in      string
		sys     System
		want    Date
		wantErr bool
	}{
		{"2024-01-01", Gregorian, NewDate(2024, 1, 1, Gregorian), false},
		{"1446-02-30", Lunar, NewDate(1446, 2, 30, Lunar), false},
		{"0622-07-16", Gregorian, NewDate(622, 7, 16, Gregorian), false},
		{"2024-1-01", Gregorian, Date{}, true},
		{"2024-01- 1", Gregorian, Date{}, true},
		{"2024/01/01", Gregorian, Date{}, true},
		{"2024-01-01x", Gregorian, Date{}, true},
		{"abcd-ef-gh", Gregorian, Date{}, true},
		{"", Gregorian, Date{}, true},
		{"9999-12-31", Gregorian, NewDate(9999, 12, 31, Gregorian), false},
		{"0001-01-01", Lunar, NewDate(1, 1, 1, Lunar), false},
		{"0090-09-08", Lunar, NewDate(90, 9, 8, Lunar), false},
		{"-126-01-01", Lunar, Date{}, true},
		{"+126-01-01", Lunar, Date{}, true},
	}

	for _, tt := range tests {
		got, err := ParseDate(tt.in, tt.sys)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseDate(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseDate(%q) = %+v, want %+v", tt.in, got, tt.want)
		}
	}
}

func TestDateString(t *testing.T) {
	if got := NewDate(622, 7, 6, Gregorian).String(); got != "0622-07-06" {
		t.Errorf("String() = %q, want %q", got, "0622-07-06")
	}
}

func TestFormatLong(t *testing.T) {
	tests := []struct {
		date Date
		lang Language
		want string
	}{
		{NewDate(2024, 1, 1, Gregorian), English, "Monday, 1 January 2024"},
		{NewDate(1446, 1, 1, Lunar), English, "Saturday, 1 Muharram 1446"},
		{NewDate(2024, 1, 1, Gregorian), Arabic, "الاثنين، 1 يناير 2024"},
	}

	for _, tt := range tests {
		if got := FormatLong(tt.date, tt.lang); got != tt.want {
			t.Errorf("FormatLong(%v, %s) = %q, want %q", tt.date, tt.lang, got, tt.want)
		}
	}
}

func TestFormatShort(t *testing.T) {
	if got := FormatShort(NewDate(1446, 3, 12, Lunar), English); got != "12 Rabi al-Awwal 1446" {
		t.Errorf("FormatShort() = %q", got)
	}
}

func TestCurrentDateTime(t *testing.T) {
	now := time.Date(2024, time.January, 1, 15, 4, 0, 0, time.UTC)

	want := "Hijri: 21 Jumada al-Thani, 1445 | Gregorian: 01 January, 2024 | 03:04 PM"
	if got := CurrentDateTime(now, English); got != want {
		t.Errorf("CurrentDateTime(en) = %q, want %q", got, want)
	}

	wantAr := "الهجري: 21 جمادى الآخرة, 1445 | الميلادي: 01 يناير، 2024 | 03:04 م"
	if got := CurrentDateTime(now, Arabic); got != wantAr {
		t.Errorf("CurrentDateTime(ar) = %q, want %q", got, wantAr)
	}

	morning := time.Date(2024, time.January, 1, 9, 5, 0, 0, time.UTC)
	if got := CurrentDateTime(morning, Arabic); got[len(got)-len("09:05 ص"):] != "09:05 ص" {
		t.Errorf("CurrentDateTime(ar, morning) = %q, want suffix %q", got, "09:05 ص")
	}
}
