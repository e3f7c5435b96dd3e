package calendar

import (
	"errors"
	"testing"
)

func TestClamp_OnMonthChange(t *testing.T) {
	tests := []struct {
		name  string
		start Date
		month int
		want  Date
	}{
		{"jan 31 to feb leap", NewDate(2024, 1, 31, Gregorian), 2, NewDate(2024, 2, 29, Gregorian)},
		{"jan 31 to feb", NewDate(2023, 1, 31, Gregorian), 2, NewDate(2023, 2, 28, Gregorian)},
		{"mar 31 to apr", NewDate(2024, 3, 31, Gregorian), 4, NewDate(2024, 4, 30, Gregorian)},
		{"short day unchanged", NewDate(2024, 3, 15, Gregorian), 2, NewDate(2024, 2, 15, Gregorian)},
		{"muharram 30 to safar", NewDate(1446, 1, 30, Lunar), 2, NewDate(1446, 2, 29, Lunar)},
		{"safar 29 to rabi", NewDate(1446, 2, 29, Lunar), 3, NewDate(1446, 3, 29, Lunar)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.start.WithMonth(tt.month)
			if got != tt.want {
				t.Errorf("WithMonth(%d) = %+v, want %+v", tt.month, got, tt.want)
			}
			if err := Validate(got); err != nil {
				t.Errorf("WithMonth(%d) produced invalid date: %v", tt.month, err)
			}
		})
	}
}

func TestClamp_OnYearChange(t *testing.T) {
	got := NewDate(2024, 2, 29, Gregorian).WithYear(2023)
	if want := NewDate(2023, 2, 28, Gregorian); got != want {
		t.Errorf("WithYear(2023) = %+v, want %+v", got, want)
	}
}

func TestClamp_EveryMonth(t *testing.T) {
	for _, sys := range []System{Gregorian, Lunar} {
		for year := 1999; year <= 2001; year++ {
			for m := 1; m <= 12; m++ {
				got := NewDate(year, 1, 31, sys).WithMonth(m)
				if want := MaxDayForMonth(m, year, sys); got.Day > want {
					t.Errorf("%s %d-%02d: day %d exceeds %d", sys, year, m, got.Day, want)
				}
			}
		}
	}
}

func TestWithDay(t *testing.T) {
	if got := NewDate(2024, 2, 1, Gregorian).WithDay(31); got.Day != 29 {
		t.Errorf("WithDay(31).Day = %d, want 29", got.Day)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		date    Date
		wantErr error
	}{
		{"valid gregorian", NewDate(2024, 2, 29, Gregorian), nil},
		{"valid lunar", NewDate(1446, 1, 30, Lunar), nil},
		{"month zero", NewDate(2024, 0, 1, Gregorian), ErrInvalidMonth},
		{"month thirteen", NewDate(1446, 13, 1, Lunar), ErrInvalidMonth},
		{"day zero", NewDate(2024, 1, 0, Gregorian), ErrInvalidDay},
		{"feb 29 non leap", NewDate(2023, 2, 29, Gregorian), ErrInvalidDay},
		{"safar 30", NewDate(1446, 2, 30, Lunar), ErrInvalidDay},
		{"unknown system", NewDate(2024, 1, 1, "julian"), ErrInvalidSystem},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.date)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("Validate() error = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestParseSystem(t *testing.T) {
	tests := []struct {
		in      string
		want    System
		wantErr bool
	}{
		{"gregorian", Gregorian, false},
		{"Gregorian", Gregorian, false},
		{"hijri", Lunar, false},
		{"lunar", Lunar, false},
		{" HIJRI ", Lunar, false},
		{"julian", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		got, err := ParseSystem(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseSystem(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if tt.wantErr && !errors.Is(err, ErrInvalidSystem) {
			t.Errorf("ParseSystem(%q) error = %v, want ErrInvalidSystem", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("ParseSystem(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestParseLanguage(t *testing.T) {
	if got, err := ParseLanguage("AR"); err != nil || got != Arabic {
		t.Errorf("ParseLanguage(AR) = %q, %v; want ar", got, err)
	}
	if got, err := ParseLanguage("en"); err != nil || got != English {
		t.Errorf("ParseLanguage(en) = %q, %v; want en", got, err)
	}
	if _, err := ParseLanguage("fr"); !errors.Is(err, ErrInvalidLanguage) {
		t.Errorf("ParseLanguage(fr) error = %v, want ErrInvalidLanguage", err)
	}
}

func TestSystem_Other(t *testing.T) {
	if Gregorian.Other() != Lunar || Lunar.Other() != Gregorian {
		t.Error("Other() does not swap systems")
	}
}

func TestCheckYear(t *testing.T) {
	tests := []struct {
		name    string
		d       Date
		wantErr bool
	}{
		{"epoch", NewDate(1, 1, 1, Lunar), false},
		{"last four digit year", NewDate(9999, 12, 31, Gregorian), false},
		{"before the epoch", GregorianToLunar(NewDate(500, 1, 1, Gregorian)), true},
		{"year zero", NewDate(0, 1, 1, Lunar), true},
		{"five digits", LunarToGregorian(NewDate(9999, 1, 1, Lunar)), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckYear(tt.d)
			if (err != nil) != tt.wantErr {
				t.Fatalf("CheckYear(%v) error = %v, wantErr %v", tt.d, err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrYearOutOfRange) {
				t.Errorf("CheckYear() error = %v, want ErrYearOutOfRange", err)
			}
		})
	}
}
