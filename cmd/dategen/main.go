package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/zapponejosh/hijri-calendar-api/internal/calendar"
)

// This script prints the approximated layout of one lunar year: month
// lengths, where each month starts in the Gregorian calendar, the
// observances that fall in it, and a CSV of every day for use as test data.

func main() {
	year := flag.Int("year", 1446, "Lunar (Hijri) year to generate dates for")
	langFlag := flag.String("lang", "en", "Name language: en or ar")
	withDays := flag.Bool("days", true, "Print the per-day CSV")
	flag.Parse()

	lang, err := calendar.ParseLanguage(*langFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	if *year < 1 {
		fmt.Fprintln(os.Stderr, "error: year must be at least 1")
		os.Exit(1)
	}

	first := calendar.LunarToGregorian(calendar.NewDate(*year, 1, 1, calendar.Lunar))
	last := calendar.LunarToGregorian(calendar.NewDate(*year, 12, calendar.MaxDayForMonth(12, *year, calendar.Lunar), calendar.Lunar))

	fmt.Printf("=== Lunar Year %d ===\n\n", *year)
	fmt.Printf("  Starts:  %s (%s)\n", first, calendar.WeekdayName(calendar.WeekdayOf(first), lang))
	fmt.Printf("  Ends:    %s (%s)\n", last, calendar.WeekdayName(calendar.WeekdayOf(last), lang))
	fmt.Println()

	// ==========================================================================
	// MONTHS
	// ==========================================================================
	fmt.Println("Months:")
	total := 0
	for m := 1; m <= 12; m++ {
		days := calendar.MaxDayForMonth(m, *year, calendar.Lunar)
		start := calendar.LunarToGregorian(calendar.NewDate(*year, m, 1, calendar.Lunar))
		total += days
		fmt.Printf("  %2d  %-18s %2d days  starts %s %s\n",
			m, calendar.MonthName(m, calendar.Lunar, lang), days,
			start, calendar.WeekdayName(calendar.WeekdayOf(start), lang),
		)
	}
	fmt.Printf("  %-22s %d days\n", "TOTAL:", total)
	fmt.Println()

	// ==========================================================================
	// OBSERVANCES
	// ==========================================================================
	fmt.Println("Observances:")
	start := calendar.NewDate(*year, 1, 1, calendar.Lunar)
	for _, e := range calendar.UpcomingEvents(start, len(calendar.Observances())) {
		fmt.Printf("  %-22s %-24s %s\n",
			e.Name(lang),
			calendar.FormatShort(e.Lunar, lang),
			calendar.FormatLong(e.Gregorian, lang),
		)
	}
	fmt.Println()

	if !*withDays {
		return
	}

	// ==========================================================================
	// OUTPUT
	// ==========================================================================
	fmt.Println("=== All Days ===")
	fmt.Println("Hijri,Gregorian,Weekday,Round Trip")
	drifted := 0
	for m := 1; m <= 12; m++ {
		for d := 1; d <= calendar.MaxDayForMonth(m, *year, calendar.Lunar); d++ {
			lunar := calendar.NewDate(*year, m, d, calendar.Lunar)
			greg := calendar.LunarToGregorian(lunar)
			back := calendar.GregorianToLunar(greg)
			if back != lunar {
				drifted++
			}
			fmt.Printf("%s,%s,%s,%s\n", lunar, greg, calendar.WeekdayOf(greg), back)
		}
	}
	fmt.Printf("\n%d of %d days do not round-trip exactly\n", drifted, total)
}
