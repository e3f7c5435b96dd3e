package api

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"

	"github.com/zapponejosh/hijri-calendar-api/internal/calendar"
)

const (
	icsProductID = "-//hijri-calendar-api//Upcoming Observances//EN"

	// maxReminderDays bounds how far ahead of an observance an alarm may fire.
	maxReminderDays = 7
)

// Reminder places a display alarm DaysBefore days ahead of each all-day
// event, at Hour:Minute local to the subscriber's calendar.
type Reminder struct {
	DaysBefore int
	Hour       int
	Minute     int
}

// parseReminder reads the reminder and reminder_time query values. An empty
// days value means no reminder.
func parseReminder(days, clock string) (*Reminder, error) {
	if days == "" {
		return nil, nil
	}

	n, err := strconv.Atoi(days)
	if err != nil || n < 0 || n > maxReminderDays {
		return nil, fmt.Errorf("reminder must be between 0 and %d days", maxReminderDays)
	}

	r := &Reminder{DaysBefore: n, Hour: 9}
	if clock == "" {
		return r, nil
	}

	hh, mm, ok := strings.Cut(clock, ":")
	hour, errH := strconv.Atoi(hh)
	minute, errM := strconv.Atoi(mm)
	if !ok || errH != nil || errM != nil || hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return nil, fmt.Errorf("reminder_time must be HH:MM, got %q", clock)
	}
	r.Hour, r.Minute = hour, minute

	return r, nil
}

// trigger renders the alarm offset relative to the event's midnight start
// as an RFC 5545 duration, e.g. -P0DT15H0M for 09:00 the day before.
func (r Reminder) trigger() string {
	minutes := r.Hour*60 + r.Minute - r.DaysBefore*24*60

	sign := ""
	if minutes < 0 {
		sign = "-"
		minutes = -minutes
	}

	return fmt.Sprintf("%sP%dDT%dH%dM", sign, minutes/(24*60), minutes%(24*60)/60, minutes%60)
}

// EventsICS renders projected events as an all-day iCalendar feed. UIDs are
// derived from the lunar date so repeated downloads update rather than
// duplicate entries in a subscriber's calendar.
func EventsICS(events []calendar.ProjectedEvent, lang calendar.Language, stamp time.Time, reminder *Reminder) string {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId(icsProductID)
	cal.SetXWRCalName(calendarName(lang))

	for _, e := range events {
		start := e.Gregorian.Time()
		name := e.Name(lang)

		event := cal.AddEvent(eventUID(e))
		event.SetDtStampTime(stamp.UTC())
		event.SetAllDayStartAt(start)
		event.SetAllDayEndAt(start.AddDate(0, 0, 1))
		event.SetSummary(name)
		event.SetDescription(calendar.FormatLong(e.Lunar, lang))

		if reminder != nil {
			alarm := event.AddAlarm()
			alarm.SetProperty(ics.ComponentPropertyAction, "DISPLAY")
			alarm.SetProperty(ics.ComponentPropertyTrigger, reminder.trigger())
			alarm.SetProperty(ics.ComponentPropertyDescription, name)
		}
	}

	return cal.Serialize()
}

func eventUID(e calendar.ProjectedEvent) string {
	return fmt.Sprintf("%04d%02d%02d-hijri@hijri-calendar-api", e.Lunar.Year, e.Lunar.Month, e.Lunar.Day)
}

func calendarName(lang calendar.Language) string {
	if lang == calendar.Arabic {
		return "المناسبات الإسلامية"
	}
	return "Islamic Observances"
}
