package calendar

import "maps"

// DefaultEventCount is the number of upcoming events listed when the caller
// does not ask for a specific count.
const DefaultEventCount = 8

// Observance is an annual religious date on a fixed lunar month and day.
type Observance struct {
	Names map[Language]string `json:"name"`
	Month int                 `json:"month"`
	Day   int                 `json:"day"`
}

// Name returns the observance name in lang, falling back to English.
func (o Observance) Name(lang Language) string {
	if name, ok := o.Names[lang]; ok {
		return name
	}
	return o.Names[English]
}

// ProjectedEvent is an observance placed on a concrete lunar year.
type ProjectedEvent struct {
	Observance
	Lunar     Date `json:"hijri_date"`
	Gregorian Date `json:"gregorian_date"`
}

// observances must stay sorted by (month, day); UpcomingEvents relies on
// table order being chronological.
var observances = []Observance{
	{Names: map[Language]string{English: "Islamic New Year", Arabic: "رأس السنة الهجرية"}, Month: 1, Day: 1},
	{Names: map[Language]string{English: "Day of Ashura", Arabic: "يوم عاشوراء"}, Month: 1, Day: 10},
	{Names: map[Language]string{English: "Mawlid al-Nabi", Arabic: "المولد النبوي"}, Month: 3, Day: 12},
	{Names: map[Language]string{English: "Laylat al-Mi'raj", Arabic: "ليلة المعراج"}, Month: 7, Day: 27},
	{Names: map[Language]string{English: "15th of Sha'ban", Arabic: "النصف من شعبان"}, Month: 8, Day: 15},
	{Names: map[Language]string{English: "1st of Ramadan", Arabic: "أول رمضان"}, Month: 9, Day: 1},
	{Names: map[Language]string{English: "Laylat al-Qadr", Arabic: "ليلة القدر"}, Month: 9, Day: 27},
	{Names: map[Language]string{English: "Eid al-Fitr", Arabic: "عيد الفطر"}, Month: 10, Day: 1},
	{Names: map[Language]string{English: "Day of Arafah", Arabic: "يوم عرفة"}, Month: 12, Day: 9},
	{Names: map[Language]string{English: "Eid al-Adha", Arabic: "عيد الأضحى"}, Month: 12, Day: 10},
}

// Observances returns a copy of the observance table in chronological order.
func Observances() []Observance {
	out := make([]Observance, len(observances))
	for i, o := range observances {
		o.Names = maps.Clone(o.Names)
		out[i] = o
	}
	return out
}

// UpcomingEvents returns up to count observances falling on or after
// current.
//
// Observances remaining in current's lunar year come first, followed by
// the next year's table from the start. At most two years are scanned, so a
// count above twice the table size returns a short slice. Gregorian input
// is converted to lunar first.
func UpcomingEvents(current Date, count int) []ProjectedEvent {
	if current.System == Gregorian {
		current = GregorianToLunar(current)
	}

	events := make([]ProjectedEvent, 0, max(0, min(count, 2*len(observances))))
	if count <= 0 {
		return events
	}

	for _, o := range observances {
		if len(events) >= count {
			return events
		}
		if o.Month > current.Month || (o.Month == current.Month && o.Day >= current.Day) {
			events = append(events, project(o, current.Year))
		}
	}

	for _, o := range observances {
		if len(events) >= count {
			break
		}
		events = append(events, project(o, current.Year+1))
	}

	return events
}

func project(o Observance, year int) ProjectedEvent {
	lunar := Date{Day: o.Day, Month: o.Month, Year: year, System: Lunar}
	o.Names = maps.Clone(o.Names)
	return ProjectedEvent{
		Observance: o,
		Lunar:      lunar,
		Gregorian:  LunarToGregorian(lunar),
	}
}
