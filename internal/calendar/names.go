package calendar

import "time"

var monthNames = map[System]map[Language][12]string{
	Gregorian: {
		English: {
			"January", "February", "March", "April", "May", "June",
			"July", "August", "September", "October", "November", "December",
		},
		Arabic: {
			"يناير", "فبراير", "مارس", "أبريل", "مايو", "يونيو",
			"يوليو", "أغسطس", "سبتمبر", "أكتوبر", "نوفمبر", "ديسمبر",
		},
	},
	Lunar: {
		English: {
			"Muharram", "Safar", "Rabi al-Awwal", "Rabi al-Thani", "Jumada al-Awwal", "Jumada al-Thani",
			"Rajab", "Sha'ban", "Ramadan", "Shawwal", "Dhu al-Qi'dah", "Dhu al-Hijjah",
		},
		Arabic: {
			"محرم", "صفر", "ربيع الأول", "ربيع الثاني", "جمادى الأولى", "جمادى الآخرة",
			"رجب", "شعبان", "رمضان", "شوال", "ذو القعدة", "ذو الحجة",
		},
	},
}

var weekdayNames = map[Language][7]string{
	English: {"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"},
	Arabic:  {"الأحد", "الاثنين", "الثلاثاء", "الأربعاء", "الخميس", "الجمعة", "السبت"},
}

// MonthName returns the name of a month in the given system and language.
// It returns "" for a month outside 1-12 or an unknown system or language.
func MonthName(month int, sys System, lang Language) string {
	if month < 1 || month > 12 {
		return ""
	}
	names, ok := monthNames[sys][lang]
	if !ok {
		return ""
	}
	return names[month-1]
}

// WeekdayName returns the name of w in the given language, or "" when the
// language is unknown.
func WeekdayName(w time.Weekday, lang Language) string {
	names, ok := weekdayNames[lang]
	if !ok || w < time.Sunday || w > time.Saturday {
		return ""
	}
	return names[w]
}
