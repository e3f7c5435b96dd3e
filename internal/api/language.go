package api

import (
	"net/http"

	"golang.org/x/text/language"

	"github.com/zapponejosh/hijri-calendar-api/internal/calendar"
)

// Order matches supportedLanguages; the matcher returns indexes into it.
var (
	supportedTags      = []language.Tag{language.English, language.Arabic}
	supportedLanguages = []calendar.Language{calendar.English, calendar.Arabic}
	languageMatcher    = language.NewMatcher(supportedTags)
)

// requestLanguage picks the display language for r: the lang query
// parameter, then Accept-Language, then fallback. An unknown lang parameter
// is an error; an unmatched Accept-Language header is not.
func requestLanguage(r *http.Request, fallback calendar.Language) (calendar.Language, error) {
	if q := r.URL.Query().Get("lang"); q != "" {
		return calendar.ParseLanguage(q)
	}

	if header := r.Header.Get("Accept-Language"); header != "" {
		tags, _, err := language.ParseAcceptLanguage(header)
		if err == nil && len(tags) > 0 {
			_, idx, confidence := languageMatcher.Match(tags...)
			if confidence != language.No {
				return supportedLanguages[idx], nil
			}
		}
	}

	return fallback, nil
}
