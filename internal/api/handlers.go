package api

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/zapponejosh/hijri-calendar-api/internal/calendar"
	"github.com/zapponejosh/hijri-calendar-api/internal/config"
	"github.com/zapponejosh/hijri-calendar-api/internal/database"
	"github.com/zapponejosh/hijri-calendar-api/internal/logger"
	"github.com/zapponejosh/hijri-calendar-api/internal/metrics"
)

// Handlers contains all HTTP handlers and their dependencies.
type Handlers struct {
	db      *database.DB
	cfg     *config.Config
	logger  *slog.Logger
	metrics *metrics.Metrics
	now     func() time.Time
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(db *database.DB, cfg *config.Config, logger *slog.Logger, m *metrics.Metrics) *Handlers {
	return &Handlers{
		db:      db,
		cfg:     cfg,
		logger:  logger,
		metrics: m,
		now:     time.Now,
	}
}

// DateView is a date plus its display fields in the request language.
type DateView struct {
	calendar.Date
	ISO       string `json:"iso"`
	MonthName string `json:"month_name"`
	Weekday   string `json:"weekday"`
	Formatted string `json:"formatted"`
}

func newDateView(d calendar.Date, lang calendar.Language) DateView {
	return DateView{
		Date:      d,
		ISO:       d.String(),
		MonthName: calendar.MonthName(d.Month, d.System, lang),
		Weekday:   calendar.WeekdayName(calendar.WeekdayOf(d), lang),
		Formatted: calendar.FormatLong(d, lang),
	}
}

// EventView is one projected observance.
type EventView struct {
	Name      string                       `json:"name"`
	Names     map[calendar.Language]string `json:"names"`
	Hijri     DateView                     `json:"hijri"`
	Gregorian DateView                     `json:"gregorian"`
	Next      bool                         `json:"next"`
}

// HealthCheck handles GET /health
func (h *Handlers) HealthCheck(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := h.db.Health(ctx); err != nil {
		h.logger.Warn("health check failed", slog.Any("error", err))
		WriteError(w, http.StatusServiceUnavailable, "Database unhealthy", CodeUnhealthy)
		return
	}

	WriteSuccess(w, map[string]string{
		"status": "healthy",
	})
}

// GetToday handles GET /api/v1/today
func (h *Handlers) GetToday(w http.ResponseWriter, r *http.Request) {
	lang, ok := h.language(w, r)
	if !ok {
		return
	}

	now := h.now()
	greg := calendar.FromTime(now)
	hijri := calendar.GregorianToLunar(greg)

	WriteSuccess(w, map[string]any{
		"gregorian": newDateView(greg, lang),
		"hijri":     newDateView(hijri, lang),
		"display":   calendar.CurrentDateTime(now, lang),
		"language":  lang,
	})
}

// Convert handles GET /api/v1/convert/{calendar}/{date}
//
// A day past the end of its month is clamped and reported with
// "adjusted": true. A month outside 1-12 or a day below 1 is rejected.
func (h *Handlers) Convert(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	lang, ok := h.language(w, r)
	if !ok {
		return
	}

	sys, ok := h.system(w, r)
	if !ok {
		return
	}

	dateStr := chi.URLParam(r, "date")
	input, err := calendar.ParseDate(dateStr, sys)
	if err != nil {
		WriteBadRequest(w, fmt.Sprintf("Invalid date format: %s. Use YYYY-MM-DD", dateStr))
		return
	}

	if input.Month < 1 || input.Month > 12 {
		WriteInvalidDate(w, fmt.Errorf("%w: must be between 1 and 12, got %d", calendar.ErrInvalidMonth, input.Month))
		return
	}
	if input.Day < 1 {
		WriteInvalidDate(w, fmt.Errorf("%w: must be at least 1, got %d", calendar.ErrInvalidDay, input.Day))
		return
	}

	clamped := calendar.Clamp(input)
	adjusted := clamped != input
	output := calendar.Convert(clamped, sys.Other())

	for _, d := range []calendar.Date{clamped, output} {
		if err := calendar.CheckYear(d); err != nil {
			WriteInvalidDate(w, err)
			return
		}
	}

	record := &database.Conversion{
		Input:    clamped,
		Output:   output,
		Adjusted: adjusted,
	}
	if id := middleware.GetReqID(ctx); id != "" {
		record.RequestID = &id
	}
	if err := h.db.RecordConversion(ctx, record); err != nil {
		// History is best effort; the conversion itself succeeded.
		logger.Error(ctx, "failed to record conversion", err, logger.Date("input", clamped))
	}

	if h.metrics != nil {
		h.metrics.ConversionRecorded(sys, adjusted)
	}

	logger.Debug(ctx, "converted date",
		logger.Date("input", clamped),
		logger.Date("output", output),
		slog.Bool("adjusted", adjusted),
	)

	WriteSuccess(w, map[string]any{
		"input":     newDateView(clamped, lang),
		"output":    newDateView(output, lang),
		"requested": dateStr,
		"adjusted":  adjusted,
	})
}

// GetMonths handles GET /api/v1/months/{calendar}?year=
func (h *Handlers) GetMonths(w http.ResponseWriter, r *http.Request) {
	lang, ok := h.language(w, r)
	if !ok {
		return
	}

	sys, ok := h.system(w, r)
	if !ok {
		return
	}

	year := h.currentYear(sys)
	if yearStr := r.URL.Query().Get("year"); yearStr != "" {
		y, err := strconv.Atoi(yearStr)
		if err != nil {
			WriteBadRequest(w, fmt.Sprintf("Invalid year: %s", yearStr))
			return
		}
		if years := h.yearRange(sys); !years.Contains(y) {
			WriteBadRequest(w, fmt.Sprintf("year must be between %d and %d", years.Start, years.End))
			return
		}
		year = y
	}

	type monthView struct {
		Number int    `json:"number"`
		Name   string `json:"name"`
		Label  string `json:"label"`
		Days   int    `json:"days"`
	}

	months := make([]monthView, 0, 12)
	for m := 1; m <= 12; m++ {
		name := calendar.MonthName(m, sys, lang)
		months = append(months, monthView{
			Number: m,
			Name:   name,
			Label:  fmt.Sprintf("%d - %s", m, name),
			Days:   calendar.MaxDayForMonth(m, year, sys),
		})
	}

	WriteSuccess(w, map[string]any{
		"calendar": sys,
		"year":     year,
		"language": lang,
		"months":   months,
	})
}

// GetYears handles GET /api/v1/years/{calendar}
func (h *Handlers) GetYears(w http.ResponseWriter, r *http.Request) {
	sys, ok := h.system(w, r)
	if !ok {
		return
	}

	current := h.currentYear(sys)
	years := h.yearRange(sys)

	WriteSuccess(w, map[string]any{
		"calendar": sys,
		"current":  current,
		"start":    years.Start,
		"end":      years.End,
		"years":    years.Years(),
	})
}

// GetEvents handles GET /api/v1/events?count=&from=
func (h *Handlers) GetEvents(w http.ResponseWriter, r *http.Request) {
	lang, ok := h.language(w, r)
	if !ok {
		return
	}

	from, events, ok := h.projectEvents(w, r)
	if !ok {
		return
	}

	views := make([]EventView, 0, len(events))
	for i, e := range events {
		views = append(views, EventView{
			Name:      e.Name(lang),
			Names:     e.Names,
			Hijri:     newDateView(e.Lunar, lang),
			Gregorian: newDateView(e.Gregorian, lang),
			Next:      i == 0,
		})
	}

	WriteSuccess(w, map[string]any{
		"from":   newDateView(from, lang),
		"count":  len(views),
		"events": views,
	})
}

// GetEventsICS handles GET /api/v1/events.ics?count=&from=&reminder=&reminder_time=
func (h *Handlers) GetEventsICS(w http.ResponseWriter, r *http.Request) {
	lang, ok := h.language(w, r)
	if !ok {
		return
	}

	reminder, err := parseReminder(r.URL.Query().Get("reminder"), r.URL.Query().Get("reminder_time"))
	if err != nil {
		WriteBadRequest(w, err.Error())
		return
	}

	_, events, ok := h.projectEvents(w, r)
	if !ok {
		return
	}

	body := EventsICS(events, lang, h.now(), reminder)

	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="observances.ics"`)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(body)); err != nil {
		logger.Error(r.Context(), "failed to write calendar", err)
	}
}

// GetHistory handles GET /api/v1/history?limit=&offset=
func (h *Handlers) GetHistory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	limit := 50
	offset := 0

	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 && l <= 100 {
			limit = l
		}
	}

	if offsetStr := r.URL.Query().Get("offset"); offsetStr != "" {
		if o, err := strconv.Atoi(offsetStr); err == nil && o >= 0 {
			offset = o
		}
	}

	conversions, err := h.db.ListConversions(ctx, limit, offset)
	if err != nil {
		logger.Error(ctx, "failed to list conversions", err)
		WriteInternalError(w, "Failed to retrieve history")
		return
	}

	stats, err := h.db.GetConversionStats(ctx)
	if err != nil {
		logger.Error(ctx, "failed to get conversion stats", err)
		WriteInternalError(w, "Failed to retrieve history")
		return
	}

	WritePage(w, map[string]any{
		"conversions": conversions,
		"stats":       stats,
	}, newPageMeta(limit, offset, stats.Total))
}

// GetHistoryEntry handles GET /api/v1/history/{id}
func (h *Handlers) GetHistoryEntry(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		WriteBadRequest(w, "id must be a positive integer")
		return
	}

	conversion, err := h.db.GetConversion(ctx, id)
	if err != nil {
		if database.IsNotFound(err) {
			WriteNotFound(w, "Conversion not found")
			return
		}
		logger.Error(ctx, "failed to get conversion", err, slog.Int64("id", id))
		WriteInternalError(w, "Failed to retrieve conversion")
		return
	}

	WriteSuccess(w, conversion)
}

// projectEvents parses count and from and runs the projection. It writes
// the error response itself and returns false on bad input.
func (h *Handlers) projectEvents(w http.ResponseWriter, r *http.Request) (calendar.Date, []calendar.ProjectedEvent, bool) {
	count := h.cfg.EventCount
	if countStr := r.URL.Query().Get("count"); countStr != "" {
		c, err := strconv.Atoi(countStr)
		if err != nil || c < 1 || c > config.MaxEventCount {
			WriteBadRequest(w, fmt.Sprintf("count must be between 1 and %d", config.MaxEventCount))
			return calendar.Date{}, nil, false
		}
		count = c
	}

	from := calendar.GregorianToLunar(calendar.FromTime(h.now()))
	if fromStr := r.URL.Query().Get("from"); fromStr != "" {
		d, err := calendar.ParseDate(fromStr, calendar.Lunar)
		if err != nil {
			WriteBadRequest(w, fmt.Sprintf("Invalid from date: %s. Use YYYY-MM-DD in the Hijri calendar", fromStr))
			return calendar.Date{}, nil, false
		}
		if err := calendar.Validate(d); err != nil {
			WriteInvalidDate(w, err)
			return calendar.Date{}, nil, false
		}
		from = d
	}

	events := calendar.UpcomingEvents(from, count)
	if h.metrics != nil {
		h.metrics.EventsProjected(len(events))
	}

	return from, events, true
}

// language resolves the request language, writing a 400 for an unknown
// lang parameter.
func (h *Handlers) language(w http.ResponseWriter, r *http.Request) (calendar.Language, bool) {
	lang, err := requestLanguage(r, calendar.Language(h.cfg.DefaultLanguage))
	if err != nil {
		WriteBadRequest(w, "lang must be one of: en, ar")
		return "", false
	}
	return lang, true
}

// system parses the {calendar} path parameter.
func (h *Handlers) system(w http.ResponseWriter, r *http.Request) (calendar.System, bool) {
	sys, err := calendar.ParseSystem(chi.URLParam(r, "calendar"))
	if err != nil {
		WriteBadRequest(w, "calendar must be one of: gregorian, hijri")
		return "", false
	}
	return sys, true
}

// yearRange is the selectable span of years in sys around today.
func (h *Handlers) yearRange(sys calendar.System) calendar.YearRange {
	return calendar.NewYearRange(h.currentYear(sys), h.cfg.YearsPast, h.cfg.YearsFuture)
}

// currentYear returns today's year in sys.
func (h *Handlers) currentYear(sys calendar.System) int {
	return calendar.Convert(calendar.FromTime(h.now()), sys).Year
}
