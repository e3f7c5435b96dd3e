package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/zapponejosh/hijri-calendar-api/internal/calendar"
)

func TestObserveRequest(t *testing.T) {
	m := New()

	m.ObserveRequest(http.MethodGet, "/api/v1/today", http.StatusOK, 5*time.Millisecond)
	m.ObserveRequest(http.MethodGet, "/api/v1/today", http.StatusOK, 7*time.Millisecond)
	m.ObserveRequest(http.MethodGet, "", http.StatusNotFound, time.Millisecond)

	if got := testutil.ToFloat64(m.requests.WithLabelValues("GET", "/api/v1/today", "200")); got != 2 {
		t.Errorf("today requests = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.requests.WithLabelValues("GET", "unmatched", "404")); got != 1 {
		t.Errorf("unmatched requests = %v, want 1", got)
	}
}

func TestConversionRecorded(t *testing.T) {
	m := New()

	m.ConversionRecorded(calendar.Gregorian, false)
	m.ConversionRecorded(calendar.Lunar, true)
	m.ConversionRecorded(calendar.Lunar, true)

	if got := testutil.ToFloat64(m.conversions.WithLabelValues("gregorian", "false")); got != 1 {
		t.Errorf("gregorian conversions = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.conversions.WithLabelValues("hijri", "true")); got != 2 {
		t.Errorf("adjusted hijri conversions = %v, want 2", got)
	}
}

func TestHandler(t *testing.T) {
	m := New()
	m.EventsProjected(8)

	rr := httptest.NewRecorder()
	m.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("Status = %d, want 200", rr.Code)
	}
	body, _ := io.ReadAll(rr.Body)
	for _, want := range []string{"hijri_projected_events_count 1", "go_goroutines"} {
		if !strings.Contains(string(body), want) {
			t.Errorf("metrics output missing %q", want)
		}
	}
}
