package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"
)

// =============================================================================
// Response Types - Match the actual API response structure
// =============================================================================

type APIResponse struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
	Error   *ErrorInfo      `json:"error,omitempty"`
}

type ErrorInfo struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// DateView mirrors the date objects the API returns
type DateView struct {
	Day       int    `json:"day"`
	Month     int    `json:"month"`
	Year      int    `json:"year"`
	Calendar  string `json:"calendar"`
	ISO       string `json:"iso"`
	MonthName string `json:"month_name"`
	Weekday   string `json:"weekday"`
	Formatted string `json:"formatted"`
}

// TodayResponse is the response for /today
type TodayResponse struct {
	Gregorian DateView `json:"gregorian"`
	Hijri     DateView `json:"hijri"`
	Display   string   `json:"display"`
	Language  string   `json:"language"`
}

// ConvertResponse is the response for /convert/{calendar}/{date}
type ConvertResponse struct {
	Input    DateView `json:"input"`
	Output   DateView `json:"output"`
	Adjusted bool     `json:"adjusted"`
}

// EventsResponse is the response for /events
type EventsResponse struct {
	Count  int `json:"count"`
	Events []struct {
		Name      string   `json:"name"`
		Hijri     DateView `json:"hijri"`
		Gregorian DateView `json:"gregorian"`
		Next      bool     `json:"next"`
	} `json:"events"`
}

// HealthResponse is the response for /health
type HealthResponse struct {
	Status string `json:"status"`
}

// =============================================================================
// Test Runner
// =============================================================================

type TestRunner struct {
	baseURL      string
	apiKey       string
	client       *http.Client
	verbose      bool
	successCount int
	errorCount   int
	errors       []string
}

func NewTestRunner(baseURL, apiKey string, verbose bool) *TestRunner {
	return &TestRunner{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		apiKey:  apiKey,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
		verbose: verbose,
	}
}

func (tr *TestRunner) Run() {
	fmt.Println("==============================================")
	fmt.Println("Hijri Calendar API Test Suite")
	fmt.Println("==============================================")
	fmt.Printf("Base URL: %s\n", tr.baseURL)
	fmt.Println()

	tr.testHealth()
	tr.testToday()
	tr.testConversions()
	tr.testEdgeCases()
	tr.testMonthsAndYears()
	tr.testEvents()
	tr.testHistory()

	tr.printSummary()
}

// =============================================================================
// Test Groups
// =============================================================================

func (tr *TestRunner) testHealth() {
	tr.printSection("Health Check")

	var health HealthResponse
	if err := tr.getData("/health", &health); err != nil {
		tr.recordError("Health", err.Error())
		return
	}

	if health.Status == "healthy" {
		tr.recordSuccess("Health check passed")
	} else {
		tr.recordError("Health", fmt.Sprintf("Unexpected status: %s", health.Status))
	}
}

func (tr *TestRunner) testToday() {
	tr.printSection("Today")

	for _, lang := range []string{"en", "ar"} {
		var today TodayResponse
		if err := tr.getData("/api/v1/today?lang="+lang, &today); err != nil {
			tr.recordError("Today ("+lang+")", err.Error())
			continue
		}
		if today.Language != lang {
			tr.recordError("Today ("+lang+")", fmt.Sprintf("language = %s", today.Language))
			continue
		}
		tr.recordSuccess(fmt.Sprintf("Today (%s): %s", lang, today.Display))
	}
}

func (tr *TestRunner) testConversions() {
	tr.printSection("Conversions")

	testCases := []struct {
		path        string
		expected    string
		description string
	}{
		{"/api/v1/convert/gregorian/2024-07-06", "1446-01-01", "Islamic New Year 1446"},
		{"/api/v1/convert/gregorian/2024-01-01", "1445-06-21", "New Year's Day 2024"},
		{"/api/v1/convert/gregorian/2000-04-03", "1420-12-29", "Year tail gap"},
		{"/api/v1/convert/gregorian/2000-04-04", "1421-01-01", "Day after the gap"},
		{"/api/v1/convert/hijri/1446-01-01", "2024-07-06", "Back to Gregorian"},
		{"/api/v1/convert/hijri/1446-09-27", "2025-03-25", "Laylat al-Qadr 1446"},
		{"/api/v1/convert/hijri/1446-10-01", "2025-03-29", "Eid al-Fitr 1446"},
	}

	for _, tc := range testCases {
		var data ConvertResponse
		if err := tr.getData(tc.path, &data); err != nil {
			tr.recordError(tc.path, err.Error())
			continue
		}

		if data.Output.ISO == tc.expected {
			tr.recordSuccess(fmt.Sprintf("%s -> %s (%s)", data.Input.ISO, data.Output.ISO, tc.description))
		} else {
			tr.recordError(tc.path, fmt.Sprintf("Expected %s, got %s", tc.expected, data.Output.ISO))
		}

		if tr.verbose {
			fmt.Printf("    %s | %s\n", data.Input.Formatted, data.Output.Formatted)
		}
	}

	var clamped ConvertResponse
	if err := tr.getData("/api/v1/convert/hijri/1446-02-30", &clamped); err != nil {
		tr.recordError("Clamp", err.Error())
	} else if clamped.Adjusted && clamped.Input.Day == 29 {
		tr.recordSuccess("Day 30 of Safar clamped to 29")
	} else {
		tr.recordError("Clamp", fmt.Sprintf("adjusted=%v day=%d", clamped.Adjusted, clamped.Input.Day))
	}
}

func (tr *TestRunner) testEdgeCases() {
	tr.printSection("Edge Cases")

	testCases := []struct {
		path        string
		status      int
		code        string
		description string
	}{
		{"/api/v1/convert/gregorian/invalid", 400, "BAD_REQUEST", "Invalid date format rejected"},
		{"/api/v1/convert/julian/2024-01-01", 400, "BAD_REQUEST", "Unknown calendar rejected"},
		{"/api/v1/convert/hijri/1446-13-01", 400, "INVALID_MONTH", "Month 13 rejected"},
		{"/api/v1/convert/hijri/1446-01-00", 400, "INVALID_DAY", "Day 0 rejected"},
		{"/api/v1/events?count=21", 400, "BAD_REQUEST", "Event count limit enforced"},
		{"/api/v1/today?lang=fr", 400, "BAD_REQUEST", "Unsupported language rejected"},
		{"/api/v1/nowhere", 404, "NOT_FOUND", "Unknown route returns JSON 404"},
	}

	for _, tc := range testCases {
		status, apiResp, err := tr.getRaw(tc.path, nil)
		if err != nil {
			tr.recordError(tc.path, err.Error())
			continue
		}
		if status != tc.status || apiResp.Error == nil || apiResp.Error.Code != tc.code {
			tr.recordError(tc.path, fmt.Sprintf("Expected %d %s, got %d %+v", tc.status, tc.code, status, apiResp.Error))
			continue
		}
		tr.recordSuccess(tc.description)
	}
}

func (tr *TestRunner) testMonthsAndYears() {
	tr.printSection("Months & Years")

	var months struct {
		Year   int `json:"year"`
		Months []struct {
			Name string `json:"name"`
			Days int    `json:"days"`
		} `json:"months"`
	}
	if err := tr.getData("/api/v1/months/gregorian?year=2024", &months); err != nil {
		tr.recordError("Months", err.Error())
	} else if len(months.Months) == 12 && months.Months[1].Days == 29 {
		tr.recordSuccess("Gregorian months for 2024 include a 29-day February")
	} else {
		tr.recordError("Months", fmt.Sprintf("unexpected months: %+v", months.Months))
	}

	for _, sys := range []string{"gregorian", "hijri"} {
		var years struct {
			Current int `json:"current"`
			Start   int `json:"start"`
			End     int `json:"end"`
		}
		if err := tr.getData("/api/v1/years/"+sys, &years); err != nil {
			tr.recordError("Years "+sys, err.Error())
			continue
		}
		if years.Start <= years.Current && years.Current <= years.End {
			tr.recordSuccess(fmt.Sprintf("%s years %d..%d around %d", sys, years.Start, years.End, years.Current))
		} else {
			tr.recordError("Years "+sys, fmt.Sprintf("%d not in %d..%d", years.Current, years.Start, years.End))
		}
	}
}

func (tr *TestRunner) testEvents() {
	tr.printSection("Upcoming Events")

	var events EventsResponse
	if err := tr.getData("/api/v1/events?from=1446-01-01&count=3", &events); err != nil {
		tr.recordError("Events", err.Error())
		return
	}

	if events.Count == 3 && events.Events[0].Gregorian.ISO == "2024-07-06" && events.Events[0].Next {
		tr.recordSuccess("Events from 1446-01-01 start at the Islamic New Year")
	} else {
		tr.recordError("Events", fmt.Sprintf("unexpected events: %+v", events))
	}

	if tr.verbose {
		for _, e := range events.Events {
			fmt.Printf("    %-20s %s\n", e.Name, e.Gregorian.Formatted)
		}
	}

	resp, err := tr.client.Get(tr.baseURL + "/api/v1/events.ics?count=5")
	if err != nil {
		tr.recordError("Events ICS", err.Error())
		return
	}
	defer resp.Body.Close()

	cal, err := ics.ParseCalendar(resp.Body)
	if err != nil {
		tr.recordError("Events ICS", err.Error())
		return
	}
	if n := len(cal.Events()); n == 5 {
		tr.recordSuccess("ICS feed contains 5 events")
	} else {
		tr.recordError("Events ICS", fmt.Sprintf("Expected 5 events, got %d", n))
	}

	reminderResp, err := tr.client.Get(tr.baseURL + "/api/v1/events.ics?count=1&reminder=1")
	if err != nil {
		tr.recordError("Events ICS reminder", err.Error())
		return
	}
	defer reminderResp.Body.Close()

	body, err := io.ReadAll(reminderResp.Body)
	if err != nil {
		tr.recordError("Events ICS reminder", err.Error())
		return
	}
	if strings.Contains(string(body), "TRIGGER:-P0DT15H0M") {
		tr.recordSuccess("ICS reminder fires 09:00 the day before")
	} else {
		tr.recordError("Events ICS reminder", "Expected TRIGGER:-P0DT15H0M in feed")
	}
}

func (tr *TestRunner) testHistory() {
	tr.printSection("History")

	if tr.apiKey == "" {
		fmt.Println("  (skipped: no -key given)")
		return
	}

	status, _, err := tr.getRaw("/api/v1/history", nil)
	if err != nil {
		tr.recordError("History (no key)", err.Error())
	} else if status == http.StatusUnauthorized {
		tr.recordSuccess("History requires an API key")
	} else {
		tr.recordError("History (no key)", fmt.Sprintf("Expected 401, got %d", status))
	}

	var history struct {
		Stats struct {
			Total int `json:"total"`
		} `json:"stats"`
	}
	status, apiResp, err := tr.getRaw("/api/v1/history?limit=5", map[string]string{"X-API-Key": tr.apiKey})
	if err != nil || status != http.StatusOK {
		tr.recordError("History", fmt.Sprintf("status %d, error %v", status, err))
		return
	}
	if err := json.Unmarshal(apiResp.Data, &history); err != nil {
		tr.recordError("History", err.Error())
		return
	}
	tr.recordSuccess(fmt.Sprintf("History holds %d conversions", history.Stats.Total))
}

// =============================================================================
// Helper Methods
// =============================================================================

// getData fetches path and decodes the data field of a successful response.
func (tr *TestRunner) getData(path string, target interface{}) error {
	_, apiResp, err := tr.getRaw(path, nil)
	if err != nil {
		return err
	}

	if !apiResp.Success {
		errMsg := "unknown error"
		if apiResp.Error != nil {
			errMsg = apiResp.Error.Message
		}
		return fmt.Errorf("API error: %s", errMsg)
	}

	return json.Unmarshal(apiResp.Data, target)
}

func (tr *TestRunner) getRaw(path string, headers map[string]string) (int, *APIResponse, error) {
	req, err := http.NewRequest(http.MethodGet, tr.baseURL+path, nil)
	if err != nil {
		return 0, nil, err
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := tr.client.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("read error: %w", err)
	}

	var apiResp APIResponse
	if err := json.Unmarshal(body, &apiResp); err != nil {
		return resp.StatusCode, nil, fmt.Errorf("parse error: %w", err)
	}

	return resp.StatusCode, &apiResp, nil
}

func (tr *TestRunner) printSection(name string) {
	fmt.Println()
	fmt.Printf("--- %s ---\n", name)
	fmt.Println()
}

func (tr *TestRunner) recordSuccess(msg string) {
	tr.successCount++
	fmt.Printf("  ✓ %s\n", msg)
}

func (tr *TestRunner) recordError(context, msg string) {
	tr.errorCount++
	errStr := fmt.Sprintf("%s: %s", context, msg)
	tr.errors = append(tr.errors, errStr)
	fmt.Printf("  ✗ %s\n", errStr)
}

func (tr *TestRunner) printSummary() {
	fmt.Println()
	fmt.Println("==============================================")
	fmt.Println("Summary")
	fmt.Println("==============================================")
	fmt.Printf("  Passed: %d\n", tr.successCount)
	fmt.Printf("  Failed: %d\n", tr.errorCount)
	fmt.Println()

	if tr.errorCount > 0 {
		fmt.Println("Failures:")
		for _, err := range tr.errors {
			fmt.Printf("  • %s\n", err)
		}
		fmt.Println()
	}

	if tr.errorCount == 0 {
		fmt.Println("All tests passed! ✓")
	} else {
		fmt.Printf("Tests completed with %d failure(s)\n", tr.errorCount)
	}
}

// =============================================================================
// Main
// =============================================================================

func main() {
	baseURL := flag.String("url", "http://localhost:8080", "Base URL of the API")
	apiKey := flag.String("key", os.Getenv("API_KEY"), "API key for the history endpoints")
	verbose := flag.Bool("v", false, "Verbose output (show formatted dates)")
	flag.Parse()

	// Check if server is reachable
	client := &http.Client{Timeout: 2 * time.Second}
	resp, err := client.Get(*baseURL + "/health")
	if err != nil {
		fmt.Printf("Error: Cannot connect to %s\n", *baseURL)
		fmt.Println("Make sure the API server is running.")
		os.Exit(1)
	}
	resp.Body.Close()

	runner := NewTestRunner(*baseURL, *apiKey, *verbose)
	runner.Run()

	// Exit with error code if tests failed
	if runner.errorCount > 0 {
		os.Exit(1)
	}
}
