package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"sort"
	"time"

	"github.com/zapponejosh/hijri-calendar-api/internal/calendar"
)

// APIResponse matches the API response structure
type APIResponse struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
	Error   *ErrorInfo      `json:"error,omitempty"`
}

type ErrorInfo struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

type ConvertResponse struct {
	Input    calendar.Date `json:"input"`
	Output   calendar.Date `json:"output"`
	Adjusted bool          `json:"adjusted"`
}

// TestResult holds the result for a single Gregorian date
type TestResult struct {
	Date     string `json:"date"`
	Hijri    string `json:"hijri,omitempty"`
	Back     string `json:"back,omitempty"`
	Drift    int    `json:"drift"`
	Mismatch bool   `json:"mismatch"` // API disagrees with the local calendar package
	Error    string `json:"error,omitempty"`
}

func (r TestResult) failed(maxDrift int) bool {
	return r.Error != "" || r.Mismatch || abs(r.Drift) > maxDrift
}

// YearStats tracks statistics for each Gregorian year
type YearStats struct {
	Year     int `json:"year"`
	Days     int `json:"days"`
	Exact    int `json:"exact"`
	Drifted  int `json:"drifted"`
	Failed   int `json:"failed"`
	MaxDrift int `json:"max_drift"`
}

// Analysis holds the analyzed results
type Analysis struct {
	TotalDays   int
	TotalExact  int
	TotalFailed int
	MaxDrift    int
	ByDrift     map[int]int
	ByYear      map[int]*YearStats
	AllFailures []TestResult
}

func main() {
	baseURL := flag.String("url", "http://localhost:8080", "Base URL of the API")
	startYear := flag.Int("start", 2024, "Start year")
	years := flag.Int("years", 4, "Number of years to test")
	maxDrift := flag.Int("max-drift", 2, "Largest round-trip drift in days that still counts as a pass")
	verbose := flag.Bool("v", false, "Verbose output (show each date)")
	outputFile := flag.String("o", "", "Output results to JSON file")
	flag.Parse()

	endYear := *startYear + *years - 1

	fmt.Println("================================================================")
	fmt.Println("Hijri Calendar API - Round Trip Coverage")
	fmt.Println("================================================================")
	fmt.Printf("Base URL:    %s\n", *baseURL)
	fmt.Printf("Date Range:  %d-01-01 to %d-12-31\n", *startYear, endYear)
	fmt.Printf("Max Drift:   %d days\n", *maxDrift)
	fmt.Println()

	// Check if server is reachable
	client := &http.Client{Timeout: 5 * time.Second}
	resp, err := client.Get(*baseURL + "/health")
	if err != nil {
		fmt.Printf("Error: Cannot connect to %s\n", *baseURL)
		fmt.Println("Make sure the API server is running.")
		os.Exit(1)
	}
	resp.Body.Close()

	results := testAllDates(client, *baseURL, *startYear, endYear, *verbose)
	analysis := analyzeResults(results, *maxDrift)

	printSummary(analysis, *startYear, endYear)
	printFailures(analysis)

	if *outputFile != "" {
		saveResults(*outputFile, analysis)
	}

	if analysis.TotalFailed > 0 {
		os.Exit(1)
	}
}

func testAllDates(client *http.Client, baseURL string, startYear, endYear int, verbose bool) []TestResult {
	start := time.Date(startYear, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(endYear, 12, 31, 0, 0, 0, 0, time.UTC)
	totalDays := int(end.Sub(start).Hours()/24) + 1

	fmt.Printf("Testing %d days...\n\n", totalDays)

	results := make([]TestResult, 0, totalDays)
	lastProgress := -1

	for current := start; !current.After(end); current = current.AddDate(0, 0, 1) {
		result := testDate(client, baseURL, calendar.FromTime(current))
		results = append(results, result)

		progress := (len(results) * 100) / totalDays
		if progress != lastProgress && progress%5 == 0 {
			fmt.Printf("  Progress: %d%% (%d/%d)\n", progress, len(results), totalDays)
			lastProgress = progress
		}

		if verbose {
			fmt.Printf("  %s -> %s -> %s (drift %+d)\n", result.Date, result.Hijri, result.Back, result.Drift)
			if result.Error != "" {
				fmt.Printf("      Error: %s\n", result.Error)
			}
		}
	}

	fmt.Println()
	return results
}

func testDate(client *http.Client, baseURL string, greg calendar.Date) TestResult {
	result := TestResult{Date: greg.String()}

	forward, err := convert(client, baseURL, greg)
	if err != nil {
		result.Error = err.Error()
		return result
	}
	result.Hijri = forward.Output.String()

	back, err := convert(client, baseURL, forward.Output)
	if err != nil {
		result.Error = err.Error()
		return result
	}
	result.Back = back.Output.String()
	result.Drift = int(back.Output.Time().Sub(greg.Time()).Hours() / 24)

	if forward.Output != calendar.GregorianToLunar(greg) || back.Output != calendar.LunarToGregorian(forward.Output) {
		result.Mismatch = true
	}

	return result
}

func convert(client *http.Client, baseURL string, d calendar.Date) (*ConvertResponse, error) {
	url := fmt.Sprintf("%s/api/v1/convert/%s/%s", baseURL, d.System, d)
	resp, err := client.Get(url)
	if err != nil {
		return nil, fmt.Errorf("connection error: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read error: %w", err)
	}

	var apiResp APIResponse
	if err := json.Unmarshal(body, &apiResp); err != nil {
		return nil, fmt.Errorf("parse error: %w", err)
	}

	if !apiResp.Success {
		if apiResp.Error != nil {
			return nil, fmt.Errorf("%s: %s", apiResp.Error.Code, apiResp.Error.Message)
		}
		return nil, fmt.Errorf("unknown error (status %d)", resp.StatusCode)
	}

	var data ConvertResponse
	if err := json.Unmarshal(apiResp.Data, &data); err != nil {
		return nil, fmt.Errorf("data parse error: %w", err)
	}

	return &data, nil
}

func analyzeResults(results []TestResult, maxDrift int) *Analysis {
	analysis := &Analysis{
		ByDrift: make(map[int]int),
		ByYear:  make(map[int]*YearStats),
	}

	for _, r := range results {
		analysis.TotalDays++

		date, _ := time.Parse("2006-01-02", r.Date)
		year := date.Year()
		if _, ok := analysis.ByYear[year]; !ok {
			analysis.ByYear[year] = &YearStats{Year: year}
		}
		stats := analysis.ByYear[year]
		stats.Days++

		if r.Error == "" {
			analysis.ByDrift[r.Drift]++
			stats.MaxDrift = max(stats.MaxDrift, abs(r.Drift))
			analysis.MaxDrift = max(analysis.MaxDrift, abs(r.Drift))
			if r.Drift == 0 {
				analysis.TotalExact++
				stats.Exact++
			} else {
				stats.Drifted++
			}
		}

		if r.failed(maxDrift) {
			analysis.TotalFailed++
			stats.Failed++
			analysis.AllFailures = append(analysis.AllFailures, r)
		}
	}

	return analysis
}

func printSummary(analysis *Analysis, startYear, endYear int) {
	fmt.Println("================================================================")
	fmt.Println("SUMMARY")
	fmt.Println("================================================================")
	fmt.Printf("Total Days Tested: %d\n", analysis.TotalDays)
	fmt.Printf("Exact Round Trip:  %d (%.1f%%)\n", analysis.TotalExact,
		float64(analysis.TotalExact)/float64(analysis.TotalDays)*100)
	fmt.Printf("Failed:            %d\n", analysis.TotalFailed)
	fmt.Printf("Largest Drift:     %d days\n", analysis.MaxDrift)
	fmt.Println()

	fmt.Println("Drift Distribution:")
	drifts := make([]int, 0, len(analysis.ByDrift))
	for d := range analysis.ByDrift {
		drifts = append(drifts, d)
	}
	sort.Ints(drifts)
	for _, d := range drifts {
		fmt.Printf("  %+d days: %d\n", d, analysis.ByDrift[d])
	}
	fmt.Println()

	fmt.Println("By Year:")
	for year := startYear; year <= endYear; year++ {
		if stats, ok := analysis.ByYear[year]; ok {
			status := "✓"
			if stats.Failed > 0 {
				status = "✗"
			}
			fmt.Printf("  %s %d: %d/%d exact, max drift %d\n",
				status, year, stats.Exact, stats.Days, stats.MaxDrift)
		}
	}
	fmt.Println()
}

func printFailures(analysis *Analysis) {
	if analysis.TotalFailed == 0 {
		fmt.Println("No failures!")
		return
	}

	fmt.Println("================================================================")
	fmt.Println("FAILURES (Date | Hijri | Back | Reason)")
	fmt.Println("================================================================")

	for i, f := range analysis.AllFailures {
		if i >= 50 {
			fmt.Printf("  ... and %d more\n", len(analysis.AllFailures)-50)
			break
		}
		reason := f.Error
		switch {
		case reason != "":
		case f.Mismatch:
			reason = "API disagrees with local conversion"
		default:
			reason = fmt.Sprintf("drift %+d days", f.Drift)
		}
		fmt.Printf("  %s | %s | %s | %s\n", f.Date, f.Hijri, f.Back, reason)
	}
	fmt.Println()
}

func saveResults(filename string, analysis *Analysis) {
	years := make([]*YearStats, 0, len(analysis.ByYear))
	for _, s := range analysis.ByYear {
		years = append(years, s)
	}
	sort.Slice(years, func(i, j int) bool { return years[i].Year < years[j].Year })

	output := struct {
		GeneratedAt string                 `json:"generated_at"`
		Summary     map[string]interface{} `json:"summary"`
		ByYear      []*YearStats           `json:"by_year"`
		Failures    []TestResult           `json:"failures"`
	}{
		GeneratedAt: time.Now().Format(time.RFC3339),
		Summary: map[string]interface{}{
			"total_days":   analysis.TotalDays,
			"total_exact":  analysis.TotalExact,
			"total_failed": analysis.TotalFailed,
			"max_drift":    analysis.MaxDrift,
			"exact_rate":   fmt.Sprintf("%.2f%%", float64(analysis.TotalExact)/float64(analysis.TotalDays)*100),
		},
		ByYear:   years,
		Failures: analysis.AllFailures,
	}

	data, err := json.MarshalIndent(output, "", "  ")
	if err != nil {
		fmt.Printf("Error marshaling results: %v\n", err)
		return
	}

	if err := os.WriteFile(filename, data, 0644); err != nil {
		fmt.Printf("Error writing file: %v\n", err)
		return
	}

	fmt.Printf("Results saved to: %s\n", filename)
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
