// Command import loads exported conversion history into the SQLite database.
//
// Usage:
//
//	curl -H "X-API-Key: $API_KEY" 'http://old-host/api/v1/history?limit=100' > history.json
//	go run ./cmd/import -json history.json -db data/hijri.db
//
// This tool:
// 1. Parses the JSON file (a /history response body, its data object, or a bare array)
// 2. Creates/opens the SQLite database and runs migrations
// 3. Re-checks every output against the local calendar arithmetic
// 4. Imports all conversions in a single transaction, keeping their timestamps
//
// Any mismatch aborts the import unless -force is given.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/zapponejosh/hijri-calendar-api/internal/calendar"
	"github.com/zapponejosh/hijri-calendar-api/internal/database"
)

func main() {
	// Parse command line flags
	jsonPath := flag.String("json", "history.json", "Path to exported history JSON")
	dbPath := flag.String("db", "data/hijri.db", "Path to SQLite database")
	force := flag.Bool("force", false, "Import conversions that disagree with local arithmetic")
	verbose := flag.Bool("v", false, "Verbose output")
	flag.Parse()

	// Setup logger
	logLevel := slog.LevelInfo
	if *verbose {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))

	// Run import
	if err := run(*jsonPath, *dbPath, *force, logger); err != nil {
		logger.Error("import failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("import complete")
}

// historyExport accepts the shapes the history endpoint can produce.
type historyExport struct {
	Data *struct {
		Conversions []database.Conversion `json:"conversions"`
	} `json:"data"`
	Conversions []database.Conversion `json:"conversions"`
}

func parseExport(data []byte) ([]database.Conversion, error) {
	var bare []database.Conversion
	if err := json.Unmarshal(data, &bare); err == nil {
		return bare, nil
	}

	var export historyExport
	if err := json.Unmarshal(data, &export); err != nil {
		return nil, err
	}
	if export.Data != nil {
		return export.Data.Conversions, nil
	}
	if export.Conversions == nil {
		return nil, errors.New("no conversions found")
	}
	return export.Conversions, nil
}

func run(jsonPath, dbPath string, force bool, logger *slog.Logger) error {
	ctx := context.Background()
	startTime := time.Now()

	// =========================================================================
	// Step 1: Read and parse JSON
	// =========================================================================
	logger.Info("reading JSON file", slog.String("path", jsonPath))

	data, err := os.ReadFile(jsonPath)
	if err != nil {
		return fmt.Errorf("read JSON file: %w", err)
	}

	conversions, err := parseExport(data)
	if err != nil {
		return fmt.Errorf("parse JSON: %w", err)
	}

	logger.Info("parsed JSON", slog.Int("conversions", len(conversions)))

	// =========================================================================
	// Step 2: Open database and run migrations
	// =========================================================================
	logger.Info("opening database", slog.String("path", dbPath))

	db, err := database.Open(ctx, database.DefaultConfig(dbPath), logger)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	migrated, err := db.Migrate(ctx)
	if err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}
	logger.Info("migrations complete", slog.Int("applied", migrated))

	// =========================================================================
	// Step 3: Import data in a transaction
	// =========================================================================
	logger.Info("starting import")

	var stats ImportStats
	err = db.WithTx(ctx, func(tx *database.Tx) error {
		return importConversions(ctx, tx, conversions, force, logger, &stats)
	})
	if err != nil {
		return fmt.Errorf("import data: %w", err)
	}

	// =========================================================================
	// Step 4: Verify import
	// =========================================================================
	totals, err := db.GetConversionStats(ctx)
	if err != nil {
		return fmt.Errorf("conversion stats: %w", err)
	}

	elapsed := time.Since(startTime)

	logger.Info("import verified",
		slog.Int("total", totals.Total),
		slog.Int("from_gregorian", totals.FromGregorian),
		slog.Int("from_hijri", totals.FromHijri),
		slog.Duration("elapsed", elapsed),
	)

	// Print summary
	fmt.Println()
	fmt.Println("=== Import Summary ===")
	fmt.Printf("Conversions imported: %d\n", stats.Imported)
	fmt.Printf("Clamped inputs:       %d\n", stats.Adjusted)
	fmt.Printf("Mismatched outputs:   %d\n", stats.Mismatched)
	fmt.Printf("Rows in database:     %d\n", totals.Total)
	fmt.Printf("Time elapsed:         %v\n", elapsed.Round(time.Millisecond))

	return nil
}

// ImportStats tracks import statistics.
type ImportStats struct {
	Imported   int
	Adjusted   int
	Mismatched int
}

// importConversions validates and inserts every conversion.
func importConversions(ctx context.Context, tx *database.Tx, conversions []database.Conversion, force bool, logger *slog.Logger, stats *ImportStats) error {
	for i := range conversions {
		c := conversions[i]

		if err := calendar.Validate(c.Input); err != nil {
			return fmt.Errorf("conversion %d input %s: %w", i+1, c.Input, err)
		}
		if c.Output.System != c.Input.System.Other() {
			return fmt.Errorf("conversion %d: output calendar %q does not pair with %q", i+1, c.Output.System, c.Input.System)
		}

		if want := calendar.Convert(c.Input, c.Output.System); want != c.Output {
			stats.Mismatched++
			if !force {
				return fmt.Errorf("conversion %d: %s converts to %s locally, export says %s", i+1, c.Input, want, c.Output)
			}
			logger.Warn("importing mismatched conversion",
				slog.String("input", c.Input.String()),
				slog.String("local", want.String()),
				slog.String("exported", c.Output.String()),
			)
		}

		// IDs are reassigned by this database.
		c.ID = 0
		if err := tx.InsertConversion(ctx, &c); err != nil {
			return fmt.Errorf("insert conversion %d: %w", i+1, err)
		}

		stats.Imported++
		if c.Adjusted {
			stats.Adjusted++
		}

		// Progress logging every 500 conversions
		if (i+1)%500 == 0 {
			logger.Debug("import progress",
				slog.Int("position", i+1),
				slog.Int("total", len(conversions)),
			)
		}
	}

	return nil
}
