package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/zapponejosh/hijri-calendar-api/internal/calendar"
)

// =============================================================================
// Helper Functions
// =============================================================================

// parseTimestamp parses a timestamp from SQLite TEXT format.
// Tries multiple formats and returns nil if parsing fails.
func parseTimestamp(ns sql.NullString) *time.Time {
	if !ns.Valid || ns.String == "" {
		return nil
	}

	for _, layout := range []string{
		time.RFC3339Nano,
		"2006-01-02 15:04:05",
		"2006-01-02T15:04:05.999999",
	} {
		if t, err := time.Parse(layout, ns.String); err == nil {
			return &t
		}
	}

	return nil
}

// NullString converts a sql.NullString to a *string.
func NullString(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	return &ns.String
}

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanConversion(s scanner) (*Conversion, error) {
	var c Conversion
	var inCal, inDate, outCal, outDate string
	var requestID, createdAt sql.NullString

	if err := s.Scan(&c.ID, &inCal, &inDate, &outCal, &outDate, &c.Adjusted, &requestID, &createdAt); err != nil {
		return nil, err
	}

	var err error
	if c.Input, err = parseStoredDate(inDate, inCal); err != nil {
		return nil, fmt.Errorf("conversion %d input: %w", c.ID, err)
	}
	if c.Output, err = parseStoredDate(outDate, outCal); err != nil {
		return nil, fmt.Errorf("conversion %d output: %w", c.ID, err)
	}

	c.RequestID = NullString(requestID)
	if t := parseTimestamp(createdAt); t != nil {
		c.CreatedAt = *t
	}

	return &c, nil
}

func parseStoredDate(date, cal string) (calendar.Date, error) {
	sys, err := calendar.ParseSystem(cal)
	if err != nil {
		return calendar.Date{}, err
	}
	return calendar.ParseDate(date, sys)
}

const conversionColumns = `id, input_calendar, input_date, output_calendar, output_date, adjusted, request_id, created_at`

// timestampLayout matches the created_at default so stored values compare
// correctly as text.
const timestampLayout = "2006-01-02T15:04:05.000Z"

// =============================================================================
// Conversion Queries
// =============================================================================

// queryRower is satisfied by *DB and *Tx.
type queryRower interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// RecordConversion stores a conversion and fills in its ID and CreatedAt.
func (db *DB) RecordConversion(ctx context.Context, c *Conversion) error {
	return insertConversion(ctx, db, c)
}

// InsertConversion stores c inside the transaction. A non-zero CreatedAt is
// kept, which lets imported history retain its original timestamps.
func (tx *Tx) InsertConversion(ctx context.Context, c *Conversion) error {
	return insertConversion(ctx, tx, c)
}

func insertConversion(ctx context.Context, q queryRower, c *Conversion) error {
	// Rows must parse back through calendar.ParseDate.
	for _, d := range []calendar.Date{c.Input, c.Output} {
		if err := calendar.CheckYear(d); err != nil {
			return fmt.Errorf("insert conversion: %w", err)
		}
	}

	var requestID any
	if c.RequestID != nil && *c.RequestID != "" {
		requestID = *c.RequestID
	}

	var createdAt any
	if !c.CreatedAt.IsZero() {
		createdAt = c.CreatedAt.UTC().Format(timestampLayout)
	}

	var stored string
	err := q.QueryRowContext(ctx, `
		INSERT INTO conversions (input_calendar, input_date, output_calendar, output_date, adjusted, request_id, created_at)
		VALUES (?, ?, ?, ?, ?, ?, COALESCE(?, strftime('%Y-%m-%dT%H:%M:%fZ', 'now')))
		RETURNING id, created_at
	`,
		string(c.Input.System), c.Input.String(),
		string(c.Output.System), c.Output.String(),
		c.Adjusted, requestID, createdAt,
	).Scan(&c.ID, &stored)
	if err != nil {
		return fmt.Errorf("insert conversion: %w", err)
	}

	if t := parseTimestamp(sql.NullString{String: stored, Valid: true}); t != nil {
		c.CreatedAt = *t
	}

	return nil
}

// GetConversion retrieves one conversion by ID.
// Returns ErrNotFound if it doesn't exist.
func (db *DB) GetConversion(ctx context.Context, id int64) (*Conversion, error) {
	row := db.QueryRowContext(ctx, `SELECT `+conversionColumns+` FROM conversions WHERE id = ?`, id)

	c, err := scanConversion(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("query conversion %d: %w", id, err)
	}

	return c, nil
}

// ListConversions returns stored conversions, newest first.
func (db *DB) ListConversions(ctx context.Context, limit, offset int) ([]Conversion, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT `+conversionColumns+`
		FROM conversions
		ORDER BY created_at DESC, id DESC
		LIMIT ? OFFSET ?
	`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("query conversions: %w", err)
	}
	defer rows.Close()

	conversions := []Conversion{}
	for rows.Next() {
		c, err := scanConversion(rows)
		if err != nil {
			return nil, fmt.Errorf("scan conversion: %w", err)
		}
		conversions = append(conversions, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate conversions: %w", err)
	}

	return conversions, nil
}

// GetConversionStats summarises the stored history.
func (db *DB) GetConversionStats(ctx context.Context) (*ConversionStats, error) {
	var stats ConversionStats
	var lastAt sql.NullString

	err := db.QueryRowContext(ctx, `
		SELECT
			COUNT(*),
			COALESCE(SUM(CASE WHEN input_calendar = 'gregorian' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN input_calendar = 'hijri' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(adjusted), 0),
			MAX(created_at)
		FROM conversions
	`).Scan(&stats.Total, &stats.FromGregorian, &stats.FromHijri, &stats.Adjusted, &lastAt)
	if err != nil {
		return nil, fmt.Errorf("query conversion stats: %w", err)
	}

	stats.LastAt = parseTimestamp(lastAt)

	return &stats, nil
}

// PruneConversions deletes conversions recorded before cutoff and returns
// how many were removed.
func (db *DB) PruneConversions(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := db.ExecContext(ctx,
		`DELETE FROM conversions WHERE created_at < ?`,
		cutoff.UTC().Format(timestampLayout),
	)
	if err != nil {
		return 0, fmt.Errorf("prune conversions: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("prune conversions rows affected: %w", err)
	}

	db.logger.Info("pruned conversion history", "removed", n)

	return n, nil
}
