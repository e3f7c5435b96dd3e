package database

// migrationsSQL contains all database migrations.
// Migrations are applied in order by version number.
var migrationsSQL = map[int]string{
	1: migrationV1Conversions,
	2: migrationV2ConversionIndexes,
}

// migrationV1Conversions creates the conversion history table.
//
// Dates are stored as YYYY-MM-DD text next to their calendar system. Lunar
// dates like 1446-02-30 are not valid SQLite dates, so no date functions are
// applied to them.
const migrationV1Conversions = `
CREATE TABLE IF NOT EXISTS conversions (
    id INTEGER PRIMARY KEY AUTOINCREMENT,

    -- What the caller asked for
    input_calendar TEXT NOT NULL CHECK (input_calendar IN ('gregorian', 'hijri')),
    input_date TEXT NOT NULL,

    -- What the converter returned
    output_calendar TEXT NOT NULL CHECK (output_calendar IN ('gregorian', 'hijri')),
    output_date TEXT NOT NULL,

    -- 1 when the input day was clamped to the month maximum
    adjusted INTEGER NOT NULL DEFAULT 0,

    request_id TEXT,

    created_at TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%fZ', 'now'))
);
`

// migrationV2ConversionIndexes adds indexes for the history listing.
const migrationV2ConversionIndexes = `
CREATE INDEX IF NOT EXISTS idx_conversions_created
    ON conversions(created_at);

CREATE INDEX IF NOT EXISTS idx_conversions_input_calendar
    ON conversions(input_calendar);
`
