package database

import (
	"time"

	"github.com/zapponejosh/hijri-calendar-api/internal/calendar"
)

// Conversion is one recorded calendar conversion.
type Conversion struct {
	ID        int64         `json:"id"`
	Input     calendar.Date `json:"input"`
	Output    calendar.Date `json:"output"`
	Adjusted  bool          `json:"adjusted"` // input day was clamped
	RequestID *string       `json:"request_id,omitempty"`
	CreatedAt time.Time     `json:"created_at"`
}

// ConversionStats summarises the stored history.
type ConversionStats struct {
	Total         int        `json:"total"`
	FromGregorian int        `json:"from_gregorian"`
	FromHijri     int        `json:"from_hijri"`
	Adjusted      int        `json:"adjusted"`
	LastAt        *time.Time `json:"last_at,omitempty"`
}
