package domain

// Definition validation limits
const (
	MinSlotDurationMinutes = 5
	MaxSlotDurationMinutes = 240
	MinMaxOccupants        = 1
	MaxNameLength          = 200
	MaxLocationLength      = 200
	MaxNoteLength          = 1000
	MaxReasonLength        = 500
)

// Pagination defaults
const (
	DefaultPageSize = 20
	MaxPageSize     = 200
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// MinutesInDay is added to the window end when the window wraps past midnight
const MinutesInDay = 24 * 60
