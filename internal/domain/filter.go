package domain

import (
	"math"
	"time"
)

// SlotFilter selects slots for listing. Every non-nil field is ANDed.
type SlotFilter struct {
	DefinitionID   *int64
	Status         *SlotStatus // nil = any status
	StartDate      *time.Time  // slot date >= start of this day
	EndDate        *time.Time  // slot date <= end of this day (23:59:59)
	PersonID       *int64
	CounterpartyID *int64
	IsActive       *bool
}

// DateBounds returns the filter dates normalised to 00:00:00 of the start day
// and 23:59:59 of the end day, in each date's own location
func (f SlotFilter) DateBounds() (from, to *time.Time) {
	if f.StartDate != nil {
		d := DateOf(*f.StartDate)
		from = &d
	}
	if f.EndDate != nil {
		d := DateOf(*f.EndDate).Add(24*time.Hour - time.Second)
		to = &d
	}
	return from, to
}

// Page is a 1-based page request
type Page struct {
	Number int
	Size   int
}

// Normalize applies defaults, caps the page size and keeps Offset within int
func (p Page) Normalize() Page {
	if p.Number < 1 {
		p.Number = 1
	}
	if p.Size < 1 {
		p.Size = DefaultPageSize
	}
	if p.Size > MaxPageSize {
		p.Size = MaxPageSize
	}
	if maxNumber := math.MaxInt/p.Size + 1; p.Number > maxNumber {
		p.Number = maxNumber
	}
	return p
}

// Offset number of items to skip
func (p Page) Offset() int {
	return (p.Number - 1) * p.Size
}

// SlotPage is one page of filtered slots plus the total number of matches
type SlotPage struct {
	Items      []*Slot
	TotalCount int
}
