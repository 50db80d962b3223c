package domain

import (
	"errors"
	"strings"
	"time"
)

// SlotStatus represents the lifecycle state of a slot
type SlotStatus string

const (
	SlotOpen     SlotStatus = "open"
	SlotReserved SlotStatus = "reserved"
	SlotClosed   SlotStatus = "closed"
)

// ErrUnknownStatus is returned by ParseSlotStatus
var ErrUnknownStatus = errors.New("unknown slot status")

// statusAliases maps accepted spellings (including the labels used by the
// membership UI) to statuses
var statusAliases = map[string]SlotStatus{
	"open":     SlotOpen,
	"açık":     SlotOpen,
	"reserved": SlotReserved,
	"rezerve":  SlotReserved,
	"closed":   SlotClosed,
	"kapalı":   SlotClosed,
}

// allStatusAliases disable the status filter
var allStatusAliases = map[string]struct{}{
	"":     {},
	"all":  {},
	"tümü": {},
}

// ParseSlotStatus converts user input into a status
func ParseSlotStatus(s string) (SlotStatus, error) {
	status, ok := statusAliases[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return "", ErrUnknownStatus
	}
	return status, nil
}

// ParseSlotStatusFilter is ParseSlotStatus for list filters: "all" and empty
// input return nil, which means "any status"
func ParseSlotStatusFilter(s string) (*SlotStatus, error) {
	if _, ok := allStatusAliases[strings.ToLower(strings.TrimSpace(s))]; ok {
		return nil, nil
	}
	status, err := ParseSlotStatus(s)
	if err != nil {
		return nil, err
	}
	return &status, nil
}

// IsValid reports whether s is one of the known statuses
func (s SlotStatus) IsValid() bool {
	return s == SlotOpen || s == SlotReserved || s == SlotClosed
}

// Slot is one concrete bookable time interval generated from a definition
type Slot struct {
	ID           int64
	DefinitionID int64
	Date         time.Time // calendar day, time part is zero
	StartAt      time.Time
	EndAt        time.Time // fixed at creation, never re-derived from the definition
	Status       SlotStatus
	Assignment   Assignment
	Note         string
	CloseReason  *string
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsOpen returns true if the slot can be reserved
func (s *Slot) IsOpen() bool {
	return s.Status == SlotOpen
}

// IsReserved returns true if the slot is held by a person or counterparty
func (s *Slot) IsReserved() bool {
	return s.Status == SlotReserved
}

// Duration of the slot
func (s *Slot) Duration() time.Duration {
	return s.EndAt.Sub(s.StartAt)
}

// Validate checks the slot invariants
func (s *Slot) Validate() error {
	verr := &ValidationError{}

	if s.DefinitionID <= 0 {
		verr.Add("definitionId", "is required")
	}
	if s.StartAt.IsZero() {
		verr.Add("startAt", "is required")
	}
	if s.EndAt.IsZero() {
		verr.Add("endAt", "is required")
	}
	if !s.StartAt.IsZero() && !s.EndAt.IsZero() && !s.EndAt.After(s.StartAt) {
		verr.Add("endAt", "must be after startAt")
	}
	if !s.Status.IsValid() {
		verr.Add("status", "must be one of open, reserved, closed")
	}
	if !s.Assignment.IsNone() && s.Status != SlotReserved {
		verr.Add("status", "an assigned slot must be reserved")
	}
	if s.Assignment.IsNone() && s.Status == SlotReserved {
		verr.Add("assignment", "a reserved slot needs a person or counterparty")
	}
	if len(s.Note) > MaxNoteLength {
		verr.Add("note", "is too long")
	}

	return verr.OrNil()
}

// DateOf truncates a timestamp to its calendar day in the same location
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// SlotPatch carries the editable, non-lifecycle fields of a slot.
// Status and assignment only change through SetStatus and Reserve.
type SlotPatch struct {
	StartAt  *time.Time
	EndAt    *time.Time
	Note     *string
	IsActive *bool
}

// IsEmpty reports whether the patch changes nothing
func (p SlotPatch) IsEmpty() bool {
	return p.StartAt == nil && p.EndAt == nil && p.Note == nil && p.IsActive == nil
}

// Apply returns a copy of s with the patch applied
func (p SlotPatch) Apply(s Slot) Slot {
	if p.StartAt != nil {
		s.StartAt = *p.StartAt
		s.Date = DateOf(*p.StartAt)
	}
	if p.EndAt != nil {
		s.EndAt = *p.EndAt
	}
	if p.Note != nil {
		s.Note = *p.Note
	}
	if p.IsActive != nil {
		s.IsActive = *p.IsActive
	}
	return s
}

// StatusTransition is the conditional update performed by the state engine:
// the slot moves to To only if its current status is one of From.
type StatusTransition struct {
	From       []SlotStatus
	To         SlotStatus
	Assignment Assignment // value written together with the status
	Note       *string    // nil keeps the current note
	Reason     *string    // close reason; cleared for non-closed targets
}

// TransitionTo describes a setStatus call. Reserving is not a setStatus
// target; it goes through ReserveTransition.
func TransitionTo(target SlotStatus, reason *string) (StatusTransition, error) {
	switch target {
	case SlotClosed:
		return StatusTransition{
			From:   []SlotStatus{SlotOpen, SlotReserved, SlotClosed},
			To:     SlotClosed,
			Reason: reason,
		}, nil
	case SlotOpen:
		// Cancel a reservation or reopen a closed slot; assignment is cleared
		return StatusTransition{
			From: []SlotStatus{SlotOpen, SlotReserved, SlotClosed},
			To:   SlotOpen,
		}, nil
	case SlotReserved:
		return StatusTransition{}, NewValidationError("status", "use the reserve operation to reserve a slot")
	default:
		return StatusTransition{}, NewValidationError("status", "must be one of open, closed")
	}
}

// ReserveTransition describes open -> reserved for the given assignee
func ReserveTransition(assignment Assignment, note *string) StatusTransition {
	return StatusTransition{
		From:       []SlotStatus{SlotOpen},
		To:         SlotReserved,
		Assignment: assignment,
		Note:       note,
	}
}

// Allows reports whether the transition may start from status
func (t StatusTransition) Allows(status SlotStatus) bool {
	for _, s := range t.From {
		if s == status {
			return true
		}
	}
	return false
}
