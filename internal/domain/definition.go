package domain

import (
	"sort"
	"strings"
	"time"

	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// Weekdays is a set of active weekdays, Sunday=0 ... Saturday=6
type Weekdays []int

// Contains reports whether the weekday is in the set
func (w Weekdays) Contains(day time.Weekday) bool {
	for _, d := range w {
		if d == int(day) {
			return true
		}
	}
	return false
}

// Normalize returns a sorted copy without duplicates
func (w Weekdays) Normalize() Weekdays {
	seen := make(map[int]struct{}, len(w))
	out := make(Weekdays, 0, len(w))
	for _, d := range w {
		if _, ok := seen[d]; ok {
			continue
		}
		seen[d] = struct{}{}
		out = append(out, d)
	}
	sort.Ints(out)
	return out
}

// AppointmentDefinition is a recurring weekly appointment template
type AppointmentDefinition struct {
	ID                  int64
	Name                string
	Description         *string
	Weekdays            Weekdays
	WindowStart         types.TimeString
	WindowEnd           types.TimeString
	SlotDurationMinutes int
	MaxOccupants        int
	Location            *string
	IsActive            bool
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// DefinitionPatch carries the fields of a partial update; nil means "keep".
// An empty Description or Location clears the stored value.
type DefinitionPatch struct {
	Name                *string
	Description         *string
	Weekdays            *Weekdays
	WindowStart         *types.TimeString
	WindowEnd           *types.TimeString
	SlotDurationMinutes *int
	MaxOccupants        *int
	Location            *string
	IsActive            *bool
}

// Apply returns a copy of d with the patch applied
func (p DefinitionPatch) Apply(d AppointmentDefinition) AppointmentDefinition {
	if p.Name != nil {
		d.Name = *p.Name
	}
	if p.Description != nil {
		d.Description = clearable(p.Description)
	}
	if p.Weekdays != nil {
		d.Weekdays = *p.Weekdays
	}
	if p.WindowStart != nil {
		d.WindowStart = *p.WindowStart
	}
	if p.WindowEnd != nil {
		d.WindowEnd = *p.WindowEnd
	}
	if p.SlotDurationMinutes != nil {
		d.SlotDurationMinutes = *p.SlotDurationMinutes
	}
	if p.MaxOccupants != nil {
		d.MaxOccupants = *p.MaxOccupants
	}
	if p.Location != nil {
		d.Location = clearable(p.Location)
	}
	if p.IsActive != nil {
		d.IsActive = *p.IsActive
	}
	return d
}

func clearable(v *string) *string {
	if *v == "" {
		return nil
	}
	return v
}

// WindowMinutes returns the window bounds in minutes from midnight.
// When the end hour is before the start hour the window ends on the next day
// and 1440 is added to the end.
func (d *AppointmentDefinition) WindowMinutes() (start, end int) {
	start = d.WindowStart.Minutes()
	end = d.WindowEnd.Minutes()
	if d.WindowEnd.Hour() < d.WindowStart.Hour() {
		end += MinutesInDay
	}
	return start, end
}

// SlotsPerDay is floor(window / duration). A zero duration or an inverted
// window yields 0 instead of an error.
func (d *AppointmentDefinition) SlotsPerDay() int {
	if d.SlotDurationMinutes <= 0 {
		return 0
	}
	start, end := d.WindowMinutes()
	n := (end - start) / d.SlotDurationMinutes
	if n < 0 {
		return 0
	}
	return n
}

// Validate checks every field and reports all violations at once
func (d *AppointmentDefinition) Validate() error {
	verr := &ValidationError{}

	name := strings.TrimSpace(d.Name)
	switch {
	case name == "":
		verr.Add("name", "must not be empty")
	case len(name) > MaxNameLength:
		verr.Add("name", "is too long")
	}

	if len(d.Weekdays) == 0 {
		verr.Add("weekdays", "at least one weekday is required")
	}
	for _, day := range d.Weekdays {
		if day < int(time.Sunday) || day > int(time.Saturday) {
			verr.Add("weekdays", "weekday must be between 0 (Sunday) and 6 (Saturday)")
			break
		}
	}

	startOK := d.WindowStart.Validate() == nil
	endOK := d.WindowEnd.Validate() == nil
	if !startOK {
		verr.Add("windowStart", "must be a valid HH:MM time")
	}
	if !endOK {
		verr.Add("windowEnd", "must be a valid HH:MM time")
	}
	if startOK && endOK {
		start, end := d.WindowMinutes()
		if end <= start {
			verr.Add("windowEnd", "must be after windowStart")
		}
	}

	if d.SlotDurationMinutes < MinSlotDurationMinutes || d.SlotDurationMinutes > MaxSlotDurationMinutes {
		verr.Add("slotDurationMinutes", "must be between 5 and 240")
	}

	if d.MaxOccupants < MinMaxOccupants {
		verr.Add("maxOccupants", "must be at least 1")
	}

	if d.Location != nil && len(*d.Location) > MaxLocationLength {
		verr.Add("location", "is too long")
	}

	return verr.OrNil()
}
