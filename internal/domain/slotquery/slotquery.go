// Package slotquery filters and paginates slots in memory. The Postgres
// repository renders the same predicates in SQL.
package slotquery

import (
	"sort"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// Predicate reports whether a slot matches
type Predicate func(s *domain.Slot) bool

// Predicates translates a filter into independent predicates
func Predicates(f domain.SlotFilter) []Predicate {
	preds := make([]Predicate, 0, 7)

	if f.DefinitionID != nil {
		id := *f.DefinitionID
		preds = append(preds, func(s *domain.Slot) bool { return s.DefinitionID == id })
	}
	if f.Status != nil {
		status := *f.Status
		preds = append(preds, func(s *domain.Slot) bool { return s.Status == status })
	}

	from, to := f.DateBounds()
	if from != nil {
		preds = append(preds, func(s *domain.Slot) bool { return !s.Date.Before(*from) })
	}
	if to != nil {
		preds = append(preds, func(s *domain.Slot) bool { return !s.Date.After(*to) })
	}

	if f.PersonID != nil {
		id := *f.PersonID
		preds = append(preds, func(s *domain.Slot) bool {
			return s.Assignment.Kind() == domain.AssignmentPerson && s.Assignment.ID() == id
		})
	}
	if f.CounterpartyID != nil {
		id := *f.CounterpartyID
		preds = append(preds, func(s *domain.Slot) bool {
			return s.Assignment.Kind() == domain.AssignmentCounterparty && s.Assignment.ID() == id
		})
	}
	if f.IsActive != nil {
		active := *f.IsActive
		preds = append(preds, func(s *domain.Slot) bool { return s.IsActive == active })
	}

	return preds
}

// Filter returns the slots matching every predicate of f, ordered by start
// time then id. The input slice is not modified.
func Filter(slots []*domain.Slot, f domain.SlotFilter) []*domain.Slot {
	preds := Predicates(f)
	out := make([]*domain.Slot, 0, len(slots))

next:
	for _, s := range slots {
		for _, p := range preds {
			if !p(s) {
				continue next
			}
		}
		out = append(out, s)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].StartAt.Equal(out[j].StartAt) {
			return out[i].StartAt.Before(out[j].StartAt)
		}
		return out[i].ID < out[j].ID
	})

	return out
}

// Paginate cuts one page out of an already filtered list
func Paginate(slots []*domain.Slot, page domain.Page) domain.SlotPage {
	page = page.Normalize()
	total := len(slots)

	start := page.Offset()
	if start < 0 || start > total {
		start = total
	}
	end := start + page.Size
	if end > total {
		end = total
	}

	items := make([]*domain.Slot, end-start)
	copy(items, slots[start:end])

	return domain.SlotPage{Items: items, TotalCount: total}
}
