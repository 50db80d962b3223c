package reserve_slot

import (
	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// validateRequest проверяет запрос и собирает назначение
func validateRequest(req *Request) (domain.Assignment, error) {
	verr := &domain.ValidationError{}

	if req.SlotID <= 0 {
		verr.Add("slotId", "must be positive")
	}
	if req.PersonID != nil && *req.PersonID <= 0 {
		verr.Add("personId", "must be positive")
	}
	if req.CounterpartyID != nil && *req.CounterpartyID <= 0 {
		verr.Add("counterpartyId", "must be positive")
	}
	if req.Notes != nil && len(*req.Notes) > domain.MaxNoteLength {
		verr.Add("notes", "is too long")
	}

	assignment, err := domain.AssignmentFromIDs(req.PersonID, req.CounterpartyID)
	if err != nil || assignment.IsNone() {
		verr.Add("assignment", "exactly one of personId and counterpartyId is required")
	}

	if err := verr.OrNil(); err != nil {
		return domain.Assignment{}, err
	}
	return assignment, nil
}
