package generate_slots

import (
	"fmt"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// validateRequest проверяет обязательные поля запроса
func validateRequest(req *Request) error {
	verr := &domain.ValidationError{}

	if req.DefinitionID <= 0 {
		verr.Add("definitionId", "must be positive")
	}
	if req.StartDate.IsZero() {
		verr.Add("startDate", "is required")
	}
	if req.EndDate.IsZero() {
		verr.Add("endDate", "is required")
	}
	if !req.StartDate.IsZero() && !req.EndDate.IsZero() && req.EndDate.Before(req.StartDate) {
		verr.Add("endDate", "must not be before startDate")
	}

	return verr.OrNil()
}

// validateRange ограничивает длину диапазона при сохранении
func validateRange(req *Request, maxDays int) error {
	if maxDays <= 0 {
		return nil
	}
	if days := Days(req.StartDate, req.EndDate); days > maxDays {
		return domain.NewValidationError("endDate", fmt.Sprintf("range of %d days exceeds the limit of %d days", days, maxDays))
	}
	return nil
}
