package generate_slots

import (
	"fmt"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

var (
	// ErrDefinitionNotFound возвращается, когда определение не найдено
	ErrDefinitionNotFound = fmt.Errorf("%w: generate_slots: definition not found", domain.ErrNotFound)

	// ErrNothingCreated возвращается, когда ни одна пачка слотов не была сохранена
	ErrNothingCreated = fmt.Errorf("%w: generate_slots: no slots were created", domain.ErrPersistence)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = fmt.Errorf("%w: generate_slots: internal error", domain.ErrPersistence)
)
