package reserve_slot

import (
	"fmt"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

var (
	// ErrSlotNotFound возвращается, когда слот не найден
	ErrSlotNotFound = fmt.Errorf("%w: reserve_slot: slot not found", domain.ErrNotFound)

	// ErrSlotNotAvailable возвращается, когда слот не открыт или уже назначен
	ErrSlotNotAvailable = fmt.Errorf("%w: reserve_slot: slot is not available", domain.ErrConflict)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = fmt.Errorf("%w: reserve_slot: internal error", domain.ErrPersistence)
)
