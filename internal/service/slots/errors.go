package slots

import (
	"fmt"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

var (
	// ErrSlotNotFound возвращается, когда слот не найден
	ErrSlotNotFound = fmt.Errorf("%w: slots: slot not found", domain.ErrNotFound)

	// ErrDefinitionNotFound возвращается, когда слот ссылается на несуществующее определение
	ErrDefinitionNotFound = fmt.Errorf("%w: slots: definition not found", domain.ErrNotFound)

	// ErrStatusConflict возвращается, когда текущий статус слота не допускает переход
	ErrStatusConflict = fmt.Errorf("%w: slots: status transition not allowed", domain.ErrConflict)

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = fmt.Errorf("%w: slots: internal error", domain.ErrPersistence)
)
