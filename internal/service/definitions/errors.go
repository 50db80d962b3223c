package definitions

import (
	"fmt"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

var (
	// ErrDefinitionNotFound возвращается, когда определение не найдено
	ErrDefinitionNotFound = fmt.Errorf("%w: definitions: definition not found", domain.ErrNotFound)

	// ErrDefinitionInUse возвращается при удалении определения, у которого есть слоты
	ErrDefinitionInUse = fmt.Errorf("%w: definitions: definition has slots, deactivate it instead", domain.ErrConflict)

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = fmt.Errorf("%w: definitions: internal error", domain.ErrPersistence)
)
