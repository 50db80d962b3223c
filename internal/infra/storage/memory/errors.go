package memory

import (
	"fmt"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

var (
	// ErrDefinitionNotFound возвращается, когда определение не найдено
	ErrDefinitionNotFound = fmt.Errorf("%w: memory: definition not found", domain.ErrNotFound)

	// ErrDefinitionInUse возвращается при удалении определения, на которое ссылаются слоты
	ErrDefinitionInUse = fmt.Errorf("%w: memory: definition is referenced by slots", domain.ErrConflict)

	// ErrSlotNotFound возвращается, когда слот не найден
	ErrSlotNotFound = fmt.Errorf("%w: memory: slot not found", domain.ErrNotFound)

	// ErrStatusConflict возвращается, когда текущий статус слота не допускает переход
	ErrStatusConflict = fmt.Errorf("%w: memory: slot status does not allow transition", domain.ErrConflict)

	// ErrUnknownDefinition возвращается при создании слота для несуществующего определения
	ErrUnknownDefinition = fmt.Errorf("%w: memory: slot references unknown definition", domain.ErrPersistence)
)
