package definition

import (
	"fmt"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

var (
	// ErrDefinitionNotFound возвращается, когда определение не найдено
	ErrDefinitionNotFound = fmt.Errorf("%w: definition.repository: definition not found", domain.ErrNotFound)

	// ErrDefinitionInUse возвращается при удалении определения, на которое ссылаются слоты
	ErrDefinitionInUse = fmt.Errorf("%w: definition.repository: definition is referenced by slots", domain.ErrConflict)

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = fmt.Errorf("%w: definition.repository: failed to build query", domain.ErrPersistence)

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = fmt.Errorf("%w: definition.repository: failed to execute query", domain.ErrPersistence)

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = fmt.Errorf("%w: definition.repository: failed to scan row", domain.ErrPersistence)
)
