package slot

import (
	"fmt"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

var (
	// ErrSlotNotFound возвращается, когда слот не найден
	ErrSlotNotFound = fmt.Errorf("%w: slot.repository: slot not found", domain.ErrNotFound)

	// ErrStatusConflict возвращается, когда условный переход статуса не применился к существующему слоту
	ErrStatusConflict = fmt.Errorf("%w: slot.repository: slot status does not allow this transition", domain.ErrConflict)

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = fmt.Errorf("%w: slot.repository: failed to build query", domain.ErrPersistence)

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = fmt.Errorf("%w: slot.repository: failed to execute query", domain.ErrPersistence)

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = fmt.Errorf("%w: slot.repository: failed to scan row", domain.ErrPersistence)
)
