package reserve_slot

import (
	"context"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	// Transition атомарно применяет переход статуса
	Transition(ctx context.Context, id int64, tr domain.StatusTransition) (*domain.Slot, error)
}

// Metrics доменные метрики резервирования
type Metrics interface {
	RecordReservation(outcome string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
