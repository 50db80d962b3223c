package generate_slots

import (
	"context"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// DefinitionRepository интерфейс репозитория определений
type DefinitionRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.AppointmentDefinition, error)
}

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	// CreateBatch вставляет пачку слотов одним запросом
	CreateBatch(ctx context.Context, slots []*domain.Slot) ([]*domain.Slot, error)
}

// Metrics доменные метрики генерации
type Metrics interface {
	RecordSlotsGenerated(count int)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
