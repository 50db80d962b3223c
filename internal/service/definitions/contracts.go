package definitions

import (
	"context"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// DefinitionRepository интерфейс репозитория определений
type DefinitionRepository interface {
	Create(ctx context.Context, def *domain.AppointmentDefinition) (*domain.AppointmentDefinition, error)
	GetByID(ctx context.Context, id int64) (*domain.AppointmentDefinition, error)
	ListAll(ctx context.Context) ([]*domain.AppointmentDefinition, error)
	Update(ctx context.Context, def *domain.AppointmentDefinition) (*domain.AppointmentDefinition, error)
	Delete(ctx context.Context, id int64) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
