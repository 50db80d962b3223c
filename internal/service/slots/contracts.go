package slots

import (
	"context"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	Create(ctx context.Context, slot *domain.Slot) (*domain.Slot, error)
	GetByID(ctx context.Context, id int64) (*domain.Slot, error)
	Update(ctx context.Context, id int64, patch domain.SlotPatch) (*domain.Slot, error)
	Transition(ctx context.Context, id int64, tr domain.StatusTransition) (*domain.Slot, error)
	TransitionMany(ctx context.Context, ids []int64, tr domain.StatusTransition) ([]int64, error)
	Delete(ctx context.Context, id int64) error
	DeleteMany(ctx context.Context, ids []int64) (int64, error)
	List(ctx context.Context, filter domain.SlotFilter, page domain.Page) (domain.SlotPage, error)
}

// DefinitionRepository интерфейс репозитория определений
type DefinitionRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.AppointmentDefinition, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
