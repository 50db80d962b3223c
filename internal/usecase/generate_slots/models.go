package generate_slots

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// Request модель запроса на генерацию слотов
type Request struct {
	DefinitionID int64
	StartDate    time.Time // Первый день диапазона (включительно)
	EndDate      time.Time // Последний день диапазона (включительно)
}

// Summary итоги генерации по диапазону
type Summary struct {
	TotalDays    int // Дней в диапазоне
	MatchingDays int // Дней, попавших в дни недели определения
	SlotsPerDay  int // Слотов в одном подходящем дне
	TotalSlots   int // MatchingDays * SlotsPerDay
}

// CommitResponse результат сохранения сгенерированных слотов
type CommitResponse struct {
	BatchID      string
	Summary      Summary
	CreatedCount int
	FailedCount  int
	Slots        []*domain.Slot
}
