package reserve_slot

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/metrics"
)

// UseCase use case резервирования слота
type UseCase struct {
	slotRepo SlotRepository
	metrics  Metrics
	logger   Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(slotRepo SlotRepository, metrics Metrics, logger Logger) *UseCase {
	return &UseCase{
		slotRepo: slotRepo,
		metrics:  metrics,
		logger:   logger,
	}
}

// Execute переводит открытый слот в reserved за одно условное обновление.
// Из конкурентных запросов на один слот успешен ровно один, остальные
// получают ErrSlotNotAvailable.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*domain.Slot, error) {
	assignment, err := validateRequest(req)
	if err != nil {
		uc.logger.Warn("ReserveSlot: validation failed: %v", err)
		uc.metrics.RecordReservation(metrics.ReservationFailed)
		return nil, err
	}

	uc.logger.Info("ReserveSlot: slot=%d, assignee=%s:%d, requested_by=%d",
		req.SlotID, assignment.Kind(), assignment.ID(), req.RequestedBy)

	slot, err := uc.slotRepo.Transition(ctx, req.SlotID, domain.ReserveTransition(assignment, req.Notes))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			uc.logger.Warn("ReserveSlot: slot id=%d not found", req.SlotID)
			uc.metrics.RecordReservation(metrics.ReservationFailed)
			return nil, ErrSlotNotFound
		case errors.Is(err, domain.ErrConflict):
			uc.logger.Warn("ReserveSlot: slot id=%d is not open", req.SlotID)
			uc.metrics.RecordReservation(metrics.ReservationConflict)
			return nil, ErrSlotNotAvailable
		default:
			uc.logger.Error("ReserveSlot: failed to reserve slot id=%d: %v", req.SlotID, err)
			uc.metrics.RecordReservation(metrics.ReservationFailed)
			return nil, fmt.Errorf("%w: failed to reserve slot: %v", ErrInternal, err)
		}
	}

	uc.metrics.RecordReservation(metrics.ReservationSucceeded)
	uc.logger.Info("ReserveSlot: slot id=%d reserved", slot.ID)

	return slot, nil
}
