package reserve_slot

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/api/middleware"
	"github.com/m04kA/SMC-AppointmentService/internal/service/slots/models"
	reserveSlot "github.com/m04kA/SMC-AppointmentService/internal/usecase/reserve_slot"
)

const (
	msgInvalidSlotID      = "некорректный ID слота"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgUnauthorized       = "требуется авторизация"
	msgSlotNotFound       = "слот не найден"
	msgSlotNotAvailable   = "слот недоступен для резервирования"
)

type Handler struct {
	useCase ReserveSlotUseCase
	logger  Logger
}

func NewHandler(useCase ReserveSlotUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/slots/{slotId}/reserve
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /slots/{slotId}/reserve - Unauthorized request")
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	slotID, err := handlers.PathID(r, "slotId")
	if err != nil {
		h.logger.Warn("POST /slots/{slotId}/reserve - %v", err)
		handlers.RespondBadRequest(w, msgInvalidSlotID)
		return
	}

	var req ReserveSlotRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /slots/{slotId}/reserve - Invalid request body: slot_id=%d, error=%v", slotID, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	slot, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(slotID, userID))
	if err != nil {
		switch {
		case errors.Is(err, reserveSlot.ErrSlotNotAvailable):
			h.logger.Warn("POST /slots/{slotId}/reserve - Slot not available: slot_id=%d, user_id=%d", slotID, userID)
			handlers.RespondConflict(w, msgSlotNotAvailable)
		case errors.Is(err, reserveSlot.ErrSlotNotFound):
			h.logger.Warn("POST /slots/{slotId}/reserve - Slot not found: slot_id=%d", slotID)
			handlers.RespondNotFound(w, msgSlotNotFound)
		default:
			status := handlers.RespondDomainError(w, err, msgSlotNotFound, msgSlotNotAvailable)
			if status == http.StatusInternalServerError {
				h.logger.Error("POST /slots/{slotId}/reserve - Failed to reserve slot: slot_id=%d, user_id=%d, error=%v", slotID, userID, err)
			} else {
				h.logger.Warn("POST /slots/{slotId}/reserve - Rejected: slot_id=%d, status=%d, error=%v", slotID, status, err)
			}
		}
		return
	}

	h.logger.Info("POST /slots/{slotId}/reserve - Slot reserved: slot_id=%d, assignee=%s:%d, user_id=%d",
		slotID, slot.Assignment.Kind(), slot.Assignment.ID(), userID)
	handlers.RespondJSON(w, http.StatusOK, models.FromDomain(slot))
}
