package update_slot

import (
	"net/http"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/service/slots/models"
)

const (
	msgInvalidSlotID      = "некорректный ID слота"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgSlotNotFound       = "слот не найден"
	msgConflict           = "слот был изменен параллельно"
)

type Handler struct {
	service SlotService
	logger  Logger
}

func NewHandler(service SlotService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/slots/{slotId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	slotID, err := handlers.PathID(r, "slotId")
	if err != nil {
		h.logger.Warn("PATCH /slots/{slotId} - %v", err)
		handlers.RespondBadRequest(w, msgInvalidSlotID)
		return
	}

	var req models.UpdateSlotRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /slots/{slotId} - Invalid request body: slot_id=%d, error=%v", slotID, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.UpdateSlot(r.Context(), slotID, &req)
	if err != nil {
		status := handlers.RespondDomainError(w, err, msgSlotNotFound, msgConflict)
		if status == http.StatusInternalServerError {
			h.logger.Error("PATCH /slots/{slotId} - Failed to update slot: slot_id=%d, error=%v", slotID, err)
		} else {
			h.logger.Warn("PATCH /slots/{slotId} - Rejected: slot_id=%d, status=%d, error=%v", slotID, status, err)
		}
		return
	}

	h.logger.Info("PATCH /slots/{slotId} - Slot updated: slot_id=%d", slotID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
