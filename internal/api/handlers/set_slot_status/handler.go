package set_slot_status

import (
	"net/http"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/service/slots/models"
)

const (
	msgInvalidSlotID      = "некорректный ID слота"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgSlotNotFound       = "слот не найден"
	msgStatusConflict     = "текущий статус слота не допускает этот переход"
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

// Handle PATCH /api/v1/slots/{slotId}/status
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	slotID, err := handlers.PathID(r, "slotId")
	if err != nil {
		h.logger.Warn("PATCH /slots/{slotId}/status - %v", err)
		handlers.RespondBadRequest(w, msgInvalidSlotID)
		return
	}

	var req models.SetStatusRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /slots/{slotId}/status - Invalid request body: slot_id=%d, error=%v", slotID, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.SetStatus(r.Context(), slotID, &req)
	if err != nil {
		status := handlers.RespondDomainError(w, err, msgSlotNotFound, msgStatusConflict)
		if status == http.StatusInternalServerError {
			h.logger.Error("PATCH /slots/{slotId}/status - Failed to set status: slot_id=%d, error=%v", slotID, err)
		} else {
			h.logger.Warn("PATCH /slots/{slotId}/status - Rejected: slot_id=%d, status=%d, error=%v", slotID, status, err)
		}
		return
	}

	h.logger.Info("PATCH /slots/{slotId}/status - Status changed: slot_id=%d, status=%s", slotID, result.Status)
	handlers.RespondJSON(w, http.StatusOK, result)
}
