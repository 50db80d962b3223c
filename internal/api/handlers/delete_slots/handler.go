package delete_slots

import (
	"net/http"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/service/slots/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
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

// Handle POST /api/v1/slots/delete
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.DeleteSlotsRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /slots/delete - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.DeleteMany(r.Context(), &req)
	if err != nil {
		status := handlers.RespondDomainError(w, err, "", "")
		if status == http.StatusInternalServerError {
			h.logger.Error("POST /slots/delete - Failed to delete slots: ids=%d, error=%v", len(req.IDs), err)
		} else {
			h.logger.Warn("POST /slots/delete - Rejected: status=%d, error=%v", status, err)
		}
		return
	}

	h.logger.Info("POST /slots/delete - Slots deleted: requested=%d, deleted=%d", len(req.IDs), result.DeletedCount)
	handlers.RespondJSON(w, http.StatusOK, result)
}
