package set_slots_status

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

// Handle PATCH /api/v1/slots/status
// Слоты, к которым переход неприменим, пропускаются
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.SetStatusManyRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /slots/status - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.SetStatusMany(r.Context(), &req)
	if err != nil {
		status := handlers.RespondDomainError(w, err, "", "")
		if status == http.StatusInternalServerError {
			h.logger.Error("PATCH /slots/status - Failed to set status: ids=%d, error=%v", len(req.IDs), err)
		} else {
			h.logger.Warn("PATCH /slots/status - Rejected: status=%d, error=%v", status, err)
		}
		return
	}

	h.logger.Info("PATCH /slots/status - Status changed: status=%s, updated=%d, skipped=%d",
		req.Status, result.UpdatedCount, result.SkippedCount)
	handlers.RespondJSON(w, http.StatusOK, result)
}
