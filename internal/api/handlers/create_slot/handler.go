package create_slot

import (
	"net/http"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/service/slots/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgDefinitionNotFound = "определение не найдено"
	msgConflict           = "слот конфликтует с существующим"
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

// Handle POST /api/v1/slots
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.CreateSlotRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /slots - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.CreateSlot(r.Context(), &req)
	if err != nil {
		status := handlers.RespondDomainError(w, err, msgDefinitionNotFound, msgConflict)
		if status == http.StatusInternalServerError {
			h.logger.Error("POST /slots - Failed to create slot: definition_id=%d, error=%v", req.DefinitionID, err)
		} else {
			h.logger.Warn("POST /slots - Rejected: definition_id=%d, status=%d, error=%v", req.DefinitionID, status, err)
		}
		return
	}

	h.logger.Info("POST /slots - Slot created: slot_id=%d, definition_id=%d", result.ID, result.DefinitionID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
