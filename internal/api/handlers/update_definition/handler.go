package update_definition

import (
	"net/http"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/service/definitions/models"
)

const (
	msgInvalidDefinitionID = "некорректный ID определения"
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgDefinitionNotFound  = "определение не найдено"
	msgConflict            = "определение было изменено параллельно"
)

type Handler struct {
	service DefinitionService
	logger  Logger
}

func NewHandler(service DefinitionService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/definitions/{definitionId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	definitionID, err := handlers.PathID(r, "definitionId")
	if err != nil {
		h.logger.Warn("PATCH /definitions/{definitionId} - %v", err)
		handlers.RespondBadRequest(w, msgInvalidDefinitionID)
		return
	}

	var req models.UpdateDefinitionRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /definitions/{definitionId} - Invalid request body: definition_id=%d, error=%v", definitionID, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Update(r.Context(), definitionID, &req)
	if err != nil {
		status := handlers.RespondDomainError(w, err, msgDefinitionNotFound, msgConflict)
		if status == http.StatusInternalServerError {
			h.logger.Error("PATCH /definitions/{definitionId} - Failed to update definition: definition_id=%d, error=%v", definitionID, err)
		} else {
			h.logger.Warn("PATCH /definitions/{definitionId} - Rejected: definition_id=%d, status=%d, error=%v", definitionID, status, err)
		}
		return
	}

	h.logger.Info("PATCH /definitions/{definitionId} - Definition updated: definition_id=%d", definitionID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
