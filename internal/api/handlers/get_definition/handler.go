package get_definition

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/service/definitions"
)

const (
	msgInvalidDefinitionID = "некорректный ID определения"
	msgDefinitionNotFound  = "определение не найдено"
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

// Handle GET /api/v1/definitions/{definitionId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	definitionID, err := handlers.PathID(r, "definitionId")
	if err != nil {
		h.logger.Warn("GET /definitions/{definitionId} - %v", err)
		handlers.RespondBadRequest(w, msgInvalidDefinitionID)
		return
	}

	result, err := h.service.GetByID(r.Context(), definitionID)
	if err != nil {
		if errors.Is(err, definitions.ErrDefinitionNotFound) {
			h.logger.Warn("GET /definitions/{definitionId} - Definition not found: definition_id=%d", definitionID)
			handlers.RespondNotFound(w, msgDefinitionNotFound)
			return
		}
		h.logger.Error("GET /definitions/{definitionId} - Failed to get definition: definition_id=%d, error=%v", definitionID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /definitions/{definitionId} - Definition retrieved: definition_id=%d", definitionID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
