package delete_definition

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/service/definitions"
)

const (
	msgInvalidDefinitionID = "некорректный ID определения"
	msgDefinitionNotFound  = "определение не найдено"
	msgDefinitionInUse     = "у определения есть слоты, деактивируйте его вместо удаления"
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

// Handle DELETE /api/v1/definitions/{definitionId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	definitionID, err := handlers.PathID(r, "definitionId")
	if err != nil {
		h.logger.Warn("DELETE /definitions/{definitionId} - %v", err)
		handlers.RespondBadRequest(w, msgInvalidDefinitionID)
		return
	}

	if err := h.service.Delete(r.Context(), definitionID); err != nil {
		switch {
		case errors.Is(err, definitions.ErrDefinitionNotFound):
			h.logger.Warn("DELETE /definitions/{definitionId} - Definition not found: definition_id=%d", definitionID)
			handlers.RespondNotFound(w, msgDefinitionNotFound)
		case errors.Is(err, definitions.ErrDefinitionInUse):
			h.logger.Warn("DELETE /definitions/{definitionId} - Definition in use: definition_id=%d", definitionID)
			handlers.RespondConflict(w, msgDefinitionInUse)
		default:
			h.logger.Error("DELETE /definitions/{definitionId} - Failed to delete definition: definition_id=%d, error=%v", definitionID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /definitions/{definitionId} - Definition deleted: definition_id=%d", definitionID)
	handlers.RespondNoContent(w)
}
