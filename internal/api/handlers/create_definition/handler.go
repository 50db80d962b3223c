package create_definition

import (
	"net/http"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/service/definitions/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgConflict           = "определение конфликтует с существующим"
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

// Handle POST /api/v1/definitions
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.CreateDefinitionRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /definitions - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Create(r.Context(), &req)
	if err != nil {
		status := handlers.RespondDomainError(w, err, "", msgConflict)
		if status == http.StatusInternalServerError {
			h.logger.Error("POST /definitions - Failed to create definition: name=%q, error=%v", req.Name, err)
		} else {
			h.logger.Warn("POST /definitions - Rejected: name=%q, status=%d, error=%v", req.Name, status, err)
		}
		return
	}

	h.logger.Info("POST /definitions - Definition created: definition_id=%d, name=%q", result.ID, result.Name)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
