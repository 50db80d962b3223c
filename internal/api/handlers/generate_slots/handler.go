package generate_slots

import (
	"net/http"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
)

const (
	msgInvalidDefinitionID = "некорректный ID определения"
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgInvalidDate         = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgDefinitionNotFound  = "определение не найдено"
	msgSlotsConflict       = "слоты конфликтуют с существующими"
)

type Handler struct {
	useCase  CommitUseCase
	location *time.Location
	logger   Logger
}

// NewHandler даты запроса разбираются в зоне location
func NewHandler(useCase CommitUseCase, location *time.Location, logger Logger) *Handler {
	if location == nil {
		location = time.UTC
	}
	return &Handler{
		useCase:  useCase,
		location: location,
		logger:   logger,
	}
}

// Handle POST /api/v1/definitions/{definitionId}/slots/generate
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	definitionID, err := handlers.PathID(r, "definitionId")
	if err != nil {
		h.logger.Warn("POST /definitions/{definitionId}/slots/generate - %v", err)
		handlers.RespondBadRequest(w, msgInvalidDefinitionID)
		return
	}

	var req GenerateSlotsRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /definitions/{definitionId}/slots/generate - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(definitionID, h.location)
	if err != nil {
		h.logger.Warn("POST /definitions/{definitionId}/slots/generate - Failed to parse dates: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Commit(r.Context(), useCaseReq)
	if err != nil {
		status := handlers.RespondDomainError(w, err, msgDefinitionNotFound, msgSlotsConflict)
		if status == http.StatusInternalServerError {
			h.logger.Error("POST /definitions/{definitionId}/slots/generate - Failed to generate slots: definition_id=%d, error=%v", definitionID, err)
		} else {
			h.logger.Warn("POST /definitions/{definitionId}/slots/generate - Rejected: definition_id=%d, status=%d, error=%v", definitionID, status, err)
		}
		return
	}

	h.logger.Info("POST /definitions/{definitionId}/slots/generate - Slots generated: definition_id=%d, batch_id=%s, created=%d, failed=%d",
		definitionID, result.BatchID, result.CreatedCount, result.FailedCount)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
