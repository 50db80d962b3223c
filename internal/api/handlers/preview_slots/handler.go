package preview_slots

import (
	"net/http"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	generateSlots "github.com/m04kA/SMC-AppointmentService/internal/usecase/generate_slots"
)

const (
	msgInvalidDefinitionID = "некорректный ID определения"
	msgInvalidDate         = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgMissingDates        = "параметры startDate и endDate обязательны"
	msgDefinitionNotFound  = "определение не найдено"
)

type Handler struct {
	useCase  PreviewUseCase
	location *time.Location
	logger   Logger
}

// NewHandler даты запроса разбираются в зоне location
func NewHandler(useCase PreviewUseCase, location *time.Location, logger Logger) *Handler {
	if location == nil {
		location = time.UTC
	}
	return &Handler{
		useCase:  useCase,
		location: location,
		logger:   logger,
	}
}

// Handle GET /api/v1/definitions/{definitionId}/slots/preview?startDate=...&endDate=...
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	definitionID, err := handlers.PathID(r, "definitionId")
	if err != nil {
		h.logger.Warn("GET /definitions/{definitionId}/slots/preview - %v", err)
		handlers.RespondBadRequest(w, msgInvalidDefinitionID)
		return
	}

	startDate, err := handlers.QueryDate(r, "startDate", h.location)
	if err != nil {
		h.logger.Warn("GET /definitions/{definitionId}/slots/preview - %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}
	endDate, err := handlers.QueryDate(r, "endDate", h.location)
	if err != nil {
		h.logger.Warn("GET /definitions/{definitionId}/slots/preview - %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}
	if startDate == nil || endDate == nil {
		h.logger.Warn("GET /definitions/{definitionId}/slots/preview - Missing dates: definition_id=%d", definitionID)
		handlers.RespondBadRequest(w, msgMissingDates)
		return
	}

	summary, err := h.useCase.Preview(r.Context(), &generateSlots.Request{
		DefinitionID: definitionID,
		StartDate:    *startDate,
		EndDate:      *endDate,
	})
	if err != nil {
		status := handlers.RespondDomainError(w, err, msgDefinitionNotFound, "")
		if status == http.StatusInternalServerError {
			h.logger.Error("GET /definitions/{definitionId}/slots/preview - Failed to preview: definition_id=%d, error=%v", definitionID, err)
		} else {
			h.logger.Warn("GET /definitions/{definitionId}/slots/preview - Rejected: definition_id=%d, status=%d, error=%v", definitionID, status, err)
		}
		return
	}

	h.logger.Info("GET /definitions/{definitionId}/slots/preview - Preview computed: definition_id=%d, total_slots=%d",
		definitionID, summary.TotalSlots)
	handlers.RespondJSON(w, http.StatusOK, fromSummary(definitionID,
		startDate.Format(domain.DateFormat), endDate.Format(domain.DateFormat), summary))
}
