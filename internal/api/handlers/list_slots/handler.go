package list_slots

import (
	"net/http"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

type Handler struct {
	service  SlotService
	location *time.Location
	logger   Logger
}

// NewHandler даты фильтра разбираются в зоне location
func NewHandler(service SlotService, location *time.Location, logger Logger) *Handler {
	if location == nil {
		location = time.UTC
	}
	return &Handler{
		service:  service,
		location: location,
		logger:   logger,
	}
}

// Handle GET /api/v1/slots?definitionId&status&startDate&endDate&personId&counterpartyId&isActive&page&pageSize
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	req, field, err := parseListRequest(r, h.location)
	if err != nil {
		h.logger.Warn("GET /slots - Invalid query parameter %s: %v", field, err)
		handlers.RespondValidation(w, domain.NewValidationError(field, err.Error()))
		return
	}

	result, err := h.service.List(r.Context(), req)
	if err != nil {
		h.logger.Error("GET /slots - Failed to list slots: error=%v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /slots - Slots listed: page=%d, items=%d, total=%d", result.Page, len(result.Items), result.TotalCount)
	handlers.RespondJSON(w, http.StatusOK, result)
}
