package list_definitions

import (
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/service/definitions/models"
)

const (
	msgInvalidActive = "некорректный параметр active, ожидается true или false"
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

// Handle GET /api/v1/definitions?active=true|false
// По умолчанию возвращаются только активные определения
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	activeOnly := true
	if raw := r.URL.Query().Get("active"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			h.logger.Warn("GET /definitions - Invalid active parameter: %q", raw)
			handlers.RespondBadRequest(w, msgInvalidActive)
			return
		}
		activeOnly = v
	}

	var (
		items []*models.DefinitionResponse
		err   error
	)
	if activeOnly {
		items, err = h.service.ListActive(r.Context())
	} else {
		items, err = h.service.ListAll(r.Context())
	}
	if err != nil {
		h.logger.Error("GET /definitions - Failed to list definitions: active=%t, error=%v", activeOnly, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /definitions - Definitions listed: active=%t, count=%d", activeOnly, len(items))
	handlers.RespondJSON(w, http.StatusOK, DefinitionListResponse{Items: items, Total: len(items)})
}
