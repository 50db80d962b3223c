package list_slots

import (
	"net/http"
	"strconv"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/service/slots/models"
	"github.com/m04kA/SMC-AppointmentService/pkg/ptr"
)

// parseListRequest собирает фильтр и страницу из query параметров.
// Возвращает имя неверного параметра вместе с ошибкой.
func parseListRequest(r *http.Request, loc *time.Location) (*models.ListSlotsRequest, string, error) {
	var (
		req models.ListSlotsRequest
		err error
	)

	if req.Filter.DefinitionID, err = handlers.QueryInt64(r, "definitionId"); err != nil {
		return nil, "definitionId", err
	}
	if req.Filter.Status, err = domain.ParseSlotStatusFilter(r.URL.Query().Get("status")); err != nil {
		return nil, "status", err
	}
	if req.Filter.StartDate, err = handlers.QueryDate(r, "startDate", loc); err != nil {
		return nil, "startDate", err
	}
	if req.Filter.EndDate, err = handlers.QueryDate(r, "endDate", loc); err != nil {
		return nil, "endDate", err
	}
	if req.Filter.PersonID, err = handlers.QueryInt64(r, "personId"); err != nil {
		return nil, "personId", err
	}
	if req.Filter.CounterpartyID, err = handlers.QueryInt64(r, "counterpartyId"); err != nil {
		return nil, "counterpartyId", err
	}
	if raw := r.URL.Query().Get("isActive"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, "isActive", err
		}
		req.Filter.IsActive = ptr.Ptr(v)
	}

	if req.Page.Number, err = handlers.QueryInt(r, "page"); err != nil {
		return nil, "page", err
	}
	if req.Page.Size, err = handlers.QueryInt(r, "pageSize"); err != nil {
		return nil, "pageSize", err
	}

	return &req, "", nil
}
