package list_definitions

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/infra/storage/memory"
	"github.com/m04kA/SMC-AppointmentService/internal/service/definitions"
	"github.com/m04kA/SMC-AppointmentService/pkg/logger"
	"github.com/m04kA/SMC-AppointmentService/pkg/txmanager"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

func newHandler(t *testing.T) *Handler {
	t.Helper()

	store := memory.NewStore()
	for _, def := range []*domain.AppointmentDefinition{
		{Name: "Yoga", IsActive: true},
		{Name: "Archived pilates", IsActive: false},
	} {
		def.Weekdays = domain.Weekdays{2, 4}
		def.WindowStart = types.MustTimeString("18:00")
		def.WindowEnd = types.MustTimeString("20:00")
		def.SlotDurationMinutes = 60
		def.MaxOccupants = 1
		_, err := store.Definitions().Create(context.Background(), def)
		require.NoError(t, err)
	}

	svc := definitions.NewService(store.Definitions(), txmanager.NoopTransactionManager{}, logger.NewNop())
	return NewHandler(svc, logger.NewNop())
}

func TestHandler_ActiveFilter(t *testing.T) {
	tests := []struct {
		name      string
		query     string
		wantNames []string
	}{
		{name: "active by default", query: "", wantNames: []string{"Yoga"}},
		{name: "explicit active", query: "?active=true", wantNames: []string{"Yoga"}},
		{name: "all definitions", query: "?active=false", wantNames: []string{"Archived pilates", "Yoga"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()

			newHandler(t).Handle(rec, httptest.NewRequest(http.MethodGet, "/api/v1/definitions"+tt.query, nil))

			require.Equal(t, http.StatusOK, rec.Code)

			var resp DefinitionListResponse
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
			names := make([]string, 0, len(resp.Items))
			for _, item := range resp.Items {
				names = append(names, item.Name)
			}
			assert.Equal(t, tt.wantNames, names)
			assert.Equal(t, len(tt.wantNames), resp.Total)
		})
	}
}

func TestHandler_InvalidActive(t *testing.T) {
	rec := httptest.NewRecorder()

	newHandler(t).Handle(rec, httptest.NewRequest(http.MethodGet, "/api/v1/definitions?active=maybe", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
