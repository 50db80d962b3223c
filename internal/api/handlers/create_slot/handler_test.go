package create_slot

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/infra/storage/memory"
	"github.com/m04kA/SMC-AppointmentService/internal/service/slots"
	"github.com/m04kA/SMC-AppointmentService/internal/service/slots/models"
	"github.com/m04kA/SMC-AppointmentService/pkg/logger"
	"github.com/m04kA/SMC-AppointmentService/pkg/txmanager"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

func newStore(t *testing.T) (*memory.Store, *slots.Service, []int64) {
	t.Helper()

	ctx := context.Background()
	store := memory.NewStore()
	def, err := store.Definitions().Create(ctx, &domain.AppointmentDefinition{
		Name:                "Consultation",
		Weekdays:            domain.Weekdays{1},
		WindowStart:         types.MustTimeString("09:00"),
		WindowEnd:           types.MustTimeString("12:00"),
		SlotDurationMinutes: 30,
		MaxOccupants:        1,
		IsActive:            true,
	})
	require.NoError(t, err)

	ids := make([]int64, 0, 3)
	start := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		slot, err := store.Slots().Create(ctx, &domain.Slot{
			DefinitionID: def.ID,
			StartAt:      start.Add(time.Duration(i) * 30 * time.Minute),
			EndAt:        start.Add(time.Duration(i+1) * 30 * time.Minute),
			Status:       domain.SlotOpen,
			IsActive:     true,
		})
		require.NoError(t, err)
		ids = append(ids, slot.ID)
	}

	svc := slots.NewService(store.Slots(), store.Definitions(), txmanager.NoopTransactionManager{}, logger.NewNop())
	return store, svc, ids
}

func post(h *Handler, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.Handle(rec, httptest.NewRequest(http.MethodPost, "/api/v1/slots", strings.NewReader(body)))
	return rec
}

func TestHandler_CreateSlot(t *testing.T) {
	store, svc, _ := newStore(t)
	h := NewHandler(svc, logger.NewNop())
	defs, err := store.Definitions().ListAll(context.Background())
	require.NoError(t, err)

	rec := post(h, `{"definitionId": 1, "startAt": "2025-03-12T14:00:00Z", "note": "extra slot"}`)

	require.Equal(t, http.StatusCreated, rec.Code)
	var resp models.SlotResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, defs[0].ID, resp.DefinitionID)
	assert.Equal(t, "2025-03-12", resp.Date)
	assert.Equal(t, time.Date(2025, 3, 12, 14, 30, 0, 0, time.UTC), resp.EndAt.UTC())
	assert.Equal(t, string(domain.SlotOpen), resp.Status)
}

func TestHandler_Errors(t *testing.T) {
	_, svc, _ := newStore(t)
	h := NewHandler(svc, logger.NewNop())

	tests := []struct {
		name       string
		body       string
		wantStatus int
	}{
		{name: "unknown definition", body: `{"definitionId": 999, "startAt": "2025-03-12T14:00:00Z"}`, wantStatus: http.StatusNotFound},
		{name: "missing definition", body: `{"startAt": "2025-03-12T14:00:00Z"}`, wantStatus: http.StatusBadRequest},
		{name: "end before start", body: `{"definitionId": 1, "startAt": "2025-03-12T14:00:00Z", "endAt": "2025-03-12T13:00:00Z"}`, wantStatus: http.StatusBadRequest},
		{name: "malformed json", body: `{"definitionId":`, wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantStatus, post(h, tt.body).Code)
		})
	}
}
