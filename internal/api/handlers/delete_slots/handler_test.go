package delete_slots

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
	h.Handle(rec, httptest.NewRequest(http.MethodPost, "/api/v1/slots/delete", strings.NewReader(body)))
	return rec
}

func TestHandler_DeleteMany(t *testing.T) {
	store, svc, ids := newStore(t)
	h := NewHandler(svc, logger.NewNop())

	// дубликаты и несуществующий ID не считаются ошибкой
	rec := post(h, `{"ids": [1, 1, 2, 999]}`)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp models.DeleteSlotsResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, int64(2), resp.DeletedCount)

	_, err := store.Slots().GetByID(context.Background(), ids[0])
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = store.Slots().GetByID(context.Background(), ids[2])
	assert.NoError(t, err)
}

func TestHandler_EmptyIDs(t *testing.T) {
	_, svc, _ := newStore(t)

	assert.Equal(t, http.StatusBadRequest, post(NewHandler(svc, logger.NewNop()), `{"ids": []}`).Code)
}
