package slots

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/infra/storage/memory"
	"github.com/m04kA/SMC-AppointmentService/internal/service/slots/models"
	"github.com/m04kA/SMC-AppointmentService/pkg/logger"
	"github.com/m04kA/SMC-AppointmentService/pkg/ptr"
	"github.com/m04kA/SMC-AppointmentService/pkg/txmanager"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

var nineAM = time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

type fixture struct {
	svc   *Service
	store *memory.Store
	defID int64
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	store := memory.NewStore()
	def, err := store.Definitions().Create(context.Background(), &domain.AppointmentDefinition{
		Name:                "Consultation",
		Weekdays:            domain.Weekdays{1},
		WindowStart:         types.MustTimeString("09:00"),
		WindowEnd:           types.MustTimeString("12:00"),
		SlotDurationMinutes: 30,
		MaxOccupants:        1,
		IsActive:            true,
	})
	require.NoError(t, err)

	svc := NewService(store.Slots(), store.Definitions(), txmanager.NoopTransactionManager{}, logger.NewNop())
	return &fixture{svc: svc, store: store, defID: def.ID}
}

func (f *fixture) createSlot(t *testing.T, start time.Time) *models.SlotResponse {
	t.Helper()
	slot, err := f.svc.CreateSlot(context.Background(), &models.CreateSlotRequest{DefinitionID: f.defID, StartAt: start})
	require.NoError(t, err)
	return slot
}

func (f *fixture) reserve(t *testing.T, id, personID int64) {
	t.Helper()
	_, err := f.store.Slots().Transition(context.Background(), id, domain.ReserveTransition(domain.PersonAssignment(personID), nil))
	require.NoError(t, err)
}

func TestService_CreateSlot_DerivesEndFromDefinition(t *testing.T) {
	f := newFixture(t)

	slot := f.createSlot(t, nineAM)

	assert.Equal(t, nineAM.Add(30*time.Minute), slot.EndAt)
	assert.Equal(t, "2025-03-10", slot.Date)
	assert.Equal(t, "open", slot.Status)
	assert.Nil(t, slot.PersonID)
}

func TestService_CreateSlot_Errors(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.CreateSlot(ctx, &models.CreateSlotRequest{DefinitionID: 99, StartAt: nineAM})
	assert.ErrorIs(t, err, ErrDefinitionNotFound)

	_, err = f.svc.CreateSlot(ctx, &models.CreateSlotRequest{DefinitionID: f.defID, StartAt: nineAM, EndAt: ptr.Ptr(nineAM)})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestService_SetStatus_StateMachine(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	slot := f.createSlot(t, nineAM)
	f.reserve(t, slot.ID, 7)

	// reserved -> closed разрешён и снимает назначение
	closed, err := f.svc.SetStatus(ctx, slot.ID, &models.SetStatusRequest{Status: "kapalı", Reason: ptr.Ptr("doctor is ill")})
	require.NoError(t, err)
	assert.Equal(t, "closed", closed.Status)
	assert.Equal(t, "doctor is ill", *closed.CloseReason)
	assert.Nil(t, closed.PersonID)

	// closed -> open
	reopened, err := f.svc.SetStatus(ctx, slot.ID, &models.SetStatusRequest{Status: "open"})
	require.NoError(t, err)
	assert.Equal(t, "open", reopened.Status)
	assert.Nil(t, reopened.CloseReason)

	// reserved -> open отменяет резервирование
	f.reserve(t, slot.ID, 8)
	cancelled, err := f.svc.SetStatus(ctx, slot.ID, &models.SetStatusRequest{Status: "open"})
	require.NoError(t, err)
	assert.Nil(t, cancelled.PersonID)
	assert.Nil(t, cancelled.CounterpartyID)
}

func TestService_SetStatus_RejectsReservedAndUnknown(t *testing.T) {
	f := newFixture(t)
	slot := f.createSlot(t, nineAM)

	for _, status := range []string{"reserved", "Rezerve", "pending", ""} {
		_, err := f.svc.SetStatus(context.Background(), slot.ID, &models.SetStatusRequest{Status: status})
		assert.ErrorIs(t, err, domain.ErrValidation, status)
	}

	_, err := f.svc.SetStatus(context.Background(), 404, &models.SetStatusRequest{Status: "closed"})
	assert.ErrorIs(t, err, ErrSlotNotFound)
}

func TestService_SetStatusMany(t *testing.T) {
	f := newFixture(t)
	a := f.createSlot(t, nineAM)
	b := f.createSlot(t, nineAM.Add(30*time.Minute))

	resp, err := f.svc.SetStatusMany(context.Background(), &models.SetStatusManyRequest{
		IDs:    []int64{a.ID, b.ID, a.ID, 404},
		Status: "closed",
	})

	require.NoError(t, err)
	assert.Equal(t, 2, resp.UpdatedCount)
	assert.Equal(t, 1, resp.SkippedCount)
	assert.ElementsMatch(t, []int64{a.ID, b.ID}, resp.UpdatedIDs)
}

func TestService_UpdateSlot(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	slot := f.createSlot(t, nineAM)

	moved := nineAM.AddDate(0, 0, 1)
	updated, err := f.svc.UpdateSlot(ctx, slot.ID, &models.UpdateSlotRequest{
		StartAt: ptr.Ptr(moved),
		EndAt:   ptr.Ptr(moved.Add(time.Hour)),
		Note:    ptr.Ptr("moved"),
	})
	require.NoError(t, err)
	assert.Equal(t, "2025-03-11", updated.Date)
	assert.Equal(t, "moved", updated.Note)

	// startAt позже текущего endAt
	_, err = f.svc.UpdateSlot(ctx, slot.ID, &models.UpdateSlotRequest{StartAt: ptr.Ptr(moved.Add(2 * time.Hour))})
	assert.ErrorIs(t, err, domain.ErrValidation)

	unchanged, err := f.svc.UpdateSlot(ctx, slot.ID, &models.UpdateSlotRequest{})
	require.NoError(t, err)
	assert.Equal(t, "moved", unchanged.Note)
}

// commitFailingTx выполняет fn и имитирует сбой сериализации на commit
type commitFailingTx struct {
	txmanager.NoopTransactionManager
}

func (commitFailingTx) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	if err := fn(ctx); err != nil {
		return err
	}
	return fmt.Errorf("%w: pq: could not serialize access due to concurrent update", txmanager.ErrCommitTx)
}

func TestService_UpdateSlot_CommitFailureIsInternal(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	slot := f.createSlot(t, nineAM)

	svc := NewService(f.store.Slots(), f.store.Definitions(), commitFailingTx{}, logger.NewNop())
	_, err := svc.UpdateSlot(ctx, slot.ID, &models.UpdateSlotRequest{Note: ptr.Ptr("late")})

	assert.ErrorIs(t, err, ErrInternal)
	assert.ErrorIs(t, err, domain.ErrPersistence)

	_, err = svc.UpdateSlot(ctx, 999, &models.UpdateSlotRequest{})
	assert.ErrorIs(t, err, ErrSlotNotFound)
	assert.NotErrorIs(t, err, domain.ErrPersistence)
}

func TestService_DeleteMany_CountsOnlyExisting(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a := f.createSlot(t, nineAM)
	b := f.createSlot(t, nineAM.Add(30*time.Minute))
	keep := f.createSlot(t, nineAM.Add(time.Hour))
	f.reserve(t, b.ID, 1)

	resp, err := f.svc.DeleteMany(ctx, &models.DeleteSlotsRequest{IDs: []int64{a.ID, b.ID, 500, 501}})

	require.NoError(t, err)
	assert.Equal(t, int64(2), resp.DeletedCount)

	_, err = f.svc.GetByID(ctx, keep.ID)
	assert.NoError(t, err)

	_, err = f.svc.DeleteMany(ctx, &models.DeleteSlotsRequest{})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestService_Delete(t *testing.T) {
	f := newFixture(t)
	slot := f.createSlot(t, nineAM)

	require.NoError(t, f.svc.Delete(context.Background(), slot.ID))
	assert.ErrorIs(t, f.svc.Delete(context.Background(), slot.ID), ErrSlotNotFound)
}

func TestService_List_FilterIntersection(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	early := f.createSlot(t, nineAM)
	f.reserve(t, early.ID, 1)
	later := f.createSlot(t, nineAM.AddDate(0, 0, 2))
	f.reserve(t, later.ID, 2)
	f.createSlot(t, nineAM.AddDate(0, 0, 3))

	status, err := domain.ParseSlotStatusFilter("Rezerve")
	require.NoError(t, err)
	from := nineAM.AddDate(0, 0, 1)

	resp, err := f.svc.List(ctx, &models.ListSlotsRequest{
		Filter: domain.SlotFilter{Status: status, StartDate: &from},
	})

	require.NoError(t, err)
	assert.Equal(t, 1, resp.TotalCount)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, later.ID, resp.Items[0].ID)
	assert.Equal(t, 1, resp.Page)
	assert.Equal(t, domain.DefaultPageSize, resp.PageSize)
}
